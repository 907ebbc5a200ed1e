package scenario

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"battle-map/canvas"
	"battle-map/settings"
	"battle-map/tokens"
)

const encounter = `
background("maps/cave.png")
grid(size = 50, offset_x = 5)

for i in range(3):
    token("Goblin %d" % (i + 1), 100 + i * 64, 200, size = "medium", faction = "enemy")

token("Ogre", 400.5, 300, size = 4, movement = "40ft", initiative = 12, image = "/abs/ogre.png")
print("encounter ready")
`

func TestRun_Encounter(t *testing.T) {
	scene, err := Run("cave.star", encounter, "/campaign", settings.Defaults().Grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if scene.Background != filepath.Join("/campaign", "maps/cave.png") {
		t.Errorf("background not resolved against the script dir: %q", scene.Background)
	}
	if !scene.GridSet || !scene.Grid.Enabled || scene.Grid.CellSize != 50 || scene.Grid.OffsetX != 5 {
		t.Errorf("unexpected grid %+v", scene.Grid)
	}
	if scene.Grid.Thickness != 2 {
		t.Errorf("grid() should keep unspecified values, got thickness %v", scene.Grid.Thickness)
	}

	if len(scene.Tokens) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(scene.Tokens))
	}
	g := scene.Tokens[1]
	if g.Name != "Goblin 2" || g.Faction != tokens.Enemy || g.SizeClass() != tokens.Medium {
		t.Errorf("unexpected goblin %+v", g)
	}
	if g.Position() != (canvas.Vec{X: 164, Y: 200}) {
		t.Errorf("goblin at %v", g.Position())
	}

	ogre := scene.Tokens[3]
	if ogre.SizeClass() != tokens.Giant || ogre.Movement != "40ft" || ogre.Initiative != 12 {
		t.Errorf("unexpected ogre %+v", ogre)
	}
	if ogre.ImagePath != "/abs/ogre.png" || ogre.Faction != tokens.Neutral {
		t.Errorf("unexpected ogre image/faction %q %v", ogre.ImagePath, ogre.Faction)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"unknown faction", `token("A", 0, 0, faction = "pirate")`, "unknown faction"},
		{"unknown size", `token("A", 0, 0, size = "huge")`, "unknown size class"},
		{"bad position", `token("A", "left", 0)`, "must be numbers"},
		{"bad grid", `grid(size = "big")`, "must be a number"},
		{"syntax", `token(`, "run scenario"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run("bad.star", tt.script, "", settings.Defaults().Grid)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestScene_Apply(t *testing.T) {
	scene, err := Run("s.star", `grid(enabled = False, size = 32)
token("A", 10, 10)`, "", settings.Defaults().Grid)
	if err != nil {
		t.Fatal(err)
	}

	reg := tokens.NewRegistry()
	store := settings.NewStore(settings.Defaults())
	var changed []settings.Key
	store.Subscribe(func(k settings.Key) { changed = append(changed, k) })

	scene.Apply(reg, store)

	if reg.Len() != 1 {
		t.Errorf("expected 1 token, got %d", reg.Len())
	}
	if store.Get().Grid.CellSize != 32 || store.Get().Grid.Enabled {
		t.Errorf("unexpected grid %+v", store.Get().Grid)
	}
	if len(changed) != 1 || changed[0] != settings.GridCellSize {
		t.Errorf("expected only the cell size to change, got %v", changed)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "start.star")
	if err := os.WriteFile(path, []byte(`token("Hero", 0, 0, image = "hero.png", faction = "friend")`), 0o644); err != nil {
		t.Fatal(err)
	}

	scene, err := LoadFile(path, settings.Defaults().Grid)
	if err != nil {
		t.Fatal(err)
	}
	if scene.GridSet {
		t.Error("a script without grid() should not touch the grid")
	}
	if got := scene.Tokens[0].ImagePath; got != filepath.Join(dir, "hero.png") {
		t.Errorf("image path %q", got)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.star"), settings.Defaults().Grid); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestRun_PrintGoesToLogger(t *testing.T) {
	saved := log.Logger
	t.Cleanup(func() { log.Logger = saved })

	var buf bytes.Buffer
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: &buf, NoColor: true})

	if _, err := Run("hello.star", `print("three goblins")`, "", settings.Defaults().Grid); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "three goblins") || !strings.Contains(out, "module=scenario") {
		t.Errorf("script output not logged through the configured writer: %q", out)
	}
}
