package settings

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestStore_UpdatePublishesChangedKeys(t *testing.T) {
	s := NewStore(Defaults())
	var got []Key
	s.Subscribe(func(k Key) { got = append(got, k) })

	s.Update(func(v *Values) {
		v.Grid.Enabled = true
		v.Grid.CellSize = 50
		v.Token.Outline = 4 // unchanged
	})

	if len(got) != 2 || got[0] != GridEnabled || got[1] != GridCellSize {
		t.Errorf("expected [grid.enabled grid.cell_size], got %v", got)
	}
	if !s.Get().Grid.Enabled {
		t.Error("update was not stored")
	}

	got = nil
	s.Update(func(v *Values) {})
	if len(got) != 0 {
		t.Errorf("a no-op update should publish nothing, got %v", got)
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	v, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != Defaults() {
		t.Errorf("expected defaults, got %+v", v)
	}
}

func TestLoad_PartialFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := "grid:\n  enabled: true\n  cell_size: 32\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Grid.Enabled || v.Grid.CellSize != 32 {
		t.Errorf("file values not applied: %+v", v.Grid)
	}
	if v.Grid.Thickness != 2 || v.Token.IconSize != 64 || !v.View.SmoothScrolling {
		t.Errorf("defaults lost: %+v", v)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("grid: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	v, err := Load(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if v != Defaults() {
		t.Error("a parse error should still return defaults")
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	s := NewStore(Defaults())
	s.Update(func(v *Values) {
		v.Grid.OffsetX = 12
		v.View.Debug = true
	})

	if err := s.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded != s.Get() {
		t.Errorf("expected %+v, got %+v", s.Get(), loaded)
	}
}

func TestValues_GridSettings(t *testing.T) {
	v := Defaults()
	v.Grid.OffsetX, v.Grid.OffsetY = 5, 7
	g := v.GridSettings()
	if g.CellSize != 64 || g.Offset.X != 5 || g.Offset.Y != 7 {
		t.Errorf("unexpected grid %+v", g)
	}
}

func TestLoad_LogsThroughConfiguredLogger(t *testing.T) {
	saved := log.Logger
	t.Cleanup(func() { log.Logger = saved })

	var buf bytes.Buffer
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: &buf, NoColor: true})

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "no settings file") {
		t.Errorf("expected the load message in the configured writer, got %q", out)
	}
	if !strings.Contains(out, "module=settings") {
		t.Errorf("expected the module field, got %q", out)
	}
}
