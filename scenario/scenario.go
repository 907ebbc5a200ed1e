package scenario

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"battle-map/canvas"
	"battle-map/settings"
	"battle-map/tokens"
)

// scLog is the scenario module logger.
func scLog() *zerolog.Logger {
	l := log.With().Str("module", "scenario").Logger()
	return &l
}

// fileOptions permits loops and reassignment at the top level of a script.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// Scene is what an encounter script asked for.
type Scene struct {
	Background string
	GridSet    bool
	Grid       settings.GridValues
	Tokens     []*tokens.Token
}

// LoadFile runs the script at path. Relative image paths in the script are
// resolved against the script's directory.
func LoadFile(path string, grid settings.GridValues) (*Scene, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	scene, err := Run(path, string(src), filepath.Dir(path), grid)
	if err != nil {
		return nil, err
	}
	scLog().Info().Str("path", path).Int("tokens", len(scene.Tokens)).
		Str("background", scene.Background).Msg("scenario loaded")
	return scene, nil
}

// Run executes script and collects the scene it describes. grid is the
// starting point that grid() keyword arguments override.
func Run(name, script, baseDir string, grid settings.GridValues) (*Scene, error) {
	b := &builder{
		baseDir: baseDir,
		scene:   &Scene{Grid: grid},
	}
	thread := &starlark.Thread{
		Name:  name,
		Print: func(_ *starlark.Thread, msg string) { scLog().Info().Str("script", name).Msg(msg) },
	}
	predeclared := starlark.StringDict{
		"background": starlark.NewBuiltin("background", b.background),
		"grid":       starlark.NewBuiltin("grid", b.grid),
		"token":      starlark.NewBuiltin("token", b.token),
	}
	if _, err := starlark.ExecFileOptions(fileOptions, thread, name, script, predeclared); err != nil {
		return nil, fmt.Errorf("run scenario %s: %w", name, err)
	}
	return b.scene, nil
}

// Apply adds the scene's tokens to reg and its grid to store. The background
// is left to the caller because it also sets the drawing size.
func (s *Scene) Apply(reg *tokens.Registry, store *settings.Store) {
	if s.GridSet {
		store.Update(func(v *settings.Values) { v.Grid = s.Grid })
	}
	for _, t := range s.Tokens {
		reg.Add(t)
	}
}

type builder struct {
	baseDir string
	scene   *Scene
}

func (b *builder) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || b.baseDir == "" {
		return path
	}
	return filepath.Join(b.baseDir, path)
}

func (b *builder) background(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var path string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "path", &path); err != nil {
		return nil, err
	}
	b.scene.Background = b.resolve(path)
	return starlark.None, nil
}

func (b *builder) grid(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var enabled, size, thickness, offsetX, offsetY starlark.Value
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"enabled?", &enabled,
		"size?", &size,
		"thickness?", &thickness,
		"offset_x?", &offsetX,
		"offset_y?", &offsetY,
	); err != nil {
		return nil, err
	}

	g := b.scene.Grid
	if enabled != nil {
		g.Enabled = bool(enabled.Truth())
	} else {
		g.Enabled = true
	}
	for _, f := range []struct {
		name string
		v    starlark.Value
		dst  *float64
	}{
		{"size", size, &g.CellSize},
		{"thickness", thickness, &g.Thickness},
		{"offset_x", offsetX, &g.OffsetX},
		{"offset_y", offsetY, &g.OffsetY},
	} {
		if f.v == nil {
			continue
		}
		n, ok := starlark.AsFloat(f.v)
		if !ok {
			return nil, fmt.Errorf("%s: %s must be a number, got %s", fn.Name(), f.name, f.v.Type())
		}
		*f.dst = n
	}
	b.scene.Grid = g
	b.scene.GridSet = true
	return starlark.None, nil
}

func (b *builder) token(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		name, image, movement, description string
		x, y                               starlark.Value
		initiative                         int
	)
	var size starlark.Value = starlark.String(tokens.Large.String())
	faction := tokens.Neutral.String()
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name,
		"x", &x,
		"y", &y,
		"size?", &size,
		"faction?", &faction,
		"image?", &image,
		"movement?", &movement,
		"description?", &description,
		"initiative?", &initiative,
	); err != nil {
		return nil, err
	}

	px, okX := starlark.AsFloat(x)
	py, okY := starlark.AsFloat(y)
	if !okX || !okY {
		return nil, fmt.Errorf("%s: x and y must be numbers", fn.Name())
	}

	t := tokens.New(name)
	switch s := size.(type) {
	case starlark.String:
		class, err := tokens.ParseSizeClass(string(s))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn.Name(), err)
		}
		t.SetSizeClass(class)
	default:
		scale, ok := starlark.AsFloat(size)
		if !ok || scale <= 0 {
			return nil, fmt.Errorf("%s: size must be a size class or a positive number", fn.Name())
		}
		t.SetScale(scale)
	}

	f, err := tokens.ParseFaction(faction)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}
	t.Faction = f
	t.ImagePath = b.resolve(image)
	t.Movement = movement
	t.Description = description
	t.Initiative = initiative
	t.SetPosition(canvas.Vec{X: px, Y: py})

	b.scene.Tokens = append(b.scene.Tokens, t)
	return starlark.None, nil
}
