package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"battle-map/canvas"
)

// setLog returns the module logger. It is built on each call so it follows
// whatever log.Logger is configured at that point.
func setLog() *zerolog.Logger {
	l := log.With().Str("module", "settings").Logger()
	return &l
}

// Key names one observed setting.
type Key string

const (
	GridEnabled     Key = "grid.enabled"
	GridCellSize    Key = "grid.cell_size"
	GridThickness   Key = "grid.thickness"
	GridOffsetX     Key = "grid.offset_x"
	GridOffsetY     Key = "grid.offset_y"
	TokenIconSize   Key = "token.icon_size"
	TokenOutline    Key = "token.outline"
	SmoothScrolling Key = "view.smooth_scrolling"
	DebugOverlay    Key = "view.debug"
)

type GridValues struct {
	Enabled   bool    `yaml:"enabled"`
	CellSize  float64 `yaml:"cell_size"`
	Thickness float64 `yaml:"thickness"`
	OffsetX   float64 `yaml:"offset_x"`
	OffsetY   float64 `yaml:"offset_y"`
}

type TokenValues struct {
	IconSize float64 `yaml:"icon_size"`
	Outline  float64 `yaml:"outline"`
}

type ViewValues struct {
	SmoothScrolling bool `yaml:"smooth_scrolling"`
	Debug           bool `yaml:"debug"`
}

// Values is a snapshot of every observed setting.
type Values struct {
	Grid  GridValues  `yaml:"grid"`
	Token TokenValues `yaml:"token"`
	View  ViewValues  `yaml:"view"`
}

func Defaults() Values {
	return Values{
		Grid: GridValues{
			Enabled:   false,
			CellSize:  64,
			Thickness: 2,
		},
		Token: TokenValues{
			IconSize: 64,
			Outline:  4,
		},
		View: ViewValues{
			SmoothScrolling: true,
		},
	}
}

// GridSettings converts the grid values into the snapper's form.
func (v Values) GridSettings() canvas.Grid {
	return canvas.Grid{
		Enabled:   v.Grid.Enabled,
		CellSize:  v.Grid.CellSize,
		Thickness: v.Grid.Thickness,
		Offset:    canvas.Vec{X: v.Grid.OffsetX, Y: v.Grid.OffsetY},
	}
}

// Diff returns the keys whose values differ between a and b.
func Diff(a, b Values) []Key {
	var keys []Key
	add := func(changed bool, k Key) {
		if changed {
			keys = append(keys, k)
		}
	}
	add(a.Grid.Enabled != b.Grid.Enabled, GridEnabled)
	add(a.Grid.CellSize != b.Grid.CellSize, GridCellSize)
	add(a.Grid.Thickness != b.Grid.Thickness, GridThickness)
	add(a.Grid.OffsetX != b.Grid.OffsetX, GridOffsetX)
	add(a.Grid.OffsetY != b.Grid.OffsetY, GridOffsetY)
	add(a.Token.IconSize != b.Token.IconSize, TokenIconSize)
	add(a.Token.Outline != b.Token.Outline, TokenOutline)
	add(a.View.SmoothScrolling != b.View.SmoothScrolling, SmoothScrolling)
	add(a.View.Debug != b.View.Debug, DebugOverlay)
	return keys
}

// Store owns the session's settings and broadcasts changes. It is not safe
// for concurrent use; all access happens on the game loop.
type Store struct {
	values      Values
	subscribers []func(Key)
}

func NewStore(v Values) *Store {
	return &Store{values: v}
}

// Get returns a copy of the current values.
func (s *Store) Get() Values { return s.values }

// Subscribe registers fn to be called once per changed key.
func (s *Store) Subscribe(fn func(Key)) {
	s.subscribers = append(s.subscribers, fn)
}

// Update applies fn to a copy of the current values, stores the result and
// publishes every key that changed. It returns the changed keys.
func (s *Store) Update(fn func(v *Values)) []Key {
	next := s.values
	fn(&next)
	keys := Diff(s.values, next)
	s.values = next
	for _, k := range keys {
		for _, sub := range s.subscribers {
			sub(k)
		}
	}
	return keys
}

// Load reads a YAML settings file. Fields missing from the file keep their
// default values, and a missing file yields the defaults without error.
func Load(path string) (Values, error) {
	v := Defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		setLog().Info().Str("path", path).Msg("no settings file, using defaults")
		return v, nil
	}
	if err != nil {
		return v, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Defaults(), fmt.Errorf("parse settings %s: %w", path, err)
	}
	setLog().Info().Str("path", path).Msg("settings loaded")
	return v, nil
}

// Save writes the current values to path as YAML.
func (s *Store) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create settings file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&s.values); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	setLog().Info().Str("path", path).Msg("settings saved")
	return nil
}
