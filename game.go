package main

import (
	"image"
	"image/png"
	"io/fs"
	"os"
	"path"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"battle-map/assets"
	"battle-map/canvas"
	"battle-map/input"
	"battle-map/render"
	"battle-map/scenario"
	"battle-map/settings"
	"battle-map/tokens"
	"battle-map/ui"
)

// AppConfig is what the command line decides for a session.
type AppConfig struct {
	SettingsPath string
	MapPath      string
	ScenarioPath string
	Width        int
	Height       int
}

type Game struct {
	cfg AppConfig

	view     *canvas.Viewport
	tokens   *tokens.Registry
	settings *settings.Store
	assets   *assets.Loader
	fonts    *FontCache

	// Sub-systems
	engine   *input.Engine
	pipeline *render.Pipeline
	ui       *ui.UISystem
	input    *InputSystem

	screen              canvas.Size
	dirty               bool
	screenshotRequested bool
}

func NewGame(cfg AppConfig, vals settings.Values) *Game {
	return newGame(cfg, vals, func(img image.Image) render.Bitmap {
		return ebiten.NewImageFromImage(img)
	})
}

func newGame(cfg AppConfig, vals settings.Values, convert func(image.Image) render.Bitmap) *Game {
	screen := canvas.Size{W: float64(cfg.Width), H: float64(cfg.Height)}
	g := &Game{
		cfg:      cfg,
		view:     canvas.NewViewport(screen, canvas.Size{W: EmptyMapSize, H: EmptyMapSize}),
		tokens:   tokens.NewRegistry(),
		settings: settings.NewStore(vals),
		assets:   assets.NewLoader(convert),
		fonts:    LoadFonts(),
		screen:   screen,
		dirty:    true,
	}

	opts := input.DefaultOptions()
	opts.PanStep = WheelPanStep
	g.engine = input.NewEngine(g.tokens, g.view, g.settings, g, opts)

	debug := &ui.DebugPanel{
		View:    g.view,
		Tokens:  g.tokens,
		Visible: func() bool { return g.settings.Get().View.Debug },
	}
	tooltip := &ui.Tooltip{
		View:     g.view,
		Hovered:  g.engine.Hovered,
		IconSize: func() float64 { return g.settings.Get().Token.IconSize },
	}
	g.ui = ui.NewUISystem(g.ZoomIn, g.ZoomOut, tooltip, debug)
	g.ui.Layout(screen)

	g.pipeline = &render.Pipeline{
		View:     g.view,
		Tokens:   g.tokens,
		Settings: g.settings,
		Images:   g.assets,
		State:    g.engine,
		Overlays: []render.Overlay{g.ui},
	}
	g.input = NewInputSystem(g)
	return g
}

// RequestRedraw implements input.Host.
func (g *Game) RequestRedraw() { g.dirty = true }

// OpenTokenEditor implements input.Host. Editing dialogs live outside the
// map view; the request is logged for the session record.
func (g *Game) OpenTokenEditor(t *tokens.Token) {
	log.Info().
		Str("id", t.ID.String()).
		Str("name", t.Name).
		Str("faction", t.Faction.String()).
		Str("size", t.SizeClass().String()).
		Str("movement", t.Movement).
		Int("initiative", t.Initiative).
		Msg("token editor requested")
}

// SetBackground loads the map image and makes its size the drawing area. The
// file is read again even if it was loaded before. A map that cannot be
// loaded leaves an empty map of EmptyMapSize.
func (g *Game) SetBackground(path string) {
	g.assets.Forget(path)
	if g.assets.Image(path) == g.assets.Placeholder() {
		g.pipeline.Background = ""
		g.view.SetDrawingSize(canvas.Size{W: EmptyMapSize, H: EmptyMapSize})
		g.ui.Debug.SetError("cannot load map " + path)
		g.dirty = true
		return
	}
	g.ui.Debug.Clear()
	g.pipeline.Background = path
	w, h := g.assets.Size(path)
	g.view.SetDrawingSize(canvas.Size{W: float64(w), H: float64(h)})
	g.dirty = true
	log.Info().Str("path", path).Int("w", w).Int("h", h).Msg("background set")
}

// LoadScenario runs an encounter script and applies it to the session.
func (g *Game) LoadScenario(path string) error {
	scene, err := scenario.LoadFile(path, g.settings.Get().Grid)
	if err != nil {
		return err
	}
	g.ui.Debug.Clear()
	if scene.Background != "" {
		g.SetBackground(scene.Background)
	}
	scene.Apply(g.tokens, g.settings)
	return nil
}

// AddToken places a new token with its top-left corner at world.
func (g *Game) AddToken(name, imagePath string, world canvas.Vec) *tokens.Token {
	t := tokens.New(name)
	t.ImagePath = imagePath
	t.SetPosition(world)
	g.tokens.Add(t)
	return t
}

// CreateTokenAtPointer adds a default token under the pointer.
func (g *Game) CreateTokenAtPointer() *tokens.Token {
	return g.AddToken(NewTokenName, "", g.engine.PointerWorld())
}

// ImportImageToken turns a decoded image into a token named after its file.
func (g *Game) ImportImageToken(name string, img image.Image, world canvas.Vec) *tokens.Token {
	key := DroppedPrefix + name
	g.assets.Put(key, img)
	return g.AddToken(assets.TokenName(name), key, world)
}

// ImportDropped creates a token for every image file in files, stacked at
// the pointer.
func (g *Game) ImportDropped(files fs.FS) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		log.Warn().Err(err).Msg("read dropped files")
		return
	}
	at := g.engine.PointerWorld()
	for _, e := range entries {
		if e.IsDir() || !assets.IsImage(e.Name()) {
			continue
		}
		f, err := files.Open(e.Name())
		if err != nil {
			log.Warn().Err(err).Str("file", e.Name()).Msg("open dropped file")
			continue
		}
		img, err := assets.DecodeReader(f, path.Base(e.Name()))
		f.Close()
		if err != nil {
			log.Warn().Err(err).Msg("dropped file is not an image")
			g.ui.Debug.SetError(err.Error())
			continue
		}
		t := g.ImportImageToken(e.Name(), img, at)
		log.Info().Str("token", t.Name).Msg("token imported from dropped image")
		at = at.Add(canvas.Vec{X: 10, Y: 10})
	}
}

// CycleFaction moves every selected token to the next faction.
func (g *Game) CycleFaction() {
	for _, id := range g.engine.Selection().IDs() {
		if t, ok := g.tokens.Get(id); ok {
			t.Update(func(t *tokens.Token) { t.Faction = t.Faction.Next() })
		}
	}
}

func (g *Game) ToggleGrid() {
	g.settings.Update(func(v *settings.Values) { v.Grid.Enabled = !v.Grid.Enabled })
}

// ResizeGrid changes the cell size by delta, never below MinGridCell.
func (g *Game) ResizeGrid(delta float64) {
	g.settings.Update(func(v *settings.Values) {
		v.Grid.CellSize = max(v.Grid.CellSize+delta, MinGridCell)
	})
}

func (g *Game) ToggleDebug() {
	g.settings.Update(func(v *settings.Values) { v.View.Debug = !v.View.Debug })
}

func (g *Game) SaveSettings() {
	if err := g.settings.Save(g.cfg.SettingsPath); err != nil {
		log.Error().Err(err).Msg("save settings")
		g.ui.Debug.SetError(err.Error())
	}
}

func (g *Game) screenCenter() canvas.Vec {
	return canvas.Vec{X: g.screen.W / 2, Y: g.screen.H / 2}
}

func (g *Game) ZoomIn()  { g.view.ZoomAt(g.screenCenter(), KeyboardZoomStep); g.dirty = true }
func (g *Game) ZoomOut() { g.view.ZoomAt(g.screenCenter(), -KeyboardZoomStep); g.dirty = true }

func (g *Game) Update() error {
	// Delegate to sub-systems
	g.input.Update()
	g.tick()
	return nil
}

// tick advances the viewport animation by one step.
func (g *Game) tick() {
	if g.view.Tick() {
		g.engine.RefreshHover()
		g.dirty = true
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.dirty && !g.screenshotRequested {
		return
	}
	g.dirty = false

	screen.Fill(ColorBackground)
	g.pipeline.Render(newSurface(screen, g.fonts))

	// --- Save Screenshot ---
	if g.screenshotRequested {
		g.screenshotRequested = false
		if err := saveScreenshot(screen, ScreenshotFile); err != nil {
			log.Error().Err(err).Msg("screenshot error")
		} else {
			log.Info().Str("path", ScreenshotFile).Msg("screenshot saved")
		}
	}
}

func saveScreenshot(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := canvas.Size{W: float64(outsideWidth), H: float64(outsideHeight)}
	if size != g.screen {
		g.screen = size
		g.view.Resize(size)
		g.ui.Layout(size)
		g.dirty = true
	}
	return outsideWidth, outsideHeight
}
