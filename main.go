package main

import (
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"battle-map/settings"
)

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level, using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func main() {
	var cfg AppConfig
	var logLevel string
	flag.StringVar(&cfg.SettingsPath, "config", DefaultSettingsFile, "settings file (YAML)")
	flag.StringVar(&cfg.MapPath, "map", "", "background map image")
	flag.StringVar(&cfg.ScenarioPath, "scenario", "", "encounter script (Starlark)")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.IntVar(&cfg.Width, "width", DefaultWindowWidth, "window width")
	flag.IntVar(&cfg.Height, "height", DefaultWindowHeight, "window height")
	flag.Parse()

	setupLogging(logLevel)

	vals, err := settings.Load(cfg.SettingsPath)
	if err != nil {
		log.Warn().Err(err).Msg("settings not loaded, using defaults")
	}

	g := NewGame(cfg, vals)
	if cfg.MapPath != "" {
		g.SetBackground(cfg.MapPath)
	}
	if cfg.ScenarioPath != "" {
		if err := g.LoadScenario(cfg.ScenarioPath); err != nil {
			log.Error().Err(err).Msg("scenario not loaded")
			g.ui.Debug.SetError(err.Error())
		}
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal().Err(err).Msg("game loop")
	}
}
