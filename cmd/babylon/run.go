package main

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/johnlesterdev/babylon/internal/config"
	"github.com/johnlesterdev/babylon/internal/engine"
	"github.com/johnlesterdev/babylon/internal/game"
	"github.com/johnlesterdev/babylon/internal/logger"
	"github.com/johnlesterdev/babylon/internal/monitor"
	"github.com/johnlesterdev/babylon/internal/util"
)

// Settings keys read from the engine config file.
const (
	keyWindowTitle  = "window.title"
	keyWindowWidth  = "window.width"
	keyWindowHeight = "window.height"
	keyGameFPS      = "game.fps"
	keyLogLevel     = "log.level"
)

// run initializes paths, logging and settings, then plays until the window
// is closed.
func (a *app) run() error {
	paths, err := engine.InitPaths(a.baseDir)
	if err != nil {
		fmt.Fprintf(a.stderr, "ERROR: %v\n", err)
	}

	log := logger.New()
	logFile := ""
	if paths != nil {
		logFile = paths.LogFile()
	}
	// The platform draws on stdout, so console lines go to stderr.
	log.Init(a.stderr, logFile, logger.Info, "")
	defer log.Destroy()

	if paths != nil {
		log.Infof("Game Root Path: %s", paths.Root)
		log.Infof("Game Config Path: %s", paths.Config)
	}

	profiler := &util.Profiler{
		Report: func(name string, d time.Duration) {
			log.Debugf("Function %s took %.3f ms to execute", name, util.Millis(d))
		},
	}

	var opts game.Options
	profiler.Measure("loadSettings", func() {
		opts = loadSettings(log, paths)
	})

	monitors, err := util.MeasureValue(profiler, "monitor.GetAll", func() ([]monitor.Info, error) {
		return monitor.GetAll(a.display)
	})
	if err != nil {
		log.Warnf("Monitor query failed: %v", err)
	} else if len(monitors) == 0 {
		log.Infof("No monitors found.")
	}
	for _, m := range monitors {
		if m.HasBounds {
			log.Infof("Monitor %d: %s (%dx%d at %d,%d)", m.ID, m.Name, m.Bounds.W, m.Bounds.H, m.Bounds.X, m.Bounds.Y)
		} else {
			log.Infof("Monitor %d: %s (bounds unknown)", m.ID, m.Name)
		}
	}

	g, err := game.Init(a.newPlatform(), log, opts, profiler)
	if err != nil {
		return fmt.Errorf("%w: %v", errGameInit, err)
	}
	defer g.Destroy()

	g.Run()
	return nil
}

// defaultSettings is written to a fresh config file.
func defaultSettings() *config.Map {
	d := game.DefaultOptions()
	m := config.NewMap()
	for _, e := range []config.Entry{
		{Key: keyWindowTitle, Value: config.String(d.Title)},
		{Key: keyWindowWidth, Value: config.Int(d.Width)},
		{Key: keyWindowHeight, Value: config.Int(d.Height)},
		{Key: keyGameFPS, Value: config.Int(d.TickRate)},
		{Key: keyLogLevel, Value: config.String("info")},
	} {
		if err := m.Add(e.Key, e.Value); err != nil {
			panic(err)
		}
	}
	return m
}

// loadSettings reads the game options from the engine config file, creating
// it with defaults when it does not exist yet. Bad files fall back to the
// defaults.
func loadSettings(log *logger.Logger, paths *engine.Paths) game.Options {
	defaults := defaultSettings()
	defer defaults.Destroy()

	settings := defaults
	if paths != nil {
		path := paths.ConfigFile()
		m, err := config.LoadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			if werr := config.WriteFile(defaults, path); werr != nil {
				log.Warnf("Cannot write default settings: %v", werr)
			} else {
				log.Infof("Wrote default settings to %s", path)
			}
		case err != nil:
			log.Warnf("Using default settings: %v", err)
		default:
			defer m.Destroy()
			settings = m
		}
	}

	if lvl := settings.String(keyLogLevel, ""); lvl != "" {
		level, err := logger.ParseLevel(lvl)
		if err != nil {
			log.Warnf("Ignoring %s: %v", keyLogLevel, err)
		} else if err := log.SetLevel(level); err != nil {
			log.Warnf("Ignoring %s: %v", keyLogLevel, err)
		}
	}

	d := game.DefaultOptions()
	return game.Options{
		Title:    settings.String(keyWindowTitle, d.Title),
		Width:    positive(settings.Int(keyWindowWidth, d.Width), d.Width),
		Height:   positive(settings.Int(keyWindowHeight, d.Height), d.Height),
		TickRate: max(settings.Int(keyGameFPS, d.TickRate), 0),
	}
}

func positive(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
