// Package game owns the window/renderer pair and runs the frame loop.
package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/johnlesterdev/babylon/internal/logger"
	"github.com/johnlesterdev/babylon/internal/util"
)

// Options configure the window and frame pacing.
type Options struct {
	Title    string
	Width    int
	Height   int
	TickRate int // Frames per second; 0 runs unpaced
}

// DefaultOptions returns the stock 640x480 window at 60 frames per second.
func DefaultOptions() Options {
	return Options{
		Title:    "Babylon",
		Width:    640,
		Height:   480,
		TickRate: 60,
	}
}

// ClearColor is the color each frame is cleared to.
var ClearColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// Game is the running game state. It is not safe for concurrent use.
type Game struct {
	running  bool
	platform Platform
	window   Window
	renderer Renderer
	log      *logger.Logger
	opts     Options
	profiler *util.Profiler
	frames   uint64
}

// Init brings up the platform and creates a window and a renderer for it.
// If any step fails, everything created so far is released in reverse order
// and the error is returned. profiler may be nil.
func Init(p Platform, log *logger.Logger, opts Options, profiler *util.Profiler) (*Game, error) {
	log.Infof("Initializing game...")

	if profiler == nil {
		profiler = &util.Profiler{}
	}
	g := &Game{
		running:  true,
		platform: p,
		log:      log,
		opts:     opts,
		profiler: profiler,
	}

	if err := p.Init(); err != nil {
		log.Errorf("Platform init error: %v", err)
		return nil, fmt.Errorf("game: platform init: %w", err)
	}

	win, err := util.MeasureValue(profiler, "CreateWindow", func() (Window, error) {
		return p.CreateWindow(opts.Title, opts.Width, opts.Height)
	})
	if err != nil {
		log.Errorf("CreateWindow error: %v", err)
		p.Quit()
		return nil, fmt.Errorf("game: create window: %w", err)
	}
	g.window = win

	ren, err := util.MeasureValue(profiler, "CreateRenderer", func() (Renderer, error) {
		return p.CreateRenderer(win)
	})
	if err != nil {
		log.Errorf("CreateRenderer error: %v", err)
		if cerr := win.Close(); cerr != nil {
			log.Warnf("Window close error: %v", cerr)
		}
		p.Quit()
		return nil, fmt.Errorf("game: create renderer: %w", err)
	}
	g.renderer = ren

	log.Infof("Game initialized.")
	return g, nil
}

// Running reports whether the loop will run another frame.
func (g *Game) Running() bool {
	return g.running
}

// Frames returns the number of frames presented so far.
func (g *Game) Frames() uint64 {
	return g.frames
}

// Run polls events and redraws until a quit event arrives.
func (g *Game) Run() {
	g.log.Infof("ALL took %.3f ms. Starting game loop...", util.Millis(g.profiler.Total()))

	var interval time.Duration
	if g.opts.TickRate > 0 {
		interval = time.Second / time.Duration(g.opts.TickRate)
	}
	next := time.Now()

	for g.running {
		g.pollEvents()
		if !g.running {
			break
		}

		g.renderer.SetDrawColor(ClearColor)
		if err := g.renderer.Clear(); err != nil {
			g.log.Warnf("Clear error: %v", err)
		}
		if err := g.renderer.Present(); err != nil {
			g.log.Warnf("Present error: %v", err)
		}
		g.frames++

		if interval > 0 {
			next = next.Add(interval)
			if d := time.Until(next); d > 0 {
				time.Sleep(d)
			} else {
				next = time.Now()
			}
		}
	}

	g.log.Infof("Game loop stopped after %d frames.", g.frames)
}

func (g *Game) pollEvents() {
	for {
		ev, ok := g.platform.PollEvent()
		if !ok {
			return
		}
		switch ev.Type {
		case EventQuit:
			g.running = false
		case EventResize:
			g.log.Debugf("Window resized to %dx%d", ev.Width, ev.Height)
		}
	}
}

// Destroy releases the renderer, then the window, then the platform. It is
// safe on a nil game and may be called more than once.
func (g *Game) Destroy() {
	if g == nil {
		return
	}
	g.log.Infof("Destroying game...")

	if g.renderer != nil {
		if err := g.renderer.Close(); err != nil {
			g.log.Warnf("Renderer close error: %v", err)
		}
		g.renderer = nil
	}
	if g.window != nil {
		if err := g.window.Close(); err != nil {
			g.log.Warnf("Window close error: %v", err)
		}
		g.window = nil
	}
	if g.platform != nil {
		g.platform.Quit()
		g.platform = nil
	}
	g.running = false
}
