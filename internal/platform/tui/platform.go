// Package tui runs the game on a terminal. A Bubble Tea program stands in
// for the window, frames are drawn with lipgloss, and the controlling
// terminal is reported as the only display.
package tui

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/johnlesterdev/babylon/internal/game"
)

// ErrNotTerminal is returned by Init when the output is not a terminal.
var ErrNotTerminal = errors.New("tui: output is not a terminal")

const eventBuffer = 256

// Default size in cells when the terminal size cannot be queried.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Platform implements game.Platform on top of Bubble Tea.
type Platform struct {
	in      io.Reader
	out     io.Writer
	altScrn bool
	keys    KeyMap

	events   chan game.Event
	active   bool
	quitSent bool
	win      *window
}

// Option configures a Platform.
type Option func(*Platform)

// WithInput reads keys from r instead of standard input.
func WithInput(r io.Reader) Option {
	return func(p *Platform) { p.in = r }
}

// WithOutput draws to w instead of standard output. Writers that are not
// files skip the terminal check and the alternate screen.
func WithOutput(w io.Writer) Option {
	return func(p *Platform) { p.out = w }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(km KeyMap) Option {
	return func(p *Platform) { p.keys = km }
}

// NewPlatform creates a terminal platform.
func NewPlatform(opts ...Option) *Platform {
	p := &Platform{
		in:   os.Stdin,
		out:  os.Stdout,
		keys: DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Init checks that the output is a terminal.
func (p *Platform) Init() error {
	if f, ok := p.out.(*os.File); ok {
		if !term.IsTerminal(int(f.Fd())) {
			return ErrNotTerminal
		}
		p.altScrn = true
	}
	p.events = make(chan game.Event, eventBuffer)
	p.quitSent = false
	p.active = true
	return nil
}

// CreateWindow starts the Bubble Tea program. width and height cap the frame
// size in cells; the frame otherwise follows the terminal size.
func (p *Platform) CreateWindow(title string, width, height int) (game.Window, error) {
	if !p.active {
		return nil, errors.New("tui: platform not initialized")
	}
	if p.win != nil {
		return nil, errors.New("tui: window already open")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("tui: invalid window size %dx%d", width, height)
	}

	w, h := defaultWidth, defaultHeight
	if f, ok := p.out.(*os.File); ok {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			w, h = tw, th
		}
	}

	state := &windowState{}
	state.resize(min(w, width), min(h, height))

	m := model{
		title:  title,
		keys:   p.keys,
		state:  state,
		events: p.events,
		maxW:   width,
		maxH:   height,
	}

	opts := []tea.ProgramOption{
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	}
	if p.altScrn {
		opts = append(opts, tea.WithAltScreen())
	}

	win := &window{
		program: tea.NewProgram(m, opts...),
		state:   state,
		done:    make(chan struct{}),
	}
	go win.run()

	p.win = win
	return win, nil
}

// CreateRenderer returns a renderer that presents frames into w.
func (p *Platform) CreateRenderer(w game.Window) (game.Renderer, error) {
	win, ok := w.(*window)
	if !ok || win == nil {
		return nil, errors.New("tui: window was not created by this platform")
	}
	return &renderer{win: win, color: game.ClearColor}, nil
}

// PollEvent returns the next pending event. Once the Bubble Tea program has
// exited a single quit event is reported.
func (p *Platform) PollEvent() (game.Event, bool) {
	select {
	case ev := <-p.events:
		if ev.Type == game.EventQuit {
			p.quitSent = true
		}
		return ev, true
	default:
	}

	if p.win != nil && !p.quitSent {
		select {
		case <-p.win.done:
			p.quitSent = true
			return game.Event{Type: game.EventQuit}, true
		default:
		}
	}
	return game.Event{}, false
}

// Quit shuts the platform down. A window still open is closed.
func (p *Platform) Quit() {
	if p.win != nil {
		//nolint:errcheck // Already reported by Window.Close when the game closed it
		p.win.Close()
		p.win = nil
	}
	p.active = false
}

// window is a running Bubble Tea program.
type window struct {
	program *tea.Program
	state   *windowState
	done    chan struct{}
	err     error

	closeOnce sync.Once
}

func (w *window) run() {
	defer close(w.done)
	_, w.err = w.program.Run()
}

// Close stops the program and waits for the terminal to be restored.
func (w *window) Close() error {
	w.closeOnce.Do(func() {
		w.program.Quit()
		<-w.done
	})
	if errors.Is(w.err, tea.ErrProgramKilled) {
		return nil
	}
	return w.err
}

// renderer draws solid frames into a window.
type renderer struct {
	win     *window
	color   color.RGBA
	frame   string
	shown   string
	drawing bool
}

func (r *renderer) SetDrawColor(c color.RGBA) {
	r.color = c
}

// Clear fills the back buffer with the draw color.
func (r *renderer) Clear() error {
	w, h := r.win.state.size()
	r.frame = RenderFrame(w, h, r.color)
	r.drawing = true
	return nil
}

// Present shows the back buffer. Unchanged frames are not resent.
func (r *renderer) Present() error {
	if !r.drawing {
		return nil
	}
	r.drawing = false

	select {
	case <-r.win.done:
		return nil
	default:
	}

	if r.frame == r.shown {
		return nil
	}
	r.shown = r.frame
	r.win.program.Send(frameMsg(r.frame))
	return nil
}

func (r *renderer) Close() error {
	r.frame, r.shown = "", ""
	return nil
}
