package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/johnlesterdev/babylon/internal/game"
)

// frameMsg carries a presented frame into the Bubble Tea program.
type frameMsg string

// windowState is shared between the Bubble Tea goroutine and the game loop.
type windowState struct {
	mu            sync.Mutex
	width, height int
}

func (s *windowState) size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *windowState) resize(w, h int) {
	s.mu.Lock()
	s.width, s.height = w, h
	s.mu.Unlock()
}

// model is the Bubble Tea model backing a terminal window. It forwards input
// to the game loop and displays whatever frame was presented last.
type model struct {
	title  string
	frame  string
	keys   KeyMap
	state  *windowState
	events chan<- game.Event
	// maxW and maxH cap the frame at the size the game asked for.
	maxW, maxH int
}

// Init sets the terminal title.
func (m model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.title)
}

// Update handles messages and updates the model state.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		ev := m.keys.MapKey(msg)
		m.send(ev)
		if ev.Type == game.EventQuit {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		w, h := min(msg.Width, m.maxW), min(msg.Height, m.maxH)
		m.state.resize(w, h)
		m.send(game.Event{Type: game.EventResize, Width: w, Height: h})

	case frameMsg:
		m.frame = string(msg)
	}

	return m, nil
}

// View renders the last presented frame.
func (m model) View() string {
	return m.frame
}

// send delivers ev without blocking the Bubble Tea loop. Events are dropped
// when the game loop falls behind; a dropped quit is recovered because the
// program exit is reported as well.
func (m model) send(ev game.Event) {
	select {
	case m.events <- ev:
	default:
	}
}
