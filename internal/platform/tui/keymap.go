package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/johnlesterdev/babylon/internal/game"
)

// KeyMap holds the key bindings the terminal window reacts to.
type KeyMap struct {
	Quit key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q", "esc"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// MapKey translates a Bubble Tea key message into a game event.
func (km KeyMap) MapKey(msg tea.KeyMsg) game.Event {
	if key.Matches(msg, km.Quit) {
		return game.Event{Type: game.EventQuit}
	}
	return game.Event{Type: game.EventKey, Key: msg.String()}
}
