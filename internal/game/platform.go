package game

import "image/color"

// EventType identifies a platform event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKey
)

// String returns a human-readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EventNone:
		return "None"
	case EventQuit:
		return "Quit"
	case EventResize:
		return "Resize"
	case EventKey:
		return "Key"
	default:
		return "Unknown"
	}
}

// Event is one input or window event delivered by the platform.
type Event struct {
	Type EventType
	// Key is set for EventKey.
	Key string
	// Width and Height are set for EventResize.
	Width, Height int
}

// Window is an open platform window.
type Window interface {
	Close() error
}

// Renderer draws frames into a window.
type Renderer interface {
	SetDrawColor(c color.RGBA)
	Clear() error
	Present() error
	Close() error
}

// Platform is the windowing and rendering subsystem the game runs on.
type Platform interface {
	// Init brings the subsystem up. Quit undoes it.
	Init() error
	CreateWindow(title string, width, height int) (Window, error)
	CreateRenderer(w Window) (Renderer, error)
	// PollEvent returns the next pending event without blocking.
	PollEvent() (Event, bool)
	Quit()
}
