package tui

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/johnlesterdev/babylon/internal/monitor"
)

// Display reports the controlling terminal as a single display, sized in
// cells.
type Display struct {
	f      *os.File
	active bool
}

// NewDisplay creates a display backed by f, usually os.Stdout.
func NewDisplay(f *os.File) *Display {
	return &Display{f: f}
}

func (d *Display) Active() bool {
	return d.active
}

func (d *Display) Init() error {
	if d.f == nil || !term.IsTerminal(int(d.f.Fd())) {
		return ErrNotTerminal
	}
	d.active = true
	return nil
}

func (d *Display) NumDisplays() (int, error) {
	if !d.active {
		return 0, errors.New("tui: display not initialized")
	}
	return 1, nil
}

// DisplayName returns $TERM.
func (d *Display) DisplayName(i int) (string, bool) {
	if i != 0 {
		return "", false
	}
	name := os.Getenv("TERM")
	return name, name != ""
}

func (d *Display) DisplayBounds(i int) (monitor.Rect, error) {
	if i != 0 {
		return monitor.Rect{}, fmt.Errorf("tui: no display %d", i)
	}
	w, h, err := term.GetSize(int(d.f.Fd()))
	if err != nil {
		return monitor.Rect{}, err
	}
	return monitor.Rect{W: w, H: h}, nil
}
