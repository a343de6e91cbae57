// Package monitor enumerates the displays attached to the machine.
package monitor

import (
	"fmt"
)

// Rect is a display's position and size in the display's own units.
type Rect struct {
	X, Y, W, H int
}

// Info describes one display. Bounds is only meaningful when HasBounds is
// set.
type Info struct {
	ID        int
	Name      string
	Bounds    Rect
	HasBounds bool
}

// Display is the display subsystem queried by GetAll.
type Display interface {
	// Active reports whether the subsystem is already initialized.
	Active() bool
	Init() error
	NumDisplays() (int, error)
	// DisplayName returns false when the platform has no name for i.
	DisplayName(i int) (string, bool)
	DisplayBounds(i int) (Rect, error)
}

// GetAll returns a snapshot of every display, initializing d first if it is
// not active. On any failure it returns nil and the error. A subsystem with
// no displays yields an empty snapshot and no error.
func GetAll(d Display) ([]Info, error) {
	if !d.Active() {
		if err := d.Init(); err != nil {
			return nil, fmt.Errorf("monitor: cannot initialize display subsystem: %w", err)
		}
	}

	n, err := d.NumDisplays()
	if err != nil {
		return nil, fmt.Errorf("monitor: cannot count displays: %w", err)
	}
	if n < 0 {
		return nil, fmt.Errorf("monitor: invalid display count %d", n)
	}
	if n == 0 {
		return nil, nil
	}

	monitors := make([]Info, n)
	for i := range monitors {
		m := &monitors[i]
		m.ID = i

		if name, ok := d.DisplayName(i); ok && name != "" {
			m.Name = name
		} else {
			m.Name = fmt.Sprintf("Monitor %d", i)
		}

		if b, err := d.DisplayBounds(i); err == nil {
			m.Bounds = b
			m.HasBounds = true
		}
	}
	return monitors, nil
}
