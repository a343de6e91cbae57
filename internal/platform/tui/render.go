package tui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// hexColor converts an RGBA draw color to a lipgloss color. Alpha is
// ignored; terminals have no blending.
func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// RenderFrame returns a width x height block filled with bg.
func RenderFrame(width, height int, bg color.RGBA) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	row := strings.Repeat(" ", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}

	return lipgloss.NewStyle().
		Background(hexColor(bg)).
		Render(strings.Join(rows, "\n"))
}
