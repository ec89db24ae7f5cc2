// Package colorutil provides shared color utilities for the drawing application.
package colorutil

import (
	"fmt"
	"image/color"
)

// Preset pen colors offered in the tools panel.
var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red    = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	Orange = color.RGBA{R: 245, G: 140, B: 0, A: 255}
	Yellow = color.RGBA{R: 250, G: 210, B: 0, A: 255}
	Green  = color.RGBA{R: 40, G: 160, B: 70, A: 255}
	Blue   = color.RGBA{R: 40, G: 90, B: 220, A: 255}
	Purple = color.RGBA{R: 130, G: 60, B: 190, A: 255}
)

// Palette lists the preset pen colors in display order.
var Palette = []color.RGBA{Black, Red, Orange, Yellow, Green, Blue, Purple, White}

// Hex formats an opaque color as a "#rrggbb" string.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// FromHex parses a "#rrggbb" string into an opaque color.
func FromHex(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
