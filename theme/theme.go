// Package theme maps LED duty levels and UI roles onto terminal colors.
package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// RGB is a raw 8-bit color triple.
type RGB [3]uint8

// Theme holds the panel palette: an amber LED ramp plus a few UI roles.
type Theme struct {
	ledOff RGB
	ledOn  RGB
}

func New() *Theme {
	return &Theme{
		ledOff: RGB{0x2a, 0x1a, 0x00},
		ledOn:  RGB{0xff, 0xb0, 0x00},
	}
}

// LED returns the color for a duty level against the given maximum,
// interpolating the amber ramp so menu brightness reads correctly.
func (t *Theme) LED(duty, max uint8) lipgloss.Color {
	if max == 0 || duty > max {
		max = 50
	}
	return rgbToLipgloss(lerp(t.ledOff, t.ledOn, float64(duty)/float64(max)))
}

func (t *Theme) FG() lipgloss.Color {
	return lipgloss.Color("#d8c8a8")
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.ledOn)
}

func (t *Theme) Muted() lipgloss.Color {
	return lipgloss.Color("#665533")
}

func lerp(a, b RGB, f float64) RGB {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	var out RGB
	for i := 0; i < 3; i++ {
		out[i] = uint8(float64(a[i]) + f*(float64(b[i])-float64(a[i])))
	}
	return out
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
