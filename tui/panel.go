package tui

import (
	"sync"
	"time"

	"github.com/hotchk155/midihub/hub"
)

// Key latch windows. Terminals report no key-up events, so a key press
// stands in for holding the button down for a short while; the long
// window outlives the auto-repeat delay so held-button behavior (long
// press, repeat) is reachable.
const (
	tapHold  = 150 * time.Millisecond
	longHold = 900 * time.Millisecond
)

// Panel is the simulated front panel: three latched buttons in, six
// LED pins out. It implements hub.InputPort and hub.LEDPort; the
// engine loop polls it, the TUI writes it.
type Panel struct {
	mu    sync.Mutex
	until map[hub.Buttons]time.Time
	pins  uint8
}

func NewPanel() *Panel {
	return &Panel{until: make(map[hub.Buttons]time.Time)}
}

// Press latches the given buttons for the tap window. Buttons pressed
// while others are still latched form a chord.
func (p *Panel) Press(b hub.Buttons) { p.press(b, tapHold) }

// Hold latches the given buttons long enough to trigger the long-press
// and auto-repeat paths. Terminal key repeat extends the latch.
func (p *Panel) Hold(b hub.Buttons) { p.press(b, longHold) }

func (p *Panel) press(b hub.Buttons, d time.Duration) {
	deadline := time.Now().Add(d)
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, bit := range []hub.Buttons{hub.BtnRun, hub.BtnInc, hub.BtnDec} {
		if b&bit != 0 {
			p.until[bit] = deadline
		}
	}
}

// ReadButtons returns the mask of buttons still latched.
func (p *Panel) ReadButtons() hub.Buttons {
	now := time.Now()
	p.mu.Lock()
	defer p.mu.Unlock()
	var mask hub.Buttons
	for bit, deadline := range p.until {
		if now.Before(deadline) {
			mask |= bit
		}
	}
	return mask
}

// SetLEDs records the physical pin mask written by the PWM compare.
func (p *Panel) SetLEDs(mask uint8) {
	p.mu.Lock()
	p.pins = mask
	p.mu.Unlock()
}

// Pins returns the last written pin mask.
func (p *Panel) Pins() uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pins
}
