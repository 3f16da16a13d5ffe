package hub

import "github.com/hotchk155/midihub/eeprom"

// Test doubles for the hardware capability interfaces.

type manualClock struct{ ms uint32 }

func (c *manualClock) Now() uint32      { return c.ms }
func (c *manualClock) advance(d uint32) { c.ms += d }

type recordLink struct{ sent []byte }

func (l *recordLink) Send(b byte) { l.sent = append(l.sent, b) }

type scriptInput struct{ mask Buttons }

func (s *scriptInput) ReadButtons() Buttons { return s.mask }

type pinLEDs struct{ last uint8 }

func (p *pinLEDs) SetLEDs(mask uint8) { p.last = mask }

type fakeTimer struct {
	reload uint16
	armed  int
}

func (t *fakeTimer) ArmTick(r uint16) {
	t.reload = r
	t.armed++
}

// rig is a fully faked engine plus its doubles.
type rig struct {
	clock *manualClock
	link  *recordLink
	in    *scriptInput
	leds  *pinLEDs
	timer *fakeTimer
	store *eeprom.MemStore
	eng   *Engine
}

func newRig() *rig {
	r := &rig{
		clock: &manualClock{ms: 1},
		link:  &recordLink{},
		in:    &scriptInput{},
		leds:  &pinLEDs{},
		timer: &fakeTimer{},
		store: eeprom.NewMemStore(),
	}
	r.eng = NewEngine(Ports{
		Clock:  r.clock,
		Link:   r.link,
		Inputs: r.in,
		LEDs:   r.leds,
		Timer:  r.timer,
		Store:  r.store,
	}, DefaultTimings())
	return r
}

// press injects a debounced press of the given mask and releases it.
func (r *rig) press(b Buttons) {
	r.clock.advance(200)
	r.in.mask = b
	r.eng.Step()
	r.in.mask = 0
	r.clock.advance(200)
	r.eng.Step()
}

// hold keeps the mask down until the long-press event has fired.
func (r *rig) hold(b Buttons) {
	r.clock.advance(200)
	r.in.mask = b
	r.eng.Step()
	r.clock.advance(DefaultTimings().AutoRepeatDelay + 100)
	r.eng.Step()
	r.in.mask = 0
	r.clock.advance(200)
	r.eng.Step()
}

// tickOnce raises and consumes one tempo tick.
func (r *rig) tickOnce() {
	r.eng.RaiseTick()
	r.eng.Step()
}

func (r *rig) drainSent() []byte {
	out := r.link.sent
	r.link.sent = nil
	return out
}
