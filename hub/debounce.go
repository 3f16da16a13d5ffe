package hub

import "strings"

// Buttons is the event mask: which buttons the event is about, plus
// modifier tags describing how it fired.
type Buttons uint8

const (
	BtnRun Buttons = 0x01
	BtnInc Buttons = 0x02
	BtnDec Buttons = 0x04

	// TagLongPress marks the first event after a button has been held
	// through the auto-repeat delay; TagAutoRepeat marks the repeats
	// that follow.
	TagLongPress  Buttons = 0x40
	TagAutoRepeat Buttons = 0x80
)

// Keys strips the modifier tags.
func (b Buttons) Keys() Buttons {
	return b &^ (TagLongPress | TagAutoRepeat)
}

func (b Buttons) String() string {
	var parts []string
	if b&BtnRun != 0 {
		parts = append(parts, "run")
	}
	if b&BtnInc != 0 {
		parts = append(parts, "inc")
	}
	if b&BtnDec != 0 {
		parts = append(parts, "dec")
	}
	if b&TagLongPress != 0 {
		parts = append(parts, "long")
	}
	if b&TagAutoRepeat != 0 {
		parts = append(parts, "rpt")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Timings are the configurable input and animation windows, in ms.
type Timings struct {
	DebouncePeriod     uint32
	AutoRepeatDelay    uint32
	AutoRepeatInterval uint32
	FadePeriod         uint32
}

// DefaultTimings matches the device firmware.
func DefaultTimings() Timings {
	return Timings{
		DebouncePeriod:     100,
		AutoRepeatDelay:    500,
		AutoRepeatInterval: 80,
		FadePeriod:         30,
	}
}

// Debouncer derives press, long-press and auto-repeat events from the
// raw button mask. The caller samples every loop iteration; the
// debounce deadline only gates when new events may be emitted.
type Debouncer struct {
	t           Timings
	primed      bool
	last        Buttons
	debounceEnd uint32
	repeatBegin uint32
	nextRepeat  uint32 // 0 means the long press has not fired yet
}

func NewDebouncer(t Timings) *Debouncer {
	return &Debouncer{t: t}
}

// Poll evaluates one sample. When a new press lands, the full current
// mask is emitted, so a chord forms as its buttons arrive. While the
// mask is held unchanged, the first event past the repeat delay is
// tagged long-press and later ones auto-repeat.
func (d *Debouncer) Poll(now uint32, raw Buttons) (Buttons, bool) {
	if !d.primed {
		// Deadlines are relative to observed time; anchor them on the
		// first sample so a counter that starts anywhere is fine.
		d.primed = true
		d.debounceEnd = now
		d.repeatBegin = now
	}
	if !reached(now, d.debounceEnd) {
		return 0, false
	}

	changed := raw ^ d.last
	d.last = raw

	if changed == 0 {
		if raw != 0 && reached(now, d.repeatBegin) {
			if d.nextRepeat == 0 {
				d.nextRepeat = now + d.t.AutoRepeatInterval
				return raw | TagLongPress, true
			}
			if reached(now, d.nextRepeat) {
				d.nextRepeat = now + d.t.AutoRepeatInterval
				return raw | TagAutoRepeat, true
			}
		}
		return 0, false
	}

	pressed := changed & raw
	if pressed != 0 {
		d.repeatBegin = now + d.t.AutoRepeatDelay
		d.nextRepeat = 0
	}
	d.debounceEnd = now + d.t.DebouncePeriod
	if pressed == 0 {
		return 0, false
	}
	return raw, true
}
