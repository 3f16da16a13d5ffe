package hub

import "testing"

func TestDebouncerEmitsFullMaskOnPress(t *testing.T) {
	d := NewDebouncer(DefaultTimings())

	ev, ok := d.Poll(1000, BtnRun)
	if !ok || ev != BtnRun {
		t.Fatalf("Poll = %v,%v, want run press", ev, ok)
	}

	// Second button landing later joins the chord: the event carries
	// the full current mask.
	ev, ok = d.Poll(1200, BtnRun|BtnDec)
	if !ok || ev != BtnRun|BtnDec {
		t.Fatalf("Poll = %v,%v, want run+dec chord", ev, ok)
	}
}

func TestDebouncerSuppressesBounce(t *testing.T) {
	d := NewDebouncer(DefaultTimings())

	if _, ok := d.Poll(1000, BtnInc); !ok {
		t.Fatal("initial press not emitted")
	}

	// Contact bounce inside the debounce window: no further events.
	for _, now := range []uint32{1010, 1030, 1050, 1090} {
		if ev, ok := d.Poll(now, 0); ok {
			t.Fatalf("bounce at %d emitted %v", now, ev)
		}
		if ev, ok := d.Poll(now+5, BtnInc); ok {
			t.Fatalf("bounce at %d emitted %v", now+5, ev)
		}
	}

	// After the window a fresh edge is a fresh press.
	if _, ok := d.Poll(1100, 0); ok {
		t.Fatal("release emitted an event")
	}
	if ev, ok := d.Poll(1250, BtnInc); !ok || ev != BtnInc {
		t.Fatalf("re-press = %v,%v, want inc press", ev, ok)
	}
}

func TestDebouncerLongPressThenRepeat(t *testing.T) {
	tm := DefaultTimings()
	d := NewDebouncer(tm)

	if _, ok := d.Poll(1000, BtnDec); !ok {
		t.Fatal("press not emitted")
	}

	// Held, still inside the repeat delay: silent.
	if ev, ok := d.Poll(1400, BtnDec); ok {
		t.Fatalf("early hold emitted %v", ev)
	}

	// First qualifying event carries the long-press tag.
	ev, ok := d.Poll(1500, BtnDec)
	if !ok || ev != BtnDec|TagLongPress {
		t.Fatalf("hold = %v,%v, want dec+long", ev, ok)
	}

	// Subsequent ones repeat at the repeat interval.
	if ev, ok := d.Poll(1540, BtnDec); ok {
		t.Fatalf("mid-interval emitted %v", ev)
	}
	ev, ok = d.Poll(1500+tm.AutoRepeatInterval, BtnDec)
	if !ok || ev != BtnDec|TagAutoRepeat {
		t.Fatalf("repeat = %v,%v, want dec+rpt", ev, ok)
	}
}

func TestDebouncerAcrossCounterWrap(t *testing.T) {
	d := NewDebouncer(DefaultTimings())

	start := uint32(0xFFFFFFF0) // deadlines land past the wrap
	if _, ok := d.Poll(start, BtnRun); !ok {
		t.Fatal("press not emitted near wrap")
	}

	// Inside the debounce window even though now has wrapped to small
	// values: no event.
	if ev, ok := d.Poll(10, 0); ok {
		t.Fatalf("wrapped sample inside debounce window emitted %v", ev)
	}

	// Past the window (0xFFFFFFF0+100 wraps to 0x84): events flow.
	if ev, ok := d.Poll(0x90, BtnRun); !ok || ev != BtnRun {
		t.Fatalf("post-wrap press = %v,%v, want run", ev, ok)
	}
}

func TestButtonsString(t *testing.T) {
	tests := []struct {
		b    Buttons
		want string
	}{
		{0, "none"},
		{BtnRun, "run"},
		{BtnRun | BtnInc | BtnDec, "run+inc+dec"},
		{BtnDec | TagAutoRepeat, "dec+rpt"},
		{BtnRun | TagLongPress, "run+long"},
	}
	for _, tt := range tests {
		if got := tt.b.String(); got != tt.want {
			t.Errorf("%#x.String() = %q, want %q", uint8(tt.b), got, tt.want)
		}
	}
}
