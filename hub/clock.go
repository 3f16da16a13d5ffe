package hub

import "time"

// Clock is the 1 ms system tick counter. Implementations must be
// monotonic except for the defined 32-bit wraparound; all duration
// comparisons in this package go through elapsed so the wrap is safe.
type Clock interface {
	Now() uint32
}

// WallClock counts milliseconds since construction.
type WallClock struct {
	start time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (c *WallClock) Now() uint32 {
	return uint32(time.Since(c.start) / time.Millisecond)
}

// elapsed returns now-since in milliseconds. Plain unsigned subtraction,
// which stays correct across the counter wrap.
func elapsed(now, since uint32) uint32 {
	return now - since
}

// reached reports whether now has passed deadline, tolerating wraparound.
func reached(now, deadline uint32) bool {
	return int32(now-deadline) >= 0
}
