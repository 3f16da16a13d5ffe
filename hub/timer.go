package hub

import (
	"context"
	"sync/atomic"
	"time"
)

// SoftTimer emulates the tempo timer in hosted runs: it fires a callback
// once per armed period. The next deadline is scheduled before the
// callback runs, mirroring the re-arm-first rule of the interrupt
// handler, so callback latency does not accumulate into the period.
type SoftTimer struct {
	period atomic.Int64 // nanoseconds per overflow
	raise  func()
}

// NewSoftTimer returns a timer that calls raise on every overflow.
// raise must be safe to call from the timer goroutine.
func NewSoftTimer(raise func()) *SoftTimer {
	t := &SoftTimer{raise: raise}
	t.ArmTick(0)
	return t
}

// ArmTick converts a 16-bit reload value into the overflow period.
func (t *SoftTimer) ArmTick(reload uint16) {
	counts := int64(timerRollover) - int64(reload)
	t.period.Store(counts * int64(time.Second) / timerCountsPerSecond)
}

// Run fires ticks until ctx is done. Blocking; run in a goroutine.
func (t *SoftTimer) Run(ctx context.Context) {
	tm := time.NewTimer(t.periodDur())
	defer tm.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tm.C:
			tm.Reset(t.periodDur())
			t.raise()
		}
	}
}

func (t *SoftTimer) periodDur() time.Duration {
	return time.Duration(t.period.Load())
}
