package hub

// Tempo range and timer constants. The reload math assumes a 16-bit
// one-shot timer counting at 500 kHz, as on the device hardware.
const (
	BPMMin     = 30
	BPMMax     = 300
	BPMDefault = 120

	timerCountsPerSecond = 500000
	timerRollover        = 0x10000
)

// TempoTimer is the hardware tempo timer capability. ArmTick programs
// the reload value; the implementation must re-arm itself on every
// overflow before raising its tick callback, so long-run drift stays
// bounded to rounding error.
type TempoTimer interface {
	ArmTick(reload uint16)
}

// TempoGen owns the BPM setting and derives the timer reload from it.
// 24 ticks per quarter note: one overflow every 60/(24*bpm) seconds.
type TempoGen struct {
	timer  TempoTimer
	bpm    int
	reload uint16
}

func NewTempoGen(t TempoTimer) *TempoGen {
	g := &TempoGen{timer: t}
	g.SetBPM(BPMDefault)
	return g
}

// SetBPM clamps to [BPMMin,BPMMax], stores the tempo and re-programs
// the timer. Out-of-range requests are not errors.
func (g *TempoGen) SetBPM(bpm int) {
	if bpm < BPMMin {
		bpm = BPMMin
	} else if bpm > BPMMax {
		bpm = BPMMax
	}
	g.bpm = bpm
	g.reload = uint16(timerRollover - int(CountsPerTick(bpm)))
	g.timer.ArmTick(g.reload)
}

func (g *TempoGen) BPM() int { return g.bpm }

func (g *TempoGen) Reload() uint16 { return g.reload }

// CountsPerTick returns the timer counts between clock ticks at the
// given tempo, rounded to the nearest count:
//
//	counts = round(60 * countsPerSecond / 24 / bpm)
func CountsPerTick(bpm int) uint32 {
	const perQuarter = 60 * timerCountsPerSecond / 24
	return uint32((perQuarter + bpm/2) / bpm)
}
