package hub

const (
	tapTimeout  = 1000 // ms since last tap before the session resets
	tapMaxCount = 6
)

// TapSession turns a run of manual taps into a BPM estimate. The
// estimate is the average period since the first tap, so it settles as
// taps accumulate.
type TapSession struct {
	count uint8
	first uint32
	last  uint32
}

func (s *TapSession) Active() bool { return s.count > 0 }

func (s *TapSession) Count() uint8 { return s.count }

// Tap registers one tap at now. From the second tap on it returns a
// fresh BPM estimate; the caller applies it to the tempo generator.
func (s *TapSession) Tap(now uint32) (int, bool) {
	if s.count == 0 {
		s.count = 1
		s.first = now
		s.last = now
		return 0, false
	}
	if s.count < tapMaxCount && now != s.first {
		period := elapsed(now, s.first) / uint32(s.count)
		if period > 0 {
			s.count++
			s.last = now
			return int(60000 / period), true
		}
	}
	s.last = now
	return 0, false
}

// Expire discards the in-progress average after a second of inactivity.
// It does not change the operating mode.
func (s *TapSession) Expire(now uint32) bool {
	if s.count != 0 && elapsed(now, s.last) > tapTimeout {
		*s = TapSession{}
		return true
	}
	return false
}

func (s *TapSession) Reset() { *s = TapSession{} }
