package hub

import (
	"testing"

	"github.com/hotchk155/midihub/eeprom"
)

func TestOptionsRoundTrip(t *testing.T) {
	mem := eeprom.NewMemStore()
	s := NewOptionsStore(mem)

	s.Save(Options(0b00010110))

	// Power cycle: a fresh store over the same bytes.
	if got := NewOptionsStore(mem).Load(); got != 0b00010110 {
		t.Errorf("Load() = %08b, want 00010110", got)
	}
}

func TestOptionsCookieMismatchFallsBack(t *testing.T) {
	mem := eeprom.NewMemStore()
	s := NewOptionsStore(mem)
	s.Save(Options(0b00011111))

	// Corrupt the cookie: the options byte must be discarded.
	mem.WriteByte(addrMagicCookie, 0x00)
	if got := s.Load(); got != OptionsDefault {
		t.Errorf("Load() after corruption = %08b, want defaults %08b", got, OptionsDefault)
	}
}

func TestOptionsUnwrittenStoreLoadsDefaults(t *testing.T) {
	s := NewOptionsStore(eeprom.NewMemStore())
	if got := s.Load(); got != OptionsDefault {
		t.Errorf("Load() from blank store = %08b, want %08b", got, OptionsDefault)
	}
}

func TestOptionsHas(t *testing.T) {
	o := OptPassOther | OptThruAnimate
	if !o.Has(OptPassOther) || !o.Has(OptThruAnimate) {
		t.Error("Has missed a set bit")
	}
	if o.Has(OptPassRealtime) || o.Has(OptDiscreet) {
		t.Error("Has reported an unset bit")
	}
}
