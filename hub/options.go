package hub

import "github.com/hotchk155/midihub/eeprom"

// Options is the persisted feature bitmask. The low five bits map onto
// the first five menu positions.
type Options uint8

const (
	OptPassRealtime Options = 1 << 0 // pass realtime bytes through thru
	OptPassOther    Options = 1 << 1 // pass non-realtime bytes through thru
	OptStartStop    Options = 1 << 2 // emit explicit START/STOP/CONTINUE
	OptThruAnimate  Options = 1 << 3 // animate LEDs from thru traffic
	OptDiscreet     Options = 1 << 4 // single-LED running indicator

	OptionsDefault = OptPassOther | OptStartStop | OptThruAnimate
)

func (o Options) Has(bit Options) bool { return o&bit != 0 }

// Storage layout: one options byte plus a magic cookie that marks the
// record as previously written rather than uninitialized memory.
const (
	addrMagicCookie = 9
	addrOptions     = 10
	magicCookie     = 0xA5
)

// OptionsStore persists the option bitmask in the opaque byte store.
type OptionsStore struct {
	mem eeprom.ByteStore
}

func NewOptionsStore(mem eeprom.ByteStore) *OptionsStore {
	return &OptionsStore{mem: mem}
}

// Load returns the persisted options, falling back to the compiled-in
// defaults when the cookie does not match. Corruption is recovered
// silently, never surfaced as a fault.
func (s *OptionsStore) Load() Options {
	o := Options(s.mem.ReadByte(addrOptions))
	if s.mem.ReadByte(addrMagicCookie) != magicCookie {
		return OptionsDefault
	}
	return o
}

// Save rewrites both the options byte and the cookie.
func (s *OptionsStore) Save(o Options) {
	s.mem.WriteByte(addrOptions, byte(o))
	s.mem.WriteByte(addrMagicCookie, magicCookie)
}
