// Package midi carries the transport byte protocol and the serial link
// backends. On the wire everything is single status bytes at the MIDI
// rate: 31250 baud, 8-N-1.
package midi

// Beat clock messages.
const (
	Tick     byte = 0xF8
	Start    byte = 0xFA
	Continue byte = 0xFB
	Stop     byte = 0xFC
)

// Baud is the fixed serial rate of a DIN MIDI link.
const Baud = 31250

// IsRealtime reports whether b is a single-byte realtime status:
// the top five bits are all set (0xF8..0xFF).
func IsRealtime(b byte) bool {
	return b&0xF8 == 0xF8
}
