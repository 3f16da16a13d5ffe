package midi

import "testing"

func TestIsRealtime(t *testing.T) {
	tests := []struct {
		b    byte
		want bool
	}{
		{Tick, true},
		{Start, true},
		{Continue, true},
		{Stop, true},
		{0xF9, true}, // undefined realtime slots still classify
		{0xFE, true},
		{0xFF, true},
		{0xF7, false}, // end of sysex is not realtime
		{0xF0, false},
		{0x90, false},
		{0x42, false},
		{0x00, false},
	}
	for _, tt := range tests {
		if got := IsRealtime(tt.b); got != tt.want {
			t.Errorf("IsRealtime(%#x) = %v, want %v", tt.b, got, tt.want)
		}
	}
}
