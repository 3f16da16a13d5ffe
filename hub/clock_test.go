package hub

import "testing"

func TestElapsedWraparound(t *testing.T) {
	tests := []struct {
		name       string
		now, since uint32
		want       uint32
	}{
		{"simple", 1500, 1000, 500},
		{"zero", 1000, 1000, 0},
		{"across wrap", 5, 0xFFFFFFFB, 10},
		{"at wrap", 0, 0xFFFFFFFF, 1},
		{"full span", 0xFFFFFFFF, 0, 0xFFFFFFFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := elapsed(tt.now, tt.since); got != tt.want {
				t.Errorf("elapsed(%#x, %#x) = %d, want %d", tt.now, tt.since, got, tt.want)
			}
		})
	}
}

func TestReachedWraparound(t *testing.T) {
	tests := []struct {
		name          string
		now, deadline uint32
		want          bool
	}{
		{"before", 900, 1000, false},
		{"exact", 1000, 1000, true},
		{"after", 1100, 1000, true},
		{"deadline past wrap, not reached", 0xFFFFFF00, 0x10, false},
		{"deadline past wrap, reached", 0x20, 0x10, true},
		{"now wrapped, deadline behind", 5, 0xFFFFFFF0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reached(tt.now, tt.deadline); got != tt.want {
				t.Errorf("reached(%#x, %#x) = %v, want %v", tt.now, tt.deadline, got, tt.want)
			}
		})
	}
}
