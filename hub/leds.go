package hub

// LED and PWM constants, matching the device firmware.
const (
	NumLEDs      = 6
	pwmMax       = 50
	pwmDim       = 5
	thruDutySeed = 10 // duty modulus for thru-traffic animation
)

// brightnessLevels are the menu-selectable maximum duties.
var brightnessLevels = [6]uint8{50, 20, 10, 5, 2, 1}

// ledBank drives six software-PWM channels. Two mechanisms coexist:
// the per-period duty/counter compare, and the periodic fade decay
// used for glow trails in no-clock and thru-animation modes.
type ledBank struct {
	duty     [NumLEDs]uint8
	pwm      uint8
	nextFade uint32
}

// mask compares every duty against the free-running PWM counter and
// advances the counter. One call per main-loop iteration.
func (l *ledBank) mask() uint8 {
	var m uint8
	for i := 0; i < NumLEDs; i++ {
		if l.duty[i] > l.pwm {
			m |= 1 << i
		}
	}
	l.pwm++
	if l.pwm > pwmMax {
		l.pwm = 0
	}
	return m
}

// fade decrements every nonzero duty once per fade period.
func (l *ledBank) fade(now, period uint32) {
	if !reached(now, l.nextFade) {
		return
	}
	for i := range l.duty {
		if l.duty[i] > 0 {
			l.duty[i]--
		}
	}
	l.nextFade = now + period
}

func (l *ledBank) set(p [NumLEDs]uint8) { l.duty = p }

// Pattern builders. All take the current maximum duty so the menu's
// brightness setting applies everywhere.

// tapPattern: LED0 full, LEDs 1..5 fill in as the tap count grows.
func tapPattern(count uint8, maxDuty uint8) [NumLEDs]uint8 {
	var p [NumLEDs]uint8
	p[0] = pwmMax
	for i := uint8(1); i < NumLEDs; i++ {
		if count > i {
			p[i] = maxDuty
		}
	}
	return p
}

// runningPattern cycles one LED per 4 ticks around the ring.
func runningPattern(phase uint8, maxDuty uint8) [NumLEDs]uint8 {
	var p [NumLEDs]uint8
	p[phase/4] = maxDuty
	return p
}

// pausedPattern flashes the corner LEDs at the beat boundary.
func pausedPattern(phase uint8, maxDuty uint8) [NumLEDs]uint8 {
	var p [NumLEDs]uint8
	if phase == 0 {
		p[0], p[1], p[4], p[5] = maxDuty, maxDuty, maxDuty, maxDuty
	}
	return p
}

// discreetRunning keeps LED0 steady and blinks LED5 on the beat.
func discreetRunning(phase uint8, maxDuty uint8) [NumLEDs]uint8 {
	var p [NumLEDs]uint8
	p[0] = maxDuty
	if phase == 1 {
		p[5] = maxDuty
	}
	return p
}

// discreetPaused blinks only LED5 at the beat boundary.
func discreetPaused(phase uint8, maxDuty uint8) [NumLEDs]uint8 {
	var p [NumLEDs]uint8
	if phase == 0 {
		p[5] = maxDuty
	}
	return p
}

// menuPattern overlays the flashing cursor on dim enabled-option
// indicators. LED5 stays lit as the menu beacon.
func menuPattern(opts Options, cursor int, flash bool, maxDuty uint8) [NumLEDs]uint8 {
	var p [NumLEDs]uint8
	for i := 0; i < 5; i++ {
		switch {
		case flash && cursor == i:
			p[i] = pwmMax
		case opts.Has(1 << i):
			p[i] = pwmDim
		}
	}
	if flash && cursor == 5 {
		p[5] = pwmMax
	} else {
		p[5] = maxDuty
	}
	return p
}
