// Package hub is the firmware core of the MIDI beat-clock box: the
// mode state machine, tempo generator, thru filter, input debouncer
// and LED animator, stepped by a single cooperative main loop.
//
// Two kinds of state exist. The tick flag and the receive queue are
// fed from other goroutines (the tempo timer and the link reader) and
// are atomic; everything else belongs to the loop goroutine and is
// never touched from outside it.
package hub

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hotchk155/midihub/debug"
	"github.com/hotchk155/midihub/eeprom"
	"github.com/hotchk155/midihub/midi"
)

// FirmwareVersion tracks the device firmware revision this core
// reproduces.
const FirmwareVersion = 6

// Mode is the operating mode. Exactly one is active at a time.
type Mode uint8

const (
	ModeStep    Mode = iota // beat clock on, Inc/Dec set tempo
	ModeTap                 // beat clock on, Dec taps tempo
	ModeNoClock             // beat clock off, thru only
	ModeMenu                // options menu
)

func (m Mode) String() string {
	switch m {
	case ModeStep:
		return "step"
	case ModeTap:
		return "tap"
	case ModeNoClock:
		return "noclock"
	case ModeMenu:
		return "menu"
	}
	return "?"
}

const menuSize = 6

// ticksPerQuarter is the MIDI beat-clock standard.
const ticksPerQuarter = 24

// Link is the outbound half of the serial link. Send blocks until the
// transmit hardware is ready.
type Link interface {
	Send(b byte)
}

// InputPort reads the raw button mask, active bits set.
type InputPort interface {
	ReadButtons() Buttons
}

// LEDPort writes the physical LED pins for one PWM period.
type LEDPort interface {
	SetLEDs(mask uint8)
}

// Ports collects the hardware capabilities the engine drives. The core
// never sees register layout; these are the whole boundary.
type Ports struct {
	Clock  Clock
	Link   Link
	Inputs InputPort
	LEDs   LEDPort
	Timer  TempoTimer
	Store  eeprom.ByteStore
}

// Snapshot is a display copy of the loop-owned state.
type Snapshot struct {
	Mode       Mode
	BPM        int
	Running    bool
	RunLock    bool
	Phase      uint8
	TapCount   uint8
	MenuCursor int
	Options    Options
	Duty       [NumLEDs]uint8
}

// Engine is the application state machine. Construct with NewEngine,
// then call Step once per main-loop iteration (or Run for a hosted
// loop). Feed and RaiseTick are the only methods safe to call from
// other goroutines.
type Engine struct {
	clock  Clock
	link   Link
	inputs InputPort
	leds   LEDPort
	tempo  *TempoGen
	store  *OptionsStore

	rx   RxQueue
	tick atomic.Bool

	timings Timings

	mode           Mode
	running        bool
	runLock        bool
	pendingRestart bool
	tickCount      uint8

	opts       Options
	menuCursor int
	menuLoop   uint32

	deb *Debouncer
	tap TapSession

	bank       ledBank
	lastMask   uint8
	brightness int
	maxDuty    uint8

	snapMu sync.Mutex
	snap   Snapshot
}

func NewEngine(p Ports, t Timings) *Engine {
	e := &Engine{
		clock:   p.Clock,
		link:    p.Link,
		inputs:  p.Inputs,
		leds:    p.LEDs,
		timings: t,
		mode:    ModeStep,
		deb:     NewDebouncer(t),
		maxDuty: brightnessLevels[0],
	}
	e.tempo = NewTempoGen(p.Timer)
	e.store = NewOptionsStore(p.Store)
	e.opts = e.store.Load()
	debug.Log("hub", "engine up bpm=%d options=%05b", e.tempo.BPM(), e.opts)
	return e
}

// SetLink installs the outbound link. Used when the link needs the
// engine's Feed callback before the engine can hold the link.
func (e *Engine) SetLink(l Link) { e.link = l }

// RaiseTick is the tempo-timer callback: a one-shot flag, not a queue.
// At most one overflow is expected between loop iterations; extras are
// soft timing overruns and are not compensated.
func (e *Engine) RaiseTick() { e.tick.Store(true) }

// Feed pushes one received byte into the receive queue. Drops silently
// when the queue is full.
func (e *Engine) Feed(b byte) { e.rx.Push(b) }

// Step runs one main-loop iteration: drain thru, advance the active
// mode, PWM the LEDs, then poll input.
func (e *Engine) Step() {
	e.thru()

	switch e.mode {
	case ModeMenu:
		e.stepMenu()
	case ModeNoClock:
		e.bank.fade(e.clock.Now(), e.timings.FadePeriod)
	default: // Step / Tap
		if e.tick.Swap(false) {
			e.onTick()
		}
	}

	e.lastMask = e.bank.mask()
	e.leds.SetLEDs(e.lastMask)

	if ev, ok := e.deb.Poll(e.clock.Now(), e.inputs.ReadButtons()); ok {
		e.dispatch(ev)
	}

	e.publish()
}

// Run steps the engine until ctx is done.
func (e *Engine) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		e.Step()
		time.Sleep(200 * time.Microsecond)
	}
}

func (e *Engine) stepMenu() {
	e.menuLoop++
	flash := (e.menuLoop & 0xF00) == 0x100
	e.bank.set(menuPattern(e.opts, e.menuCursor, flash, e.maxDuty))
}

// onTick consumes one 24-PPQN tick: advance the phase, emit the clock
// byte while running, and pick the LED pattern for this state. A
// deferred restart goes out exactly at phase 0, before the tick byte.
func (e *Engine) onTick() {
	e.tickCount++
	if e.tickCount > ticksPerQuarter-1 {
		if e.pendingRestart {
			e.send(midi.Start)
			e.pendingRestart = false
			debug.Log("hub", "deferred restart emitted")
		}
		e.tickCount = 0
	}
	if e.running {
		e.send(midi.Tick)
	}

	switch {
	case e.tap.Active():
		// Tap entry overrides the transport patterns.
		e.bank.set(tapPattern(e.tap.Count(), e.maxDuty))
		if e.tap.Expire(e.clock.Now()) {
			debug.Log("tap", "session expired")
		}
	case e.running && e.opts.Has(OptDiscreet):
		e.bank.set(discreetRunning(e.tickCount, e.maxDuty))
	case e.running:
		e.bank.set(runningPattern(e.tickCount, e.maxDuty))
	case e.opts.Has(OptDiscreet):
		e.bank.set(discreetPaused(e.tickCount, e.maxDuty))
	default:
		e.bank.set(pausedPattern(e.tickCount, e.maxDuty))
	}
}

// thru drains the receive queue, classifying and forwarding each byte.
// Non-blocking: returns as soon as the queue is empty.
func (e *Engine) thru() {
	for {
		b, ok := e.rx.Pop()
		if !ok {
			return
		}
		if midi.IsRealtime(b) {
			if !e.opts.Has(OptPassRealtime) {
				continue
			}
		} else if !e.opts.Has(OptPassOther) {
			continue
		}
		if e.mode == ModeNoClock && e.opts.Has(OptThruAnimate) {
			// Stamp a duty derived from the byte; the fade in the
			// no-clock step decays it into a trail.
			e.bank.duty[b%NumLEDs] = b % thruDutySeed
			e.send(b)
		} else {
			// Flicker the indicator LEDs for the duration of the
			// blocking transmit.
			e.leds.SetLEDs(e.lastMask | 1<<2 | 1<<3)
			e.send(b)
			e.leds.SetLEDs(e.lastMask)
		}
	}
}

func (e *Engine) send(b byte) {
	if e.link != nil {
		e.link.Send(b)
	}
}

// dispatch routes one debounced event. Chords first, then singles;
// the tagged Inc/Dec variants share the tempo-nudge handler with the
// plain presses that fall through their mode handlers.
func (e *Engine) dispatch(ev Buttons) {
	switch ev {
	case BtnRun | BtnInc | BtnDec:
		e.menuCursor = 0
		e.setMode(ModeMenu)

	case BtnRun | BtnDec:
		if e.mode == ModeStep || e.mode == ModeTap {
			e.setMode(ModeTap)
		}

	case BtnRun | BtnInc:
		e.setMode(ModeNoClock)

	case BtnInc | BtnDec:
		if e.mode == ModeStep {
			e.tempo.SetBPM(BPMDefault)
		}

	case BtnRun:
		e.onRun()

	case BtnRun | TagLongPress:
		e.toggleRunLock()

	case BtnDec:
		if e.onDec() {
			return
		}
		e.nudgeTempo(-1)

	case BtnDec | TagLongPress, BtnDec | TagAutoRepeat:
		e.nudgeTempo(-1)

	case BtnInc:
		if e.onInc() {
			return
		}
		e.nudgeTempo(+1)

	case BtnInc | TagLongPress, BtnInc | TagAutoRepeat:
		e.nudgeTempo(+1)
	}
}

func (e *Engine) onRun() {
	switch e.mode {
	case ModeStep, ModeTap:
		if e.runLock {
			// Run-lock changes Run into a restart request, honored
			// at the next beat boundary.
			e.pendingRestart = true
			return
		}
		e.running = !e.running
		if e.opts.Has(OptStartStop) {
			if e.running {
				e.tickCount = 0
				e.send(midi.Start)
			} else {
				e.send(midi.Stop)
			}
		}
		debug.Log("hub", "running=%v", e.running)

	case ModeNoClock:
		e.send(midi.Start)
		e.running = true

	case ModeMenu:
		e.setMode(ModeStep)
		e.running = false
	}
}

func (e *Engine) toggleRunLock() {
	if !e.runLock {
		e.runLock = true
		e.running = true
	} else {
		e.runLock = false
	}
	debug.Log("hub", "runlock=%v", e.runLock)
}

// onDec handles a single Dec press for the modes that own it; reports
// false in Step mode so the shared tempo nudge applies.
func (e *Engine) onDec() bool {
	switch e.mode {
	case ModeMenu:
		if e.menuCursor == menuSize-1 {
			e.brightness = (e.brightness + 1) % len(brightnessLevels)
			e.maxDuty = brightnessLevels[e.brightness]
		} else {
			e.opts ^= 1 << e.menuCursor
		}
		e.store.Save(e.opts)
		debug.Log("hub", "options=%05b brightness=%d", e.opts, e.brightness)
		return true
	case ModeNoClock:
		e.setMode(ModeStep)
		return true
	case ModeTap:
		if bpm, ok := e.tap.Tap(e.clock.Now()); ok {
			e.tempo.SetBPM(bpm)
			debug.Log("tap", "estimate bpm=%d", e.tempo.BPM())
		}
		return true
	}
	return false
}

// onInc mirrors onDec for the Inc button.
func (e *Engine) onInc() bool {
	switch e.mode {
	case ModeMenu:
		e.menuCursor = (e.menuCursor + 1) % menuSize
		return true
	case ModeNoClock:
		if e.running {
			e.send(midi.Stop)
			e.running = false
		} else {
			e.send(midi.Continue)
			e.running = true
		}
		return true
	case ModeTap:
		e.setMode(ModeStep)
		return true
	}
	return false
}

func (e *Engine) nudgeTempo(d int) {
	if e.mode == ModeStep {
		e.tempo.SetBPM(e.tempo.BPM() + d)
	}
}

func (e *Engine) setMode(m Mode) {
	if e.mode == m {
		return
	}
	if e.mode == ModeTap {
		e.tap.Reset()
	}
	debug.Log("hub", "mode %s -> %s", e.mode, m)
	e.mode = m
}

func (e *Engine) publish() {
	e.snapMu.Lock()
	e.snap = Snapshot{
		Mode:       e.mode,
		BPM:        e.tempo.BPM(),
		Running:    e.running,
		RunLock:    e.runLock,
		Phase:      e.tickCount,
		TapCount:   e.tap.Count(),
		MenuCursor: e.menuCursor,
		Options:    e.opts,
		Duty:       e.bank.duty,
	}
	e.snapMu.Unlock()
}

// Snapshot returns the latest published state. Safe from any goroutine.
func (e *Engine) Snapshot() Snapshot {
	e.snapMu.Lock()
	defer e.snapMu.Unlock()
	return e.snap
}
