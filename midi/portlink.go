package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register MIDI driver

	"github.com/hotchk155/midihub/debug"
)

// PortLink runs the link over system MIDI ports for hosted use. The
// input listener pushes every inbound byte to the feed callback from
// the driver's receive goroutine.
type PortLink struct {
	out  drivers.Out
	send func(gomidi.Message) error
	stop func()
}

// OpenPort opens the named output port and, when inName is nonempty,
// listens on the named input port. feed is called once per received
// byte from the listener goroutine.
func OpenPort(inName, outName string, feed func(byte)) (*PortLink, error) {
	var out drivers.Out
	for _, p := range gomidi.GetOutPorts() {
		if p.String() == outName {
			out = p
			break
		}
	}
	if out == nil {
		return nil, fmt.Errorf("midi out %q not found", outName)
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("open midi out %q: %w", outName, err)
	}
	l := &PortLink{out: out, send: send}

	if inName != "" {
		var in drivers.In
		for _, p := range gomidi.GetInPorts() {
			if p.String() == inName {
				in = p
				break
			}
		}
		if in == nil {
			return nil, fmt.Errorf("midi in %q not found", inName)
		}
		if err := in.Open(); err != nil {
			return nil, fmt.Errorf("open midi in %q: %w", inName, err)
		}
		stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
			for _, b := range []byte(msg) {
				feed(b)
			}
		}, gomidi.UseActiveSense(), gomidi.UseTimeCode(), gomidi.HandleError(func(err error) {
			debug.Log("midi", "listener error: %v", err)
		}))
		if err != nil {
			_ = in.Close()
			return nil, fmt.Errorf("listen on %q: %w", inName, err)
		}
		l.stop = stop
	}

	debug.Log("midi", "port link open in=%q out=%q", inName, outName)
	return l, nil
}

// Send transmits one byte, blocking until the driver accepts it.
func (l *PortLink) Send(b byte) {
	if err := l.send(gomidi.Message{b}); err != nil {
		debug.Log("midi", "send 0x%02X failed: %v", b, err)
	}
}

func (l *PortLink) Close() {
	if l.stop != nil {
		l.stop()
	}
}

// Ports enumerates the system MIDI port names.
func Ports() (ins, outs []string) {
	for _, p := range gomidi.GetInPorts() {
		ins = append(ins, p.String())
	}
	for _, p := range gomidi.GetOutPorts() {
		outs = append(outs, p.String())
	}
	return ins, outs
}
