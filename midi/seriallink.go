package midi

import (
	"fmt"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/hotchk155/midihub/debug"
)

// SerialLink drives a raw DIN MIDI connection over a serial device.
// Bytes go out synchronously; inbound bytes are pushed to the feed
// callback from a reader goroutine.
type SerialLink struct {
	name string
	feed func(byte)
	stop chan struct{}

	mu   sync.Mutex
	port serial.Port
}

// OpenSerial opens the device at the MIDI rate (31250 8-N-1) and
// starts the reader.
func OpenSerial(name string, feed func(byte)) (*SerialLink, error) {
	p, err := openMIDIPort(name)
	if err != nil {
		return nil, err
	}
	l := &SerialLink{name: name, feed: feed, stop: make(chan struct{}), port: p}
	go l.readLoop()
	debug.Log("serial", "link open device=%s baud=%d", name, Baud)
	return l, nil
}

func openMIDIPort(name string) (serial.Port, error) {
	mode := &serial.Mode{
		BaudRate: Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", name, err)
	}
	return p, nil
}

func (l *SerialLink) readLoop() {
	buf := make([]byte, 16)
	for {
		select {
		case <-l.stop:
			return
		default:
		}
		l.mu.Lock()
		p := l.port
		l.mu.Unlock()
		if p == nil {
			return
		}
		n, err := p.Read(buf)
		if err != nil {
			// Framing/overrun recovery: discard the error condition
			// by cycling the receiver. No byte is recovered.
			debug.Log("serial", "read error, cycling receiver: %v", err)
			l.reopen()
			continue
		}
		for _, b := range buf[:n] {
			l.feed(b)
		}
	}
}

func (l *SerialLink) reopen() {
	l.mu.Lock()
	if l.port != nil {
		_ = l.port.Close()
		l.port = nil
	}
	l.mu.Unlock()
	for {
		select {
		case <-l.stop:
			return
		default:
		}
		p, err := openMIDIPort(l.name)
		if err == nil {
			l.mu.Lock()
			l.port = p
			l.mu.Unlock()
			debug.Log("serial", "receiver back up")
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// Send transmits one byte, blocking until the driver accepts it.
func (l *SerialLink) Send(b byte) {
	l.mu.Lock()
	p := l.port
	l.mu.Unlock()
	if p == nil {
		return
	}
	if _, err := p.Write([]byte{b}); err != nil {
		debug.Log("serial", "send 0x%02X failed: %v", b, err)
	}
}

func (l *SerialLink) Close() {
	close(l.stop)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.port != nil {
		_ = l.port.Close()
		l.port = nil
	}
}
