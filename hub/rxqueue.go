package hub

import "sync/atomic"

// rxCapacity matches the device buffer; one slot stays empty so that
// head==tail always means empty.
const rxCapacity = 20

// RxQueue is the serial receive buffer: a fixed-capacity ring with a
// single producer (the link's reader context) and a single consumer
// (the engine loop). Indexes are atomic so neither side needs a lock.
type RxQueue struct {
	buf  [rxCapacity]byte
	head atomic.Uint32 // written by the producer only
	tail atomic.Uint32 // written by the consumer only
}

// Push stores one received byte. When the queue is full the byte is
// dropped and Push reports false; overrun is a policy, not a fault.
func (q *RxQueue) Push(b byte) bool {
	head := q.head.Load()
	next := head + 1
	if next >= rxCapacity {
		next = 0
	}
	if next == q.tail.Load() {
		return false
	}
	q.buf[head] = b
	q.head.Store(next)
	return true
}

// Pop removes the oldest byte, if any. Main loop only.
func (q *RxQueue) Pop() (byte, bool) {
	tail := q.tail.Load()
	if tail == q.head.Load() {
		return 0, false
	}
	b := q.buf[tail]
	tail++
	if tail >= rxCapacity {
		tail = 0
	}
	q.tail.Store(tail)
	return b, true
}
