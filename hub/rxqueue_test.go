package hub

import "testing"

func TestRxQueueFIFO(t *testing.T) {
	var q RxQueue

	// Capacity-1 bytes fit; the reserved slot stays empty.
	for i := 0; i < rxCapacity-1; i++ {
		if !q.Push(byte(i)) {
			t.Fatalf("Push(%d) reported full", i)
		}
	}

	for i := 0; i < rxCapacity-1; i++ {
		b, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop() empty after %d pops", i)
		}
		if b != byte(i) {
			t.Errorf("Pop() = %d, want %d", b, i)
		}
	}

	if _, ok := q.Pop(); ok {
		t.Error("Pop() on drained queue reported data")
	}
}

func TestRxQueueFullDropsByte(t *testing.T) {
	var q RxQueue
	for i := 0; i < rxCapacity-1; i++ {
		q.Push(byte(i))
	}

	if q.Push(0xAA) {
		t.Error("Push on full queue reported success")
	}

	// Head/tail must be intact: contents unchanged, order preserved.
	for i := 0; i < rxCapacity-1; i++ {
		b, ok := q.Pop()
		if !ok || b != byte(i) {
			t.Fatalf("after overflow: Pop() = %d,%v, want %d,true", b, ok, i)
		}
	}
}

func TestRxQueueWrapsIndices(t *testing.T) {
	var q RxQueue

	// Cycle several times capacity to exercise the index wrap.
	for round := 0; round < 5; round++ {
		for i := 0; i < rxCapacity-1; i++ {
			if !q.Push(byte(round*31 + i)) {
				t.Fatalf("round %d: Push(%d) reported full", round, i)
			}
		}
		for i := 0; i < rxCapacity-1; i++ {
			b, ok := q.Pop()
			if !ok || b != byte(round*31+i) {
				t.Fatalf("round %d: Pop() = %d,%v, want %d,true", round, b, ok, round*31+i)
			}
		}
	}
}
