package buflog

import (
	"sync"
)

// logBuffer is one slot of the double buffer.
type logBuffer struct {
	data []byte
	used int
}

// bufferPair is the monitor guarding the two buffer slots. Producers copy
// rendered lines into the active slot and block while it lacks room; the
// single writer swaps the slots and drains the captured one outside the lock.
// The critical section is a memory copy only, file I/O never happens under
// the mutex.
type bufferPair struct {
	mu    sync.Mutex
	space *sync.Cond    // broadcast when a swap vacates capacity
	wake  chan struct{} // pokes the writer once the active slot passes the flush threshold

	bufs   [2]logBuffer
	active int
	closed bool

	capacity  int
	threshold int // early flush wake threshold in bytes

	onWait func() // called each time a producer starts waiting for space
}

func newBufferPair(capacity int) *bufferPair {
	bp := &bufferPair{
		wake:      make(chan struct{}, 1),
		capacity:  capacity,
		threshold: capacity * flushThresholdNum / flushThresholdDen,
	}
	bp.bufs[0].data = make([]byte, capacity)
	bp.bufs[1].data = make([]byte, capacity)
	bp.space = sync.NewCond(&bp.mu)
	return bp
}

// append copies p into the active slot, blocking while the slot lacks room.
// It returns false when p can never fit or the store has been closed; such
// lines are lost and the caller must account for them. The copy happens under
// the mutex so a line is never split across a swap boundary.
func (bp *bufferPair) append(p []byte) bool {
	if len(p) >= bp.capacity {
		return false
	}

	bp.mu.Lock()
	for bp.bufs[bp.active].used+len(p) >= bp.capacity {
		if bp.closed {
			bp.mu.Unlock()
			return false
		}
		if bp.onWait != nil {
			bp.onWait()
		}
		bp.space.Wait()
	}
	if bp.closed {
		bp.mu.Unlock()
		return false
	}

	b := &bp.bufs[bp.active]
	copy(b.data[b.used:], p)
	b.used += len(p)
	if b.used > bp.threshold {
		bp.signalFlush()
	}
	bp.mu.Unlock()
	return true
}

// signalFlush pokes the writer without blocking.
func (bp *bufferPair) signalFlush() {
	select {
	case bp.wake <- struct{}{}:
	default:
	}
}

// swap flips the active slot and returns the captured one. Producers blocked
// for space are released before the writer touches the captured slot, so the
// vacated capacity is usable immediately. Only the writer calls swap, and it
// must fully flush the returned slot before swapping again.
func (bp *bufferPair) swap() *logBuffer {
	bp.mu.Lock()
	this := bp.active
	bp.active = 1 - bp.active
	bp.space.Broadcast()
	bp.mu.Unlock()
	return &bp.bufs[this]
}

// aboveThreshold reports whether the active slot passed the flush threshold.
func (bp *bufferPair) aboveThreshold() bool {
	bp.mu.Lock()
	over := bp.bufs[bp.active].used > bp.threshold
	bp.mu.Unlock()
	return over
}

// pending returns the number of staged bytes in the active slot.
func (bp *bufferPair) pending() int {
	bp.mu.Lock()
	n := bp.bufs[bp.active].used
	bp.mu.Unlock()
	return n
}

// close marks the store closed and releases all blocked producers.
// Subsequent appends fail fast instead of blocking forever.
func (bp *bufferPair) close() {
	bp.mu.Lock()
	bp.closed = true
	bp.space.Broadcast()
	bp.mu.Unlock()
}
