package buflog

import (
	"time"
)

// runWriter is the single consumer of the buffer pair. It drains the captured
// slot whenever woken by a producer, by an explicit flush request, or by the
// interval timer, and performs rotation after each flush cycle. All file I/O
// happens here, outside the buffer mutex.
func (l *Logger) runWriter() {
	defer close(l.writerDone)
	defer l.state.WriterState.Store(writerStopped)

	cfg := l.getConfig()
	interval := time.Duration(cfg.FlushIntervalS) * time.Second
	rotateSize := cfg.RotateSize

	fileOpen := true
	deadline := time.Now().Add(interval)
	timer := time.NewTimer(interval)
	defer timer.Stop()

	flushOnce := func() {
		// A failed rotation leaves the writer without a file. Retry the
		// open before each flush so logging recovers once the directory
		// becomes writable again.
		if !fileOpen {
			if err := l.openLogFile(); err != nil {
				l.diag("failed to reopen log file: %v", err)
			} else {
				fileOpen = true
			}
		}

		captured := l.buffers.swap()
		l.state.TotalSwaps.Add(1)
		n := l.flushCaptured(captured, fileOpen)

		if fileOpen && l.state.CurrentFileBytes.Add(n) > rotateSize {
			if err := l.rotate(); err != nil {
				l.diag("rotation failed: %v", err)
				fileOpen = false
			}
		}
		deadline = time.Now().Add(interval)
	}

	for {
		select {
		case <-l.shutdownCh:
			l.drain(fileOpen)
			return
		case <-l.buffers.wake:
		case <-timer.C:
		case confirm := <-l.state.flushRequestChan:
			flushOnce()
			close(confirm)
		}

		// Keep flushing while the active slot refills past the threshold or
		// the interval deadline has lapsed, so a burst of producers cannot
		// starve the swap.
		for l.buffers.aboveThreshold() || !time.Now().Before(deadline) {
			flushOnce()
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(time.Until(deadline))
	}
}

// drain flushes all staged bytes, closes the store so blocked producers fail
// fast, and closes the backend. Lines appended concurrently with the drain may
// land in either the final file or nowhere; shutdown ordering is the caller's
// responsibility.
func (l *Logger) drain(fileOpen bool) {
	l.state.WriterState.Store(writerDraining)

	for l.buffers.pending() > 0 {
		captured := l.buffers.swap()
		l.state.TotalSwaps.Add(1)
		l.flushCaptured(captured, fileOpen)
	}
	l.buffers.close()

	if err := l.backend.Close(); err != nil {
		l.diag("failed to close log file during shutdown: %v", err)
	}
}

// flushCaptured writes the captured slot to the backend and returns the byte
// count added to the current file. Short writes are retried; on a write error
// the remainder of the slot is dropped and counted, the slot is reset either
// way so the next swap hands producers an empty buffer.
func (l *Logger) flushCaptured(b *logBuffer, fileOpen bool) int64 {
	if b.used == 0 {
		return 0
	}
	data := b.data[:b.used]
	b.used = 0

	if !fileOpen {
		l.state.DroppedFlushBytes.Add(uint64(len(data)))
		l.diag("no log file open, dropping %d buffered bytes", len(data))
		return 0
	}

	written := 0
	for written < len(data) {
		n, err := l.backend.Write(data[written:])
		if n > 0 {
			written += n
		}
		if err != nil {
			l.state.DroppedFlushBytes.Add(uint64(len(data) - written))
			l.diag("write to log file failed, dropped %d bytes: %v", len(data)-written, err)
			break
		}
		if n == 0 {
			break
		}
	}

	if written > 0 {
		if err := l.backend.Flush(); err != nil {
			l.diag("flush of log file failed: %v", err)
		}
		l.state.TotalBytesWritten.Add(uint64(written))
	}
	return int64(written)
}
