package buflog

import (
	"time"
)

// runHeartbeat periodically logs sink health counters at info severity.
func (l *Logger) runHeartbeat(interval time.Duration) {
	defer close(l.heartbeatDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.shutdownCh:
			return
		case <-ticker.C:
			l.logHeartbeat()
		}
	}
}

func (l *Logger) logHeartbeat() {
	seq := l.state.HeartbeatSequence.Add(1)

	var uptimeHours float64
	if start, ok := l.state.StartTime.Load().(time.Time); ok {
		uptimeHours = time.Since(start).Hours()
	}

	l.Logf(LevelInfo,
		"heartbeat seq=%d uptime_hours=%.2f swaps=%d rotations=%d bytes_written=%d overflow_drops=%d dropped_flush_bytes=%d",
		seq,
		uptimeHours,
		l.state.TotalSwaps.Load(),
		l.state.TotalRotations.Load(),
		l.state.TotalBytesWritten.Load(),
		l.state.OverflowDrops.Load(),
		l.state.DroppedFlushBytes.Load(),
	)
}
