package buflog

import (
	"time"
)

// Severity levels, ordered from most verbose to most severe
const (
	LevelDetail  int64 = -8
	LevelDebug   int64 = -4
	LevelInfo    int64 = 0
	LevelWarning int64 = 4
)

// Formatting
const (
	// maxLineSize caps a fully rendered line, prefix and newline included.
	// Larger messages are dropped, never truncated.
	maxLineSize = 2048
)

// Buffering
const (
	// The writer is woken early once the active buffer passes 3/4 of its capacity
	flushThresholdNum = 3
	flushThresholdDen = 4
)

// Timers
const (
	// Minimum wait time used throughout the package
	minWaitTime = 10 * time.Millisecond
)
