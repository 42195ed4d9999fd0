package buflog

import (
	"io"
	"sync"
	"sync/atomic"
)

// Writer task states
const (
	writerStopped int32 = iota
	writerRunning
	writerDraining
)

// State encapsulates the runtime state of the sink
type State struct {
	IsInitialized  atomic.Bool
	Started        atomic.Bool
	ShutdownCalled atomic.Bool
	WriterState    atomic.Int32 // writerStopped, writerRunning, writerDraining

	Level     atomic.Int64 // minimum severity persisted to file
	EchoLevel atomic.Int64 // minimum severity echoed to stderr

	EchoWriter atomic.Value // stores *sink, severity echo target
	DiagWriter atomic.Value // stores *sink, internal diagnostics target

	CurrentFileBytes atomic.Int64 // bytes flushed into the current file, reset on rotation

	flushRequestChan chan chan struct{} // channel to request an explicit flush
	flushMutex       sync.Mutex         // protect concurrent Flush calls

	// Counters
	TotalSwaps        atomic.Uint64
	TotalRotations    atomic.Uint64
	TotalBytesWritten atomic.Uint64
	OverflowDrops     atomic.Uint64 // lines dropped for exceeding maxLineSize
	DroppedAppends    atomic.Uint64 // lines rejected by a closed or undersized store
	DroppedFlushBytes atomic.Uint64 // bytes lost to failed flushes
	HeartbeatSequence atomic.Uint64
	StartTime         atomic.Value // stores time.Time for uptime calculation
}

// sink is a wrapper around an io.Writer, atomic value type change workaround
type sink struct {
	w io.Writer
}
