package buflog

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Logger is a buffered, rotating file sink. Zero value is not usable, create
// with NewLogger, then ApplyConfig and Start before logging.
type Logger struct {
	currentConfig atomic.Value // stores *Config
	state         State

	initMu sync.Mutex // serializes ApplyConfig, Start, and Shutdown

	fmtr    *formatter
	buffers *bufferPair
	backend backend

	rotateSeq uint64 // next candidate file sequence number

	shutdownCh    chan struct{}
	writerDone    chan struct{}
	heartbeatDone chan struct{}
}

// NewLogger creates a new unconfigured logger instance
func NewLogger() *Logger {
	l := &Logger{}
	l.currentConfig.Store(DefaultConfig())
	l.state.Level.Store(LevelWarning)
	l.state.EchoLevel.Store(LevelWarning)
	l.state.EchoWriter.Store(&sink{w: os.Stderr})
	l.state.DiagWriter.Store(&sink{w: os.Stderr})
	l.state.flushRequestChan = make(chan chan struct{}, 1)
	return l
}

// getConfig returns the current active configuration
func (l *Logger) getConfig() *Config {
	return l.currentConfig.Load().(*Config)
}

// GetConfig returns a copy of the current active configuration
func (l *Logger) GetConfig() *Config {
	return l.getConfig().Clone()
}

// ApplyConfig validates and applies a configuration. It must be called before
// Start and cannot reconfigure a started logger.
func (l *Logger) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("config cannot be nil")
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	if l.state.Started.Load() {
		return fmtErrorf("cannot apply config while logger is running")
	}

	level, _ := ParseLevel(cfg.Level)
	echoLevel, _ := ParseLevel(cfg.EchoLevel)
	l.state.Level.Store(level)
	l.state.EchoLevel.Store(echoLevel)

	l.currentConfig.Store(cfg.Clone())
	l.fmtr = &formatter{pretty: cfg.PrettyPrint}
	l.state.IsInitialized.Store(true)
	return nil
}

// Start creates the buffers, opens the first log file and launches the writer
// task. Logging before Start returns only echoes.
func (l *Logger) Start() error {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	if !l.state.IsInitialized.Load() {
		return fmtErrorf("logger not configured, call ApplyConfig first")
	}
	if !l.state.Started.CompareAndSwap(false, true) {
		return fmtErrorf("logger already started")
	}

	cfg := l.getConfig()

	if err := os.MkdirAll(cfg.Directory, 0755); err != nil {
		l.state.Started.Store(false)
		return fmtErrorf("failed to create log directory '%s': %w", cfg.Directory, err)
	}

	l.buffers = newBufferPair(int(cfg.BufferSize))
	l.buffers.onWait = func() {
		l.diag("waiting for log space to be available")
	}

	if cfg.Compress {
		l.backend = newGzipBackend()
	} else {
		l.backend = newPlainBackend()
	}

	if err := l.openLogFile(); err != nil {
		l.state.Started.Store(false)
		return err
	}

	l.shutdownCh = make(chan struct{})
	l.writerDone = make(chan struct{})
	l.heartbeatDone = nil
	l.state.ShutdownCalled.Store(false)
	l.state.StartTime.Store(time.Now())

	// The running state must be visible before the first Logf can observe it,
	// it is what gates producer access to the buffers.
	l.state.WriterState.Store(writerRunning)
	go l.runWriter()

	if cfg.HeartbeatIntervalS > 0 {
		l.heartbeatDone = make(chan struct{})
		go l.runHeartbeat(time.Duration(cfg.HeartbeatIntervalS) * time.Second)
	}
	return nil
}

// Shutdown drains buffered lines and stops the writer task. An optional
// timeout bounds the wait for the drain, defaulting to twice the flush
// interval. Shutdown is idempotent.
func (l *Logger) Shutdown(timeout ...time.Duration) error {
	if !l.state.ShutdownCalled.CompareAndSwap(false, true) {
		return nil
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	if !l.state.Started.Load() {
		return nil
	}

	wait := 2 * time.Duration(l.getConfig().FlushIntervalS) * time.Second
	if len(timeout) > 0 && timeout[0] > 0 {
		wait = timeout[0]
	}
	if wait < minWaitTime {
		wait = minWaitTime
	}

	close(l.shutdownCh)

	if l.heartbeatDone != nil {
		<-l.heartbeatDone
	}

	var err error
	select {
	case <-l.writerDone:
	case <-time.After(wait):
		err = fmtErrorf("shutdown timed out after %v waiting for writer to drain", wait)
	}

	l.state.Started.Store(false)
	l.state.IsInitialized.Store(false)
	return err
}

// Flush forces a buffer swap and waits for the captured slot to reach the
// backend, bounded by timeout. It does not guarantee durability beyond the
// backend's own flush.
func (l *Logger) Flush(timeout time.Duration) error {
	if l.state.WriterState.Load() == writerStopped || l.state.ShutdownCalled.Load() {
		return fmtErrorf("cannot flush, writer is not running")
	}
	if timeout < minWaitTime {
		timeout = minWaitTime
	}

	l.state.flushMutex.Lock()
	defer l.state.flushMutex.Unlock()

	confirm := make(chan struct{})
	select {
	case l.state.flushRequestChan <- confirm:
	case <-time.After(timeout):
		return fmtErrorf("flush request timed out after %v", timeout)
	}

	select {
	case <-confirm:
		return nil
	case <-time.After(timeout):
		return fmtErrorf("flush confirmation timed out after %v", timeout)
	}
}

// SetLevel changes the minimum persisted severity at runtime
func (l *Logger) SetLevel(level int64) {
	l.state.Level.Store(level)
}

// Level returns the current minimum persisted severity
func (l *Logger) Level() int64 {
	return l.state.Level.Load()
}

// SetEchoLevel changes the minimum echoed severity at runtime
func (l *Logger) SetEchoLevel(level int64) {
	l.state.EchoLevel.Store(level)
}

// SetEchoWriter redirects the severity echo stream, nil disables echoing
func (l *Logger) SetEchoWriter(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	l.state.EchoWriter.Store(&sink{w: w})
}

// SetDiagWriter redirects internal diagnostics, nil disables them
func (l *Logger) SetDiagWriter(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	l.state.DiagWriter.Store(&sink{w: w})
}

// Logf renders and submits a log line at the given severity. Lines below the
// persist level are skipped, lines at or above the echo level are also written
// synchronously to the echo stream. Logf blocks while both buffers are full.
func (l *Logger) Logf(level int64, format string, args ...any) {
	if !l.state.IsInitialized.Load() {
		return
	}

	persist := level >= l.state.Level.Load() &&
		l.state.WriterState.Load() != writerStopped &&
		!l.state.ShutdownCalled.Load()
	echo := level >= l.state.EchoLevel.Load()

	if !persist && !echo {
		return
	}

	line, ok := l.fmtr.render(time.Now(), level, format, args...)
	if !ok {
		l.state.OverflowDrops.Add(1)
		l.diag("log message dropped, line exceeds %d bytes", maxLineSize)
		return
	}

	if echo {
		if s, k := l.state.EchoWriter.Load().(*sink); k && s.w != nil {
			s.w.Write(line)
		}
	}

	if persist {
		if !l.buffers.append(line) {
			l.state.DroppedAppends.Add(1)
		}
	}
}

// diag writes an internal diagnostic line. Diagnostics never enter the log
// buffers, they report on the sink itself.
func (l *Logger) diag(format string, args ...any) {
	if s, ok := l.state.DiagWriter.Load().(*sink); ok && s.w != nil {
		msg := fmtErrorf(format, args...).Error()
		s.w.Write([]byte(msg + "\n"))
	}
}
