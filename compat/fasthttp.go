package compat

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/buflog"
)

// FastHTTPAdapter wraps buflog.Logger to implement fasthttp Logger interface
type FastHTTPAdapter struct {
	logger        *buflog.Logger
	defaultLevel  int64
	levelDetector func(string) int64 // Function to detect log level from message
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(logger *buflog.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		logger:        logger,
		defaultLevel:  buflog.LevelInfo,
		levelDetector: DetectLogLevel, // Default level detection
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the default log level for Printf calls
func WithDefaultLevel(level int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to detect log level from message content
func WithLevelDetector(detector func(string) int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	// Detect log level from message content
	level := a.defaultLevel
	if a.levelDetector != nil {
		level = a.levelDetector(msg)
	}

	a.logger.Logf(level, "fasthttp: %s", msg)
}

// DetectLogLevel attempts to detect log level from message content
func DetectLogLevel(msg string) int64 {
	msgLower := strings.ToLower(msg)

	// Errors map to warning, the sink's most severe class
	if strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") ||
		strings.Contains(msgLower, "fatal") ||
		strings.Contains(msgLower, "panic") {
		return buflog.LevelWarning
	}

	if strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "warning") ||
		strings.Contains(msgLower, "deprecated") {
		return buflog.LevelWarning
	}

	if strings.Contains(msgLower, "debug") ||
		strings.Contains(msgLower, "trace") {
		return buflog.LevelDebug
	}

	return buflog.LevelInfo
}
