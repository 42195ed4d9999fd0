package buflog

import (
	"sync"
	"time"
)

// Package-level default logger for applications that want a single shared sink
var (
	defaultLogger *Logger
	defaultOnce   sync.Once
)

// Default returns the shared package-level logger, creating it on first use.
// The returned logger still needs ApplyConfig and Start unless Init is used.
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultLogger = NewLogger()
	})
	return defaultLogger
}

// Init configures and starts the default logger in one call
func Init(cfg *Config) error {
	l := Default()
	if err := l.ApplyConfig(cfg); err != nil {
		return err
	}
	return l.Start()
}

// Shutdown stops the default logger
func Shutdown(timeout ...time.Duration) error {
	return Default().Shutdown(timeout...)
}

// Logf logs through the default logger
func Logf(level int64, format string, args ...any) {
	Default().Logf(level, format, args...)
}

// Warningf logs a formatted warning through the default logger
func Warningf(format string, args ...any) {
	Default().Logf(LevelWarning, format, args...)
}

// Infof logs a formatted info message through the default logger
func Infof(format string, args ...any) {
	Default().Logf(LevelInfo, format, args...)
}

// Debugf logs a formatted debug message through the default logger
func Debugf(format string, args ...any) {
	Default().Logf(LevelDebug, format, args...)
}

// Detailf logs a formatted detail message through the default logger
func Detailf(format string, args ...any) {
	Default().Logf(LevelDetail, format, args...)
}
