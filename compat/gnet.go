package compat

import (
	"os"
	"time"

	"github.com/lixenwraith/buflog"
)

// GnetAdapter wraps buflog.Logger to implement gnet logging.Logger interface
type GnetAdapter struct {
	logger       *buflog.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *buflog.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logger.Debugf("gnet: "+format, args...)
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logger.Infof("gnet: "+format, args...)
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logger.Warningf("gnet: "+format, args...)
}

// Errorf logs at the highest available severity. The sink has no separate
// error level, warnings are its most severe class.
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logger.Warningf("gnet: "+format, args...)
}

// Fatalf logs at warning severity and triggers the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	a.logger.Warningf("gnet: fatal: "+format, args...)

	// Ensure buffered lines reach the file before exit
	_ = a.logger.Flush(100 * time.Millisecond)

	if a.fatalHandler != nil {
		a.fatalHandler(format)
	}
}
