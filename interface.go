package buflog

// Warningf logs a formatted message at warning severity
func (l *Logger) Warningf(format string, args ...any) {
	l.Logf(LevelWarning, format, args...)
}

// Infof logs a formatted message at info severity
func (l *Logger) Infof(format string, args ...any) {
	l.Logf(LevelInfo, format, args...)
}

// Debugf logs a formatted message at debug severity
func (l *Logger) Debugf(format string, args ...any) {
	l.Logf(LevelDebug, format, args...)
}

// Detailf logs a formatted message at detail severity
func (l *Logger) Detailf(format string, args ...any) {
	l.Logf(LevelDetail, format, args...)
}

// Warning logs space-separated values at warning severity
func (l *Logger) Warning(args ...any) {
	l.Logf(LevelWarning, "%s", renderArgs(args))
}

// Info logs space-separated values at info severity
func (l *Logger) Info(args ...any) {
	l.Logf(LevelInfo, "%s", renderArgs(args))
}

// Debug logs space-separated values at debug severity
func (l *Logger) Debug(args ...any) {
	l.Logf(LevelDebug, "%s", renderArgs(args))
}

// Detail logs space-separated values at detail severity
func (l *Logger) Detail(args ...any) {
	l.Logf(LevelDetail, "%s", renderArgs(args))
}
