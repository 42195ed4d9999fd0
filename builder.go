package buflog

// Builder provides fluent configuration of a logger
type Builder struct {
	cfg *Config
	err error
}

// NewBuilder creates a builder seeded with defaults
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultConfig()}
}

// Name sets the base name for log files
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// Directory sets the log directory
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// Level sets the minimum persisted severity by name
func (b *Builder) Level(level string) *Builder {
	b.cfg.Level = level
	return b
}

// EchoLevel sets the minimum echoed severity by name
func (b *Builder) EchoLevel(level string) *Builder {
	b.cfg.EchoLevel = level
	return b
}

// BufferSize sets the per-slot buffer capacity in bytes
func (b *Builder) BufferSize(size int64) *Builder {
	b.cfg.BufferSize = size
	return b
}

// RotateSize sets the per-file rotation threshold in bytes
func (b *Builder) RotateSize(size int64) *Builder {
	b.cfg.RotateSize = size
	return b
}

// FlushIntervalS sets the forced flush interval in seconds
func (b *Builder) FlushIntervalS(seconds int64) *Builder {
	b.cfg.FlushIntervalS = seconds
	return b
}

// HeartbeatIntervalS sets the heartbeat interval in seconds, 0 disables
func (b *Builder) HeartbeatIntervalS(seconds int64) *Builder {
	b.cfg.HeartbeatIntervalS = seconds
	return b
}

// PrettyPrint toggles severity labels instead of numeric values
func (b *Builder) PrettyPrint(enable bool) *Builder {
	b.cfg.PrettyPrint = enable
	return b
}

// Compress toggles the deflate file backend
func (b *Builder) Compress(enable bool) *Builder {
	b.cfg.Compress = enable
	return b
}

// Build validates the configuration and returns a started logger
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	l := NewLogger()
	if err := l.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}
	if err := l.Start(); err != nil {
		return nil, err
	}
	return l, nil
}
