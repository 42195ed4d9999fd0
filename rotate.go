package buflog

import (
	"fmt"
	"os"
	"path/filepath"
)

// logFilePath builds "<directory>/<base>.<seq>.<ext>". The extension follows
// the selected backend.
func (l *Logger) logFilePath(seq uint64) string {
	cfg := l.getConfig()
	name := fmt.Sprintf("%s.%d.%s", cfg.Name, seq, l.backend.Extension())
	return filepath.Join(cfg.Directory, name)
}

// openLogFile opens the next sequentially named log file, advancing the
// counter past any name already present on disk. The counter is monotonic for
// the process lifetime; gaps left by earlier runs are skipped forward, never
// reused or overwritten.
func (l *Logger) openLogFile() error {
	var path string
	for {
		path = l.logFilePath(l.rotateSeq)
		l.rotateSeq++
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
	}
	if err := l.backend.Open(path); err != nil {
		return fmtErrorf("failed to open log file '%s': %w", path, err)
	}
	l.state.CurrentFileBytes.Store(0)
	return nil
}

// rotate closes the current file and opens the next one in sequence.
func (l *Logger) rotate() error {
	if err := l.backend.Close(); err != nil {
		l.diag("failed to close log file during rotation: %v", err)
	}
	if err := l.openLogFile(); err != nil {
		return err
	}
	l.state.TotalRotations.Add(1)
	return nil
}
