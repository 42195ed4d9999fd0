package buflog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStartedLogger(t *testing.T, modify func(*Builder)) (*Logger, string) {
	t.Helper()
	dir := t.TempDir()
	b := NewBuilder().
		Name("test").
		Directory(dir).
		Level("debug").
		FlushIntervalS(1)
	if modify != nil {
		modify(b)
	}
	l, err := b.Build()
	require.NoError(t, err)
	l.SetEchoWriter(io.Discard)
	l.SetDiagWriter(io.Discard)
	t.Cleanup(func() { l.Shutdown(2 * time.Second) })
	return l, dir
}

func readLogFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestLoggerEndToEnd(t *testing.T) {
	l, dir := newStartedLogger(t, nil)

	l.Warningf("disk %s at %d%%", "sda", 93)
	l.Infof("service started")
	l.Debugf("probe value %v", 42)

	require.NoError(t, l.Flush(time.Second))

	content := readLogFile(t, dir, "test.0.txt")
	assert.Contains(t, content, "disk sda at 93%")
	assert.Contains(t, content, "service started")
	assert.Contains(t, content, "probe value 42")
	assert.Equal(t, 3, strings.Count(content, "\n"))
}

func TestLevelFiltering(t *testing.T) {
	l, dir := newStartedLogger(t, func(b *Builder) {
		b.Level("warning")
	})

	l.Warningf("kept")
	l.Infof("filtered info")
	l.Debugf("filtered debug")
	l.Detailf("filtered detail")

	require.NoError(t, l.Flush(time.Second))

	content := readLogFile(t, dir, "test.0.txt")
	assert.Contains(t, content, "kept")
	assert.NotContains(t, content, "filtered")
}

func TestSetLevelAtRuntime(t *testing.T) {
	l, dir := newStartedLogger(t, func(b *Builder) {
		b.Level("warning")
	})

	l.Infof("before")
	l.SetLevel(LevelInfo)
	l.Infof("after")

	require.NoError(t, l.Flush(time.Second))

	content := readLogFile(t, dir, "test.0.txt")
	assert.NotContains(t, content, "before")
	assert.Contains(t, content, "after")
}

func TestEchoStream(t *testing.T) {
	l, dir := newStartedLogger(t, func(b *Builder) {
		b.Level("warning").EchoLevel("info")
	})

	var echo bytes.Buffer
	l.SetEchoWriter(&echo)

	l.Infof("echoed only")
	l.Warningf("echoed and persisted")

	require.NoError(t, l.Flush(time.Second))

	assert.Contains(t, echo.String(), "echoed only")
	assert.Contains(t, echo.String(), "echoed and persisted")

	content := readLogFile(t, dir, "test.0.txt")
	assert.NotContains(t, content, "echoed only")
	assert.Contains(t, content, "echoed and persisted")
}

func TestEchoWithoutStart(t *testing.T) {
	l := NewLogger()
	cfg := DefaultConfig()
	cfg.Directory = t.TempDir()
	require.NoError(t, l.ApplyConfig(cfg))

	var echo bytes.Buffer
	l.SetEchoWriter(&echo)

	l.Warningf("echo works before start")
	assert.Contains(t, echo.String(), "echo works before start")

	// Nothing was persisted, no file was created
	entries, err := os.ReadDir(cfg.Directory)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOverflowDrop(t *testing.T) {
	l, dir := newStartedLogger(t, nil)

	l.Warningf("%s", strings.Repeat("x", maxLineSize))
	l.Warningf("small survives")

	require.NoError(t, l.Flush(time.Second))

	content := readLogFile(t, dir, "test.0.txt")
	assert.NotContains(t, content, "xxxx")
	assert.Contains(t, content, "small survives")
	assert.Equal(t, uint64(1), l.state.OverflowDrops.Load())
}

func TestRotationBySize(t *testing.T) {
	l, dir := newStartedLogger(t, func(b *Builder) {
		b.RotateSize(64)
	})

	l.Warningf("first message, long enough to exceed the rotation threshold")
	require.NoError(t, l.Flush(time.Second))

	l.Warningf("second message lands in the next file")
	require.NoError(t, l.Flush(time.Second))

	assert.Contains(t, readLogFile(t, dir, "test.0.txt"), "first message")
	assert.Contains(t, readLogFile(t, dir, "test.1.txt"), "second message")
	assert.GreaterOrEqual(t, l.state.TotalRotations.Load(), uint64(1))
}

func TestCompressedOutput(t *testing.T) {
	dir := t.TempDir()
	l, err := NewBuilder().
		Name("test").
		Directory(dir).
		Level("debug").
		FlushIntervalS(1).
		Compress(true).
		Build()
	require.NoError(t, err)
	l.SetEchoWriter(io.Discard)

	l.Warningf("compressed line one")
	l.Warningf("compressed line two")

	require.NoError(t, l.Shutdown(2*time.Second))

	f, err := os.Open(filepath.Join(dir, "test.0.gz"))
	require.NoError(t, err)
	defer f.Close()

	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)

	assert.Contains(t, string(data), "compressed line one")
	assert.Contains(t, string(data), "compressed line two")
}

func TestPrettyPrintOutput(t *testing.T) {
	l, dir := newStartedLogger(t, func(b *Builder) {
		b.PrettyPrint(true)
	})

	l.Warningf("labeled")
	l.Infof("informational")

	require.NoError(t, l.Flush(time.Second))

	content := readLogFile(t, dir, "test.0.txt")
	assert.Contains(t, content, "WARNING: labeled")
	assert.Contains(t, content, "INFO   : informational")
}

func TestNumericLevelOutput(t *testing.T) {
	l, dir := newStartedLogger(t, nil)

	l.Warningf("numeric")

	require.NoError(t, l.Flush(time.Second))
	assert.Contains(t, readLogFile(t, dir, "test.0.txt"), " 4: numeric")
}

func TestShutdownDrainsBuffer(t *testing.T) {
	dir := t.TempDir()
	l, err := NewBuilder().
		Name("test").
		Directory(dir).
		Level("debug").
		FlushIntervalS(60). // Timer never fires during the test
		Build()
	require.NoError(t, err)
	l.SetEchoWriter(io.Discard)

	for i := 0; i < 20; i++ {
		l.Infof("staged line %d", i)
	}
	require.NoError(t, l.Shutdown(2*time.Second))

	content := readLogFile(t, dir, "test.0.txt")
	for i := 0; i < 20; i++ {
		assert.Contains(t, content, fmt.Sprintf("staged line %d", i))
	}
	assert.Equal(t, 20, strings.Count(content, "\n"))
}

func TestShutdownIdempotent(t *testing.T) {
	l, _ := newStartedLogger(t, nil)

	require.NoError(t, l.Shutdown(time.Second))
	require.NoError(t, l.Shutdown(time.Second))
}

func TestLoggingAfterShutdown(t *testing.T) {
	l, dir := newStartedLogger(t, nil)

	l.Warningf("before shutdown")
	require.NoError(t, l.Shutdown(2*time.Second))

	// Does not block or panic
	l.Warningf("after shutdown")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestStartRequiresConfig(t *testing.T) {
	l := NewLogger()
	assert.Error(t, l.Start())
}

func TestDoubleStart(t *testing.T) {
	l, _ := newStartedLogger(t, nil)
	assert.Error(t, l.Start())
}

func TestFlushRequiresRunningWriter(t *testing.T) {
	l := NewLogger()
	require.NoError(t, l.ApplyConfig(DefaultConfig()))
	assert.Error(t, l.Flush(time.Second))
}

func TestVariadicMethods(t *testing.T) {
	l, dir := newStartedLogger(t, nil)

	l.Warning("count", 3, "ratio", 0.5)
	l.Info("flag", true)

	require.NoError(t, l.Flush(time.Second))

	content := readLogFile(t, dir, "test.0.txt")
	assert.Contains(t, content, "count 3 ratio 0.5")
	assert.Contains(t, content, "flag true")
}

func TestHeartbeat(t *testing.T) {
	l, dir := newStartedLogger(t, func(b *Builder) {
		b.Level("info").HeartbeatIntervalS(1)
	})

	time.Sleep(1200 * time.Millisecond)
	require.NoError(t, l.Flush(time.Second))

	content := readLogFile(t, dir, "test.0.txt")
	assert.Contains(t, content, "heartbeat seq=1")
	assert.Contains(t, content, "bytes_written=")
}
