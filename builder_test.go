package buflog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	t.Run("successful build returns started logger", func(t *testing.T) {
		tmpDir := t.TempDir()

		logger, err := NewBuilder().
			Name("app").
			Directory(tmpDir).
			Level("debug").
			EchoLevel("info").
			BufferSize(4096).
			RotateSize(8192).
			FlushIntervalS(2).
			PrettyPrint(true).
			Compress(false).
			Build()

		if logger != nil {
			defer logger.Shutdown(2 * time.Second)
		}

		require.NoError(t, err)
		require.NotNil(t, logger)

		cfg := logger.GetConfig()
		require.NotNil(t, cfg)
		assert.Equal(t, "app", cfg.Name)
		assert.Equal(t, tmpDir, cfg.Directory)
		assert.Equal(t, "debug", cfg.Level)
		assert.Equal(t, "info", cfg.EchoLevel)
		assert.Equal(t, int64(4096), cfg.BufferSize)
		assert.Equal(t, int64(8192), cfg.RotateSize)
		assert.Equal(t, int64(2), cfg.FlushIntervalS)
		assert.True(t, cfg.PrettyPrint)

		assert.Equal(t, LevelDebug, logger.Level())
	})

	t.Run("invalid level fails validation", func(t *testing.T) {
		logger, err := NewBuilder().
			Directory(t.TempDir()).
			Level("invalid-level-string").
			Build()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown level")
		assert.Nil(t, logger)
	})

	t.Run("zero buffer size fails validation", func(t *testing.T) {
		logger, err := NewBuilder().
			Directory(t.TempDir()).
			BufferSize(0).
			Build()

		require.Error(t, err)
		assert.Nil(t, logger)
	})
}
