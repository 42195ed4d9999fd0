package compat

import (
	"bytes"
	"testing"

	"github.com/lixenwraith/buflog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEchoLogger(t *testing.T) (*buflog.Logger, *bytes.Buffer) {
	t.Helper()
	l := buflog.NewLogger()
	cfg := buflog.DefaultConfig()
	cfg.Level = "detail"
	cfg.EchoLevel = "detail"
	require.NoError(t, l.ApplyConfig(cfg))

	var echo bytes.Buffer
	l.SetEchoWriter(&echo)
	return l, &echo
}

func TestGnetAdapterLevels(t *testing.T) {
	l, echo := newEchoLogger(t)
	a := NewGnetAdapter(l)

	a.Debugf("debug %d", 1)
	a.Infof("info %d", 2)
	a.Warnf("warn %d", 3)
	a.Errorf("error %d", 4)

	out := echo.String()
	assert.Contains(t, out, "gnet: debug 1")
	assert.Contains(t, out, "gnet: info 2")
	assert.Contains(t, out, "gnet: warn 3")
	assert.Contains(t, out, "gnet: error 4")
}

func TestGnetAdapterFatalHandler(t *testing.T) {
	l, echo := newEchoLogger(t)

	var fatalMsg string
	a := NewGnetAdapter(l, WithFatalHandler(func(msg string) {
		fatalMsg = msg
	}))

	a.Fatalf("unrecoverable %s", "state")

	assert.Contains(t, echo.String(), "gnet: fatal: unrecoverable state")
	assert.NotEmpty(t, fatalMsg)
}

func TestFastHTTPAdapterPrintf(t *testing.T) {
	l, echo := newEchoLogger(t)
	a := NewFastHTTPAdapter(l)

	a.Printf("serving request %s", "/health")
	a.Printf("error when accepting connection")

	out := echo.String()
	assert.Contains(t, out, "fasthttp: serving request /health")
	assert.Contains(t, out, "fasthttp: error when accepting connection")
}

func TestDetectLogLevel(t *testing.T) {
	tests := []struct {
		msg  string
		want int64
	}{
		{"error when serving", buflog.LevelWarning},
		{"operation failed", buflog.LevelWarning},
		{"deprecated option", buflog.LevelWarning},
		{"debug trace enabled", buflog.LevelDebug},
		{"listening on :8080", buflog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectLogLevel(tt.msg), "msg %q", tt.msg)
	}
}
