package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragar/ragarctl/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := parseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := parseLevel("verbose")
	assert.Error(t, err)
}

func TestSetup_File(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	path := filepath.Join(t.TempDir(), "logs", "ragarctl.log")
	closer, err := Setup(config.LogConfig{Level: "debug", Format: "json", Output: "file", FilePath: path})
	require.NoError(t, err)

	slog.Info("fetch failed", "op", "datasets")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"fetch failed"`)
	assert.Contains(t, string(data), `"op":"datasets"`)
}

func TestSetup_Invalid(t *testing.T) {
	_, err := Setup(config.LogConfig{Level: "info", Format: "xml", Output: "stderr"})
	assert.Error(t, err)

	_, err = Setup(config.LogConfig{Level: "info", Format: "text", Output: "file"})
	assert.Error(t, err)
}

func TestHertzAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewHertzSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	adapter.Debugf("hidden %d", 1)
	adapter.Warnf("dial retry %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "dial retry 2")
	assert.Contains(t, buf.String(), "level=WARN")

	adapter.SetLevel(hlog.LevelTrace)
	adapter.CtxTracef(context.Background(), "trace %s", "on")
	assert.Contains(t, buf.String(), "trace on")

	adapter.Fatal("not fatal")
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithContext(context.Background(), WithRequestID(l, "req-7"))
	FromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), "request_id=req-7")

	assert.Equal(t, slog.Default(), FromContext(context.Background()))
	assert.Equal(t, l, WithError(l, nil))
}

func TestFormatTime(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{ReplaceAttr: formatTime}))

	l.Info("tick")
	assert.Regexp(t, `"time":"\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}`, buf.String())
}
