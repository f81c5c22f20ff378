package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"github.com/ragar/ragarctl/internal/config"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// Setup installs the process-wide slog logger described by cfg and routes
// Hertz client logs through it. Closing the result releases the log file.
//
// The console owns the terminal while it runs, so ragarctl defaults to a
// file sink; stdout and stderr remain available for one-shot commands.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	sink, closer, err := openSink(cfg)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: cfg.AddSource, ReplaceAttr: formatTime}
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(sink, opts)
	case "text":
		handler = slog.NewTextHandler(sink, opts)
	default:
		_ = closer.Close()
		return nil, fmt.Errorf("invalid log format: %s", cfg.Format)
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	hlog.SetLogger(NewHertzSlogAdapter(l.With("component", "hertz")))

	l.Debug("logger ready", "level", cfg.Level, "format", cfg.Format, "output", cfg.Output)
	return closer, nil
}

// openSink resolves cfg.Output to a writer. Only the file sink needs closing.
func openSink(cfg config.LogConfig) (io.Writer, io.Closer, error) {
	switch cfg.Output {
	case "stdout":
		return os.Stdout, nopCloser{}, nil
	case "stderr":
		return os.Stderr, nopCloser{}, nil
	case "file":
	default:
		return nil, nil, fmt.Errorf("invalid log output: %s", cfg.Output)
	}

	if cfg.FilePath == "" {
		return nil, nil, fmt.Errorf("log file path is required when output is 'file'")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, f, nil
}

// formatTime renders record timestamps with milliseconds and zone offset
func formatTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().Format(timeLayout))
	}
	return a
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func parseLevel(s string) (slog.Level, error) {
	if level, ok := levels[strings.ToLower(s)]; ok {
		return level, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level: %s", s)
}

type ctxKey struct{}

// FromContext returns the logger stored by WithContext, or slog.Default()
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// WithRequestID tags l with the X-Request-ID of one API call
func WithRequestID(l *slog.Logger, requestID string) *slog.Logger {
	return l.With("request_id", requestID)
}

// WithError attaches err's text; a nil err returns l unchanged
func WithError(l *slog.Logger, err error) *slog.Logger {
	if err == nil {
		return l
	}
	return l.With("error", err.Error())
}
