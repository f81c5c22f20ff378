package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// HertzSlogAdapter adapts slog to Hertz's hlog interface so the HTTP client
// never writes to the terminal the console is drawing on.
type HertzSlogAdapter struct {
	logger   *slog.Logger
	minLevel atomic.Int32
}

var _ hlog.FullLogger = (*HertzSlogAdapter)(nil)

// NewHertzSlogAdapter creates a new Hertz logger adapter using slog
func NewHertzSlogAdapter(logger *slog.Logger) *HertzSlogAdapter {
	a := &HertzSlogAdapter{logger: logger}
	a.minLevel.Store(int32(hlog.LevelInfo))
	return a
}

// toSlog maps hlog's seven levels onto slog's four
func toSlog(level hlog.Level) slog.Level {
	switch {
	case level <= hlog.LevelDebug:
		return slog.LevelDebug
	case level <= hlog.LevelNotice:
		return slog.LevelInfo
	case level == hlog.LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func (h *HertzSlogAdapter) log(ctx context.Context, level hlog.Level, msg string) {
	if level < hlog.Level(h.minLevel.Load()) {
		return
	}
	h.logger.Log(ctx, toSlog(level), msg)
}

func (h *HertzSlogAdapter) Trace(v ...interface{}) { h.log(context.Background(), hlog.LevelTrace, fmt.Sprint(v...)) }
func (h *HertzSlogAdapter) Debug(v ...interface{}) { h.log(context.Background(), hlog.LevelDebug, fmt.Sprint(v...)) }
func (h *HertzSlogAdapter) Info(v ...interface{}) { h.log(context.Background(), hlog.LevelInfo, fmt.Sprint(v...)) }
func (h *HertzSlogAdapter) Notice(v ...interface{}) { h.log(context.Background(), hlog.LevelNotice, fmt.Sprint(v...)) }
func (h *HertzSlogAdapter) Warn(v ...interface{}) { h.log(context.Background(), hlog.LevelWarn, fmt.Sprint(v...)) }
func (h *HertzSlogAdapter) Error(v ...interface{}) { h.log(context.Background(), hlog.LevelError, fmt.Sprint(v...)) }

// Fatal is logged at error level and never exits
func (h *HertzSlogAdapter) Fatal(v ...interface{}) { h.log(context.Background(), hlog.LevelFatal, fmt.Sprint(v...)) }

func (h *HertzSlogAdapter) Tracef(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelTrace, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Debugf(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelDebug, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Infof(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelInfo, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Noticef(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelNotice, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Warnf(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelWarn, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Errorf(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelError, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Fatalf(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelFatal, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxTracef(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelTrace, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxDebugf(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelDebug, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxInfof(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelInfo, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxNoticef(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelNotice, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxWarnf(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelWarn, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxErrorf(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelError, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxFatalf(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelFatal, fmt.Sprintf(format, v...))
}

// SetLevel drops Hertz messages below level
func (h *HertzSlogAdapter) SetLevel(level hlog.Level) {
	h.minLevel.Store(int32(level))
}

// SetOutput is ignored: output is owned by the slog handler chosen in Setup
func (h *HertzSlogAdapter) SetOutput(io.Writer) {}
