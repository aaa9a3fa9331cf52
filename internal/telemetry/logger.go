package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileName   = "bot.log"
	logMaxSizeMB  = 2
	logMaxBackups = 3
	loggerName    = "futuresbot"
)

var (
	logger  *slog.Logger
	setupMu sync.Mutex
)

// Setup builds the process logger: a short console format on stderr mirrored
// by a rotating file sink at dir/bot.log. Calling it again replaces the
// logger instead of stacking sinks.
func Setup(level slog.Level, dir string) error {
	setupMu.Lock()
	defer setupMu.Unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log dir %s: %w", dir, err)
	}

	fileSink := &lumberjack.Logger{
		Filename:   filepath.Join(dir, logFileName),
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
	}

	logger = slog.New(&teeHandler{
		console: &prettyHandler{w: os.Stderr, level: level},
		file:    &pipeHandler{w: fileSink, level: level, name: loggerName},
	})
	slog.SetDefault(logger)
	return nil
}

func L() *slog.Logger {
	if logger == nil {
		logger = slog.New(&prettyHandler{w: os.Stderr, level: slog.LevelInfo})
	}
	return logger
}

func Infof(format string, args ...any)  { L().Info(fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { L().Warn(fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { L().Error(fmt.Sprintf(format, args...)) }
func Debugf(format string, args ...any) { L().Debug(fmt.Sprintf(format, args...)) }

// formatAttrs renders a record's attrs as " key=value" pairs so structured
// diagnostics (status codes, exchange error codes) survive into the rendered
// line on every sink.
func formatAttrs(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return ""
	}
	var b strings.Builder
	r.Attrs(func(a slog.Attr) bool {
		b.WriteString(" ")
		b.WriteString(a.Key)
		b.WriteString("=")
		b.WriteString(a.Value.String())
		return true
	})
	return b.String()
}

// ParseLogLevel converts a string level name to slog.Level.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// teeHandler fans every record out to the console and file handlers.
type teeHandler struct {
	console slog.Handler
	file    slog.Handler
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.console.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

func (h *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var first error
	if h.console.Enabled(ctx, r.Level) {
		first = h.console.Handle(ctx, r)
	}
	if h.file.Enabled(ctx, r.Level) {
		if err := h.file.Handle(ctx, r); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &teeHandler{console: h.console.WithAttrs(attrs), file: h.file.WithAttrs(attrs)}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{console: h.console.WithGroup(name), file: h.file.WithGroup(name)}
}

// prettyHandler outputs: [2026-02-21 5:10:39 PM PST] message
type prettyHandler struct {
	w     io.Writer
	level slog.Level
	mu    sync.Mutex
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.Format("2006-01-02 3:04:05 PM MST")

	var prefix string
	switch {
	case r.Level >= slog.LevelError:
		prefix = "ERROR: "
	case r.Level >= slog.LevelWarn:
		prefix = "WARN: "
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.w, "[%s] %s%s%s\n", ts, prefix, r.Message, formatAttrs(r))
	return err
}

func (h *prettyHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *prettyHandler) WithGroup(_ string) slog.Handler      { return h }

// pipeHandler outputs: 2026-02-21 17:10:39 | INFO | futuresbot | message
type pipeHandler struct {
	w     io.Writer
	level slog.Level
	name  string
	mu    sync.Mutex
}

func (h *pipeHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *pipeHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.Format("2006-01-02 15:04:05")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.w, "%s | %s | %s | %s%s\n", ts, r.Level.String(), h.name, r.Message, formatAttrs(r))
	return err
}

func (h *pipeHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *pipeHandler) WithGroup(name string) slog.Handler {
	return &pipeHandler{w: h.w, level: h.level, name: h.name + "." + name}
}
