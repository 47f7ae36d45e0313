package common

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
)

// Fields are structured attributes attached to a log line.
type Fields map[string]any

// attrs converts f to slog attributes in key order so lines are stable across runs.
func (f Fields) attrs(extra ...slog.Attr) []slog.Attr {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := append(make([]slog.Attr, 0, len(f)+len(extra)), extra...)
	for _, k := range keys {
		out = append(out, slog.Any(k, f[k]))
	}
	return out
}

// ParseLevel converts a logging.level value to a slog level. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, level)
}

// SetupLogger installs the default slog logger. format is "console" (text) or "json".
func SetupLogger(w io.Writer, level slog.Level, format string) error {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "console", "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// LogError logs err at error level.
func LogError(err error, msg string, fields Fields) {
	slog.LogAttrs(context.Background(), slog.LevelError, msg, fields.attrs(slog.String("error", Describe(err)))...)
}

// LogInfo logs at info level.
func LogInfo(msg string, fields Fields) {
	slog.LogAttrs(context.Background(), slog.LevelInfo, msg, fields.attrs()...)
}

// LogDebug logs at debug level.
func LogDebug(msg string, fields Fields) {
	slog.LogAttrs(context.Background(), slog.LevelDebug, msg, fields.attrs()...)
}
