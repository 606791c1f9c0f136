package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/mattn/go-isatty"
	slogmulti "github.com/samber/slog-multi"
)

var (
	level  = new(slog.LevelVar)
	logger atomic.Pointer[slog.Logger]
)

func init() {
	logger.Store(slog.New(consoleHandler(os.Stdout)))
}

// Setup installs the process logger: text on a terminal, JSON otherwise, and
// a JSON copy appended to file when file is non-empty. The returned closer
// releases the file.
func Setup(levelName, file string) (io.Closer, error) {
	lvl, err := ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	level.Set(lvl)
	handlers := []slog.Handler{consoleHandler(os.Stdout)}
	var closer io.Closer = nopCloser{}
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
		closer = f
	}
	SetLogger(slog.New(slogmulti.Fanout(handlers...)))
	return closer, nil
}

// SetLogger replaces the process logger; tests use it to capture output.
func SetLogger(l *slog.Logger) { logger.Store(l) }

// ParseLevel accepts debug, info, warn or error; empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func consoleHandler(w *os.File) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd()) {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// Log writes msg with fields as attributes, sorted by key.
func Log(lvl slog.Level, msg string, fields map[string]any) {
	l := logger.Load()
	ctx := context.Background()
	if !l.Enabled(ctx, lvl) {
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		v := fields[k]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		attrs = append(attrs, slog.Any(k, v))
	}
	l.LogAttrs(ctx, lvl, msg, attrs...)
}

func Debug(msg string, fields map[string]any) { Log(slog.LevelDebug, msg, fields) }
func Info(msg string, fields map[string]any)  { Log(slog.LevelInfo, msg, fields) }
func Warn(msg string, fields map[string]any)  { Log(slog.LevelWarn, msg, fields) }
func Error(msg string, fields map[string]any) { Log(slog.LevelError, msg, fields) }

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
