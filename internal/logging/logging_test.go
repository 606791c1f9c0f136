package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogWritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(slog.New(slog.NewTextHandler(os.Stdout, nil))) })

	Error("post_failed", map[string]any{"error": errors.New("boom"), "attempt": 3})
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("bad json %q: %v", buf.String(), err)
	}
	if rec["msg"] != "post_failed" || rec["level"] != "ERROR" || rec["error"] != "boom" || rec["attempt"] != float64(3) {
		t.Fatalf("unexpected record %v", rec)
	}
	if strings.Index(buf.String(), `"attempt"`) > strings.Index(buf.String(), `"error"`) {
		t.Fatalf("fields not sorted: %s", buf.String())
	}
}

func TestSetupWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")
	closer, err := Setup("warn", path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { level.Set(slog.LevelInfo) })
	Info("hidden", nil)
	Warn("shown", map[string]any{"k": "v"})
	_ = closer.Close()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "hidden") || !strings.Contains(string(b), `"msg":"shown"`) {
		t.Fatalf("unexpected file contents %q", b)
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel("DEBUG"); err != nil || l != slog.LevelDebug {
		t.Fatalf("got %v %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error")
	}
}
