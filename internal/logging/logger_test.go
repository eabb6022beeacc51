package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewConsoleWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "snip.log")

	logger, err := New(Options{
		Level:            "debug",
		Format:           "console",
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	component := NewComponentLogger(logger, "cache")
	component.Info("cache hit", String(FieldCacheKey, "wJ2Y4yQzuqE"), Int("entries", 3))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "INFO cache: cache hit") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "cache_key=wJ2Y4yQzuqE") || !strings.Contains(line, "entries=3") {
		t.Fatalf("missing attrs in line: %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestConsoleQuotesValuesWithSpaces(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "snip.log")
	logger, err := New(Options{Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("msg", String("detail", "two words"))
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `detail="two words"`) {
		t.Fatalf("expected quoted value, got %q", data)
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "snip-old.log")
	fresh := filepath.Join(dir, "snip-fresh.log")
	keep := filepath.Join(dir, "snip-excluded.log")
	for _, path := range []string{old, fresh, keep} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	stale := time.Now().AddDate(0, 0, -30)
	for _, path := range []string{old, keep} {
		if err := os.Chtimes(path, stale, stale); err != nil {
			t.Fatalf("chtimes %s: %v", path, err)
		}
	}

	CleanupOldLogs(NewNop(), dir, "snip-*.log", 10, keep)

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatalf("expected old log removed, stat err=%v", err)
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatalf("fresh log should remain: %v", err)
	}
	if _, err := os.Stat(keep); err != nil {
		t.Fatalf("excluded log should remain: %v", err)
	}
}

func TestCleanupDisabledByZeroRetention(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "snip-old.log")
	if err := os.WriteFile(old, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	stale := time.Now().AddDate(0, 0, -30)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	CleanupOldLogs(NewNop(), dir, "snip-*.log", 0)
	if _, err := os.Stat(old); err != nil {
		t.Fatalf("file should remain with retention disabled: %v", err)
	}
}
