package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"snip/internal/services"
)

func TestClipArgCountRejected(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"https://example.com/watch?v=ABC"},
		{"https://example.com/watch?v=ABC", "00:01:00"},
		{"https://example.com/watch?v=ABC", "00:01:00", "00:02:00", "extra"},
	} {
		_, _, err := runCLI(t, args, "")
		if err == nil {
			t.Fatalf("expected usage error for %d args", len(args))
		}
		if !errors.Is(err, services.ErrUsage) {
			t.Fatalf("expected usage marker for %d args, got %v", len(args), err)
		}
		requireContains(t, err.Error(), "expected <url> <start> <end>")
	}
}

func TestValidateClipArgsAcceptsThree(t *testing.T) {
	if err := validateClipArgs(nil, []string{"url", "0:00", "0:10"}); err != nil {
		t.Fatalf("validateClipArgs: %v", err)
	}
}

func TestHumanBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{int64(1.5 * 1024 * 1024 * 1024), "1.5 GiB"},
	}
	for _, tc := range cases {
		if got := humanBytes(tc.in); got != tc.want {
			t.Fatalf("humanBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDepsCommand(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	bin := filepath.Join(base, "bin")
	if err := os.MkdirAll(bin, 0o755); err != nil {
		t.Fatalf("create bin dir: %v", err)
	}
	for _, name := range []string{"yt-dlp", "ffmpeg", "mpv"} {
		script := filepath.Join(bin, name)
		if err := os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}

	t.Setenv("PATH", bin)
	out, _, err := runCLI(t, []string{"deps"}, configPath)
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	requireContains(t, out, "yt-dlp")
	requireContains(t, out, "yes")

	if err := os.Remove(filepath.Join(bin, "mpv")); err != nil {
		t.Fatalf("remove stub: %v", err)
	}
	_, _, err = runCLI(t, []string{"deps"}, configPath)
	if err == nil {
		t.Fatal("expected error with mpv missing")
	}
}
