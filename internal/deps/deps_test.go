package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Command != present {
		t.Fatalf("expected resolved command %q, got %q", present, results[0].Command)
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
}

func TestCheckBinariesEmptyCommand(t *testing.T) {
	results := CheckBinaries([]Requirement{{Name: "Blank", Command: "   "}})
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].Available {
		t.Fatal("expected blank command to be unavailable")
	}
	if results[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %s", results[0].Detail)
	}
}

func TestResolveFFmpegExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	ffmpegPath := filepath.Join(tmp, executableName("ffmpeg"))
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(ffmpegPath, script, 0o755); err != nil {
		t.Fatalf("write ffmpeg stub: %v", err)
	}

	resolved, err := ResolveFFmpeg(ffmpegPath)
	if err != nil {
		t.Fatalf("resolve explicit path: %v", err)
	}
	if resolved != ffmpegPath {
		t.Fatalf("expected %q, got %q", ffmpegPath, resolved)
	}
}

func TestResolveFFmpegFromPath(t *testing.T) {
	binDir := t.TempDir()
	ffmpegPath := filepath.Join(binDir, executableName("ffmpeg"))
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(ffmpegPath, script, 0o755); err != nil {
		t.Fatalf("write ffmpeg stub: %v", err)
	}
	t.Setenv("PATH", binDir)

	resolved, err := ResolveFFmpeg("")
	if err != nil {
		t.Fatalf("resolve from PATH: %v", err)
	}
	if resolved != ffmpegPath {
		t.Fatalf("expected %q, got %q", ffmpegPath, resolved)
	}
}

func TestResolveFFmpegMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	if _, err := ResolveFFmpeg(""); err == nil {
		t.Fatal("expected resolution failure")
	} else if !strings.Contains(err.Error(), "ffmpeg") {
		t.Fatalf("expected error to name ffmpeg, got: %v", err)
	}
}

func TestResolveFFprobeMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	if _, err := ResolveFFprobe("missing-probe"); err == nil {
		t.Fatal("expected resolution failure")
	}
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}
