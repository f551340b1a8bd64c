package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// cliTestEnv isolates one invocation: its own HOME, a config file, and
// stub composition inputs.
type cliTestEnv struct {
	baseDir     string
	configPath  string
	imagePath   string
	audioPath   string
	captionPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	// Blank out host credentials so key-gated behavior is deterministic.
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, "")

	env := &cliTestEnv{
		baseDir:     base,
		configPath:  configPath,
		imagePath:   filepath.Join(base, "frame.png"),
		audioPath:   filepath.Join(base, "voice.wav"),
		captionPath: filepath.Join(base, "caption.txt"),
	}
	for path, content := range map[string]string{
		env.imagePath:   "png-stub",
		env.audioPath:   "wav-stub",
		env.captionPath: "早安，朋友们",
	} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", path, err)
		}
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path, extra string) {
	t.Helper()
	content := "[logging]\nformat = \"console\"\nlevel = \"error\"\n" + extra
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func makeStubExecutables(t *testing.T, dir string, scripts map[string]string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create stub bin dir: %v", err)
	}
	for name, script := range scripts {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
