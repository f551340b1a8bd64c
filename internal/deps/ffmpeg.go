package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// ResolveFFmpeg locates the ffmpeg binary named by command. The command may
// be a bare name resolved against PATH or an explicit path. An empty command
// falls back to "ffmpeg".
func ResolveFFmpeg(command string) (string, error) {
	return resolveTool("ffmpeg", command)
}

// ResolveFFprobe locates the ffprobe binary named by command.
func ResolveFFprobe(command string) (string, error) {
	return resolveTool("ffprobe", command)
}

func resolveTool(fallback, command string) (string, error) {
	name := strings.TrimSpace(command)
	if name == "" {
		name = fallback
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("locate %s: %w", fallback, err)
	}
	return path, nil
}
