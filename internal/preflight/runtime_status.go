package preflight

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/nick-ma/2026-calendar/internal/deps"
)

// EncoderProbe reports the ffmpeg build visible to calvid.
type EncoderProbe struct {
	Detected bool
	Path     string
	Version  string
}

// ProbeEncoder locates ffmpeg and asks it for its version. A binary that
// resolves but fails to report a version is still considered detected.
func ProbeEncoder(command string) EncoderProbe {
	path, err := deps.ResolveFFmpeg(command)
	if err != nil {
		return EncoderProbe{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	output, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		return EncoderProbe{Detected: true, Path: path}
	}
	return EncoderProbe{
		Detected: true,
		Path:     path,
		Version:  parseEncoderVersion(string(output)),
	}
}

// parseEncoderVersion extracts the version token from ffmpeg's banner line,
// e.g. "ffmpeg version 6.1.1 Copyright (c) ...".
func parseEncoderVersion(output string) string {
	line := output
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	fields := strings.Fields(line)
	if len(fields) >= 3 && fields[0] == "ffmpeg" && fields[1] == "version" {
		return fields[2]
	}
	return ""
}

// EncoderDetail renders a display-friendly summary for status UIs.
func (p EncoderProbe) EncoderDetail() string {
	if !p.Detected {
		return "ffmpeg not found"
	}
	if p.Version == "" {
		return p.Path
	}
	return fmt.Sprintf("ffmpeg %s at %s", p.Version, p.Path)
}
