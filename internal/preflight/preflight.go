package preflight

import (
	"context"

	"github.com/nick-ma/2026-calendar/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Filesystem checks are only run for paths that are actually configured.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Caption font for subtitle burn-in (when configured)
	if cfg.Style.FontFile != "" {
		results = append(results, CheckFileAccess("Caption font", cfg.Style.FontFile))
	}

	// Frame rendering assets (when configured)
	if cfg.Frames.Background != "" {
		results = append(results, CheckFileAccess("Frame background", cfg.Frames.Background))
	}
	if cfg.Frames.FontCN != "" {
		results = append(results, CheckFileAccess("CJK frame font", cfg.Frames.FontCN))
	}
	if cfg.Frames.FontEN != "" {
		results = append(results, CheckFileAccess("Latin frame font", cfg.Frames.FontEN))
	}

	// Log directory (when configured)
	if cfg.Logging.Dir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.Dir))
	}

	// Speech API (reports a missing key rather than skipping, since
	// narration synthesis is a headline feature)
	results = append(results, CheckOpenAI(ctx, "OpenAI speech API", cfg.TTS))

	return results
}
