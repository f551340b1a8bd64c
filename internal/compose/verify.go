package compose

import (
	"context"
	"fmt"
	"math"

	"github.com/nick-ma/2026-calendar/internal/logging"
	"github.com/nick-ma/2026-calendar/internal/media/ffprobe"
	"github.com/nick-ma/2026-calendar/internal/services"
)

// verifyOutput probes the composed file and compares it against the job:
// duration must track the narration within one frame interval, and the
// video stream must carry the requested geometry and pixel format.
// Deviations are warnings; only a failed probe is an error.
func (c *Composer) verifyOutput(ctx context.Context, opts Options) error {
	output, err := ffprobe.Inspect(ctx, opts.FFprobePath, opts.OutputPath)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "compose", "verify", "probe output", err)
	}
	narration, err := ffprobe.Inspect(ctx, opts.FFprobePath, opts.AudioPath)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "compose", "verify", "probe narration", err)
	}

	frameInterval := 1.0 / float64(opts.FPS)
	delta := output.DurationSeconds() - narration.DurationSeconds()
	if math.IsNaN(delta) || math.Abs(delta) > frameInterval {
		c.logger.Warn("output duration drifts from narration",
			logging.Float64("output_seconds", output.DurationSeconds()),
			logging.Float64("narration_seconds", narration.DurationSeconds()),
			logging.Float64("allowed_delta", frameInterval),
		)
	}

	video, ok := output.FirstVideoStream()
	if !ok {
		c.logger.Warn("output has no video stream", logging.String("output", opts.OutputPath))
		return nil
	}
	if video.Width != opts.Width || video.Height != opts.Height {
		c.logger.Warn("output resolution differs from target",
			logging.String("got", fmt.Sprintf("%dx%d", video.Width, video.Height)),
			logging.String("want", fmt.Sprintf("%dx%d", opts.Width, opts.Height)),
		)
	}
	if video.PixFmt != "yuv420p" {
		c.logger.Warn("output pixel format differs from target",
			logging.String("got", video.PixFmt),
			logging.String("want", "yuv420p"),
		)
	}

	c.logger.Info("output verified",
		logging.Float64("seconds", output.DurationSeconds()),
		logging.String("pix_fmt", video.PixFmt),
		logging.String("resolution", fmt.Sprintf("%dx%d", video.Width, video.Height)),
	)
	return nil
}
