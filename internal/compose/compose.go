package compose

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nick-ma/2026-calendar/internal/logging"
	"github.com/nick-ma/2026-calendar/internal/services"
	"github.com/nick-ma/2026-calendar/internal/services/ffmpeg"
)

// Composer drives one composition job against an encoder.
type Composer struct {
	encoder ffmpeg.Runner
	logger  *slog.Logger
}

// New constructs a Composer. A nil logger is replaced with a no-op logger.
func New(encoder ffmpeg.Runner, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Composer{encoder: encoder, logger: logger}
}

// Plan describes everything Run would do: the rendered descriptor, where it
// would be written, and the encoder argument vector referencing it. Nothing
// is written; dry runs print this directly.
type Plan struct {
	Descriptor     string
	DescriptorPath string
	FontFamily     string
	FontsDir       string
	Args           []string
}

// Plan validates the job and computes its descriptor and encoder invocation
// without touching the filesystem beyond reading the caption and font files.
func (c *Composer) Plan(opts Options) (*Plan, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	caption, err := readCaption(opts.CaptionPath)
	if err != nil {
		return nil, err
	}

	family, fontsDir := resolveFont(opts.FontFile, c.logger)
	script, err := buildScript(opts, caption, family)
	if err != nil {
		return nil, err
	}

	path := descriptorPath()
	job := ffmpeg.CompositionJob{
		ImagePath:    opts.ImagePath,
		AudioPath:    opts.AudioPath,
		SubtitlePath: path,
		FontsDir:     fontsDir,
		OutputPath:   opts.OutputPath,
		Width:        opts.Width,
		Height:       opts.Height,
		FPS:          opts.FPS,
		CRF:          opts.CRF,
		Preset:       opts.Preset,
		Pad:          opts.Pad,
		AudioCodec:   opts.AudioCodec,
		AudioBitrate: opts.AudioBitrate,
	}
	return &Plan{
		Descriptor:     script.Render(),
		DescriptorPath: path,
		FontFamily:     family,
		FontsDir:       fontsDir,
		Args:           job.Args(),
	}, nil
}

// Run validates the job, writes the descriptor, and blocks on the encoder.
// The descriptor is removed on every exit path; a cancelled context kills
// the encoder and the cleanup still runs. Output verification is attempted
// only when the options carry an ffprobe path.
func (c *Composer) Run(ctx context.Context, opts Options) error {
	plan, err := c.Plan(opts)
	if err != nil {
		return err
	}

	cleanup, err := writeDescriptor(plan.DescriptorPath, plan.Descriptor)
	if err != nil {
		return err
	}
	defer cleanup()

	c.logger.Info("composing video",
		logging.String("image", opts.ImagePath),
		logging.String("audio", opts.AudioPath),
		logging.String("output", opts.OutputPath),
		logging.String("resolution", fmt.Sprintf("%dx%d", opts.Width, opts.Height)),
		logging.String("font_family", plan.FontFamily),
	)
	c.logger.Debug("descriptor written",
		logging.String("path", plan.DescriptorPath),
		logging.Int("bytes", len(plan.Descriptor)),
	)

	start := time.Now()
	if err := c.encoder.Run(ctx, plan.Args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "compose", "encode", "encoder failed", err)
	}
	c.logger.Info("composition complete",
		logging.String("output", opts.OutputPath),
		logging.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)

	if opts.FFprobePath != "" {
		return c.verifyOutput(ctx, opts)
	}
	return nil
}
