package tts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nick-ma/2026-calendar/internal/calendar"
	"github.com/nick-ma/2026-calendar/internal/config"
	"github.com/nick-ma/2026-calendar/internal/logging"
	"github.com/nick-ma/2026-calendar/internal/services"
	"github.com/nick-ma/2026-calendar/internal/services/ffmpeg"
	"github.com/nick-ma/2026-calendar/internal/textutil"
)

// instructionsModel is the only model that honors style instructions.
const instructionsModel = "gpt-4o-mini-tts"

// Documented model and voice names. Unknown values pass through to the API
// with a warning so newer server-side additions keep working; delivery
// formats are closed because they name the output files.
var (
	knownModels = []string{"tts-1", "tts-1-hd", instructionsModel}
	knownVoices = []string{
		"alloy", "ash", "ballad", "coral", "echo", "fable",
		"onyx", "nova", "sage", "shimmer", "verse",
	}
	validFormats = []string{"mp3", "opus", "aac", "flac", "wav", "pcm"}
)

// Options describes one synthesis run: voice parameters plus exactly one of
// the single-text or CSV batch input modes.
type Options struct {
	Model        string
	Voice        string
	Format       string
	Speed        float64
	Instructions string

	// SplitConcat allows text over the request limit by splitting it and
	// joining the segments with the encoder's concat demuxer.
	SplitConcat bool

	Text     string
	TextFile string
	OutPath  string

	CSVPath    string
	TextColumn string
	DateColumn string
	OutDir     string
}

// FromConfig seeds voice parameters from the loaded configuration. Input
// and output locations come from flags.
func FromConfig(cfg *config.Config) Options {
	return Options{
		Model:        cfg.TTS.Model,
		Voice:        cfg.TTS.Voice,
		Format:       cfg.TTS.Format,
		Speed:        cfg.TTS.Speed,
		Instructions: cfg.TTS.Instructions,
		TextColumn:   calendar.ColMainText,
		DateColumn:   calendar.ColDate,
	}
}

// Validate checks voice parameters and mode selection before any request.
func (o Options) Validate() error {
	if !slices.Contains(validFormats, o.Format) {
		return services.Wrap(services.ErrValidation, "tts", "validate",
			fmt.Sprintf("format %q must be one of %s", o.Format, strings.Join(validFormats, ", ")), nil)
	}
	if o.Speed < 0.25 || o.Speed > 4.0 {
		return services.Wrap(services.ErrValidation, "tts", "validate",
			fmt.Sprintf("speed %g must be between 0.25 and 4.0", o.Speed), nil)
	}
	if strings.TrimSpace(o.Model) == "" {
		return services.Wrap(services.ErrConfiguration, "tts", "validate", "model is required", nil)
	}
	if strings.TrimSpace(o.Voice) == "" {
		return services.Wrap(services.ErrConfiguration, "tts", "validate", "voice is required", nil)
	}

	if o.CSVPath != "" {
		if o.OutDir == "" {
			return services.Wrap(services.ErrConfiguration, "tts", "validate",
				"audio output directory is required in batch mode", nil)
		}
		if o.TextColumn == "" || o.DateColumn == "" {
			return services.Wrap(services.ErrConfiguration, "tts", "validate",
				"text and date column names are required in batch mode", nil)
		}
		return nil
	}
	if o.Text == "" && o.TextFile == "" {
		return services.Wrap(services.ErrConfiguration, "tts", "validate",
			"text, a text file, or a CSV manifest is required", nil)
	}
	if o.OutPath == "" {
		return services.Wrap(services.ErrConfiguration, "tts", "validate",
			"output path is required in single mode", nil)
	}
	return nil
}

// request builds the API parameters, dropping instructions on models that
// do not honor them.
func (o Options) request(logger *slog.Logger) Request {
	req := Request{
		Model:        o.Model,
		Voice:        o.Voice,
		Format:       o.Format,
		Speed:        o.Speed,
		Instructions: o.Instructions,
	}
	if req.Instructions != "" && req.Model != instructionsModel {
		logger.Warn("style instructions dropped, model does not support them",
			logging.String("model", req.Model),
		)
		req.Instructions = ""
	}
	return req
}

// Synthesizer turns text into narration audio, joining split segments with
// the encoder when needed.
type Synthesizer struct {
	client *Client
	joiner ffmpeg.Runner
	logger *slog.Logger
}

func New(client *Client, joiner ffmpeg.Runner, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Synthesizer{client: client, joiner: joiner, logger: logger}
}

// Run executes one synthesis batch or single conversion.
func (s *Synthesizer) Run(ctx context.Context, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if !slices.Contains(knownModels, opts.Model) {
		s.logger.Warn("model not in the documented set, passing through",
			logging.String("model", opts.Model),
		)
	}
	if !slices.Contains(knownVoices, opts.Voice) {
		s.logger.Warn("voice not in the documented set, passing through",
			logging.String("voice", opts.Voice),
		)
	}

	if opts.CSVPath != "" {
		return s.runBatch(ctx, opts)
	}
	return s.runSingle(ctx, opts)
}

func (s *Synthesizer) runSingle(ctx context.Context, opts Options) error {
	text := opts.Text
	if text == "" {
		data, err := os.ReadFile(opts.TextFile)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return services.Wrap(services.ErrNotFound, "tts", "read text",
					fmt.Sprintf("text file %q does not exist", opts.TextFile), nil)
			}
			return services.Wrap(services.ErrNotFound, "tts", "read text", opts.TextFile, err)
		}
		text = string(data)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return services.Wrap(services.ErrValidation, "tts", "read text", "text is empty", nil)
	}
	return s.synthesize(ctx, opts, text, opts.OutPath)
}

func (s *Synthesizer) runBatch(ctx context.Context, opts Options) error {
	records, err := calendar.Load(opts.CSVPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, "tts", "load manifest", opts.CSVPath, err)
		}
		return services.Wrap(services.ErrValidation, "tts", "load manifest", "", err)
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return services.Wrap(services.ErrEnvironment, "tts", "create output directory", opts.OutDir, err)
	}

	s.logger.Info("synthesizing narration",
		logging.Int("rows", len(records)),
		logging.String("out_dir", opts.OutDir),
	)
	started := time.Now()

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("synthesis interrupted: %w", err)
		}
		date := rec.Get(opts.DateColumn)
		if date == "" {
			return services.Wrap(services.ErrValidation, "tts", "synthesize",
				fmt.Sprintf("row %d missing %q value", i+1, opts.DateColumn), nil)
		}
		text := rec.Get(opts.TextColumn)
		if text == "" {
			s.logger.Info("row skipped, empty text",
				logging.Int("index", i+1),
				logging.Int("total", len(records)),
				logging.String("date", date),
			)
			continue
		}
		out := filepath.Join(opts.OutDir, textutil.SanitizeFileName(date)+"."+opts.Format)
		s.logger.Info("synthesizing row",
			logging.Int("index", i+1),
			logging.Int("total", len(records)),
			logging.String("file", filepath.Base(out)),
		)
		if err := s.synthesize(ctx, opts, text, out); err != nil {
			return fmt.Errorf("row %d (%s): %w", i+1, date, err)
		}
	}

	s.logger.Info("narration complete",
		logging.Int("count", len(records)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return nil
}

// synthesize converts one text into one audio file, splitting and joining
// when the text exceeds the request limit.
func (s *Synthesizer) synthesize(ctx context.Context, opts Options, text, outPath string) error {
	chunks := SplitText(text, MaxRequestRunes)
	if len(chunks) == 1 {
		return s.client.Synthesize(ctx, opts.request(s.logger), text, outPath)
	}
	if !opts.SplitConcat {
		return services.Wrap(services.ErrValidation, "tts", "synthesize",
			fmt.Sprintf("text exceeds the %d-character request limit; enable split-and-concat", MaxRequestRunes), nil)
	}

	s.logger.Info("splitting long text",
		logging.Int("chunks", len(chunks)),
		logging.String("file", filepath.Base(outPath)),
	)

	parts := make([]string, 0, len(chunks))
	for idx, chunk := range chunks {
		part := partPath(outPath, opts.Format, idx+1)
		if err := s.client.Synthesize(ctx, opts.request(s.logger), chunk, part); err != nil {
			return err
		}
		parts = append(parts, part)
	}

	if err := s.joinParts(ctx, parts, outPath); err != nil {
		return err
	}
	for _, part := range parts {
		if err := os.Remove(part); err != nil {
			s.logger.Warn("segment file left behind", logging.String("file", part), logging.Error(err))
		}
	}
	return nil
}

// joinParts concatenates the segment files into outPath with the encoder's
// concat demuxer. The list file is removed on every exit path.
func (s *Synthesizer) joinParts(ctx context.Context, parts []string, outPath string) error {
	listPath := filepath.Join(os.TempDir(), "calvid-concat-"+uuid.NewString()+".txt")
	if err := ffmpeg.WriteConcatList(listPath, parts); err != nil {
		return services.Wrap(services.ErrEnvironment, "tts", "write concat list", listPath, err)
	}
	defer os.Remove(listPath)

	job := ffmpeg.ConcatJob{ListPath: listPath, OutputPath: outPath}
	if err := s.joiner.Run(ctx, job.Args()...); err != nil {
		return services.Wrap(services.ErrExternalTool, "tts", "join segments", "encoder failed", err)
	}
	return nil
}
