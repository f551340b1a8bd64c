package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/nick-ma/2026-calendar/internal/deps"
	"github.com/nick-ma/2026-calendar/internal/services"
	"github.com/nick-ma/2026-calendar/internal/services/ffmpeg"
	"github.com/nick-ma/2026-calendar/internal/tts"
)

func newTTSCommand(ctx *commandContext) *cobra.Command {
	var (
		text        string
		textFile    string
		outPath     string
		csvPath     string
		audioOutDir string
		textCol     string
		dateCol     string

		model        string
		voice        string
		format       string
		speed        float64
		instructions string
		splitConcat  bool
	)

	cmd := &cobra.Command{
		Use:   "tts",
		Short: "Synthesize narration audio through the OpenAI speech API",
		Long: `TTS converts text to narration audio. Single mode takes --text or
--text-file and writes one file; batch mode reads a CSV manifest and
writes <date>.<format> per row, skipping rows with empty text. Text over
the per-request limit is rejected unless --split-concat is set, which
splits on paragraph and sentence boundaries and joins the segments
losslessly with ffmpeg.

Examples:
  calvid tts --text "早安，朋友们。" --out voice.wav
  calvid tts --text-file script.txt --out voice.mp3 --format mp3 --split-concat
  calvid tts --csv 2026.csv --audio-out-dir audio/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.componentLogger("tts")
			if err != nil {
				return err
			}

			if cfg.TTS.APIKey == "" {
				return usageError(cmd, services.Wrap(services.ErrConfiguration, "tts", "validate",
					"API key is required (set OPENAI_API_KEY or tts.api_key)", nil))
			}

			opts := tts.FromConfig(cfg)
			opts.Text = text
			opts.TextFile = textFile
			opts.OutPath = outPath
			opts.CSVPath = csvPath
			opts.OutDir = audioOutDir
			opts.SplitConcat = splitConcat

			flags := cmd.Flags()
			if flags.Changed("model") {
				opts.Model = model
			}
			if flags.Changed("voice") {
				opts.Voice = voice
			}
			if flags.Changed("format") {
				opts.Format = format
			}
			if flags.Changed("speed") {
				opts.Speed = speed
			}
			if flags.Changed("instructions") {
				opts.Instructions = instructions
			}
			if flags.Changed("text-col") {
				opts.TextColumn = textCol
			}
			if flags.Changed("date-col") {
				opts.DateColumn = dateCol
			}

			// The joiner only runs in split-and-concat mode; resolve the
			// encoder up front there so a missing binary fails before any
			// API spend.
			var joiner ffmpeg.Runner
			if splitConcat {
				binary, err := deps.ResolveFFmpeg(cfg.FFmpegBinary())
				if err != nil {
					return services.Wrap(services.ErrEnvironment, "tts", "resolve encoder", "", err)
				}
				joiner = ffmpeg.NewCLI(ffmpeg.WithBinary(binary))
			} else {
				joiner = ffmpeg.NewCLI()
			}

			client := tts.NewClient(cfg.TTS.APIKey, cfg.TTS.BaseURL,
				time.Duration(cfg.TTS.TimeoutSeconds)*time.Second, logger)
			return usageError(cmd, tts.New(client, joiner, logger).Run(cmd.Context(), opts))
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to synthesize")
	cmd.Flags().StringVar(&textFile, "text-file", "", "File holding the text to synthesize")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output audio path (single mode)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Calendar CSV manifest (batch mode)")
	cmd.Flags().StringVar(&audioOutDir, "audio-out-dir", "", "Directory for batch audio files")
	cmd.Flags().StringVar(&textCol, "text-col", "", "Manifest column holding the text (default main_text)")
	cmd.Flags().StringVar(&dateCol, "date-col", "", "Manifest column holding the date (default date)")

	cmd.Flags().StringVar(&model, "model", "", "Speech model")
	cmd.Flags().StringVar(&voice, "voice", "", "Speech voice")
	cmd.Flags().StringVar(&format, "format", "", "Audio delivery format (mp3, opus, aac, flac, wav, pcm)")
	cmd.Flags().Float64Var(&speed, "speed", 0, "Speech speed (0.25-4.0)")
	cmd.Flags().StringVar(&instructions, "instructions", "", "Style instructions (gpt-4o-mini-tts only)")
	cmd.Flags().BoolVar(&splitConcat, "split-concat", false, "Split over-limit text and join the segments with ffmpeg")

	return cmd
}
