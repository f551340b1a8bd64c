package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nick-ma/2026-calendar/internal/compose"
	"github.com/nick-ma/2026-calendar/internal/deps"
	"github.com/nick-ma/2026-calendar/internal/services"
	"github.com/nick-ma/2026-calendar/internal/services/ffmpeg"
)

func newComposeCommand(ctx *commandContext) *cobra.Command {
	var (
		imagePath   string
		audioPath   string
		captionPath string
		outputPath  string

		regionX, regionY, regionW, regionH int

		fontSize     int
		fontColor    string
		boxColor     string
		outlineWidth float64
		fontFile     string

		resolution string
		fps        int
		crf        int
		preset     string
		pad        bool

		dryRun bool
		verify bool
	)

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose a frame, narration, and caption into a video",
		Long: `Compose loops a still image over a narration track, burns the caption
text into a styled box, and encodes the result. The caption region,
colors, and encoder settings come from the configuration file; flags
override individual values for one invocation.

Examples:
  calvid compose --image frame.png --audio voice.wav --caption text.txt --out day.mp4
  calvid compose ... --box-color 000000@0.6 --resolution 720x1280 --pad=false
  calvid compose ... --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.componentLogger("compose")
			if err != nil {
				return err
			}

			opts := compose.FromConfig(cfg)
			opts.ImagePath = imagePath
			opts.AudioPath = audioPath
			opts.CaptionPath = captionPath
			opts.OutputPath = outputPath

			flags := cmd.Flags()
			if flags.Changed("region-x") {
				opts.RegionX = regionX
			}
			if flags.Changed("region-y") {
				opts.RegionY = regionY
			}
			if flags.Changed("region-w") {
				opts.RegionW = regionW
			}
			if flags.Changed("region-h") {
				opts.RegionH = regionH
			}
			if flags.Changed("font-size") {
				opts.FontSize = fontSize
			}
			if flags.Changed("font-color") {
				opts.FontColor = fontColor
			}
			if flags.Changed("box-color") {
				opts.BoxColor = boxColor
			}
			if flags.Changed("outline") {
				opts.OutlineWidth = outlineWidth
			}
			if flags.Changed("font-file") {
				opts.FontFile = fontFile
			}
			if flags.Changed("fps") {
				opts.FPS = fps
			}
			if flags.Changed("crf") {
				opts.CRF = crf
			}
			if flags.Changed("preset") {
				opts.Preset = preset
			}
			if flags.Changed("pad") {
				opts.Pad = pad
			}
			if flags.Changed("resolution") {
				width, height, err := compose.ParseResolution(resolution)
				if err != nil {
					return usageError(cmd, services.Wrap(services.ErrValidation, "compose", "parse flags", "", err))
				}
				opts.Width = width
				opts.Height = height
			}

			if dryRun {
				plan, err := compose.New(nil, logger).Plan(opts)
				if err != nil {
					return usageError(cmd, err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "ffmpeg "+strings.Join(plan.Args, " "))
				fmt.Fprintln(out)
				fmt.Fprint(out, plan.Descriptor)
				return nil
			}

			binary, err := deps.ResolveFFmpeg(cfg.FFmpegBinary())
			if err != nil {
				return services.Wrap(services.ErrEnvironment, "compose", "resolve encoder", "", err)
			}
			if verify {
				probe, err := deps.ResolveFFprobe(cfg.FFprobeBinary())
				if err != nil {
					return services.Wrap(services.ErrEnvironment, "compose", "resolve ffprobe", "", err)
				}
				opts.FFprobePath = probe
			}

			encoder := ffmpeg.NewCLI(ffmpeg.WithBinary(binary))
			return usageError(cmd, compose.New(encoder, logger).Run(cmd.Context(), opts))
		},
	}

	cmd.Flags().StringVar(&imagePath, "image", "", "Still image input (required)")
	cmd.Flags().StringVar(&audioPath, "audio", "", "Narration audio input (required)")
	cmd.Flags().StringVar(&captionPath, "caption", "", "Caption text file (required)")
	cmd.Flags().StringVarP(&outputPath, "out", "o", "", "Output video path (required)")

	cmd.Flags().IntVar(&regionX, "region-x", 0, "Caption region left edge in target pixels")
	cmd.Flags().IntVar(&regionY, "region-y", 0, "Caption region top edge in target pixels")
	cmd.Flags().IntVar(&regionW, "region-w", 0, "Caption region width in target pixels")
	cmd.Flags().IntVar(&regionH, "region-h", 0, "Caption region height in target pixels")

	cmd.Flags().IntVar(&fontSize, "font-size", 0, "Caption font size")
	cmd.Flags().StringVar(&fontColor, "font-color", "", "Caption text color as RRGGBB")
	cmd.Flags().StringVar(&boxColor, "box-color", "", "Caption box color as RRGGBB with optional @opacity")
	cmd.Flags().Float64Var(&outlineWidth, "outline", 0, "Caption outline width")
	cmd.Flags().StringVar(&fontFile, "font-file", "", "Font file for the caption style")

	cmd.Flags().StringVar(&resolution, "resolution", "", "Output resolution as WxH")
	cmd.Flags().IntVar(&fps, "fps", 0, "Output frame rate")
	cmd.Flags().IntVar(&crf, "crf", 0, "Encoder quality factor (0-51, lower is better)")
	cmd.Flags().StringVar(&preset, "preset", "", "Encoder speed/quality preset")
	cmd.Flags().BoolVar(&pad, "pad", true, "Letterbox/pillarbox the image instead of stretching")

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the encoder invocation and subtitle descriptor without running")
	cmd.Flags().BoolVar(&verify, "verify", false, "Probe the output after encoding and warn on drift")

	return cmd
}
