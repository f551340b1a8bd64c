package main

import (
	"github.com/spf13/cobra"

	"github.com/nick-ma/2026-calendar/internal/compose"
	"github.com/nick-ma/2026-calendar/internal/frames"
	"github.com/nick-ma/2026-calendar/internal/services"
)

func newFramesCommand(ctx *commandContext) *cobra.Command {
	var (
		csvPath     string
		outDir      string
		background  string
		fontCN      string
		fontEN      string
		fontIndexCN int
		fontIndexEN int
		canvas      string
	)

	cmd := &cobra.Command{
		Use:   "frames",
		Short: "Render calendar PNG frames from a CSV manifest",
		Long: `Frames renders one PNG per manifest row: the big day number, month and
weekday details, the lunar date line, the auto-fitted main text, and the
footer, drawn over the configured background artwork. Output files are
named <date>.png. Background and font paths come from the configuration
file; flags override them for one invocation.

Examples:
  calvid frames --csv 2026.csv --out-dir frames/
  calvid frames --csv 2026.csv --out-dir frames/ --canvas 1080x1920`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.componentLogger("frames")
			if err != nil {
				return err
			}

			opts := frames.FromConfig(cfg)
			opts.CSVPath = csvPath
			opts.OutDir = outDir

			flags := cmd.Flags()
			if flags.Changed("background") {
				opts.BackgroundPath = background
			}
			if flags.Changed("font-cn") {
				opts.FontCN = fontCN
			}
			if flags.Changed("font-en") {
				opts.FontEN = fontEN
			}
			if flags.Changed("font-index-cn") {
				opts.FontIndexCN = fontIndexCN
			}
			if flags.Changed("font-index-en") {
				opts.FontIndexEN = fontIndexEN
			}
			if flags.Changed("canvas") {
				width, height, err := compose.ParseResolution(canvas)
				if err != nil {
					return usageError(cmd, services.Wrap(services.ErrValidation, "frames", "parse flags", "", err))
				}
				opts.Width = width
				opts.Height = height
			}

			return usageError(cmd, frames.New(opts, logger).Run(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Calendar CSV manifest (required)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for rendered frames (required)")
	cmd.Flags().StringVar(&background, "background", "", "Background image stretched to the canvas")
	cmd.Flags().StringVar(&fontCN, "font-cn", "", "CJK font file (.ttf or .ttc)")
	cmd.Flags().StringVar(&fontEN, "font-en", "", "Latin font file (.ttf or .ttc)")
	cmd.Flags().IntVar(&fontIndexCN, "font-index-cn", 0, "Font index inside a CJK .ttc collection")
	cmd.Flags().IntVar(&fontIndexEN, "font-index-en", 0, "Font index inside a Latin .ttc collection")
	cmd.Flags().StringVar(&canvas, "canvas", "", "Canvas size as WxH")

	return cmd
}
