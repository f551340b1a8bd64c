package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nick-ma/2026-calendar/internal/config"
	"github.com/nick-ma/2026-calendar/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show tool availability and configuration health",
		Long: `Status reports everything calvid needs from its environment: the
resolved configuration file, the ffmpeg/ffprobe binaries it would
invoke, and preflight checks for configured assets and the speech API.

The command is informational and always exits 0; failed checks are
rendered as warnings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(stdout, line)
			}
			configKind := statusOK
			configDetail := ctx.configPath
			if !ctx.configExists {
				configKind = statusWarn
				configDetail = fmt.Sprintf("%s (not found, built-in defaults in use)", ctx.configPath)
			}
			fmt.Fprintln(stdout, renderStatusLine("Config file", configKind, configDetail, colorize))
			fmt.Fprintln(stdout, renderStatusLine("Log level", statusInfo, cfg.Logging.Level, colorize))
			fmt.Fprintln(stdout)

			for _, line := range renderSectionHeader("External Tools", colorize) {
				fmt.Fprintln(stdout, line)
			}
			fmt.Fprintln(stdout, renderTable([]string{"Tool", "Status", "Detail"}, buildToolRows(cfg)))
			fmt.Fprintln(stdout)

			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(stdout, line)
			}
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				kind := statusWarn
				if result.Passed {
					kind = statusOK
				}
				fmt.Fprintln(stdout, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			return nil
		},
	}
}

func buildToolRows(cfg *config.Config) [][]string {
	probe := preflight.ProbeEncoder(cfg.FFmpegBinary())
	rows := [][]string{
		{"FFmpeg", availabilityLabel(probe.Detected, false), probe.EncoderDetail()},
	}
	for _, status := range preflight.CheckSystemDeps(cfg) {
		if strings.EqualFold(status.Name, "ffmpeg") {
			continue
		}
		detail := status.Detail
		if status.Available {
			detail = status.Command
		}
		rows = append(rows, []string{status.Name, availabilityLabel(status.Available, status.Optional), detail})
	}
	return rows
}

func availabilityLabel(available, optional bool) string {
	switch {
	case available:
		return "available"
	case optional:
		return "missing (optional)"
	default:
		return "missing"
	}
}
