// Package main hosts the calvid CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into calendar
// frame rendering, narration synthesis, and video composition runs. It
// centralizes configuration resolution and structured logging setup so
// subcommands can focus on flag surface and output formatting.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
