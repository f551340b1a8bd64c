package config

import (
	"errors"
	"fmt"

	"github.com/nick-ma/2026-calendar/internal/ass"
)

// x264Presets enumerates the encoder speed/quality presets ffmpeg accepts.
var x264Presets = map[string]struct{}{
	"ultrafast": {},
	"superfast": {},
	"veryfast":  {},
	"faster":    {},
	"fast":      {},
	"medium":    {},
	"slow":      {},
	"slower":    {},
	"veryslow":  {},
	"placebo":   {},
}

// speechFormats enumerates the delivery formats the synthesis API supports.
var speechFormats = map[string]struct{}{
	"mp3":  {},
	"opus": {},
	"aac":  {},
	"flac": {},
	"wav":  {},
	"pcm":  {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStyle(); err != nil {
		return err
	}
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateFrames(); err != nil {
		return err
	}
	if err := c.validateTTS(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStyle() error {
	if c.Style.RegionW <= 0 || c.Style.RegionH <= 0 {
		return errors.New("style.region_w and style.region_h must be positive")
	}
	if c.Style.RegionX < 0 || c.Style.RegionY < 0 {
		return errors.New("style.region_x and style.region_y must not be negative")
	}
	if c.Style.FontSize <= 0 {
		return errors.New("style.font_size must be positive")
	}
	if c.Style.OutlineWidth < 0 {
		return errors.New("style.outline_width must not be negative")
	}
	if _, err := ass.ParseColor(c.Style.FontColor, 1.0); err != nil {
		return fmt.Errorf("style.font_color: %w", err)
	}
	if _, err := ass.ParseColor(c.Style.BoxColor, 0.45); err != nil {
		return fmt.Errorf("style.box_color: %w", err)
	}
	return nil
}

func (c *Config) validateVideo() error {
	if c.Video.Width <= 0 || c.Video.Height <= 0 {
		return errors.New("video.width and video.height must be positive")
	}
	// The encoder's 4:2:0 chroma subsampling needs even dimensions.
	if c.Video.Width%2 != 0 || c.Video.Height%2 != 0 {
		return errors.New("video.width and video.height must be even")
	}
	if c.Video.FPS <= 0 {
		return errors.New("video.fps must be positive")
	}
	if c.Video.CRF < 0 || c.Video.CRF > 51 {
		return errors.New("video.crf must be between 0 and 51")
	}
	if _, ok := x264Presets[c.Video.Preset]; !ok {
		return fmt.Errorf("video.preset: unknown preset %q", c.Video.Preset)
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.Codec == "" {
		return errors.New("audio.codec must be set")
	}
	if c.Audio.Bitrate == "" {
		return errors.New("audio.bitrate must be set")
	}
	return nil
}

func (c *Config) validateFrames() error {
	if c.Frames.Width <= 0 || c.Frames.Height <= 0 {
		return errors.New("frames.width and frames.height must be positive")
	}
	if c.Frames.FontIndexCN < 0 || c.Frames.FontIndexEN < 0 {
		return errors.New("frames.font_index_cn and frames.font_index_en must not be negative")
	}
	return nil
}

func (c *Config) validateTTS() error {
	if _, ok := speechFormats[c.TTS.Format]; !ok {
		return fmt.Errorf("tts.format: unsupported format %q", c.TTS.Format)
	}
	// API bounds for playback speed.
	if c.TTS.Speed < 0.25 || c.TTS.Speed > 4.0 {
		return errors.New("tts.speed must be between 0.25 and 4.0")
	}
	if c.TTS.TimeoutSeconds <= 0 {
		return errors.New("tts.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
