package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeStyle(); err != nil {
		return err
	}
	c.normalizeVideo()
	c.normalizeAudio()
	if err := c.normalizeFrames(); err != nil {
		return err
	}
	c.normalizeTTS()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeStyle() error {
	c.Style.FontColor = strings.TrimSpace(c.Style.FontColor)
	if c.Style.FontColor == "" {
		c.Style.FontColor = defaultFontColor
	}
	c.Style.BoxColor = strings.TrimSpace(c.Style.BoxColor)
	if c.Style.BoxColor == "" {
		c.Style.BoxColor = defaultBoxColor
	}
	c.Style.FontFile = strings.TrimSpace(c.Style.FontFile)
	if c.Style.FontFile != "" {
		expanded, err := expandPath(c.Style.FontFile)
		if err != nil {
			return fmt.Errorf("style.font_file: %w", err)
		}
		c.Style.FontFile = expanded
	}
	return nil
}

func (c *Config) normalizeVideo() {
	c.Video.Preset = strings.ToLower(strings.TrimSpace(c.Video.Preset))
	if c.Video.Preset == "" {
		c.Video.Preset = defaultVideoPreset
	}
}

func (c *Config) normalizeAudio() {
	c.Audio.Codec = strings.ToLower(strings.TrimSpace(c.Audio.Codec))
	if c.Audio.Codec == "" {
		c.Audio.Codec = defaultAudioCodec
	}
	c.Audio.Bitrate = strings.ToLower(strings.TrimSpace(c.Audio.Bitrate))
	if c.Audio.Bitrate == "" {
		c.Audio.Bitrate = defaultAudioBitrate
	}
}

func (c *Config) normalizeFrames() error {
	var err error
	for _, field := range []struct {
		name  string
		value *string
	}{
		{"frames.background", &c.Frames.Background},
		{"frames.font_cn", &c.Frames.FontCN},
		{"frames.font_en", &c.Frames.FontEN},
	} {
		*field.value = strings.TrimSpace(*field.value)
		if *field.value == "" {
			continue
		}
		if *field.value, err = expandPath(*field.value); err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
	}
	return nil
}

func (c *Config) normalizeTTS() {
	c.TTS.Model = strings.TrimSpace(c.TTS.Model)
	if c.TTS.Model == "" {
		c.TTS.Model = defaultTTSModel
	}
	c.TTS.Voice = strings.ToLower(strings.TrimSpace(c.TTS.Voice))
	if c.TTS.Voice == "" {
		c.TTS.Voice = defaultTTSVoice
	}
	c.TTS.Format = strings.ToLower(strings.TrimSpace(c.TTS.Format))
	if c.TTS.Format == "" {
		c.TTS.Format = defaultTTSFormat
	}
	if c.TTS.Speed == 0 {
		c.TTS.Speed = defaultTTSSpeed
	}
	if c.TTS.TimeoutSeconds == 0 {
		c.TTS.TimeoutSeconds = defaultTTSTimeoutSeconds
	}
	c.TTS.APIKey = strings.TrimSpace(c.TTS.APIKey)
	if c.TTS.APIKey == "" {
		if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
			c.TTS.APIKey = strings.TrimSpace(value)
		}
	}
	c.TTS.BaseURL = strings.TrimSpace(c.TTS.BaseURL)
	if c.TTS.BaseURL == "" {
		if value, ok := os.LookupEnv("OPENAI_BASE_URL"); ok {
			c.TTS.BaseURL = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Dir = strings.TrimSpace(c.Logging.Dir)
	if c.Logging.Dir != "" {
		expanded, err := expandPath(c.Logging.Dir)
		if err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
		c.Logging.Dir = expanded
	}
	return nil
}
