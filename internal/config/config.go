package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Style contains caption styling for video composition.
type Style struct {
	RegionX      int     `toml:"region_x"`
	RegionY      int     `toml:"region_y"`
	RegionW      int     `toml:"region_w"`
	RegionH      int     `toml:"region_h"`
	FontSize     int     `toml:"font_size"`
	FontColor    string  `toml:"font_color"`
	BoxColor     string  `toml:"box_color"`
	OutlineWidth float64 `toml:"outline_width"`
	FontFile     string  `toml:"font_file"`
}

// Video contains encoder output settings for composed videos.
type Video struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	FPS    int    `toml:"fps"`
	CRF    int    `toml:"crf"`
	Preset string `toml:"preset"`
	Pad    bool   `toml:"pad"`
}

// Audio contains encoder audio settings for composed videos.
type Audio struct {
	Codec   string `toml:"codec"`
	Bitrate string `toml:"bitrate"`
}

// Frames contains settings for calendar frame rendering.
type Frames struct {
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	Background  string `toml:"background"`
	FontCN      string `toml:"font_cn"`
	FontEN      string `toml:"font_en"`
	FontIndexCN int    `toml:"font_index_cn"`
	FontIndexEN int    `toml:"font_index_en"`
}

// TTS contains speech synthesis settings.
type TTS struct {
	Model          string  `toml:"model"`
	Voice          string  `toml:"voice"`
	Format         string  `toml:"format"`
	Speed          float64 `toml:"speed"`
	Instructions   string  `toml:"instructions"`
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for the toolkit.
//
// Configuration sections by subsystem:
//   - Style: caption region, colors, font for the composition step
//   - Video: encoder resolution, frame rate, quality, padding policy
//   - Audio: encoder audio codec and bitrate
//   - Frames: calendar frame canvas, background, and fonts
//   - TTS: speech synthesis model, voice, delivery format, API access
//   - Logging: log format, level, and optional log directory
type Config struct {
	Style   Style   `toml:"style"`
	Video   Video   `toml:"video"`
	Audio   Audio   `toml:"audio"`
	Frames  Frames  `toml:"frames"`
	TTS     TTS     `toml:"tts"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/calvid/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. A .env file in the
// working directory is folded into the environment first so API credentials
// can live next to the project.
func Load(path string) (*Config, string, bool, error) {
	_ = godotenv.Load()

	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("calvid.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// FFmpegBinary returns the media encoder executable name.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for output verification.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
