package compose

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/nick-ma/2026-calendar/internal/ass"
	"github.com/nick-ma/2026-calendar/internal/config"
	"github.com/nick-ma/2026-calendar/internal/services"
)

// boxOpacityFallback applies when a box colour spec has no @ suffix.
const boxOpacityFallback = 0.45

// Options describes one composition job: inputs, caption style, and encoder
// settings. FromConfig seeds the style and encoder fields; the command layer
// fills in paths and flag overrides before calling Validate or Run.
type Options struct {
	ImagePath   string
	AudioPath   string
	CaptionPath string
	OutputPath  string

	RegionX int
	RegionY int
	RegionW int
	RegionH int

	FontSize     int
	FontColor    string
	BoxColor     string
	OutlineWidth float64
	FontFile     string

	Width  int
	Height int
	FPS    int
	CRF    int
	Preset string
	Pad    bool

	AudioCodec   string
	AudioBitrate string

	// FFprobePath enables output verification after a successful encode.
	FFprobePath string
}

// FromConfig seeds composition options from the loaded configuration.
// Input and output paths come from flags, never from config.
func FromConfig(cfg *config.Config) Options {
	return Options{
		RegionX:      cfg.Style.RegionX,
		RegionY:      cfg.Style.RegionY,
		RegionW:      cfg.Style.RegionW,
		RegionH:      cfg.Style.RegionH,
		FontSize:     cfg.Style.FontSize,
		FontColor:    cfg.Style.FontColor,
		BoxColor:     cfg.Style.BoxColor,
		OutlineWidth: cfg.Style.OutlineWidth,
		FontFile:     cfg.Style.FontFile,
		Width:        cfg.Video.Width,
		Height:       cfg.Video.Height,
		FPS:          cfg.Video.FPS,
		CRF:          cfg.Video.CRF,
		Preset:       cfg.Video.Preset,
		Pad:          cfg.Video.Pad,
		AudioCodec:   cfg.Audio.Codec,
		AudioBitrate: cfg.Audio.Bitrate,
	}
}

// Region returns the caption region rectangle in target pixels.
func (o Options) Region() image.Rectangle {
	return image.Rect(o.RegionX, o.RegionY, o.RegionX+o.RegionW, o.RegionY+o.RegionH)
}

// Anchor returns the region center with integer truncation.
func (o Options) Anchor() image.Point {
	return image.Pt(o.RegionX+o.RegionW/2, o.RegionY+o.RegionH/2)
}

// Validate checks the job before any processing starts. Missing paths are
// configuration errors; out-of-range style or encoder values are validation
// errors. Both classify as usage failures.
func (o Options) Validate() error {
	required := []struct {
		value string
		name  string
	}{
		{o.ImagePath, "image path"},
		{o.AudioPath, "audio path"},
		{o.OutputPath, "output path"},
		{o.CaptionPath, "caption text file path"},
	}
	for _, req := range required {
		if strings.TrimSpace(req.value) == "" {
			return services.Wrap(services.ErrConfiguration, "compose", "validate", req.name+" is required", nil)
		}
	}

	if o.RegionW <= 0 || o.RegionH <= 0 {
		return services.Wrap(services.ErrValidation, "compose", "validate",
			fmt.Sprintf("caption region %dx%d must have positive dimensions", o.RegionW, o.RegionH), nil)
	}
	if o.FontSize <= 0 {
		return services.Wrap(services.ErrValidation, "compose", "validate",
			fmt.Sprintf("font size %d must be positive", o.FontSize), nil)
	}
	if o.OutlineWidth < 0 {
		return services.Wrap(services.ErrValidation, "compose", "validate",
			fmt.Sprintf("outline width %g must not be negative", o.OutlineWidth), nil)
	}
	if _, err := ass.ParseColor(o.FontColor, 1.0); err != nil {
		return services.Wrap(services.ErrValidation, "compose", "validate", "font colour", err)
	}
	if _, err := ass.ParseColor(o.BoxColor, boxOpacityFallback); err != nil {
		return services.Wrap(services.ErrValidation, "compose", "validate", "box colour", err)
	}

	if o.Width <= 0 || o.Height <= 0 {
		return services.Wrap(services.ErrValidation, "compose", "validate",
			fmt.Sprintf("resolution %dx%d must be positive", o.Width, o.Height), nil)
	}
	// The encoder's 4:2:0 chroma subsampling needs even dimensions.
	if o.Width%2 != 0 || o.Height%2 != 0 {
		return services.Wrap(services.ErrValidation, "compose", "validate",
			fmt.Sprintf("resolution %dx%d must use even dimensions", o.Width, o.Height), nil)
	}
	if o.FPS <= 0 {
		return services.Wrap(services.ErrValidation, "compose", "validate",
			fmt.Sprintf("frame rate %d must be positive", o.FPS), nil)
	}
	if o.CRF < 0 || o.CRF > 51 {
		return services.Wrap(services.ErrValidation, "compose", "validate",
			fmt.Sprintf("quality factor %d must be between 0 and 51", o.CRF), nil)
	}
	if strings.TrimSpace(o.Preset) == "" {
		return services.Wrap(services.ErrValidation, "compose", "validate", "encoder preset is required", nil)
	}
	return nil
}

// ParseResolution parses a "WxH" resolution string.
func ParseResolution(value string) (width, height int, err error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(value)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("resolution %q: want WxH", value)
	}
	width, err = strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("resolution %q: %w", value, err)
	}
	height, err = strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("resolution %q: %w", value, err)
	}
	return width, height, nil
}
