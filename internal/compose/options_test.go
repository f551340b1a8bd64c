package compose

import (
	"image"
	"strings"
	"testing"

	"github.com/nick-ma/2026-calendar/internal/config"
	"github.com/nick-ma/2026-calendar/internal/services"
)

func baseOptions() Options {
	cfg := config.Default()
	opts := FromConfig(&cfg)
	opts.ImagePath = "frame.png"
	opts.AudioPath = "voice.wav"
	opts.CaptionPath = "caption.txt"
	opts.OutputPath = "out.mp4"
	return opts
}

func TestFromConfigDefaults(t *testing.T) {
	cfg := config.Default()
	opts := FromConfig(&cfg)

	if opts.RegionX != 120 || opts.RegionY != 120 || opts.RegionW != 800 || opts.RegionH != 240 {
		t.Fatalf("unexpected default region: %d,%d %dx%d", opts.RegionX, opts.RegionY, opts.RegionW, opts.RegionH)
	}
	if opts.FontSize != 54 {
		t.Fatalf("unexpected default font size: %d", opts.FontSize)
	}
	if opts.Width != 1080 || opts.Height != 1920 {
		t.Fatalf("unexpected default resolution: %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS != 30 || opts.CRF != 18 || opts.Preset != "medium" {
		t.Fatalf("unexpected encoder defaults: fps=%d crf=%d preset=%q", opts.FPS, opts.CRF, opts.Preset)
	}
	if !opts.Pad {
		t.Fatal("padding should default to enabled")
	}
}

func TestAnchorAndRegion(t *testing.T) {
	opts := Options{RegionX: 100, RegionY: 200, RegionW: 400, RegionH: 300}

	if got, want := opts.Anchor(), image.Pt(300, 350); got != want {
		t.Fatalf("anchor = %v, want %v", got, want)
	}
	if got, want := opts.Region(), image.Rect(100, 200, 500, 500); got != want {
		t.Fatalf("region = %v, want %v", got, want)
	}
}

func TestAnchorTruncatesOddDimensions(t *testing.T) {
	opts := Options{RegionX: 0, RegionY: 0, RegionW: 5, RegionH: 3}
	if got, want := opts.Anchor(), image.Pt(2, 1); got != want {
		t.Fatalf("anchor = %v, want %v", got, want)
	}
}

func TestValidateRequiresPaths(t *testing.T) {
	cases := []struct {
		name  string
		strip func(*Options)
	}{
		{"image path", func(o *Options) { o.ImagePath = "" }},
		{"audio path", func(o *Options) { o.AudioPath = "" }},
		{"output path", func(o *Options) { o.OutputPath = "" }},
		{"caption text file path", func(o *Options) { o.CaptionPath = "   " }},
	}
	for _, tc := range cases {
		opts := baseOptions()
		tc.strip(&opts)
		err := opts.Validate()
		if err == nil {
			t.Fatalf("%s: expected validation failure", tc.name)
		}
		if !services.IsUsage(err) {
			t.Fatalf("%s: expected usage classification, got %v", tc.name, err)
		}
		if !strings.Contains(err.Error(), tc.name) {
			t.Fatalf("%s: error should name the missing flag, got %v", tc.name, err)
		}
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero region width", func(o *Options) { o.RegionW = 0 }},
		{"negative region height", func(o *Options) { o.RegionH = -1 }},
		{"zero font size", func(o *Options) { o.FontSize = 0 }},
		{"negative outline", func(o *Options) { o.OutlineWidth = -0.5 }},
		{"bad font colour", func(o *Options) { o.FontColor = "GGHHII" }},
		{"bad box colour", func(o *Options) { o.BoxColor = "000000@high" }},
		{"odd width", func(o *Options) { o.Width = 1081 }},
		{"zero fps", func(o *Options) { o.FPS = 0 }},
		{"crf out of range", func(o *Options) { o.CRF = 77 }},
		{"blank preset", func(o *Options) { o.Preset = " " }},
	}
	for _, tc := range cases {
		opts := baseOptions()
		tc.mutate(&opts)
		err := opts.Validate()
		if err == nil {
			t.Fatalf("%s: expected validation failure", tc.name)
		}
		if !services.IsUsage(err) {
			t.Fatalf("%s: expected usage classification, got %v", tc.name, err)
		}
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := baseOptions().Validate(); err != nil {
		t.Fatalf("default options should validate, got %v", err)
	}
}

func TestParseResolution(t *testing.T) {
	w, h, err := ParseResolution("1080x1920")
	if err != nil {
		t.Fatalf("ParseResolution returned error: %v", err)
	}
	if w != 1080 || h != 1920 {
		t.Fatalf("got %dx%d", w, h)
	}

	if w, h, err = ParseResolution(" 720X1280 "); err != nil || w != 720 || h != 1280 {
		t.Fatalf("expected case-insensitive parse, got %dx%d err=%v", w, h, err)
	}

	for _, bad := range []string{"", "1080", "x1920", "1080x", "wxh"} {
		if _, _, err := ParseResolution(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
