package ass

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an RGB triplet plus an opacity fraction in [0, 1] where 1.0 is
// fully opaque. It is parsed once from configuration input and converted to
// the renderer's byte order on demand.
type Color struct {
	R, G, B uint8
	Opacity float64
}

// ParseColor parses a colour specification of the form "RRGGBB" or
// "RRGGBB@a" where a is a decimal opacity fraction (1.0 = opaque). A leading
// '#' is tolerated. When the @ suffix is absent, fallbackOpacity applies.
func ParseColor(spec string, fallbackOpacity float64) (Color, error) {
	spec = strings.TrimSpace(spec)
	opacity := fallbackOpacity

	if at := strings.IndexByte(spec, '@'); at >= 0 {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(spec[at+1:]), 64)
		if err != nil {
			return Color{}, fmt.Errorf("colour %q: invalid opacity: %w", spec, err)
		}
		opacity = parsed
		spec = spec[:at]
	}

	hex := strings.TrimPrefix(strings.TrimSpace(spec), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("colour %q: want 6 hex digits, got %d", spec, len(hex))
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("colour %q: %w", spec, err)
	}

	return Color{
		R:       uint8(value >> 16),
		G:       uint8(value >> 8),
		B:       uint8(value),
		Opacity: clampOpacity(opacity),
	}, nil
}

// MustColor is ParseColor for compile-time constants; it panics on error.
func MustColor(spec string, fallbackOpacity float64) Color {
	c, err := ParseColor(spec, fallbackOpacity)
	if err != nil {
		panic(err)
	}
	return c
}

// Transparency returns the renderer's inverted alpha byte: 0x00 for a fully
// opaque colour, 0xFF for a fully transparent one.
func (c Color) Transparency() uint8 {
	return uint8(math.Round(255 * (1 - clampOpacity(c.Opacity))))
}

// ASS renders the colour in &HAABBGGRR form: transparency byte first, then
// the RGB components in reversed (blue, green, red) order, all uppercase.
func (c Color) ASS() string {
	return fmt.Sprintf("&H%02X%02X%02X%02X", c.Transparency(), c.B, c.G, c.R)
}

func clampOpacity(a float64) float64 {
	switch {
	case a < 0 || math.IsNaN(a):
		return 0
	case a > 1:
		return 1
	default:
		return a
	}
}
