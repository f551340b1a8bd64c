package compose

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/sfnt"

	"github.com/nick-ma/2026-calendar/internal/logging"
)

// fallbackFontName is handed to the renderer when no usable font file is
// configured; resolution is then up to the system font lookup.
const fallbackFontName = "Arial"

// resolveFont returns the subtitle style's font family plus a fontsdir hint
// for the encoder. A usable font file yields its real family name and its
// containing directory so the renderer loads that exact file; anything else
// falls back to the generic name.
func resolveFont(path string, logger *slog.Logger) (family, fontsDir string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return fallbackFontName, ""
	}
	family, err := fontFamilyName(path)
	if err != nil {
		logger.Warn("caption font unusable, falling back to generic family",
			logging.String("font_file", path),
			logging.String("fallback", fallbackFontName),
			logging.Error(err),
		)
		return fallbackFontName, ""
	}
	return family, filepath.Dir(path)
}

// fontFamilyName reads the family name from a TrueType/OpenType file. A
// collection resolves to its first font.
func fontFamilyName(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	collection, err := sfnt.ParseCollection(data)
	if err != nil {
		return "", fmt.Errorf("parse font: %w", err)
	}
	font, err := collection.Font(0)
	if err != nil {
		return "", fmt.Errorf("font at index 0: %w", err)
	}
	family, err := font.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return "", fmt.Errorf("family name: %w", err)
	}
	if strings.TrimSpace(family) == "" {
		return "", errors.New("empty family name")
	}
	return family, nil
}
