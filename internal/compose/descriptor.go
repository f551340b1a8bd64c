package compose

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/nick-ma/2026-calendar/internal/ass"
	"github.com/nick-ma/2026-calendar/internal/services"
)

const captionStyleName = "Caption"

// buildScript derives the subtitle descriptor for the job. The caption text
// arrives raw; escaping and line joining happen here, wrapping is left to
// the renderer.
func buildScript(o Options, caption, fontFamily string) (*ass.Script, error) {
	fontColor, err := ass.ParseColor(o.FontColor, 1.0)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "compose", "build descriptor", "font colour", err)
	}
	boxColor, err := ass.ParseColor(o.BoxColor, boxOpacityFallback)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "compose", "build descriptor", "box colour", err)
	}
	// The glyph stroke shares the box colour but stays opaque, so the text
	// keeps a solid edge even over a translucent box.
	outlineColor := ass.Color{R: boxColor.R, G: boxColor.G, B: boxColor.B, Opacity: 1.0}

	style := ass.Style{
		Name:         captionStyleName,
		FontName:     fontFamily,
		FontSize:     o.FontSize,
		Primary:      fontColor,
		Outline:      outlineColor,
		Back:         boxColor,
		OutlineWidth: o.OutlineWidth,
	}
	return &ass.Script{
		PlayResX:  o.Width,
		PlayResY:  o.Height,
		WrapStyle: ass.WrapSmartBottomWider,
		Style:     style,
		Events: []ass.Event{{
			Start: 0,
			End:   ass.EventHorizon,
			Style: captionStyleName,
			Text:  ass.Overrides(ass.AlignMiddleCenter, o.Anchor(), o.Region()) + ass.EscapeText(caption),
		}},
	}, nil
}

// readCaption loads the caption file. A leading UTF-8 byte order mark is
// stripped since the CSV toolchain upstream tends to emit one.
func readCaption(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", services.Wrap(services.ErrNotFound, "compose", "read caption",
				fmt.Sprintf("caption file %q does not exist", path), nil)
		}
		return "", services.Wrap(services.ErrNotFound, "compose", "read caption",
			fmt.Sprintf("caption file %q", path), err)
	}
	return strings.TrimPrefix(string(data), "\uFEFF"), nil
}

// descriptorPath returns a fresh uniquely named location for one descriptor,
// so independent jobs can run concurrently without colliding.
func descriptorPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("calvid-caption-%s.ass", uuid.NewString()))
}

// writeDescriptor persists the rendered script and returns a cleanup func.
func writeDescriptor(path, content string) (func(), error) {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, services.Wrap(services.ErrEnvironment, "compose", "write descriptor", path, err)
	}
	return func() { _ = os.Remove(path) }, nil
}
