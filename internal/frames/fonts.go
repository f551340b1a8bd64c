package frames

import (
	"bytes"
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// Faces are built at 72 DPI so point sizes equal pixel sizes.
const faceDPI = 72

// Font is a parsed font file that hands out faces by pixel size. Faces are
// cached per size; the fit loop asks for the same handful repeatedly.
type Font struct {
	build func(size int) (font.Face, error)
	faces map[int]font.Face
}

// LoadFont parses the font file at path. TrueType collections (.ttc) select
// the face at index; plain .ttf/.otf files only accept index 0.
func LoadFont(path string, index int) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	if bytes.HasPrefix(data, []byte("ttcf")) {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parse font collection %s: %w", path, err)
		}
		if index < 0 || index >= coll.NumFonts() {
			return nil, fmt.Errorf("font index %d out of range: %s holds %d fonts", index, path, coll.NumFonts())
		}
		fnt, err := coll.Font(index)
		if err != nil {
			return nil, fmt.Errorf("font %d of %s: %w", index, path, err)
		}
		return &Font{
			build: func(size int) (font.Face, error) {
				return opentype.NewFace(fnt, &opentype.FaceOptions{
					Size:    float64(size),
					DPI:     faceDPI,
					Hinting: font.HintingFull,
				})
			},
			faces: make(map[int]font.Face),
		}, nil
	}
	if index != 0 {
		return nil, fmt.Errorf("font index %d needs a collection, %s is a single font", index, path)
	}
	fnt, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return &Font{
		build: func(size int) (font.Face, error) {
			return truetype.NewFace(fnt, &truetype.Options{
				Size:    float64(size),
				DPI:     faceDPI,
				Hinting: font.HintingFull,
			}), nil
		},
		faces: make(map[int]font.Face),
	}, nil
}

// Face returns the cached face for size, building it on first use.
func (f *Font) Face(size int) (font.Face, error) {
	if face, ok := f.faces[size]; ok {
		return face, nil
	}
	face, err := f.build(size)
	if err != nil {
		return nil, err
	}
	f.faces[size] = face
	return face, nil
}

// textWidth measures the advance width of s in whole pixels.
func textWidth(face font.Face, s string) int {
	if s == "" {
		return 0
	}
	return font.MeasureString(face, s).Ceil()
}

// lineHeight is the vertical step between line tops: ascent + descent plus
// the extra spacing between lines.
func lineHeight(face font.Face, spacing int) int {
	m := face.Metrics()
	return m.Ascent.Ceil() + m.Descent.Ceil() + spacing
}
