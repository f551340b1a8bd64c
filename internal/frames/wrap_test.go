package frames

import (
	"image"
	"reflect"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/nick-ma/2026-calendar/internal/textutil"
)

// fixedFace gives every rune the same advance so wrap arithmetic is exact.
type fixedFace struct {
	advance int
	ascent  int
	descent int
}

func (f fixedFace) Close() error { return nil }

func (f fixedFace) Glyph(fixed.Point26_6, rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	return image.Rectangle{}, image.NewAlpha(image.Rect(0, 0, f.advance, f.ascent+f.descent)), image.Point{}, fixed.I(f.advance), true
}

func (f fixedFace) GlyphBounds(rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	return fixed.R(0, -f.ascent, f.advance, f.descent), fixed.I(f.advance), true
}

func (f fixedFace) GlyphAdvance(rune) (fixed.Int26_6, bool) { return fixed.I(f.advance), true }

func (f fixedFace) Kern(rune, rune) fixed.Int26_6 { return 0 }

func (f fixedFace) Metrics() font.Metrics {
	return font.Metrics{Ascent: fixed.I(f.ascent), Descent: fixed.I(f.descent)}
}

// sizedFaces returns fixedFace values whose advance equals the requested
// size, so the fit loop's shrinking is directly observable.
type sizedFaces struct{}

func (sizedFaces) Face(size int) (font.Face, error) {
	return fixedFace{advance: size, ascent: 10}, nil
}

func TestWrapTokensKeepsWordsTogether(t *testing.T) {
	face := fixedFace{advance: 10, ascent: 10}
	tokens := textutil.Segments("hello world again")

	got := wrapTokens(face, tokens, 110)
	want := []string{"hello world", "again"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func TestWrapTokensHardBreaksWideRuns(t *testing.T) {
	face := fixedFace{advance: 20, ascent: 10}
	tokens := textutil.Segments("早安世界")

	got := wrapTokens(face, tokens, 50)
	want := []string{"早安", "世界"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func TestWrapTokensCollapsesBlankLines(t *testing.T) {
	face := fixedFace{advance: 10, ascent: 10}
	tokens := textutil.Segments("a\n\nb")

	got := wrapTokens(face, tokens, 100)
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func TestWrapTokensNeverStartsLineWithSpace(t *testing.T) {
	face := fixedFace{advance: 10, ascent: 10}
	tokens := textutil.Segments("aaaa bb")

	// "aaaa" fills the line; the following space must not carry over.
	got := wrapTokens(face, tokens, 40)
	want := []string{"aaaa", "bb"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func TestFitTextShrinksUntilBlockFits(t *testing.T) {
	// Line height is ascent 10 + spacing 40 = 50. Four runes in a 100-wide,
	// 150-tall box: sizes above 50 break one rune per line (4 lines, 200
	// tall); size 50 fits two per line (2 lines, 100 tall).
	face, lines, err := fitText(sizedFaces{}, "aaaa", 100, 150)
	if err != nil {
		t.Fatalf("fitText returned error: %v", err)
	}
	if got := face.(fixedFace).advance; got != 50 {
		t.Fatalf("fit settled on size %d, want 50", got)
	}
	want := []string{"aa", "aa"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
}

func TestFitTextTruncatesAtMinimumSize(t *testing.T) {
	// A 60-tall box holds one 50-tall line. Even at the minimum size 42 the
	// eight runes wrap to four lines, so the block is cut to one line and
	// ellipsized: "aa…" is 126 wide, "a…" is 84.
	face, lines, err := fitText(sizedFaces{}, "aaaaaaaa", 100, 60)
	if err != nil {
		t.Fatalf("fitText returned error: %v", err)
	}
	if got := face.(fixedFace).advance; got != fitMinSize {
		t.Fatalf("truncation should use the minimum size, got %d", got)
	}
	want := []string{"a" + ellipsis}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
}

func TestEllipsizeDegeneratesToBareEllipsis(t *testing.T) {
	face := fixedFace{advance: 200, ascent: 10}
	if got := ellipsize(face, "abc", 100); got != ellipsis {
		t.Fatalf("ellipsize = %q, want %q", got, ellipsis)
	}
}
