package frames

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"

	"github.com/nick-ma/2026-calendar/internal/textutil"
)

// Main text auto-fit: try sizes from start down to min in fixed steps, then
// truncate with an ellipsis when even the minimum overflows the box.
const (
	fitStartSize = 72
	fitMinSize   = 42
	fitSizeStep  = 2
	fitSpacing   = 40

	ellipsis = "…"
)

// faceSource hands out faces by pixel size; *Font satisfies it.
type faceSource interface {
	Face(size int) (font.Face, error)
}

// wrapTokens flows tokens into lines no wider than maxWidth. Spaces count
// toward the current line but never start one; tokens wider than the box
// break rune by rune. Blank lines collapse away.
func wrapTokens(face font.Face, tokens []string, maxWidth int) []string {
	var lines []string
	cur := ""

	flush := func() {
		if strings.TrimSpace(cur) != "" {
			lines = append(lines, strings.TrimRight(cur, " "))
		}
		cur = ""
	}

	for _, tok := range tokens {
		if tok == textutil.TokenNewline {
			flush()
			continue
		}
		if cur == "" && tok == textutil.TokenSpace {
			continue
		}
		cand := tok
		if cur != "" {
			cand = cur + tok
		}
		if textWidth(face, cand) <= maxWidth {
			cur = cand
			continue
		}
		flush()
		if tok == textutil.TokenSpace {
			continue
		}
		if textWidth(face, tok) > maxWidth {
			buf := ""
			for _, r := range tok {
				c2 := buf + string(r)
				if textWidth(face, c2) <= maxWidth {
					buf = c2
					continue
				}
				if buf != "" {
					lines = append(lines, buf)
				}
				buf = string(r)
			}
			cur = buf
		} else {
			cur = tok
		}
	}
	flush()
	return lines
}

// fitText wraps text into the box, shrinking the face until the wrapped
// block fits vertically. At the minimum size the block is cut to the line
// capacity and the last line ellipsized to the box width.
func fitText(src faceSource, text string, boxW, boxH int) (font.Face, []string, error) {
	tokens := textutil.Segments(text)

	for size := fitStartSize; size >= fitMinSize; size -= fitSizeStep {
		face, err := src.Face(size)
		if err != nil {
			return nil, nil, err
		}
		lines := wrapTokens(face, tokens, boxW)
		if len(lines)*lineHeight(face, fitSpacing) <= boxH {
			return face, lines, nil
		}
	}

	face, err := src.Face(fitMinSize)
	if err != nil {
		return nil, nil, err
	}
	lines := wrapTokens(face, tokens, boxW)
	maxLines := boxH / lineHeight(face, fitSpacing)
	if maxLines < 1 {
		maxLines = 1
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[len(lines)-1] = ellipsize(face, lines[len(lines)-1], boxW)
	}
	return face, lines, nil
}

// ellipsize trims line until it fits boxW with the ellipsis appended.
func ellipsize(face font.Face, line string, boxW int) string {
	for line != "" && textWidth(face, line+ellipsis) > boxW {
		_, size := utf8.DecodeLastRuneInString(line)
		line = line[:len(line)-size]
	}
	if line == "" {
		return ellipsis
	}
	return line + ellipsis
}
