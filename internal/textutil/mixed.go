package textutil

import (
	"strings"
	"unicode"
)

// Token markers emitted by Segments alongside ordinary wrap units.
const (
	TokenSpace   = " "
	TokenNewline = "\n"
)

// isHan reports whether r falls in the CJK Unified Ideographs block, the
// range the calendar content actually uses.
func isHan(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

// HanRatio returns the fraction of runes in s that are Han ideographs.
// An empty string has ratio 0.
func HanRatio(s string) float64 {
	var total, han int
	for _, r := range s {
		total++
		if isHan(r) {
			han++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(han) / float64(total)
}

const (
	classHan = iota
	classLatin
	classOther
)

func runClass(r rune) int {
	switch {
	case isHan(r):
		return classHan
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return classLatin
	default:
		return classOther
	}
}

// Segments splits mixed-script text into wrap units. Runs of Han ideographs,
// runs of Latin letters and digits, and runs of punctuation each form one
// token; spaces and line breaks are preserved as their own marker tokens so
// the wrapper can honor word boundaries and forced breaks. There is no
// trailing newline marker.
func Segments(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var tokens []string
	for _, para := range strings.Split(s, "\n") {
		if para == "" {
			tokens = append(tokens, TokenNewline)
			continue
		}
		words := strings.Split(para, " ")
		for i, word := range words {
			if word != "" {
				tokens = appendRuns(tokens, word)
			}
			if i < len(words)-1 {
				tokens = append(tokens, TokenSpace)
			}
		}
		tokens = append(tokens, TokenNewline)
	}
	if len(tokens) > 0 {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// appendRuns splits a space-free word into same-class rune runs. Stray
// whitespace (tabs and other exotic spacing) separates runs and is dropped.
func appendRuns(tokens []string, word string) []string {
	var run []rune
	cls := -1
	flush := func() {
		if len(run) > 0 {
			tokens = append(tokens, string(run))
			run = run[:0]
		}
	}
	for _, r := range word {
		if unicode.IsSpace(r) {
			flush()
			cls = -1
			continue
		}
		c := runClass(r)
		if c != cls {
			flush()
			cls = c
		}
		run = append(run, r)
	}
	flush()
	return tokens
}
