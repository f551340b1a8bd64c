package tts

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxRequestRunes is the speech API's per-request input limit.
const MaxRequestRunes = 4096

var paragraphBreak = regexp.MustCompile(`\n{2,}`)

// SplitText cuts text into chunks of at most limit runes, preferring
// paragraph boundaries, then sentence boundaries, then hard cuts. Chunks
// keep the original text order. Paragraphs packed into one chunk are
// rejoined with a blank line, sentences with a single space.
func SplitText(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	cur, curRunes := "", 0

	flush := func() {
		if cur != "" {
			chunks = append(chunks, cur)
			cur, curRunes = "", 0
		}
	}
	pack := func(piece, joiner string) {
		n := utf8.RuneCountInString(piece)
		if cur == "" {
			cur, curRunes = piece, n
			return
		}
		if j := utf8.RuneCountInString(joiner); curRunes+j+n <= limit {
			cur += joiner + piece
			curRunes += j + n
			return
		}
		flush()
		cur, curRunes = piece, n
	}

	for _, para := range paragraphBreak.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if utf8.RuneCountInString(para) <= limit {
			pack(para, "\n\n")
			continue
		}
		for _, sentence := range splitSentences(para) {
			if utf8.RuneCountInString(sentence) <= limit {
				pack(sentence, " ")
				continue
			}
			// Flush before hard-cutting so chunks stay in text order.
			flush()
			chunks = append(chunks, hardCut(sentence, limit)...)
		}
	}
	flush()
	return chunks
}

// splitSentences cuts after 。！？.!? and swallows the whitespace that
// follows the cut.
func splitSentences(s string) []string {
	var out []string
	var buf []rune
	emit := func() {
		if piece := strings.TrimSpace(string(buf)); piece != "" {
			out = append(out, piece)
		}
		buf = buf[:0]
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		buf = append(buf, runes[i])
		if !isSentenceEnd(runes[i]) {
			continue
		}
		emit()
		for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			i++
		}
	}
	emit()
	return out
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '。', '！', '？', '.', '!', '?':
		return true
	}
	return false
}

// hardCut slices s into limit-rune pieces.
func hardCut(s string, limit int) []string {
	runes := []rune(s)
	var out []string
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}
