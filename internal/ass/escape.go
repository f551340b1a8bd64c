package ass

import "strings"

// Break is the hard line-break marker recognized inside Dialogue text.
const Break = `\N`

// EscapeText prepares raw caption text for embedding in a Dialogue line.
//
// Backslashes are doubled first so the characters introduced by the
// subsequent steps are never re-escaped, then literal braces are escaped
// because the format reserves them for inline override blocks. Source line
// breaks become explicit \N markers with no trailing marker after the final
// line. Wrapping within the clip region is the renderer's job, not ours.
func EscapeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimRight(text, "\n")

	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, "{", `\{`)
	text = strings.ReplaceAll(text, "}", `\}`)

	return strings.Join(strings.Split(text, "\n"), Break)
}
