// Package ass builds Advanced SubStation Alpha (ASS) subtitle documents for
// the caption burn-in step.
//
// The package owns the three format contracts the renderer (libass, driven by
// ffmpeg's subtitles filter) imposes on us:
//   - colours are stored byte-reversed (&HAABBGGRR) with an inverted alpha
//     channel where 00 is opaque and FF is fully transparent,
//   - literal backslashes and curly braces must be escaped before text is
//     embedded in a Dialogue line, with hard line breaks written as \N,
//   - positioning happens through override tags (\an, \pos, \clip) whose
//     coordinates are interpreted in PlayResX/PlayResY space.
//
// Key types:
//   - Color: RGB plus opacity fraction, with the ASS encoding attached
//   - Style: one V4+ style line (font, colours, border, alignment)
//   - Script: a complete document ready to be written to disk
//
// Callers compose a Script, render it, and hand the resulting file to the
// encoder's filter chain.
package ass
