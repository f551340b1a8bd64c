// Package textutil provides text helpers shared by the frame renderer and
// the narration pipeline.
//
// The two concerns that live here:
//   - Sanitizing CSV-derived values before they become output filenames
//   - Segmenting mixed Chinese/Latin text into wrap units, so line wrapping
//     can break between ideographs without splitting English words
//
// Segmentation groups consecutive Han ideographs, Latin/digit runs, and
// punctuation runs into separate tokens, with explicit space and newline
// markers preserved for the wrapper.
package textutil
