// Package compose turns a still image, a narration track, and a plain-text
// caption into a video with the caption burned in as a styled, clipped,
// centered text block.
//
// The pipeline is a single pass: validate options, read the caption, derive
// the subtitle descriptor (colors converted to the renderer's byte order,
// text escaped, anchor and clip computed from the caption region), write the
// descriptor to a uniquely named temporary file, and drive the encoder with
// an argument vector that scales or pads the image before the subtitle
// burn-in so region coordinates always live in target-resolution space.
//
// The descriptor is removed on every exit path, including encoder failure
// and interruption: cancellation kills the encoder through its context and
// the deferred cleanup still runs. Each invocation is independent and uses
// a fresh descriptor name, so concurrent jobs never collide.
//
// Plan exposes the computed descriptor and argument vector without writing
// anything, which backs the dry-run flag and keeps the arg contract
// testable without an encoder present.
package compose
