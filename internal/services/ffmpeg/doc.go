// Package ffmpeg shells out to the ffmpeg CLI for the toolkit's two render
// paths: composing a still image, narration audio, and a subtitle descriptor
// into a video, and losslessly joining synthesized audio parts through the
// concat demuxer.
//
// Job types render their own argument lists so callers can show a dry-run
// command line without executing anything. Failures surface as CommandError
// with the process exit code and captured stderr intact.
package ffmpeg
