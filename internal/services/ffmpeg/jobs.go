package ffmpeg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CompositionJob describes a still-image-plus-narration composition. The
// subtitle descriptor is applied after scaling, so its coordinates are in
// the target resolution space.
type CompositionJob struct {
	ImagePath    string
	AudioPath    string
	SubtitlePath string
	FontsDir     string
	OutputPath   string

	Width  int
	Height int
	FPS    int
	CRF    int
	Preset string
	// Pad preserves the image aspect ratio with centered padding;
	// when false the image is stretched to the target resolution.
	Pad bool

	AudioCodec   string
	AudioBitrate string
}

// Args renders the ffmpeg argument list for the job.
func (j CompositionJob) Args() []string {
	args := prologue()
	args = append(args,
		"-loop", "1",
		"-i", j.ImagePath,
		"-i", j.AudioPath,
		"-vf", j.videoFilter(),
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", "libx264",
		"-preset", j.Preset,
		"-crf", fmt.Sprintf("%d", j.CRF),
		"-r", fmt.Sprintf("%d", j.FPS),
		"-pix_fmt", "yuv420p",
		"-c:a", j.AudioCodec,
		"-b:a", j.AudioBitrate,
		"-shortest",
	)
	switch strings.ToLower(filepath.Ext(j.OutputPath)) {
	case ".mp4", ".m4v", ".mov":
		args = append(args, "-movflags", "+faststart")
	}
	return append(args, j.OutputPath)
}

func (j CompositionJob) videoFilter() string {
	var filters []string
	if j.Pad {
		filters = append(filters,
			fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", j.Width, j.Height),
			fmt.Sprintf("pad=%d:%d:(ow-iw)/2:(oh-ih)/2", j.Width, j.Height),
		)
	} else {
		filters = append(filters, fmt.Sprintf("scale=%d:%d", j.Width, j.Height))
	}
	subtitle := "subtitles=filename=" + quoteFilterValue(j.SubtitlePath)
	if j.FontsDir != "" {
		subtitle += ":fontsdir=" + quoteFilterValue(j.FontsDir)
	}
	return strings.Join(append(filters, subtitle), ",")
}

// ConcatJob describes a lossless join of same-codec media parts via the
// concat demuxer. ListPath names a list file written by WriteConcatList.
type ConcatJob struct {
	ListPath   string
	OutputPath string
}

// Args renders the ffmpeg argument list for the job.
func (j ConcatJob) Args() []string {
	args := prologue()
	args = append(args,
		"-f", "concat",
		"-safe", "0",
		"-i", j.ListPath,
		"-c", "copy",
	)
	return append(args, j.OutputPath)
}

func prologue() []string {
	return []string{"-hide_banner", "-nostdin", "-loglevel", "error", "-y"}
}

// quoteFilterValue quotes a path for use as a filtergraph option value.
// Quoting keeps the graph parser from treating ':' and ',' in the path as
// separators; a literal quote is expressed by closing, escaping, reopening.
func quoteFilterValue(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

// WriteConcatList writes a concat-demuxer list naming each part in order.
func WriteConcatList(path string, parts []string) error {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString("file '")
		b.WriteString(strings.ReplaceAll(part, "'", `'\''`))
		b.WriteString("'\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	return nil
}
