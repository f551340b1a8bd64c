package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewCLIWithBinary(t *testing.T) {
	cli := NewCLI(WithBinary("/opt/ffmpeg"))
	if cli.Binary() != "/opt/ffmpeg" {
		t.Fatalf("expected binary override to be applied, got %q", cli.Binary())
	}
}

func TestCompositionJobArgsPadded(t *testing.T) {
	job := CompositionJob{
		ImagePath:    "/frames/2026-01-01.png",
		AudioPath:    "/audio/2026-01-01.wav",
		SubtitlePath: "/tmp/caption.ass",
		OutputPath:   "/out/2026-01-01.mp4",
		Width:        1080,
		Height:       1920,
		FPS:          30,
		CRF:          18,
		Preset:       "medium",
		Pad:          true,
		AudioCodec:   "aac",
		AudioBitrate: "192k",
	}
	args := job.Args()

	loopIdx := findArg(args, "-loop")
	if loopIdx == -1 || args[loopIdx+1] != "1" {
		t.Fatalf("expected -loop 1 before the image input, got %v", args)
	}
	if findArg(args, "-shortest") == -1 {
		t.Fatalf("expected -shortest, got %v", args)
	}
	if idx := findArg(args, "-pix_fmt"); idx == -1 || args[idx+1] != "yuv420p" {
		t.Fatalf("expected -pix_fmt yuv420p, got %v", args)
	}
	if idx := findArg(args, "-r"); idx == -1 || args[idx+1] != "30" {
		t.Fatalf("expected -r 30, got %v", args)
	}
	if idx := findArg(args, "-crf"); idx == -1 || args[idx+1] != "18" {
		t.Fatalf("expected -crf 18, got %v", args)
	}
	if args[len(args)-1] != "/out/2026-01-01.mp4" {
		t.Fatalf("expected output path last, got %v", args)
	}
	if findArg(args, "-movflags") == -1 {
		t.Fatalf("expected +faststart for mp4 output, got %v", args)
	}

	vfIdx := findArg(args, "-vf")
	if vfIdx == -1 {
		t.Fatalf("expected -vf, got %v", args)
	}
	filter := args[vfIdx+1]
	scalePart := "scale=1080:1920:force_original_aspect_ratio=decrease"
	padPart := "pad=1080:1920:(ow-iw)/2:(oh-ih)/2"
	if !strings.Contains(filter, scalePart) || !strings.Contains(filter, padPart) {
		t.Fatalf("expected aspect-preserving scale and centered pad, got %q", filter)
	}
	subIdx := strings.Index(filter, "subtitles=")
	if subIdx == -1 {
		t.Fatalf("expected subtitles filter, got %q", filter)
	}
	if subIdx < strings.Index(filter, padPart) {
		t.Fatalf("subtitles must run after scaling so coordinates are target-space, got %q", filter)
	}
}

func TestCompositionJobArgsStretch(t *testing.T) {
	job := CompositionJob{
		ImagePath:    "frame.png",
		AudioPath:    "voice.wav",
		SubtitlePath: "caption.ass",
		OutputPath:   "out.mkv",
		Width:        1280,
		Height:       720,
		FPS:          24,
		CRF:          20,
		Preset:       "fast",
		AudioCodec:   "aac",
		AudioBitrate: "128k",
	}
	args := job.Args()

	vfIdx := findArg(args, "-vf")
	filter := args[vfIdx+1]
	if !strings.HasPrefix(filter, "scale=1280:720,") {
		t.Fatalf("expected plain stretch scale, got %q", filter)
	}
	if strings.Contains(filter, "pad=") {
		t.Fatalf("stretch mode must not pad, got %q", filter)
	}
	if findArg(args, "-movflags") != -1 {
		t.Fatalf("faststart only applies to mp4 family outputs, got %v", args)
	}
}

func TestCompositionJobArgsFontsDir(t *testing.T) {
	job := CompositionJob{
		ImagePath:    "frame.png",
		AudioPath:    "voice.wav",
		SubtitlePath: "/tmp/cap.ass",
		FontsDir:     "/usr/share/fonts/custom",
		OutputPath:   "out.mp4",
		Width:        1080,
		Height:       1920,
		FPS:          30,
		CRF:          18,
		Preset:       "medium",
		Pad:          true,
		AudioCodec:   "aac",
		AudioBitrate: "192k",
	}
	args := job.Args()
	filter := args[findArg(args, "-vf")+1]
	want := "subtitles=filename='/tmp/cap.ass':fontsdir='/usr/share/fonts/custom'"
	if !strings.Contains(filter, want) {
		t.Fatalf("expected %q in filter, got %q", want, filter)
	}
}

func TestQuoteFilterValue(t *testing.T) {
	if got := quoteFilterValue("/a:b,c.ass"); got != "'/a:b,c.ass'" {
		t.Fatalf("expected separators protected by quotes, got %q", got)
	}
	if got := quoteFilterValue("o'brien.ass"); got != `'o'\''brien.ass'` {
		t.Fatalf("unexpected quote escaping: %q", got)
	}
}

func TestConcatJobArgs(t *testing.T) {
	job := ConcatJob{ListPath: "/tmp/list.txt", OutputPath: "/out/voice.wav"}
	args := job.Args()

	fIdx := findArg(args, "-f")
	if fIdx == -1 || args[fIdx+1] != "concat" {
		t.Fatalf("expected concat demuxer, got %v", args)
	}
	if idx := findArg(args, "-safe"); idx == -1 || args[idx+1] != "0" {
		t.Fatalf("expected -safe 0, got %v", args)
	}
	if idx := findArg(args, "-c"); idx == -1 || args[idx+1] != "copy" {
		t.Fatalf("expected stream copy, got %v", args)
	}
	if args[len(args)-1] != "/out/voice.wav" {
		t.Fatalf("expected output path last, got %v", args)
	}
}

func TestWriteConcatList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	parts := []string{"/audio/a.part01.wav", "/audio/o'clock.wav"}
	if err := WriteConcatList(path, parts); err != nil {
		t.Fatalf("WriteConcatList returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read list: %v", err)
	}
	want := "file '/audio/a.part01.wav'\n" + `file '/audio/o'\''clock.wav'` + "\n"
	if string(data) != want {
		t.Fatalf("unexpected list contents:\n%s", data)
	}
}

func TestRunSuccess(t *testing.T) {
	setHelperCommand(t, "success")

	cli := NewCLI()
	if err := cli.Run(context.Background(), "-version"); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestRunFailureKeepsExitCodeAndStderr(t *testing.T) {
	setHelperCommand(t, "failure")

	cli := NewCLI()
	err := cli.Run(context.Background(), "-i", "missing.png")
	if err == nil {
		t.Fatal("expected run failure error")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %T: %v", err, err)
	}
	if cmdErr.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", cmdErr.ExitCode)
	}
	if !strings.Contains(cmdErr.Stderr, "missing.png: No such file") {
		t.Fatalf("expected encoder stderr preserved, got %q", cmdErr.Stderr)
	}
	if !strings.Contains(err.Error(), "code 3") {
		t.Fatalf("expected exit code in message, got %q", err.Error())
	}
}

func TestRunCancelledContext(t *testing.T) {
	setHelperCommand(t, "success")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cli := NewCLI()
	err := cli.Run(ctx, "-version")
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}

func setHelperCommand(t *testing.T, mode string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("FFMPEG_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("FFMPEG_HELPER_MODE") {
	case "success":
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "missing.png: No such file or directory")
		os.Exit(3)
	default:
		os.Exit(0)
	}
}

func findArg(args []string, target string) int {
	for i, arg := range args {
		if arg == target {
			return i
		}
	}
	return -1
}
