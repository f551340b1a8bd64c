package tts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nick-ma/2026-calendar/internal/logging"
	"github.com/nick-ma/2026-calendar/internal/services"
)

// Request carries the voice parameters for one synthesis call.
type Request struct {
	Model        string
	Voice        string
	Format       string
	Speed        float64
	Instructions string
}

// Client synthesizes speech through the OpenAI audio API and streams the
// result to disk.
type Client struct {
	api     *openai.Client
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient builds a speech client. baseURL overrides the API endpoint when
// non-empty; timeout bounds each request when positive.
func NewClient(apiKey, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{api: openai.NewClientWithConfig(cfg), timeout: timeout, logger: logger}
}

// Synthesize requests speech for text and writes the audio to outPath,
// creating parent directories as needed.
func (c *Client) Synthesize(ctx context.Context, req Request, text, outPath string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	started := time.Now()
	resp, err := c.api.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(req.Model),
		Input:          text,
		Voice:          openai.SpeechVoice(req.Voice),
		ResponseFormat: openai.SpeechResponseFormat(req.Format),
		Speed:          req.Speed,
		Instructions:   req.Instructions,
	})
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "tts", "create speech", "", err)
	}
	defer resp.Close()

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrEnvironment, "tts", "create output directory", dir, err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return services.Wrap(services.ErrEnvironment, "tts", "write audio", outPath, err)
	}
	written, err := io.Copy(f, resp)
	if err != nil {
		f.Close()
		return services.Wrap(services.ErrEnvironment, "tts", "write audio", outPath, err)
	}
	if err := f.Close(); err != nil {
		return services.Wrap(services.ErrEnvironment, "tts", "write audio", outPath, err)
	}

	c.logger.Debug("speech synthesized",
		logging.String("file", filepath.Base(outPath)),
		logging.Int("bytes", int(written)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return nil
}

// partPath names the idx-th split segment next to the final output:
// narration.wav becomes narration.part01.wav.
func partPath(outPath, format string, idx int) string {
	ext := filepath.Ext(outPath)
	stem := outPath[:len(outPath)-len(ext)]
	return fmt.Sprintf("%s.part%02d.%s", stem, idx, format)
}
