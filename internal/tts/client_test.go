package tts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nick-ma/2026-calendar/internal/logging"
	"github.com/nick-ma/2026-calendar/internal/services"
)

type speechBody struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed"`
	Instructions   string  `json:"instructions"`
}

// speechServer fakes the speech endpoint, recording every request body and
// answering with fixed audio bytes.
type speechServer struct {
	srv    *httptest.Server
	audio  []byte
	bodies []speechBody
}

func newSpeechServer(t *testing.T) *speechServer {
	t.Helper()
	s := &speechServer{audio: []byte("ID3fake-mp3-payload")}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/audio/speech" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		var body speechBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.bodies = append(s.bodies, body)
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(s.audio)
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *speechServer) client(timeout time.Duration) *Client {
	return NewClient("sk-test", s.srv.URL+"/v1", timeout, logging.NewNop())
}

func TestSynthesizeWritesAudioFile(t *testing.T) {
	srv := newSpeechServer(t)
	out := filepath.Join(t.TempDir(), "narration", "voice.mp3")

	req := Request{
		Model:        "gpt-4o-mini-tts",
		Voice:        "coral",
		Format:       "mp3",
		Speed:        1.0,
		Instructions: "warm and calm",
	}
	if err := srv.client(0).Synthesize(context.Background(), req, "早安，朋友们。", out); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != string(srv.audio) {
		t.Fatalf("output holds %q, want the served audio", data)
	}

	if len(srv.bodies) != 1 {
		t.Fatalf("server saw %d requests, want 1", len(srv.bodies))
	}
	body := srv.bodies[0]
	if body.Model != "gpt-4o-mini-tts" || body.Voice != "coral" {
		t.Errorf("request sent model=%q voice=%q", body.Model, body.Voice)
	}
	if body.Input != "早安，朋友们。" {
		t.Errorf("request input = %q", body.Input)
	}
	if body.ResponseFormat != "mp3" {
		t.Errorf("request response_format = %q", body.ResponseFormat)
	}
	if body.Speed != 1.0 {
		t.Errorf("request speed = %v", body.Speed)
	}
	if body.Instructions != "warm and calm" {
		t.Errorf("request instructions = %q", body.Instructions)
	}
}

func TestSynthesizeAPIFailureIsExternalToolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "voice overloaded", "type": "server_error"}}`))
	}))
	defer srv.Close()

	c := NewClient("sk-test", srv.URL+"/v1", 0, logging.NewNop())
	out := filepath.Join(t.TempDir(), "voice.mp3")
	err := c.Synthesize(context.Background(), Request{Model: "tts-1", Voice: "alloy", Format: "mp3", Speed: 1.0}, "hello", out)
	if err == nil {
		t.Fatal("Synthesize() succeeded against a failing server")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("error = %v, want ErrExternalTool", err)
	}
	if !strings.Contains(err.Error(), "voice overloaded") {
		t.Fatalf("error %q hides the server message", err)
	}
	if _, statErr := os.Stat(out); statErr == nil {
		t.Fatal("output file written despite the failure")
	}
}

func TestSynthesizeHonorsRequestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient("sk-test", srv.URL+"/v1", 50*time.Millisecond, logging.NewNop())
	out := filepath.Join(t.TempDir(), "voice.mp3")
	err := c.Synthesize(context.Background(), Request{Model: "tts-1", Voice: "alloy", Format: "mp3", Speed: 1.0}, "hello", out)
	if err == nil {
		t.Fatal("Synthesize() ignored the timeout")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want a deadline error", err)
	}
}

func TestPartPathNumbersSegments(t *testing.T) {
	tests := []struct {
		out    string
		format string
		idx    int
		want   string
	}{
		{"voice.mp3", "mp3", 1, "voice.part01.mp3"},
		{filepath.Join("audio", "2026-01-01.wav"), "wav", 12, filepath.Join("audio", "2026-01-01.part12.wav")},
		{"bare", "opus", 3, "bare.part03.opus"},
	}
	for _, tt := range tests {
		if got := partPath(tt.out, tt.format, tt.idx); got != tt.want {
			t.Errorf("partPath(%q, %q, %d) = %q, want %q", tt.out, tt.format, tt.idx, got, tt.want)
		}
	}
}
