package tts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/prepview/server/domain/repositories"
)

func TestNewElevenLabsTTS(t *testing.T) {
	logger := zaptest.NewLogger(t)

	// Test without API key
	os.Unsetenv("ELEVEN_LABS_API_KEY")
	config := NewElevenLabsConfigFromEnv(t.TempDir())
	_, err := NewElevenLabsTTS(config, logger)
	if err == nil {
		t.Error("Expected error when API key is not set")
	}

	// Test with API key
	os.Setenv("ELEVEN_LABS_API_KEY", "test-api-key")
	defer os.Unsetenv("ELEVEN_LABS_API_KEY")

	config = NewElevenLabsConfigFromEnv(t.TempDir())
	tts, err := NewElevenLabsTTS(config, logger)
	if err != nil {
		t.Fatalf("Failed to create ElevenLabsTTS: %v", err)
	}

	if tts.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", tts.apiKey)
	}

	if tts.voiceID != defaultVoiceID {
		t.Errorf("Expected default voice ID '%s', got '%s'", defaultVoiceID, tts.voiceID)
	}
}

func TestValidateElevenLabsConfig(t *testing.T) {
	cases := []struct {
		name    string
		config  ElevenLabsConfig
		wantErr bool
	}{
		{"valid", ElevenLabsConfig{APIKey: "k", AudioDir: "dir"}, false},
		{"missing api key", ElevenLabsConfig{AudioDir: "dir"}, true},
		{"missing audio dir", ElevenLabsConfig{APIKey: "k"}, true},
		{"stability out of range", ElevenLabsConfig{APIKey: "k", AudioDir: "dir", Stability: 1.5}, true},
		{"clarity out of range", ElevenLabsConfig{APIKey: "k", AudioDir: "dir", Clarity: -0.1}, true},
	}

	for _, tc := range cases {
		err := ValidateElevenLabsConfig(tc.config)
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestSynthesizeEmptyText(t *testing.T) {
	tts := newTestTTS(t, "http://unused", t.TempDir())

	audioURL, err := tts.Synthesize(context.Background(), "   ", "sess", 1, repositories.ClipKindQuestion)
	if err != nil {
		t.Errorf("Expected no error for empty text, got %v", err)
	}
	if audioURL != "" {
		t.Errorf("Expected empty URL for empty text, got %q", audioURL)
	}
}

func TestSynthesizeWritesClip(t *testing.T) {
	audioData := []byte("fake-mp3-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("xi-api-key") != "test-api-key" {
			t.Errorf("Expected xi-api-key header, got %q", r.Header.Get("xi-api-key"))
		}
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(audioData)
	}))
	defer server.Close()

	audioDir := t.TempDir()
	tts := newTestTTS(t, server.URL, audioDir)

	audioURL, err := tts.Synthesize(context.Background(), "Tell me about a challenge.", "sess-1", 2, repositories.ClipKindQuestion)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	expectedURL := "/audio/sess-1_q2_question.mp3"
	if audioURL != expectedURL {
		t.Errorf("Expected URL %q, got %q", expectedURL, audioURL)
	}

	written, err := os.ReadFile(filepath.Join(audioDir, "sess-1_q2_question.mp3"))
	if err != nil {
		t.Fatalf("Expected clip file: %v", err)
	}
	if string(written) != string(audioData) {
		t.Errorf("Clip content mismatch: got %q", written)
	}
}

func TestSynthesizeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	audioDir := t.TempDir()
	tts := newTestTTS(t, server.URL, audioDir)

	audioURL, err := tts.Synthesize(context.Background(), "some text", "sess-err", 1, repositories.ClipKindFollowup)
	if err == nil {
		t.Error("Expected error for non-200 response")
	}
	if audioURL != "" {
		t.Errorf("Expected empty URL on error, got %q", audioURL)
	}

	files, _ := os.ReadDir(audioDir)
	if len(files) != 0 {
		t.Errorf("Expected no clip files after failure, got %d", len(files))
	}
}

func newTestTTS(t *testing.T, baseURL, audioDir string) *ElevenLabsTTS {
	t.Helper()

	tts, err := NewElevenLabsTTS(ElevenLabsConfig{
		APIKey:     "test-api-key",
		AudioDir:   audioDir,
		APIBaseURL: baseURL,
	}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create ElevenLabsTTS: %v", err)
	}

	return tts
}
