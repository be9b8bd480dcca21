package tts

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/prepview/server/domain/repositories"
)

// MockSpeechSynthesizer returns deterministic URLs without calling any
// provider. Used in development when no API key is configured and in tests.
type MockSpeechSynthesizer struct {
	// Err, when set, is returned by every call to exercise degradation paths.
	Err    error
	logger *zap.Logger
}

var _ repositories.SpeechSynthesizer = (*MockSpeechSynthesizer)(nil)

// NewMockSpeechSynthesizer creates a new mock speech synthesizer
func NewMockSpeechSynthesizer(logger *zap.Logger) *MockSpeechSynthesizer {
	return &MockSpeechSynthesizer{logger: logger}
}

// Synthesize implements repositories.SpeechSynthesizer
func (m *MockSpeechSynthesizer) Synthesize(ctx context.Context, text string, sessionID string, questionIndex int, kind repositories.ClipKind) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}

	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	audioURL := fmt.Sprintf("/audio/%s_q%d_%s.mp3", sessionID, questionIndex, kind)
	if m.logger != nil {
		m.logger.Debug("Mock synthesized speech clip",
			zap.String("session_id", sessionID),
			zap.String("audio_url", audioURL))
	}

	return audioURL, nil
}
