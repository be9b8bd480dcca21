package entities

import (
	"errors"
	"testing"

	"github.com/prepview/server/domain"
)

func newTestSession() *Session {
	return NewSession("test-session-123", []string{
		"Tell me about a challenge.",
		"Tell me about teamwork.",
		"Tell me about a mistake.",
	})
}

func TestNewSession(t *testing.T) {
	session := newTestSession()

	if session.ID != "test-session-123" {
		t.Errorf("Expected session id test-session-123, got %s", session.ID)
	}

	if !session.Consent {
		t.Error("Expected consent to be recorded")
	}

	if len(session.Questions) != QuestionCount {
		t.Fatalf("Expected %d questions, got %d", QuestionCount, len(session.Questions))
	}

	for i, q := range session.Questions {
		if q.ID != i+1 {
			t.Errorf("Expected question id %d, got %d", i+1, q.ID)
		}
	}

	if session.CurrentQuestionIndex != 0 {
		t.Errorf("Expected cursor at 0, got %d", session.CurrentQuestionIndex)
	}

	if len(session.Answers) != 0 {
		t.Errorf("Expected no answers, got %d", len(session.Answers))
	}
}

func TestAcceptAnswerRequiresConfig(t *testing.T) {
	session := newTestSession()

	_, err := session.AcceptAnswer(1, "my answer", VoiceFeatures{})
	if !errors.Is(err, domain.ErrConfigNotSet) {
		t.Errorf("Expected ErrConfigNotSet, got %v", err)
	}

	// Baseline state must not matter for the config guard
	session.Baseline = &VoiceFeatures{DurationSec: 10}
	_, err = session.AcceptAnswer(1, "my answer", VoiceFeatures{})
	if !errors.Is(err, domain.ErrConfigNotSet) {
		t.Errorf("Expected ErrConfigNotSet with baseline set, got %v", err)
	}
}

func TestAcceptAnswerAdvancesCursor(t *testing.T) {
	session := newTestSession()
	session.Config = &SessionConfig{InterviewerStyle: StyleNeutral, FeedbackMode: FeedbackModeReal}

	for i := 0; i < QuestionCount; i++ {
		expectedText := session.Questions[i].Text

		question, err := session.AcceptAnswer(i+1, "answer", VoiceFeatures{DurationSec: 5})
		if err != nil {
			t.Fatalf("Answer %d rejected: %v", i+1, err)
		}
		if question.Text != expectedText {
			t.Errorf("Expected question %q, got %q", expectedText, question.Text)
		}

		if len(session.Answers) != session.CurrentQuestionIndex {
			t.Errorf("Answers (%d) and cursor (%d) out of lockstep after answer %d",
				len(session.Answers), session.CurrentQuestionIndex, i+1)
		}
		if session.Answers[i].QuestionText != expectedText {
			t.Errorf("Expected answer snapshot %q, got %q", expectedText, session.Answers[i].QuestionText)
		}
	}

	if !session.Exhausted() {
		t.Error("Expected session to be exhausted after three answers")
	}

	_, err := session.AcceptAnswer(4, "extra", VoiceFeatures{})
	if !errors.Is(err, domain.ErrNoMoreQuestions) {
		t.Errorf("Expected ErrNoMoreQuestions, got %v", err)
	}
}

func TestCurrentQuestionExhausted(t *testing.T) {
	session := newTestSession()
	session.Config = &SessionConfig{InterviewerStyle: StyleChallenging, FeedbackMode: FeedbackModeNone}

	for i := 0; i < QuestionCount; i++ {
		if _, err := session.CurrentQuestion(); err != nil {
			t.Fatalf("Expected question at cursor %d: %v", i, err)
		}
		if _, err := session.AcceptAnswer(i+1, "", VoiceFeatures{}); err != nil {
			t.Fatalf("Answer %d rejected: %v", i+1, err)
		}
	}

	_, err := session.CurrentQuestion()
	if !errors.Is(err, domain.ErrNoMoreQuestions) {
		t.Errorf("Expected ErrNoMoreQuestions, got %v", err)
	}
}

func TestAddAudioFile(t *testing.T) {
	session := newTestSession()

	session.AddAudioFile("/audio/a.mp3")
	session.AddAudioFile("/audio/a.mp3")
	session.AddAudioFile("")
	session.AddAudioFile("/audio/b.mp3")

	if len(session.AudioFiles) != 2 {
		t.Errorf("Expected 2 audio files, got %d", len(session.AudioFiles))
	}
}

func TestSummarize(t *testing.T) {
	session := newTestSession()

	if _, err := session.Summarize(); !errors.Is(err, domain.ErrConfigNotSet) {
		t.Errorf("Expected ErrConfigNotSet without config, got %v", err)
	}

	session.Config = &SessionConfig{InterviewerStyle: StyleNeutral, FeedbackMode: FeedbackModeFake}
	session.Baseline = &VoiceFeatures{DurationSec: 12}
	if _, err := session.AcceptAnswer(1, "first answer", VoiceFeatures{DurationSec: 30}); err != nil {
		t.Fatalf("Answer rejected: %v", err)
	}

	summary, err := session.Summarize()
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if summary.SessionID != session.ID {
		t.Errorf("Expected session id %s, got %s", session.ID, summary.SessionID)
	}
	if summary.InterviewerStyle != StyleNeutral {
		t.Errorf("Expected neutral style, got %s", summary.InterviewerStyle)
	}
	if summary.FeedbackMode != FeedbackModeFake {
		t.Errorf("Expected fake mode, got %s", summary.FeedbackMode)
	}
	if len(summary.Questions) != QuestionCount {
		t.Errorf("Expected %d questions, got %d", QuestionCount, len(summary.Questions))
	}
	if len(summary.Answers) != 1 {
		t.Errorf("Expected 1 answer, got %d", len(summary.Answers))
	}
	if summary.Baseline == nil || summary.Baseline.DurationSec != 12 {
		t.Error("Expected baseline carried into summary")
	}
	if summary.FinishedAt.IsZero() {
		t.Error("Expected FinishedAt to be set")
	}
}

func TestSessionConfigValidate(t *testing.T) {
	valid := SessionConfig{InterviewerStyle: StyleChallenging, FeedbackMode: FeedbackModeReal}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	badStyle := SessionConfig{InterviewerStyle: "friendly", FeedbackMode: FeedbackModeReal}
	if err := badStyle.Validate(); err == nil {
		t.Error("Expected error for invalid interviewer_style")
	}

	badMode := SessionConfig{InterviewerStyle: StyleNeutral, FeedbackMode: "loud"}
	if err := badMode.Validate(); err == nil {
		t.Error("Expected error for invalid feedback_mode")
	}
}

func TestVoiceFeaturesValidate(t *testing.T) {
	valid := VoiceFeatures{SilenceRatio: 0.4, FillerCount: 2, RepetitionCount: 1, DurationSec: 42}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid features, got %v", err)
	}

	cases := []struct {
		name     string
		features VoiceFeatures
	}{
		{"silence ratio above 1", VoiceFeatures{SilenceRatio: 1.5}},
		{"negative filler count", VoiceFeatures{FillerCount: -1}},
		{"negative repetition count", VoiceFeatures{RepetitionCount: -3}},
		{"negative duration", VoiceFeatures{DurationSec: -1}},
	}
	for _, tc := range cases {
		if err := tc.features.Validate(); err == nil {
			t.Errorf("Expected error for %s", tc.name)
		}
	}
}
