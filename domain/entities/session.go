package entities

import (
	"time"

	"github.com/prepview/server/domain"
)

// QuestionCount is the fixed number of questions per interview session.
const QuestionCount = 3

// Session represents one in-progress mock-interview attempt. It is created by
// the start operation, mutated in place by every subsequent operation, and
// converted into a Summary exactly once when the session finishes.
type Session struct {
	ID                   string         `json:"id"`
	Consent              bool           `json:"consent"`
	Config               *SessionConfig `json:"config"`
	Baseline             *VoiceFeatures `json:"baseline"`
	Questions            []Question     `json:"questions"`
	Answers              []Answer       `json:"answers"`
	CurrentQuestionIndex int            `json:"current_q_index"`
	AudioFiles           []string       `json:"audio_files"`
	Survey               *Survey        `json:"survey,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
}

// NewSession creates a session with its question list fixed up front.
// Question ids are 1-based.
func NewSession(id string, questionTexts []string) *Session {
	questions := make([]Question, 0, len(questionTexts))
	for i, text := range questionTexts {
		questions = append(questions, Question{ID: i + 1, Text: text})
	}

	return &Session{
		ID:         id,
		Consent:    true,
		Questions:  questions,
		Answers:    make([]Answer, 0, len(questions)),
		AudioFiles: make([]string, 0),
		CreatedAt:  time.Now(),
	}
}

// Exhausted reports whether every question has been answered.
func (s *Session) Exhausted() bool {
	return s.CurrentQuestionIndex >= len(s.Questions)
}

// CurrentQuestion returns the question the cursor points at.
func (s *Session) CurrentQuestion() (Question, error) {
	if s.Exhausted() {
		return Question{}, domain.ErrNoMoreQuestions
	}
	return s.Questions[s.CurrentQuestionIndex], nil
}

// AcceptAnswer appends an answer record for the current question and advances
// the cursor by one. The cursor and the answer list move together so that
// len(Answers) always equals CurrentQuestionIndex. The answered question is
// returned for follow-up generation.
func (s *Session) AcceptAnswer(questionID int, transcript string, features VoiceFeatures) (Question, error) {
	if s.Config == nil {
		return Question{}, domain.ErrConfigNotSet
	}
	if s.Exhausted() {
		return Question{}, domain.ErrNoMoreQuestions
	}

	question := s.Questions[s.CurrentQuestionIndex]
	s.Answers = append(s.Answers, Answer{
		QuestionID:    questionID,
		QuestionText:  question.Text,
		Transcript:    transcript,
		VoiceFeatures: features,
	})
	s.CurrentQuestionIndex++

	return question, nil
}

// AddAudioFile records a synthesized audio reference for later cleanup.
// Empty references and duplicates are skipped.
func (s *Session) AddAudioFile(audioURL string) {
	if audioURL == "" {
		return
	}
	for _, existing := range s.AudioFiles {
		if existing == audioURL {
			return
		}
	}
	s.AudioFiles = append(s.AudioFiles, audioURL)
}

// Summary is the durable long-term record of a finished session. Once
// written it is immutable except for the later attachment of the survey.
type Summary struct {
	SessionID        string           `json:"session_id"`
	InterviewerStyle InterviewerStyle `json:"interviewer_style"`
	FeedbackMode     FeedbackMode     `json:"feedback_mode"`
	Baseline         *VoiceFeatures   `json:"baseline"`
	Questions        []Question       `json:"questions"`
	Answers          []Answer         `json:"answers"`
	Survey           *Survey          `json:"survey,omitempty"`
	FinishedAt       time.Time        `json:"finished_at"`
}

// Summarize converts the session into its durable summary. The session must
// have a config; everything else is carried over as-is.
func (s *Session) Summarize() (*Summary, error) {
	if s.Config == nil {
		return nil, domain.ErrConfigNotSet
	}

	return &Summary{
		SessionID:        s.ID,
		InterviewerStyle: s.Config.InterviewerStyle,
		FeedbackMode:     s.Config.FeedbackMode,
		Baseline:         s.Baseline,
		Questions:        s.Questions,
		Answers:          s.Answers,
		Survey:           s.Survey,
		FinishedAt:       time.Now(),
	}, nil
}
