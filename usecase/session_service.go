package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prepview/server/domain"
	"github.com/prepview/server/domain/entities"
	"github.com/prepview/server/domain/repositories"
	"github.com/prepview/server/internal/store"
)

const collaboratorTimeout = 30 * time.Second

// Fallback feedback delivered when the generator fails, so an answer
// submission always returns usable feedback text.
const (
	neutralFallback = "Thanks for your answer. Overall it's a good start - next time, " +
		"try to make the situation and your specific actions a bit clearer, " +
		"and highlight the result more explicitly."
	challengingFallback = "Thanks for your answer. Right now the situation and your impact are still a bit vague - " +
		"next time, be more concrete about what you did and what changed because of you."
)

// SessionService drives a session through its lifecycle: consent, config,
// baseline, three question/answer rounds, finish, and the optional survey.
// Every mutating operation runs under the session's exclusive lock, and every
// mutation that must survive a crash is written through to the store's
// durable tier.
type SessionService struct {
	store     *store.SessionStore
	feedback  repositories.FeedbackGenerator
	speech    repositories.SpeechSynthesizer
	picker    repositories.QuestionPicker
	summaries repositories.SummaryStorage
	logger    *zap.Logger
}

// NewSessionService creates a new session lifecycle service
func NewSessionService(
	sessionStore *store.SessionStore,
	feedback repositories.FeedbackGenerator,
	speech repositories.SpeechSynthesizer,
	picker repositories.QuestionPicker,
	summaries repositories.SummaryStorage,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		store:     sessionStore,
		feedback:  feedback,
		speech:    speech,
		picker:    picker,
		summaries: summaries,
		logger:    logger,
	}
}

// Start allocates a session with three questions picked up front.
func (s *SessionService) Start(ctx context.Context, consentAccepted bool) (string, error) {
	if !consentAccepted {
		return "", domain.ErrConsentRequired
	}

	sessionID := uuid.NewString()
	session := entities.NewSession(sessionID, s.picker.PickQuestions(entities.QuestionCount))
	if err := s.store.Create(session); err != nil {
		return "", err
	}

	s.logger.Info("Session started", zap.String("session_id", sessionID))
	return sessionID, nil
}

// SetConfig stores the experiment condition. Reconfiguring is last-write-wins
// until the first answer is accepted; after that the condition is locked
// because feedback already delivered depends on it.
func (s *SessionService) SetConfig(ctx context.Context, sessionID string, config entities.SessionConfig) error {
	unlock := s.store.Lock(sessionID)
	defer unlock()

	session, err := s.store.Get(sessionID)
	if err != nil {
		return err
	}
	if len(session.Answers) > 0 {
		return domain.ErrConfigLocked
	}

	session.Config = &config
	s.store.Save(session)

	s.logger.Info("Session configured",
		zap.String("session_id", sessionID),
		zap.String("interviewer_style", string(config.InterviewerStyle)),
		zap.String("feedback_mode", string(config.FeedbackMode)))
	return nil
}

// UploadBaseline stores the pre-interview voice calibration.
func (s *SessionService) UploadBaseline(ctx context.Context, sessionID string, features entities.VoiceFeatures) error {
	unlock := s.store.Lock(sessionID)
	defer unlock()

	session, err := s.store.Get(sessionID)
	if err != nil {
		return err
	}

	session.Baseline = &features
	s.store.Save(session)
	return nil
}

// NextQuestion returns the question at the cursor with best-effort audio.
// The cursor only advances on answer submission, so repeated calls re-serve
// the same question.
func (s *SessionService) NextQuestion(ctx context.Context, sessionID string) (entities.Question, error) {
	unlock := s.store.Lock(sessionID)
	defer unlock()

	session, err := s.store.Get(sessionID)
	if err != nil {
		return entities.Question{}, err
	}

	question, err := session.CurrentQuestion()
	if err != nil {
		return entities.Question{}, err
	}

	question.AudioURL = s.synthesize(ctx, sessionID, question.Text, session.CurrentQuestionIndex+1, repositories.ClipKindQuestion)
	session.AddAudioFile(question.AudioURL)

	return question, nil
}

// SubmitAnswer accepts the answer for the current question, persists the
// session, and returns generated feedback with best-effort audio. Collaborator
// failures degrade (fallback sentence, empty audio); they never fail the
// submission itself.
func (s *SessionService) SubmitAnswer(ctx context.Context, sessionID string, questionID int, transcript string, features entities.VoiceFeatures) (string, string, error) {
	unlock := s.store.Lock(sessionID)
	defer unlock()

	session, err := s.store.Get(sessionID)
	if err != nil {
		return "", "", err
	}

	question, err := session.AcceptAnswer(questionID, transcript, features)
	if err != nil {
		return "", "", err
	}
	s.store.Save(session)

	answeredNumber := session.CurrentQuestionIndex
	followup := s.generateFollowup(ctx, session.Config.InterviewerStyle, question.Text, transcript)
	audioURL := s.synthesize(ctx, sessionID, followup, answeredNumber, repositories.ClipKindFollowup)
	session.AddAudioFile(audioURL)

	s.logger.Info("Answer accepted",
		zap.String("session_id", sessionID),
		zap.Int("question_number", answeredNumber))
	return followup, audioURL, nil
}

// Finish converts the session into its durable summary, removes every audio
// clip the session produced, and retires the session from the store. The
// summary write is the one hard failure here; audio cleanup is best effort.
func (s *SessionService) Finish(ctx context.Context, sessionID string) (*entities.Summary, error) {
	unlock := s.store.Lock(sessionID)
	defer unlock()

	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	summary, err := session.Summarize()
	if err != nil {
		return nil, err
	}

	if err := s.summaries.SaveSummary(summary); err != nil {
		return nil, &domain.PersistenceError{Op: "save summary", Err: err}
	}

	for _, audioURL := range session.AudioFiles {
		if err := s.summaries.DeleteAudio(audioURL); err != nil {
			s.logger.Warn("Failed to delete session audio",
				zap.String("session_id", sessionID),
				zap.String("audio_url", audioURL),
				zap.Error(err))
		}
	}

	s.store.Finalize(sessionID)

	s.logger.Info("Session finished",
		zap.String("session_id", sessionID),
		zap.Int("answers", len(summary.Answers)))
	return summary, nil
}

// SubmitSurvey merges the survey into the durable summary. It works off the
// summary file alone, so it succeeds long after the process that ran the
// interview has restarted and the session itself is gone.
func (s *SessionService) SubmitSurvey(ctx context.Context, sessionID string, survey entities.Survey) error {
	unlock := s.store.Lock(sessionID)
	defer unlock()

	if err := s.summaries.AttachSurvey(sessionID, survey); err != nil {
		return err
	}

	// Keep a still-resident session consistent with the summary.
	if session, ok := s.store.Resident(sessionID); ok {
		session.Survey = &survey
		s.store.Save(session)
	}

	s.logger.Info("Survey attached", zap.String("session_id", sessionID))
	return nil
}

// generateFollowup asks the feedback generator and substitutes the
// deterministic per-style fallback when the collaborator fails.
func (s *SessionService) generateFollowup(ctx context.Context, style entities.InterviewerStyle, question string, transcript string) string {
	ctx, cancel := context.WithTimeout(ctx, collaboratorTimeout)
	defer cancel()

	followup, err := s.feedback.GenerateFollowup(ctx, style, question, transcript)
	if err != nil || strings.TrimSpace(followup) == "" {
		s.logger.Warn("Feedback generation failed, using fallback",
			zap.String("style", string(style)),
			zap.Error(err))
		if style == entities.StyleChallenging {
			return challengingFallback
		}
		return neutralFallback
	}

	return followup
}

// synthesize renders a clip, degrading to an empty reference on any failure.
func (s *SessionService) synthesize(ctx context.Context, sessionID string, text string, questionNumber int, kind repositories.ClipKind) string {
	ctx, cancel := context.WithTimeout(ctx, collaboratorTimeout)
	defer cancel()

	audioURL, err := s.speech.Synthesize(ctx, text, sessionID, questionNumber, kind)
	if err != nil {
		s.logger.Warn("Speech synthesis failed",
			zap.String("session_id", sessionID),
			zap.Int("question_number", questionNumber),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return ""
	}

	return audioURL
}
