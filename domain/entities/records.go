package entities

import (
	"errors"
	"fmt"
)

// InterviewerStyle selects the persona used for spoken feedback
type InterviewerStyle string

const (
	StyleNeutral     InterviewerStyle = "neutral"
	StyleChallenging InterviewerStyle = "challenging"
)

// FeedbackMode is the experiment condition controlling what the participant
// is told about the feedback they receive
type FeedbackMode string

const (
	FeedbackModeReal FeedbackMode = "real"
	FeedbackModeFake FeedbackMode = "fake"
	FeedbackModeNone FeedbackMode = "none"
)

// SessionConfig holds the experiment condition chosen for a session
type SessionConfig struct {
	InterviewerStyle InterviewerStyle `json:"interviewer_style"`
	FeedbackMode     FeedbackMode     `json:"feedback_mode"`
}

// Validate validates the session config
func (c SessionConfig) Validate() error {
	if c.InterviewerStyle != StyleNeutral && c.InterviewerStyle != StyleChallenging {
		return fmt.Errorf("invalid interviewer_style %q", c.InterviewerStyle)
	}
	if c.FeedbackMode != FeedbackModeReal && c.FeedbackMode != FeedbackModeFake && c.FeedbackMode != FeedbackModeNone {
		return fmt.Errorf("invalid feedback_mode %q", c.FeedbackMode)
	}
	return nil
}

// VoiceFeatures is the fixed-shape bundle of numeric signals describing one
// utterance. It is validated once at the API boundary and stored verbatim.
type VoiceFeatures struct {
	NervousnessScore  float64 `json:"nervousness_score"`
	AvgRMS            float64 `json:"avg_rms"`
	SilenceRatio      float64 `json:"silence_ratio"`
	IntensityVariance float64 `json:"intensity_variance"`
	SpeechRate        float64 `json:"speech_rate"`
	FillerCount       int     `json:"filler_count"`
	RepetitionCount   int     `json:"repetition_count"`
	DurationSec       float64 `json:"duration_sec"`
}

// Validate validates the voice feature record
func (v VoiceFeatures) Validate() error {
	if v.SilenceRatio < 0 || v.SilenceRatio > 1 {
		return fmt.Errorf("silence_ratio must be between 0 and 1, got %f", v.SilenceRatio)
	}
	if v.FillerCount < 0 {
		return errors.New("filler_count must not be negative")
	}
	if v.RepetitionCount < 0 {
		return errors.New("repetition_count must not be negative")
	}
	if v.DurationSec < 0 {
		return errors.New("duration_sec must not be negative")
	}
	return nil
}

// Question is one interview question, fixed at session creation. AudioURL is
// filled in per delivery and may be empty when synthesis failed.
type Question struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	AudioURL string `json:"audio_url,omitempty"`
}

// Answer records one accepted answer submission, including a snapshot of the
// question text it responded to.
type Answer struct {
	QuestionID    int           `json:"question_id"`
	QuestionText  string        `json:"question_text"`
	Transcript    string        `json:"transcript,omitempty"`
	VoiceFeatures VoiceFeatures `json:"voice_features"`
}

// Survey is the post-session questionnaire: nine ratings plus free text.
type Survey struct {
	Q1      int    `json:"q1"`
	Q2      int    `json:"q2"`
	Q3      int    `json:"q3"`
	Q4      int    `json:"q4"`
	Q5      int    `json:"q5"`
	Q6      int    `json:"q6"`
	Q7      int    `json:"q7"`
	Q8      int    `json:"q8"`
	Q9      int    `json:"q9"`
	Q10Text string `json:"q10_text,omitempty"`
}
