package api

import (
	"fmt"

	"github.com/prepview/server/domain/entities"
)

// ConsentRequest represents the request payload for starting a session
type ConsentRequest struct {
	Accepted bool `json:"accepted"`
}

// StartResponse represents the response payload for starting a session
type StartResponse struct {
	SessionID string `json:"session_id"`
}

// ConfigRequest represents the experiment condition payload
type ConfigRequest struct {
	InterviewerStyle string `json:"interviewer_style"`
	FeedbackMode     string `json:"feedback_mode"`
}

// ToEntity validates the payload and converts it to a trusted config.
func (r ConfigRequest) ToEntity() (entities.SessionConfig, error) {
	config := entities.SessionConfig{
		InterviewerStyle: entities.InterviewerStyle(r.InterviewerStyle),
		FeedbackMode:     entities.FeedbackMode(r.FeedbackMode),
	}
	if err := config.Validate(); err != nil {
		return entities.SessionConfig{}, err
	}
	return config, nil
}

// VoiceFeaturesPayload carries one voice-feature record. Pointer fields make
// missing values detectable, so validation happens exactly once here.
type VoiceFeaturesPayload struct {
	NervousnessScore  *float64 `json:"nervousness_score"`
	AvgRMS            *float64 `json:"avg_rms"`
	SilenceRatio      *float64 `json:"silence_ratio"`
	IntensityVariance *float64 `json:"intensity_variance"`
	SpeechRate        *float64 `json:"speech_rate"`
	FillerCount       *int     `json:"filler_count"`
	RepetitionCount   *int     `json:"repetition_count"`
	DurationSec       *float64 `json:"duration_sec"`
}

// ToEntity validates the payload and converts it to a trusted record.
func (p *VoiceFeaturesPayload) ToEntity() (entities.VoiceFeatures, error) {
	if p == nil {
		return entities.VoiceFeatures{}, fmt.Errorf("voice_features is required")
	}

	fields := map[string]bool{
		"nervousness_score":  p.NervousnessScore != nil,
		"avg_rms":            p.AvgRMS != nil,
		"silence_ratio":      p.SilenceRatio != nil,
		"intensity_variance": p.IntensityVariance != nil,
		"speech_rate":        p.SpeechRate != nil,
		"filler_count":       p.FillerCount != nil,
		"repetition_count":   p.RepetitionCount != nil,
		"duration_sec":       p.DurationSec != nil,
	}
	for name, present := range fields {
		if !present {
			return entities.VoiceFeatures{}, fmt.Errorf("voice_features.%s is required", name)
		}
	}

	features := entities.VoiceFeatures{
		NervousnessScore:  *p.NervousnessScore,
		AvgRMS:            *p.AvgRMS,
		SilenceRatio:      *p.SilenceRatio,
		IntensityVariance: *p.IntensityVariance,
		SpeechRate:        *p.SpeechRate,
		FillerCount:       *p.FillerCount,
		RepetitionCount:   *p.RepetitionCount,
		DurationSec:       *p.DurationSec,
	}
	if err := features.Validate(); err != nil {
		return entities.VoiceFeatures{}, err
	}

	return features, nil
}

// BaselineRequest represents the baseline calibration payload
type BaselineRequest struct {
	VoiceFeatures *VoiceFeaturesPayload `json:"voice_features"`
}

// QuestionResponse represents one delivered interview question
type QuestionResponse struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	AudioURL string `json:"audio_url,omitempty"`
}

// AnswerRequest represents one answer submission
type AnswerRequest struct {
	QuestionID    *int                  `json:"question_id"`
	Transcript    string                `json:"transcript"`
	VoiceFeatures *VoiceFeaturesPayload `json:"voice_features"`
}

// FollowupResponse represents the feedback returned for one answer
type FollowupResponse struct {
	FollowupText string `json:"followup_text"`
	AudioURL     string `json:"audio_url,omitempty"`
}

// SurveyRequest represents the post-session questionnaire payload
type SurveyRequest struct {
	Q1      *int   `json:"q1"`
	Q2      *int   `json:"q2"`
	Q3      *int   `json:"q3"`
	Q4      *int   `json:"q4"`
	Q5      *int   `json:"q5"`
	Q6      *int   `json:"q6"`
	Q7      *int   `json:"q7"`
	Q8      *int   `json:"q8"`
	Q9      *int   `json:"q9"`
	Q10Text string `json:"q10_text"`
}

// ToEntity validates that all nine ratings are present.
func (r SurveyRequest) ToEntity() (entities.Survey, error) {
	ratings := []*int{r.Q1, r.Q2, r.Q3, r.Q4, r.Q5, r.Q6, r.Q7, r.Q8, r.Q9}
	for i, rating := range ratings {
		if rating == nil {
			return entities.Survey{}, fmt.Errorf("q%d is required", i+1)
		}
	}

	return entities.Survey{
		Q1: *r.Q1, Q2: *r.Q2, Q3: *r.Q3,
		Q4: *r.Q4, Q5: *r.Q5, Q6: *r.Q6,
		Q7: *r.Q7, Q8: *r.Q8, Q9: *r.Q9,
		Q10Text: r.Q10Text,
	}, nil
}

// OKResponse acknowledges a mutation with no other payload
type OKResponse struct {
	OK bool `json:"ok"`
}

// ListResponse represents the finished-session listing
type ListResponse struct {
	Count      int      `json:"count"`
	SessionIDs []string `json:"session_ids"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
