package repositories

import (
	"context"

	"github.com/prepview/server/domain/entities"
)

// FeedbackGenerator abstracts the LLM that turns an answer into short
// spoken-style interviewer feedback. Failures surface as errors; the caller
// decides the fallback.
type FeedbackGenerator interface {
	// GenerateFollowup returns 2-3 sentences of feedback for one answer.
	// transcript may be empty when only voice features were captured.
	GenerateFollowup(ctx context.Context, style entities.InterviewerStyle, question string, transcript string) (string, error)
}
