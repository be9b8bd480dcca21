package llm

import (
	"context"
	"fmt"

	"github.com/prepview/server/domain/entities"
	"github.com/prepview/server/domain/repositories"
)

// MockFeedbackGenerator is a canned implementation for development and tests.
type MockFeedbackGenerator struct {
	// Err, when set, is returned by every call to exercise fallback paths.
	Err error
}

var _ repositories.FeedbackGenerator = (*MockFeedbackGenerator)(nil)

// NewMockFeedbackGenerator creates a new mock feedback generator
func NewMockFeedbackGenerator() *MockFeedbackGenerator {
	return &MockFeedbackGenerator{}
}

// GenerateFollowup implements repositories.FeedbackGenerator
func (m *MockFeedbackGenerator) GenerateFollowup(ctx context.Context, style entities.InterviewerStyle, question string, transcript string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}

	if style == entities.StyleChallenging {
		return fmt.Sprintf("Parts of that were clear, but the result is still vague for %q. Next time, be concrete about what changed because of you.", question), nil
	}
	return fmt.Sprintf("Thanks, that was a solid answer to %q. Next time, try to quantify the result a bit more.", question), nil
}
