package repositories

import "context"

// ClipKind distinguishes the two kinds of clips a session synthesizes.
type ClipKind string

const (
	ClipKindQuestion ClipKind = "question"
	ClipKindFollowup ClipKind = "followup"
)

// SpeechSynthesizer abstracts text-to-speech providers. Implementations
// persist the rendered clip and return a URL the client can fetch. An empty
// text synthesizes nothing and returns an empty URL without error.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string, sessionID string, questionIndex int, kind ClipKind) (string, error)
}
