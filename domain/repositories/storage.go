package repositories

import "github.com/prepview/server/domain/entities"

// WorkingCopyStorage is the durable recovery tier for in-progress sessions.
// A working copy is a full snapshot of one session, overwritten on every
// persisted mutation and deleted when the session finishes.
type WorkingCopyStorage interface {
	// SaveWorkingCopy overwrites the snapshot for the session's id.
	SaveWorkingCopy(session *entities.Session) error
	// LoadWorkingCopy returns domain.ErrSessionNotFound when no snapshot exists.
	LoadWorkingCopy(sessionID string) (*entities.Session, error)
	// DeleteWorkingCopy is idempotent: deleting a missing snapshot succeeds.
	DeleteWorkingCopy(sessionID string) error
}

// SummaryStorage owns the long-term records of finished sessions and the
// synthesized audio files sessions leave behind.
type SummaryStorage interface {
	SaveSummary(summary *entities.Summary) error
	// LoadSummary returns domain.ErrSummaryNotFound when no record exists.
	LoadSummary(sessionID string) (*entities.Summary, error)
	// AttachSurvey merges the survey into an existing summary record.
	AttachSurvey(sessionID string, survey entities.Survey) error
	// ListSummaryIDs enumerates finished sessions, excluding working copies.
	ListSummaryIDs() ([]string, error)
	// SummaryPath resolves the on-disk file for download handlers.
	SummaryPath(sessionID string) (string, error)
	// DeleteAudio removes one synthesized clip by its URL. A clip that is
	// already gone counts as deleted.
	DeleteAudio(audioURL string) error
}
