package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies client-facing failures so callers can tell apart the
// four distinct conditions the session flow can report.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindPreconditionFailed
	KindSequenceExhausted
	KindPersistenceFailure
)

var (
	// ErrSessionNotFound is returned when a session id resolves to nothing,
	// neither in memory nor on disk.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSummaryNotFound is returned when no summary file exists for a session id.
	ErrSummaryNotFound = errors.New("session summary not found")
	// ErrConsentRequired is returned when a session is started without consent.
	ErrConsentRequired = errors.New("consent not accepted")
	// ErrConfigNotSet guards operations that require the session config.
	ErrConfigNotSet = errors.New("config not set")
	// ErrConfigLocked rejects reconfiguration once an answer has been accepted.
	ErrConfigLocked = errors.New("config locked after first answer")
	// ErrNoMoreQuestions is returned once all questions have been answered.
	ErrNoMoreQuestions = errors.New("no more questions")
)

// PersistenceError wraps a failed durable read or write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// KindOf maps an error to its client-facing kind.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrSummaryNotFound):
		return KindNotFound
	case errors.Is(err, ErrConsentRequired), errors.Is(err, ErrConfigNotSet), errors.Is(err, ErrConfigLocked):
		return KindPreconditionFailed
	case errors.Is(err, ErrNoMoreQuestions):
		return KindSequenceExhausted
	}

	var persistenceErr *PersistenceError
	if errors.As(err, &persistenceErr) {
		return KindPersistenceFailure
	}

	return KindUnknown
}
