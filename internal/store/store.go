package store

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/prepview/server/domain"
	"github.com/prepview/server/domain/entities"
	"github.com/prepview/server/domain/repositories"
)

// SessionStore holds every live session in a write-through two-tier cache:
// a process-wide in-memory map for the common read path, and a durable
// working copy per session that doubles as the crash-recovery source. After
// a restart the map is empty and Get falls back to the durable tier.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*entities.Session
	locks    map[string]*sync.Mutex
	durable  repositories.WorkingCopyStorage
	logger   *zap.Logger
}

// NewSessionStore creates a session store backed by the given durable tier.
func NewSessionStore(durable repositories.WorkingCopyStorage, logger *zap.Logger) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*entities.Session),
		locks:    make(map[string]*sync.Mutex),
		durable:  durable,
		logger:   logger,
	}
}

// Create registers a new session and writes its first working copy. A failed
// initial write aborts creation so a session never exists half-made.
func (s *SessionStore) Create(session *entities.Session) error {
	if err := s.durable.SaveWorkingCopy(session); err != nil {
		return &domain.PersistenceError{Op: "create working copy", Err: err}
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return nil
}

// Get serves from memory first. On a miss it loads the durable working copy
// and repopulates the cache, so an in-progress session survives a restart.
func (s *SessionStore) Get(sessionID string) (*entities.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return session, nil
	}

	session, err := s.durable.LoadWorkingCopy(sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	s.mu.Lock()
	if resident, ok := s.sessions[sessionID]; ok {
		// Another caller repopulated the cache first; theirs wins.
		session = resident
	} else {
		s.sessions[sessionID] = session
		s.logger.Info("Recovered session from working copy",
			zap.String("session_id", sessionID),
			zap.Int("answers", len(session.Answers)))
	}
	s.mu.Unlock()

	return session, nil
}

// Resident returns the session only if it is still in memory, without
// touching the durable tier.
func (s *SessionStore) Resident(sessionID string) (*entities.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

// Save overwrites the working copy with the session's current state.
// Durability here is best effort: a failed write is logged and the in-memory
// state stays authoritative for the rest of the process lifetime.
func (s *SessionStore) Save(session *entities.Session) {
	if err := s.durable.SaveWorkingCopy(session); err != nil {
		s.logger.Error("Failed to persist session working copy",
			zap.String("session_id", session.ID),
			zap.Error(err))
	}
}

// Finalize removes the session from memory and deletes its working copy.
// The caller must have written the long-term summary beforehand. Deleting an
// already-missing working copy is treated as success.
func (s *SessionStore) Finalize(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	delete(s.locks, sessionID)
	s.mu.Unlock()

	if err := s.durable.DeleteWorkingCopy(sessionID); err != nil {
		s.logger.Error("Failed to delete session working copy",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}

// Lock acquires the exclusive per-session mutex, serializing mutating
// lifecycle operations on one session id so concurrent submissions cannot
// lose updates to the cursor or the answer list. The returned func releases
// the lock.
func (s *SessionStore) Lock(sessionID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
