package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/prepview/server/domain"
	"github.com/prepview/server/domain/entities"
	"github.com/prepview/server/domain/repositories"
)

const (
	summarySuffix     = ".json"
	workingCopySuffix = ".working.json"
	audioURLPrefix    = "/audio/"
)

// FileStorage persists sessions and summaries as JSON files on local disk.
// Summaries (`<id>.json`) and working copies (`<id>.working.json`) share one
// directory, told apart by suffix so listings can exclude working copies.
// Every write goes to a temp file in the same directory followed by a rename,
// so a crash never leaves a half-written record.
type FileStorage struct {
	sessionDir string
	audioDir   string
	logger     *zap.Logger
}

// Ensure FileStorage implements both storage interfaces
var (
	_ repositories.WorkingCopyStorage = (*FileStorage)(nil)
	_ repositories.SummaryStorage     = (*FileStorage)(nil)
)

// FileStorageConfig holds configuration for the FileStorage adapter
type FileStorageConfig struct {
	SessionDir string // Optional: directory for session records (default: "data/sessions")
	AudioDir   string // Optional: directory for synthesized audio (default: "data/audio")
}

// NewFileStorageConfigFromEnv creates a FileStorageConfig from environment variables
func NewFileStorageConfigFromEnv() FileStorageConfig {
	config := FileStorageConfig{
		SessionDir: os.Getenv("SESSION_DATA_DIR"),
		AudioDir:   os.Getenv("AUDIO_DATA_DIR"),
	}

	if config.SessionDir == "" {
		config.SessionDir = filepath.Join("data", "sessions")
	}
	if config.AudioDir == "" {
		config.AudioDir = filepath.Join("data", "audio")
	}

	return config
}

// NewFileStorage creates a FileStorage, creating both directories if needed.
func NewFileStorage(config FileStorageConfig, logger *zap.Logger) (*FileStorage, error) {
	if config.SessionDir == "" {
		return nil, fmt.Errorf("session directory is required")
	}
	if config.AudioDir == "" {
		return nil, fmt.Errorf("audio directory is required")
	}

	if err := os.MkdirAll(config.SessionDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.MkdirAll(config.AudioDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}

	return &FileStorage{
		sessionDir: config.SessionDir,
		audioDir:   config.AudioDir,
		logger:     logger,
	}, nil
}

// AudioDir returns the directory synthesized audio is served from.
func (f *FileStorage) AudioDir() string {
	return f.audioDir
}

func (f *FileStorage) workingCopyPath(sessionID string) string {
	return filepath.Join(f.sessionDir, sessionID+workingCopySuffix)
}

func (f *FileStorage) summaryPath(sessionID string) string {
	return filepath.Join(f.sessionDir, sessionID+summarySuffix)
}

// writeJSONAtomic marshals v and replaces path in one rename.
func (f *FileStorage) writeJSONAtomic(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// SaveWorkingCopy implements repositories.WorkingCopyStorage
func (f *FileStorage) SaveWorkingCopy(session *entities.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("session with id is required")
	}
	return f.writeJSONAtomic(f.workingCopyPath(session.ID), session)
}

// LoadWorkingCopy implements repositories.WorkingCopyStorage
func (f *FileStorage) LoadWorkingCopy(sessionID string) (*entities.Session, error) {
	data, err := os.ReadFile(f.workingCopyPath(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, &domain.PersistenceError{Op: "read working copy", Err: err}
	}

	var session entities.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, &domain.PersistenceError{Op: "decode working copy", Err: err}
	}

	return &session, nil
}

// DeleteWorkingCopy implements repositories.WorkingCopyStorage
func (f *FileStorage) DeleteWorkingCopy(sessionID string) error {
	if err := os.Remove(f.workingCopyPath(sessionID)); err != nil && !os.IsNotExist(err) {
		return &domain.PersistenceError{Op: "delete working copy", Err: err}
	}
	return nil
}

// SaveSummary implements repositories.SummaryStorage
func (f *FileStorage) SaveSummary(summary *entities.Summary) error {
	if summary == nil || summary.SessionID == "" {
		return fmt.Errorf("summary with session id is required")
	}

	path := f.summaryPath(summary.SessionID)
	if err := f.writeJSONAtomic(path, summary); err != nil {
		return err
	}

	f.logger.Info("Saved session summary",
		zap.String("session_id", summary.SessionID),
		zap.String("path", path))
	return nil
}

// LoadSummary implements repositories.SummaryStorage
func (f *FileStorage) LoadSummary(sessionID string) (*entities.Summary, error) {
	data, err := os.ReadFile(f.summaryPath(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSummaryNotFound
		}
		return nil, &domain.PersistenceError{Op: "read summary", Err: err}
	}

	var summary entities.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, &domain.PersistenceError{Op: "decode summary", Err: err}
	}

	return &summary, nil
}

// AttachSurvey implements repositories.SummaryStorage. It rewrites the
// summary record with the survey merged in; survey submission is the one
// operation whose sole effect is a durable write, so failures here surface
// as persistence errors instead of being swallowed.
func (f *FileStorage) AttachSurvey(sessionID string, survey entities.Survey) error {
	summary, err := f.LoadSummary(sessionID)
	if err != nil {
		return err
	}

	summary.Survey = &survey
	if err := f.writeJSONAtomic(f.summaryPath(sessionID), summary); err != nil {
		return &domain.PersistenceError{Op: "update summary", Err: err}
	}

	f.logger.Info("Updated summary with survey", zap.String("session_id", sessionID))
	return nil
}

// ListSummaryIDs implements repositories.SummaryStorage
func (f *FileStorage) ListSummaryIDs() ([]string, error) {
	dirEntries, err := os.ReadDir(f.sessionDir)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list summaries", Err: err}
	}

	ids := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		name := entry.Name()
		if entry.IsDir() || strings.HasSuffix(name, workingCopySuffix) || !strings.HasSuffix(name, summarySuffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, summarySuffix))
	}
	sort.Strings(ids)

	return ids, nil
}

// SummaryPath implements repositories.SummaryStorage
func (f *FileStorage) SummaryPath(sessionID string) (string, error) {
	path := f.summaryPath(sessionID)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrSummaryNotFound
		}
		return "", &domain.PersistenceError{Op: "stat summary", Err: err}
	}
	return path, nil
}

// DeleteAudio implements repositories.SummaryStorage. Audio URLs look like
// "/audio/<file>" or "http://host/audio/<file>"; only the file name matters.
func (f *FileStorage) DeleteAudio(audioURL string) error {
	if audioURL == "" {
		return nil
	}

	var filename string
	if i := strings.LastIndex(audioURL, audioURLPrefix); i >= 0 {
		filename = audioURL[i+len(audioURLPrefix):]
	} else {
		filename = audioURL[strings.LastIndex(audioURL, "/")+1:]
	}
	filename = filepath.Base(filename)
	if filename == "" || filename == "." {
		return nil
	}

	path := filepath.Join(f.audioDir, filename)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &domain.PersistenceError{Op: "delete audio", Err: err}
	}

	f.logger.Debug("Deleted audio file", zap.String("path", path))
	return nil
}
