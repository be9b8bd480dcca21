package usecase

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/prepview/server/domain"
)

// ListSummaries enumerates finished sessions. Working copies of in-progress
// sessions never appear here.
func (s *SessionService) ListSummaries() (int, []string, error) {
	ids, err := s.summaries.ListSummaryIDs()
	if err != nil {
		return 0, nil, err
	}
	return len(ids), ids, nil
}

// SummaryFilePath resolves the summary file for a session id so the HTTP
// layer can serve it as a download.
func (s *SessionService) SummaryFilePath(sessionID string) (string, error) {
	return s.summaries.SummaryPath(sessionID)
}

// ArchiveAll packages every summary into one zip archive. It fails with the
// not-found kind when no session has finished yet.
func (s *SessionService) ArchiveAll() ([]byte, error) {
	ids, err := s.summaries.ListSummaryIDs()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, domain.ErrSummaryNotFound
	}

	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)
	for _, id := range ids {
		summary, err := s.summaries.LoadSummary(id)
		if err != nil {
			return nil, err
		}

		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal summary %s: %w", id, err)
		}

		entry, err := zipWriter.Create(id + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to create archive entry: %w", err)
		}
		if _, err := entry.Write(data); err != nil {
			return nil, fmt.Errorf("failed to write archive entry: %w", err)
		}
	}
	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return buf.Bytes(), nil
}
