package store

import (
	"fmt"
	"time"

	"kontrakt/internal/model"
)

// ImportLog one persisted import run.
type ImportLog struct {
	ID             int64      `json:"id"`
	Filename       string     `json:"filename"`
	Sheet          string     `json:"sheet"`
	TotalRows      int        `json:"totalRows"`
	SuccessCount   int        `json:"successCount"`
	ErrorCount     int        `json:"errorCount"`
	WarningCount   int        `json:"warningCount"`
	DuplicateCount int        `json:"duplicateCount"`
	DurationMs     int64      `json:"durationMs"`
	Status         string     `json:"status"`
	ErrorMessage   string     `json:"errorMessage,omitempty"`
	StartedAt      time.Time  `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

// CreateImportLog opens a log row for a starting run, returning its id.
func (s *Store) CreateImportLog(filename, sheet string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (filename, sheet, status) VALUES (?, ?, 'processing')
	`, filename, sheet)
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// FinishImportLog records the outcome of a completed run.
func (s *Store) FinishImportLog(id int64, summary model.ImportSummary, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE import_logs SET
			total_rows = ?,
			success_count = ?,
			error_count = ?,
			warning_count = ?,
			duplicate_count = ?,
			duration_ms = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, summary.TotalRows, summary.SuccessCount, summary.ErrorCount,
		summary.WarningCount, summary.DuplicateCount, summary.Duration.Milliseconds(),
		status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	return nil
}

// ListImportLogs returns recent runs, newest first.
func (s *Store) ListImportLogs(limit int) ([]ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, filename, COALESCE(sheet, ''), total_rows, success_count,
			error_count, warning_count, duplicate_count, duration_ms, status,
			COALESCE(error_message, ''), started_at, completed_at
		FROM import_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query import logs: %w", err)
	}
	defer rows.Close()

	var logs []ImportLog
	for rows.Next() {
		var l ImportLog
		if err := rows.Scan(
			&l.ID, &l.Filename, &l.Sheet, &l.TotalRows, &l.SuccessCount,
			&l.ErrorCount, &l.WarningCount, &l.DuplicateCount, &l.DurationMs,
			&l.Status, &l.ErrorMessage, &l.StartedAt, &l.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
