package model

import (
	"encoding/json"
	"time"
)

// IssueKind classification of an import problem
type IssueKind string

const (
	IssueMissingRequiredField IssueKind = "missing_required_field"
	IssueInvalidDate          IssueKind = "invalid_date"
	IssueInvalidNumber        IssueKind = "invalid_number"
	IssueUnknownStatus        IssueKind = "unknown_status"
	IssueDuplicateRecord      IssueKind = "duplicate_record"
	IssueParseError           IssueKind = "parse_error"
	IssueStructuralError      IssueKind = "structural_error"
)

// ImportIssue one recorded problem, scoped to a row except for structural errors
type ImportIssue struct {
	RowIndex int       `json:"rowIndex"` // 1-based; 0 for structural errors
	Kind     IssueKind `json:"kind"`
	Field    string    `json:"field,omitempty"`
	Message  string    `json:"message"`
}

// ImportSummary aggregate counters for one pipeline run
type ImportSummary struct {
	TotalRows      int           `json:"totalRows"`
	SuccessCount   int           `json:"successCount"`
	ErrorCount     int           `json:"errorCount"`
	WarningCount   int           `json:"warningCount"`
	DuplicateCount int           `json:"duplicateCount"`
	Duration       time.Duration `json:"-"`
}

// MarshalJSON reports the duration in whole milliseconds.
func (s ImportSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalRows      int   `json:"totalRows"`
		SuccessCount   int   `json:"successCount"`
		ErrorCount     int   `json:"errorCount"`
		WarningCount   int   `json:"warningCount"`
		DuplicateCount int   `json:"duplicateCount"`
		DurationMs     int64 `json:"importDurationMs"`
	}{s.TotalRows, s.SuccessCount, s.ErrorCount, s.WarningCount,
		s.DuplicateCount, s.Duration.Milliseconds()})
}

// ImportResult the sole boundary artifact of a pipeline run
type ImportResult struct {
	Records  []*ContractRecord `json:"records"`
	Errors   []ImportIssue     `json:"errors"`
	Warnings []ImportIssue     `json:"warnings"`
	Summary  ImportSummary     `json:"summary"`
}
