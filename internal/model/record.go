package model

import (
	"strings"
	"time"
)

// Provenance where an imported record came from
type Provenance struct {
	Sheet          string    `json:"sheet"`
	RowIndex       int       `json:"rowIndex"` // 1-based spreadsheet row
	SourceFileName string    `json:"sourceFileName"`
	ImportedAt     time.Time `json:"importedAt"`
}

// ContractRecord one canonical billing/contract record produced by the pipeline.
// Immutable once produced; string fields use "" for absent, date fields carry
// the canonical YYYY-MM-DD form or "".
type ContractRecord struct {
	ID string `json:"id"`

	ContractID           string   `json:"contractId"`
	ContractTitle        string   `json:"contractTitle"`
	TaskID               string   `json:"taskId"`
	TaskType             string   `json:"taskType"`
	Description          string   `json:"description"`
	Location             string   `json:"location"`
	RoomArea             *float64 `json:"roomArea"`
	EquipmentID          string   `json:"equipmentId"`
	EquipmentDescription string   `json:"equipmentDescription"`
	SerialNumber         string   `json:"serialNumber"`
	Status               string   `json:"status"`
	WorkorderCode        string   `json:"workorderCode"`
	PlannedStart         string   `json:"plannedStart"`
	ReportedBy           string   `json:"reportedBy"`
	ReportedDate         string   `json:"reportedDate"`

	DedupKey   string     `json:"dedupKey"`
	IsComplete bool       `json:"isComplete"`
	Provenance Provenance `json:"provenance"`
}

// knownStatuses closed status vocabulary, German with English equivalents
var knownStatuses = []string{
	"erstellt", "created",
	"in bearbeitung", "in progress",
	"pausiert", "paused",
	"abgeschlossen", "completed",
	"abgerechnet", "billed",
	"storniert", "cancelled",
}

// IsKnownStatus reports whether a raw status value belongs to the vocabulary.
// Comparison is case-insensitive on the trimmed value.
func IsKnownStatus(status string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	for _, known := range knownStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// KnownStatuses returns a copy of the status vocabulary
func KnownStatuses() []string {
	out := make([]string, len(knownStatuses))
	copy(out, knownStatuses)
	return out
}
