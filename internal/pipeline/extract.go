package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"kontrakt/internal/model"
)

// RowOutcome classification of one processed row: skipped (blank), rejected
// (one row error, zero records), or accepted with zero or more warnings.
type RowOutcome struct {
	Record   *model.ContractRecord
	Error    *model.ImportIssue
	Warnings []model.ImportIssue
	Skipped  bool
}

// RowExtractor converts raw sheet rows into contract records using a resolved
// field mapping. Validation is interleaved here: the extractor decides
// acceptance, rejection and warnings per row.
type RowExtractor struct {
	columns    map[model.CanonicalField]int // 0-based column index per mapped field
	types      map[model.CanonicalField]model.FieldType
	sheet      string
	sourceFile string

	now   func() time.Time
	newID func() string
}

// NewRowExtractor creates an extractor for one sheet. Mappings with an empty
// source column are ignored.
func NewRowExtractor(mappings []model.FieldMapping, sheet, sourceFile string) *RowExtractor {
	e := &RowExtractor{
		columns:    make(map[model.CanonicalField]int),
		types:      make(map[model.CanonicalField]model.FieldType),
		sheet:      sheet,
		sourceFile: sourceFile,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
	for _, m := range mappings {
		if !m.IsMapped() {
			continue
		}
		if idx := ColumnIndex(m.SourceColumn); idx >= 0 {
			e.columns[m.Field] = idx
			e.types[m.Field] = m.Type
		}
	}
	return e
}

// ExtractRow processes one data row. rowIndex is the 1-based spreadsheet row.
func (e *RowExtractor) ExtractRow(row []string, rowIndex int) RowOutcome {
	raw := make(map[model.CanonicalField]string, len(e.columns))
	empty := true
	for field, col := range e.columns {
		v := ""
		if col < len(row) {
			v = strings.TrimSpace(row[col])
		}
		raw[field] = v
		if v != "" {
			empty = false
		}
	}
	// a row whose mapped cells are all blank is skipped silently; it is not
	// the same as a row that has data but fails validation
	if empty {
		return RowOutcome{Skipped: true}
	}

	record := &model.ContractRecord{
		ID: e.newID(),
		Provenance: model.Provenance{
			Sheet:          e.sheet,
			RowIndex:       rowIndex,
			SourceFileName: e.sourceFile,
			ImportedAt:     e.now(),
		},
	}

	// fields convert in catalog order so warning order is deterministic
	var warnings []model.ImportIssue
	for _, spec := range model.FieldCatalog() {
		value, ok := raw[spec.Field]
		if !ok {
			continue
		}
		if w := e.setField(record, spec.Field, value, rowIndex); w != nil {
			warnings = append(warnings, *w)
		}
	}

	if missing := missingRequired(record); len(missing) > 0 {
		issue := model.ImportIssue{
			RowIndex: rowIndex,
			Kind:     model.IssueMissingRequiredField,
			Field:    strings.Join(missing, ", "),
			Message:  fmt.Sprintf("row %d is missing required field(s): %s", rowIndex, strings.Join(missing, ", ")),
		}
		return RowOutcome{Error: &issue}
	}

	if !model.IsKnownStatus(record.Status) {
		// unknown status is kept verbatim, never coerced to a default
		warnings = append(warnings, model.ImportIssue{
			RowIndex: rowIndex,
			Kind:     model.IssueUnknownStatus,
			Field:    string(model.FieldStatus),
			Message:  fmt.Sprintf("row %d has unknown status %q", rowIndex, record.Status),
		})
	}

	record.DedupKey = BuildDedupKey(record.ContractID, record.TaskID)
	record.IsComplete = completeness(record)

	return RowOutcome{Record: record, Warnings: warnings}
}

// setField converts one raw value per its declared type and stores it on the
// record. Returns a warning for values that fail conversion.
func (e *RowExtractor) setField(record *model.ContractRecord, field model.CanonicalField, value string, rowIndex int) *model.ImportIssue {
	switch e.types[field] {
	case model.FieldTypeNumber:
		if value == "" {
			return nil
		}
		num, ok := parseNumber(value)
		if !ok {
			return &model.ImportIssue{
				RowIndex: rowIndex,
				Kind:     model.IssueInvalidNumber,
				Field:    string(field),
				Message:  fmt.Sprintf("row %d: %q is not a number for field %s", rowIndex, value, field),
			}
		}
		setNumberField(record, field, num)
		return nil

	case model.FieldTypeDate:
		if value == "" {
			return nil
		}
		date, ok := NormalizeDate(value)
		if !ok {
			return &model.ImportIssue{
				RowIndex: rowIndex,
				Kind:     model.IssueInvalidDate,
				Field:    string(field),
				Message:  fmt.Sprintf("row %d: %q is not a date for field %s", rowIndex, value, field),
			}
		}
		setStringField(record, field, date)
		return nil

	default:
		setStringField(record, field, collapseWhitespace(value))
		return nil
	}
}

// setStringField routes a normalized string/date value to its record field.
func setStringField(record *model.ContractRecord, field model.CanonicalField, value string) {
	switch field {
	case model.FieldContractID:
		record.ContractID = value
	case model.FieldContractTitle:
		record.ContractTitle = value
	case model.FieldTaskID:
		record.TaskID = value
	case model.FieldTaskType:
		record.TaskType = value
	case model.FieldDescription:
		record.Description = value
	case model.FieldLocation:
		record.Location = value
	case model.FieldEquipmentID:
		record.EquipmentID = value
	case model.FieldEquipmentDescription:
		record.EquipmentDescription = value
	case model.FieldSerialNumber:
		record.SerialNumber = value
	case model.FieldStatus:
		record.Status = value
	case model.FieldWorkorderCode:
		record.WorkorderCode = value
	case model.FieldPlannedStart:
		record.PlannedStart = value
	case model.FieldReportedBy:
		record.ReportedBy = value
	case model.FieldReportedDate:
		record.ReportedDate = value
	}
}

// setNumberField routes a coerced numeric value to its record field.
func setNumberField(record *model.ContractRecord, field model.CanonicalField, value float64) {
	switch field {
	case model.FieldRoomArea:
		record.RoomArea = &value
	}
}

// missingRequired lists required field names that are absent after conversion.
func missingRequired(record *model.ContractRecord) []string {
	var missing []string
	for _, field := range model.RequiredFields() {
		value := ""
		switch field {
		case model.FieldContractID:
			value = record.ContractID
		case model.FieldContractTitle:
			value = record.ContractTitle
		case model.FieldStatus:
			value = record.Status
		}
		if strings.TrimSpace(value) == "" {
			missing = append(missing, string(field))
		}
	}
	return missing
}

// completeness is true when at least two of location, equipment id and planned
// start are present. A "good enough to act on" heuristic, not a hard rule.
func completeness(record *model.ContractRecord) bool {
	n := 0
	if record.Location != "" {
		n++
	}
	if record.EquipmentID != "" {
		n++
	}
	if record.PlannedStart != "" {
		n++
	}
	return n >= 2
}

// collapseWhitespace trims and collapses internal whitespace runs to one space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
