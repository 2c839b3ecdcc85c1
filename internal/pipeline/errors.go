package pipeline

import (
	"errors"
	"fmt"
)

// ErrNoSheets indicates the workbook contains no sheets at all.
var ErrNoSheets = errors.New("workbook contains no sheets")

// StructuralError invalidates an entire import run, as opposed to a problem
// scoped to a single row. Row-scoped problems travel as ImportIssue data and
// never surface as errors.
type StructuralError struct {
	Sheet  string
	Reason string
	Err    error
}

func (e *StructuralError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("structural error: %s", e.Reason)
	}
	return fmt.Sprintf("structural error in sheet %q: %s", e.Sheet, e.Reason)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// NewStructuralError creates a StructuralError for the given sheet.
func NewStructuralError(sheet, reason string, err error) *StructuralError {
	return &StructuralError{Sheet: sheet, Reason: reason, Err: err}
}
