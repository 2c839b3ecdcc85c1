package pipeline

import (
	"context"
	"fmt"
	"time"

	"kontrakt/internal/model"
)

// progressInterval rows between progress callbacks.
const progressInterval = 100

// Options batch run options. The zero value processes every row with no
// progress reporting.
type Options struct {
	// SkipInvalidRows keeps the run going past rejected rows. When false the
	// first row error stops further processing, keeping issues gathered so far.
	SkipInvalidRows bool
	// MaxRows truncates the sheet after this many data rows; 0 means no limit.
	MaxRows int
	// OnProgress is invoked about every 100 rows and once at completion with
	// strictly increasing processed counts ending at total.
	OnProgress func(processed, total int)
	// SourceFileName is recorded in every record's provenance.
	SourceFileName string
}

// BatchCoordinator drives discovery output through extraction, validation and
// deduplication across one entire sheet. One run is a pure function of
// (workbook, sheet, mapping, options); coordinators hold no state between runs.
type BatchCoordinator struct {
	wb Workbook
}

// NewBatchCoordinator creates a coordinator over a decoded workbook.
func NewBatchCoordinator(wb Workbook) *BatchCoordinator {
	return &BatchCoordinator{wb: wb}
}

// Run processes all data rows of the sheet with the resolved mapping. Row
// problems are returned as data inside the result; the error return is
// non-nil only for a structural failure or cancellation. On structural
// failure the result still carries zero records and the single structural
// issue, so callers may use either channel.
func (c *BatchCoordinator) Run(ctx context.Context, sheet string, mappings []model.FieldMapping, opts Options) (*model.ImportResult, error) {
	start := time.Now()

	rows, err := c.wb.Rows(sheet)
	if err != nil {
		serr := NewStructuralError(sheet, "sheet is unreadable", err)
		return structuralResult(serr, start), serr
	}
	if len(rows) == 0 {
		serr := NewStructuralError(sheet, "sheet has no header row", nil)
		return structuralResult(serr, start), serr
	}

	dataRows := rows[1:]
	if opts.MaxRows > 0 && len(dataRows) > opts.MaxRows {
		dataRows = dataRows[:opts.MaxRows]
	}
	total := len(dataRows)

	extractor := NewRowExtractor(mappings, sheet, opts.SourceFileName)
	dedup := NewDeduplicator()

	result := &model.ImportResult{
		Records:  []*model.ContractRecord{},
		Errors:   []model.ImportIssue{},
		Warnings: []model.ImportIssue{},
	}
	result.Summary.TotalRows = total

	for i, row := range dataRows {
		// header is row 1, data starts at row 2
		rowIndex := i + 2

		outcome := extractor.ExtractRow(row, rowIndex)
		switch {
		case outcome.Skipped:
			// blank row, no issue recorded

		case outcome.Error != nil:
			result.Errors = append(result.Errors, *outcome.Error)
			result.Summary.ErrorCount++
			if !opts.SkipInvalidRows {
				result.Summary.Duration = time.Since(start)
				reportProgress(opts, i+1, total)
				return result, nil
			}

		default:
			result.Warnings = append(result.Warnings, outcome.Warnings...)
			result.Summary.WarningCount += len(outcome.Warnings)

			if firstRow, dup := dedup.Check(outcome.Record.DedupKey, rowIndex); dup {
				// duplicates are dropped and logged, on every code path
				result.Warnings = append(result.Warnings, model.ImportIssue{
					RowIndex: rowIndex,
					Kind:     model.IssueDuplicateRecord,
					Message:  fmt.Sprintf("row %d repeats key %q first seen in row %d", rowIndex, outcome.Record.DedupKey, firstRow),
				})
				result.Summary.WarningCount++
				result.Summary.DuplicateCount++
			} else {
				result.Records = append(result.Records, outcome.Record)
				result.Summary.SuccessCount++
			}
		}

		if (i+1)%progressInterval == 0 && i+1 < total {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			reportProgress(opts, i+1, total)
		}
	}

	reportProgress(opts, total, total)
	result.Summary.Duration = time.Since(start)
	return result, nil
}

// reportProgress invokes the callback when one is wired.
func reportProgress(opts Options, processed, total int) {
	if opts.OnProgress != nil && total > 0 {
		opts.OnProgress(processed, total)
	}
}

// structuralResult the empty result describing a run-fatal failure.
func structuralResult(serr *StructuralError, start time.Time) *model.ImportResult {
	result := &model.ImportResult{
		Records:  []*model.ContractRecord{},
		Errors:   []model.ImportIssue{{Kind: model.IssueStructuralError, Message: serr.Error()}},
		Warnings: []model.ImportIssue{},
	}
	result.Summary.ErrorCount = 1
	result.Summary.Duration = time.Since(start)
	return result
}
