// Package importer drives the import pipeline across a whole workbook,
// streaming progress events and persisting accepted records.
package importer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"kontrakt/internal/model"
	"kontrakt/internal/pipeline"
	"kontrakt/internal/store"
)

// Coordinator ties discovery, mapping, the pipeline and the store together.
type Coordinator struct {
	store  *store.Store
	mapper *pipeline.ColumnMapper
	log    *zap.Logger
}

// NewCoordinator creates a coordinator. store may be nil for dry runs; the
// mapper defaults to the built-in pattern dictionary.
func NewCoordinator(st *store.Store, mapper *pipeline.ColumnMapper, log *zap.Logger) *Coordinator {
	if mapper == nil {
		mapper = pipeline.NewColumnMapper()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{store: st, mapper: mapper, log: log}
}

// Options one workbook import.
type Options struct {
	Workbook       pipeline.Workbook
	SourceFileName string
	// Sheets restricts the run to the named sheets; empty means every sheet.
	Sheets []string
	// Overrides replaces the suggested mapping verbatim for the keyed sheet.
	Overrides map[string][]model.FieldMapping
	// MaxRows per-sheet row cap; 0 means no cap.
	MaxRows int
	// Persist writes accepted records and an import log per sheet.
	Persist bool
}

// SheetResult outcome for one processed sheet.
type SheetResult struct {
	Sheet    string                  `json:"sheet"`
	Status   string                  `json:"status"` // imported/skipped/error
	Records  []*model.ContractRecord `json:"records,omitempty"`
	Errors   []model.ImportIssue     `json:"errors,omitempty"`
	Warnings []model.ImportIssue     `json:"warnings,omitempty"`
	Summary  model.ImportSummary     `json:"summary"`
}

// Report aggregated outcome of a workbook import.
type Report struct {
	Filename       string        `json:"filename"`
	TotalSheets    int           `json:"totalSheets"`
	ImportedSheets int           `json:"importedSheets"`
	SkippedSheets  int           `json:"skippedSheets"`
	TotalRows      int           `json:"totalRows"`
	SuccessRows    int           `json:"successRows"`
	ErrorRows      int           `json:"errorRows"`
	WarningCount   int           `json:"warningCount"`
	DuplicateCount int           `json:"duplicateCount"`
	Duration       time.Duration `json:"duration"`
	Sheets         []SheetResult `json:"sheets"`
}

// ProgressEvent one streamed progress update.
type ProgressEvent struct {
	Type      string      `json:"type"` // start/sheet_start/progress/sheet_done/done/error
	Message   string      `json:"message"`
	Sheet     string      `json:"sheet,omitempty"`
	Processed int         `json:"processed,omitempty"`
	Total     int         `json:"total,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Import runs the workbook import in the background, returning the progress
// channel. The channel closes after the final done or error event.
func (c *Coordinator) Import(ctx context.Context, opts Options) <-chan ProgressEvent {
	events := make(chan ProgressEvent, 100)
	go func() {
		defer close(events)
		c.doImport(ctx, opts, events)
	}()
	return events
}

// ImportSync runs the workbook import inline, discarding progress events.
func (c *Coordinator) ImportSync(ctx context.Context, opts Options) (*Report, error) {
	events := make(chan ProgressEvent, 100)
	var report *Report
	var runErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			if ev.Type == "done" {
				if r, ok := ev.Data.(*Report); ok {
					report = r
				}
			}
			if ev.Type == "error" {
				runErr = fmt.Errorf("%s", ev.Message)
			}
		}
	}()
	c.doImport(ctx, opts, events)
	close(events)
	<-done
	return report, runErr
}

func (c *Coordinator) doImport(ctx context.Context, opts Options, events chan ProgressEvent) {
	start := time.Now()
	report := &Report{Filename: opts.SourceFileName, Sheets: []SheetResult{}}

	c.send(events, ProgressEvent{
		Type:      "start",
		Message:   fmt.Sprintf("importing %s", opts.SourceFileName),
		Timestamp: time.Now(),
	})

	descriptors, err := pipeline.DiscoverWorkbook(opts.Workbook)
	if err != nil {
		c.log.Error("workbook discovery failed", zap.Error(err))
		c.send(events, ProgressEvent{
			Type:      "error",
			Message:   err.Error(),
			Timestamp: time.Now(),
		})
		return
	}

	wanted := make(map[string]bool, len(opts.Sheets))
	for _, s := range opts.Sheets {
		wanted[s] = true
	}

	for _, desc := range descriptors {
		if len(wanted) > 0 && !wanted[desc.Name] {
			continue
		}
		report.TotalSheets++

		if err := ctx.Err(); err != nil {
			c.send(events, ProgressEvent{
				Type:      "error",
				Message:   fmt.Sprintf("import cancelled: %v", err),
				Timestamp: time.Now(),
			})
			return
		}

		result := c.processSheet(ctx, desc, opts, events)
		report.Sheets = append(report.Sheets, result)

		switch result.Status {
		case "imported":
			report.ImportedSheets++
		case "skipped":
			report.SkippedSheets++
		}
		report.TotalRows += result.Summary.TotalRows
		report.SuccessRows += result.Summary.SuccessCount
		report.ErrorRows += result.Summary.ErrorCount
		report.WarningCount += result.Summary.WarningCount
		report.DuplicateCount += result.Summary.DuplicateCount
	}

	report.Duration = time.Since(start)
	c.log.Info("workbook import finished",
		zap.String("file", opts.SourceFileName),
		zap.Int("sheets", report.ImportedSheets),
		zap.Int("rows", report.SuccessRows),
		zap.Duration("duration", report.Duration))

	c.send(events, ProgressEvent{
		Type:      "done",
		Message:   "import finished",
		Data:      report,
		Timestamp: time.Now(),
	})
}

// processSheet maps and runs one sheet through the pipeline.
func (c *Coordinator) processSheet(ctx context.Context, desc model.SheetDescriptor, opts Options, events chan ProgressEvent) SheetResult {
	c.send(events, ProgressEvent{
		Type:      "sheet_start",
		Sheet:     desc.Name,
		Message:   fmt.Sprintf("processing sheet %q", desc.Name),
		Timestamp: time.Now(),
	})

	if desc.IsEmpty {
		c.send(events, ProgressEvent{
			Type:      "sheet_done",
			Sheet:     desc.Name,
			Message:   fmt.Sprintf("sheet %q is empty, skipped", desc.Name),
			Timestamp: time.Now(),
		})
		return SheetResult{Sheet: desc.Name, Status: "skipped"}
	}

	mappings, overridden := opts.Overrides[desc.Name]
	var suggestion model.MappingSuggestion
	if !overridden {
		suggestion = c.mapper.Suggest(desc)
		mappings = suggestion.Mappings
	}

	if missing := unmappedRequired(mappings); len(missing) > 0 && !overridden {
		c.send(events, ProgressEvent{
			Type:      "sheet_done",
			Sheet:     desc.Name,
			Message:   fmt.Sprintf("sheet %q skipped: required fields %v have no column", desc.Name, missing),
			Data:      suggestion,
			Timestamp: time.Now(),
		})
		return SheetResult{Sheet: desc.Name, Status: "skipped"}
	}

	coordinator := pipeline.NewBatchCoordinator(opts.Workbook)
	result, err := coordinator.Run(ctx, desc.Name, mappings, pipeline.Options{
		SkipInvalidRows: true,
		MaxRows:         opts.MaxRows,
		SourceFileName:  opts.SourceFileName,
		OnProgress: func(processed, total int) {
			c.send(events, ProgressEvent{
				Type:      "progress",
				Sheet:     desc.Name,
				Processed: processed,
				Total:     total,
				Message:   fmt.Sprintf("%d/%d rows", processed, total),
				Timestamp: time.Now(),
			})
		},
	})
	if err != nil {
		c.log.Warn("sheet failed", zap.String("sheet", desc.Name), zap.Error(err))
		status := "error"
		sheetResult := SheetResult{Sheet: desc.Name, Status: status}
		if result != nil {
			sheetResult.Errors = result.Errors
			sheetResult.Summary = result.Summary
		}
		c.send(events, ProgressEvent{
			Type:      "sheet_done",
			Sheet:     desc.Name,
			Message:   fmt.Sprintf("sheet %q failed: %v", desc.Name, err),
			Timestamp: time.Now(),
		})
		return sheetResult
	}

	sheetResult := SheetResult{
		Sheet:    desc.Name,
		Status:   "imported",
		Records:  result.Records,
		Errors:   result.Errors,
		Warnings: result.Warnings,
		Summary:  result.Summary,
	}

	if opts.Persist && c.store != nil {
		if err := c.persist(opts.SourceFileName, desc.Name, result); err != nil {
			c.log.Error("persist failed", zap.String("sheet", desc.Name), zap.Error(err))
			sheetResult.Status = "error"
			sheetResult.Errors = append(sheetResult.Errors, model.ImportIssue{
				Kind:    model.IssueStructuralError,
				Message: fmt.Sprintf("persist failed: %v", err),
			})
		}
	}

	c.send(events, ProgressEvent{
		Type:  "sheet_done",
		Sheet: desc.Name,
		Message: fmt.Sprintf("sheet %q: %d records, %d errors, %d warnings",
			desc.Name, result.Summary.SuccessCount, result.Summary.ErrorCount, result.Summary.WarningCount),
		Data:      result.Summary,
		Timestamp: time.Now(),
	})

	return sheetResult
}

// persist writes one sheet's result under a fresh import log row.
func (c *Coordinator) persist(filename, sheet string, result *model.ImportResult) error {
	logID, err := c.store.CreateImportLog(filename, sheet)
	if err != nil {
		return err
	}
	if err := c.store.BatchInsertRecords(logID, result.Records); err != nil {
		_ = c.store.FinishImportLog(logID, result.Summary, "error", err.Error())
		return err
	}
	return c.store.FinishImportLog(logID, result.Summary, "completed", "")
}

// unmappedRequired required fields without a source column.
func unmappedRequired(mappings []model.FieldMapping) []model.CanonicalField {
	var missing []model.CanonicalField
	for _, m := range mappings {
		if m.Required && !m.IsMapped() {
			missing = append(missing, m.Field)
		}
	}
	return missing
}

// send forwards an event without ever blocking the import.
func (c *Coordinator) send(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
		// channel full, drop the event
	}
}
