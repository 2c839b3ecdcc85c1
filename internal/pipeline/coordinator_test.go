package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kontrakt/internal/model"
)

func TestRun_LargeSheetProgressReporting(t *testing.T) {
	t.Parallel()

	rows := [][]string{{"Auftrag", "Titel", "Status"}}
	for i := 0; i < 10000; i++ {
		rows = append(rows, []string{fmt.Sprintf("A%d", i), "Test", "Erstellt"})
	}
	wb := newFakeWorkbook()
	wb.addSheet("Daten", rows)

	var calls [][2]int
	opts := Options{
		SkipInvalidRows: true,
		OnProgress: func(processed, total int) {
			calls = append(calls, [2]int{processed, total})
		},
	}

	result, err := NewBatchCoordinator(wb).Run(context.Background(), "Daten", basicMapping(), opts)
	require.NoError(t, err)
	assert.Equal(t, 10000, result.Summary.SuccessCount)

	require.GreaterOrEqual(t, len(calls), 100)
	for i := 1; i < len(calls); i++ {
		assert.Greater(t, calls[i][0], calls[i-1][0], "processed counts must strictly increase")
	}
	last := calls[len(calls)-1]
	assert.Equal(t, 10000, last[0])
	assert.Equal(t, 10000, last[1])
}

func TestRun_DuplicatesDroppedWithWarning(t *testing.T) {
	t.Parallel()

	wb := newFakeWorkbook()
	wb.addSheet("Daten", [][]string{
		{"Auftrag", "Titel", "Status", "Ort", "Anlage", "Start", "Fläche", "Pos"},
		{"A1", "Test", "Erstellt", "", "", "", "", "T1"},
		{"A1", "Anderer Titel", "Pausiert", "", "", "", "", "T1"},
		{"A2", "Test", "Erstellt", "", "", "", "", "T1"},
	})

	result, err := NewBatchCoordinator(wb).Run(context.Background(), "Daten", basicMapping(), Options{SkipInvalidRows: true})
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	// first occurrence wins
	assert.Equal(t, "Test", result.Records[0].ContractTitle)
	assert.Equal(t, "A2", result.Records[1].ContractID)

	assert.Equal(t, 1, result.Summary.DuplicateCount)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, model.IssueDuplicateRecord, result.Warnings[0].Kind)
	assert.Equal(t, 3, result.Warnings[0].RowIndex)
}

func TestRun_RowErrorsAreDataNotFailures(t *testing.T) {
	t.Parallel()

	wb := newFakeWorkbook()
	wb.addSheet("Daten", [][]string{
		{"Auftrag", "Titel", "Status"},
		{"A1", "Test", "Erstellt"},
		{"A2", "Test", ""},
		{"A3", "Test", "Erstellt"},
	})

	result, err := NewBatchCoordinator(wb).Run(context.Background(), "Daten", basicMapping(), Options{SkipInvalidRows: true})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Summary.TotalRows)
	assert.Equal(t, 2, result.Summary.SuccessCount)
	assert.Equal(t, 1, result.Summary.ErrorCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].RowIndex)
	assert.Equal(t, model.IssueMissingRequiredField, result.Errors[0].Kind)
}

func TestRun_StopsAtFirstRowErrorWhenNotSkipping(t *testing.T) {
	t.Parallel()

	wb := newFakeWorkbook()
	wb.addSheet("Daten", [][]string{
		{"Auftrag", "Titel", "Status"},
		{"A1", "Test", "Erstellt"},
		{"A2", "Test", ""},
		{"A3", "Test", "Erstellt"},
	})

	result, err := NewBatchCoordinator(wb).Run(context.Background(), "Daten", basicMapping(), Options{})
	require.NoError(t, err)

	// row 4 is never reached
	assert.Equal(t, 1, result.Summary.SuccessCount)
	assert.Equal(t, 1, result.Summary.ErrorCount)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "A1", result.Records[0].ContractID)
}

func TestRun_BlankRowsSkippedSilently(t *testing.T) {
	t.Parallel()

	wb := newFakeWorkbook()
	wb.addSheet("Daten", [][]string{
		{"Auftrag", "Titel", "Status"},
		{"A1", "Test", "Erstellt"},
		{"", "", ""},
		{"A2", "Test", "Erstellt"},
	})

	result, err := NewBatchCoordinator(wb).Run(context.Background(), "Daten", basicMapping(), Options{SkipInvalidRows: true})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Summary.TotalRows)
	assert.Equal(t, 2, result.Summary.SuccessCount)
	assert.Equal(t, 0, result.Summary.ErrorCount)
	assert.Empty(t, result.Warnings)
}

func TestRun_MaxRowsTruncates(t *testing.T) {
	t.Parallel()

	rows := [][]string{{"Auftrag", "Titel", "Status"}}
	for i := 0; i < 50; i++ {
		rows = append(rows, []string{fmt.Sprintf("A%d", i), "Test", "Erstellt"})
	}
	wb := newFakeWorkbook()
	wb.addSheet("Daten", rows)

	result, err := NewBatchCoordinator(wb).Run(context.Background(), "Daten", basicMapping(), Options{SkipInvalidRows: true, MaxRows: 10})
	require.NoError(t, err)

	assert.Equal(t, 10, result.Summary.TotalRows)
	assert.Equal(t, 10, result.Summary.SuccessCount)
}

func TestRun_UnreadableSheetIsStructural(t *testing.T) {
	t.Parallel()

	wb := newFakeWorkbook()
	wb.addSheet("Daten", nil)
	wb.broken["Daten"] = true

	result, err := NewBatchCoordinator(wb).Run(context.Background(), "Daten", basicMapping(), Options{SkipInvalidRows: true})
	require.Error(t, err)

	var serr *StructuralError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "Daten", serr.Sheet)

	// the result still carries the failure as data for callers that want it
	require.NotNil(t, result)
	assert.Empty(t, result.Records)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, model.IssueStructuralError, result.Errors[0].Kind)
}

func TestRun_SheetWithoutHeaderIsStructural(t *testing.T) {
	t.Parallel()

	wb := newFakeWorkbook()
	wb.addSheet("Leer", [][]string{})

	_, err := NewBatchCoordinator(wb).Run(context.Background(), "Leer", basicMapping(), Options{})
	require.Error(t, err)

	var serr *StructuralError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "Leer", serr.Sheet)
}

func TestRun_CancellationStopsTheRun(t *testing.T) {
	t.Parallel()

	rows := [][]string{{"Auftrag", "Titel", "Status"}}
	for i := 0; i < 1000; i++ {
		rows = append(rows, []string{fmt.Sprintf("A%d", i), "Test", "Erstellt"})
	}
	wb := newFakeWorkbook()
	wb.addSheet("Daten", rows)

	ctx, cancel := context.WithCancel(context.Background())
	opts := Options{
		SkipInvalidRows: true,
		OnProgress: func(processed, total int) {
			if processed >= 200 {
				cancel()
			}
		},
	}

	result, err := NewBatchCoordinator(wb).Run(ctx, "Daten", basicMapping(), opts)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestRun_HeaderOnlySheetProducesEmptyResult(t *testing.T) {
	t.Parallel()

	wb := newFakeWorkbook()
	wb.addSheet("Daten", [][]string{{"Auftrag", "Titel", "Status"}})

	var called bool
	result, err := NewBatchCoordinator(wb).Run(context.Background(), "Daten", basicMapping(), Options{
		OnProgress: func(processed, total int) { called = true },
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Summary.TotalRows)
	assert.Empty(t, result.Records)
	assert.False(t, called, "no progress for an empty data range")
}
