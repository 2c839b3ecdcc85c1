package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kontrakt/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "kontrakt.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(id, contractID string, row int) *model.ContractRecord {
	area := 42.5
	return &model.ContractRecord{
		ID:            id,
		ContractID:    contractID,
		ContractTitle: "Wartung Heizung",
		TaskID:        "T1",
		Location:      "Halle 3",
		RoomArea:      &area,
		Status:        "Erstellt",
		PlannedStart:  "2023-03-15",
		DedupKey:      contractID + "_task_T1",
		IsComplete:    true,
		Provenance: model.Provenance{
			Sheet:          "Aufträge",
			RowIndex:       row,
			SourceFileName: "export.xlsx",
			ImportedAt:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestBatchInsertAndListRecords(t *testing.T) {
	s := newTestStore(t)

	logID, err := s.CreateImportLog("export.xlsx", "Aufträge")
	require.NoError(t, err)

	records := []*model.ContractRecord{
		testRecord("id-1", "A1", 2),
		testRecord("id-2", "A2", 3),
	}
	require.NoError(t, s.BatchInsertRecords(logID, records))

	n, err := s.CountRecords()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := s.ListRecords(10, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	r := got[0]
	assert.Equal(t, "A1", r.ContractID)
	assert.Equal(t, "Wartung Heizung", r.ContractTitle)
	require.NotNil(t, r.RoomArea)
	assert.InDelta(t, 42.5, *r.RoomArea, 1e-9)
	assert.Equal(t, "A1_task_T1", r.DedupKey)
	assert.True(t, r.IsComplete)
	assert.Equal(t, "Aufträge", r.Provenance.Sheet)
	assert.Equal(t, 2, r.Provenance.RowIndex)
}

func TestBatchInsertEmptySliceIsNoop(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.BatchInsertRecords(1, nil))

	n, err := s.CountRecords()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestNullableRoomAreaRoundTrip(t *testing.T) {
	s := newTestStore(t)

	logID, err := s.CreateImportLog("export.xlsx", "Aufträge")
	require.NoError(t, err)

	r := testRecord("id-1", "A1", 2)
	r.RoomArea = nil
	require.NoError(t, s.BatchInsertRecords(logID, []*model.ContractRecord{r}))

	got, err := s.ListRecords(10, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].RoomArea)
}

func TestImportLogLifecycle(t *testing.T) {
	s := newTestStore(t)

	logID, err := s.CreateImportLog("export.xlsx", "Aufträge")
	require.NoError(t, err)

	summary := model.ImportSummary{
		TotalRows:      100,
		SuccessCount:   95,
		ErrorCount:     2,
		WarningCount:   5,
		DuplicateCount: 3,
		Duration:       250 * time.Millisecond,
	}
	require.NoError(t, s.FinishImportLog(logID, summary, "completed", ""))

	logs, err := s.ListImportLogs(10)
	require.NoError(t, err)
	require.Len(t, logs, 1)

	l := logs[0]
	assert.Equal(t, logID, l.ID)
	assert.Equal(t, "export.xlsx", l.Filename)
	assert.Equal(t, "Aufträge", l.Sheet)
	assert.Equal(t, 100, l.TotalRows)
	assert.Equal(t, 95, l.SuccessCount)
	assert.Equal(t, 2, l.ErrorCount)
	assert.Equal(t, 5, l.WarningCount)
	assert.Equal(t, 3, l.DuplicateCount)
	assert.Equal(t, int64(250), l.DurationMs)
	assert.Equal(t, "completed", l.Status)
	assert.NotNil(t, l.CompletedAt)
}

func TestImportLogsNewestFirst(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateImportLog("a.xlsx", "S1")
	require.NoError(t, err)
	second, err := s.CreateImportLog("b.xlsx", "S2")
	require.NoError(t, err)

	logs, err := s.ListImportLogs(10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, second, logs[0].ID)
	assert.Equal(t, first, logs[1].ID)
}

func TestDeleteRecordsByImport(t *testing.T) {
	s := newTestStore(t)

	keepID, err := s.CreateImportLog("keep.xlsx", "S")
	require.NoError(t, err)
	dropID, err := s.CreateImportLog("drop.xlsx", "S")
	require.NoError(t, err)

	require.NoError(t, s.BatchInsertRecords(keepID, []*model.ContractRecord{testRecord("id-1", "A1", 2)}))
	require.NoError(t, s.BatchInsertRecords(dropID, []*model.ContractRecord{testRecord("id-2", "A2", 2)}))

	require.NoError(t, s.DeleteRecordsByImport(dropID))

	n, err := s.CountRecords()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
