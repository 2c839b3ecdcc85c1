package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldCatalog(t *testing.T) {
	t.Parallel()

	catalog := FieldCatalog()
	require.Len(t, catalog, 15)
	assert.Equal(t, FieldContractID, catalog[0].Field)

	// callers may not mutate the shared catalog through the copy
	catalog[0].Required = false
	assert.True(t, FieldCatalog()[0].Required)
}

func TestRequiredFields(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []CanonicalField{FieldContractID, FieldContractTitle, FieldStatus}, RequiredFields())
}

func TestLookupField(t *testing.T) {
	t.Parallel()

	spec, ok := LookupField(FieldRoomArea)
	require.True(t, ok)
	assert.Equal(t, FieldTypeNumber, spec.Type)
	assert.False(t, spec.Required)

	_, ok = LookupField("customerName")
	assert.False(t, ok)
}

func TestIsKnownStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []string{"Erstellt", "erstellt", " ERSTELLT ", "In Bearbeitung", "abgerechnet", "billed", "Cancelled"} {
		assert.True(t, IsKnownStatus(status), status)
	}
	for _, status := range []string{"", "Wird geprüft", "offen", "done"} {
		assert.False(t, IsKnownStatus(status), status)
	}
}

func TestImportSummaryMarshalsMilliseconds(t *testing.T) {
	t.Parallel()

	summary := ImportSummary{TotalRows: 10, SuccessCount: 9, Duration: 1500 * time.Millisecond}
	data, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"importDurationMs":1500`)
	assert.Contains(t, string(data), `"totalRows":10`)
}

func TestKnownStatusesIsACopy(t *testing.T) {
	t.Parallel()

	list := KnownStatuses()
	require.NotEmpty(t, list)
	list[0] = "mutiert"
	assert.Equal(t, "erstellt", KnownStatuses()[0])
}
