package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromExcelSerial_KnownDate(t *testing.T) {
	t.Parallel()

	// serial 45000 under the 1899-12-30 epoch is 2023-03-15
	got := FromExcelSerial(45000)
	assert.Equal(t, "2023-03-15", got.Format("2006-01-02"))

	// epoch itself
	assert.Equal(t, "1899-12-30", FromExcelSerial(0).Format("2006-01-02"))
}

func TestExcelSerialRoundTrip(t *testing.T) {
	t.Parallel()

	date := FromExcelSerial(45000)
	serial := ToExcelSerial(date)
	assert.InDelta(t, 45000, serial, 1e-9)
	assert.True(t, FromExcelSerial(serial).Equal(date))
}

func TestNormalizeDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"2024-06-01", "2024-06-01", true},
		{"01/06/2024", "2024-06-01", true},
		{"01.06.2024", "2024-06-01", true},
		{"45000", "2023-03-15", true},
		{"45000.5", "2023-03-15", true},
		{"2024-06-01 10:30:00", "2024-06-01", true},
		{"", "", false},
		{"next tuesday", "", false},
		{"0", "", false},
		{"150000", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeDate(tc.raw)
		require.Equal(t, tc.ok, ok, "raw=%q", tc.raw)
		assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
	}
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{" 1234.5 ", 1234.5, true},
		{"1.234,56", 1234.56, true},
		{"1,234.56", 1234.56, true},
		{"3,5", 3.5, true},
		{"12 500", 12500, true},
		{"99,5%", 99.5, true},
		{"120,00 €", 120, true},
		{"-7", -7, true},
		{"", 0, false},
		{"k.A.", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseNumber(tc.raw)
		require.Equal(t, tc.ok, ok, "raw=%q", tc.raw)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 1e-9, "raw=%q", tc.raw)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	t.Parallel()

	assert.True(t, isValidDate("45000"))
	assert.True(t, isValidDate("2024-01-31"))
	assert.True(t, isValidDate("31.01.2024"))
	assert.False(t, isValidDate("150000"))
	assert.False(t, isValidDate("-1"))
	assert.False(t, isValidDate("hello"))
	assert.False(t, isValidDate(""))
}

func TestFromExcelSerial_IsUTC(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.UTC, FromExcelSerial(45000).Location())
}
