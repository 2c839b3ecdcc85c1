package pipeline

import (
	"strconv"
	"strings"
	"time"
)

// excelEpoch day zero of the Excel serial date encoding.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// canonicalDateLayout output form of every date the pipeline emits.
const canonicalDateLayout = "2006-01-02"

// dateLayouts string date forms accepted during normalization, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02.01.2006",
}

// fallbackDateLayouts generic forms tried after the documented ones.
var fallbackDateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"02.01.2006 15:04",
	"2006/01/02",
	"2.1.2006",
	"1/2/2006",
}

// FromExcelSerial converts an Excel serial day count to a UTC time.
func FromExcelSerial(serial float64) time.Time {
	return excelEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
}

// ToExcelSerial converts a UTC time back to an Excel serial day count.
func ToExcelSerial(t time.Time) float64 {
	return t.Sub(excelEpoch).Hours() / 24
}

// parseNumber lenient numeric coercion of a raw cell value. Handles thousands
// separators and the decimal comma of German exports, plus stray currency and
// percent symbols.
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "€", "")
	s = strings.ReplaceAll(s, "％", "%")
	s = strings.ReplaceAll(s, "%", "")

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		// the rightmost separator is the decimal mark
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.Replace(s, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseDateString attempts the documented string layouts in order, then the
// generic fallbacks.
func parseDateString(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeDate converts a raw cell value into the canonical YYYY-MM-DD form.
// Numeric values are treated as Excel serials, strings go through the layout
// list. Returns false when the value cannot be read as a date.
func NormalizeDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	if serial, ok := parseNumber(s); ok {
		if serial <= 0 || serial >= 100000 {
			return "", false
		}
		return FromExcelSerial(serial).Format(canonicalDateLayout), true
	}
	if t, ok := parseDateString(s); ok {
		return t.Format(canonicalDateLayout), true
	}
	return "", false
}

// isValidDate sample predicate used by type inference: an Excel serial in
// (0,100000) or one of the accepted string forms.
func isValidDate(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	if serial, ok := parseNumber(s); ok {
		return serial > 0 && serial < 100000
	}
	_, ok := parseDateString(s)
	return ok
}
