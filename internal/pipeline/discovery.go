package pipeline

import (
	"regexp"
	"strings"

	"kontrakt/internal/model"
)

// maxSampleValues rows sampled per column for type inference.
const maxSampleValues = 5

// dateHeaderHints header substrings that force a date column.
var dateHeaderHints = []string{"datum", "start", "ende", "zeit", "termin", "date"}

// numberHeaderHints header substrings that force a number column.
var numberHeaderHints = []string{"betrag", "preis", "menge", "anzahl", "flaeche", "fläche", "amount", "qm"}

var whitespaceRe = regexp.MustCompile(`\s+`)

// DiscoverWorkbook enumerates every sheet of the workbook and describes its
// columns. A sheet whose range is absent or unreadable yields an empty
// descriptor instead of failing the workbook; a workbook with zero sheets is
// a structural error.
func DiscoverWorkbook(wb Workbook) ([]model.SheetDescriptor, error) {
	names := wb.SheetNames()
	if len(names) == 0 {
		return nil, NewStructuralError("", "workbook contains no sheets", ErrNoSheets)
	}

	descriptors := make([]model.SheetDescriptor, 0, len(names))
	for idx, name := range names {
		descriptors = append(descriptors, discoverSheet(wb, name, idx))
	}
	return descriptors, nil
}

// discoverSheet describes one sheet; never fails.
func discoverSheet(wb Workbook, name string, index int) model.SheetDescriptor {
	desc := model.SheetDescriptor{
		Name:       name,
		SheetIndex: index,
		Columns:    []model.ColumnDescriptor{},
	}

	if dim, err := wb.Dimension(name); err != nil || dim == "" {
		desc.IsEmpty = true
		return desc
	}

	rows, err := wb.Rows(name)
	if err != nil || len(rows) == 0 {
		desc.IsEmpty = true
		return desc
	}

	desc.RowCount = len(rows)
	headers := rows[0]

	for col := 0; col < len(headers); col++ {
		header := strings.TrimSpace(headers[col])

		var samples []string
		for r := 1; r < len(rows) && len(samples) < maxSampleValues; r++ {
			if col >= len(rows[r]) {
				continue
			}
			v := strings.TrimSpace(rows[r][col])
			if v != "" {
				samples = append(samples, v)
			}
		}

		desc.Columns = append(desc.Columns, model.ColumnDescriptor{
			Index:        col,
			Letter:       ColumnLetter(col),
			Header:       header,
			InferredType: InferColumnType(header, samples),
			SampleValues: samples,
		})
	}

	return desc
}

// InferColumnType infers the value type of a column. Header keyword hints take
// priority; otherwise the non-empty samples vote, ties defaulting to string.
func InferColumnType(header string, samples []string) model.FieldType {
	h := NormalizeHeader(header)
	for _, hint := range dateHeaderHints {
		if strings.Contains(h, hint) {
			return model.FieldTypeDate
		}
	}
	for _, hint := range numberHeaderHints {
		if strings.Contains(h, hint) {
			return model.FieldTypeNumber
		}
	}

	var dates, numbers, strs int
	for _, s := range samples {
		if isValidDate(s) {
			dates++
		} else if _, ok := parseNumber(s); ok {
			numbers++
		} else {
			strs++
		}
	}

	if dates > numbers && dates > strs {
		return model.FieldTypeDate
	}
	if numbers > dates && numbers > strs {
		return model.FieldTypeNumber
	}
	return model.FieldTypeString
}

// NormalizeHeader lowercases a header and strips spaces, hyphens, underscores
// and embedded line breaks so pattern matching is layout-insensitive.
func NormalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.ReplaceAll(h, "\n", "")
	h = strings.ReplaceAll(h, "\r", "")
	h = strings.ReplaceAll(h, "\t", "")
	h = whitespaceRe.ReplaceAllString(h, "")
	h = strings.ReplaceAll(h, "-", "")
	h = strings.ReplaceAll(h, "_", "")
	return h
}

// ColumnLetter converts a 0-based column index to its spreadsheet letter.
func ColumnLetter(index int) string {
	letter := ""
	for index >= 0 {
		letter = string(rune('A'+index%26)) + letter
		index = index/26 - 1
	}
	return letter
}

// ColumnIndex converts a spreadsheet column letter back to a 0-based index.
// Returns -1 for input that is not a column letter.
func ColumnIndex(letter string) int {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter == "" {
		return -1
	}
	idx := 0
	for _, r := range letter {
		if r < 'A' || r > 'Z' {
			return -1
		}
		idx = idx*26 + int(r-'A') + 1
	}
	return idx - 1
}
