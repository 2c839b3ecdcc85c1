// Package pipeline implements the contract record import pipeline: schema
// discovery, column-to-field mapping, row extraction and normalization,
// validation and in-run deduplication over an already decoded workbook.
package pipeline

// Workbook read-only view of a decoded spreadsheet. The codec layer provides
// the implementation; the pipeline never touches the file format itself.
type Workbook interface {
	// SheetNames lists sheets in workbook order.
	SheetNames() []string
	// Rows returns the full sheet row-major, header row included.
	Rows(sheet string) ([][]string, error)
	// Dimension returns the declared cell range ("A1:Z999" style), "" when
	// the sheet has no declared range.
	Dimension(sheet string) (string, error)
}
