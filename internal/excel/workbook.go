// Package excel adapts an excelize workbook to the pipeline's Workbook
// interface. This is the only package that knows the spreadsheet codec.
package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Workbook an opened xlsx file exposed read-only to the pipeline.
type Workbook struct {
	file     *excelize.File
	fileName string
}

// Open opens a workbook from disk.
func Open(path string) (*Workbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{file: file, fileName: path}, nil
}

// OpenReader opens a workbook from a stream, e.g. an upload body.
func OpenReader(r io.Reader, fileName string) (*Workbook, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{file: file, fileName: fileName}, nil
}

// FileName the name the workbook was opened under.
func (w *Workbook) FileName() string {
	return w.fileName
}

// SheetNames lists sheets in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Rows returns the full sheet row-major, header row included.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	return w.file.GetRows(sheet)
}

// Dimension returns the declared cell range of the sheet.
func (w *Workbook) Dimension(sheet string) (string, error) {
	return w.file.GetSheetDimension(sheet)
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}
