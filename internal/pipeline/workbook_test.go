package pipeline

import "errors"

// fakeWorkbook in-memory Workbook used across the package tests.
type fakeWorkbook struct {
	order  []string
	sheets map[string][][]string
	noDim  map[string]bool
	broken map[string]bool
}

func newFakeWorkbook() *fakeWorkbook {
	return &fakeWorkbook{
		sheets: make(map[string][][]string),
		noDim:  make(map[string]bool),
		broken: make(map[string]bool),
	}
}

func (f *fakeWorkbook) addSheet(name string, rows [][]string) *fakeWorkbook {
	f.order = append(f.order, name)
	f.sheets[name] = rows
	return f
}

func (f *fakeWorkbook) SheetNames() []string {
	return f.order
}

func (f *fakeWorkbook) Rows(sheet string) ([][]string, error) {
	if f.broken[sheet] {
		return nil, errors.New("corrupt sheet data")
	}
	return f.sheets[sheet], nil
}

func (f *fakeWorkbook) Dimension(sheet string) (string, error) {
	if f.noDim[sheet] {
		return "", nil
	}
	if f.broken[sheet] {
		return "", errors.New("corrupt dimension")
	}
	rows := f.sheets[sheet]
	if len(rows) == 0 {
		return "", nil
	}
	return "A1:Z999", nil
}
