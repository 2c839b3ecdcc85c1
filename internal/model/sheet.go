package model

// ColumnDescriptor one column of a discovered sheet, derived purely from cell content
type ColumnDescriptor struct {
	Index        int       `json:"index"`
	Letter       string    `json:"letter"`
	Header       string    `json:"header"`
	InferredType FieldType `json:"inferredType"`
	SampleValues []string  `json:"sampleValues"`
}

// SheetDescriptor discovery result for a single sheet
type SheetDescriptor struct {
	Name       string             `json:"name"`
	SheetIndex int                `json:"sheetIndex"`
	RowCount   int                `json:"rowCount"`
	IsEmpty    bool               `json:"isEmpty"`
	Columns    []ColumnDescriptor `json:"columns"`
}
