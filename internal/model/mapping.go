package model

// FieldMapping resolved binding of one canonical field to a source column
type FieldMapping struct {
	Field          CanonicalField `json:"field"`
	SourceColumn   string         `json:"sourceColumn"` // column letter, "" when unmapped
	Confidence     float64        `json:"confidence"`
	DetectedHeader string         `json:"detectedHeader"`
	Type           FieldType      `json:"type"`
	Required       bool           `json:"required"`
}

// IsMapped reports whether the field was bound to a column
func (m FieldMapping) IsMapped() bool {
	return m.SourceColumn != ""
}

// ConfidenceBucket coarse quality label for a mapping suggestion
type ConfidenceBucket string

const (
	ConfidenceHigh   ConfidenceBucket = "high"
	ConfidenceMedium ConfidenceBucket = "medium"
	ConfidenceLow    ConfidenceBucket = "low"
)

// BucketConfidence buckets an average confidence: >0.8 high, >0.5 medium, else low
func BucketConfidence(avg float64) ConfidenceBucket {
	switch {
	case avg > 0.8:
		return ConfidenceHigh
	case avg > 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// MappingSuggestion mapper output for one sheet; advisory, the caller may
// override individual bindings before extraction runs
type MappingSuggestion struct {
	SheetName         string           `json:"sheetName"`
	Mappings          []FieldMapping   `json:"mappings"`
	UnmappedColumns   []string         `json:"unmappedColumns"`
	AverageConfidence float64          `json:"averageConfidence"`
	Bucket            ConfidenceBucket `json:"bucket"`
	Suggestions       []string         `json:"suggestions,omitempty"`
}
