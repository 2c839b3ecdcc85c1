package pipeline

import (
	"fmt"

	"kontrakt/internal/model"
)

// ColumnMapper matches discovered columns against the canonical field
// dictionary. The result is a suggestion; callers may override individual
// bindings before extraction and overrides are taken verbatim.
type ColumnMapper struct {
	rules []PatternRule
}

// NewColumnMapper creates a mapper over the built-in pattern dictionary.
func NewColumnMapper() *ColumnMapper {
	return NewColumnMapperWithTable(DefaultPatternTable())
}

// NewColumnMapperWithTable creates a mapper over a caller-supplied dictionary.
func NewColumnMapperWithTable(table PatternTable) *ColumnMapper {
	return &ColumnMapper{rules: CompileRules(table)}
}

// Suggest produces a scored field-to-column mapping for one discovered sheet.
// Fields claim columns greedily in canonical field order; a tie between two
// columns with the same score favors the column encountered first.
func (m *ColumnMapper) Suggest(sheet model.SheetDescriptor) model.MappingSuggestion {
	normalized := make([]string, len(sheet.Columns))
	for i, col := range sheet.Columns {
		normalized[i] = NormalizeHeader(col.Header)
	}

	claimed := make(map[int]bool)
	mappings := make([]model.FieldMapping, 0, len(model.FieldCatalog()))

	var confidenceSum float64
	var assigned int

	for _, spec := range model.FieldCatalog() {
		mapping := model.FieldMapping{
			Field:    spec.Field,
			Type:     spec.Type,
			Required: spec.Required,
		}

		bestCol := -1
		bestScore := 0.0
		for colIdx := range sheet.Columns {
			if claimed[colIdx] {
				continue
			}
			score := m.scoreColumn(spec.Field, normalized[colIdx])
			if score > bestScore {
				bestScore = score
				bestCol = colIdx
			}
		}

		if bestCol >= 0 {
			claimed[bestCol] = true
			mapping.SourceColumn = sheet.Columns[bestCol].Letter
			mapping.Confidence = bestScore
			mapping.DetectedHeader = sheet.Columns[bestCol].Header
			confidenceSum += bestScore
			assigned++
		}

		mappings = append(mappings, mapping)
	}

	suggestion := model.MappingSuggestion{
		SheetName: sheet.Name,
		Mappings:  mappings,
	}

	for colIdx, col := range sheet.Columns {
		if !claimed[colIdx] && col.Header != "" {
			suggestion.UnmappedColumns = append(suggestion.UnmappedColumns, col.Letter)
		}
	}

	if assigned > 0 {
		suggestion.AverageConfidence = confidenceSum / float64(assigned)
	}
	suggestion.Bucket = model.BucketConfidence(suggestion.AverageConfidence)
	suggestion.Suggestions = m.advise(suggestion)

	return suggestion
}

// scoreColumn best score of any of the field's rules against one header.
func (m *ColumnMapper) scoreColumn(field model.CanonicalField, normalizedHeader string) float64 {
	best := 0.0
	for _, rule := range m.rules {
		if rule.Field != field {
			continue
		}
		if score := rule.Score(normalizedHeader); score > best {
			best = score
			if best == 1.0 {
				break
			}
		}
	}
	return best
}

// advise produces the advisory hints attached to a suggestion.
func (m *ColumnMapper) advise(s model.MappingSuggestion) []string {
	var out []string

	for _, mapping := range s.Mappings {
		if mapping.Required && !mapping.IsMapped() {
			out = append(out, fmt.Sprintf("required field %q has no matching column; bind it manually before import", mapping.Field))
		}
	}
	if s.AverageConfidence < 1.0 && s.AverageConfidence > 0 {
		out = append(out, fmt.Sprintf("average mapping confidence is %.2f; review detected headers before import", s.AverageConfidence))
	}
	if len(s.UnmappedColumns) > 3 {
		out = append(out, fmt.Sprintf("%d columns could not be mapped; the sheet may use an unknown header language", len(s.UnmappedColumns)))
	}

	return out
}
