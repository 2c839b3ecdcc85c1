package pipeline

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"kontrakt/internal/model"
)

// PatternTable header synonym patterns keyed by canonical field. Entries are
// matched against normalized headers; they may contain regex syntax.
type PatternTable map[model.CanonicalField][]string

// defaultPatternTable built-in German+English header dictionary.
var defaultPatternTable = PatternTable{
	model.FieldContractID:           {"auftragsnr", "auftragsnummer", "auftrag", "vertragsnr", "contractid", "contract"},
	model.FieldContractTitle:        {"auftragstitel", "titel", "title", "auftragsbezeichnung", "contracttitle"},
	model.FieldTaskID:               {"aufgabennr", "aufgabe", "taskid", "task", `pos(ition)?(snr)?`},
	model.FieldTaskType:             {"aufgabentyp", "aufgabenart", "tasktype", `leistungs?art`},
	model.FieldDescription:          {"beschreibung", "description", "taetigkeit", "tätigkeit", "leistungstext"},
	model.FieldLocation:             {"standort", "einsatzort", "location", "gebaeude", "gebäude", "objekt"},
	model.FieldRoomArea:             {"raumflaeche", "raumfläche", "flaeche", "fläche", "roomarea", `qm|m2`},
	model.FieldEquipmentID:          {"anlagennr", "anlagennummer", "anlage", "equipmentid", `(mess)?geraetenr`},
	model.FieldEquipmentDescription: {"anlagenbezeichnung", "geraetebezeichnung", "equipmentdescription", `anlagen?text`},
	model.FieldSerialNumber:         {"seriennr", "seriennummer", "serialnumber", "serial", `sn\.?`},
	model.FieldStatus:               {"status", "bearbeitungsstatus", "zustand", "state"},
	model.FieldWorkorderCode:        {"arbeitsauftrag", "workorder", "auftragscode", `wo(nr)?\.?`},
	model.FieldPlannedStart:         {"geplanterstart", "starttermin", "plannedstart", "plantermin", `(start|beginn)datum`},
	model.FieldReportedBy:           {"gemeldetvon", "reportedby", "melder", "bearbeiter", "techniker"},
	model.FieldReportedDate:         {"meldedatum", "gemeldetam", "reporteddate", `(melde|erfassungs)datum`},
}

// DefaultPatternTable returns a deep copy of the built-in dictionary.
func DefaultPatternTable() PatternTable {
	out := make(PatternTable, len(defaultPatternTable))
	for field, patterns := range defaultPatternTable {
		out[field] = append([]string(nil), patterns...)
	}
	return out
}

// LoadPatternTable reads extra header patterns from a YAML file (canonical
// field name to synonym list) and appends them to the built-in dictionary.
// Unknown field names are rejected so a locale file cannot silently misbind.
func LoadPatternTable(path string) (PatternTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern file: %w", err)
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse pattern file: %w", err)
	}

	table := DefaultPatternTable()
	for name, patterns := range raw {
		field := model.CanonicalField(name)
		if _, ok := model.LookupField(field); !ok {
			return nil, fmt.Errorf("pattern file references unknown field %q", name)
		}
		table[field] = append(table[field], patterns...)
	}
	return table, nil
}

// PatternRule one compiled header pattern for a canonical field. Literal holds
// the non-wildcard portion of the pattern; a header containing it verbatim
// scores 1.0, a regex-only match scores 0.8.
type PatternRule struct {
	Field   model.CanonicalField
	Literal string
	Regex   *regexp.Regexp
}

// regexMetaRe characters stripped when deriving the literal portion.
var regexMetaRe = regexp.MustCompile(`[\\^$.|?*+()\[\]{}]`)

// CompileRules compiles a pattern table into rules in canonical field order.
// Patterns that fail to compile as regex are kept as literal-only rules.
func CompileRules(table PatternTable) []PatternRule {
	var rules []PatternRule
	for _, spec := range model.FieldCatalog() {
		for _, pattern := range table[spec.Field] {
			rule := PatternRule{
				Field:   spec.Field,
				Literal: regexMetaRe.ReplaceAllString(pattern, ""),
			}
			if re, err := regexp.Compile(pattern); err == nil {
				rule.Regex = re
			}
			rules = append(rules, rule)
		}
	}
	return rules
}

// Score matches the rule against a normalized header. 1.0 for a verbatim
// literal containment, 0.8 for a regex-only match, 0 otherwise.
func (r PatternRule) Score(normalizedHeader string) float64 {
	if normalizedHeader == "" {
		return 0
	}
	if r.Literal != "" && strings.Contains(normalizedHeader, r.Literal) {
		return 1.0
	}
	if r.Regex != nil && r.Regex.MatchString(normalizedHeader) {
		return 0.8
	}
	return 0
}
