package model

// FieldType declared value type of a canonical field
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeNumber FieldType = "number"
	FieldTypeDate   FieldType = "date"
)

// CanonicalField closed set of business attributes an imported record may carry
type CanonicalField string

const (
	FieldContractID           CanonicalField = "contractId"
	FieldContractTitle        CanonicalField = "contractTitle"
	FieldTaskID               CanonicalField = "taskId"
	FieldTaskType             CanonicalField = "taskType"
	FieldDescription          CanonicalField = "description"
	FieldLocation             CanonicalField = "location"
	FieldRoomArea             CanonicalField = "roomArea"
	FieldEquipmentID          CanonicalField = "equipmentId"
	FieldEquipmentDescription CanonicalField = "equipmentDescription"
	FieldSerialNumber         CanonicalField = "serialNumber"
	FieldStatus               CanonicalField = "status"
	FieldWorkorderCode        CanonicalField = "workorderCode"
	FieldPlannedStart         CanonicalField = "plannedStart"
	FieldReportedBy           CanonicalField = "reportedBy"
	FieldReportedDate         CanonicalField = "reportedDate"
)

// FieldSpec per-field metadata driving mapping and extraction
type FieldSpec struct {
	Field    CanonicalField `json:"field"`
	Type     FieldType      `json:"type"`
	Required bool           `json:"required"`
}

// fieldCatalog order here is the greedy assignment order of the mapper
var fieldCatalog = []FieldSpec{
	{Field: FieldContractID, Type: FieldTypeString, Required: true},
	{Field: FieldContractTitle, Type: FieldTypeString, Required: true},
	{Field: FieldTaskID, Type: FieldTypeString},
	{Field: FieldTaskType, Type: FieldTypeString},
	{Field: FieldDescription, Type: FieldTypeString},
	{Field: FieldLocation, Type: FieldTypeString},
	{Field: FieldRoomArea, Type: FieldTypeNumber},
	{Field: FieldEquipmentID, Type: FieldTypeString},
	{Field: FieldEquipmentDescription, Type: FieldTypeString},
	{Field: FieldSerialNumber, Type: FieldTypeString},
	{Field: FieldStatus, Type: FieldTypeString, Required: true},
	{Field: FieldWorkorderCode, Type: FieldTypeString},
	{Field: FieldPlannedStart, Type: FieldTypeDate},
	{Field: FieldReportedBy, Type: FieldTypeString},
	{Field: FieldReportedDate, Type: FieldTypeDate},
}

// FieldCatalog returns a copy of the canonical field catalog in assignment order.
func FieldCatalog() []FieldSpec {
	out := make([]FieldSpec, len(fieldCatalog))
	copy(out, fieldCatalog)
	return out
}

// RequiredFields the fields a row must provide to yield a record
func RequiredFields() []CanonicalField {
	var out []CanonicalField
	for _, spec := range fieldCatalog {
		if spec.Required {
			out = append(out, spec.Field)
		}
	}
	return out
}

// LookupField resolves a canonical field name to its spec
func LookupField(name CanonicalField) (FieldSpec, bool) {
	for _, spec := range fieldCatalog {
		if spec.Field == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}
