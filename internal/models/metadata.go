package models

// DatasetMetadata mirrors metadata/dataset.json. Every field is optional.
type DatasetMetadata struct {
	DatasetName    *string `json:"dataset_name,omitempty"`
	DatasetVersion *string `json:"dataset_version,omitempty"`
	ETLName        *string `json:"etl_name,omitempty"`
	ETLVersion     *string `json:"etl_version,omitempty"`
	ETLNotes       *string `json:"etl_notes,omitempty"`
	MEDSVersion    *string `json:"meds_version,omitempty"`
	ProtocolNotes  *string `json:"protocol_notes,omitempty"`
	CreatedAt      *string `json:"created_at,omitempty"`
	License        *string `json:"license,omitempty"`
	LocationURI    *string `json:"location_uri,omitempty"`
	DescriptionURI *string `json:"description_uri,omitempty"`

	SiteIDColumns                  []string `json:"site_id_columns,omitempty"`
	SubjectIDColumns               []string `json:"subject_id_columns,omitempty"`
	TableNames                     []string `json:"table_names,omitempty"`
	RawSourceIDColumns             []string `json:"raw_source_id_columns,omitempty"`
	CodeModifierColumns            []string `json:"code_modifier_columns,omitempty"`
	AdditionalValueModalityColumns []string `json:"additional_value_modality_columns,omitempty"`
	OtherExtensionColumns          []string `json:"other_extension_columns,omitempty"`
}

// Tables bundles every table of one MEDS dataset. A nil slice or nil
// Metadata means the source table was absent.
type Tables struct {
	Metadata *DatasetMetadata
	Data     []DataRow
	Codes    []CodeRow
	Splits   []SplitRow
	Labels   []LabelRow
}
