package models

import "time"

// TableKind names one of the MEDS source tables.
type TableKind string

const (
	TableDatasetMetadata TableKind = "dataset_metadata"
	TableData            TableKind = "data"
	TableCodes           TableKind = "codes"
	TableSplits          TableKind = "subject_splits"
	TableLabels          TableKind = "labels"
)

// DataRow is one row of a MEDS data shard: a single measurement about a subject.
// Pointer fields are optional columns; nil means the value is absent.
type DataRow struct {
	SubjectID    *int64     `parquet:"subject_id,optional" json:"subject_id,omitempty"`
	Time         *time.Time `parquet:"time,optional" json:"time,omitempty"`
	Code         *string    `parquet:"code,optional" json:"code,omitempty"`
	NumericValue *float32   `parquet:"numeric_value,optional" json:"numeric_value,omitempty"`
	TextValue    *string    `parquet:"text_value,optional" json:"text_value,omitempty"`
}

// CodeRow is one row of metadata/codes.parquet.
type CodeRow struct {
	Code        *string  `parquet:"code,optional" json:"code,omitempty"`
	Description *string  `parquet:"description,optional" json:"description,omitempty"`
	ParentCodes []string `parquet:"parent_codes,list" json:"parent_codes,omitempty"`
}

// LabelRow is one row of a label shard. MEDS allows only one of the value
// columns per row, but that is not enforced when reading.
type LabelRow struct {
	SubjectID        *int64     `parquet:"subject_id,optional" json:"subject_id,omitempty"`
	PredictionTime   *time.Time `parquet:"prediction_time,optional" json:"prediction_time,omitempty"`
	Description      *string    `parquet:"description,optional" json:"description,omitempty"`
	BooleanValue     *bool      `parquet:"boolean_value,optional" json:"boolean_value,omitempty"`
	IntegerValue     *int64     `parquet:"integer_value,optional" json:"integer_value,omitempty"`
	FloatValue       *float64   `parquet:"float_value,optional" json:"float_value,omitempty"`
	CategoricalValue *string    `parquet:"categorical_value,optional" json:"categorical_value,omitempty"`
}

// ValueKinds returns how many value columns are set on the row.
func (r LabelRow) ValueKinds() int {
	n := 0
	if r.BooleanValue != nil {
		n++
	}
	if r.IntegerValue != nil {
		n++
	}
	if r.FloatValue != nil {
		n++
	}
	if r.CategoricalValue != nil {
		n++
	}
	return n
}

// SplitRow assigns a subject to a split.
type SplitRow struct {
	SubjectID *int64  `parquet:"subject_id,optional" json:"subject_id,omitempty"`
	Split     *string `parquet:"split,optional" json:"split,omitempty"`
}

// Ptr returns a pointer to v. Handy for building rows in code.
func Ptr[T any](v T) *T {
	return &v
}
