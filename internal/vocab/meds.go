package vocab

// MEDS classes.
const (
	ClassEvent           = Namespace + "Event"
	ClassMeasurement     = Namespace + "Measurement"
	ClassSubject         = Namespace + "Subject"
	ClassCode            = Namespace + "Code"
	ClassLabelSample     = Namespace + "LabelSample"
	ClassDatasetMetadata = Namespace + "DatasetMetadata"
)

// Split categories. A subject is assigned to exactly one.
const (
	TrainSplit   = Namespace + "trainSplit"
	TuningSplit  = Namespace + "tuningSplit"
	HeldOutSplit = Namespace + "heldOutSplit"
)

// Fact and subject predicates.
const (
	HasSubject    = Namespace + "hasSubject"
	SubjectID     = Namespace + "subjectId"
	HasCode       = Namespace + "hasCode"
	CodeString    = Namespace + "codeString"
	Time          = Namespace + "time"
	NumericValue  = Namespace + "numericValue"
	TextValue     = Namespace + "textValue"
	AssignedSplit = Namespace + "assignedSplit"
)

// Code predicates.
const (
	CodeDescription = Namespace + "codeDescription"
	ParentCode      = Namespace + "parentCode"
)

// Label predicates.
const (
	PredictionTime   = Namespace + "predictionTime"
	BooleanValue     = Namespace + "booleanValue"
	IntegerValue     = Namespace + "integerValue"
	FloatValue       = Namespace + "floatValue"
	CategoricalValue = Namespace + "categoricalValue"
)

// Dataset metadata predicates.
const (
	DatasetName                   = Namespace + "datasetName"
	DatasetVersion                = Namespace + "datasetVersion"
	ETLName                       = Namespace + "etlName"
	ETLVersion                    = Namespace + "etlVersion"
	ETLNotes                      = Namespace + "etlNotes"
	MEDSVersion                   = Namespace + "medsVersion"
	ProtocolNotes                 = Namespace + "protocolNotes"
	CreatedAt                     = Namespace + "createdAt"
	License                       = Namespace + "license"
	LocationURI                   = Namespace + "locationUri"
	DescriptionURI                = Namespace + "descriptionUri"
	SiteIDColumn                  = Namespace + "siteIdColumn"
	SubjectIDColumn               = Namespace + "subjectIdColumn"
	TableName                     = Namespace + "tableName"
	RawSourceIDColumn             = Namespace + "rawSourceIdColumn"
	CodeModifierColumn            = Namespace + "codeModifierColumn"
	AdditionalValueModalityColumn = Namespace + "additionalValueModalityColumn"
	OtherExtensionColumn          = Namespace + "otherExtensionColumn"
)

// Instance path segments under InstanceNamespace.
const (
	PathEvent        = "event/"
	PathMeasurement  = "measurement/"
	PathSubject      = "subject/"
	PathCode         = "code/"
	PathLabelSample  = "label_sample/"
	PathDataset      = "dataset_metadata/"
	PathDistribution = "distribution/"
	PathActivity     = "activity/"
	PathLicense      = "license/"
)
