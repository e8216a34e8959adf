package model

// MetricType is the distance metric of a vector index.
type MetricType string

const (
	MetricTypeL2     MetricType = "L2"
	MetricTypeIP     MetricType = "IP"
	MetricTypeCosine MetricType = "COSINE"
)

// IndexType identifies an index variant on the wire.
type IndexType string

const (
	// Vector index types.
	IndexTypeHNSW   IndexType = "HNSW"
	IndexTypeFLAT   IndexType = "FLAT"
	IndexTypePUCK   IndexType = "PUCK"
	IndexTypeHNSWPQ IndexType = "HNSWPQ"

	// Scalar index types.
	IndexTypeSecondary IndexType = "SECONDARY"

	// Text index types.
	IndexTypeInverted IndexType = "INVERTED"
)

// FieldType is the declared type of a table column.
type FieldType string

const (
	FieldTypeBool        FieldType = "BOOL"
	FieldTypeInt8        FieldType = "INT8"
	FieldTypeUint8       FieldType = "UINT8"
	FieldTypeInt16       FieldType = "INT16"
	FieldTypeUint16      FieldType = "UINT16"
	FieldTypeInt32       FieldType = "INT32"
	FieldTypeUint32      FieldType = "UINT32"
	FieldTypeInt64       FieldType = "INT64"
	FieldTypeUint64      FieldType = "UINT64"
	FieldTypeFloat       FieldType = "FLOAT"
	FieldTypeDouble      FieldType = "DOUBLE"
	FieldTypeDate        FieldType = "DATE"
	FieldTypeDatetime    FieldType = "DATETIME"
	FieldTypeTimestamp   FieldType = "TIMESTAMP"
	FieldTypeString      FieldType = "STRING"
	FieldTypeBinary      FieldType = "BINARY"
	FieldTypeUUID        FieldType = "UUID"
	FieldTypeText        FieldType = "TEXT"
	FieldTypeTextGBK     FieldType = "TEXT_GBK"
	FieldTypeTextGB18030 FieldType = "TEXT_GB18030"

	FieldTypeFloatVector FieldType = "FLOAT_VECTOR"
)

// PartitionType is the partitioning strategy of a table.
type PartitionType string

const (
	PartitionTypeHash PartitionType = "HASH"
)

// TableState is the server-driven lifecycle state of a table.
// Transitions are CREATING -> NORMAL -> DELETING; the client only polls.
type TableState string

const (
	TableStateCreating TableState = "CREATING"
	TableStateNormal   TableState = "NORMAL"
	TableStateDeleting TableState = "DELETING"
)

// IndexState is the server-driven lifecycle state of an index.
// Transitions are BUILDING -> NORMAL; the client only polls.
type IndexState string

const (
	IndexStateBuilding IndexState = "BUILDING"
	IndexStateNormal   IndexState = "NORMAL"
)

// ReadConsistency selects the consistency level of read operations.
type ReadConsistency string

const (
	ReadConsistencyEventual ReadConsistency = "EVENTUAL"
	ReadConsistencyStrong   ReadConsistency = "STRONG"
)

// AutoBuildPolicyType selects when the server rebuilds a vector index automatically.
type AutoBuildPolicyType string

const (
	AutoBuildPolicyTiming            AutoBuildPolicyType = "TIMING"
	AutoBuildPolicyPeriodical        AutoBuildPolicyType = "PERIODICAL"
	AutoBuildPolicyRowCountIncrement AutoBuildPolicyType = "ROW_COUNT_INCREMENT"
)

// InvertedIndexAnalyzer selects the tokenizer of an inverted (text) index.
type InvertedIndexAnalyzer string

const (
	AnalyzerEnglish InvertedIndexAnalyzer = "ENGLISH_ANALYZER"
	AnalyzerChinese InvertedIndexAnalyzer = "CHINESE_ANALYZER"
	AnalyzerDefault InvertedIndexAnalyzer = "DEFAULT_ANALYZER"
)

// InvertedIndexParseMode selects the tokenization granularity of an inverted index.
type InvertedIndexParseMode string

const (
	ParseModeCoarse InvertedIndexParseMode = "COARSE_MODE"
	ParseModeFine   InvertedIndexParseMode = "FINE_MODE"
)

// DocumentLayout hints at the structure of a source document.
type DocumentLayout string

const (
	LayoutGeneral DocumentLayout = "GENERAL"
	LayoutPaper   DocumentLayout = "PAPER"
	LayoutQA      DocumentLayout = "QA"
	LayoutLaw     DocumentLayout = "LAW"
)

// Lang is the language of a source document.
type Lang string

const (
	LangZH Lang = "ZH"
	LangEN Lang = "EN"
)
