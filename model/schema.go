package model

import (
	"encoding/json"
)

// Field describes one column of a table schema.
type Field struct {
	FieldName     string    `json:"fieldName"`
	FieldType     FieldType `json:"fieldType"`
	PrimaryKey    bool      `json:"primaryKey,omitempty"`
	PartitionKey  bool      `json:"partitionKey,omitempty"`
	AutoIncrement bool      `json:"autoIncrement,omitempty"`
	NotNull       bool      `json:"notNull,omitempty"`
	Dimension     int       `json:"dimension,omitempty"`
}

// Partition describes the partition spec of a table.
type Partition struct {
	PartitionType PartitionType `json:"partitionType"`
	PartitionNum  int           `json:"partitionNum"`
}

// NewHashPartition creates a HASH partition spec with the given partition count.
func NewHashPartition(partitionNum int) *Partition {
	return &Partition{PartitionType: PartitionTypeHash, PartitionNum: partitionNum}
}

// Index is the tagged union over the index variants of a table schema.
// Concrete implementations are VectorIndex, SecondaryIndex and InvertedIndex.
type Index interface {
	// Name returns the index name.
	Name() string
	// Type returns the wire tag identifying the variant.
	Type() IndexType

	json.Marshaler
}

// VectorIndexParams carries the algorithm-specific build parameters of a
// vector index. Implementations are HNSWParams, HNSWPQParams and PUCKParams;
// FLAT has none.
type VectorIndexParams interface {
	vectorIndexParams()
}

// HNSWParams are the build parameters of an HNSW vector index.
type HNSWParams struct {
	M              int `json:"M"`
	EfConstruction int `json:"efConstruction"`
}

func (*HNSWParams) vectorIndexParams() {}

// HNSWPQParams are the build parameters of an HNSWPQ vector index.
type HNSWPQParams struct {
	M              int     `json:"M"`
	EfConstruction int     `json:"efConstruction"`
	NSQ            int     `json:"NSQ"`
	SampleRate     float64 `json:"sampleRate"`
}

func (*HNSWPQParams) vectorIndexParams() {}

// PUCKParams are the build parameters of a PUCK vector index.
type PUCKParams struct {
	CoarseClusterCount int `json:"coarseClusterCount"`
	FineClusterCount   int `json:"fineClusterCount"`
}

func (*PUCKParams) vectorIndexParams() {}

// AutoBuildPolicy controls when the server rebuilds a vector index
// automatically. Only the fields matching PolicyType are consulted.
type AutoBuildPolicy struct {
	PolicyType             AutoBuildPolicyType `json:"policyType"`
	Timing                 string              `json:"timing,omitempty"`
	PeriodInSecond         uint64              `json:"periodInSecond,omitempty"`
	RowCountIncrement      uint64              `json:"rowCountIncrement,omitempty"`
	RowCountIncrementRatio float64             `json:"rowCountIncrementRatio,omitempty"`
}

// DefaultAutoBuildPolicy rebuilds after one million new rows.
func DefaultAutoBuildPolicy() *AutoBuildPolicy {
	return &AutoBuildPolicy{
		PolicyType:        AutoBuildPolicyRowCountIncrement,
		RowCountIncrement: 1000000,
	}
}

// VectorIndex is an approximate-nearest-neighbor index over a FLOAT_VECTOR field.
type VectorIndex struct {
	IndexName       string
	IndexType       IndexType // HNSW, HNSWPQ, PUCK or FLAT
	Field           string
	MetricType      MetricType
	Params          VectorIndexParams // nil for FLAT
	AutoBuild       bool
	AutoBuildPolicy *AutoBuildPolicy // optional

	// State is populated on describe only.
	State IndexState
}

// Name returns the index name.
func (i *VectorIndex) Name() string { return i.IndexName }

// Type returns the wire tag of this index variant.
func (i *VectorIndex) Type() IndexType { return i.IndexType }

// MarshalJSON renders the exact wire shape of a vector index.
func (i *VectorIndex) MarshalJSON() ([]byte, error) {
	type wire struct {
		IndexName       string            `json:"indexName"`
		IndexType       IndexType         `json:"indexType"`
		Field           string            `json:"field"`
		MetricType      MetricType        `json:"metricType"`
		Params          VectorIndexParams `json:"params,omitempty"`
		AutoBuild       bool              `json:"autoBuild"`
		AutoBuildPolicy *AutoBuildPolicy  `json:"autoBuildPolicy,omitempty"`
		State           IndexState        `json:"state,omitempty"`
	}
	return json.Marshal(wire{
		IndexName:       i.IndexName,
		IndexType:       i.IndexType,
		Field:           i.Field,
		MetricType:      i.MetricType,
		Params:          i.Params,
		AutoBuild:       i.AutoBuild,
		AutoBuildPolicy: i.AutoBuildPolicy,
		State:           i.State,
	})
}

// SecondaryIndex is a scalar secondary index over one field.
type SecondaryIndex struct {
	IndexName string
	Field     string
}

// Name returns the index name.
func (i *SecondaryIndex) Name() string { return i.IndexName }

// Type returns the wire tag of this index variant.
func (i *SecondaryIndex) Type() IndexType { return IndexTypeSecondary }

// MarshalJSON renders the exact wire shape of a secondary index.
func (i *SecondaryIndex) MarshalJSON() ([]byte, error) {
	type wire struct {
		IndexName string    `json:"indexName"`
		IndexType IndexType `json:"indexType"`
		Field     string    `json:"field"`
	}
	return json.Marshal(wire{IndexName: i.IndexName, IndexType: IndexTypeSecondary, Field: i.Field})
}

// InvertedIndexParams configure the text analysis of an inverted index.
type InvertedIndexParams struct {
	Analyzer  InvertedIndexAnalyzer  `json:"analyzer"`
	ParseMode InvertedIndexParseMode `json:"parseMode"`
}

// InvertedIndex is a text index over one or more fields, used by BM25 search.
type InvertedIndex struct {
	IndexName string
	Fields    []string
	Params    *InvertedIndexParams
}

// Name returns the index name.
func (i *InvertedIndex) Name() string { return i.IndexName }

// Type returns the wire tag of this index variant.
func (i *InvertedIndex) Type() IndexType { return IndexTypeInverted }

// MarshalJSON renders the exact wire shape of an inverted index.
func (i *InvertedIndex) MarshalJSON() ([]byte, error) {
	type wire struct {
		IndexName string               `json:"indexName"`
		IndexType IndexType            `json:"indexType"`
		Fields    []string             `json:"fields"`
		Params    *InvertedIndexParams `json:"params,omitempty"`
	}
	return json.Marshal(wire{IndexName: i.IndexName, IndexType: IndexTypeInverted, Fields: i.Fields, Params: i.Params})
}

// indexEnvelope is the union of all index wire fields, used for decoding.
type indexEnvelope struct {
	IndexName       string           `json:"indexName"`
	IndexType       IndexType        `json:"indexType"`
	Field           string           `json:"field"`
	Fields          []string         `json:"fields"`
	MetricType      MetricType       `json:"metricType"`
	Params          json.RawMessage  `json:"params"`
	AutoBuild       bool             `json:"autoBuild"`
	AutoBuildPolicy *AutoBuildPolicy `json:"autoBuildPolicy"`
	State           IndexState       `json:"state"`
}

// decode reconstructs the typed index variant from the server-reported tag.
// An unknown tag is a hard client error.
func (e *indexEnvelope) decode() (Index, error) {
	switch e.IndexType {
	case IndexTypeHNSW, IndexTypeHNSWPQ, IndexTypePUCK, IndexTypeFLAT:
		idx := &VectorIndex{
			IndexName:       e.IndexName,
			IndexType:       e.IndexType,
			Field:           e.Field,
			MetricType:      e.MetricType,
			AutoBuild:       e.AutoBuild,
			AutoBuildPolicy: e.AutoBuildPolicy,
			State:           e.State,
		}
		if len(e.Params) > 0 {
			var params VectorIndexParams
			switch e.IndexType {
			case IndexTypeHNSW:
				params = &HNSWParams{}
			case IndexTypeHNSWPQ:
				params = &HNSWPQParams{}
			case IndexTypePUCK:
				params = &PUCKParams{}
			case IndexTypeFLAT:
				params = nil
			}
			if params != nil {
				if err := json.Unmarshal(e.Params, params); err != nil {
					return nil, NewClientErrorf("invalid %s index params: %v", e.IndexType, err)
				}
				idx.Params = params
			}
		}
		return idx, nil
	case IndexTypeSecondary:
		return &SecondaryIndex{IndexName: e.IndexName, Field: e.Field}, nil
	case IndexTypeInverted:
		idx := &InvertedIndex{IndexName: e.IndexName, Fields: e.Fields}
		if len(e.Params) > 0 {
			params := &InvertedIndexParams{}
			if err := json.Unmarshal(e.Params, params); err != nil {
				return nil, NewClientErrorf("invalid inverted index params: %v", err)
			}
			idx.Params = params
		}
		return idx, nil
	default:
		return nil, NewClientErrorf("not supported index type: %s", e.IndexType)
	}
}

// Schema is the full declared shape of a table: exactly the fields and
// indexes listed here are sent; the client performs no validation beyond
// presence checks.
type Schema struct {
	Fields  []Field `json:"fields"`
	Indexes []Index `json:"indexes"`
}

// UnmarshalJSON decodes a schema, dispatching each index on its
// server-reported type tag.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var wire struct {
		Fields  []Field         `json:"fields"`
		Indexes []indexEnvelope `json:"indexes"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	s.Fields = wire.Fields
	s.Indexes = nil
	for i := range wire.Indexes {
		idx, err := wire.Indexes[i].decode()
		if err != nil {
			return err
		}
		s.Indexes = append(s.Indexes, idx)
	}
	return nil
}

// DecodeIndex reconstructs a typed index from its raw wire form.
func DecodeIndex(data []byte) (Index, error) {
	var e indexEnvelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return e.decode()
}
