package model

// CommonResponse is the envelope every response body shares.
type CommonResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// ListDatabasesResponse is the body of a database list call.
type ListDatabasesResponse struct {
	CommonResponse
	Databases []string `json:"databases"`
}

// ListTablesResponse is the body of a table list call.
type ListTablesResponse struct {
	CommonResponse
	Tables []string `json:"tables"`
}

// TableDescription is the server-reported state of a table. CreateTime,
// State and Aliases are populated by the server and decode-only.
type TableDescription struct {
	Database           string     `json:"database"`
	Table              string     `json:"table"`
	CreateTime         string     `json:"createTime,omitempty"`
	Description        string     `json:"description"`
	Replication        int        `json:"replication"`
	Partition          *Partition `json:"partition"`
	EnableDynamicField bool       `json:"enableDynamicField"`
	Schema             *Schema    `json:"schema"`
	State              TableState `json:"state,omitempty"`
	Aliases            []string   `json:"aliases,omitempty"`
}

// DescribeTableResponse is the body of a table describe call.
type DescribeTableResponse struct {
	CommonResponse
	Table *TableDescription `json:"table"`
}

// DescribeIndexResponse is the body of an index describe call.
type DescribeIndexResponse struct {
	CommonResponse
	Index *IndexDescription `json:"index"`
}

// IndexDescription is the raw index wire object of a describe call; use
// Decode to reconstruct the typed variant.
type IndexDescription indexEnvelope

// Decode reconstructs the typed index variant from the server-reported tag.
func (d *IndexDescription) Decode() (Index, error) {
	return (*indexEnvelope)(d).decode()
}

// AffectedResponse is the body of a row mutation call.
type AffectedResponse struct {
	CommonResponse
	AffectedCount int `json:"affectedCount"`
}

// QueryResponse is the body of a single-row query call.
type QueryResponse struct {
	CommonResponse
	Row Row `json:"row"`
}

// BatchQueryResponse is the body of a batch query call.
type BatchQueryResponse struct {
	CommonResponse
	Rows []Row `json:"rows"`
}

// SearchResultRow is one scored row of a search response. Distance is set
// for vector search, Score for BM25 and hybrid search.
type SearchResultRow struct {
	Row      Row     `json:"row"`
	Distance float64 `json:"distance,omitempty"`
	Score    float64 `json:"score,omitempty"`
}

// SearchResponse is the body of a search call.
type SearchResponse struct {
	CommonResponse
	Rows []SearchResultRow `json:"rows"`
}

// BatchSearchResultGroup is the result set of one query vector within a
// batch search.
type BatchSearchResultGroup struct {
	SearchVectorFloats []float32         `json:"searchVectorFloats,omitempty"`
	Rows               []SearchResultRow `json:"rows"`
}

// BatchSearchResponse is the body of a batch search call.
type BatchSearchResponse struct {
	CommonResponse
	Results []BatchSearchResultGroup `json:"results"`
}

// SelectResponse is the body of a select call. When IsTruncated is set,
// pass Marker to the next call to continue the scan.
type SelectResponse struct {
	CommonResponse
	IsTruncated bool           `json:"isTruncated"`
	Marker      map[string]any `json:"nextMarker,omitempty"`
	Rows        []Row          `json:"rows"`
}

// StatsResponse is the body of a table stats call.
type StatsResponse struct {
	CommonResponse
	RowCount         int64 `json:"rowCount"`
	MemorySizeInByte int64 `json:"memorySizeInByte"`
	DiskSizeInByte   int64 `json:"diskSizeInByte"`
}
