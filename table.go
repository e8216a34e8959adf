package mochow

import (
	"context"
	"net/http"

	"github.com/hupe1980/mochow/model"
)

// Table is a handle on a table. All row, search and index operations go
// through it. A Table is safe for concurrent use.
type Table struct {
	client   *Client
	database string
	name     string
}

// Database returns the name of the owning database.
func (t *Table) Database() string {
	return t.database
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

type rowsRequest struct {
	Database string      `json:"database"`
	Table    string      `json:"table"`
	Rows     []model.Row `json:"rows"`
}

// Insert adds rows. Rows whose primary key already exists are rejected
// with ServerErrCodePrimaryKeyDuplicated.
func (t *Table) Insert(ctx context.Context, rows []model.Row, optFns ...CallOption) (*model.AffectedResponse, error) {
	if len(rows) == 0 {
		return nil, NewClientError("rows are empty")
	}
	body := rowsRequest{Database: t.database, Table: t.name, Rows: rows}

	var resp model.AffectedResponse
	if err := t.client.send(ctx, "insert", http.MethodPost, pathRow,
		map[string]string{"insert": ""}, body, &resp, optFns); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Upsert adds rows, replacing any existing row with the same primary key.
func (t *Table) Upsert(ctx context.Context, rows []model.Row, optFns ...CallOption) (*model.AffectedResponse, error) {
	if len(rows) == 0 {
		return nil, NewClientError("rows are empty")
	}
	body := rowsRequest{Database: t.database, Table: t.name, Rows: rows}

	var resp model.AffectedResponse
	if err := t.client.send(ctx, "upsert", http.MethodPost, pathRow,
		map[string]string{"upsert": ""}, body, &resp, optFns); err != nil {
		return nil, err
	}
	return &resp, nil
}

// QueryArgs selects a single row by primary key.
type QueryArgs struct {
	PrimaryKey   map[string]any
	PartitionKey map[string]any // required when it differs from the primary key
	Projections  []string
	// RetrieveVector includes vector fields in the result.
	RetrieveVector  bool
	ReadConsistency model.ReadConsistency
}

type queryRequest struct {
	Database        string                `json:"database"`
	Table           string                `json:"table"`
	PrimaryKey      map[string]any        `json:"primaryKey"`
	PartitionKey    map[string]any        `json:"partitionKey,omitempty"`
	Projections     []string              `json:"projections,omitempty"`
	RetrieveVector  bool                  `json:"retrieveVector"`
	ReadConsistency model.ReadConsistency `json:"readConsistency,omitempty"`
}

// Query fetches one row by primary key.
func (t *Table) Query(ctx context.Context, args *QueryArgs, optFns ...CallOption) (*model.QueryResponse, error) {
	if args == nil || len(args.PrimaryKey) == 0 {
		return nil, NewClientError("primary key is empty")
	}
	body := queryRequest{
		Database:        t.database,
		Table:           t.name,
		PrimaryKey:      args.PrimaryKey,
		PartitionKey:    args.PartitionKey,
		Projections:     args.Projections,
		RetrieveVector:  args.RetrieveVector,
		ReadConsistency: args.ReadConsistency,
	}

	var resp model.QueryResponse
	if err := t.client.send(ctx, "query", http.MethodPost, pathRow,
		map[string]string{"query": ""}, body, &resp, optFns); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BatchQueryArgs selects multiple rows by their keys in one call.
type BatchQueryArgs struct {
	Keys            []model.BatchQueryKey
	Projections     []string
	RetrieveVector  bool
	ReadConsistency model.ReadConsistency
}

type batchQueryRequest struct {
	Database        string                `json:"database"`
	Table           string                `json:"table"`
	Keys            []model.BatchQueryKey `json:"keys"`
	Projections     []string              `json:"projections,omitempty"`
	RetrieveVector  bool                  `json:"retrieveVector"`
	ReadConsistency model.ReadConsistency `json:"readConsistency,omitempty"`
}

// BatchQuery fetches multiple rows by primary key in one call.
func (t *Table) BatchQuery(ctx context.Context, args *BatchQueryArgs, optFns ...CallOption) (*model.BatchQueryResponse, error) {
	if args == nil || len(args.Keys) == 0 {
		return nil, NewClientError("keys are empty")
	}
	body := batchQueryRequest{
		Database:        t.database,
		Table:           t.name,
		Keys:            args.Keys,
		Projections:     args.Projections,
		RetrieveVector:  args.RetrieveVector,
		ReadConsistency: args.ReadConsistency,
	}

	var resp model.BatchQueryResponse
	if err := t.client.send(ctx, "batchQuery", http.MethodPost, pathRow,
		map[string]string{"batchQuery": ""}, body, &resp, optFns); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SelectArgs scans rows matching a filter, page by page.
type SelectArgs struct {
	Filter string
	// Marker resumes a scan from the position returned by the previous
	// page. Nil starts from the beginning.
	Marker          map[string]any
	Limit           int
	Projections     []string
	ReadConsistency model.ReadConsistency
}

type selectRequest struct {
	Database        string                `json:"database"`
	Table           string                `json:"table"`
	Filter          string                `json:"filter,omitempty"`
	Marker          map[string]any        `json:"marker,omitempty"`
	Limit           int                   `json:"limit,omitempty"`
	Projections     []string              `json:"projections,omitempty"`
	ReadConsistency model.ReadConsistency `json:"readConsistency,omitempty"`
}

// Select scans one page of rows. When the response is truncated, pass
// its Marker into the next call to continue.
func (t *Table) Select(ctx context.Context, args *SelectArgs, optFns ...CallOption) (*model.SelectResponse, error) {
	if args == nil {
		args = &SelectArgs{}
	}
	body := selectRequest{
		Database:        t.database,
		Table:           t.name,
		Filter:          args.Filter,
		Marker:          args.Marker,
		Limit:           args.Limit,
		Projections:     args.Projections,
		ReadConsistency: args.ReadConsistency,
	}

	var resp model.SelectResponse
	if err := t.client.send(ctx, "select", http.MethodPost, pathRow,
		map[string]string{"select": ""}, body, &resp, optFns); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateArgs assigns new values to scalar fields of one row.
type UpdateArgs struct {
	PrimaryKey   map[string]any
	PartitionKey map[string]any
	// Update maps field names to their new values. Primary key and
	// vector fields cannot be updated.
	Update map[string]any
}

type updateRequest struct {
	Database     string         `json:"database"`
	Table        string         `json:"table"`
	PrimaryKey   map[string]any `json:"primaryKey"`
	PartitionKey map[string]any `json:"partitionKey,omitempty"`
	Update       map[string]any `json:"update"`
}

// Update overwrites scalar fields of an existing row.
func (t *Table) Update(ctx context.Context, args *UpdateArgs, optFns ...CallOption) error {
	if args == nil || len(args.PrimaryKey) == 0 {
		return NewClientError("primary key is empty")
	}
	if len(args.Update) == 0 {
		return NewClientError("update fields are empty")
	}
	body := updateRequest{
		Database:     t.database,
		Table:        t.name,
		PrimaryKey:   args.PrimaryKey,
		PartitionKey: args.PartitionKey,
		Update:       args.Update,
	}
	return t.client.send(ctx, "update", http.MethodPost, pathRow,
		map[string]string{"update": ""}, body, nil, optFns)
}

// DeleteArgs removes rows either by primary key or by filter, never both.
type DeleteArgs struct {
	PrimaryKey   map[string]any
	PartitionKey map[string]any
	Filter       string
}

type deleteRequest struct {
	Database     string         `json:"database"`
	Table        string         `json:"table"`
	PrimaryKey   map[string]any `json:"primaryKey,omitempty"`
	PartitionKey map[string]any `json:"partitionKey,omitempty"`
	Filter       string         `json:"filter,omitempty"`
}

// Delete removes rows by primary key or by filter expression.
func (t *Table) Delete(ctx context.Context, args *DeleteArgs, optFns ...CallOption) error {
	if args == nil || (len(args.PrimaryKey) == 0 && args.Filter == "") {
		return NewClientError("either primary key or filter is required")
	}
	if len(args.PrimaryKey) > 0 && args.Filter != "" {
		return NewClientError("primary key and filter are mutually exclusive")
	}
	body := deleteRequest{
		Database:     t.database,
		Table:        t.name,
		PrimaryKey:   args.PrimaryKey,
		PartitionKey: args.PartitionKey,
		Filter:       args.Filter,
	}
	return t.client.send(ctx, "delete", http.MethodPost, pathRow,
		map[string]string{"delete": ""}, body, nil, optFns)
}

// VectorSearch runs an approximate nearest neighbor search with a single
// query vector, either top-k or range bounded. Batch requests must go
// through VectorBatchSearch.
func (t *Table) VectorSearch(ctx context.Context, req model.VectorSearchRequest, optFns ...CallOption) (*model.SearchResponse, error) {
	if req == nil {
		return nil, NewClientError("search request is nil")
	}
	if req.RequestType() != model.RequestTypeSearch {
		return nil, NewClientError("batch requests must use VectorBatchSearch")
	}

	var resp model.SearchResponse
	if err := t.search(ctx, req, &resp, optFns); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VectorBatchSearch runs one search per query vector in a single call.
func (t *Table) VectorBatchSearch(ctx context.Context, req *model.VectorBatchSearchRequest, optFns ...CallOption) (*model.BatchSearchResponse, error) {
	if req == nil {
		return nil, NewClientError("search request is nil")
	}

	var resp model.BatchSearchResponse
	if err := t.search(ctx, req, &resp, optFns); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BM25Search runs a lexical relevance search over an inverted index.
func (t *Table) BM25Search(ctx context.Context, req *model.BM25SearchRequest, optFns ...CallOption) (*model.SearchResponse, error) {
	if req == nil {
		return nil, NewClientError("search request is nil")
	}

	var resp model.SearchResponse
	if err := t.search(ctx, req, &resp, optFns); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HybridSearch combines a vector search and a BM25 search with relative
// weights into one ranked result. The vector branch may be a batch
// request carrying one vector per query.
func (t *Table) HybridSearch(ctx context.Context, req *model.HybridSearchRequest, optFns ...CallOption) (*model.SearchResponse, error) {
	if req == nil {
		return nil, NewClientError("search request is nil")
	}

	var resp model.SearchResponse
	if err := t.search(ctx, req, &resp, optFns); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (t *Table) search(ctx context.Context, req model.SearchRequest, out any, optFns []CallOption) error {
	fields, err := req.SearchFields()
	if err != nil {
		return err
	}
	body := make(map[string]any, len(fields)+5)
	for k, v := range fields {
		body[k] = v
	}
	for k, v := range req.CommonFields() {
		body[k] = v
	}
	body["database"] = t.database
	body["table"] = t.name

	requestType := req.RequestType()
	return t.client.send(ctx, requestType, http.MethodPost, pathRow,
		map[string]string{requestType: ""}, body, out, optFns)
}

type addFieldsRequest struct {
	Database string        `json:"database"`
	Table    string        `json:"table"`
	Schema   *model.Schema `json:"schema"`
}

// AddFields appends nullable scalar fields to the table schema.
func (t *Table) AddFields(ctx context.Context, fields []model.Field, optFns ...CallOption) error {
	if len(fields) == 0 {
		return NewClientError("fields are empty")
	}
	body := addFieldsRequest{
		Database: t.database,
		Table:    t.name,
		Schema:   &model.Schema{Fields: fields},
	}
	return t.client.send(ctx, "addField", http.MethodPost, pathTable,
		map[string]string{"addField": ""}, body, nil, optFns)
}

type createIndexesRequest struct {
	Database string        `json:"database"`
	Table    string        `json:"table"`
	Indexes  []model.Index `json:"indexes"`
}

// CreateIndexes builds additional indexes on an existing table. Vector
// index builds run asynchronously; poll DescribeIndex for the state.
func (t *Table) CreateIndexes(ctx context.Context, indexes []model.Index, optFns ...CallOption) error {
	if len(indexes) == 0 {
		return NewClientError("indexes are empty")
	}
	body := createIndexesRequest{Database: t.database, Table: t.name, Indexes: indexes}
	return t.client.send(ctx, "createIndex", http.MethodPost, pathIndex,
		map[string]string{"create": ""}, body, nil, optFns)
}

// ModifyIndexArgs switches the auto-build setting of a vector index.
type ModifyIndexArgs struct {
	IndexName       string
	AutoBuild       bool
	AutoBuildPolicy *model.AutoBuildPolicy // required when AutoBuild is true
}

type modifyIndexRequest struct {
	Database string `json:"database"`
	Table    string `json:"table"`
	Index    struct {
		IndexName       string                 `json:"indexName"`
		AutoBuild       bool                   `json:"autoBuild"`
		AutoBuildPolicy *model.AutoBuildPolicy `json:"autoBuildPolicy,omitempty"`
	} `json:"index"`
}

// ModifyIndex updates the auto-build policy of a vector index.
func (t *Table) ModifyIndex(ctx context.Context, args *ModifyIndexArgs, optFns ...CallOption) error {
	if args == nil || args.IndexName == "" {
		return NewClientError("index name is empty")
	}
	if args.AutoBuild && args.AutoBuildPolicy == nil {
		return NewClientError("auto build policy is required when auto build is enabled")
	}
	body := modifyIndexRequest{Database: t.database, Table: t.name}
	body.Index.IndexName = args.IndexName
	body.Index.AutoBuild = args.AutoBuild
	body.Index.AutoBuildPolicy = args.AutoBuildPolicy
	return t.client.send(ctx, "modifyIndex", http.MethodPost, pathIndex,
		map[string]string{"modify": ""}, body, nil, optFns)
}

// DropIndex deletes an index.
func (t *Table) DropIndex(ctx context.Context, indexName string, optFns ...CallOption) error {
	if indexName == "" {
		return NewClientError("index name is empty")
	}
	params := map[string]string{
		"database":  t.database,
		"table":     t.name,
		"indexName": indexName,
	}
	return t.client.send(ctx, "dropIndex", http.MethodDelete, pathIndex,
		params, nil, nil, optFns)
}

type indexNameRequest struct {
	Database  string `json:"database"`
	Table     string `json:"table"`
	IndexName string `json:"indexName"`
}

// RebuildIndex triggers a full rebuild of a vector index so far
// unindexed rows become searchable. The rebuild runs asynchronously.
func (t *Table) RebuildIndex(ctx context.Context, indexName string, optFns ...CallOption) error {
	if indexName == "" {
		return NewClientError("index name is empty")
	}
	body := indexNameRequest{Database: t.database, Table: t.name, IndexName: indexName}
	return t.client.send(ctx, "rebuildIndex", http.MethodPost, pathIndex,
		map[string]string{"rebuild": ""}, body, nil, optFns)
}

// DescribeIndex returns the description of an index, including the
// build state of vector indexes.
func (t *Table) DescribeIndex(ctx context.Context, indexName string, optFns ...CallOption) (*model.IndexDescription, error) {
	if indexName == "" {
		return nil, NewClientError("index name is empty")
	}
	body := indexNameRequest{Database: t.database, Table: t.name, IndexName: indexName}

	var resp model.DescribeIndexResponse
	if err := t.client.send(ctx, "descIndex", http.MethodPost, pathIndex,
		map[string]string{"desc": ""}, body, &resp, optFns); err != nil {
		return nil, err
	}
	if resp.Index == nil {
		return nil, NewClientError("describe index response has no index")
	}
	return resp.Index, nil
}

type statsRequest struct {
	Database string `json:"database"`
	Table    string `json:"table"`
}

// Stats returns row count and storage size of the table.
func (t *Table) Stats(ctx context.Context, optFns ...CallOption) (*model.StatsResponse, error) {
	body := statsRequest{Database: t.database, Table: t.name}

	var resp model.StatsResponse
	if err := t.client.send(ctx, "stats", http.MethodPost, pathTable,
		map[string]string{"stats": ""}, body, &resp, optFns); err != nil {
		return nil, err
	}
	return &resp, nil
}
