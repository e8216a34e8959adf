package model

// Operation discriminators a search request maps to. They are sent as
// empty-valued query parameters, e.g. "?search".
const (
	RequestTypeSearch      = "search"
	RequestTypeBatchSearch = "batchSearch"
)

// Vector is a query vector representation attached to a search request.
type Vector interface {
	// Representation returns the value rendered into the "vectorFloats" field.
	Representation() any
}

// FloatVector is a dense float32 query vector.
type FloatVector []float32

// Representation returns the raw float slice.
func (v FloatVector) Representation() any { return []float32(v) }

// VectorSearchConfig carries the optional index-specific search parameters.
//
// Which parameters apply depends on the index algorithm:
//
//	HNSW/HNSWPQ  ef, pruning
//	PUCK         searchCoarseCount
//	FLAT         none
type VectorSearchConfig struct {
	Ef                int
	Pruning           *bool
	SearchCoarseCount int
}

func (c *VectorSearchConfig) params() map[string]any {
	params := map[string]any{}
	if c == nil {
		return params
	}
	if c.Ef > 0 {
		params["ef"] = c.Ef
	}
	if c.Pruning != nil {
		params["pruning"] = *c.Pruning
	}
	if c.SearchCoarseCount > 0 {
		params["searchCoarseCount"] = c.SearchCoarseCount
	}
	return params
}

// SearchCommonArgs carries the options shared by every search variant.
// They are rendered at the top level of the request body, next to the
// variant-specific blocks. In a hybrid search only the outer request's
// common args apply; those of the branch requests are ignored.
type SearchCommonArgs struct {
	// PartitionKey narrows the search to a single partition.
	PartitionKey map[string]any
	// Projections lists the fields to include in the result rows.
	Projections []string
	// ReadConsistency defaults to EVENTUAL.
	ReadConsistency ReadConsistency
}

// CommonFields renders the shared top-level body fields. The read
// consistency is always present.
func (a *SearchCommonArgs) CommonFields() map[string]any {
	fields := map[string]any{}
	if a.PartitionKey != nil {
		fields["partitionKey"] = a.PartitionKey
	}
	if a.Projections != nil {
		fields["projections"] = a.Projections
	}
	rc := a.ReadConsistency
	if rc == "" {
		rc = ReadConsistencyEventual
	}
	fields["readConsistency"] = rc
	return fields
}

// SearchRequest is the tagged union over all search variants. Each variant
// renders its own top-level wire fields and knows which operation
// discriminator it maps to.
type SearchRequest interface {
	// RequestType returns the operation discriminator of this variant.
	RequestType() string
	// SearchFields renders the variant-specific top-level body fields.
	SearchFields() (map[string]any, error)
	// CommonFields renders the shared top-level body fields.
	CommonFields() map[string]any
}

// VectorSearchRequest is the subset of search variants that carry query
// vectors: topk, range and batch.
type VectorSearchRequest interface {
	SearchRequest
	vectorSearch()
}

// VectorTopkSearchRequest finds the Limit nearest neighbors of one vector.
type VectorTopkSearchRequest struct {
	SearchCommonArgs

	VectorField string
	Vector      Vector
	Limit       int // defaults to 50
	Filter      string
	Config      *VectorSearchConfig
}

func (r *VectorTopkSearchRequest) vectorSearch() {}

// RequestType returns the operation discriminator of this variant.
func (r *VectorTopkSearchRequest) RequestType() string { return RequestTypeSearch }

// SearchFields renders the "anns" block.
func (r *VectorTopkSearchRequest) SearchFields() (map[string]any, error) {
	if r.Vector == nil {
		return nil, NewClientError("vector search request has no vector")
	}
	anns := map[string]any{
		"vectorField":  r.VectorField,
		"vectorFloats": r.Vector.Representation(),
	}
	if r.Filter != "" {
		anns["filter"] = r.Filter
	}
	params := r.Config.params()
	limit := r.Limit
	if limit <= 0 {
		limit = 50
	}
	params["limit"] = limit
	anns["params"] = params
	return map[string]any{"anns": anns}, nil
}

// VectorRangeSearchRequest finds neighbors within a distance range.
type VectorRangeSearchRequest struct {
	SearchCommonArgs

	VectorField  string
	Vector       Vector
	DistanceNear *float64
	DistanceFar  *float64
	Limit        int
	Filter       string
	Config       *VectorSearchConfig
}

func (r *VectorRangeSearchRequest) vectorSearch() {}

// RequestType returns the operation discriminator of this variant.
func (r *VectorRangeSearchRequest) RequestType() string { return RequestTypeSearch }

// SearchFields renders the "anns" block with distance bounds.
func (r *VectorRangeSearchRequest) SearchFields() (map[string]any, error) {
	if r.Vector == nil {
		return nil, NewClientError("vector search request has no vector")
	}
	anns := map[string]any{
		"vectorField":  r.VectorField,
		"vectorFloats": r.Vector.Representation(),
	}
	if r.Filter != "" {
		anns["filter"] = r.Filter
	}
	params := r.Config.params()
	if r.DistanceNear != nil {
		params["distanceNear"] = *r.DistanceNear
	}
	if r.DistanceFar != nil {
		params["distanceFar"] = *r.DistanceFar
	}
	if r.Limit > 0 {
		params["limit"] = r.Limit
	}
	if len(params) > 0 {
		anns["params"] = params
	}
	return map[string]any{"anns": anns}, nil
}

// VectorBatchSearchRequest runs one search per query vector in a single call.
type VectorBatchSearchRequest struct {
	SearchCommonArgs

	VectorField  string
	Vectors      []Vector
	DistanceNear *float64
	DistanceFar  *float64
	Limit        int
	Filter       string
	Config       *VectorSearchConfig
}

func (r *VectorBatchSearchRequest) vectorSearch() {}

// RequestType returns the operation discriminator of this variant.
func (r *VectorBatchSearchRequest) RequestType() string { return RequestTypeBatchSearch }

// SearchFields renders the "anns" block with one entry per query vector.
func (r *VectorBatchSearchRequest) SearchFields() (map[string]any, error) {
	if len(r.Vectors) == 0 {
		return nil, NewClientError("batch search request has no vectors")
	}
	vectors := make([]any, 0, len(r.Vectors))
	for _, v := range r.Vectors {
		vectors = append(vectors, v.Representation())
	}
	anns := map[string]any{
		"vectorField":  r.VectorField,
		"vectorFloats": vectors,
	}
	if r.Filter != "" {
		anns["filter"] = r.Filter
	}
	params := r.Config.params()
	if r.DistanceNear != nil {
		params["distanceNear"] = *r.DistanceNear
	}
	if r.DistanceFar != nil {
		params["distanceFar"] = *r.DistanceFar
	}
	if r.Limit > 0 {
		params["limit"] = r.Limit
	}
	if len(params) > 0 {
		anns["params"] = params
	}
	return map[string]any{"anns": anns}, nil
}

// BM25SearchRequest ranks rows by BM25 text relevance against an inverted index.
type BM25SearchRequest struct {
	SearchCommonArgs

	IndexName  string
	SearchText string
	Limit      int
	Filter     string
}

// RequestType returns the operation discriminator of this variant.
func (r *BM25SearchRequest) RequestType() string { return RequestTypeSearch }

// SearchFields renders the "BM25SearchParams" block.
func (r *BM25SearchRequest) SearchFields() (map[string]any, error) {
	res := map[string]any{
		"BM25SearchParams": map[string]any{
			"indexName":  r.IndexName,
			"searchText": r.SearchText,
		},
	}
	if r.Limit > 0 {
		res["limit"] = r.Limit
	}
	if r.Filter != "" {
		res["filter"] = r.Filter
	}
	return res, nil
}

// HybridSearchRequest combines vector similarity and BM25 text relevance
// with per-branch weights.
//
// Limit and Filter are global settings applying to both branches: when set,
// they override any branch-level value of the same name, which is removed
// from the branch sub-objects.
type HybridSearchRequest struct {
	SearchCommonArgs

	VectorRequest VectorSearchRequest
	BM25Request   *BM25SearchRequest
	VectorWeight  float64
	BM25Weight    float64
	Limit         int
	Filter        string
}

// RequestType returns the hybrid discriminator, which is "search" even
// when the vector branch is a batch request.
func (r *HybridSearchRequest) RequestType() string { return RequestTypeSearch }

// SearchFields renders both branch blocks merged, with weights injected and
// the global limit/filter applied.
func (r *HybridSearchRequest) SearchFields() (map[string]any, error) {
	if r.VectorRequest == nil || r.BM25Request == nil {
		return nil, NewClientError("hybrid search request requires both a vector and a BM25 branch")
	}

	res, err := r.VectorRequest.SearchFields()
	if err != nil {
		return nil, err
	}
	anns := res["anns"].(map[string]any)
	anns["weight"] = r.VectorWeight

	bm25Fields, err := r.BM25Request.SearchFields()
	if err != nil {
		return nil, err
	}
	bm25Fields["BM25SearchParams"].(map[string]any)["weight"] = r.BM25Weight
	for k, v := range bm25Fields {
		res[k] = v
	}

	if r.Limit > 0 {
		res["limit"] = r.Limit
		if params, ok := anns["params"].(map[string]any); ok {
			delete(params, "limit")
			if len(params) == 0 {
				delete(anns, "params")
			}
		}
	}
	if r.Filter != "" {
		res["filter"] = r.Filter
		delete(anns, "filter")
	}
	return res, nil
}
