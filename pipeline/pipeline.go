// Package pipeline wires document processing, embedding and the table
// API into an ingestion and retrieval workflow: a document is recorded
// in a metadata table, split into chunks, embedded and inserted into a
// chunk table; searches embed the query text before hitting the service.
package pipeline

import (
	"context"

	"github.com/hupe1980/mochow"
	"github.com/hupe1980/mochow/embedder"
	"github.com/hupe1980/mochow/model"
	"github.com/hupe1980/mochow/processor"
)

// Table is the subset of table operations the pipeline needs. It is
// satisfied by *mochow.Table.
type Table interface {
	Insert(ctx context.Context, rows []model.Row, optFns ...mochow.CallOption) (*model.AffectedResponse, error)
	VectorSearch(ctx context.Context, req model.VectorSearchRequest, optFns ...mochow.CallOption) (*model.SearchResponse, error)
	VectorBatchSearch(ctx context.Context, req *model.VectorBatchSearchRequest, optFns ...mochow.CallOption) (*model.BatchSearchResponse, error)
	BM25Search(ctx context.Context, req *model.BM25SearchRequest, optFns ...mochow.CallOption) (*model.SearchResponse, error)
	HybridSearch(ctx context.Context, req *model.HybridSearchRequest, optFns ...mochow.CallOption) (*model.SearchResponse, error)
}

// DefaultInsertBatchSize is the number of chunk rows per insert call.
const DefaultInsertBatchSize = 100

// Options configures a Pipeline.
type Options struct {
	// DocMapping renames document attributes to metadata table column
	// names, e.g. {"doc_id": "id"}. Nil stores attributes under their
	// own name.
	DocMapping map[string]string
	// ChunkMapping renames chunk attributes to chunk table column names.
	ChunkMapping map[string]string
	// InsertBatchSize is the number of chunk rows per insert call. The
	// batching bounds request payload size; a failed batch is not
	// rolled back.
	InsertBatchSize int
}

// Pipeline ingests documents into a metadata and a chunk table and
// searches the chunk table with embedded query text.
type Pipeline struct {
	processor    processor.DocProcessor
	embedder     embedder.Embedder
	docMapping   map[string]string
	chunkMapping map[string]string
	batchSize    int
}

// New creates a pipeline from a document processor and an embedder.
func New(proc processor.DocProcessor, emb embedder.Embedder, optFns ...func(*Options)) *Pipeline {
	opts := Options{
		InsertBatchSize: DefaultInsertBatchSize,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.InsertBatchSize <= 0 {
		opts.InsertBatchSize = DefaultInsertBatchSize
	}
	return &Pipeline{
		processor:    proc,
		embedder:     emb,
		docMapping:   opts.DocMapping,
		chunkMapping: opts.ChunkMapping,
		batchSize:    opts.InsertBatchSize,
	}
}

// IngestDoc writes the document metadata row into metaTable, then
// splits the document into chunks, embeds them and inserts the chunk
// rows into chunkTable in batches. It returns the number of ingested
// chunks.
func (p *Pipeline) IngestDoc(ctx context.Context, metaTable, chunkTable Table, doc *model.Document) (int, error) {
	if metaTable == nil || chunkTable == nil {
		return 0, model.NewClientError("meta table and chunk table are required")
	}

	if _, err := metaTable.Insert(ctx, []model.Row{doc.ToRow(p.docMapping)}); err != nil {
		return 0, err
	}

	chunks, err := p.processor.Process(ctx, doc)
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, nil
	}
	if err := p.embedder.EmbedChunks(ctx, chunks); err != nil {
		return 0, err
	}

	for start := 0; start < len(chunks); start += p.batchSize {
		end := min(start+p.batchSize, len(chunks))
		rows := make([]model.Row, 0, end-start)
		for _, chunk := range chunks[start:end] {
			rows = append(rows, chunk.ToRow(p.chunkMapping))
		}
		if _, err := chunkTable.Insert(ctx, rows); err != nil {
			return start, err
		}
	}
	return len(chunks), nil
}

// validateVariant checks that the request variant matches the number of
// search contents: one content requires a topk or range request,
// several require a batch request.
func validateVariant(req model.VectorSearchRequest, contents int) error {
	switch req.(type) {
	case *model.VectorTopkSearchRequest, *model.VectorRangeSearchRequest:
		if contents != 1 {
			return model.NewClientError("a single-vector request requires exactly one search content")
		}
	case *model.VectorBatchSearchRequest:
		if contents < 2 {
			return model.NewClientError("a batch request requires multiple search contents")
		}
	default:
		return model.NewClientError("unsupported vector search request")
	}
	return nil
}

// attachVectors sets the embedded query vectors on the request.
func attachVectors(req model.VectorSearchRequest, vectors [][]float32) {
	switch r := req.(type) {
	case *model.VectorTopkSearchRequest:
		r.Vector = model.FloatVector(vectors[0])
	case *model.VectorRangeSearchRequest:
		r.Vector = model.FloatVector(vectors[0])
	case *model.VectorBatchSearchRequest:
		queryVectors := make([]model.Vector, len(vectors))
		for i, v := range vectors {
			queryVectors[i] = model.FloatVector(v)
		}
		r.Vectors = queryVectors
	}
}

// VectorSearch embeds the single search content, attaches the vector to
// the given topk or range request and runs the search. A mismatched
// request variant is rejected before anything is embedded or sent.
func (p *Pipeline) VectorSearch(ctx context.Context, table Table, contents []string, req model.VectorSearchRequest) (*model.SearchResponse, error) {
	if len(contents) == 0 {
		return nil, model.NewClientError("search contents are empty")
	}
	if err := validateVariant(req, len(contents)); err != nil {
		return nil, err
	}
	if _, ok := req.(*model.VectorBatchSearchRequest); ok {
		return nil, model.NewClientError("batch requests must use VectorBatchSearch")
	}

	vectors, err := p.embedder.EmbedTexts(ctx, contents)
	if err != nil {
		return nil, err
	}
	attachVectors(req, vectors)

	return table.VectorSearch(ctx, req)
}

// VectorBatchSearch embeds every search content, attaches the vectors
// to the batch request and runs one search per query vector.
func (p *Pipeline) VectorBatchSearch(ctx context.Context, table Table, contents []string, req *model.VectorBatchSearchRequest) (*model.BatchSearchResponse, error) {
	if len(contents) == 0 {
		return nil, model.NewClientError("search contents are empty")
	}
	if req == nil {
		return nil, model.NewClientError("search request is nil")
	}
	if err := validateVariant(req, len(contents)); err != nil {
		return nil, err
	}

	vectors, err := p.embedder.EmbedTexts(ctx, contents)
	if err != nil {
		return nil, err
	}
	attachVectors(req, vectors)

	return table.VectorBatchSearch(ctx, req)
}

// BM25Search runs a lexical search; no embedding is involved.
func (p *Pipeline) BM25Search(ctx context.Context, table Table, req *model.BM25SearchRequest) (*model.SearchResponse, error) {
	if req == nil || req.SearchText == "" {
		return nil, model.NewClientError("search text is empty")
	}
	return table.BM25Search(ctx, req)
}

// HybridSearch embeds the search contents, attaches the vectors to the
// hybrid request's vector branch and combines vector similarity with
// BM25 relevance. One content requires a topk or range branch, several
// require a batch branch.
func (p *Pipeline) HybridSearch(ctx context.Context, table Table, contents []string, req *model.HybridSearchRequest) (*model.SearchResponse, error) {
	if len(contents) == 0 {
		return nil, model.NewClientError("search contents are empty")
	}
	if req == nil || req.VectorRequest == nil || req.BM25Request == nil {
		return nil, model.NewClientError("hybrid search request requires both a vector and a BM25 branch")
	}
	if err := validateVariant(req.VectorRequest, len(contents)); err != nil {
		return nil, err
	}

	vectors, err := p.embedder.EmbedTexts(ctx, contents)
	if err != nil {
		return nil, err
	}
	attachVectors(req.VectorRequest, vectors)

	return table.HybridSearch(ctx, req)
}
