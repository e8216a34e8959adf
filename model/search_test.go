package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVectorTopkSearchRequest_Fields(t *testing.T) {
	req := &VectorTopkSearchRequest{
		VectorField: "embedding",
		Vector:      FloatVector{0.1, 0.2},
		Limit:       15,
		Filter:      "category = 'shoes'",
		Config:      &VectorSearchConfig{Ef: 200},
	}

	require.Equal(t, RequestTypeSearch, req.RequestType())

	fields, err := req.SearchFields()
	require.NoError(t, err)

	anns := fields["anns"].(map[string]any)
	require.Equal(t, "embedding", anns["vectorField"])
	require.Equal(t, []float32{0.1, 0.2}, anns["vectorFloats"])
	require.Equal(t, "category = 'shoes'", anns["filter"])

	params := anns["params"].(map[string]any)
	require.Equal(t, 15, params["limit"])
	require.Equal(t, 200, params["ef"])
}

func TestVectorTopkSearchRequest_DefaultLimit(t *testing.T) {
	req := &VectorTopkSearchRequest{
		VectorField: "embedding",
		Vector:      FloatVector{0.5},
	}

	fields, err := req.SearchFields()
	require.NoError(t, err)

	params := fields["anns"].(map[string]any)["params"].(map[string]any)
	require.Equal(t, 50, params["limit"])
}

func TestVectorTopkSearchRequest_MissingVector(t *testing.T) {
	req := &VectorTopkSearchRequest{VectorField: "embedding"}

	_, err := req.SearchFields()
	require.Error(t, err)

	_, ok := AsClientError(err)
	require.True(t, ok)
}

func TestVectorRangeSearchRequest_DistanceBounds(t *testing.T) {
	near, far := 0.2, 0.8
	req := &VectorRangeSearchRequest{
		VectorField:  "embedding",
		Vector:       FloatVector{1, 2, 3},
		DistanceNear: &near,
		DistanceFar:  &far,
		Limit:        10,
	}

	fields, err := req.SearchFields()
	require.NoError(t, err)

	params := fields["anns"].(map[string]any)["params"].(map[string]any)
	require.Equal(t, 0.2, params["distanceNear"])
	require.Equal(t, 0.8, params["distanceFar"])
	require.Equal(t, 10, params["limit"])
}

func TestVectorBatchSearchRequest_Fields(t *testing.T) {
	req := &VectorBatchSearchRequest{
		VectorField: "embedding",
		Vectors:     []Vector{FloatVector{1, 2}, FloatVector{3, 4}},
		Limit:       5,
	}

	require.Equal(t, RequestTypeBatchSearch, req.RequestType())

	fields, err := req.SearchFields()
	require.NoError(t, err)

	anns := fields["anns"].(map[string]any)
	vectors := anns["vectorFloats"].([]any)
	require.Len(t, vectors, 2)
	require.Equal(t, []float32{1, 2}, vectors[0])
	require.Equal(t, []float32{3, 4}, vectors[1])
}

func TestVectorBatchSearchRequest_NoVectors(t *testing.T) {
	req := &VectorBatchSearchRequest{VectorField: "embedding"}

	_, err := req.SearchFields()
	require.Error(t, err)

	_, ok := AsClientError(err)
	require.True(t, ok)
}

func TestBM25SearchRequest_Fields(t *testing.T) {
	req := &BM25SearchRequest{
		IndexName:  "content_inverted",
		SearchText: "retrieval augmented generation",
		Limit:      20,
		Filter:     "lang = 'en'",
	}

	require.Equal(t, RequestTypeSearch, req.RequestType())

	fields, err := req.SearchFields()
	require.NoError(t, err)

	bm25 := fields["BM25SearchParams"].(map[string]any)
	require.Equal(t, "content_inverted", bm25["indexName"])
	require.Equal(t, "retrieval augmented generation", bm25["searchText"])
	require.Equal(t, 20, fields["limit"])
	require.Equal(t, "lang = 'en'", fields["filter"])
}

func TestHybridSearchRequest_WeightsAndGlobalOverrides(t *testing.T) {
	req := &HybridSearchRequest{
		VectorRequest: &VectorTopkSearchRequest{
			VectorField: "embedding",
			Vector:      FloatVector{0.1, 0.2},
			Limit:       30,
			Filter:      "branch filter",
		},
		BM25Request: &BM25SearchRequest{
			IndexName:  "content_inverted",
			SearchText: "hello",
		},
		VectorWeight: 0.7,
		BM25Weight:   0.3,
		Limit:        12,
		Filter:       "global filter",
	}

	fields, err := req.SearchFields()
	require.NoError(t, err)

	anns := fields["anns"].(map[string]any)
	require.Equal(t, 0.7, anns["weight"])

	bm25 := fields["BM25SearchParams"].(map[string]any)
	require.Equal(t, 0.3, bm25["weight"])

	// Global limit and filter win over the branch values, which are
	// removed from the anns block.
	require.Equal(t, 12, fields["limit"])
	require.Equal(t, "global filter", fields["filter"])
	require.NotContains(t, anns, "filter")
	if params, ok := anns["params"].(map[string]any); ok {
		require.NotContains(t, params, "limit")
	}
}

func TestHybridSearchRequest_BranchLimitKeptWithoutGlobal(t *testing.T) {
	req := &HybridSearchRequest{
		VectorRequest: &VectorTopkSearchRequest{
			VectorField: "embedding",
			Vector:      FloatVector{0.1},
			Limit:       30,
		},
		BM25Request: &BM25SearchRequest{
			IndexName:  "content_inverted",
			SearchText: "hello",
		},
		VectorWeight: 0.5,
		BM25Weight:   0.5,
	}

	fields, err := req.SearchFields()
	require.NoError(t, err)
	require.NotContains(t, fields, "limit")

	params := fields["anns"].(map[string]any)["params"].(map[string]any)
	require.Equal(t, 30, params["limit"])
}

func TestHybridSearchRequest_TypeIgnoresVectorBranch(t *testing.T) {
	req := &HybridSearchRequest{
		VectorRequest: &VectorBatchSearchRequest{
			VectorField: "embedding",
			Vectors:     []Vector{FloatVector{0.1}, FloatVector{0.9}},
		},
		BM25Request: &BM25SearchRequest{
			IndexName:  "content_inverted",
			SearchText: "hello",
		},
	}

	require.Equal(t, RequestTypeSearch, req.RequestType())

	fields, err := req.SearchFields()
	require.NoError(t, err)
	require.Len(t, fields["anns"].(map[string]any)["vectorFloats"], 2)
}

func TestSearchCommonArgs_CommonFields(t *testing.T) {
	var args SearchCommonArgs
	fields := args.CommonFields()
	require.Equal(t, map[string]any{"readConsistency": ReadConsistencyEventual}, fields)

	args = SearchCommonArgs{
		PartitionKey:    map[string]any{"id": "a"},
		Projections:     []string{"id"},
		ReadConsistency: ReadConsistencyStrong,
	}
	fields = args.CommonFields()
	require.Equal(t, map[string]any{"id": "a"}, fields["partitionKey"])
	require.Equal(t, []string{"id"}, fields["projections"])
	require.Equal(t, ReadConsistencyStrong, fields["readConsistency"])
}

func TestHybridSearchRequest_MissingBranch(t *testing.T) {
	req := &HybridSearchRequest{
		VectorRequest: &VectorTopkSearchRequest{
			VectorField: "embedding",
			Vector:      FloatVector{0.1},
		},
	}

	_, err := req.SearchFields()
	require.Error(t, err)

	_, ok := AsClientError(err)
	require.True(t, ok)
}
