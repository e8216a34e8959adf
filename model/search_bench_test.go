package model

import (
	"encoding/json"
	"testing"
)

// BenchmarkSearchFields measures the per-request cost of rendering the
// search request body, which sits on the hot path of every search call.
func BenchmarkSearchFields(b *testing.B) {
	vector := make(FloatVector, 768)
	for i := range vector {
		vector[i] = float32(i) / 768
	}

	b.Run("topk", func(b *testing.B) {
		req := &VectorTopkSearchRequest{
			VectorField: "embedding",
			Vector:      vector,
			Limit:       10,
			Filter:      "kb_id = 'kb1'",
		}
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			fields, err := req.SearchFields()
			if err != nil {
				b.Fatal(err)
			}
			if _, err := json.Marshal(fields); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("hybrid", func(b *testing.B) {
		req := &HybridSearchRequest{
			VectorRequest: &VectorTopkSearchRequest{
				VectorField: "embedding",
				Vector:      vector,
			},
			BM25Request: &BM25SearchRequest{
				IndexName:  "content_inverted",
				SearchText: "vector database",
			},
			VectorWeight: 0.6,
			BM25Weight:   0.4,
			Limit:        10,
		}
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			fields, err := req.SearchFields()
			if err != nil {
				b.Fatal(err)
			}
			if _, err := json.Marshal(fields); err != nil {
				b.Fatal(err)
			}
		}
	})
}
