// Package model defines the wire-level data model of the Mochow HTTP API.
//
// Every type here maps one-to-one onto the JSON shapes the service speaks:
// camelCase keys, enum values serialized as their string tag, and optional
// fields omitted when unset. The package is transport-agnostic; encoding and
// decoding happen with encoding/json only.
//
// # Schema
//
// A table schema is an ordered list of Field descriptors plus an ordered list
// of Index descriptors:
//
//	schema := &model.Schema{
//	    Fields: []model.Field{
//	        {FieldName: "id", FieldType: model.FieldTypeString, PrimaryKey: true, PartitionKey: true, NotNull: true},
//	        {FieldName: "vector", FieldType: model.FieldTypeFloatVector, NotNull: true, Dimension: 768},
//	    },
//	    Indexes: []model.Index{
//	        &model.VectorIndex{
//	            IndexName:  "vector_idx",
//	            IndexType:  model.IndexTypeHNSW,
//	            Field:      "vector",
//	            MetricType: model.MetricTypeL2,
//	            Params:     &model.HNSWParams{M: 32, EfConstruction: 200},
//	            AutoBuild:  true,
//	        },
//	    },
//	}
//
// # Search requests
//
// Search request variants form a tagged union. Each variant renders its own
// "anns" or "BM25SearchParams" block and knows which operation discriminator
// it maps to:
//
//	req := &model.VectorTopkSearchRequest{
//	    VectorField: "vector",
//	    Vector:      model.FloatVector{0.1, 0.2, 0.3},
//	    Limit:       10,
//	}
package model
