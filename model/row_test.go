package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRow_MarshalJSON(t *testing.T) {
	row := Row{
		"id":        "doc-1",
		"author":    "jane",
		"page":      int64(7),
		"score":     0.5,
		"published": true,
		"embedding": []float32{0.1, 0.2, 0.3},
		"raw":       []byte{0x01, 0x02},
	}

	data, err := json.Marshal(row)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "doc-1", decoded["id"])
	require.Equal(t, float64(7), decoded["page"])
	require.Equal(t, true, decoded["published"])
}

func TestRow_MarshalJSON_FloatVectorValue(t *testing.T) {
	row := Row{"embedding": FloatVector{0.1, 0.2}}

	_, err := json.Marshal(row)
	require.NoError(t, err)
}

func TestRow_MarshalJSON_RejectsNil(t *testing.T) {
	row := Row{"author": nil}

	_, err := json.Marshal(row)
	require.Error(t, err)
	require.Contains(t, err.Error(), "nil value")
}

func TestRow_MarshalJSON_RejectsUnsupportedType(t *testing.T) {
	row := Row{"nested": map[string]string{"a": "b"}}

	_, err := json.Marshal(row)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported value type")
}

func TestRow_MarshalJSON_RejectsBadVectorElement(t *testing.T) {
	row := Row{"embedding": []any{0.1, "oops"}}

	_, err := json.Marshal(row)
	require.Error(t, err)
	require.Contains(t, err.Error(), "vector element")
}
