package model

import (
	"encoding/json"
)

// Row is an open-ended field-name to value mapping. Keys are column names;
// values carry a small closed set of types: bool, integers, floats, string,
// []byte and float vectors. Shapes outside that set are rejected at the
// serialization boundary; the server performs all schema validation.
type Row map[string]any

// MarshalJSON validates every value against the supported closed set
// before rendering the row.
func (r Row) MarshalJSON() ([]byte, error) {
	for name, value := range r {
		if err := validateValue(name, value); err != nil {
			return nil, err
		}
	}
	return json.Marshal(map[string]any(r))
}

func validateValue(name string, value any) error {
	switch v := value.(type) {
	case nil:
		return NewClientErrorf("row field %q: nil value", name)
	case bool, string:
		return nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float32, float64:
		return nil
	case []byte:
		return nil
	case []float32, []float64, FloatVector:
		return nil
	case []any:
		for _, e := range v {
			switch e.(type) {
			case float32, float64, int:
			default:
				return NewClientErrorf("row field %q: vector element of type %T", name, e)
			}
		}
		return nil
	case json.Number:
		return nil
	default:
		return NewClientErrorf("row field %q: unsupported value type %T", name, value)
	}
}

// BatchQueryKey addresses one row in a batch query.
type BatchQueryKey struct {
	PrimaryKey   map[string]any `json:"primaryKey"`
	PartitionKey map[string]any `json:"partitionKey,omitempty"`
}
