package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
)

// maxExactFloatInt is the largest integer a float64 represents exactly (2^53).
const maxExactFloatInt = 1 << 53

// Metadata is a flat map of scalar values attached to canaries and access events.
// Allowed values are string, bool, nil and numbers. Integral numbers are held as int64
// and the rest as float64 once normalized.
type Metadata map[string]any

// Validate checks that every value is a scalar.
func (m Metadata) Validate() error {
	_, err := m.Normalize()
	return err
}

// Normalize returns a copy of m with numbers converted to int64 or float64. It fails
// with ErrMalformedMetadata on nested objects, arrays or other non-scalar values.
func (m Metadata) Normalize() (Metadata, error) {
	out := make(Metadata, len(m))
	for key, value := range m {
		normalized, err := normalizeScalar(value)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrMalformedMetadata, key, err)
		}
		out[key] = normalized
	}
	return out, nil
}

// Keys returns the metadata keys in lexical order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// String returns the value stored under key when it is a string.
func (m Metadata) String(key string) string {
	s, _ := m[key].(string)
	return s
}

// Int returns the value stored under key when it is an integral number.
func (m Metadata) Int(key string) (int64, bool) {
	normalized, err := normalizeScalar(m[key])
	if err != nil {
		return 0, false
	}
	i, ok := normalized.(int64)
	return i, ok
}

// MarshalJSON encodes nil metadata as an empty object.
func (m Metadata) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]any(m))
}

// UnmarshalJSON decodes and normalizes a JSON object through ParseMetadata.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	parsed, err := ParseMetadata(data)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMetadata decodes raw JSON into normalized Metadata. Empty input and JSON null
// yield empty metadata; anything other than an object of scalars fails with
// ErrMalformedMetadata.
func ParseMetadata(raw []byte) (Metadata, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Metadata{}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var values map[string]any
	if err := decoder.Decode(&values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after object", ErrMalformedMetadata)
	}

	return Metadata(values).Normalize()
}

func normalizeScalar(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, int64:
		return v, nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return float64(v), nil
		}
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return float64(v), nil
		}
		return int64(v), nil
	case float32:
		return normalizeFloat(float64(v))
	case float64:
		return normalizeFloat(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", v.String())
		}
		return normalizeFloat(f)
	default:
		return nil, fmt.Errorf("unsupported value of type %T", value)
	}
}

func normalizeFloat(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("non-finite number")
	}
	if f == math.Trunc(f) && math.Abs(f) <= maxExactFloatInt {
		return int64(f), nil
	}
	return f, nil
}
