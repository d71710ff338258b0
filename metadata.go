package ollamakit

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Metadata is a flat JSON object whose members are arbitrary scalars, such
// as the model_info map of a model description. Keys are not known ahead of
// time, and producers are inconsistent about quoting numbers and booleans, so
// lookups go through the [Value] coercions.
type Metadata map[string]Value

// MarshalJSONV2 encodes m as a flat JSON object. Values always use their plain
// encoding, even under [TaggedJSONOptions]; a nil Value is written as null.
// Keys are sorted when [json.Deterministic] is set.
func (m Metadata) MarshalJSONV2(enc *jsontext.Encoder, opts json.Options) error {
	return encodeObject(enc, opts, "metadata value", map[string]Value(m))
}

// UnmarshalJSONV2 decodes a flat JSON object. Every member is decoded as by
// [DecodeFrom]; a nested object or array fails with [ErrTypeMismatch] at the
// member's path. A JSON null leaves m nil.
func (m *Metadata) UnmarshalJSONV2(dec *jsontext.Decoder, opts json.Options) error {
	values, err := decodeObject(dec, "scalar", func(v Value) (Value, bool) { return v, true })
	if err != nil {
		return err
	}
	*m = values
	return nil
}

// Int returns the value under key coerced with [Value.AsInt].
func (m Metadata) Int(key string) (int64, bool) {
	if v, ok := m[key]; ok && v != nil {
		return v.AsInt()
	}
	return 0, false
}

// Float returns the value under key coerced with [Value.AsFloat].
func (m Metadata) Float(key string) (float64, bool) {
	if v, ok := m[key]; ok && v != nil {
		return v.AsFloat()
	}
	return 0, false
}

// String returns the value under key coerced with [Value.AsString].
func (m Metadata) String(key string) (string, bool) {
	if v, ok := m[key]; ok && v != nil {
		return v.AsString()
	}
	return "", false
}

// Bool returns the value under key coerced with [Value.AsBool].
func (m Metadata) Bool(key string) (bool, bool) {
	if v, ok := m[key]; ok && v != nil {
		return v.AsBool()
	}
	return false, false
}
