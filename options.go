package ollamakit

import (
	"fmt"
	"sort"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Options is a bag of request parameters, such as temperature or top_k,
// encoded as one flat JSON object. Only [String], [Int] and [Float] values can
// be stored, so encoding never has to drop a field.
//
// The zero value is an empty bag ready for use. An Options is not safe for
// concurrent mutation; build one per request.
type Options struct {
	values map[string]OptionValue
}

// Set stores v under key, replacing any previous value.
func (o *Options) Set(key string, v OptionValue) {
	if o.values == nil {
		o.values = make(map[string]OptionValue)
	}
	o.values[key] = v
}

// Get returns the value stored under key.
func (o *Options) Get(key string) (OptionValue, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *Options) Delete(key string) {
	delete(o.values, key)
}

func (o *Options) Len() int {
	return len(o.values)
}

// Keys returns the stored keys in lexical order.
func (o *Options) Keys() []string {
	keys := make([]string, 0, len(o.values))
	for k := range o.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSONV2 encodes the bag as a JSON object with one member per key.
// Members are written in lexical key order when [json.Deterministic] is set,
// and in unspecified order otherwise. Values always use their plain
// encoding, even under [TaggedJSONOptions].
func (o Options) MarshalJSONV2(enc *jsontext.Encoder, opts json.Options) error {
	return encodeObject(enc, opts, "option", o.values)
}

// UnmarshalJSONV2 decodes a flat JSON object into the bag, replacing its
// contents. Values are decoded as by [DecodeFrom]; booleans, nulls, objects
// and arrays fail with [ErrTypeMismatch].
func (o *Options) UnmarshalJSONV2(dec *jsontext.Decoder, opts json.Options) error {
	values, err := decodeObject(dec, "option value", func(v Value) (OptionValue, bool) {
		ov, ok := v.(OptionValue)
		return ov, ok
	})
	if err != nil {
		return err
	}
	o.values = values
	return nil
}

// encodeObject writes a flat JSON object of scalars. Each member is marshaled
// on its own, without the caller's options, so that marshalers registered for
// Value cannot turn a member into anything but a scalar.
func encodeObject[T Value](enc *jsontext.Encoder, opts json.Options, what string, values map[string]T) error {
	if err := enc.WriteToken(jsontext.ObjectStart); err != nil {
		return fmt.Errorf("failed to write object start token: %w", err)
	}

	writeMember := func(k string, v T) error {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to write %s %s: %w", what, k, err)
		}
		if err := enc.WriteToken(jsontext.String(k)); err != nil {
			return fmt.Errorf("failed to write %s key token %s: %w", what, k, err)
		}
		if err := enc.WriteValue(b); err != nil {
			return fmt.Errorf("failed to write %s %s: %w", what, k, err)
		}
		return nil
	}

	deterministic, ok := json.GetOption(opts, json.Deterministic)
	if ok && deterministic {
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := writeMember(k, values[k]); err != nil {
				return err
			}
		}
	} else {
		for k, v := range values {
			if err := writeMember(k, v); err != nil {
				return err
			}
		}
	}

	if err := enc.WriteToken(jsontext.ObjectEnd); err != nil {
		return fmt.Errorf("failed to write object end token: %w", err)
	}
	return nil
}

// decodeObject reads a flat JSON object of scalars, narrowing each member with
// accept. A JSON null in place of the object yields a nil map.
func decodeObject[T Value](dec *jsontext.Decoder, want string, accept func(Value) (T, bool)) (map[string]T, error) {
	switch k := dec.PeekKind(); k {
	case '{':
	case 'n':
		_, err := dec.ReadToken()
		return nil, err
	default:
		if _, err := dec.ReadValue(); err != nil {
			return nil, mismatch(dec, 0, "object", err)
		}
		return nil, mismatch(dec, k, "object", nil)
	}
	if _, err := dec.ReadToken(); err != nil {
		return nil, err
	}

	m := make(map[string]T)
	for dec.PeekKind() != '}' {
		key, err := dec.ReadToken()
		if err != nil {
			return nil, mismatch(dec, 0, "object", err)
		}
		v, err := DecodeFrom(dec)
		if err != nil {
			return nil, err
		}
		t, ok := accept(v)
		if !ok {
			return nil, mismatch(dec, jsonKind(v), want, nil)
		}
		m[key.String()] = t
	}
	if _, err := dec.ReadToken(); err != nil {
		return nil, err
	}
	return m, nil
}

// jsonKind maps a decoded Value back to the kind of JSON token it came from.
func jsonKind(v Value) jsontext.Kind {
	switch v.Kind() {
	case KindString:
		return '"'
	case KindInt, KindFloat:
		return '0'
	case KindBool:
		if b, _ := v.AsBool(); b {
			return 't'
		}
		return 'f'
	default:
		return 'n'
	}
}
