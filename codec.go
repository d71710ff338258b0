package ollamakit

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

const (
	// The default JSON object key for kind discriminators
	defaultKindKey = "_type"

	// The default JSON object key for tagged values
	defaultValueKey = "_value"
)

// JSONOptions returns options that let [json.Unmarshal] decode into the
// [Value] interface, wherever it appears: struct fields, slices, map values.
// Each Value is decoded as by [DecodeFrom].
//
// Marshaling needs no options; every Value implementation encodes itself.
func JSONOptions() json.Options {
	return json.WithUnmarshalers(
		json.UnmarshalFuncV2(func(dec *jsontext.Decoder, v *Value, opts json.Options) error {
			val, err := DecodeFrom(dec)
			if err != nil {
				return err
			}
			*v = val
			return nil
		}),
	)
}

// Envelope configures the tagged encoding produced by [TaggedJSONOptions].
//
// A tagged Value is a JSON object holding the kind name under KindKey and the
// plain encoding of the value under ValueKey:
//
//	{"_type": "float", "_value": 2.0}
//
// Null values omit ValueKey.
type Envelope struct {
	// KindKey defaults to "_type".
	KindKey string

	// ValueKey defaults to "_value".
	ValueKey string
}

func (e *Envelope) keys() (kindKey, valueKey string) {
	kindKey, valueKey = defaultKindKey, defaultValueKey
	if e == nil {
		return
	}
	if e.KindKey != "" {
		kindKey = e.KindKey
	}
	if e.ValueKey != "" {
		valueKey = e.ValueKey
	}
	return
}

// TaggedJSONOptions returns options that encode and decode every [Value] in
// its tagged form. Tagged values carry their kind on the wire, so a whole
// number stored as Float and one stored as Int stay distinct even for
// producers that do not follow this package's float formatting.
//
// If e is nil, the default keys are used.
func TaggedJSONOptions(e *Envelope) json.Options {
	return json.JoinOptions(
		json.WithMarshalers(TaggedMarshalFunc(e)),
		json.WithUnmarshalers(TaggedUnmarshalFunc(e)),
	)
}

// TaggedMarshalFunc creates a [json.MarshalFuncV2] that encodes values of
// type [Value] in tagged form.
func TaggedMarshalFunc(e *Envelope) *json.Marshalers {
	kindKey, valueKey := e.keys()

	return json.MarshalFuncV2(func(enc *jsontext.Encoder, v Value, opts json.Options) error {
		if v == nil {
			return enc.WriteToken(jsontext.Null)
		}

		if err := enc.WriteToken(jsontext.ObjectStart); err != nil {
			return fmt.Errorf("failed to write object start token: %w", err)
		}
		if err := enc.WriteToken(jsontext.String(kindKey)); err != nil {
			return fmt.Errorf("failed to write kind key token %s: %w", kindKey, err)
		}
		if err := enc.WriteToken(jsontext.String(v.Kind().String())); err != nil {
			return fmt.Errorf("failed to write kind token %s: %w", v.Kind(), err)
		}

		if v.Kind() != KindNull {
			// Marshal v by itself. The options carrying this func are
			// deliberately not passed on, or v would be tagged again.
			b, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("failed to marshal %s value: %w", v.Kind(), err)
			}
			if err := enc.WriteToken(jsontext.String(valueKey)); err != nil {
				return fmt.Errorf("failed to write value key token %s: %w", valueKey, err)
			}
			if err := enc.WriteValue(b); err != nil {
				return fmt.Errorf("failed to write value: %w", err)
			}
		}

		if err := enc.WriteToken(jsontext.ObjectEnd); err != nil {
			return fmt.Errorf("failed to write object end token: %w", err)
		}
		return nil
	})
}

// TaggedUnmarshalFunc creates a [json.UnmarshalFuncV2] that decodes tagged
// values into [Value].
//
// Decoding is strict: the payload must be a literal of the named kind, except
// that "float" also accepts integer literals. A JSON null decodes to a nil
// Value.
func TaggedUnmarshalFunc(e *Envelope) *json.Unmarshalers {
	kindKey, valueKey := e.keys()

	return json.UnmarshalFuncV2(func(dec *jsontext.Decoder, v *Value, opts json.Options) error {
		switch k := dec.PeekKind(); k {
		case '{':
		case 'n':
			if _, err := dec.ReadToken(); err != nil {
				return err
			}
			*v = nil
			return nil
		default:
			if _, err := dec.ReadValue(); err != nil {
				return mismatch(dec, 0, "tagged value", err)
			}
			return mismatch(dec, k, "tagged value", nil)
		}

		if _, err := dec.ReadToken(); err != nil {
			return fmt.Errorf("failed to read object start token: %w", err)
		}

		var (
			name     string
			haveName bool
			payload  jsontext.Value
		)
		for dec.PeekKind() != '}' {
			key, err := dec.ReadToken()
			if err != nil {
				return mismatch(dec, 0, "tagged value", err)
			}
			switch key.String() {
			case kindKey:
				tok, err := dec.ReadToken()
				if err != nil {
					return mismatch(dec, 0, "kind name", err)
				}
				if tok.Kind() != '"' {
					return mismatch(dec, tok.Kind(), "kind name", nil)
				}
				name, haveName = tok.String(), true
			case valueKey:
				raw, err := dec.ReadValue()
				if err != nil {
					return mismatch(dec, 0, "scalar", err)
				}
				// raw is only valid until the next read
				payload = append(jsontext.Value(nil), raw...)
			default:
				return mismatch(dec, 0, "tagged value", fmt.Errorf("unexpected member %q", key.String()))
			}
		}
		if _, err := dec.ReadToken(); err != nil {
			return fmt.Errorf("failed to read object end token: %w", err)
		}

		if !haveName {
			return mismatch(dec, '{', "tagged value", fmt.Errorf("missing %q member", kindKey))
		}
		kind, ok := kindByName(name)
		if !ok {
			return ErrUnknownKind{Name: name}
		}
		val, err := decodeTagged(kind, payload)
		if err != nil {
			return mismatch(dec, payload.Kind(), kind.String(), err)
		}
		*v = val
		return nil
	})
}

// decodeTagged decodes payload as exactly the given kind. A nil result with a
// nil error means the payload does not fit the kind.
func decodeTagged(kind Kind, payload jsontext.Value) (Value, error) {
	if kind == KindNull {
		if len(payload) == 0 || payload.Kind() == 'n' {
			return Null{}, nil
		}
		return nil, fmt.Errorf("unexpected payload for null")
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("missing payload")
	}

	var val Value
	var err error
	switch k := payload.Kind(); {
	case kind == KindString && k == '"':
		val, err = parseScalar(payload)
	case kind == KindBool && (k == 't' || k == 'f'):
		val, err = parseScalar(payload)
	case kind == KindFloat && k == '0':
		val, err = parseNumber(payload, true)
	case kind == KindInt && k == '0':
		val, err = parseNumber(payload, false)
		if err == nil && val.Kind() != KindInt {
			return nil, fmt.Errorf("number %s is not a 64-bit integer", payload)
		}
	default:
		return nil, fmt.Errorf("payload does not fit kind %s", kind)
	}
	return val, err
}
