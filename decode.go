package ollamakit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Decode decodes a single JSON scalar token, optionally surrounded by
// whitespace.
//
// Candidates are tried in a fixed order: null, then booleans, then numbers
// whose literal is an exact int64 (Int), then any other finite number
// (Float), then strings. Anything else, including objects, arrays, malformed
// tokens and trailing data, fails with [ErrTypeMismatch].
func Decode(b []byte) (Value, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(b))
	v, err := DecodeFrom(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.ReadToken(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, ErrTypeMismatch{Err: err}
	}
	return v, nil
}

// DecodeFrom decodes the next JSON value read from dec as a scalar. On
// failure, the returned [ErrTypeMismatch] carries the decoder's position as a
// JSON Pointer.
func DecodeFrom(dec *jsontext.Decoder) (Value, error) {
	raw, err := dec.ReadValue()
	if err != nil {
		return nil, mismatch(dec, 0, "scalar", err)
	}
	v, err := parseScalar(raw)
	if err != nil || v == nil {
		return nil, mismatch(dec, raw.Kind(), "scalar", err)
	}
	return v, nil
}

// parseScalar converts a single, already validated, JSON value. Objects and
// arrays yield a nil Value.
func parseScalar(raw jsontext.Value) (Value, error) {
	switch raw.Kind() {
	case 'n':
		return Null{}, nil
	case 't':
		return Bool(true), nil
	case 'f':
		return Bool(false), nil
	case '0':
		return parseNumber(raw, false)
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return String(s), nil
	default:
		return nil, nil
	}
}

// parseNumber decodes a JSON number literal. Unless asFloat is set, literals
// that are exact int64 values decode as Int.
func parseNumber(raw jsontext.Value, asFloat bool) (Value, error) {
	lit := string(raw)
	if !asFloat {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, fmt.Errorf("number %s out of range", lit)
	}
	return Float(f), nil
}

// mismatch builds an ErrTypeMismatch located at the decoder's current
// position.
func mismatch(dec *jsontext.Decoder, kind jsontext.Kind, want string, err error) error {
	return ErrTypeMismatch{
		Path: string(dec.StackPointer()),
		Kind: kind,
		Want: want,
		Err:  err,
	}
}
