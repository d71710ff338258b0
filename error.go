package ollamakit

import (
	"fmt"

	"github.com/go-json-experiment/json/jsontext"
)

// ErrTypeMismatch is the error returned when a JSON value cannot be decoded as
// the expected scalar kind: malformed tokens, objects or arrays where a
// scalar was expected, and scalars of a kind the destination does not allow.
//
// Use errors.Is(err, ErrTypeMismatch{}) to match any mismatch, or errors.As to
// inspect the path.
type ErrTypeMismatch struct {
	// Path is the JSON Pointer (RFC 6901) of the offending value. The root
	// value has an empty path.
	Path string

	// Kind is the kind of the JSON value that was found, or zero if the input
	// was not valid JSON.
	Kind jsontext.Kind

	// Want describes what was expected, e.g. "scalar" or "option value".
	Want string

	// Err is the underlying cause, if any.
	Err error
}

func (e ErrTypeMismatch) Error() string {
	msg := "type mismatch"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	want := e.Want
	if want == "" {
		want = "scalar"
	}
	if e.Kind != 0 {
		msg += fmt.Sprintf(": cannot decode JSON %s as %s", kindName(e.Kind), want)
	} else {
		msg += ": expected " + want
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e ErrTypeMismatch) Unwrap() error { return e.Err }

// Is reports whether target is an ErrTypeMismatch, regardless of its fields.
func (e ErrTypeMismatch) Is(target error) bool {
	_, ok := target.(ErrTypeMismatch)
	return ok
}

// ErrUnknownKind is the error returned by tagged decoding when it encounters a
// kind discriminator that does not name a Value kind.
type ErrUnknownKind struct {
	Name string
}

func (e ErrUnknownKind) Error() string {
	return fmt.Sprintf("unknown value kind %q", e.Name)
}

// kindName renders a jsontext.Kind the way encoding errors usually do.
func kindName(k jsontext.Kind) string {
	switch k {
	case 'n':
		return "null"
	case 'f', 't':
		return "boolean"
	case '"':
		return "string"
	case '0':
		return "number"
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "value"
	}
}
