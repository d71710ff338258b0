package ollamakit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Kind identifies the active variant of a Value.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindInt
	KindFloat
	KindBool
	KindNull
)

var kindNames = map[Kind]string{
	KindString: "string",
	KindInt:    "int",
	KindFloat:  "float",
	KindBool:   "bool",
	KindNull:   "null",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// kindByName is the inverse of kindNames.
func kindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Value is a JSON scalar: one of [String], [Int], [Float], [Bool] or [Null].
// The set of implementations is closed.
//
// A nil Value means "no value"; it is distinct from [Null], which is only
// produced by an explicit JSON null.
//
// The As* accessors convert between kinds on a best-effort basis. They never
// fail, returning false when the conversion has no meaningful result.
type Value interface {
	Kind() Kind

	// AsInt returns the value as an int64. Floats are truncated toward zero;
	// strings are parsed as base-10 integers.
	AsInt() (int64, bool)

	// AsFloat returns the value as a float64. Ints are widened; strings are
	// parsed as floating-point numbers.
	AsFloat() (float64, bool)

	// AsString renders the value as a string. Null has no string form.
	AsString() (string, bool)

	// AsBool returns the value as a bool. Strings match "true" and "false"
	// case-insensitively.
	AsBool() (bool, bool)

	scalar()
}

// OptionValue is the subset of Value that may be stored in [Options]:
// [String], [Int] and [Float].
type OptionValue interface {
	Value
	option()
}

// String is a JSON string.
type String string

// Int is a JSON number without a fractional part, held as a 64-bit signed
// integer.
type Int int64

// Float is a JSON number held as an IEEE double.
//
// Whole-number floats are encoded with a fractional part ("3.0"), so they
// decode back to Float rather than Int.
type Float float64

// Bool is a JSON boolean.
type Bool bool

// Null is an explicit JSON null.
type Null struct{}

var (
	_ OptionValue = String("")
	_ OptionValue = Int(0)
	_ OptionValue = Float(0)
	_ Value       = Bool(false)
	_ Value       = Null{}
)

func (String) scalar() {}
func (Int) scalar()    {}
func (Float) scalar()  {}
func (Bool) scalar()   {}
func (Null) scalar()   {}

func (String) option() {}
func (Int) option()    {}
func (Float) option()  {}

func (String) Kind() Kind { return KindString }
func (Int) Kind() Kind    { return KindInt }
func (Float) Kind() Kind  { return KindFloat }
func (Bool) Kind() Kind   { return KindBool }
func (Null) Kind() Kind   { return KindNull }

func (s String) AsInt() (int64, bool) {
	i, err := strconv.ParseInt(string(s), 10, 64)
	return i, err == nil
}

func (s String) AsFloat() (float64, bool) {
	f, err := strconv.ParseFloat(string(s), 64)
	return f, err == nil
}

func (s String) AsString() (string, bool) { return string(s), true }

func (s String) AsBool() (bool, bool) {
	switch {
	case strings.EqualFold(string(s), "true"):
		return true, true
	case strings.EqualFold(string(s), "false"):
		return false, true
	}
	return false, false
}

func (i Int) AsInt() (int64, bool)     { return int64(i), true }
func (i Int) AsFloat() (float64, bool) { return float64(i), true }
func (i Int) AsString() (string, bool) { return strconv.FormatInt(int64(i), 10), true }
func (Int) AsBool() (bool, bool)       { return false, false }

func (f Float) AsFloat() (float64, bool) { return float64(f), true }
func (Float) AsBool() (bool, bool)       { return false, false }

// AsInt truncates toward zero. NaN and values outside the int64 range have no
// integer form.
func (f Float) AsInt() (int64, bool) {
	t := math.Trunc(float64(f))
	if math.IsNaN(t) || t < math.MinInt64 || t >= math.MaxInt64 {
		return 0, false
	}
	return int64(t), true
}

// AsString returns the same text the value encodes to, e.g. "3.9" or "3.0".
// Non-finite values render as Go formats them ("NaN", "+Inf").
func (f Float) AsString() (string, bool) {
	return string(appendFloat(nil, float64(f))), true
}

func (Bool) AsInt() (int64, bool)       { return 0, false }
func (Bool) AsFloat() (float64, bool)   { return 0, false }
func (b Bool) AsString() (string, bool) { return strconv.FormatBool(bool(b)), true }
func (b Bool) AsBool() (bool, bool)     { return bool(b), true }

func (Null) AsInt() (int64, bool)     { return 0, false }
func (Null) AsFloat() (float64, bool) { return 0, false }
func (Null) AsString() (string, bool) { return "", false }
func (Null) AsBool() (bool, bool)     { return false, false }

// MarshalJSONV2 encodes f as a JSON number that always carries a fraction or
// exponent, so that it is never mistaken for an Int when decoded.
func (f Float) MarshalJSONV2(enc *jsontext.Encoder, opts json.Options) error {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return fmt.Errorf("cannot encode non-finite float %v", float64(f))
	}
	return enc.WriteValue(jsontext.Value(appendFloat(nil, float64(f))))
}

// MarshalJSONV2 encodes the JSON literal null.
func (Null) MarshalJSONV2(enc *jsontext.Encoder, opts json.Options) error {
	return enc.WriteToken(jsontext.Null)
}

// UnmarshalJSONV2 accepts only the JSON literal null.
func (n *Null) UnmarshalJSONV2(dec *jsontext.Decoder, opts json.Options) error {
	if k := dec.PeekKind(); k != 'n' {
		// consume the value so the error carries its path
		if _, err := dec.ReadValue(); err != nil {
			return mismatch(dec, 0, "null", err)
		}
		return mismatch(dec, k, "null", nil)
	}
	_, err := dec.ReadToken()
	return err
}

// appendFloat appends the shortest representation of f that parses back to
// f, adding ".0" when that representation would read as an integer.
func appendFloat(b []byte, f float64) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, f, 'g', -1, 64)
	for _, c := range b[start:] {
		switch c {
		case '.', 'e', 'E', 'N', 'I': // fraction, exponent, NaN, Inf
			return b
		}
	}
	return append(b, ".0"...)
}
