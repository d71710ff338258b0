package ollamakit_test

import (
	"errors"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregorym/ollamakit"
)

func TestTagged_RoundTrip(t *testing.T) {
	opts := ollamakit.TaggedJSONOptions(nil)
	values := []ollamakit.Value{
		ollamakit.String("3"),
		ollamakit.Int(3),
		ollamakit.Float(3),
		ollamakit.Float(0.25),
		ollamakit.Bool(true),
		ollamakit.Null{},
	}
	for _, v := range values {
		b, err := json.Marshal(&v, opts)
		require.NoError(t, err)

		var got ollamakit.Value
		require.NoError(t, json.Unmarshal(b, &got, opts), "%s", b)
		assert.Equal(t, v, got, "%s", b)
	}
}

func TestTagged_CustomEnvelope(t *testing.T) {
	opts := ollamakit.TaggedJSONOptions(&ollamakit.Envelope{
		KindKey:  "$kind",
		ValueKey: "$value",
	})

	in := struct {
		V ollamakit.Value `json:"v"`
	}{V: ollamakit.Int(7)}
	b, err := json.Marshal(in, opts)
	require.NoError(t, err)
	assert.Equal(t, `{"v":{"$kind":"int","$value":7}}`, string(b))
}

func TestTagged_FloatAcceptsIntegerLiteral(t *testing.T) {
	var v ollamakit.Value
	err := json.Unmarshal([]byte(`{"_type":"float","_value":2}`), &v, ollamakit.TaggedJSONOptions(nil))
	require.NoError(t, err)
	assert.Equal(t, ollamakit.Value(ollamakit.Float(2)), v)
}

func TestTagged_JSONNull(t *testing.T) {
	v := ollamakit.Value(ollamakit.Int(1))
	require.NoError(t, json.Unmarshal([]byte(`null`), &v, ollamakit.TaggedJSONOptions(nil)))
	assert.Nil(t, v)
}

func TestTagged_UnknownKind(t *testing.T) {
	var v ollamakit.Value
	err := json.Unmarshal([]byte(`{"_type":"decimal","_value":1}`), &v, ollamakit.TaggedJSONOptions(nil))

	var uk ollamakit.ErrUnknownKind
	require.True(t, errors.As(err, &uk))
	assert.Equal(t, "decimal", uk.Name)
}

func TestTagged_Mismatch(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"quoted int", `{"_type":"int","_value":"3"}`},
		{"fractional int", `{"_type":"int","_value":2.5}`},
		{"int out of range", `{"_type":"int","_value":9223372036854775808}`},
		{"string as bool", `{"_type":"bool","_value":"true"}`},
		{"missing payload", `{"_type":"string"}`},
		{"null with payload", `{"_type":"null","_value":0}`},
		{"missing kind", `{"_value":1}`},
		{"unexpected member", `{"_type":"int","_value":1,"extra":true}`},
		{"not an object", `3`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v ollamakit.Value
			err := json.Unmarshal([]byte(tt.in), &v, ollamakit.TaggedJSONOptions(nil))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ollamakit.ErrTypeMismatch{}), "%v", err)
		})
	}
}

func TestTagged_ContainersStayFlat(t *testing.T) {
	opts := []json.Options{ollamakit.TaggedJSONOptions(nil), json.Deterministic(true)}

	var bag ollamakit.Options
	bag.Set("temperature", ollamakit.Float(2))
	bag.Set("top_k", ollamakit.Int(40))

	b, err := json.Marshal(bag, opts...)
	require.NoError(t, err)
	assert.Equal(t, `{"temperature":2.0,"top_k":40}`, string(b))

	var bagBack ollamakit.Options
	require.NoError(t, json.Unmarshal(b, &bagBack, opts...))
	v, ok := bagBack.Get("temperature")
	require.True(t, ok)
	assert.Equal(t, ollamakit.OptionValue(ollamakit.Float(2)), v)

	md := ollamakit.Metadata{"a": ollamakit.Float(2), "b": ollamakit.Null{}}
	b, err = json.Marshal(md, opts...)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2.0,"b":null}`, string(b))

	var mdBack ollamakit.Metadata
	require.NoError(t, json.Unmarshal(b, &mdBack, opts...))
	assert.Equal(t, md, mdBack)

	// a bare Value next to the containers is still tagged
	in := struct {
		V       ollamakit.Value    `json:"v"`
		Options ollamakit.Options  `json:"options"`
		Info    ollamakit.Metadata `json:"info"`
	}{V: ollamakit.Float(2), Options: bag, Info: md}
	b, err = json.Marshal(in, opts...)
	require.NoError(t, err)
	assert.Equal(t,
		`{"v":{"_type":"float","_value":2.0},"options":{"temperature":2.0,"top_k":40},"info":{"a":2.0,"b":null}}`,
		string(b))
}
