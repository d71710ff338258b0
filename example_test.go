package ollamakit_test

import (
	"fmt"

	"github.com/go-json-experiment/json"

	"github.com/gregorym/ollamakit"
)

func ExampleDecode() {
	for _, in := range []string{`null`, `true`, `42`, `4.5`, `"42"`} {
		v, err := ollamakit.Decode([]byte(in))
		if err != nil {
			panic("failed to decode: " + err.Error())
		}
		fmt.Printf("%-6s -> %s\n", in, v.Kind())
	}
	// Output:
	// null   -> null
	// true   -> bool
	// 42     -> int
	// 4.5    -> float
	// "42"   -> string
}

func ExampleFloat_roundTrip() {
	b, _ := json.Marshal(ollamakit.Float(3))
	fmt.Println(string(b))

	v, _ := ollamakit.Decode(b)
	fmt.Println(v.Kind(), v == ollamakit.Value(ollamakit.Float(3)))
	// Output:
	// 3.0
	// float true
}

func ExampleMetadata() {
	in := []byte(`{
		"general.architecture": "llama",
		"llama.context_length": "4096",
		"llama.rope.freq_base": 500000.0,
		"tokenizer.ggml.add_bos_token": "TRUE"
	}`)

	var md ollamakit.Metadata
	if err := json.Unmarshal(in, &md); err != nil {
		panic("failed to unmarshal: " + err.Error())
	}

	n, _ := md.Int("llama.context_length")
	base, _ := md.Float("llama.rope.freq_base")
	bos, _ := md.Bool("tokenizer.ggml.add_bos_token")
	_, ok := md.Bool("general.architecture")
	fmt.Println(n, base, bos, ok)
	// Output:
	// 4096 500000 true false
}

func ExampleOptions() {
	var opts ollamakit.Options
	opts.Set("top_k", ollamakit.Int(40))
	opts.Set("temperature", ollamakit.Float(0.7))
	opts.Set("stop", ollamakit.String("\n"))

	b, err := json.Marshal(opts, json.Deterministic(true))
	if err != nil {
		panic("failed to marshal: " + err.Error())
	}
	fmt.Println(string(b))
	// Output:
	// {"stop":"\n","temperature":0.7,"top_k":40}
}

func ExampleTaggedJSONOptions() {
	in := map[string]ollamakit.Value{
		"a": ollamakit.Float(2),
		"b": ollamakit.Int(2),
		"c": ollamakit.Null{},
	}

	b, err := json.Marshal(in, ollamakit.TaggedJSONOptions(nil), json.Deterministic(true))
	if err != nil {
		panic("failed to marshal: " + err.Error())
	}
	fmt.Println(string(b))

	var out map[string]ollamakit.Value
	if err := json.Unmarshal(b, &out, ollamakit.TaggedJSONOptions(nil)); err != nil {
		panic("failed to unmarshal: " + err.Error())
	}
	fmt.Println(out["a"].Kind(), out["b"].Kind(), out["c"].Kind())
	// Output:
	// {"a":{"_type":"float","_value":2.0},"b":{"_type":"int","_value":2},"c":{"_type":"null"}}
	// float int null
}
