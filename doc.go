// SPDX-FileCopyrightText: © 2024 Gregory M. and OllamaKit contributors. All rights reserved.
// SPDX-License-Identifier: MIT
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package [ollamakit] models the loosely typed parts of model-server JSON
// payloads, using the Go JSON V2 experiment
// ([github.com/go-json-experiment/json]).
//
// Two shapes show up again and again: metadata maps whose values may be any
// JSON scalar, and option bags of tuning parameters keyed by name.
//
// # Scalar values
//
// [Value] is a closed union over the JSON scalars: [String], [Int], [Float],
// [Bool] and [Null]. [Decode] turns a single token into a Value, trying null,
// booleans, exact 64-bit integers, floats and strings, in that order:
//
//	v, _ := ollamakit.Decode([]byte(`4096`))
//	fmt.Println(v.Kind()) // int
//
// Upstream producers are inconsistent about quoting, so Values expose
// best-effort coercions that never fail:
//
//	ctx, ok := ollamakit.String("4096").AsInt() // 4096, true
//	_, ok = ollamakit.Null{}.AsString()         // ok == false
//
// Every Value implementation encodes itself. A whole-number [Float] is
// written with a fraction ("3.0") so that it decodes back to a Float:
//
//	b, _ := json.Marshal(ollamakit.Float(3)) // b == []byte("3.0")
//
// # Metadata
//
// [Metadata] decodes one flat JSON object of scalars and offers typed
// lookups:
//
//	var m ollamakit.Metadata
//	_ = json.Unmarshal([]byte(`{"llama.context_length": "4096"}`), &m)
//	n, _ := m.Int("llama.context_length") // n == 4096
//
// To decode the [Value] interface in other positions, such as []Value or a
// struct field, pass [JSONOptions] to [json.Unmarshal].
//
// # Options
//
// [Options] holds only [String], [Int] and [Float] values. [OptionValue]
// enforces this at compile time, so an option bag always encodes every
// member:
//
//	var opts ollamakit.Options
//	opts.Set("top_k", ollamakit.Int(40))
//	opts.Set("stop", ollamakit.String("\n"))
//	// opts.Set("raw", ollamakit.Bool(true)) does not compile
//
// # Tagged encoding
//
// [TaggedJSONOptions] writes each Value together with its kind, using
// a discriminator envelope:
//
//	{
//	  "_type": "float",
//	  "_value": 2.0
//	}
//
// The keys are configured with [Envelope]. [Options] and [Metadata] are not
// affected: their members are always written as plain scalars.
//
// [github.com/go-json-experiment/json]: https://github.com/go-json-experiment/json
package ollamakit
