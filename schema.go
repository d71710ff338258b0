package ollamakit

import "github.com/invopop/jsonschema"

// JSONSchema describes Metadata as an object of arbitrary scalars.
func (Metadata) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Description:          "Flat map of scalar metadata values.",
		AdditionalProperties: scalarSchema("string", "integer", "number", "boolean", "null"),
	}
}

// JSONSchema describes Options as an object of strings and numbers.
func (Options) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Description:          "Flat map of request options.",
		AdditionalProperties: scalarSchema("string", "integer", "number"),
	}
}

func scalarSchema(types ...string) *jsonschema.Schema {
	s := &jsonschema.Schema{}
	for _, t := range types {
		s.AnyOf = append(s.AnyOf, &jsonschema.Schema{Type: t})
	}
	return s
}
