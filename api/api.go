// Package api holds the request and response records that carry
// [ollamakit.Metadata] and [ollamakit.Options] over the wire. It performs no
// I/O.
package api

import (
	"fmt"

	"github.com/go-json-experiment/json"

	"github.com/gregorym/ollamakit"
)

// ShowResponse describes a single model.
type ShowResponse struct {
	License      string   `json:"license"`
	Template     string   `json:"template"`
	Modelfile    string   `json:"modelfile"`
	Parameters   string   `json:"parameters"`
	Capabilities []string `json:"capabilities"`

	// ModelInfo holds detailed model metadata. Values may be numbers,
	// booleans, strings or null.
	ModelInfo ollamakit.Metadata `json:"model_info,omitempty"`
}

// EmbedRequest asks for embeddings of one or more inputs.
type EmbedRequest struct {
	Model   string             `json:"model"`
	Input   []string           `json:"input"`
	Options *ollamakit.Options `json:"options,omitempty"`

	// KeepAlive controls how long the model stays loaded after the request,
	// e.g. "5m".
	KeepAlive string `json:"keep_alive,omitempty"`
}

func NewEmbedRequest(model string, input ...string) *EmbedRequest {
	return &EmbedRequest{
		Model: model,
		Input: input,
	}
}

// EmbedResponse carries one embedding per input.
type EmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings,omitempty"`
}

// Decode unmarshals a record, naming the record type on failure.
func Decode[T any](b []byte, opts ...json.Options) (*T, error) {
	var v T
	if err := json.Unmarshal(b, &v, opts...); err != nil {
		return nil, fmt.Errorf("failed to decode %T: %w", v, err)
	}
	return &v, nil
}

// Encode marshals a record, naming the record type on failure.
func Encode(v any, opts ...json.Options) ([]byte, error) {
	b, err := json.Marshal(v, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", v, err)
	}
	return b, nil
}
