package api_test

import (
	"errors"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregorym/ollamakit"
	"github.com/gregorym/ollamakit/api"
)

func TestDecodeShowResponse(t *testing.T) {
	in := []byte(`{
		"license": "MIT",
		"template": "{{ .Prompt }}",
		"modelfile": "FROM llama3",
		"parameters": "stop \"<|eot_id|>\"",
		"capabilities": ["completion", "tools"],
		"model_info": {
			"general.architecture": "llama",
			"llama.context_length": 8192,
			"llama.rope.freq_base": 500000.0,
			"tokenizer.ggml.add_bos_token": true
		}
	}`)

	resp, err := api.Decode[api.ShowResponse](in)
	require.NoError(t, err)
	assert.Equal(t, "MIT", resp.License)
	assert.Equal(t, []string{"completion", "tools"}, resp.Capabilities)

	n, ok := resp.ModelInfo.Int("llama.context_length")
	assert.True(t, ok)
	assert.Equal(t, int64(8192), n)
	assert.Equal(t, ollamakit.Value(ollamakit.Float(500000)), resp.ModelInfo["llama.rope.freq_base"])
	assert.Equal(t, ollamakit.Value(ollamakit.Bool(true)), resp.ModelInfo["tokenizer.ggml.add_bos_token"])
}

func TestDecodeShowResponse_WithoutModelInfo(t *testing.T) {
	resp, err := api.Decode[api.ShowResponse]([]byte(`{"license": "", "capabilities": []}`))
	require.NoError(t, err)
	assert.Nil(t, resp.ModelInfo)
}

func TestDecodeShowResponse_NestedModelInfo(t *testing.T) {
	in := []byte(`{"model_info": {"tokenizer.ggml.tokens": ["a", "b"]}}`)

	_, err := api.Decode[api.ShowResponse](in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ShowResponse")

	var tm ollamakit.ErrTypeMismatch
	require.True(t, errors.As(err, &tm))
	assert.Equal(t, "/model_info/tokenizer.ggml.tokens", tm.Path)
}

func TestEncodeEmbedRequest(t *testing.T) {
	req := api.NewEmbedRequest("all-minilm", "why is the sky blue?")
	b, err := api.Encode(req, json.Deterministic(true))
	require.NoError(t, err)
	assert.Equal(t, `{"model":"all-minilm","input":["why is the sky blue?"]}`, string(b))

	req.Options = &ollamakit.Options{}
	req.Options.Set("num_ctx", ollamakit.Int(2048))
	req.Options.Set("temperature", ollamakit.Float(0))
	req.KeepAlive = "5m"

	b, err = api.Encode(req, json.Deterministic(true))
	require.NoError(t, err)
	assert.Equal(t,
		`{"model":"all-minilm","input":["why is the sky blue?"],"options":{"num_ctx":2048,"temperature":0.0},"keep_alive":"5m"}`,
		string(b))

	back, err := api.Decode[api.EmbedRequest](b)
	require.NoError(t, err)
	v, ok := back.Options.Get("temperature")
	require.True(t, ok)
	assert.Equal(t, ollamakit.OptionValue(ollamakit.Float(0)), v)
}

func TestDecodeEmbedResponse(t *testing.T) {
	resp, err := api.Decode[api.EmbedResponse]([]byte(`{"embeddings": [[0.5, -1], [2]]}`))
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0.5, -1}, {2}}, resp.Embeddings)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := api.Decode[api.EmbedResponse]([]byte(`{"embeddings": "nope"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EmbedResponse")
}
