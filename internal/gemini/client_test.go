package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateResponse(texts ...string) map[string]any {
	parts := make([]map[string]any, 0, len(texts))
	for _, t := range texts {
		parts = append(parts, map[string]any{"text": t})
	}
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": parts}},
		},
	}
}

func TestInfer_RequestShape(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		require.NoError(t, json.NewEncoder(w).Encode(candidateResponse("ok")))
	}))
	defer srv.Close()

	c := NewClient(Config{
		APIKey:      "secret",
		Model:       "gemini-2.0-flash-exp",
		BaseURL:     srv.URL,
		Temperature: 0.01,
	}, nil)

	image := []byte{0x89, 'P', 'N', 'G'}
	text, err := c.Infer(context.Background(), image, "describe this page")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)

	assert.Equal(t, "/models/gemini-2.0-flash-exp:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)

	// System instruction rides on every request.
	assert.Contains(t, gotBody, "system_instruction")

	contents := gotBody["contents"].([]any)
	require.Len(t, contents, 1)
	parts := contents[0].(map[string]any)["parts"].([]any)
	require.Len(t, parts, 2)

	inline := parts[0].(map[string]any)["inline_data"].(map[string]any)
	assert.Equal(t, "image/png", inline["mime_type"])
	assert.Equal(t, base64.StdEncoding.EncodeToString(image), inline["data"])
	assert.Equal(t, "describe this page", parts[1].(map[string]any)["text"])

	gen := gotBody["generationConfig"].(map[string]any)
	assert.InDelta(t, 0.01, gen["temperature"], 1e-6)
	assert.InDelta(t, 1.0, gen["topP"], 1e-6)
	assert.EqualValues(t, 32, gen["topK"])
	assert.EqualValues(t, 8192, gen["maxOutputTokens"])
}

func TestInfer_ConcatenatesParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(candidateResponse("{\"document_", "type\":\"other\"}")))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	text, err := c.Infer(context.Background(), nil, "p")
	require.NoError(t, err)
	assert.Equal(t, `{"document_type":"other"}`, text)
}

func TestInfer_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	_, err := c.Infer(context.Background(), nil, "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestInfer_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	_, err := c.Infer(context.Background(), nil, "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestInfer_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	_, err := c.Infer(ctx, nil, "p")
	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{APIKey: "k"}, nil)
	assert.Equal(t, "gemini-2.0-flash-exp", c.cfg.Model)
	assert.Equal(t, defaultBaseURL, c.cfg.BaseURL)
	assert.Equal(t, float32(1.0), c.cfg.TopP)
	assert.Equal(t, 32, c.cfg.TopK)
	assert.Equal(t, 8192, c.cfg.MaxOutputTokens)
}
