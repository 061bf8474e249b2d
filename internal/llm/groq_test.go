package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGroq(t *testing.T, handler http.HandlerFunc) *GroqClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("GROQ_API_URL", srv.URL+"/openai/v1/chat/completions")
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("GROQ_MODEL", "test-model")
	return NewGroqClient()
}

func TestGroqComplete(t *testing.T) {
	var got chatRequest

	client := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"olá"}}]}`))
	})

	out, err := client.Complete(context.Background(), SearchRequest("Jiboia"))
	require.NoError(t, err)
	assert.Equal(t, "olá", out)

	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "Jiboia")
	assert.Equal(t, 0.3, got.Temperature)
	assert.Equal(t, 300, got.MaxTokens)
	assert.Equal(t, "groq:test-model", client.Name())
}

func TestGroqErrorStatus(t *testing.T) {
	client := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	})

	_, err := client.Complete(context.Background(), Request{Prompt: "oi"})
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "429")
}

func TestGroqEmptyChoices(t *testing.T) {
	client := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.Complete(context.Background(), Request{Prompt: "oi"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGroqBadJSON(t *testing.T) {
	client := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})

	_, err := client.Complete(context.Background(), Request{Prompt: "oi"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGroqMissingKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	_, err := NewGroqClient().Complete(context.Background(), Request{Prompt: "oi"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGroqDefaults(t *testing.T) {
	t.Setenv("GROQ_API_URL", "")
	t.Setenv("GROQ_MODEL", "")

	c := NewGroqClient()
	assert.Equal(t, defaultGroqURL, c.apiURL)
	assert.Equal(t, defaultGroqModel, c.model)
}
