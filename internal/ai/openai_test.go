package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, OpenAIModel, req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":" {\"action\":\"none\"} "}}]}`))
	}))
	defer server.Close()

	provider := NewOpenAI("test-key", server.URL, 2*time.Second)
	text, err := provider.Complete(context.Background(), "sys prompt", "hi")
	require.NoError(t, err)
	assert.Equal(t, `{"action":"none"}`, text)
}

func TestOpenAICompleteErrors(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		provider := NewOpenAI("test-key", server.URL, 2*time.Second)
		_, err := provider.Complete(context.Background(), "sys", "hi")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 429")
	})

	t.Run("empty choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		provider := NewOpenAI("test-key", server.URL, 2*time.Second)
		_, err := provider.Complete(context.Background(), "sys", "hi")
		require.Error(t, err)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		provider := NewOpenAI("test-key", server.URL, 2*time.Second)
		_, err := provider.Complete(context.Background(), "sys", "hi")
		require.Error(t, err)
	})
}

func TestOpenAIBaseURLNormalization(t *testing.T) {
	provider := NewOpenAI("key", "  https://example.com/ ", 0)
	assert.Equal(t, "https://example.com", provider.baseURL)

	provider = NewOpenAI("key", "", 0)
	assert.Equal(t, "https://api.openai.com", provider.baseURL)
}
