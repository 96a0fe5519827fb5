package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketero/ticketero/internal/config"
)

func newTestLLM(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.LlamaConfig{BaseURL: server.URL, Model: "default"})
}

func TestInvoke(t *testing.T) {
	client := newTestLLM(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "default", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "instrucciones", req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Empty(t, req.Tools)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"content": "respuesta"}}]}`))
	}))

	reply, err := client.Invoke(context.Background(), "instrucciones", "pregunta")
	require.NoError(t, err)
	assert.Equal(t, "respuesta", reply)
}

func TestInvokeStructuredReturnsToolArguments(t *testing.T) {
	client := newTestLLM(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Tools, 1)
		assert.Equal(t, "function", req.Tools[0].Type)
		assert.Equal(t, "search_params", req.Tools[0].Function.Name)
		require.NotNil(t, req.ToolChoice)
		assert.Equal(t, "search_params", req.ToolChoice.Function.Name)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {
			"content": "",
			"tool_calls": [{"function": {"name": "search_params", "arguments": "{\"project\": \"TRD\"}"}}]
		}}]}`))
	}))

	reply, err := client.InvokeStructured(context.Background(), "sistema", "consulta", SearchParamsSchema())
	require.NoError(t, err)
	assert.JSONEq(t, `{"project": "TRD"}`, reply)
}

func TestInvokeServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(config.LlamaConfig{BaseURL: server.URL, Model: "default"})

	_, err := client.Invoke(context.Background(), "sistema", "pregunta")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreachable))

	var unreachable *UnreachableError
	require.True(t, errors.As(err, &unreachable))
	assert.Equal(t, server.URL, unreachable.BaseURL)
	assert.Contains(t, err.Error(), "llama.cpp está corriendo en "+server.URL)
}

func TestInvokeServerError(t *testing.T) {
	client := newTestLLM(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("model crashed"))
	}))

	_, err := client.Invoke(context.Background(), "sistema", "pregunta")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnreachable))
	assert.Contains(t, err.Error(), "estado 500")
}

func TestInvokeEmptyChoices(t *testing.T) {
	client := newTestLLM(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": []}`))
	}))

	_, err := client.Invoke(context.Background(), "sistema", "pregunta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sin contenido")
}

func TestHealthCheckEndpoint(t *testing.T) {
	healthy := newTestLLM(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	assert.True(t, healthy.HealthCheck(context.Background()))

	loading := newTestLLM(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	assert.False(t, loading.HealthCheck(context.Background()))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	down := NewClient(config.LlamaConfig{BaseURL: server.URL, Model: "default"})
	assert.False(t, down.HealthCheck(context.Background()))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcde...", truncate("abcdefgh", 5))
}
