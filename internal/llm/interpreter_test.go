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
	"github.com/ticketero/ticketero/pkg/models"
)

// newCountingLLM serves a fixed reply and counts requests.
func newCountingLLM(t *testing.T, reply string) (*Client, *int) {
	t.Helper()

	calls := new(int)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(reply))
	}))
	t.Cleanup(server.Close)

	return NewClient(config.LlamaConfig{BaseURL: server.URL, Model: "default"}), calls
}

func contentReply(content string) string {
	quoted, _ := json.Marshal(content)
	return `{"choices": [{"message": {"content": ` + string(quoted) + `}}]}`
}

func TestEvaluateDescriptionBlankSkipsModel(t *testing.T) {
	client, calls := newCountingLLM(t, contentReply(`{"isAdequate": true, "feedback": "ok"}`))

	result, err := client.EvaluateDescription(context.Background(), "   \n\t")
	require.NoError(t, err)
	assert.False(t, result.IsAdequate)
	assert.Equal(t, "La descripción está vacía o no existe.", result.Feedback)
	assert.Zero(t, *calls)
}

func TestEvaluateTitleBlankSkipsModel(t *testing.T) {
	client, calls := newCountingLLM(t, contentReply(`{"isAdequate": true, "feedback": "ok"}`))

	result, err := client.EvaluateTitle(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, result.IsAdequate)
	assert.Equal(t, "El título está vacío o no existe.", result.Feedback)
	assert.Zero(t, *calls)
}

func TestEvaluateDescription(t *testing.T) {
	client, calls := newCountingLLM(t, contentReply(`{"isAdequate": true, "feedback": "Descripción clara y completa."}`))

	result, err := client.EvaluateDescription(context.Background(), "Integrar el módulo de facturas con el SRI usando SOAP.")
	require.NoError(t, err)
	assert.True(t, result.IsAdequate)
	assert.Equal(t, "Descripción clara y completa.", result.Feedback)
	assert.Equal(t, 1, *calls)
}

func TestEvaluateDescriptionUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewClient(config.LlamaConfig{BaseURL: server.URL, Model: "default"})

	_, err := client.EvaluateDescription(context.Background(), "algo de texto")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreachable))
}

func TestEvaluateDescriptionServerErrorDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	client := NewClient(config.LlamaConfig{BaseURL: server.URL, Model: "default"})

	result, err := client.EvaluateDescription(context.Background(), "algo de texto")
	require.NoError(t, err)
	assert.False(t, result.IsAdequate)
	assert.Equal(t, "Error al evaluar la descripción.", result.Feedback)
}

func TestEstimateEffort(t *testing.T) {
	client, _ := newCountingLLM(t, contentReply(`{"points": 21, "reasoning": "afecta a tres servicios"}`))

	result, err := client.EstimateEffort(context.Background(), "Integrar pagos", "detalle", "", "")
	require.NoError(t, err)
	assert.Equal(t, 13, result.Points)
	assert.Equal(t, "afecta a tres servicios", result.Reasoning)
}

func TestEstimateEffortServerErrorDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)
	client := NewClient(config.LlamaConfig{BaseURL: server.URL, Model: "default"})

	result, err := client.EstimateEffort(context.Background(), "Integrar pagos", "detalle", "", "")
	require.NoError(t, err)
	assert.Equal(t, 5, result.Points)
	assert.Equal(t, "Error al estimar el ticket. Se asigna valor medio por defecto.", result.Reasoning)
}

func TestRefineTicket(t *testing.T) {
	client, _ := newCountingLLM(t, contentReply(`{
		"suggestedTitle": null,
		"context": "Contexto del ticket",
		"tasks": ["tarea 1"],
		"acceptanceCriteria": ["criterio 1"],
		"additionalNotes": null,
		"warnings": [],
		"isComplete": true
	}`))

	result, err := client.RefineTicket(context.Background(), "Título", "descripción", "", "")
	require.NoError(t, err)
	assert.Nil(t, result.SuggestedTitle)
	assert.Equal(t, "Contexto del ticket", result.Context)
	assert.True(t, result.IsComplete)
}

func TestRefineTicketServerErrorDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	client := NewClient(config.LlamaConfig{BaseURL: server.URL, Model: "default"})

	result, err := client.RefineTicket(context.Background(), "Título", "descripción", "", "")
	require.NoError(t, err)
	assert.Equal(t, models.NewEmptyRefinement(), result)
}

func TestInterpretQuery(t *testing.T) {
	client, _ := newCountingLLM(t, `{"choices": [{"message": {
		"content": "",
		"tool_calls": [{"function": {"name": "search_params", "arguments": "{\"project\": \"TRD\", \"issueType\": null, \"status\": \"Nueva\", \"component\": null, \"textSearch\": null}"}}]
	}}]}`)

	params, err := client.InterpretQuery(context.Background(), "sistema", "tickets nuevos de TRD")
	require.NoError(t, err)
	assert.Equal(t, "TRD", params.Project)
	assert.Equal(t, models.StringList{"Nueva"}, params.Status)
	assert.Empty(t, params.IssueType)
}

func TestInterpretQueryUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewClient(config.LlamaConfig{BaseURL: server.URL, Model: "default"})

	_, err := client.InterpretQuery(context.Background(), "sistema", "consulta")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreachable))
}

func TestInterpretQueryGarbageReply(t *testing.T) {
	client, _ := newCountingLLM(t, contentReply("no hay parámetros"))

	_, err := client.InterpretQuery(context.Background(), "sistema", "consulta")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnreachable))
	assert.Contains(t, err.Error(), "error al interpretar la consulta")
}
