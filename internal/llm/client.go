// Package llm talks to an OpenAI-compatible llama.cpp endpoint and turns
// its free-form replies into typed results.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ticketero/ticketero/internal/config"
	"github.com/ticketero/ticketero/internal/logging"
)

// ErrUnreachable marks failures to reach the LLM endpoint. Callers use
// errors.Is to tell connectivity problems apart from malformed replies.
var ErrUnreachable = errors.New("no se pudo conectar con el LLM")

// UnreachableError carries the configured endpoint so the operator knows
// which server to start.
type UnreachableError struct {
	BaseURL string
	Err     error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("No se pudo conectar con el LLM. Asegúrate de que llama.cpp está corriendo en %s", e.BaseURL)
}

func (e *UnreachableError) Unwrap() error { return ErrUnreachable }

// Client is the gateway to the chat completion endpoint.
type Client struct {
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewClient creates a client for the configured llama.cpp endpoint.
// llama.cpp ignores API keys, so none is sent.
func NewClient(cfg config.LlamaConfig) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		temperature: 0.1,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// BaseURL returns the configured endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// FunctionSchema declares the structured-output contract for a request.
type FunctionSchema struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

type toolSpec struct {
	Type     string         `json:"type"`
	Function FunctionSchema `json:"function"`
}

type toolChoice struct {
	Type     string `json:"type"`
	Function struct {
		Name string `json:"name"`
	} `json:"function"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Tools       []toolSpec    `json:"tools,omitempty"`
	ToolChoice  *toolChoice   `json:"tool_choice,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

// Invoke sends a system+user prompt pair and returns the raw reply text.
func (c *Client) Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.send(ctx, systemPrompt, userPrompt, nil)
}

// InvokeStructured constrains the model to the given function schema and
// returns the raw arguments JSON. Enforcement by the server is best-effort,
// so callers still validate the result.
func (c *Client) InvokeStructured(ctx context.Context, systemPrompt, userPrompt string, schema FunctionSchema) (string, error) {
	return c.send(ctx, systemPrompt, userPrompt, &schema)
}

func (c *Client) send(ctx context.Context, systemPrompt, userPrompt string, schema *FunctionSchema) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.temperature,
	}

	if schema != nil {
		reqBody.Tools = []toolSpec{{Type: "function", Function: *schema}}
		choice := &toolChoice{Type: "function"}
		choice.Function.Name = schema.Name
		reqBody.ToolChoice = choice
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("no se pudo serializar la petición: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("no se pudo construir la petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logging.Debug("llm request", "model", c.model, "system_len", len(systemPrompt), "user_len", len(userPrompt), "structured", schema != nil)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UnreachableError{BaseURL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UnreachableError{BaseURL: c.baseURL, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("el LLM respondió con estado %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("respuesta del LLM no válida: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("respuesta del LLM sin contenido")
	}

	message := parsed.Choices[0].Message
	if len(message.ToolCalls) > 0 {
		return message.ToolCalls[0].Function.Arguments, nil
	}
	return message.Content, nil
}

// HealthCheck reports whether the endpoint answers its liveness probe.
// It never returns an error.
func (c *Client) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
