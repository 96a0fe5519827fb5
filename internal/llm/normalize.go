package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ticketero/ticketero/pkg/models"
)

// Fallback texts for replies that could not be parsed.
const (
	feedbackMissing        = "Sin comentarios adicionales."
	reasoningMissing       = "Sin razonamiento proporcionado."
	estimationUnstructured = "No se pudo obtener una estimación estructurada. Se asigna valor medio por defecto."
)

// Warnings synthesized when the model leaves refinement fields empty.
const (
	warnEmptyContext  = "No se pudo generar el contexto del ticket"
	warnEmptyTasks    = "No se pudieron generar las tareas técnicas"
	warnEmptyCriteria = "No se pudieron generar los criterios de aceptación"
)

// extractJSONObject locates the span between the first '{' and the last
// '}' of a reply. Models often wrap the JSON in prose; only the outermost
// brace pair is considered.
func extractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// parseObject extracts and decodes the JSON object of a reply.
func parseObject(raw string) (map[string]any, bool) {
	span, ok := extractJSONObject(raw)
	if !ok {
		return nil, false
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(span), &m); err != nil {
		return nil, false
	}
	return m, true
}

// NormalizeEvaluation parses an evaluation reply. Unparsable replies
// degrade to an inadequate evaluation carrying fallbackFeedback.
func NormalizeEvaluation(raw, fallbackFeedback string) models.EvaluationResult {
	m, ok := parseObject(raw)
	if !ok {
		return models.EvaluationResult{IsAdequate: false, Feedback: fallbackFeedback}
	}

	return models.EvaluationResult{
		IsAdequate: toBool(m["isAdequate"]),
		Feedback:   toStringOr(m["feedback"], feedbackMissing),
	}
}

// NormalizeEstimation parses an estimation reply. Out-of-scale points snap
// to the nearest Fibonacci member; unparsable replies default to the
// mid-scale value with an uncertainty note.
func NormalizeEstimation(raw string) models.EstimationResult {
	m, ok := parseObject(raw)
	if !ok {
		return models.EstimationResult{Points: 5, Reasoning: estimationUnstructured}
	}

	points, ok := toNumber(m["points"])
	if !ok {
		return models.EstimationResult{Points: 5, Reasoning: estimationUnstructured}
	}

	return models.EstimationResult{
		Points:    models.NearestFibonacci(points),
		Reasoning: toStringOr(m["reasoning"], reasoningMissing),
	}
}

// NormalizeRefinement parses a refinement reply, coercing each field and
// enforcing completeness independently of what the model claims: warnings
// are synthesized for empty required fields and IsComplete is recomputed
// from the final warning list.
func NormalizeRefinement(raw string) models.RefinementResult {
	m, ok := parseObject(raw)
	if !ok {
		return models.NewEmptyRefinement()
	}

	result := models.RefinementResult{
		SuggestedTitle:     toNullableString(m["suggestedTitle"]),
		Context:            strings.TrimSpace(toStringOr(m["context"], "")),
		Tasks:              toStringSlice(m["tasks"]),
		AcceptanceCriteria: toStringSlice(m["acceptanceCriteria"]),
		AdditionalNotes:    toNullableString(m["additionalNotes"]),
		Warnings:           toStringSlice(m["warnings"]),
	}

	if result.Context == "" {
		result.Warnings = appendMissing(result.Warnings, warnEmptyContext)
	}
	if len(result.Tasks) == 0 {
		result.Warnings = appendMissing(result.Warnings, warnEmptyTasks)
	}
	if len(result.AcceptanceCriteria) == 0 {
		result.Warnings = appendMissing(result.Warnings, warnEmptyCriteria)
	}

	result.IsComplete = len(result.Warnings) == 0
	return result
}

// NormalizeSearchParams validates a structured-output reply. The model
// provider's schema enforcement is best-effort, so the same tolerant
// coercion applies here as for free-form replies.
func NormalizeSearchParams(raw string) (models.SearchParams, error) {
	m, ok := parseObject(raw)
	if !ok {
		return models.SearchParams{}, fmt.Errorf("respuesta del LLM no válida: no contiene un objeto JSON")
	}
	return models.SearchParamsFromAny(m), nil
}

func appendMissing(warnings []string, warning string) []string {
	for _, w := range warnings {
		if w == warning {
			return warnings
		}
	}
	return append(warnings, warning)
}

// toBool coerces a decoded JSON value to a boolean, truthy-style.
func toBool(v any) bool {
	switch value := v.(type) {
	case bool:
		return value
	case string:
		return strings.EqualFold(strings.TrimSpace(value), "true")
	case float64:
		return value != 0
	default:
		return false
	}
}

// toStringOr coerces a decoded JSON value to a string, falling back to def
// when absent or blank.
func toStringOr(v any, def string) string {
	switch value := v.(type) {
	case nil:
		return def
	case string:
		if strings.TrimSpace(value) == "" {
			return def
		}
		return value
	default:
		return fmt.Sprint(value)
	}
}

// toNullableString maps null, "" and the literal "null" to nil.
func toNullableString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	normalized := models.NormalizeNullableString(s)
	if normalized == "" {
		return nil
	}
	return &normalized
}

// toStringSlice coerces a decoded JSON value to a string slice, defaulting
// to empty for missing or non-array values.
func toStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			if strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
			continue
		}
		out = append(out, fmt.Sprint(item))
	}
	return out
}

func toNumber(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(value), "%g", &f); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}
