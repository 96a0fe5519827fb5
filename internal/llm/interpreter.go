package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/ticketero/ticketero/pkg/models"
)

// Fixed evaluations returned without calling the model.
const (
	emptyDescriptionFeedback = "La descripción está vacía o no existe."
	emptyTitleFeedback       = "El título está vacío o no existe."
	descriptionEvalFallback  = "No se pudo evaluar la descripción correctamente."
	titleEvalFallback        = "No se pudo evaluar el título correctamente."
	descriptionEvalError     = "Error al evaluar la descripción."
	titleEvalError           = "Error al evaluar el título."
	estimationError          = "Error al estimar el ticket. Se asigna valor medio por defecto."
)

// InterpretQuery turns a natural language query into search parameters
// using the structured-output contract.
func (c *Client) InterpretQuery(ctx context.Context, systemPrompt, query string) (models.SearchParams, error) {
	raw, err := c.InvokeStructured(ctx, systemPrompt, query, SearchParamsSchema())
	if err != nil {
		if errors.Is(err, ErrUnreachable) {
			return models.SearchParams{}, err
		}
		return models.SearchParams{}, fmt.Errorf("error al interpretar la consulta: %w", err)
	}

	params, err := NormalizeSearchParams(raw)
	if err != nil {
		return models.SearchParams{}, fmt.Errorf("error al interpretar la consulta: %w", err)
	}
	return params, nil
}

// EvaluateDescription judges whether a ticket description is adequate. A
// blank description short-circuits to an inadequate evaluation without
// calling the model.
func (c *Client) EvaluateDescription(ctx context.Context, description string) (models.EvaluationResult, error) {
	return c.evaluateField(ctx, description, DescriptionEvaluationPrompt,
		BuildDescriptionEvaluationPrompt, emptyDescriptionFeedback,
		descriptionEvalFallback, descriptionEvalError)
}

// EvaluateTitle judges whether a ticket title is clear and adequate. A
// blank title short-circuits like a blank description.
func (c *Client) EvaluateTitle(ctx context.Context, title string) (models.EvaluationResult, error) {
	return c.evaluateField(ctx, title, TitleEvaluationPrompt,
		BuildTitleEvaluationPrompt, emptyTitleFeedback,
		titleEvalFallback, titleEvalError)
}

func (c *Client) evaluateField(
	ctx context.Context,
	input, systemPrompt string,
	buildPrompt func(string) string,
	emptyFeedback, parseFallback, errorFeedback string,
) (models.EvaluationResult, error) {
	if isBlank(input) {
		return models.EvaluationResult{IsAdequate: false, Feedback: emptyFeedback}, nil
	}

	raw, err := c.Invoke(ctx, systemPrompt, buildPrompt(input))
	if err != nil {
		if errors.Is(err, ErrUnreachable) {
			return models.EvaluationResult{}, err
		}
		return models.EvaluationResult{IsAdequate: false, Feedback: errorFeedback}, nil
	}

	return NormalizeEvaluation(raw, parseFallback), nil
}

// EstimateEffort sizes a ticket on the Fibonacci scale. Malformed model
// output degrades to the mid-scale default; only connectivity failures are
// returned as errors.
func (c *Client) EstimateEffort(ctx context.Context, summary, description, repositoryContext, userContext string) (models.EstimationResult, error) {
	prompt := BuildEstimationPrompt(summary, description, repositoryContext, userContext)

	raw, err := c.Invoke(ctx, EstimationPrompt, prompt)
	if err != nil {
		if errors.Is(err, ErrUnreachable) {
			return models.EstimationResult{}, err
		}
		return models.EstimationResult{Points: 5, Reasoning: estimationError}, nil
	}

	return NormalizeEstimation(raw), nil
}

// RefineTicket produces a structured refinement proposal for a ticket.
func (c *Client) RefineTicket(ctx context.Context, summary, description, repositoryContext, userContext string) (models.RefinementResult, error) {
	prompt := BuildRefinementPrompt(summary, description, repositoryContext, userContext)

	raw, err := c.Invoke(ctx, RefinementPrompt, prompt)
	if err != nil {
		if errors.Is(err, ErrUnreachable) {
			return models.RefinementResult{}, err
		}
		return models.NewEmptyRefinement(), nil
	}

	return NormalizeRefinement(raw), nil
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
