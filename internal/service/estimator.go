package service

import (
	"context"
	"fmt"

	"github.com/ticketero/ticketero/internal/llm"
	"github.com/ticketero/ticketero/pkg/models"
)

// ErrLLMUnavailable is returned by the health preflight so a doomed use
// case fails before any ticket or context fetching happens.
var ErrLLMUnavailable = fmt.Errorf("%w. Asegúrate de que el servidor está corriendo", llm.ErrUnreachable)

// EstimateResult is the outcome of the estimate use case.
type EstimateResult struct {
	Ticket      models.Ticket
	Estimation  models.EstimationResult
	LoadedFiles []models.LoadedFile
}

// Estimator implements the effort estimation use case.
type Estimator struct {
	tickets     TicketRepository
	interpreter Interpreter
	contexts    ContextProvider
}

// NewEstimator wires the estimate use case.
func NewEstimator(tickets TicketRepository, interpreter Interpreter, contexts ContextProvider) *Estimator {
	return &Estimator{tickets: tickets, interpreter: interpreter, contexts: contexts}
}

// Execute estimates the effort of a ticket in Fibonacci points.
func (e *Estimator) Execute(ctx context.Context, ticketKey, sourcesPath string) (EstimateResult, error) {
	if !e.interpreter.HealthCheck(ctx) {
		return EstimateResult{}, ErrLLMUnavailable
	}

	ticket, err := e.tickets.GetByKey(ctx, ticketKey)
	if err != nil {
		return EstimateResult{}, err
	}

	contextResult, err := e.contexts.GetContext(ctx, sourcesPath)
	if err != nil {
		// Fetch failures are already absorbed inside the aggregator, so an
		// error here means the sources configuration itself is broken.
		return EstimateResult{}, err
	}

	estimation, err := e.interpreter.EstimateEffort(ctx,
		ticket.Summary, ticket.Description.PlainText(), contextResult.Content, "")
	if err != nil {
		return EstimateResult{}, err
	}

	return EstimateResult{
		Ticket:      ticket,
		Estimation:  estimation,
		LoadedFiles: contextResult.LoadedFiles,
	}, nil
}
