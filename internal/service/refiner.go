package service

import (
	"context"

	"github.com/ticketero/ticketero/pkg/models"
)

// RefineOptions are the optional inputs of the refine use case.
type RefineOptions struct {
	// SourcesPath overrides the github-sources.json location.
	SourcesPath string
	// UserContext is free text the user supplies to steer the refinement.
	UserContext string
}

// RefineResult is the outcome of the refine use case.
type RefineResult struct {
	Ticket      models.Ticket
	Refinement  models.RefinementResult
	LoadedFiles []models.LoadedFile
}

// Refiner implements the ticket refinement use case.
type Refiner struct {
	tickets     TicketRepository
	interpreter Interpreter
	contexts    ContextProvider
}

// NewRefiner wires the refine use case.
func NewRefiner(tickets TicketRepository, interpreter Interpreter, contexts ContextProvider) *Refiner {
	return &Refiner{tickets: tickets, interpreter: interpreter, contexts: contexts}
}

// Execute produces a structured refinement proposal for a ticket.
func (r *Refiner) Execute(ctx context.Context, ticketKey string, opts RefineOptions) (RefineResult, error) {
	if !r.interpreter.HealthCheck(ctx) {
		return RefineResult{}, ErrLLMUnavailable
	}

	ticket, err := r.tickets.GetByKey(ctx, ticketKey)
	if err != nil {
		return RefineResult{}, err
	}

	contextResult, err := r.contexts.GetContext(ctx, opts.SourcesPath)
	if err != nil {
		return RefineResult{}, err
	}

	refinement, err := r.interpreter.RefineTicket(ctx,
		ticket.Summary, ticket.Description.PlainText(), contextResult.Content, opts.UserContext)
	if err != nil {
		return RefineResult{}, err
	}

	return RefineResult{
		Ticket:      ticket,
		Refinement:  refinement,
		LoadedFiles: contextResult.LoadedFiles,
	}, nil
}
