// Package service sequences the collaborators into the CLI use cases.
package service

import (
	"context"

	"github.com/ticketero/ticketero/pkg/models"
)

// TicketRepository is the issue tracker the use cases read from.
type TicketRepository interface {
	Search(ctx context.Context, jql string, limit int) ([]models.Ticket, error)
	GetByKey(ctx context.Context, key string) (models.Ticket, error)
	HealthCheck(ctx context.Context) bool
}

// Interpreter is the LLM acting as natural language interpreter. It never
// executes actions directly.
type Interpreter interface {
	InterpretQuery(ctx context.Context, systemPrompt, query string) (models.SearchParams, error)
	EvaluateDescription(ctx context.Context, description string) (models.EvaluationResult, error)
	EvaluateTitle(ctx context.Context, title string) (models.EvaluationResult, error)
	EstimateEffort(ctx context.Context, summary, description, repositoryContext, userContext string) (models.EstimationResult, error)
	RefineTicket(ctx context.Context, summary, description, repositoryContext, userContext string) (models.RefinementResult, error)
	HealthCheck(ctx context.Context) bool
}

// ContextProvider aggregates repository documentation for the prompts.
type ContextProvider interface {
	GetContext(ctx context.Context, sourcesPath string) (models.ContextResult, error)
}
