package service

import (
	"context"

	"github.com/ticketero/ticketero/pkg/models"
)

// QueryBuilder renders search parameters into a tracker query string plus
// a human readable explanation of the applied filters.
type QueryBuilder func(models.SearchParams) (string, []string)

// Search implements the natural language search use case.
type Search struct {
	tickets      TicketRepository
	interpreter  Interpreter
	buildQuery   QueryBuilder
	systemPrompt string
}

// NewSearch wires the search use case. systemPrompt carries the Jira
// vocabulary the interpreter grounds on.
func NewSearch(tickets TicketRepository, interpreter Interpreter, buildQuery QueryBuilder, systemPrompt string) *Search {
	return &Search{
		tickets:      tickets,
		interpreter:  interpreter,
		buildQuery:   buildQuery,
		systemPrompt: systemPrompt,
	}
}

// Execute interprets a natural language query, builds the tracker query
// and runs it.
func (s *Search) Execute(ctx context.Context, query string, limit int) (models.SearchResult, error) {
	if !s.interpreter.HealthCheck(ctx) {
		return models.SearchResult{}, ErrLLMUnavailable
	}

	params, err := s.interpreter.InterpretQuery(ctx, s.systemPrompt, query)
	if err != nil {
		return models.SearchResult{}, err
	}

	jql, explanation := s.buildQuery(params)

	tickets, err := s.tickets.Search(ctx, jql, limit)
	if err != nil {
		return models.SearchResult{}, err
	}

	return models.SearchResult{
		Tickets:     tickets,
		JQL:         jql,
		Explanation: explanation,
	}, nil
}
