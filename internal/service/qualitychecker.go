package service

import (
	"context"

	"github.com/ticketero/ticketero/pkg/models"
)

const llmDownFeedback = "No se pudo conectar con el LLM para evaluar este campo."

// QualityChecker implements the quality report use case.
type QualityChecker struct {
	tickets     TicketRepository
	interpreter Interpreter
}

// NewQualityChecker wires the quality check use case.
func NewQualityChecker(tickets TicketRepository, interpreter Interpreter) *QualityChecker {
	return &QualityChecker{tickets: tickets, interpreter: interpreter}
}

// Execute evaluates the four quality criteria of a ticket. The component
// and story point checks come straight from ticket data; the title and
// description evaluations need the LLM and degrade to failed checks with a
// connectivity note when it is down, instead of failing the whole report.
func (q *QualityChecker) Execute(ctx context.Context, ticketKey string) (models.QualityReport, error) {
	ticket, err := q.tickets.GetByKey(ctx, ticketKey)
	if err != nil {
		return models.QualityReport{}, err
	}

	report := models.QualityReport{
		Ticket:         ticket,
		HasComponent:   ticket.HasComponent(),
		HasStoryPoints: ticket.HasStoryPoints(),
	}

	if q.interpreter.HealthCheck(ctx) {
		report.DescriptionEvaluation, err = q.interpreter.EvaluateDescription(ctx, ticket.Description.PlainText())
		if err != nil {
			return models.QualityReport{}, err
		}

		report.TitleEvaluation, err = q.interpreter.EvaluateTitle(ctx, ticket.Summary)
		if err != nil {
			return models.QualityReport{}, err
		}
	} else {
		report.DescriptionEvaluation = models.EvaluationResult{IsAdequate: false, Feedback: llmDownFeedback}
		report.TitleEvaluation = models.EvaluationResult{IsAdequate: false, Feedback: llmDownFeedback}
	}

	for _, passed := range []bool{
		report.HasComponent,
		report.HasStoryPoints,
		report.DescriptionEvaluation.IsAdequate,
		report.TitleEvaluation.IsAdequate,
	} {
		report.TotalChecks++
		if passed {
			report.PassedChecks++
		}
	}

	return report, nil
}
