package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketero/ticketero/internal/jira"
	"github.com/ticketero/ticketero/pkg/models"
)

type fakeTickets struct {
	tickets    map[string]models.Ticket
	searchJQL  string
	searchHits []models.Ticket
	searchErr  error
	healthy    bool
}

func (f *fakeTickets) Search(ctx context.Context, jql string, limit int) ([]models.Ticket, error) {
	f.searchJQL = jql
	return f.searchHits, f.searchErr
}

func (f *fakeTickets) GetByKey(ctx context.Context, key string) (models.Ticket, error) {
	ticket, ok := f.tickets[key]
	if !ok {
		return models.Ticket{}, errors.New("issue " + key + " no encontrado")
	}
	return ticket, nil
}

func (f *fakeTickets) HealthCheck(ctx context.Context) bool { return f.healthy }

type fakeInterpreter struct {
	healthy bool

	params    models.SearchParams
	paramsErr error

	descriptionEval models.EvaluationResult
	titleEval       models.EvaluationResult

	estimation models.EstimationResult
	refinement models.RefinementResult

	gotQuery       string
	gotUserContext string
	gotRepoContext string
	evalCalls      int
}

func (f *fakeInterpreter) InterpretQuery(ctx context.Context, systemPrompt, query string) (models.SearchParams, error) {
	f.gotQuery = query
	return f.params, f.paramsErr
}

func (f *fakeInterpreter) EvaluateDescription(ctx context.Context, description string) (models.EvaluationResult, error) {
	f.evalCalls++
	return f.descriptionEval, nil
}

func (f *fakeInterpreter) EvaluateTitle(ctx context.Context, title string) (models.EvaluationResult, error) {
	f.evalCalls++
	return f.titleEval, nil
}

func (f *fakeInterpreter) EstimateEffort(ctx context.Context, summary, description, repositoryContext, userContext string) (models.EstimationResult, error) {
	f.gotRepoContext = repositoryContext
	f.gotUserContext = userContext
	return f.estimation, nil
}

func (f *fakeInterpreter) RefineTicket(ctx context.Context, summary, description, repositoryContext, userContext string) (models.RefinementResult, error) {
	f.gotRepoContext = repositoryContext
	f.gotUserContext = userContext
	return f.refinement, nil
}

func (f *fakeInterpreter) HealthCheck(ctx context.Context) bool { return f.healthy }

type fakeContexts struct {
	result models.ContextResult
	err    error
	calls  int
}

func (f *fakeContexts) GetContext(ctx context.Context, sourcesPath string) (models.ContextResult, error) {
	f.calls++
	return f.result, f.err
}

func someTicket() models.Ticket {
	points := 5.0
	return models.Ticket{
		Key:         "TRD-1",
		Summary:     "Integrar facturación electrónica",
		Status:      "Nueva",
		Type:        "Tarea",
		Components:  []string{"CRM"},
		StoryPoints: &points,
		Description: models.NewTextDescription("Conectar el módulo de facturas con el SRI."),
	}
}

func TestSearchExecute(t *testing.T) {
	tickets := &fakeTickets{
		searchHits: []models.Ticket{someTicket()},
	}
	interpreter := &fakeInterpreter{
		healthy: true,
		params:  models.SearchParams{Project: "TRD"},
	}

	search := NewSearch(tickets, interpreter, jira.BuildJQL, "prompt del sistema")
	result, err := search.Execute(context.Background(), "tickets de TRD", 20)
	require.NoError(t, err)

	assert.Equal(t, "tickets de TRD", interpreter.gotQuery)
	assert.Equal(t, `project = "TRD" ORDER BY updated DESC`, result.JQL)
	assert.Equal(t, result.JQL, tickets.searchJQL)
	assert.Equal(t, []string{"Proyecto: TRD"}, result.Explanation)
	require.Len(t, result.Tickets, 1)
	assert.Equal(t, "TRD-1", result.Tickets[0].Key)
}

func TestSearchExecutePreflight(t *testing.T) {
	search := NewSearch(&fakeTickets{}, &fakeInterpreter{healthy: false}, jira.BuildJQL, "")

	_, err := search.Execute(context.Background(), "cualquier cosa", 20)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLLMUnavailable)
}

func TestSearchExecuteInterpreterError(t *testing.T) {
	interpreter := &fakeInterpreter{
		healthy:   true,
		paramsErr: errors.New("error al interpretar la consulta"),
	}
	search := NewSearch(&fakeTickets{}, interpreter, jira.BuildJQL, "")

	_, err := search.Execute(context.Background(), "consulta", 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interpretar la consulta")
}

func TestEstimatorExecute(t *testing.T) {
	tickets := &fakeTickets{tickets: map[string]models.Ticket{"TRD-1": someTicket()}}
	interpreter := &fakeInterpreter{
		healthy:    true,
		estimation: models.EstimationResult{Points: 8, Reasoning: "integración externa"},
	}
	contexts := &fakeContexts{result: models.ContextResult{
		Content:     "# Contexto de Código\n\ndocs",
		LoadedFiles: []models.LoadedFile{{Owner: "acme", Repo: "backend", Path: "README.md"}},
	}}

	estimator := NewEstimator(tickets, interpreter, contexts)
	result, err := estimator.Execute(context.Background(), "TRD-1", "")
	require.NoError(t, err)

	assert.Equal(t, 8, result.Estimation.Points)
	assert.Equal(t, "TRD-1", result.Ticket.Key)
	assert.Len(t, result.LoadedFiles, 1)
	assert.Equal(t, "# Contexto de Código\n\ndocs", interpreter.gotRepoContext)
	assert.Empty(t, interpreter.gotUserContext)
	assert.Equal(t, 1, contexts.calls)
}

func TestEstimatorExecutePreflight(t *testing.T) {
	tickets := &fakeTickets{tickets: map[string]models.Ticket{"TRD-1": someTicket()}}
	contexts := &fakeContexts{}

	estimator := NewEstimator(tickets, &fakeInterpreter{healthy: false}, contexts)
	_, err := estimator.Execute(context.Background(), "TRD-1", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLLMUnavailable)
	assert.Zero(t, contexts.calls)
}

func TestEstimatorExecuteUnknownTicket(t *testing.T) {
	estimator := NewEstimator(&fakeTickets{}, &fakeInterpreter{healthy: true}, &fakeContexts{})

	_, err := estimator.Execute(context.Background(), "TRD-999", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRD-999")
}

func TestEstimatorExecuteBrokenSources(t *testing.T) {
	tickets := &fakeTickets{tickets: map[string]models.Ticket{"TRD-1": someTicket()}}
	contexts := &fakeContexts{err: errors.New("el archivo github-sources.json no es un JSON válido")}

	estimator := NewEstimator(tickets, &fakeInterpreter{healthy: true}, contexts)
	_, err := estimator.Execute(context.Background(), "TRD-1", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "github-sources.json")
}

func TestRefinerExecuteThreadsUserContext(t *testing.T) {
	tickets := &fakeTickets{tickets: map[string]models.Ticket{"TRD-1": someTicket()}}
	title := "Nuevo título"
	interpreter := &fakeInterpreter{
		healthy: true,
		refinement: models.RefinementResult{
			SuggestedTitle:     &title,
			Context:            "contexto",
			Tasks:              []string{"tarea"},
			AcceptanceCriteria: []string{"criterio"},
			IsComplete:         true,
		},
	}
	contexts := &fakeContexts{result: models.ContextResult{Content: "docs"}}

	refiner := NewRefiner(tickets, interpreter, contexts)
	result, err := refiner.Execute(context.Background(), "TRD-1", RefineOptions{
		UserContext: "la prioridad es el rendimiento",
	})
	require.NoError(t, err)

	assert.Equal(t, "la prioridad es el rendimiento", interpreter.gotUserContext)
	assert.Equal(t, "docs", interpreter.gotRepoContext)
	assert.True(t, result.Refinement.IsComplete)
	require.NotNil(t, result.Refinement.SuggestedTitle)
	assert.Equal(t, "Nuevo título", *result.Refinement.SuggestedTitle)
}

func TestRefinerExecutePreflight(t *testing.T) {
	refiner := NewRefiner(&fakeTickets{}, &fakeInterpreter{healthy: false}, &fakeContexts{})

	_, err := refiner.Execute(context.Background(), "TRD-1", RefineOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLLMUnavailable)
}

func TestQualityCheckerExecute(t *testing.T) {
	tickets := &fakeTickets{tickets: map[string]models.Ticket{"TRD-1": someTicket()}}
	interpreter := &fakeInterpreter{
		healthy:         true,
		descriptionEval: models.EvaluationResult{IsAdequate: true, Feedback: "Completa."},
		titleEval:       models.EvaluationResult{IsAdequate: false, Feedback: "Demasiado vago."},
	}

	checker := NewQualityChecker(tickets, interpreter)
	report, err := checker.Execute(context.Background(), "TRD-1")
	require.NoError(t, err)

	assert.True(t, report.HasComponent)
	assert.True(t, report.HasStoryPoints)
	assert.True(t, report.DescriptionEvaluation.IsAdequate)
	assert.False(t, report.TitleEvaluation.IsAdequate)
	assert.Equal(t, 3, report.PassedChecks)
	assert.Equal(t, 4, report.TotalChecks)
	assert.Equal(t, 2, interpreter.evalCalls)
}

func TestQualityCheckerExecuteLLMDown(t *testing.T) {
	tickets := &fakeTickets{tickets: map[string]models.Ticket{"TRD-1": someTicket()}}
	interpreter := &fakeInterpreter{healthy: false}

	checker := NewQualityChecker(tickets, interpreter)
	report, err := checker.Execute(context.Background(), "TRD-1")
	require.NoError(t, err)

	// Data checks still run, the LLM checks fail with a connectivity note.
	assert.True(t, report.HasComponent)
	assert.True(t, report.HasStoryPoints)
	assert.False(t, report.DescriptionEvaluation.IsAdequate)
	assert.Equal(t, llmDownFeedback, report.DescriptionEvaluation.Feedback)
	assert.Equal(t, llmDownFeedback, report.TitleEvaluation.Feedback)
	assert.Equal(t, 2, report.PassedChecks)
	assert.Equal(t, 4, report.TotalChecks)
	assert.Zero(t, interpreter.evalCalls)
}

func TestQualityCheckerExecuteUnknownTicket(t *testing.T) {
	checker := NewQualityChecker(&fakeTickets{}, &fakeInterpreter{healthy: true})

	_, err := checker.Execute(context.Background(), "TRD-404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRD-404")
}
