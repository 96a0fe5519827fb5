package cmd

import (
	"github.com/ticketero/ticketero/internal/config"
	"github.com/ticketero/ticketero/internal/github"
	"github.com/ticketero/ticketero/internal/jira"
	"github.com/ticketero/ticketero/internal/llm"
	"github.com/ticketero/ticketero/internal/service"
)

// deps is the composition root. Commands that talk to external services
// build it eagerly; init and config never construct it, so they run
// without any environment configuration.
type deps struct {
	search         *service.Search
	qualityChecker *service.QualityChecker
	estimator      *service.Estimator
	refiner        *service.Refiner
}

// buildDeps loads configuration and wires every collaborator.
func buildDeps() (*deps, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	jiraClient, err := jira.NewClient(cfg.Jira)
	if err != nil {
		return nil, err
	}

	llmClient := llm.NewClient(cfg.Llama)
	aggregator := github.NewAggregator(github.NewClient(cfg.GitHub.Token))

	dict, found, err := config.LoadDictionary("")
	if err != nil {
		return nil, err
	}
	if !found {
		dict = config.DefaultDictionary()
	}

	buildQuery := service.QueryBuilder(jira.BuildJQL)

	return &deps{
		search:         service.NewSearch(jiraClient, llmClient, buildQuery, llm.QuerySystemPrompt(dict)),
		qualityChecker: service.NewQualityChecker(jiraClient, llmClient),
		estimator:      service.NewEstimator(jiraClient, llmClient, aggregator),
		refiner:        service.NewRefiner(jiraClient, llmClient, aggregator),
	}, nil
}
