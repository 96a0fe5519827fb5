// Package jira provides the ticket repository backed by the Jira Cloud API.
package jira

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jira "github.com/andygrunwald/go-jira"
	"github.com/ticketero/ticketero/internal/config"
	"github.com/ticketero/ticketero/internal/logging"
	"github.com/ticketero/ticketero/pkg/models"
)

// storyPointsField is the Jira custom field holding story points.
const storyPointsField = "customfield_10031"

// Client handles interactions with the Jira REST API v3.
//
// The go-jira library authenticates and transports the requests, but the
// response decoding is done against our own structures: API v3 returns the
// description field as either a plain string or an ADF document, which the
// library's typed issue model does not represent.
type Client struct {
	client *jira.Client
}

// NewClient creates a Jira client from the application configuration.
func NewClient(cfg config.JiraConfig) (*Client, error) {
	tp := jira.BasicAuthTransport{
		Username: cfg.Email,
		Password: cfg.APIToken,
	}

	httpClient := tp.Client()
	httpClient.Timeout = 30 * time.Second

	client, err := jira.NewClient(httpClient, cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("no se pudo crear el cliente de Jira: %w", err)
	}

	return &Client{client: client}, nil
}

// issueJSON mirrors the slice of the Jira v3 issue payload the CLI needs.
type issueJSON struct {
	Key    string `json:"key"`
	Fields struct {
		Summary string `json:"summary"`
		Status  struct {
			Name string `json:"name"`
		} `json:"status"`
		IssueType struct {
			Name string `json:"name"`
		} `json:"issuetype"`
		Priority *struct {
			Name string `json:"name"`
		} `json:"priority"`
		Assignee *struct {
			DisplayName string `json:"displayName"`
		} `json:"assignee"`
		Created    string `json:"created"`
		Updated    string `json:"updated"`
		Components []struct {
			Name string `json:"name"`
		} `json:"components"`
		StoryPoints *float64           `json:"customfield_10031"`
		Description models.Description `json:"description"`
	} `json:"fields"`
}

type searchResponseJSON struct {
	Issues []issueJSON `json:"issues"`
}

type searchRequestJSON struct {
	JQL        string   `json:"jql"`
	MaxResults int      `json:"maxResults"`
	Fields     []string `json:"fields"`
}

var searchFields = []string{
	"summary", "status", "issuetype", "priority", "assignee",
	"created", "updated", "components", "description", storyPointsField,
}

// Search runs a JQL query and returns up to limit tickets.
func (c *Client) Search(ctx context.Context, jql string, limit int) ([]models.Ticket, error) {
	body := searchRequestJSON{
		JQL:        jql,
		MaxResults: limit,
		Fields:     searchFields,
	}

	req, err := c.client.NewRequest(http.MethodPost, "rest/api/3/search/jql", body)
	if err != nil {
		return nil, fmt.Errorf("no se pudo construir la petición de búsqueda: %w", err)
	}
	req = req.WithContext(ctx)

	var response searchResponseJSON
	resp, err := c.client.Do(req, &response)
	if err != nil {
		return nil, c.wrapError(err, resp, "")
	}

	tickets := make([]models.Ticket, 0, len(response.Issues))
	for _, issue := range response.Issues {
		tickets = append(tickets, toTicket(issue))
	}

	logging.Debug("jira search completed", "jql", jql, "results", len(tickets))
	return tickets, nil
}

// GetByKey fetches a single ticket.
func (c *Client) GetByKey(ctx context.Context, key string) (models.Ticket, error) {
	req, err := c.client.NewRequest(http.MethodGet, "rest/api/3/issue/"+key, nil)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("no se pudo construir la petición del issue: %w", err)
	}
	req = req.WithContext(ctx)

	var issue issueJSON
	resp, err := c.client.Do(req, &issue)
	if err != nil {
		return models.Ticket{}, c.wrapError(err, resp, key)
	}

	return toTicket(issue), nil
}

// HealthCheck reports whether the Jira connection and credentials work.
// It never returns an error.
func (c *Client) HealthCheck(ctx context.Context) bool {
	req, err := c.client.NewRequest(http.MethodGet, "rest/api/3/myself", nil)
	if err != nil {
		return false
	}
	req = req.WithContext(ctx)

	_, err = c.client.Do(req, nil)
	return err == nil
}

// wrapError maps Jira HTTP failures to actionable Spanish messages.
func (c *Client) wrapError(err error, resp *jira.Response, key string) error {
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("error de autenticación con Jira, verifica tus credenciales")
		case http.StatusBadRequest:
			return fmt.Errorf("error en la consulta JQL: %v", err)
		case http.StatusNotFound:
			if key != "" {
				return fmt.Errorf("issue %s no encontrado", key)
			}
		}
	}
	return fmt.Errorf("error al consultar Jira: %v", err)
}

// toTicket converts a Jira API issue to the domain ticket.
func toTicket(issue issueJSON) models.Ticket {
	ticket := models.Ticket{
		Key:         issue.Key,
		Summary:     issue.Fields.Summary,
		Status:      issue.Fields.Status.Name,
		Type:        issue.Fields.IssueType.Name,
		Created:     issue.Fields.Created,
		Updated:     issue.Fields.Updated,
		StoryPoints: issue.Fields.StoryPoints,
		Description: issue.Fields.Description,
	}

	if issue.Fields.Priority != nil {
		ticket.Priority = issue.Fields.Priority.Name
	}
	if issue.Fields.Assignee != nil {
		ticket.Assignee = issue.Fields.Assignee.DisplayName
	}
	for _, component := range issue.Fields.Components {
		ticket.Components = append(ticket.Components, component.Name)
	}

	return ticket
}
