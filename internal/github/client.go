// Package github loads contextual documentation from GitHub repositories.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"
)

// Client fetches raw file contents from the GitHub API.
type Client struct {
	client *github.Client
}

// NewClient creates a GitHub API client. The token is optional; without it
// only public repositories are reachable and the rate limit is lower.
func NewClient(token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = 30 * time.Second

	return &Client{client: github.NewClient(httpClient)}
}

// FetchFile returns the decoded content of a file at the given revision.
func (c *Client) FetchFile(ctx context.Context, owner, repo, path, ref string) (string, error) {
	opts := &github.RepositoryContentGetOptions{Ref: ref}

	fileContent, _, _, err := c.client.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return "", describeFetchError(err, owner, repo, path, ref)
	}

	if fileContent == nil {
		return "", fmt.Errorf("la ruta %q en %s/%s no es un archivo", path, owner, repo)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", fmt.Errorf("no se pudo decodificar %s/%s/%s: %w", owner, repo, path, err)
	}

	return content, nil
}

// describeFetchError distinguishes authentication, throttling, permission
// and not-found failures so the warning logs are actionable.
func describeFetchError(err error, owner, repo, path, ref string) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("se ha alcanzado el límite de peticiones de GitHub, espera un momento o usa un token")
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("error de autenticación con GitHub, verifica tu GITHUB_TOKEN")
		case http.StatusForbidden:
			return fmt.Errorf("acceso denegado a %s/%s, verifica los permisos del token", owner, repo)
		case http.StatusNotFound:
			return fmt.Errorf("no se encontró el archivo %q en %s/%s (ref: %s)", path, owner, repo, ref)
		}
	}

	return fmt.Errorf("error al consultar GitHub: %w", err)
}
