package github

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ticketero/ticketero/internal/logging"
	"github.com/ticketero/ticketero/pkg/models"
)

// FileFetcher fetches one repository file. Satisfied by *Client; tests
// substitute a counting double.
type FileFetcher interface {
	FetchFile(ctx context.Context, owner, repo, path, ref string) (string, error)
}

// Aggregator loads the configured repository files and renders them into
// one context block for the LLM prompts. The sources configuration and the
// assembled result are loaded once and cached for the process lifetime.
type Aggregator struct {
	fetcher FileFetcher

	mu         sync.Mutex
	cached     *models.ContextResult
	loadedPath string
}

// NewAggregator creates an aggregator over the given fetcher.
func NewAggregator(fetcher FileFetcher) *Aggregator {
	return &Aggregator{fetcher: fetcher}
}

// GetContext fetches every configured file and formats the result grouped
// by category. Individual fetch failures are logged and dropped; only a
// malformed sources file is an error. The assembled result is cached, so
// repeated calls in one process cause no further network traffic.
func (a *Aggregator) GetContext(ctx context.Context, sourcesPath string) (models.ContextResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cached != nil {
		return *a.cached, nil
	}

	sources, path, err := loadSourcesFile(sourcesPath)
	if err != nil {
		return models.ContextResult{}, err
	}

	result := models.ContextResult{}
	if files := a.fetchAll(ctx, sources); len(files) > 0 {
		result = models.ContextResult{
			Content:     formatByCategory(files),
			LoadedFiles: files,
		}
	}

	a.cached = &result
	a.loadedPath = path
	return result, nil
}

// ClearCache drops the cached result so the next call reloads and refetches.
func (a *Aggregator) ClearCache() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cached = nil
	a.loadedPath = ""
}

// LoadedSourcesPath returns the path the sources were loaded from, or ""
// when nothing has been loaded.
func (a *Aggregator) LoadedSourcesPath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loadedPath
}

// fetchAll walks the sources in configuration order so the manifest order
// is deterministic.
func (a *Aggregator) fetchAll(ctx context.Context, sources SourcesFile) []models.LoadedFile {
	var files []models.LoadedFile

	for _, source := range sources.Sources {
		for _, path := range source.Files {
			content, err := a.fetcher.FetchFile(ctx, source.Owner, source.Repo, path, source.Ref)
			if err != nil {
				logging.Warn("no se pudo obtener un archivo de contexto",
					"repository", source.Owner+"/"+source.Repo,
					"path", path,
					"error", err)
				continue
			}

			files = append(files, models.LoadedFile{
				Owner:    source.Owner,
				Repo:     source.Repo,
				Path:     path,
				Ref:      source.Ref,
				Category: source.Category,
				Content:  content,
			})
		}
	}

	return files
}

// formatByCategory renders the loaded files as titled sections, code first.
func formatByCategory(files []models.LoadedFile) string {
	var sections []string

	if code := filterByCategory(files, models.CategoryCode); len(code) > 0 {
		sections = append(sections, formatSection("Contexto de Código", code))
	}
	if docs := filterByCategory(files, models.CategoryDocs); len(docs) > 0 {
		sections = append(sections, formatSection("Documentación de Arquitectura", docs))
	}

	return strings.Join(sections, "\n\n---\n\n")
}

func filterByCategory(files []models.LoadedFile, category models.SourceCategory) []models.LoadedFile {
	var out []models.LoadedFile
	for _, f := range files {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}

func formatSection(title string, files []models.LoadedFile) string {
	parts := make([]string, len(files))
	for i, file := range files {
		header := fmt.Sprintf("## %s/%s - %s", file.Owner, file.Repo, file.Path)
		underline := strings.Repeat("-", min(len(header), 60))
		parts[i] = header + "\n" + underline + "\n\n" + file.Content
	}

	return "# " + title + "\n\n" + strings.Join(parts, "\n\n")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
