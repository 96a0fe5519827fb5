package github

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ticketero/ticketero/internal/config"
	"github.com/ticketero/ticketero/pkg/models"
)

// SourcesFileName is the repository sources file looked up in the config dirs.
const SourcesFileName = "github-sources.json"

// RepositorySource describes which files to fetch from which repository at
// which revision.
type RepositorySource struct {
	Owner    string                `json:"owner"`
	Repo     string                `json:"repo"`
	Files    []string              `json:"files"`
	Ref      string                `json:"ref,omitempty"`
	Category models.SourceCategory `json:"category,omitempty"`
}

// SourcesFile is the schema of github-sources.json.
type SourcesFile struct {
	Sources []RepositorySource `json:"sources"`
}

// loadSourcesFile reads and validates the sources configuration. An absent
// file yields an empty source list: repository context is optional. A file
// that exists but is malformed is a configuration error.
func loadSourcesFile(path string) (SourcesFile, string, error) {
	if path == "" {
		path = config.ResolveConfigFile(SourcesFileName)
		if path == "" {
			return SourcesFile{}, "", nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return SourcesFile{}, "", nil
		}
		return SourcesFile{}, "", fmt.Errorf("no se pudo leer %s: %w", path, err)
	}

	var sources SourcesFile
	if err := json.Unmarshal(data, &sources); err != nil {
		return SourcesFile{}, "", fmt.Errorf("el archivo %s no es un JSON válido: %w", SourcesFileName, err)
	}

	if errs := validateSources(sources); len(errs) > 0 {
		return SourcesFile{}, "", fmt.Errorf("error en %s (%s):\n  - %s",
			SourcesFileName, path, strings.Join(errs, "\n  - "))
	}

	applyDefaults(&sources)
	return sources, path, nil
}

// validateSources returns one message per invalid field, naming the field path.
func validateSources(sources SourcesFile) []string {
	var errs []string

	for i, source := range sources.Sources {
		if source.Owner == "" {
			errs = append(errs, fmt.Sprintf("sources[%d].owner: es requerido", i))
		}
		if source.Repo == "" {
			errs = append(errs, fmt.Sprintf("sources[%d].repo: es requerido", i))
		}
		if len(source.Files) == 0 {
			errs = append(errs, fmt.Sprintf("sources[%d].files: al menos un archivo es requerido", i))
		}
		for j, file := range source.Files {
			if strings.TrimSpace(file) == "" {
				errs = append(errs, fmt.Sprintf("sources[%d].files[%d]: no puede estar vacío", i, j))
			}
		}
		if source.Category != "" &&
			source.Category != models.CategoryCode &&
			source.Category != models.CategoryDocs {
			errs = append(errs, fmt.Sprintf("sources[%d].category: debe ser \"code\" o \"docs\"", i))
		}
	}

	return errs
}

func applyDefaults(sources *SourcesFile) {
	for i := range sources.Sources {
		if sources.Sources[i].Ref == "" {
			sources.Sources[i].Ref = "main"
		}
		if sources.Sources[i].Category == "" {
			sources.Sources[i].Category = models.CategoryCode
		}
	}
}
