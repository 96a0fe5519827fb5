package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ticketero/ticketero/pkg/models"
)

// DictionaryFileName is the vocabulary file looked up in the config dirs.
const DictionaryFileName = "dictionary.json"

// LoadDictionary reads and validates the Jira vocabulary file. When path is
// empty the file is resolved from the config directories; a missing file is
// not an error and yields (zero, false, nil) so callers can fall back to
// the built-in vocabulary.
func LoadDictionary(path string) (models.Dictionary, bool, error) {
	if path == "" {
		path = ResolveConfigFile(DictionaryFileName)
		if path == "" {
			return models.Dictionary{}, false, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Dictionary{}, false, nil
		}
		return models.Dictionary{}, false, fmt.Errorf("no se pudo leer %s: %w", path, err)
	}

	var dict models.Dictionary
	if err := json.Unmarshal(data, &dict); err != nil {
		return models.Dictionary{}, false, fmt.Errorf("el archivo %s no es un JSON válido: %w", DictionaryFileName, err)
	}

	if errs := validateDictionary(dict); len(errs) > 0 {
		return models.Dictionary{}, false, fmt.Errorf("error en %s (%s):\n  - %s",
			DictionaryFileName, path, strings.Join(errs, "\n  - "))
	}

	return dict, true, nil
}

// DefaultDictionary returns the built-in Jira vocabulary, used when no
// dictionary.json is configured and as the template written by `init`.
func DefaultDictionary() models.Dictionary {
	return models.Dictionary{
		Projects: []models.Project{
			{Key: "TRD", Name: "Transformación Digital", Description: "Proyecto principal. Usar siempre este proyecto.", Aliases: []string{"transformación", "digital"}},
		},
		IssueTypes: []models.IssueType{
			{Name: "Epic", Aliases: []string{"épica", "funcionalidad grande"}},
			{Name: "Tarea", Aliases: []string{"task", "incidencia"}},
		},
		Statuses: []models.Status{
			{Name: "Nueva", Aliases: []string{"nuevo", "abierta"}},
			{Name: "Preparada para empezar", Aliases: []string{"preparada", "lista"}},
			{Name: "En Progreso", Aliases: []string{"en curso", "desarrollo"}},
			{Name: "Pendiente cliente", Aliases: []string{"bloqueada por cliente"}},
			{Name: "Pendiente terceros", Aliases: []string{"bloqueada por terceros"}},
			{Name: "Pendiente dto. interno", Aliases: []string{"bloqueada interna"}},
			{Name: "En Revisión", Aliases: []string{"revisión", "review"}},
			{Name: "Cerrada", Aliases: []string{"completada", "finalizada"}},
			{Name: "Desestimada", Aliases: []string{"rechazada", "descartada"}},
		},
		Components: []models.Component{
			{Name: "Plataforma del Dato", Description: "Desarrollos de plataforma de datos, integraciones, ETL.", Aliases: []string{"datos", "etl"}},
			{Name: "PGI", Description: "Portal de Gestión Interna o Portal del Asesor.", Aliases: []string{"portal"}},
			{Name: "CRM", Description: "Desarrollos relacionados con HubSpot y CRM.", Aliases: []string{"hubspot"}},
		},
	}
}

// validateDictionary returns one message per invalid field, each naming the
// offending field path.
func validateDictionary(dict models.Dictionary) []string {
	var errs []string

	if len(dict.Projects) == 0 {
		errs = append(errs, "projects: al menos un proyecto es requerido")
	}
	for i, p := range dict.Projects {
		if p.Key == "" {
			errs = append(errs, fmt.Sprintf("projects[%d].key: es requerido", i))
		}
		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("projects[%d].name: es requerido", i))
		}
	}

	for i, t := range dict.IssueTypes {
		if t.Name == "" {
			errs = append(errs, fmt.Sprintf("issueTypes[%d].name: es requerido", i))
		}
	}

	for i, s := range dict.Statuses {
		if s.Name == "" {
			errs = append(errs, fmt.Sprintf("statuses[%d].name: es requerido", i))
		}
	}

	for i, c := range dict.Components {
		if c.Name == "" {
			errs = append(errs, fmt.Sprintf("components[%d].name: es requerido", i))
		}
	}

	return errs
}
