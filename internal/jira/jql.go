package jira

import (
	"fmt"
	"strings"

	"github.com/ticketero/ticketero/pkg/models"
)

// orderBy is appended to every generated query so results come back with
// the most recently touched tickets first.
const orderBy = "ORDER BY updated DESC"

// BuildJQL renders search parameters into a JQL query plus a human
// readable explanation of the applied filters. Multi-value filters render
// as IN clauses; a single-element list collapses to the scalar form.
func BuildJQL(params models.SearchParams) (string, []string) {
	var clauses []string
	var explanation []string

	if params.Project != "" {
		clauses = append(clauses, fmt.Sprintf("project = %q", params.Project))
		explanation = append(explanation, "Proyecto: "+params.Project)
	}

	if clause := listClause("issuetype", params.IssueType); clause != "" {
		clauses = append(clauses, clause)
		explanation = append(explanation, "Tipo: "+strings.Join(params.IssueType, ", "))
	}

	if clause := listClause("status", params.Status); clause != "" {
		clauses = append(clauses, clause)
		explanation = append(explanation, "Estado: "+strings.Join(params.Status, ", "))
	}

	if clause := listClause("component", params.Component); clause != "" {
		clauses = append(clauses, clause)
		explanation = append(explanation, "Componente: "+strings.Join(params.Component, ", "))
	}

	if params.TextSearch != "" {
		clauses = append(clauses, fmt.Sprintf("text ~ \"%s\"", escapeJQLString(params.TextSearch)))
		explanation = append(explanation, fmt.Sprintf("Búsqueda de texto: %q", params.TextSearch))
	}

	if len(clauses) == 0 {
		return orderBy, explanation
	}

	return strings.Join(clauses, " AND ") + " " + orderBy, explanation
}

// listClause renders a multi-value filter for a field.
func listClause(field string, values models.StringList) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%s = %q", field, values[0])
	default:
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = fmt.Sprintf("%q", v)
		}
		return fmt.Sprintf("%s IN (%s)", field, strings.Join(quoted, ", "))
	}
}

// escapeJQLString escapes the characters Jira treats specially inside a
// quoted free-text term.
func escapeJQLString(value string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		`'`, `\'`,
	)
	return replacer.Replace(value)
}
