package models

import (
	"fmt"
	"strings"
)

// Project describes a Jira project the assistant knows about.
type Project struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Aliases     []string `json:"aliases"`
}

// IssueType describes a valid Jira issue type.
type IssueType struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// Status describes a valid workflow status.
type Status struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// Component describes a valid Jira component.
type Component struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Aliases     []string `json:"aliases"`
}

// Dictionary holds the valid Jira vocabulary used to ground the LLM when
// interpreting queries. It is user-editable JSON loaded once per process.
type Dictionary struct {
	Projects   []Project   `json:"projects"`
	IssueTypes []IssueType `json:"issueTypes"`
	Statuses   []Status    `json:"statuses"`
	Components []Component `json:"components"`
}

// AsContext renders the dictionary as the vocabulary section of the query
// interpretation system prompt.
func (d Dictionary) AsContext() string {
	var b strings.Builder

	b.WriteString("## Proyectos disponibles:\n")
	for _, p := range d.Projects {
		if p.Description != "" {
			fmt.Fprintf(&b, "- %s: %s (%s)\n", p.Key, p.Name, p.Description)
		} else {
			fmt.Fprintf(&b, "- %s: %s\n", p.Key, p.Name)
		}
	}

	b.WriteString("\n## Tipos de issue:\n")
	for _, t := range d.IssueTypes {
		fmt.Fprintf(&b, "- %s\n", t.Name)
	}

	b.WriteString("\n## Estados:\n")
	for _, s := range d.Statuses {
		fmt.Fprintf(&b, "- %s\n", s.Name)
	}

	b.WriteString("\n## Componentes:\n")
	for _, c := range d.Components {
		if c.Description != "" {
			fmt.Fprintf(&b, "- %s: %s\n", c.Name, c.Description)
		} else {
			fmt.Fprintf(&b, "- %s\n", c.Name)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
