// Package models defines data structures shared across the application.
package models

import (
	"encoding/json"
)

// Ticket represents a Jira issue with the fields the CLI works with.
// It is built fresh from the Jira API response for every command and is
// never mutated afterwards.
type Ticket struct {
	// Key is the full ticket identifier (e.g., "TRD-123")
	Key string

	// Summary is the ticket's title field
	Summary string

	// Status is the workflow status name (e.g., "En Progreso")
	Status string

	// Type is the Jira issue type (e.g., "Epic", "Tarea")
	Type string

	// Priority is the priority name, empty when the field is unset
	Priority string

	// Assignee is the display name of the assignee, empty when unassigned
	Assignee string

	// Components holds the component names attached to the ticket
	Components []string

	// Created and Updated are the raw timestamp strings from Jira.
	// They are display-only and never reparsed.
	Created string
	Updated string

	// StoryPoints is nil when the ticket has no estimation
	StoryPoints *float64

	// Description is the raw description field. Jira Cloud API v3 returns
	// either a plain string or an ADF document here.
	Description Description
}

// Description wraps the untyped Jira description field. The payload is
// either a plain string or an Atlassian Document Format tree, so the raw
// JSON is kept and flattened on demand.
type Description struct {
	raw json.RawMessage
}

// NewTextDescription builds a plain-text description. Used by tests and
// by callers that already have flat text.
func NewTextDescription(text string) Description {
	data, _ := json.Marshal(text)
	return Description{raw: data}
}

// NewADFDescription builds a description from a raw ADF JSON document.
func NewADFDescription(raw json.RawMessage) Description {
	return Description{raw: raw}
}

// UnmarshalJSON keeps the raw payload without interpreting it.
func (d *Description) UnmarshalJSON(data []byte) error {
	d.raw = append(d.raw[:0], data...)
	return nil
}

// MarshalJSON returns the original payload.
func (d Description) MarshalJSON() ([]byte, error) {
	if len(d.raw) == 0 {
		return []byte("null"), nil
	}
	return d.raw, nil
}

// adfDocument mirrors the two levels of an ADF tree the flattener walks:
// top-level blocks (paragraphs, headings) and their inline content.
type adfDocument struct {
	Content []struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	} `json:"content"`
}

// PlainText flattens the description to plain text. A string payload is
// returned as-is. An ADF document is walked two levels deep collecting the
// text leaves in document order, one per line. Any other shape yields "".
func (d Description) PlainText() string {
	if len(d.raw) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(d.raw, &text); err == nil {
		return text
	}

	var doc adfDocument
	if err := json.Unmarshal(d.raw, &doc); err != nil {
		return ""
	}

	var lines []string
	for _, block := range doc.Content {
		for _, inline := range block.Content {
			if inline.Text != "" {
				lines = append(lines, inline.Text)
			}
		}
	}

	return joinLines(lines)
}

func joinLines(lines []string) string {
	out := ""
	for i, line := range lines {
		if i > 0 {
			out += "\n"
		}
		out += line
	}
	return out
}

// HasStoryPoints reports whether the ticket carries a positive estimation.
func (t Ticket) HasStoryPoints() bool {
	return t.StoryPoints != nil && *t.StoryPoints > 0
}

// HasComponent reports whether the ticket has at least one component.
func (t Ticket) HasComponent() bool {
	return len(t.Components) > 0
}
