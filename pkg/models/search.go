package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is a multi-value filter. The LLM may hand back null, a single
// string, a comma-separated string, or a JSON array for the same field, so
// all of those decode into the one type. The literal "null" and empty
// fragments are dropped during normalization.
type StringList []string

// UnmarshalJSON accepts null, a string, or an array of strings.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = normalizeFragments(strings.Split(single, ","))
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = normalizeFragments(many)
		return nil
	}

	// null or an unexpected shape: treat as no filter
	*l = nil
	return nil
}

// MarshalJSON renders nil as null and a single value as a bare string so
// the wire shape matches what was received.
func (l StringList) MarshalJSON() ([]byte, error) {
	switch len(l) {
	case 0:
		return []byte("null"), nil
	case 1:
		return json.Marshal(l[0])
	default:
		return json.Marshal([]string(l))
	}
}

// StringListFromAny normalizes a decoded JSON value into a StringList.
func StringListFromAny(v any) StringList {
	switch value := v.(type) {
	case nil:
		return nil
	case string:
		return normalizeFragments(strings.Split(value, ","))
	case []any:
		fragments := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				fragments = append(fragments, s)
				continue
			}
			fragments = append(fragments, fmt.Sprint(item))
		}
		return normalizeFragments(fragments)
	case []string:
		return normalizeFragments(value)
	default:
		return nil
	}
}

// normalizeFragments trims fragments and drops empty and "null" ones.
func normalizeFragments(fragments []string) StringList {
	var out StringList
	for _, fragment := range fragments {
		trimmed := strings.TrimSpace(fragment)
		if trimmed == "" || trimmed == "null" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

// NormalizeNullableString maps the "null" sentinel and blank strings that
// LLMs sometimes produce to the empty string.
func NormalizeNullableString(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "null" {
		return ""
	}
	return trimmed
}

// SearchParams are the structured filters extracted from a natural
// language query. Empty fields mean "no filter".
type SearchParams struct {
	Project    string     `json:"project"`
	IssueType  StringList `json:"issueType"`
	Status     StringList `json:"status"`
	Component  StringList `json:"component"`
	TextSearch string     `json:"textSearch"`
}

// SearchParamsFromAny builds normalized SearchParams from a decoded JSON
// object, coercing each field independently of its received shape.
func SearchParamsFromAny(m map[string]any) SearchParams {
	return SearchParams{
		Project:    NormalizeNullableString(stringFromAny(m["project"])),
		IssueType:  StringListFromAny(m["issueType"]),
		Status:     StringListFromAny(m["status"]),
		Component:  StringListFromAny(m["component"]),
		TextSearch: NormalizeNullableString(stringFromAny(m["textSearch"])),
	}
}

func stringFromAny(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	default:
		return fmt.Sprint(value)
	}
}

// SearchResult is the outcome of the natural language search use case.
type SearchResult struct {
	Tickets     []Ticket
	JQL         string
	Explanation []string
}

// QualityReport collects the four quality checks for a ticket.
type QualityReport struct {
	Ticket                Ticket
	HasComponent          bool
	HasStoryPoints        bool
	DescriptionEvaluation EvaluationResult
	TitleEvaluation       EvaluationResult
	PassedChecks          int
	TotalChecks           int
}
