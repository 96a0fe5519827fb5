package models

// RefinementResult is the structured refinement proposed for a ticket.
type RefinementResult struct {
	// SuggestedTitle is nil when the current title should be kept.
	SuggestedTitle *string `json:"suggestedTitle"`

	// Context explains the problem or business need behind the ticket.
	Context string `json:"context"`

	// Tasks lists the technical tasks involved.
	Tasks []string `json:"tasks"`

	// AcceptanceCriteria lists verifiable completion conditions.
	AcceptanceCriteria []string `json:"acceptanceCriteria"`

	// AdditionalNotes is nil when there is nothing extra to note.
	AdditionalNotes *string `json:"additionalNotes"`

	// Warnings lists the fields that could not be completed.
	Warnings []string `json:"warnings"`

	// IsComplete holds exactly when Warnings is empty.
	IsComplete bool `json:"isComplete"`
}

// NewEmptyRefinement returns the fallback refinement used when the model
// reply could not be turned into a structured result.
func NewEmptyRefinement() RefinementResult {
	return RefinementResult{
		SuggestedTitle:     nil,
		Context:            "",
		Tasks:              []string{},
		AcceptanceCriteria: []string{},
		AdditionalNotes:    nil,
		Warnings:           []string{"No se pudo generar el refinamiento"},
		IsComplete:         false,
	}
}
