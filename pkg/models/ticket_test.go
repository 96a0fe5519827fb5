package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptionPlainText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain string",
			raw:  `"texto simple"`,
			want: "texto simple",
		},
		{
			name: "adf document",
			raw: `{"type":"doc","version":1,"content":[
				{"type":"paragraph","content":[{"type":"text","text":"primera línea"}]},
				{"type":"paragraph","content":[{"type":"text","text":"segunda"},{"type":"text","text":"tercera"}]}
			]}`,
			want: "primera línea\nsegunda\ntercera",
		},
		{
			name: "adf without text leaves",
			raw:  `{"type":"doc","content":[{"type":"rule"}]}`,
			want: "",
		},
		{
			name: "null",
			raw:  `null`,
			want: "",
		},
		{
			name: "unexpected shape",
			raw:  `[1,2,3]`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var desc Description
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &desc))
			assert.Equal(t, tt.want, desc.PlainText())
		})
	}
}

func TestDescriptionPlainTextEmpty(t *testing.T) {
	var desc Description
	assert.Equal(t, "", desc.PlainText())
}

func TestNewTextDescription(t *testing.T) {
	desc := NewTextDescription("hola")
	assert.Equal(t, "hola", desc.PlainText())
}

func TestTicketChecks(t *testing.T) {
	points := 5.0
	zero := 0.0

	tests := []struct {
		name           string
		ticket         Ticket
		hasComponent   bool
		hasStoryPoints bool
	}{
		{
			name:           "complete ticket",
			ticket:         Ticket{Components: []string{"CRM"}, StoryPoints: &points},
			hasComponent:   true,
			hasStoryPoints: true,
		},
		{
			name:           "no component no points",
			ticket:         Ticket{},
			hasComponent:   false,
			hasStoryPoints: false,
		},
		{
			name:           "zero points do not count",
			ticket:         Ticket{StoryPoints: &zero},
			hasComponent:   false,
			hasStoryPoints: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hasComponent, tt.ticket.HasComponent())
			assert.Equal(t, tt.hasStoryPoints, tt.ticket.HasStoryPoints())
		})
	}
}
