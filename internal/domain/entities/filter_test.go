package entities

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventFilter_Matches(t *testing.T) {
	death := Event{
		ID:           "e1",
		Name:         "Muerte de Úrsula",
		Description:  "Úrsula murió un Jueves Santo",
		CharacterIDs: []string{"ursula"},
		PlaceID:      "macondo",
	}
	wedding := Event{
		ID:           "e2",
		Name:         "Boda",
		Description:  "Aureliano y Remedios se casaron",
		CharacterIDs: []string{"aureliano", "remedios"},
		PlaceID:      "macondo",
	}
	reMurio := regexp.MustCompile(`(?:^|\W)murio(?:$|\W)`)

	tests := []struct {
		name    string
		filter  EventFilter
		event   Event
		matches bool
	}{
		{name: "empty filter matches nothing", filter: EventFilter{}, event: death, matches: false},
		{name: "phrase in folded description", filter: EventFilter{PhrasePatterns: []*regexp.Regexp{reMurio}}, event: death, matches: true},
		{name: "phrase absent", filter: EventFilter{PhrasePatterns: []*regexp.Regexp{reMurio}}, event: wedding, matches: false},
		{name: "character intersects", filter: EventFilter{CharacterIDs: []string{"remedios", "x"}}, event: wedding, matches: true},
		{name: "character disjoint", filter: EventFilter{CharacterIDs: []string{"x"}}, event: wedding, matches: false},
		{name: "place listed", filter: EventFilter{PlaceIDs: []string{"macondo"}}, event: death, matches: true},
		{name: "place not listed", filter: EventFilter{PlaceIDs: []string{"riohacha"}}, event: death, matches: false},
		{
			name:    "all groups must hold",
			filter:  EventFilter{PhrasePatterns: []*regexp.Regexp{reMurio}, CharacterIDs: []string{"aureliano"}},
			event:   death,
			matches: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, tt.filter.Matches(tt.event))
		})
	}
}
