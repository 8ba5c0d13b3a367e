package entities

import (
	"regexp"
	"slices"

	"github.com/ersonp/lore-oracle/internal/domain/textnorm"
)

// EventFilter is an AND of OR-groups over events. Empty groups are ignored.
//
// PhrasePatterns match against the CleanOnly form of the event name or
// description; CharacterIDs match when any involved character is listed;
// PlaceIDs match when the event's place is listed.
type EventFilter struct {
	PhrasePatterns []*regexp.Regexp
	CharacterIDs   []string
	PlaceIDs       []string
}

// IsEmpty reports whether the filter has no groups at all.
func (f EventFilter) IsEmpty() bool {
	return len(f.PhrasePatterns) == 0 && len(f.CharacterIDs) == 0 && len(f.PlaceIDs) == 0
}

// Matches evaluates every non-empty group against e. An empty filter
// matches nothing.
func (f EventFilter) Matches(e Event) bool {
	if f.IsEmpty() {
		return false
	}
	return f.MatchesText(e) && f.MatchesReferences(e)
}

// MatchesText evaluates only the phrase group.
func (f EventFilter) MatchesText(e Event) bool {
	if len(f.PhrasePatterns) == 0 {
		return true
	}
	name := textnorm.CleanOnly(e.Name)
	desc := textnorm.CleanOnly(e.Description)
	for _, re := range f.PhrasePatterns {
		if re.MatchString(desc) || re.MatchString(name) {
			return true
		}
	}
	return false
}

// MatchesReferences evaluates the character and place groups.
func (f EventFilter) MatchesReferences(e Event) bool {
	if len(f.CharacterIDs) > 0 {
		hit := false
		for _, id := range e.CharacterIDs {
			if slices.Contains(f.CharacterIDs, id) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if len(f.PlaceIDs) > 0 && !slices.Contains(f.PlaceIDs, e.PlaceID) {
		return false
	}
	return true
}
