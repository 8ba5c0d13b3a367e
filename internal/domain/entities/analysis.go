package entities

// QuestionAnalysis is the structured reading of one question.
// FuzzyEvent is only set when no other signal was found.
type QuestionAnalysis struct {
	Question              string        `json:"question"`
	Normalized            string        `json:"normalized"`
	ChapterNumber         *int          `json:"chapter_number,omitempty"`
	MatchedIntents        []IntentMatch `json:"matched_intents"`
	MatchedCharacterNames []string      `json:"matched_characters"`
	MatchedPlaceNames     []string      `json:"matched_places"`
	MatchedObjectNames    []string      `json:"matched_objects"`
	FuzzyEvent            *EventSummary `json:"fuzzy_event,omitempty"`
	FuzzyScore            float64       `json:"fuzzy_score,omitempty"`
}

// Intents returns the matched intent keys in detection order.
func (a *QuestionAnalysis) Intents() []IntentKey {
	keys := make([]IntentKey, len(a.MatchedIntents))
	for i, m := range a.MatchedIntents {
		keys[i] = m.Intent
	}
	return keys
}

// HasStructuredSignal reports whether a chapter, an entity of any kind or an
// intent was detected.
func (a *QuestionAnalysis) HasStructuredSignal() bool {
	return a.ChapterNumber != nil ||
		len(a.MatchedCharacterNames) > 0 ||
		len(a.MatchedPlaceNames) > 0 ||
		len(a.MatchedObjectNames) > 0 ||
		len(a.MatchedIntents) > 0
}

// HasFilterSignal reports whether anything the event filter can use was
// detected. Objects are not part of the filter.
func (a *QuestionAnalysis) HasFilterSignal() bool {
	return len(a.MatchedIntents) > 0 ||
		len(a.MatchedCharacterNames) > 0 ||
		len(a.MatchedPlaceNames) > 0
}
