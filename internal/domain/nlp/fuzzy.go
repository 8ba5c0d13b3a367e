package nlp

import (
	"github.com/ersonp/lore-oracle/internal/domain/entities"
	"github.com/ersonp/lore-oracle/internal/domain/textnorm"
)

// DefaultFuzzyThreshold is the score an event must exceed to be returned.
const DefaultFuzzyThreshold = 0.2

// FuzzyMatcher scores events by the share of question words found in the
// event's name and description.
type FuzzyMatcher struct {
	threshold float64
}

// NewFuzzyMatcher creates a matcher. A negative threshold selects
// DefaultFuzzyThreshold; zero accepts any event sharing a word.
func NewFuzzyMatcher(threshold float64) *FuzzyMatcher {
	if threshold < 0 {
		threshold = DefaultFuzzyThreshold
	}
	return &FuzzyMatcher{threshold: threshold}
}

// Threshold returns the configured threshold.
func (m *FuzzyMatcher) Threshold() float64 {
	return m.threshold
}

// Score returns |Q ∩ E| / max(|Q|, 1) over distinct words.
func Score(normalizedQuestion, normalizedEventText string) float64 {
	q := textnorm.Words(normalizedQuestion)
	if len(q) == 0 {
		return 0
	}
	e := textnorm.Words(normalizedEventText)
	set := make(map[string]struct{}, len(e))
	for _, w := range e {
		set[w] = struct{}{}
	}

	shared := 0
	for _, w := range q {
		if _, ok := set[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(q))
}

// BestMatch returns the highest scoring event and its score, or nil when no
// event scores above the threshold. On equal scores the earlier event wins.
func (m *FuzzyMatcher) BestMatch(normalizedQuestion string, events []entities.EventSummary) (*entities.EventSummary, float64) {
	best := -1
	bestScore := 0.0

	for i := range events {
		text := textnorm.Normalize(events[i].Name + " " + events[i].Description)
		score := Score(normalizedQuestion, text)
		if best < 0 || score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 || bestScore <= m.threshold {
		return nil, bestScore
	}
	hit := events[best]
	return &hit, bestScore
}
