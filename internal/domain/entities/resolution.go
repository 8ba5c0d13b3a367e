package entities

import (
	"encoding/json"
	"fmt"
)

// Literal chapter labels returned when results do not come from one chapter.
const (
	LabelSimilar = "similar"
	LabelAll     = "todos"
)

// ChapterLabel is either a chapter number or one of LabelSimilar / LabelAll.
// It encodes to JSON as a number or a string respectively.
type ChapterLabel struct {
	number int
	text   string
}

// ChapterNumberLabel labels results taken from chapter n.
func ChapterNumberLabel(n int) ChapterLabel {
	return ChapterLabel{number: n}
}

// SimilarLabel labels a fuzzy match.
func SimilarLabel() ChapterLabel {
	return ChapterLabel{text: LabelSimilar}
}

// AllLabel labels results drawn from every chapter.
func AllLabel() ChapterLabel {
	return ChapterLabel{text: LabelAll}
}

// Number returns the chapter number, if the label holds one.
func (l ChapterLabel) Number() (int, bool) {
	return l.number, l.text == ""
}

func (l ChapterLabel) String() string {
	if l.text != "" {
		return l.text
	}
	return fmt.Sprintf("%d", l.number)
}

// MarshalJSON implements json.Marshaler.
func (l ChapterLabel) MarshalJSON() ([]byte, error) {
	if l.text != "" {
		return json.Marshal(l.text)
	}
	return json.Marshal(l.number)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *ChapterLabel) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*l = ChapterNumberLabel(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("chapter label must be a number or string: %w", err)
	}
	if s == "" {
		return fmt.Errorf("empty chapter label")
	}
	*l = ChapterLabel{text: s}
	return nil
}

// ResolutionState names the branch of the resolver that produced a result.
type ResolutionState string

const (
	StateExplicitChapter ResolutionState = "explicit_chapter"
	StateFuzzyHit        ResolutionState = "fuzzy_hit"
	StateNoSignal        ResolutionState = "no_signal"
	StateFilteredSearch  ResolutionState = "filtered_search"
)

// Resolution is the answer to a question.
type Resolution struct {
	State   ResolutionState `json:"-"`
	Label   ChapterLabel    `json:"chapterLabel"`
	Results []Event         `json:"results"`
}
