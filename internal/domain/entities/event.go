package entities

// EventSummary is the projection of an event used for fuzzy matching.
type EventSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Event is a narrative event with its related entities populated.
// The reference fields (CharacterIDs, PlaceID, GenerationID) are always set;
// Characters, Place and Generation are filled by the store on read.
type Event struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	CharacterIDs []string `json:"-"`
	PlaceID      string   `json:"-"`
	GenerationID string   `json:"-"`

	Characters []Entity    `json:"characters"`
	Place      *Entity     `json:"place,omitempty"`
	Generation *Generation `json:"generation,omitempty"`
}

// Summary returns the fuzzy-matching projection of the event.
func (e Event) Summary() EventSummary {
	return EventSummary{ID: e.ID, Name: e.Name, Description: e.Description}
}

// Chapter lists the events narrated in one chapter.
type Chapter struct {
	Number   int      `json:"number"`
	EventIDs []string `json:"-"`
	Events   []Event  `json:"events"`
}
