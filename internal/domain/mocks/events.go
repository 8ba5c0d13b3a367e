package mocks

import (
	"context"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
)

// EventStore is a mock implementation of ports.EventStore.
// Events are expected to be populated already.
type EventStore struct {
	Events []entities.Event
	Err    error

	// Call tracking
	ListSummariesCallCount int
	QueryCallCount         int
	LastFilter             entities.EventFilter
}

// ListSummaries returns the summaries of the configured events.
func (m *EventStore) ListSummaries(_ context.Context) ([]entities.EventSummary, error) {
	m.ListSummariesCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]entities.EventSummary, len(m.Events))
	for i := range m.Events {
		out[i] = m.Events[i].Summary()
	}
	return out, nil
}

// Query returns the configured events accepted by filter.
func (m *EventStore) Query(_ context.Context, filter entities.EventFilter) ([]entities.Event, error) {
	m.QueryCallCount++
	m.LastFilter = filter
	if m.Err != nil {
		return nil, m.Err
	}
	var out []entities.Event
	for i := range m.Events {
		if filter.Matches(m.Events[i]) {
			out = append(out, m.Events[i])
		}
	}
	return out, nil
}

// FindByID returns the configured event with that id, or nil.
func (m *EventStore) FindByID(_ context.Context, id string) (*entities.Event, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Events {
		if m.Events[i].ID == id {
			e := m.Events[i]
			return &e, nil
		}
	}
	return nil, nil
}

// ListEvents returns all configured events.
func (m *EventStore) ListEvents(_ context.Context) ([]entities.Event, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Events, nil
}

// ChapterStore is a mock implementation of ports.ChapterStore.
type ChapterStore struct {
	Chapters map[int]*entities.Chapter
	Err      error
}

// FindByNumber returns the configured chapter, or nil.
func (m *ChapterStore) FindByNumber(_ context.Context, number int) (*entities.Chapter, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Chapters[number], nil
}
