package ports

import (
	"context"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
)

// EventStore gives read access to narrative events.
type EventStore interface {
	// ListSummaries returns id, name and description of every event.
	ListSummaries(ctx context.Context) ([]entities.EventSummary, error)

	// Query returns the events accepted by filter, populated with their
	// characters, place and generation, in storage order.
	Query(ctx context.Context, filter entities.EventFilter) ([]entities.Event, error)

	// FindByID returns a populated event, or nil if it does not exist.
	FindByID(ctx context.Context, id string) (*entities.Event, error)

	// ListEvents returns every populated event.
	ListEvents(ctx context.Context) ([]entities.Event, error)
}

// ChapterStore gives read access to chapters.
type ChapterStore interface {
	// FindByNumber returns the chapter with its events populated, or nil if
	// no chapter has that number.
	FindByNumber(ctx context.Context, number int) (*entities.Chapter, error)
}
