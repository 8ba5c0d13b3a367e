package ports

import (
	"context"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
)

// DatasetWriter persists dataset records. It is only used by the import
// path; the question pipeline never writes.
type DatasetWriter interface {
	// SaveEntity inserts or replaces an entity.
	SaveEntity(ctx context.Context, entity *entities.Entity) error

	// SaveGeneration inserts or replaces a generation.
	SaveGeneration(ctx context.Context, generation *entities.Generation) error

	// SaveEvent inserts or replaces an event and its character references.
	SaveEvent(ctx context.Context, event *entities.Event) error

	// SaveChapter inserts or replaces a chapter and its event list.
	SaveChapter(ctx context.Context, chapter *entities.Chapter) error
}
