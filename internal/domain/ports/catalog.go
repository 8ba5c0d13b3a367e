// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
)

// EntityCatalog is a read-only view over one kind of entity.
type EntityCatalog interface {
	// ListNames returns every entity of the catalog in storage order.
	ListNames(ctx context.Context) ([]entities.Entity, error)

	// FindIDsByNames returns the ids of entities whose stored name equals one
	// of names, ignoring case.
	FindIDsByNames(ctx context.Context, names []string) ([]string, error)
}

// Catalogs groups the entity catalogs used by the analyzer.
// Objects may be nil, in which case object matching is skipped.
type Catalogs struct {
	Characters EntityCatalog
	Places     EntityCatalog
	Objects    EntityCatalog
}

// GenerationStore lists family generations.
type GenerationStore interface {
	ListGenerations(ctx context.Context) ([]entities.Generation, error)
}
