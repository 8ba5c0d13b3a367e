package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
	"github.com/ersonp/lore-oracle/internal/domain/ports"
	"github.com/ersonp/lore-oracle/internal/domain/services"
)

// CatalogHandler serves read-only listings of the stored narrative.
type CatalogHandler struct {
	catalogs    ports.Catalogs
	generations ports.GenerationStore
	events      ports.EventStore
	chapters    ports.ChapterStore
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogs ports.Catalogs, generations ports.GenerationStore, events ports.EventStore, chapters ports.ChapterStore) *CatalogHandler {
	return &CatalogHandler{
		catalogs:    catalogs,
		generations: generations,
		events:      events,
		chapters:    chapters,
	}
}

// Entities lists every entity of kind. A kind without a catalog lists nothing.
func (h *CatalogHandler) Entities(ctx context.Context, kind entities.EntityKind) ([]entities.Entity, error) {
	var catalog ports.EntityCatalog
	switch kind {
	case entities.KindCharacter:
		catalog = h.catalogs.Characters
	case entities.KindPlace:
		catalog = h.catalogs.Places
	case entities.KindObject:
		catalog = h.catalogs.Objects
	default:
		return nil, fmt.Errorf("unknown kind %q: %w", kind, services.ErrInvalidInput)
	}

	if catalog == nil {
		return []entities.Entity{}, nil
	}

	list, err := catalog.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing %s catalog: %w: %w", kind, services.ErrStorageUnavailable, err)
	}
	return orEmpty(list), nil
}

// Generations lists every generation.
func (h *CatalogHandler) Generations(ctx context.Context) ([]entities.Generation, error) {
	list, err := h.generations.ListGenerations(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing generations: %w: %w", services.ErrStorageUnavailable, err)
	}
	return orEmpty(list), nil
}

// Events lists every event with its relations.
func (h *CatalogHandler) Events(ctx context.Context) ([]entities.Event, error) {
	list, err := h.events.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w: %w", services.ErrStorageUnavailable, err)
	}
	return orEmpty(list), nil
}

// Chapter returns one chapter, or services.ErrChapterNotFound.
func (h *CatalogHandler) Chapter(ctx context.Context, number int) (*entities.Chapter, error) {
	chapter, err := h.chapters.FindByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("finding chapter: %w: %w", services.ErrStorageUnavailable, err)
	}
	if chapter == nil {
		return nil, fmt.Errorf("chapter %d: %w", number, services.ErrChapterNotFound)
	}
	chapter.Events = orEmpty(chapter.Events)
	return chapter, nil
}

func orEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
