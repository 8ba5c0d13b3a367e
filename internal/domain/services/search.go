package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
	"github.com/ersonp/lore-oracle/internal/domain/ports"
	"github.com/ersonp/lore-oracle/internal/domain/textnorm"
)

// SearchResult groups plain-search hits by collection.
type SearchResult struct {
	Characters  []entities.Entity       `json:"characters"`
	Places      []entities.Entity       `json:"places"`
	Objects     []entities.Entity       `json:"objects"`
	Generations []entities.Generation   `json:"generations"`
	Events      []entities.EventSummary `json:"events"`
}

// Total returns the number of hits across collections.
func (r *SearchResult) Total() int {
	return len(r.Characters) + len(r.Places) + len(r.Objects) + len(r.Generations) + len(r.Events)
}

// SearchService performs folded substring search over every collection.
type SearchService struct {
	catalogs    ports.Catalogs
	generations ports.GenerationStore
	events      ports.EventStore
}

// NewSearchService creates a new search service.
func NewSearchService(catalogs ports.Catalogs, generations ports.GenerationStore, events ports.EventStore) *SearchService {
	return &SearchService{
		catalogs:    catalogs,
		generations: generations,
		events:      events,
	}
}

// Search returns every record whose folded name contains the folded text.
// Events also match on their description.
func (s *SearchService) Search(ctx context.Context, text string) (*SearchResult, error) {
	needle := strings.TrimSpace(textnorm.Fold(text))
	if needle == "" {
		return nil, fmt.Errorf("empty search text: %w", ErrInvalidInput)
	}

	result := &SearchResult{
		Characters:  []entities.Entity{},
		Places:      []entities.Entity{},
		Objects:     []entities.Entity{},
		Generations: []entities.Generation{},
		Events:      []entities.EventSummary{},
	}

	g, gctx := errgroup.WithContext(ctx)

	searchCatalog := func(catalog ports.EntityCatalog, op string, out *[]entities.Entity) {
		if catalog == nil {
			return
		}
		g.Go(func() error {
			list, err := catalog.ListNames(gctx)
			if err != nil {
				return storageErr(op, err)
			}
			for _, e := range list {
				if strings.Contains(textnorm.Fold(e.Name), needle) {
					*out = append(*out, e)
				}
			}
			return nil
		})
	}
	searchCatalog(s.catalogs.Characters, "listing characters", &result.Characters)
	searchCatalog(s.catalogs.Places, "listing places", &result.Places)
	searchCatalog(s.catalogs.Objects, "listing objects", &result.Objects)

	g.Go(func() error {
		list, err := s.generations.ListGenerations(gctx)
		if err != nil {
			return storageErr("listing generations", err)
		}
		for _, gen := range list {
			if strings.Contains(textnorm.Fold(gen.Name), needle) {
				result.Generations = append(result.Generations, gen)
			}
		}
		return nil
	})

	g.Go(func() error {
		list, err := s.events.ListSummaries(gctx)
		if err != nil {
			return storageErr("listing events", err)
		}
		for _, e := range list {
			if strings.Contains(textnorm.Fold(e.Name), needle) || strings.Contains(textnorm.Fold(e.Description), needle) {
				result.Events = append(result.Events, e)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
