// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"strings"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
)

// Catalog is a mock implementation of ports.EntityCatalog.
type Catalog struct {
	Entities []entities.Entity
	Err      error

	// Call tracking
	ListCallCount   int
	FindIDsLastCall []string
}

// NewCatalog creates a catalog holding the given entities.
func NewCatalog(list ...entities.Entity) *Catalog {
	return &Catalog{Entities: list}
}

// ListNames returns the configured entities or error.
func (m *Catalog) ListNames(_ context.Context) ([]entities.Entity, error) {
	m.ListCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Entities, nil
}

// FindIDsByNames returns ids of entities whose name equals one of names, ignoring case.
func (m *Catalog) FindIDsByNames(_ context.Context, names []string) ([]string, error) {
	m.FindIDsLastCall = names
	if m.Err != nil {
		return nil, m.Err
	}
	var ids []string
	for _, e := range m.Entities {
		for _, n := range names {
			if strings.EqualFold(e.Name, n) {
				ids = append(ids, e.ID)
				break
			}
		}
	}
	return ids, nil
}

// Generations is a mock implementation of ports.GenerationStore.
type Generations struct {
	Items []entities.Generation
	Err   error
}

// ListGenerations returns the configured generations or error.
func (m *Generations) ListGenerations(_ context.Context) ([]entities.Generation, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Items, nil
}
