package mocks

import (
	"context"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
)

// DatasetWriter is a mock implementation of ports.DatasetWriter that records
// everything it is asked to save.
type DatasetWriter struct {
	Entities    []entities.Entity
	Generations []entities.Generation
	Events      []entities.Event
	Chapters    []entities.Chapter
	Err         error
}

// SaveEntity records the entity.
func (m *DatasetWriter) SaveEntity(_ context.Context, e *entities.Entity) error {
	if m.Err != nil {
		return m.Err
	}
	m.Entities = append(m.Entities, *e)
	return nil
}

// SaveGeneration records the generation.
func (m *DatasetWriter) SaveGeneration(_ context.Context, g *entities.Generation) error {
	if m.Err != nil {
		return m.Err
	}
	m.Generations = append(m.Generations, *g)
	return nil
}

// SaveEvent records the event.
func (m *DatasetWriter) SaveEvent(_ context.Context, e *entities.Event) error {
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, *e)
	return nil
}

// SaveChapter records the chapter.
func (m *DatasetWriter) SaveChapter(_ context.Context, c *entities.Chapter) error {
	if m.Err != nil {
		return m.Err
	}
	m.Chapters = append(m.Chapters, *c)
	return nil
}
