package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
	"github.com/ersonp/lore-oracle/internal/domain/mocks"
	"github.com/ersonp/lore-oracle/internal/domain/ports"
	"github.com/ersonp/lore-oracle/internal/infrastructure/parsers"
)

func macondoDataset() *parsers.Dataset {
	return &parsers.Dataset{
		Characters: []parsers.RawEntity{
			{ID: "c1", Name: "José Arcadio Buendía"},
			{Name: "Úrsula Iguarán"},
		},
		Places:      []parsers.RawEntity{{ID: "p1", Name: "Macondo"}},
		Objects:     []parsers.RawEntity{{Name: "Pergaminos"}},
		Generations: []parsers.RawGeneration{{ID: "g1", Name: "Primera generación"}},
		Events: []parsers.RawEvent{
			{
				ID:          "e1",
				Name:        "Fundación de Macondo",
				Description: "José Arcadio Buendía funda el pueblo",
				Characters:  []string{"c1", "ursula iguaran"},
				Place:       "MACONDO",
				Generation:  "g1",
			},
			{Name: "Peste del insomnio", Place: "p1"},
		},
		Chapters: []parsers.RawChapter{
			{Number: 1, Events: []string{"e1", "Peste del insomnio"}},
		},
	}
}

func TestImportService_Import(t *testing.T) {
	writer := &mocks.DatasetWriter{}
	svc := NewImportService(writer, ports.Catalogs{}, nil, nil)

	result, err := svc.Import(context.Background(), macondoDataset(), ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 8, result.Imported)
	assert.Zero(t, result.Skipped)
	assert.Empty(t, result.Errors)

	require.Len(t, writer.Entities, 4)
	ursula := writer.Entities[1]
	assert.Equal(t, entities.KindCharacter, ursula.Kind)
	assert.NotEmpty(t, ursula.ID)
	assert.Equal(t, entities.KindObject, writer.Entities[3].Kind)

	require.Len(t, writer.Events, 2)
	assert.Equal(t, []string{"c1", ursula.ID}, writer.Events[0].CharacterIDs)
	assert.Equal(t, "p1", writer.Events[0].PlaceID)
	assert.Equal(t, "g1", writer.Events[0].GenerationID)

	require.Len(t, writer.Chapters, 1)
	assert.Equal(t, []string{"e1", writer.Events[1].ID}, writer.Chapters[0].EventIDs)
}

func TestImportService_DryRun(t *testing.T) {
	writer := &mocks.DatasetWriter{}
	svc := NewImportService(writer, ports.Catalogs{}, nil, nil)

	result, err := svc.Import(context.Background(), macondoDataset(), ImportOptions{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, 8, result.Imported)
	assert.Empty(t, writer.Entities)
	assert.Empty(t, writer.Events)
	assert.Empty(t, writer.Chapters)
}

func TestImportService_InvalidRecords(t *testing.T) {
	ds := &parsers.Dataset{
		Characters: []parsers.RawEntity{{Name: "  "}, {ID: "c1", Name: "Melquíades"}},
		Events: []parsers.RawEvent{
			{Name: "Llegada de los gitanos", Characters: []string{"Melquíades"}},
			{Name: "Boda", Characters: []string{"Nadie"}},
			{Name: "Viaje", Place: "Riohacha"},
			{Name: "Guerra", Generation: "g9"},
		},
		Chapters: []parsers.RawChapter{
			{Number: 0},
			{Number: 2, Events: []string{"Llegada de los gitanos"}},
			{Number: 2},
			{Number: 3, Events: []string{"Boda"}},
		},
	}

	writer := &mocks.DatasetWriter{}
	svc := NewImportService(writer, ports.Catalogs{}, nil, nil)

	result, err := svc.Import(context.Background(), ds, ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 7, result.Skipped)
	require.Len(t, result.Errors, 7)

	assert.Equal(t, "characters[0]", result.Errors[0].Record)
	assert.Equal(t, "name", result.Errors[0].Field)
	assert.Equal(t, "events[1]", result.Errors[1].Record)
	assert.Equal(t, "Nadie", result.Errors[1].Value)
	assert.Equal(t, "place", result.Errors[2].Field)
	assert.Equal(t, "generation", result.Errors[3].Field)
	assert.Equal(t, "chapters[0]", result.Errors[4].Record)
	assert.Equal(t, "duplicate chapter number", result.Errors[5].Message)
	assert.Equal(t, "chapters[3]: unknown event \"Boda\"", result.Errors[6].Error())
}

func TestImportService_ResolvesStoredEntities(t *testing.T) {
	stored := mocks.NewCatalog(entities.Entity{ID: "old-1", Kind: entities.KindCharacter, Name: "Aureliano (coronel)"})
	writer := &mocks.DatasetWriter{}
	svc := NewImportService(writer, ports.Catalogs{Characters: stored}, nil, nil)

	ds := &parsers.Dataset{Events: []parsers.RawEvent{
		{Name: "Guerra civil", Characters: []string{"Aureliano (coronel)"}},
	}}

	result, err := svc.Import(context.Background(), ds, ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	require.Len(t, writer.Events, 1)
	assert.Equal(t, []string{"old-1"}, writer.Events[0].CharacterIDs)
}

func TestImportService_ResolvesStoredEvents(t *testing.T) {
	stored := &mocks.EventStore{Events: []entities.Event{
		{ID: "old-e1", Name: "Fundación de Macondo"},
		{ID: "old-e2", Name: "Peste del insomnio"},
	}}
	writer := &mocks.DatasetWriter{}
	svc := NewImportService(writer, ports.Catalogs{}, stored, nil)

	ds := &parsers.Dataset{
		Events: []parsers.RawEvent{{ID: "e3", Name: "Guerra civil"}},
		Chapters: []parsers.RawChapter{
			{Number: 1, Events: []string{"old-e1", "peste del INSOMNIO", "e3"}},
			{Number: 2, Events: []string{"Boda"}},
		},
	}

	result, err := svc.Import(context.Background(), ds, ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, writer.Chapters, 1)
	assert.Equal(t, []string{"old-e1", "old-e2", "e3"}, writer.Chapters[0].EventIDs)
	assert.Equal(t, 1, stored.ListSummariesCallCount)
}

func TestImportService_Errors(t *testing.T) {
	svc := NewImportService(&mocks.DatasetWriter{}, ports.Catalogs{}, nil, nil)
	_, err := svc.Import(context.Background(), nil, ImportOptions{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	failing := &mocks.DatasetWriter{Err: errors.New("read-only")}
	svc = NewImportService(failing, ports.Catalogs{}, nil, nil)
	_, err = svc.Import(context.Background(), macondoDataset(), ImportOptions{})
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	broken := &mocks.Catalog{Err: errors.New("closed")}
	svc = NewImportService(&mocks.DatasetWriter{}, ports.Catalogs{Characters: broken}, nil, nil)
	ds := &parsers.Dataset{Events: []parsers.RawEvent{{Name: "Boda", Characters: []string{"Nadie"}}}}
	_, err = svc.Import(context.Background(), ds, ImportOptions{})
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	events := &mocks.EventStore{Err: errors.New("closed")}
	svc = NewImportService(&mocks.DatasetWriter{}, ports.Catalogs{}, events, nil)
	ds = &parsers.Dataset{Chapters: []parsers.RawChapter{{Number: 1, Events: []string{"e1"}}}}
	_, err = svc.Import(context.Background(), ds, ImportOptions{})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
