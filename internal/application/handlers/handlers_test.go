package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
	"github.com/ersonp/lore-oracle/internal/domain/mocks"
	"github.com/ersonp/lore-oracle/internal/domain/nlp"
	"github.com/ersonp/lore-oracle/internal/domain/ports"
	"github.com/ersonp/lore-oracle/internal/domain/services"
)

type testStores struct {
	characters *mocks.Catalog
	places     *mocks.Catalog
	events     *mocks.EventStore
	chapters   *mocks.ChapterStore
}

func newTestStores() *testStores {
	events := []entities.Event{
		{ID: "e1", Name: "Fundación de Macondo", Description: "José Arcadio Buendía funda el pueblo", CharacterIDs: []string{"c1"}, PlaceID: "p1"},
		{ID: "e2", Name: "Muerte de José Arcadio", Description: "José Arcadio murió atado al castaño", CharacterIDs: []string{"c1"}, PlaceID: "p1"},
	}
	return &testStores{
		characters: mocks.NewCatalog(entities.Entity{ID: "c1", Kind: entities.KindCharacter, Name: "José Arcadio Buendía"}),
		places:     mocks.NewCatalog(entities.Entity{ID: "p1", Kind: entities.KindPlace, Name: "Macondo"}),
		events:     &mocks.EventStore{Events: events},
		chapters: &mocks.ChapterStore{Chapters: map[int]*entities.Chapter{
			1: {Number: 1, EventIDs: []string{"e1"}, Events: events[:1]},
		}},
	}
}

func (s *testStores) catalogs() ports.Catalogs {
	return ports.Catalogs{Characters: s.characters, Places: s.places}
}

func newQuestionHandler(t *testing.T, s *testStores) *QuestionHandler {
	t.Helper()
	classifier, err := nlp.NewIntentClassifier(entities.IntentLexicon{Intents: []entities.IntentGroup{
		{Key: entities.IntentDie, Phrases: []string{"murió"}},
	}})
	require.NoError(t, err)

	analyzer := services.NewQueryAnalyzer(s.catalogs(), s.events, classifier, nlp.NewFuzzyMatcher(nlp.DefaultFuzzyThreshold), nil)
	resolver := services.NewResolver(s.catalogs(), s.events, s.chapters, classifier, nil)
	return NewQuestionHandler(services.NewQuestionService(analyzer, resolver))
}

func TestQuestionHandler_Handle(t *testing.T) {
	handler := newQuestionHandler(t, newTestStores())

	result, err := handler.Handle(context.Background(), "¿Quién murió?")
	require.NoError(t, err)

	assert.Equal(t, "¿Quién murió?", result.Question)
	assert.Equal(t, entities.StateFilteredSearch, result.State)
	assert.Equal(t, entities.LabelAll, result.Label.String())
	require.Len(t, result.Results, 1)
	assert.Equal(t, "e2", result.Results[0].ID)
	require.NotNil(t, result.Analysis)
}

func TestQuestionHandler_Handle_Chapter(t *testing.T) {
	handler := newQuestionHandler(t, newTestStores())

	result, err := handler.Handle(context.Background(), "capitulo 1")
	require.NoError(t, err)

	n, ok := result.Label.Number()
	assert.True(t, ok)
	assert.Equal(t, 1, n)
}

func TestQuestionHandler_Handle_Errors(t *testing.T) {
	handler := newQuestionHandler(t, newTestStores())

	_, err := handler.Handle(context.Background(), " ")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = handler.Handle(context.Background(), "capitulo 7")
	assert.ErrorIs(t, err, services.ErrChapterNotFound)
}

func TestSearchHandler_Handle(t *testing.T) {
	s := newTestStores()
	handler := NewSearchHandler(services.NewSearchService(s.catalogs(), &mocks.Generations{}, s.events))

	result, err := handler.Handle(context.Background(), "macondo")
	require.NoError(t, err)
	assert.Len(t, result.Places, 1)
	assert.Len(t, result.Events, 1)
}

func TestImportHandler_Handle(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		format   string
		imported int
	}{
		{
			name:     "json file",
			file:     "macondo.json",
			content:  `{"characters": [{"name": "Melquíades"}], "events": [{"name": "Llegada", "characters": ["Melquíades"]}]}`,
			imported: 2,
		},
		{
			name:     "yaml file",
			file:     "macondo.yaml",
			content:  "places:\n  - name: Macondo\n",
			imported: 1,
		},
		{
			name:     "csv file",
			file:     "entities.csv",
			content:  "kind,name\ncharacter,Úrsula\nplace,Macondo\n",
			imported: 2,
		},
		{
			name:     "explicit format",
			file:     "data.txt",
			content:  `{"objects": [{"name": "Pergaminos"}]}`,
			format:   "json",
			imported: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &mocks.DatasetWriter{}
			handler := NewImportHandler(services.NewImportService(writer, ports.Catalogs{}, nil, nil))

			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			result, err := handler.Handle(context.Background(), path, ImportOptions{Format: tt.format})
			require.NoError(t, err)
			assert.Equal(t, tt.imported, result.Imported)
			assert.Equal(t, tt.imported, result.Records)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestImportHandler_Handle_DryRun(t *testing.T) {
	writer := &mocks.DatasetWriter{}
	handler := NewImportHandler(services.NewImportService(writer, ports.Catalogs{}, nil, nil))

	path := filepath.Join(t.TempDir(), "macondo.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"places": [{"name": "Macondo"}, {"name": ""}]}`), 0644))

	result, err := handler.Handle(context.Background(), path, ImportOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, writer.Entities)
}

func TestImportHandler_Handle_Errors(t *testing.T) {
	handler := NewImportHandler(services.NewImportService(&mocks.DatasetWriter{}, ports.Catalogs{}, nil, nil))
	dir := t.TempDir()

	_, err := handler.Handle(context.Background(), filepath.Join(dir, "notes.txt"), ImportOptions{})
	assert.ErrorContains(t, err, "unsupported format")

	_, err = handler.Handle(context.Background(), filepath.Join(dir, "missing.json"), ImportOptions{})
	assert.ErrorContains(t, err, "opening file")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0644))
	_, err = handler.Handle(context.Background(), bad, ImportOptions{})
	assert.ErrorContains(t, err, "parsing file")

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	result, err := handler.Handle(context.Background(), empty, ImportOptions{})
	require.NoError(t, err)
	assert.Zero(t, result.Imported)
}

func TestCatalogHandler(t *testing.T) {
	s := newTestStores()
	handler := NewCatalogHandler(s.catalogs(), &mocks.Generations{}, s.events, s.chapters)
	ctx := context.Background()

	characters, err := handler.Entities(ctx, entities.KindCharacter)
	require.NoError(t, err)
	assert.Len(t, characters, 1)

	objects, err := handler.Entities(ctx, entities.KindObject)
	require.NoError(t, err)
	assert.NotNil(t, objects)
	assert.Empty(t, objects)

	_, err = handler.Entities(ctx, "animal")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	gens, err := handler.Generations(ctx)
	require.NoError(t, err)
	assert.NotNil(t, gens)

	events, err := handler.Events(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	chapter, err := handler.Chapter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"e1"}, chapter.EventIDs)

	_, err = handler.Chapter(ctx, 2)
	assert.ErrorIs(t, err, services.ErrChapterNotFound)
}

func TestCatalogHandler_StorageErrors(t *testing.T) {
	s := newTestStores()
	s.places.Err = errors.New("closed")
	s.events.Err = errors.New("closed")
	s.chapters.Err = errors.New("closed")
	handler := NewCatalogHandler(s.catalogs(), &mocks.Generations{Err: errors.New("closed")}, s.events, s.chapters)
	ctx := context.Background()

	_, err := handler.Entities(ctx, entities.KindPlace)
	assert.ErrorIs(t, err, services.ErrStorageUnavailable)
	_, err = handler.Generations(ctx)
	assert.ErrorIs(t, err, services.ErrStorageUnavailable)
	_, err = handler.Events(ctx)
	assert.ErrorIs(t, err, services.ErrStorageUnavailable)
	_, err = handler.Chapter(ctx, 1)
	assert.ErrorIs(t, err, services.ErrStorageUnavailable)
}
