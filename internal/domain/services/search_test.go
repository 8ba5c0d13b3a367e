package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
	"github.com/ersonp/lore-oracle/internal/domain/mocks"
)

func newSearchService(f *fixture, gens *mocks.Generations) *SearchService {
	return NewSearchService(f.catalogs(), gens, f.events)
}

func TestSearchService_Search(t *testing.T) {
	f := newFixture(t)
	gens := &mocks.Generations{Items: []entities.Generation{
		{ID: "g1", Name: "Primera generación"},
		{ID: "g2", Name: "Segunda generación"},
	}}
	svc := newSearchService(f, gens)

	result, err := svc.Search(context.Background(), "ARCADIO")
	require.NoError(t, err)

	require.Len(t, result.Characters, 1)
	assert.Equal(t, "c1", result.Characters[0].ID)
	assert.Empty(t, result.Places)
	assert.Empty(t, result.Generations)
	require.Len(t, result.Events, 2)
	assert.Equal(t, "e1", result.Events[0].ID)
	assert.Equal(t, "e3", result.Events[1].ID)
	assert.Equal(t, 3, result.Total())
}

func TestSearchService_AccentInsensitive(t *testing.T) {
	f := newFixture(t)
	gens := &mocks.Generations{Items: []entities.Generation{{ID: "g1", Name: "Primera generación"}}}
	svc := newSearchService(f, gens)

	result, err := svc.Search(context.Background(), "GENERACIÓN")
	require.NoError(t, err)
	require.Len(t, result.Generations, 1)

	result, err = svc.Search(context.Background(), "melquiades")
	require.NoError(t, err)
	require.Len(t, result.Characters, 1)
	assert.Equal(t, "c3", result.Characters[0].ID)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "e2", result.Events[0].ID)
}

func TestSearchService_NoHits(t *testing.T) {
	f := newFixture(t)
	svc := newSearchService(f, &mocks.Generations{})

	result, err := svc.Search(context.Background(), "xyzzy")
	require.NoError(t, err)

	assert.Zero(t, result.Total())
	assert.NotNil(t, result.Characters)
	assert.NotNil(t, result.Events)
}

func TestSearchService_EmptyText(t *testing.T) {
	f := newFixture(t)
	svc := newSearchService(f, &mocks.Generations{})

	for _, text := range []string{"", "  ", "¿?"} {
		_, err := svc.Search(context.Background(), text)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestSearchService_StorageError(t *testing.T) {
	f := newFixture(t)
	svc := newSearchService(f, &mocks.Generations{Err: errors.New("closed")})

	_, err := svc.Search(context.Background(), "macondo")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
