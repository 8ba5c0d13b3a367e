package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
)

func intp(n int) *int { return &n }

func TestResolver_State(t *testing.T) {
	r := newFixture(t).resolver()

	tests := []struct {
		name     string
		analysis entities.QuestionAnalysis
		want     entities.ResolutionState
	}{
		{
			name:     "chapter wins over everything",
			analysis: entities.QuestionAnalysis{ChapterNumber: intp(2), FuzzyEvent: &entities.EventSummary{ID: "e1"}, MatchedCharacterNames: []string{"Melquíades"}},
			want:     entities.StateExplicitChapter,
		},
		{
			name:     "fuzzy hit",
			analysis: entities.QuestionAnalysis{FuzzyEvent: &entities.EventSummary{ID: "e1"}},
			want:     entities.StateFuzzyHit,
		},
		{
			name:     "nothing",
			analysis: entities.QuestionAnalysis{},
			want:     entities.StateNoSignal,
		},
		{
			name:     "objects only",
			analysis: entities.QuestionAnalysis{MatchedObjectNames: []string{"Pergaminos"}},
			want:     entities.StateNoSignal,
		},
		{
			name:     "place",
			analysis: entities.QuestionAnalysis{MatchedPlaceNames: []string{"Macondo"}},
			want:     entities.StateFilteredSearch,
		},
		{
			name:     "intent",
			analysis: entities.QuestionAnalysis{MatchedIntents: []entities.IntentMatch{{Intent: entities.IntentDie, Phrase: "murió"}}},
			want:     entities.StateFilteredSearch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.State(&tt.analysis))
		})
	}
}

func TestResolver_ExplicitChapter(t *testing.T) {
	f := newFixture(t)

	res, err := f.resolver().Resolve(context.Background(), &entities.QuestionAnalysis{ChapterNumber: intp(3)})
	require.NoError(t, err)

	n, ok := res.Label.Number()
	require.True(t, ok)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"e1", "e2"}, eventIDs(res.Results))
	assert.Equal(t, entities.StateExplicitChapter, res.State)
}

func TestResolver_ChapterNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.resolver().Resolve(context.Background(), &entities.QuestionAnalysis{ChapterNumber: intp(9)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChapterNotFound)
}

func TestResolver_ChapterStoreError(t *testing.T) {
	f := newFixture(t)
	f.chapters.Err = errors.New("io")

	_, err := f.resolver().Resolve(context.Background(), &entities.QuestionAnalysis{ChapterNumber: intp(3)})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestResolver_FuzzyHit(t *testing.T) {
	f := newFixture(t)

	res, err := f.resolver().Resolve(context.Background(), &entities.QuestionAnalysis{
		FuzzyEvent: &entities.EventSummary{ID: "e5", Name: "Peste del insomnio"},
	})
	require.NoError(t, err)

	assert.Equal(t, entities.LabelSimilar, res.Label.String())
	assert.Equal(t, []string{"e5"}, eventIDs(res.Results))
}

func TestResolver_FuzzyHitMissingEvent(t *testing.T) {
	f := newFixture(t)

	res, err := f.resolver().Resolve(context.Background(), &entities.QuestionAnalysis{
		FuzzyEvent: &entities.EventSummary{ID: "gone"},
	})
	require.NoError(t, err)

	assert.Equal(t, entities.LabelSimilar, res.Label.String())
	assert.NotNil(t, res.Results)
	assert.Empty(t, res.Results)
}

func TestResolver_NoSignal(t *testing.T) {
	f := newFixture(t)

	res, err := f.resolver().Resolve(context.Background(), &entities.QuestionAnalysis{})
	require.NoError(t, err)

	assert.Equal(t, entities.LabelAll, res.Label.String())
	assert.NotNil(t, res.Results)
	assert.Empty(t, res.Results)
	assert.Zero(t, f.events.QueryCallCount)
}

func TestResolver_FilteredSearch(t *testing.T) {
	f := newFixture(t)

	res, err := f.resolver().Resolve(context.Background(), &entities.QuestionAnalysis{
		MatchedIntents:    []entities.IntentMatch{{Intent: entities.IntentDie, Phrase: "murió"}},
		MatchedPlaceNames: []string{"Macondo"},
	})
	require.NoError(t, err)

	assert.Equal(t, entities.LabelAll, res.Label.String())
	assert.Equal(t, []string{"e3"}, eventIDs(res.Results))
	assert.Equal(t, []string{"p1"}, f.events.LastFilter.PlaceIDs)
	assert.Len(t, f.events.LastFilter.PhrasePatterns, 2)
}

func TestResolver_FilteredSearchUnknownName(t *testing.T) {
	f := newFixture(t)

	res, err := f.resolver().Resolve(context.Background(), &entities.QuestionAnalysis{
		MatchedCharacterNames: []string{"Nadie"},
	})
	require.NoError(t, err)

	assert.Empty(t, res.Results)
	assert.NotNil(t, res.Results)
	assert.Zero(t, f.events.QueryCallCount)
}

func TestResolver_QueryError(t *testing.T) {
	f := newFixture(t)
	f.events.Err = errors.New("timeout")

	_, err := f.resolver().Resolve(context.Background(), &entities.QuestionAnalysis{
		MatchedPlaceNames: []string{"Macondo"},
	})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestResolver_BuildFilter(t *testing.T) {
	f := newFixture(t)

	filter, err := f.resolver().BuildFilter(context.Background(), &entities.QuestionAnalysis{
		MatchedIntents:        []entities.IntentMatch{{Intent: entities.IntentFound, Phrase: "fundó"}},
		MatchedCharacterNames: []string{"José Arcadio Buendía", "Melquíades"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"c1", "c3"}, filter.CharacterIDs)
	assert.Empty(t, filter.PlaceIDs)
	assert.Len(t, filter.PhrasePatterns, 3)
	assert.Equal(t, []string{"José Arcadio Buendía", "Melquíades"}, f.characters.FindIDsLastCall)
}
