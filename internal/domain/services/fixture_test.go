package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
	"github.com/ersonp/lore-oracle/internal/domain/mocks"
	"github.com/ersonp/lore-oracle/internal/domain/nlp"
	"github.com/ersonp/lore-oracle/internal/domain/ports"
)

// fixture is a small Macondo dataset wired to mocks.
type fixture struct {
	characters *mocks.Catalog
	places     *mocks.Catalog
	objects    *mocks.Catalog
	events     *mocks.EventStore
	chapters   *mocks.ChapterStore
	classifier *nlp.IntentClassifier
}

func testLexicon() entities.IntentLexicon {
	return entities.IntentLexicon{Intents: []entities.IntentGroup{
		{Key: entities.IntentDie, Phrases: []string{"morir", "murió"}},
		{Key: entities.IntentFound, Phrases: []string{"fundar", "fundó", "funda"}},
	}}
}

func testEvents() []entities.Event {
	return []entities.Event{
		{ID: "e1", Name: "Fundación de Macondo", Description: "José Arcadio Buendía funda el pueblo", CharacterIDs: []string{"c1"}, PlaceID: "p1"},
		{ID: "e2", Name: "Llegada de los gitanos", Description: "Melquíades trae el imán", CharacterIDs: []string{"c3"}, PlaceID: "p1"},
		{ID: "e3", Name: "Muerte de José Arcadio", Description: "José Arcadio murió atado al castaño", CharacterIDs: []string{"c1"}, PlaceID: "p1"},
		{ID: "e4", Name: "Guerra civil", Description: "Aureliano promueve treinta y dos levantamientos", CharacterIDs: []string{"c2"}, PlaceID: "p2"},
		{ID: "e5", Name: "Peste del insomnio", Description: "Todo el pueblo olvida", PlaceID: "p1"},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	classifier, err := nlp.NewIntentClassifier(testLexicon())
	require.NoError(t, err)

	events := testEvents()
	return &fixture{
		characters: mocks.NewCatalog(
			entities.Entity{ID: "c1", Kind: entities.KindCharacter, Name: "José Arcadio Buendía"},
			entities.Entity{ID: "c2", Kind: entities.KindCharacter, Name: "Aureliano (coronel)"},
			entities.Entity{ID: "c3", Kind: entities.KindCharacter, Name: "Melquíades"},
		),
		places: mocks.NewCatalog(
			entities.Entity{ID: "p1", Kind: entities.KindPlace, Name: "Macondo"},
			entities.Entity{ID: "p2", Kind: entities.KindPlace, Name: "Riohacha"},
		),
		objects: mocks.NewCatalog(
			entities.Entity{ID: "o1", Kind: entities.KindObject, Name: "Pergaminos"},
		),
		events: &mocks.EventStore{Events: events},
		chapters: &mocks.ChapterStore{Chapters: map[int]*entities.Chapter{
			3: {Number: 3, EventIDs: []string{"e1", "e2"}, Events: events[:2]},
		}},
		classifier: classifier,
	}
}

func (f *fixture) catalogs() ports.Catalogs {
	return ports.Catalogs{Characters: f.characters, Places: f.places, Objects: f.objects}
}

func (f *fixture) analyzer() *QueryAnalyzer {
	return NewQueryAnalyzer(f.catalogs(), f.events, f.classifier, nlp.NewFuzzyMatcher(nlp.DefaultFuzzyThreshold), nil)
}

func (f *fixture) resolver() *Resolver {
	return NewResolver(f.catalogs(), f.events, f.chapters, f.classifier, nil)
}

func (f *fixture) questions() *QuestionService {
	return NewQuestionService(f.analyzer(), f.resolver())
}

func eventIDs(events []entities.Event) []string {
	ids := make([]string, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}
	return ids
}
