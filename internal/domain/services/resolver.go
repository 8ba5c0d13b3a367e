package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
	"github.com/ersonp/lore-oracle/internal/domain/nlp"
	"github.com/ersonp/lore-oracle/internal/domain/ports"
)

// resolveState is one branch of the resolver. States are evaluated in order
// and the first one that applies produces the resolution.
type resolveState struct {
	name    entities.ResolutionState
	applies func(*entities.QuestionAnalysis) bool
	run     func(context.Context, *entities.QuestionAnalysis) (*entities.Resolution, error)
}

// Resolver turns a QuestionAnalysis into events.
type Resolver struct {
	catalogs   ports.Catalogs
	events     ports.EventStore
	chapters   ports.ChapterStore
	classifier *nlp.IntentClassifier
	logger     *zap.Logger
	states     []resolveState
}

// NewResolver creates a resolver with the priority chain
// explicit chapter, fuzzy hit, no signal, filtered search.
func NewResolver(
	catalogs ports.Catalogs,
	events ports.EventStore,
	chapters ports.ChapterStore,
	classifier *nlp.IntentClassifier,
	logger *zap.Logger,
) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{
		catalogs:   catalogs,
		events:     events,
		chapters:   chapters,
		classifier: classifier,
		logger:     logger,
	}
	r.states = []resolveState{
		{
			name:    entities.StateExplicitChapter,
			applies: func(a *entities.QuestionAnalysis) bool { return a.ChapterNumber != nil },
			run:     r.resolveChapter,
		},
		{
			name:    entities.StateFuzzyHit,
			applies: func(a *entities.QuestionAnalysis) bool { return a.FuzzyEvent != nil },
			run:     r.resolveFuzzy,
		},
		{
			name:    entities.StateNoSignal,
			applies: func(a *entities.QuestionAnalysis) bool { return !a.HasFilterSignal() },
			run:     r.resolveNoSignal,
		},
		{
			name:    entities.StateFilteredSearch,
			applies: func(*entities.QuestionAnalysis) bool { return true },
			run:     r.resolveFiltered,
		},
	}
	return r
}

// State returns the name of the state that would handle the analysis.
func (r *Resolver) State(analysis *entities.QuestionAnalysis) entities.ResolutionState {
	for _, s := range r.states {
		if s.applies(analysis) {
			return s.name
		}
	}
	return entities.StateNoSignal
}

// Resolve runs the first applicable state.
func (r *Resolver) Resolve(ctx context.Context, analysis *entities.QuestionAnalysis) (*entities.Resolution, error) {
	for _, s := range r.states {
		if !s.applies(analysis) {
			continue
		}
		res, err := s.run(ctx, analysis)
		if err != nil {
			return nil, err
		}
		res.State = s.name
		if res.Results == nil {
			res.Results = []entities.Event{}
		}
		r.logger.Info("question resolved",
			zap.String("state", string(s.name)),
			zap.Stringer("label", res.Label),
			zap.Int("results", len(res.Results)),
		)
		return res, nil
	}
	return &entities.Resolution{State: entities.StateNoSignal, Label: entities.AllLabel(), Results: []entities.Event{}}, nil
}

func (r *Resolver) resolveChapter(ctx context.Context, a *entities.QuestionAnalysis) (*entities.Resolution, error) {
	n := *a.ChapterNumber
	chapter, err := r.chapters.FindByNumber(ctx, n)
	if err != nil {
		return nil, storageErr("finding chapter", err)
	}
	if chapter == nil {
		return nil, fmt.Errorf("chapter %d: %w", n, ErrChapterNotFound)
	}
	return &entities.Resolution{
		Label:   entities.ChapterNumberLabel(n),
		Results: chapter.Events,
	}, nil
}

func (r *Resolver) resolveFuzzy(ctx context.Context, a *entities.QuestionAnalysis) (*entities.Resolution, error) {
	event, err := r.events.FindByID(ctx, a.FuzzyEvent.ID)
	if err != nil {
		return nil, storageErr("finding event", err)
	}
	res := &entities.Resolution{Label: entities.SimilarLabel()}
	if event != nil {
		res.Results = []entities.Event{*event}
	}
	return res, nil
}

func (r *Resolver) resolveNoSignal(_ context.Context, _ *entities.QuestionAnalysis) (*entities.Resolution, error) {
	return &entities.Resolution{Label: entities.AllLabel()}, nil
}

func (r *Resolver) resolveFiltered(ctx context.Context, a *entities.QuestionAnalysis) (*entities.Resolution, error) {
	filter, err := r.BuildFilter(ctx, a)
	if err != nil {
		return nil, err
	}

	res := &entities.Resolution{Label: entities.AllLabel()}
	if filter.IsEmpty() {
		return res, nil
	}

	events, err := r.events.Query(ctx, filter)
	if err != nil {
		return nil, storageErr("querying events", err)
	}
	res.Results = events
	return res, nil
}

// BuildFilter resolves matched names to catalog ids and assembles the
// event filter for the analysis.
func (r *Resolver) BuildFilter(ctx context.Context, a *entities.QuestionAnalysis) (entities.EventFilter, error) {
	var filter entities.EventFilter

	filter.PhrasePatterns = r.classifier.Patterns(a.Intents())

	if len(a.MatchedCharacterNames) > 0 {
		ids, err := r.catalogs.Characters.FindIDsByNames(ctx, a.MatchedCharacterNames)
		if err != nil {
			return entities.EventFilter{}, storageErr("resolving character ids", err)
		}
		filter.CharacterIDs = ids
	}

	if len(a.MatchedPlaceNames) > 0 {
		ids, err := r.catalogs.Places.FindIDsByNames(ctx, a.MatchedPlaceNames)
		if err != nil {
			return entities.EventFilter{}, storageErr("resolving place ids", err)
		}
		filter.PlaceIDs = ids
	}

	return filter, nil
}
