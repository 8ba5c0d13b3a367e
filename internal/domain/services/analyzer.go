// Package services holds the question pipeline and the dataset use cases.
package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
	"github.com/ersonp/lore-oracle/internal/domain/nlp"
	"github.com/ersonp/lore-oracle/internal/domain/ports"
	"github.com/ersonp/lore-oracle/internal/domain/textnorm"
)

// QueryAnalyzer turns a raw question into a QuestionAnalysis.
type QueryAnalyzer struct {
	catalogs   ports.Catalogs
	events     ports.EventStore
	classifier *nlp.IntentClassifier
	fuzzy      *nlp.FuzzyMatcher
	logger     *zap.Logger
}

// NewQueryAnalyzer creates a new analyzer.
func NewQueryAnalyzer(
	catalogs ports.Catalogs,
	events ports.EventStore,
	classifier *nlp.IntentClassifier,
	fuzzy *nlp.FuzzyMatcher,
	logger *zap.Logger,
) *QueryAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryAnalyzer{
		catalogs:   catalogs,
		events:     events,
		classifier: classifier,
		fuzzy:      fuzzy,
		logger:     logger,
	}
}

// Analyze normalizes the question, extracts the chapter, matches the entity
// catalogs and the intent lexicon, and falls back to fuzzy event matching
// only when none of those produced a signal.
func (a *QueryAnalyzer) Analyze(ctx context.Context, rawQuestion string) (*entities.QuestionAnalysis, error) {
	normalized := textnorm.Normalize(rawQuestion)
	analysis := &entities.QuestionAnalysis{
		Question:   rawQuestion,
		Normalized: normalized,
	}

	if n, ok := nlp.ExtractChapter(normalized); ok {
		analysis.ChapterNumber = &n
	}

	characters, places, objects, err := a.loadCatalogs(ctx)
	if err != nil {
		return nil, err
	}

	analysis.MatchedCharacterNames = nlp.Names(nlp.FindMentioned(characters, normalized))
	analysis.MatchedPlaceNames = nlp.Names(nlp.FindMentioned(places, normalized))
	analysis.MatchedObjectNames = nlp.Names(nlp.FindMentioned(objects, normalized))
	analysis.MatchedIntents = a.classifier.Detect(rawQuestion)

	a.logger.Debug("question analyzed",
		zap.String("normalized", normalized),
		zap.Intp("chapter", analysis.ChapterNumber),
		zap.Strings("characters", analysis.MatchedCharacterNames),
		zap.Strings("places", analysis.MatchedPlaceNames),
		zap.Strings("objects", analysis.MatchedObjectNames),
		zap.Int("intents", len(analysis.MatchedIntents)),
	)

	if analysis.HasStructuredSignal() {
		return analysis, nil
	}

	summaries, err := a.events.ListSummaries(ctx)
	if err != nil {
		return nil, storageErr("listing event summaries", err)
	}
	hit, score := a.fuzzy.BestMatch(normalized, summaries)
	analysis.FuzzyEvent = hit
	if hit != nil {
		analysis.FuzzyScore = score
	}

	a.logger.Debug("fuzzy fallback",
		zap.Int("candidates", len(summaries)),
		zap.Float64("best_score", score),
		zap.Bool("hit", hit != nil),
	)

	return analysis, nil
}

// loadCatalogs reads the three catalogs concurrently. A nil object catalog
// yields no objects.
func (a *QueryAnalyzer) loadCatalogs(ctx context.Context) (characters, places, objects []entities.Entity, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := a.catalogs.Characters.ListNames(gctx)
		if err != nil {
			return storageErr("listing characters", err)
		}
		characters = list
		return nil
	})
	g.Go(func() error {
		list, err := a.catalogs.Places.ListNames(gctx)
		if err != nil {
			return storageErr("listing places", err)
		}
		places = list
		return nil
	})
	if a.catalogs.Objects != nil {
		g.Go(func() error {
			list, err := a.catalogs.Objects.ListNames(gctx)
			if err != nil {
				return storageErr("listing objects", err)
			}
			objects = list
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return characters, places, objects, nil
}
