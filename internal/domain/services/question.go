package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
)

// Answer pairs a resolution with the analysis that produced it.
type Answer struct {
	Analysis   *entities.QuestionAnalysis
	Resolution *entities.Resolution
}

// QuestionService answers free-text questions.
type QuestionService struct {
	analyzer *QueryAnalyzer
	resolver *Resolver
}

// NewQuestionService creates a new question service.
func NewQuestionService(analyzer *QueryAnalyzer, resolver *Resolver) *QuestionService {
	return &QuestionService{
		analyzer: analyzer,
		resolver: resolver,
	}
}

// AnalyzeAndResolve analyzes the question and resolves it to events.
// It returns ErrInvalidInput for a blank question, ErrChapterNotFound for a
// missing explicit chapter and ErrStorageUnavailable for store failures.
func (s *QuestionService) AnalyzeAndResolve(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("empty question: %w", ErrInvalidInput)
	}

	analysis, err := s.analyzer.Analyze(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("analyzing question: %w", err)
	}

	resolution, err := s.resolver.Resolve(ctx, analysis)
	if err != nil {
		return nil, fmt.Errorf("resolving question: %w", err)
	}

	return &Answer{Analysis: analysis, Resolution: resolution}, nil
}
