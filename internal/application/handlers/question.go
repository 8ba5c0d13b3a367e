// Package handlers contains the use-case entry points shared by the CLI and
// the HTTP API.
package handlers

import (
	"context"

	"github.com/ersonp/lore-oracle/internal/domain/entities"
	"github.com/ersonp/lore-oracle/internal/domain/services"
)

// QuestionHandler answers free-text questions.
type QuestionHandler struct {
	service *services.QuestionService
}

// NewQuestionHandler creates a new question handler.
func NewQuestionHandler(service *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		service: service,
	}
}

// QuestionResult contains the answer to a question.
type QuestionResult struct {
	Question string
	State    entities.ResolutionState
	Label    entities.ChapterLabel
	Results  []entities.Event
	Analysis *entities.QuestionAnalysis
}

// Handle analyzes and resolves the question. Errors keep the service
// sentinels so callers can map them with errors.Is.
func (h *QuestionHandler) Handle(ctx context.Context, question string) (*QuestionResult, error) {
	answer, err := h.service.AnalyzeAndResolve(ctx, question)
	if err != nil {
		return nil, err
	}

	return &QuestionResult{
		Question: question,
		State:    answer.Resolution.State,
		Label:    answer.Resolution.Label,
		Results:  answer.Resolution.Results,
		Analysis: answer.Analysis,
	}, nil
}
