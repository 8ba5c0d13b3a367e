package handlers

import (
	"context"

	"github.com/ersonp/lore-oracle/internal/domain/services"
)

// SearchHandler handles plain text search.
type SearchHandler struct {
	service *services.SearchService
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(service *services.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Handle searches every collection for text.
func (h *SearchHandler) Handle(ctx context.Context, text string) (*services.SearchResult, error) {
	return h.service.Search(ctx, text)
}
