// Package httpapi exposes the question pipeline and the read-only listings
// over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ersonp/lore-oracle/internal/application/handlers"
	"github.com/ersonp/lore-oracle/internal/domain/entities"
	"github.com/ersonp/lore-oracle/internal/domain/services"
)

// Handlers groups the use cases served by the API.
type Handlers struct {
	Questions *handlers.QuestionHandler
	Search    *handlers.SearchHandler
	Catalog   *handlers.CatalogHandler
	Lexicon   entities.IntentLexicon
}

// Server wires routes to handlers.
type Server struct {
	handlers Handlers
	timeout  time.Duration
	logger   *zap.Logger
	router   *mux.Router
}

// NewServer creates a server. A zero timeout disables the per-request
// deadline.
func NewServer(h Handlers, timeout time.Duration, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		handlers: h,
		timeout:  timeout,
		logger:   logger,
		router:   mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	s.router.Use(s.logRequests, s.withTimeout)

	s.router.HandleFunc("/api/questions", s.handleQuestion).Methods(http.MethodGet)
	s.router.HandleFunc("/api/search", s.handleSearch).Methods(http.MethodGet)
	s.router.HandleFunc("/api/characters", s.handleEntities(entities.KindCharacter)).Methods(http.MethodGet)
	s.router.HandleFunc("/api/places", s.handleEntities(entities.KindPlace)).Methods(http.MethodGet)
	s.router.HandleFunc("/api/objects", s.handleEntities(entities.KindObject)).Methods(http.MethodGet)
	s.router.HandleFunc("/api/generations", s.handleGenerations).Methods(http.MethodGet)
	s.router.HandleFunc("/api/events", s.handleEvents).Methods(http.MethodGet)
	s.router.HandleFunc("/api/chapters/{number:[0-9]+}", s.handleChapter).Methods(http.MethodGet)
	s.router.HandleFunc("/api/intents", s.handleIntents).Methods(http.MethodGet)

	s.router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}).Methods(http.MethodGet)

	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
}

// questionResponse is the body of GET /api/questions.
type questionResponse struct {
	ChapterLabel entities.ChapterLabel `json:"chapterLabel"`
	Results      []entities.Event      `json:"results"`
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	result, err := s.handlers.Questions.Handle(r.Context(), q)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, questionResponse{
		ChapterLabel: result.Label,
		Results:      result.Results,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	result, err := s.handlers.Search.Handle(r.Context(), q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleEntities(kind entities.EntityKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.handlers.Catalog.Entities(r.Context(), kind)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) handleGenerations(w http.ResponseWriter, r *http.Request) {
	list, err := s.handlers.Catalog.Generations(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	list, err := s.handlers.Catalog.Events(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleChapter(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid chapter number")
		return
	}

	chapter, err := s.handlers.Catalog.Chapter(r.Context(), number)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chapter)
}

func (s *Server) handleIntents(w http.ResponseWriter, _ *http.Request) {
	groups := s.handlers.Lexicon.Intents
	if groups == nil {
		groups = []entities.IntentGroup{}
	}
	writeJSON(w, http.StatusOK, groups)
}

// fail maps service errors to status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrChapterNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		s.logger.Warn("request timed out", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusGatewayTimeout, "request timed out")
	default:
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
