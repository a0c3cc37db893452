// Package api exposes the assistant over HTTP: a JSON chat endpoint, the
// per-user history, the calculator registry, and a WebSocket variant of
// the chat exchange.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/1adityakadam/financial-calculators/internal/assistant"
	"github.com/1adityakadam/financial-calculators/internal/calc"
	"github.com/1adityakadam/financial-calculators/internal/classify"
	"github.com/1adityakadam/financial-calculators/internal/session"
)

// Chat is the subset of the assistant the server needs, split out so
// tests can run against a stub.
type Chat interface {
	HandleMessage(ctx context.Context, text string) (assistant.Turn, error)
	History(ctx context.Context, userID string) ([]session.Message, error)
	ClearHistory(ctx context.Context, userID string) error
}

type Server struct {
	router *chi.Mux
	chat   Chat
	addr   string
	logger *slog.Logger
}

// NewServer builds the HTTP router around a chat implementation.
func NewServer(addr string, chat Chat, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router: router,
		chat:   chat,
		addr:   addr,
		logger: logger,
	}

	router.Get("/health", s.health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/chat", s.postChat)
		r.Get("/chat/ws", s.chatWS)
		r.Get("/history/{userID}", s.getHistory)
		r.Delete("/history/{userID}", s.deleteHistory)
		r.Get("/calculators", s.listCalculators)
		r.Post("/calculators/{name}", s.runCalculator)
	})

	return s
}

// Start blocks serving HTTP on the configured address.
func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.router)
}

// Handler returns the underlying mux, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ChatRequest is the POST /chat body.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the POST /chat reply.
type ChatResponse struct {
	Reply    string            `json:"reply"`
	Category classify.Category `json:"category"`
}

func (s *Server) postChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, errors.New("message is required"))
		return
	}

	turn, err := s.chat.HandleMessage(r.Context(), req.Message)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, ChatResponse{Reply: turn.Reply, Category: turn.Category})
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	msgs, err := s.chat.History(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if msgs == nil {
		msgs = []session.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (s *Server) deleteHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if err := s.chat.ClearHistory(r.Context(), userID); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listCalculators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, calc.All())
}

func (s *Server) runCalculator(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req calc.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	result, err := calc.Run(name, req)
	if err != nil {
		status := http.StatusBadRequest
		if _, ok := calc.Lookup(name); !ok {
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
