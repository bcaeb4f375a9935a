package chat

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/arvinlabs/arvin-backend/internal/model/resources"
	"github.com/arvinlabs/arvin-backend/internal/service/session"
	"github.com/arvinlabs/arvin-backend/internal/service/turn"
	"github.com/arvinlabs/arvin-backend/pkg/utils"
)

const (
	serviceName    = "ARVIN Chatbot API"
	serviceVersion = "1.0.0"
)

// Handler exposes the conversation pipeline over HTTP.
type Handler struct {
	orchestrator *turn.Orchestrator
	store        session.Store
}

// New creates the chat handler.
func New(orchestrator *turn.Orchestrator, store session.Store) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		store:        store,
	}
}

// RegisterRoutes mounts the chat API.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Post("/clear-session", h.handleClearSession)
	r.Post("/session-stats", h.handleSessionStats)
	r.Get("/resources", h.handleResources)
	r.Get("/health", h.handleHealth)
}

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type sentimentPayload struct {
	Score float64 `json:"score"`
	Mood  string  `json:"mood"`
}

type chatResponse struct {
	IsCrisis  bool                `json:"is_crisis"`
	Message   string              `json:"message"`
	Sentiment *sentimentPayload   `json:"sentiment,omitempty"`
	Hotlines  []resources.Hotline `json:"hotlines,omitempty"`
	Timestamp string              `json:"timestamp,omitempty"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.orchestrator.HandleTurn(r.Context(), payload.UserID, payload.Message)
	if err != nil {
		switch {
		case errors.Is(err, turn.ErrEmptyMessage):
			utils.RespondError(w, http.StatusBadRequest, "Message is required", "")
		case errors.Is(err, turn.ErrGenerationUnavailable):
			utils.RespondError(w, http.StatusServiceUnavailable, "Generation service unavailable", "ANTHROPIC_API_KEY is not configured")
		case errors.Is(err, turn.ErrGenerationFailed):
			log.Printf("[chat] generation failed: %v", err)
			utils.RespondError(w, http.StatusBadGateway, "Failed to process message", err.Error())
		default:
			log.Printf("[chat] turn failed: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to process message", err.Error())
		}
		return
	}

	response := chatResponse{
		IsCrisis: result.IsCrisis,
		Message:  result.Message,
	}
	if result.IsCrisis {
		response.Hotlines = result.Hotlines
	} else {
		response.Timestamp = result.Timestamp.Format(time.RFC3339)
		if result.Sentiment != nil {
			response.Sentiment = &sentimentPayload{
				Score: result.Sentiment.Score,
				Mood:  string(result.Sentiment.Mood),
			}
		}
	}

	utils.RespondJSON(w, http.StatusOK, response)
}

type sessionRequest struct {
	UserID string `json:"user_id"`
}

func (h *Handler) handleClearSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := decodeSessionRequest(w, r)
	if !ok {
		return
	}

	if err := h.store.Clear(r.Context(), userID); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to clear session", err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Session cleared successfully",
	})
}

func (h *Handler) handleSessionStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := decodeSessionRequest(w, r)
	if !ok {
		return
	}

	stats, err := h.store.Stats(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to compute session stats", err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleResources(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, resources.Seed())
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// decodeSessionRequest reads the user id from the body, defaulting when the
// body is empty or omits it. Operations on absent sessions are not errors.
func decodeSessionRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	var payload sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return "", false
	}

	if payload.UserID == "" {
		return turn.DefaultUserID, true
	}
	return payload.UserID, true
}
