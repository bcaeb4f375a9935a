package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/arvinlabs/arvin-backend/internal/handler/chat"
	middlewarePkg "github.com/arvinlabs/arvin-backend/internal/middleware"
	"github.com/arvinlabs/arvin-backend/internal/service/session"
	"github.com/arvinlabs/arvin-backend/internal/service/turn"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(orchestrator *turn.Orchestrator, store session.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	h := chatHandler.New(orchestrator, store)

	r.Route("/api/arvin", func(api chi.Router) {
		h.RegisterRoutes(api)
	})

	return r
}
