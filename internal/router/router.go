package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/waveformlabs/track-recommender/internal/handler"
)

func Setup(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Routes
	r.Get("/users/{userID}/recommendations", h.GetRecommendations)
	r.Post("/users/{userID}/events", h.PostEvent)
	r.Get("/tracks/{trackID}/explanation", h.GetExplanation)
	r.Post("/catalog/reload", h.ReloadCatalog)
	r.Get("/health", h.HealthCheck)

	return r
}
