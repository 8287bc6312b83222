package group

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns group router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Post("/", h.Create)

	return r
}

// ArtworkRoutes returns the router mounted under /artworks/{id}/groups
func (h *Handler) ArtworkRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.ListForArtwork)
	r.Post("/toggle", h.Toggle)

	return r
}
