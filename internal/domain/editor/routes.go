package editor

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns editor router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/", h.Open)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Patch)
	r.Put("/{id}/image", h.AttachImage)
	r.Post("/{id}/save", h.Save)
	r.Delete("/{id}", h.Close)

	return r
}
