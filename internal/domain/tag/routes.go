package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns tag router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)

	return r
}
