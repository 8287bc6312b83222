package artwork

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns artwork router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Get("/{id}/insights", h.Insights)
	r.Delete("/{id}", h.Delete)

	return r
}
