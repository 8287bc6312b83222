package tag

import (
	"net/http"

	"github.com/artlet/artlet-api/internal/pkg/response"
)

// Handler handles tag catalog HTTP requests
type Handler struct {
	catalog *Catalog
}

// NewHandler creates tag handler
func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// List handles GET /tags
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.catalog.All(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, tags)
}
