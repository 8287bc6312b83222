package artwork

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/artlet/artlet-api/internal/middleware"
	"github.com/artlet/artlet-api/internal/pkg/response"
)

// Handler handles artwork HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates artwork handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /artworks
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	artistID := middleware.GetArtistID(r.Context())

	items, err := h.service.ListByArtist(r.Context(), artistID)
	if err != nil {
		response.InternalError(w)
		return
	}

	resp := make([]*ArtworkResponse, len(items))
	for i, item := range items {
		resp[i] = ResponseFromDetailed(item)
	}

	response.OK(w, resp)
}

// GetByID handles GET /artworks/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid artwork ID")
		return
	}

	artistID := middleware.GetArtistID(r.Context())
	art, err := h.service.GetByID(r.Context(), id, artistID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, ResponseFromEntity(art))
}

// Insights handles GET /artworks/{id}/insights
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid artwork ID")
		return
	}

	artistID := middleware.GetArtistID(r.Context())
	art, err := h.service.GetByID(r.Context(), id, artistID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, InsightsFromEntity(art))
}

// Delete handles DELETE /artworks/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid artwork ID")
		return
	}

	artistID := middleware.GetArtistID(r.Context())
	if err := h.service.SoftDelete(r.Context(), id, artistID); err != nil {
		h.writeError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrArtworkNotFound):
		response.NotFound(w, "Artwork not found")
	case errors.Is(err, ErrNotArtworkOwner):
		response.Forbidden(w, "Not the owner of this artwork")
	default:
		response.InternalError(w)
	}
}
