package group

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/artlet/artlet-api/internal/middleware"
	"github.com/artlet/artlet-api/internal/pkg/response"
	"github.com/artlet/artlet-api/internal/pkg/validator"
)

// Handler handles group HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates group handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateGroupRequest for POST /groups
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// List handles GET /groups
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	artistID := middleware.GetArtistID(r.Context())

	groups, err := h.service.ListByArtist(r.Context(), artistID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, groups)
}

// Create handles POST /groups
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	artistID := middleware.GetArtistID(r.Context())
	grp, err := h.service.CreateGroup(r.Context(), req.Name, artistID)
	if err != nil {
		switch err {
		case ErrGroupNameRequired:
			response.BadRequest(w, "Group name is required")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, grp)
}

// ToggleRequest for POST /artworks/{id}/groups/toggle
type ToggleRequest struct {
	GroupName string `json:"group_name" validate:"required,min=1,max=100"`
}

// ToggleResponse reports the membership state after a toggle
type ToggleResponse struct {
	GroupName string `json:"group_name"`
	Selected  bool   `json:"selected"`
}

// Toggle handles POST /artworks/{id}/groups/toggle
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	artworkID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid artwork ID")
		return
	}

	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	artistID := middleware.GetArtistID(r.Context())
	selected, err := h.service.ToggleMembership(r.Context(), artworkID, req.GroupName, artistID)
	if err != nil {
		switch err {
		case ErrDefaultGroupImmutable:
			response.BadRequest(w, "The All group cannot be toggled")
		case ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ToggleResponse{GroupName: req.GroupName, Selected: selected})
}

// ListForArtwork handles GET /artworks/{id}/groups
func (h *Handler) ListForArtwork(w http.ResponseWriter, r *http.Request) {
	artworkID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid artwork ID")
		return
	}

	flags, err := h.service.ListForArtwork(r.Context(), artworkID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, flags)
}
