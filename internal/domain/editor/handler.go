package editor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/artlet/artlet-api/internal/domain/artwork"
	"github.com/artlet/artlet-api/internal/middleware"
	"github.com/artlet/artlet-api/internal/pkg/imaging"
	"github.com/artlet/artlet-api/internal/pkg/response"
	"github.com/artlet/artlet-api/internal/pkg/validator"
)

// Handler handles edit session HTTP requests
type Handler struct {
	manager *Manager
}

// NewHandler creates editor handler
func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// Open handles POST /editor/sessions
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	var req OpenSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid JSON body")
			return
		}
	}

	artistID := middleware.GetArtistID(r.Context())
	session, err := h.manager.Open(r.Context(), artistID, req.ArtworkID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, SessionResponseFromSnapshot(session.View()))
}

// Get handles GET /editor/sessions/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	response.OK(w, SessionResponseFromSnapshot(session.View()))
}

// Patch handles PATCH /editor/sessions/{id}
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	session.Apply(Edit{
		Title:              req.Title,
		WorkURL:            req.WorkURL,
		Dimensions:         req.Dimensions,
		MultipleDimensions: req.MultipleDimensions,
		Price:              req.Price,
		ClearPrice:         req.ClearPrice,
		MultiplePrices:     req.MultiplePrices,
		TagSelections:      req.TagSelections,
	})

	response.OK(w, SessionResponseFromSnapshot(session.View()))
}

// AttachImage handles PUT /editor/sessions/{id}/image
func (h *Handler) AttachImage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(imaging.MaxFileSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "Image file is required")
		return
	}
	defer file.Close()

	if header.Size > imaging.MaxFileSize {
		response.BadRequest(w, "Image exceeds the 10MB limit")
		return
	}
	if !imaging.ValidateType(header.Filename) {
		response.BadRequest(w, "Unsupported image type")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, imaging.MaxFileSize))
	if err != nil {
		response.InternalError(w)
		return
	}

	session.AttachImage(data)
	response.OK(w, SessionResponseFromSnapshot(session.View()))
}

// Save handles POST /editor/sessions/{id}/save
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	saved, err := session.Save(r.Context())
	if err != nil {
		var verr *artwork.ValidationError
		switch {
		case errors.As(err, &verr):
			response.ValidationError(w, verr.Fields)
		case errors.Is(err, ErrSaveInFlight):
			response.Conflict(w, "A save is already in progress")
		case errors.Is(err, ErrNothingToSave):
			response.Conflict(w, "No unsaved changes")
		case errors.Is(err, artwork.ErrImageRequired):
			response.BadRequest(w, "An image is required before the first save")
		case errors.Is(err, artwork.ErrImageDecode):
			response.BadRequest(w, "The selected image could not be read")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{
		"session": SessionResponseFromSnapshot(session.View()),
		"artwork": artwork.ResponseFromEntity(saved),
	})
}

// Close handles DELETE /editor/sessions/{id}
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid session ID")
		return
	}

	artistID := middleware.GetArtistID(r.Context())
	if err := h.manager.Close(sessionID, artistID); err != nil {
		h.writeError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid session ID")
		return nil, false
	}

	artistID := middleware.GetArtistID(r.Context())
	session, err := h.manager.Get(sessionID, artistID)
	if err != nil {
		h.writeError(w, err)
		return nil, false
	}
	return session, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.NotFound(w, "Edit session not found")
	case errors.Is(err, ErrNotSessionOwner):
		response.Forbidden(w, "Not the owner of this edit session")
	case errors.Is(err, artwork.ErrArtworkNotFound):
		response.NotFound(w, "Artwork not found")
	case errors.Is(err, artwork.ErrNotArtworkOwner):
		response.Forbidden(w, "Not the owner of this artwork")
	default:
		response.InternalError(w)
	}
}
