package editor

import (
	"github.com/google/uuid"

	"github.com/artlet/artlet-api/internal/domain/artwork"
)

// OpenSessionRequest for POST /editor/sessions
type OpenSessionRequest struct {
	ArtworkID *uuid.UUID `json:"artwork_id"`
}

// EditRequest for PATCH /editor/sessions/{id}. Omitted fields leave the
// draft unchanged.
type EditRequest struct {
	Title              *string             `json:"title" validate:"omitempty,max=200"`
	WorkURL            *string             `json:"work_url" validate:"omitempty,url,max=500"`
	Dimensions         *artwork.Dimensions `json:"dimensions"`
	MultipleDimensions *bool               `json:"multiple_dimensions"`
	Price              *float64            `json:"price" validate:"omitempty,gte=0"`
	ClearPrice         bool                `json:"clear_price"`
	MultiplePrices     *bool               `json:"multiple_prices"`
	TagSelections      map[string]string   `json:"tag_selections" validate:"omitempty,dive,keys,tagcategory,endkeys,max=100"`
}

// SessionResponse renders a session snapshot
type SessionResponse struct {
	ID            uuid.UUID          `json:"id"`
	ArtworkID     *uuid.UUID         `json:"artwork_id"`
	State         State              `json:"state"`
	Status        string             `json:"status"`
	Title         string             `json:"title"`
	WorkURL       string             `json:"work_url"`
	Dimensions    artwork.Dimensions `json:"dimensions"`
	MultipleSizes bool               `json:"multiple_dimensions"`
	Price         *float64           `json:"price"`
	MultiplePrice bool               `json:"multiple_prices"`
	TagSelections map[string]string  `json:"tag_selections"`
	HasImage      bool               `json:"has_image"`
}

// SessionResponseFromSnapshot converts a snapshot to the response DTO
func SessionResponseFromSnapshot(s Snapshot) *SessionResponse {
	return &SessionResponse{
		ID:            s.ID,
		ArtworkID:     s.ArtworkID,
		State:         s.State,
		Status:        s.Status,
		Title:         s.Draft.Title,
		WorkURL:       s.Draft.WorkURL,
		Dimensions:    s.Draft.Dimensions,
		MultipleSizes: s.Draft.MultipleDimensions,
		Price:         s.Draft.Price,
		MultiplePrice: s.Draft.MultiplePrices,
		TagSelections: s.Draft.TagSelections,
		HasImage:      s.HasImage,
	}
}
