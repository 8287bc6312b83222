package artwork

import (
	"time"

	"github.com/google/uuid"

	"github.com/artlet/artlet-api/internal/domain/group"
	"github.com/artlet/artlet-api/internal/domain/tag"
)

// ArtworkResponse represents an artwork in API responses
type ArtworkResponse struct {
	ID                 uuid.UUID              `json:"id"`
	ArtistID           uuid.UUID              `json:"artist_id"`
	Title              string                 `json:"title"`
	WorkURL            string                 `json:"work_url"`
	Dimensions         Dimensions             `json:"dimensions"`
	MultipleDimensions bool                   `json:"multiple_dimensions"`
	Price              *float64               `json:"price"`
	MultiplePrices     bool                   `json:"multiple_prices"`
	ImageURL           string                 `json:"image_url"`
	Palette            []string               `json:"palette"`
	Tags               []tag.Tag              `json:"tags,omitempty"`
	Groups             []group.MembershipFlag `json:"groups,omitempty"`
	CreatedAt          string                 `json:"created_at"`
	UpdatedAt          string                 `json:"updated_at"`
}

// InsightsResponse carries per-piece engagement metrics
type InsightsResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Reach        int       `json:"reach"`
	Collected    int       `json:"collected"`
	LinkClicks   int       `json:"link_clicks"`
	ProfileViews int       `json:"profile_views"`
	Follows      int       `json:"follows"`
}

// ResponseFromEntity converts entity to response DTO
func ResponseFromEntity(a *Artwork) *ArtworkResponse {
	resp := &ArtworkResponse{
		ID:                 a.ID,
		ArtistID:           a.ArtistID,
		Title:              a.Title,
		WorkURL:            a.WorkURL,
		Dimensions:         a.Dimensions,
		MultipleDimensions: a.MultipleDimensions,
		MultiplePrices:     a.MultiplePrices,
		ImageURL:           a.ImageURL,
		Palette:            a.Palette(),
		CreatedAt:          a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          a.UpdatedAt.Format(time.RFC3339),
	}
	if a.Price.Valid {
		price := a.Price.Float64
		resp.Price = &price
	}
	return resp
}

// ResponseFromDetailed converts a detailed listing item to response DTO
func ResponseFromDetailed(d *Detailed) *ArtworkResponse {
	resp := ResponseFromEntity(d.Artwork)
	resp.Tags = d.Tags
	resp.Groups = d.Groups
	return resp
}

// InsightsFromEntity converts entity metrics to response DTO
func InsightsFromEntity(a *Artwork) *InsightsResponse {
	return &InsightsResponse{
		ID:           a.ID,
		Title:        a.Title,
		Reach:        a.Reach,
		Collected:    a.Collected,
		LinkClicks:   a.LinkClicks,
		ProfileViews: a.ProfileViews,
		Follows:      a.Follows,
	}
}
