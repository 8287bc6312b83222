package artwork

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PaletteSlots is the number of persisted dominant color slots (dc1..dc6)
const PaletteSlots = 6

// Dimensions is the per-piece physical size triple, stored as JSONB.
// Empty strings are allowed; when the multiple-sizes flag is set the
// whole triple is persisted empty.
type Dimensions struct {
	Height string `json:"height" validate:"dimension"`
	Width  string `json:"width" validate:"dimension"`
	Depth  string `json:"depth" validate:"dimension"`
}

// Value implements driver.Valuer
func (d Dimensions) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner
func (d *Dimensions) Scan(src interface{}) error {
	if src == nil {
		*d = Dimensions{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("unsupported dimensions column type %T", src)
	}
}

// Artwork is one catalogued piece of art with metadata and an image
type Artwork struct {
	ID                 uuid.UUID       `db:"id"`
	ArtistID           uuid.UUID       `db:"artist_id"`
	Title              string          `db:"title"`
	WorkURL            string          `db:"work_url"`
	Dimensions         Dimensions      `db:"dimensions"`
	MultipleDimensions bool            `db:"multiple_dimensions"`
	Price              sql.NullFloat64 `db:"price"`
	MultiplePrices     bool            `db:"multiple_prices"`
	ImageURL           string          `db:"image_url"`

	// Palette slots, most prominent first; unused slots stay NULL
	DC1 sql.NullString `db:"dc1"`
	DC2 sql.NullString `db:"dc2"`
	DC3 sql.NullString `db:"dc3"`
	DC4 sql.NullString `db:"dc4"`
	DC5 sql.NullString `db:"dc5"`
	DC6 sql.NullString `db:"dc6"`

	// Engagement metrics, written by the insights ingestion out of band
	Reach        int `db:"reach"`
	Collected    int `db:"collected"`
	LinkClicks   int `db:"link_clicks"`
	ProfileViews int `db:"profile_views"`
	Follows      int `db:"follows"`

	IsDeleted bool      `db:"is_deleted"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Palette returns the stored swatches in order, skipping empty slots
func (a *Artwork) Palette() []string {
	slots := []sql.NullString{a.DC1, a.DC2, a.DC3, a.DC4, a.DC5, a.DC6}
	colors := make([]string, 0, PaletteSlots)
	for _, s := range slots {
		if s.Valid && s.String != "" {
			colors = append(colors, s.String)
		}
	}
	return colors
}

// SetPalette fills the palette slots in order; extra colors are dropped
// and remaining slots cleared
func (a *Artwork) SetPalette(colors []string) {
	slots := [PaletteSlots]sql.NullString{}
	for i := 0; i < len(colors) && i < PaletteSlots; i++ {
		slots[i] = sql.NullString{String: colors[i], Valid: true}
	}
	a.DC1, a.DC2, a.DC3, a.DC4, a.DC5, a.DC6 = slots[0], slots[1], slots[2], slots[3], slots[4], slots[5]
}
