package group

import (
	"time"

	"github.com/google/uuid"
)

// DefaultGroupName is the implicit collection every non-deleted artwork
// belongs to. It is created lazily per artist and its membership is
// never toggled off.
const DefaultGroupName = "All"

// Group is a named collection of artworks owned by one artist
type Group struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ArtistID    uuid.UUID `db:"artist_id" json:"artist_id"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// MembershipFlag is one row of the denormalized membership view
// (vw_selected_work_groups): every group of the artist, flagged with
// whether the artwork currently belongs to it.
type MembershipFlag struct {
	ArtworkID  uuid.UUID `db:"artist_work_id" json:"artist_work_id"`
	GroupName  string    `db:"group_name" json:"group_name"`
	IsSelected bool      `db:"is_selected" json:"is_selected"`
}
