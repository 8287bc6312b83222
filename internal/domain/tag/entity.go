package tag

import (
	"github.com/google/uuid"
)

// SentinelSelection is the placeholder meaning "no tag chosen" for a
// category. Selections left at this value never produce an association.
const SentinelSelection = "Please select from dropdown"

// Tag is one entry of the read-only tag catalog
type Tag struct {
	ID          uuid.UUID `db:"id" json:"id"`
	TypeCode    string    `db:"tag_type_code" json:"tag_type_code"`
	Description string    `db:"description" json:"description"`
}

// Association links one artwork to one tag within a category.
// At most one association per category per artwork.
type Association struct {
	ArtworkID uuid.UUID `db:"artist_work_id"`
	TagID     uuid.UUID `db:"tag_id"`
	TypeCode  string    `db:"tag_type_code"`
}
