package tag

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines tag data access
type Repository interface {
	All(ctx context.Context) ([]Tag, error)
	ListForArtwork(ctx context.Context, artworkID uuid.UUID) ([]Tag, error)
	UpsertAssociations(ctx context.Context, rows []Association) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates tag repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) All(ctx context.Context) ([]Tag, error) {
	query := `SELECT id, tag_type_code, description FROM tag ORDER BY tag_type_code, description`
	var tags []Tag
	err := r.db.SelectContext(ctx, &tags, query)
	return tags, err
}

func (r *repository) ListForArtwork(ctx context.Context, artworkID uuid.UUID) ([]Tag, error) {
	query := `
		SELECT t.id, t.tag_type_code, t.description
		FROM artist_work_tag awt
		JOIN tag t ON t.id = awt.tag_id
		WHERE awt.artist_work_id = $1
		ORDER BY t.tag_type_code
	`
	var tags []Tag
	err := r.db.SelectContext(ctx, &tags, query, artworkID)
	return tags, err
}

// UpsertAssociations writes all rows in one batch. The unique key on
// (artist_work_id, tag_type_code) keeps the invariant of at most one
// association per category per artwork.
func (r *repository) UpsertAssociations(ctx context.Context, rows []Association) error {
	if len(rows) == 0 {
		return nil
	}

	values := make([]string, 0, len(rows))
	args := make([]interface{}, 0, len(rows)*3)
	for i, row := range rows {
		n := i * 3
		values = append(values, fmt.Sprintf("($%d, $%d, $%d)", n+1, n+2, n+3))
		args = append(args, row.ArtworkID, row.TagID, row.TypeCode)
	}

	query := fmt.Sprintf(`
		INSERT INTO artist_work_tag (artist_work_id, tag_id, tag_type_code)
		VALUES %s
		ON CONFLICT (artist_work_id, tag_type_code)
		DO UPDATE SET tag_id = EXCLUDED.tag_id
	`, strings.Join(values, ", "))

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}
