package artwork

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines artwork data access
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Artwork, error)
	ListByArtist(ctx context.Context, artistID uuid.UUID) ([]*Artwork, error)
	Insert(ctx context.Context, artwork *Artwork) error
	Update(ctx context.Context, artwork *Artwork) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates artwork repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Artwork, error) {
	query := `SELECT * FROM artist_work WHERE id = $1`
	var artwork Artwork
	err := r.db.GetContext(ctx, &artwork, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &artwork, nil
}

func (r *repository) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]*Artwork, error) {
	query := `
		SELECT * FROM artist_work
		WHERE artist_id = $1 AND is_deleted = false
		ORDER BY created_at DESC
	`
	var artworks []*Artwork
	err := r.db.SelectContext(ctx, &artworks, query, artistID)
	return artworks, err
}

func (r *repository) Insert(ctx context.Context, artwork *Artwork) error {
	query := `
		INSERT INTO artist_work (
			id, artist_id, title, work_url, dimensions, multiple_dimensions,
			price, multiple_prices, image_url,
			dc1, dc2, dc3, dc4, dc5, dc6,
			is_deleted, created_at, updated_at
		) VALUES (
			:id, :artist_id, :title, :work_url, :dimensions, :multiple_dimensions,
			:price, :multiple_prices, :image_url,
			:dc1, :dc2, :dc3, :dc4, :dc5, :dc6,
			:is_deleted, :created_at, :updated_at
		)
	`
	_, err := r.db.NamedExecContext(ctx, query, artwork)
	return err
}

// Update rewrites all editable metadata fields in place. Engagement
// metric columns are owned by the insights ingestion and never touched
// here.
func (r *repository) Update(ctx context.Context, artwork *Artwork) error {
	query := `
		UPDATE artist_work SET
			title = :title,
			work_url = :work_url,
			dimensions = :dimensions,
			multiple_dimensions = :multiple_dimensions,
			price = :price,
			multiple_prices = :multiple_prices,
			image_url = :image_url,
			dc1 = :dc1, dc2 = :dc2, dc3 = :dc3,
			dc4 = :dc4, dc5 = :dc5, dc6 = :dc6,
			updated_at = :updated_at
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, artwork)
	return err
}

// SoftDelete flips the deletion flag. Tags, memberships and storage
// objects are deliberately left alone.
func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE artist_work SET is_deleted = true, updated_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
