package group

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines group data access
type Repository interface {
	GetByName(ctx context.Context, artistID uuid.UUID, name string) (*Group, error)
	ListByArtist(ctx context.Context, artistID uuid.UUID) ([]Group, error)
	Create(ctx context.Context, group *Group) error
	EnsureGroup(ctx context.Context, artistID uuid.UUID, name string) (*Group, error)
	AddMembership(ctx context.Context, artworkID, groupID uuid.UUID) error
	RemoveMembership(ctx context.Context, artworkID, groupID uuid.UUID) error
	MembershipView(ctx context.Context, artworkID uuid.UUID) ([]MembershipFlag, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates group repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByName(ctx context.Context, artistID uuid.UUID, name string) (*Group, error) {
	query := `SELECT * FROM artist_group WHERE artist_id = $1 AND description = $2`
	var group Group
	err := r.db.GetContext(ctx, &group, query, artistID, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *repository) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]Group, error) {
	query := `SELECT * FROM artist_group WHERE artist_id = $1 ORDER BY created_at`
	var groups []Group
	err := r.db.SelectContext(ctx, &groups, query, artistID)
	return groups, err
}

func (r *repository) Create(ctx context.Context, group *Group) error {
	query := `
		INSERT INTO artist_group (id, artist_id, description, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, group.ID, group.ArtistID, group.Description, group.CreatedAt)
	return err
}

// EnsureGroup creates the named group if missing and returns it either way
func (r *repository) EnsureGroup(ctx context.Context, artistID uuid.UUID, name string) (*Group, error) {
	insert := `
		INSERT INTO artist_group (id, artist_id, description, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (artist_id, description) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, insert, uuid.New(), artistID, name, time.Now()); err != nil {
		return nil, err
	}
	return r.GetByName(ctx, artistID, name)
}

// AddMembership inserts the join row; already-present rows are a no-op,
// which makes repeated default-membership calls idempotent.
func (r *repository) AddMembership(ctx context.Context, artworkID, groupID uuid.UUID) error {
	query := `
		INSERT INTO artist_group_work (artist_work_id, group_id)
		VALUES ($1, $2)
		ON CONFLICT (artist_work_id, group_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, artworkID, groupID)
	return err
}

func (r *repository) RemoveMembership(ctx context.Context, artworkID, groupID uuid.UUID) error {
	query := `DELETE FROM artist_group_work WHERE artist_work_id = $1 AND group_id = $2`
	_, err := r.db.ExecContext(ctx, query, artworkID, groupID)
	return err
}

func (r *repository) MembershipView(ctx context.Context, artworkID uuid.UUID) ([]MembershipFlag, error) {
	query := `
		SELECT artist_work_id, group_name, is_selected
		FROM vw_selected_work_groups
		WHERE artist_work_id = $1
		ORDER BY group_name
	`
	var flags []MembershipFlag
	err := r.db.SelectContext(ctx, &flags, query, artworkID)
	return flags, err
}
