package tag

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CatalogSource resolves the tag catalog for reconciliation
type CatalogSource interface {
	All(ctx context.Context) ([]Tag, error)
}

// Reconciler maps per-category tag selections onto persisted
// association rows. Selections are fully replaced on every save via a
// batch upsert; there is no incremental diffing against prior state.
type Reconciler struct {
	catalog CatalogSource
	repo    Repository
}

// NewReconciler creates a reconciler
func NewReconciler(catalog CatalogSource, repo Repository) *Reconciler {
	return &Reconciler{catalog: catalog, repo: repo}
}

// Reconcile resolves each category's selected description to a tag ID
// and upserts one association row per resolved category.
//
// Sentinel and empty selections are skipped. Descriptions that do not
// resolve through the catalog are silently skipped as well: the upstream
// UI only offers valid descriptions, so a miss is stale data, not an error.
func (r *Reconciler) Reconcile(ctx context.Context, artworkID uuid.UUID, selections map[string]string) error {
	if len(selections) == 0 {
		return nil
	}

	tags, err := r.catalog.All(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	// category -> description -> tag id
	index := make(map[string]map[string]uuid.UUID, len(tags))
	for _, t := range tags {
		byDescription, ok := index[t.TypeCode]
		if !ok {
			byDescription = make(map[string]uuid.UUID)
			index[t.TypeCode] = byDescription
		}
		byDescription[t.Description] = t.ID
	}

	rows := make([]Association, 0, len(selections))
	for category, description := range selections {
		if description == "" || description == SentinelSelection {
			continue
		}
		tagID, ok := index[category][description]
		if !ok {
			continue
		}
		rows = append(rows, Association{
			ArtworkID: artworkID,
			TagID:     tagID,
			TypeCode:  category,
		})
	}

	if len(rows) == 0 {
		return nil
	}

	if err := r.repo.UpsertAssociations(ctx, rows); err != nil {
		return fmt.Errorf("failed to upsert tag associations: %w", err)
	}
	return nil
}
