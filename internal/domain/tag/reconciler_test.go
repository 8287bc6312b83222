package tag

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

// catalogStub is a mock for CatalogSource
type catalogStub struct {
	tags []Tag
	err  error
}

func (c *catalogStub) All(_ context.Context) ([]Tag, error) {
	return c.tags, c.err
}

// repoStub is a mock for Repository
type repoStub struct {
	upserted  []Association
	upsertErr error
}

func (r *repoStub) All(_ context.Context) ([]Tag, error) { return nil, nil }

func (r *repoStub) ListForArtwork(_ context.Context, _ uuid.UUID) ([]Tag, error) {
	return nil, nil
}

func (r *repoStub) UpsertAssociations(_ context.Context, rows []Association) error {
	r.upserted = append(r.upserted, rows...)
	return r.upsertErr
}

func testCatalog() *catalogStub {
	return &catalogStub{tags: []Tag{
		{ID: uuid.New(), TypeCode: "medium", Description: "Oil"},
		{ID: uuid.New(), TypeCode: "medium", Description: "Watercolour"},
		{ID: uuid.New(), TypeCode: "subject", Description: "Landscape"},
		{ID: uuid.New(), TypeCode: "theme", Description: "Nature"},
	}}
}

func TestReconcileResolvesSelections(t *testing.T) {
	catalog := testCatalog()
	repo := &repoStub{}
	rec := NewReconciler(catalog, repo)

	artworkID := uuid.New()
	err := rec.Reconcile(context.Background(), artworkID, map[string]string{
		"medium":  "Oil",
		"subject": "Landscape",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.upserted) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(repo.upserted))
	}
	categories := make(map[string]int)
	for _, row := range repo.upserted {
		if row.ArtworkID != artworkID {
			t.Errorf("wrong artwork ID on row: %s", row.ArtworkID)
		}
		categories[row.TypeCode]++
	}
	for cat, n := range categories {
		if n != 1 {
			t.Errorf("expected one row for category %s, got %d", cat, n)
		}
	}
}

func TestReconcileSkipsSentinel(t *testing.T) {
	repo := &repoStub{}
	rec := NewReconciler(testCatalog(), repo)

	err := rec.Reconcile(context.Background(), uuid.New(), map[string]string{
		"medium": SentinelSelection,
		"theme":  "",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.upserted) != 0 {
		t.Errorf("expected no rows for sentinel selections, got %d", len(repo.upserted))
	}
}

func TestReconcileSkipsUnresolvable(t *testing.T) {
	repo := &repoStub{}
	rec := NewReconciler(testCatalog(), repo)

	err := rec.Reconcile(context.Background(), uuid.New(), map[string]string{
		"medium": "Crayon", // not in catalog
		"theme":  "Nature",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.upserted) != 1 {
		t.Fatalf("expected 1 row, got %d", len(repo.upserted))
	}
	if repo.upserted[0].TypeCode != "theme" {
		t.Errorf("expected theme row, got %s", repo.upserted[0].TypeCode)
	}
}

func TestReconcileCatalogFailure(t *testing.T) {
	rec := NewReconciler(&catalogStub{err: errors.New("boom")}, &repoStub{})

	err := rec.Reconcile(context.Background(), uuid.New(), map[string]string{"medium": "Oil"})
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Errorf("expected ErrCatalogUnavailable, got %v", err)
	}
}
