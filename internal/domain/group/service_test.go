package group

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// repoStub is a mock for Repository
type repoStub struct {
	groups      map[string]*Group        // name -> group
	memberships map[uuid.UUID]uuid.UUID  // group id -> artwork id (single-artwork stub)
	created     []*Group
}

func newRepoStub() *repoStub {
	return &repoStub{
		groups:      make(map[string]*Group),
		memberships: make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *repoStub) GetByName(_ context.Context, artistID uuid.UUID, name string) (*Group, error) {
	grp, ok := r.groups[name]
	if !ok || grp.ArtistID != artistID {
		return nil, nil
	}
	return grp, nil
}

func (r *repoStub) ListByArtist(_ context.Context, artistID uuid.UUID) ([]Group, error) {
	var out []Group
	for _, g := range r.groups {
		if g.ArtistID == artistID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *repoStub) Create(_ context.Context, grp *Group) error {
	r.groups[grp.Description] = grp
	r.created = append(r.created, grp)
	return nil
}

func (r *repoStub) EnsureGroup(_ context.Context, artistID uuid.UUID, name string) (*Group, error) {
	if grp, ok := r.groups[name]; ok {
		return grp, nil
	}
	grp := &Group{ID: uuid.New(), ArtistID: artistID, Description: name, CreatedAt: time.Now()}
	r.groups[name] = grp
	r.created = append(r.created, grp)
	return grp, nil
}

func (r *repoStub) AddMembership(_ context.Context, artworkID, groupID uuid.UUID) error {
	r.memberships[groupID] = artworkID
	return nil
}

func (r *repoStub) RemoveMembership(_ context.Context, artworkID, groupID uuid.UUID) error {
	delete(r.memberships, groupID)
	return nil
}

func (r *repoStub) MembershipView(_ context.Context, artworkID uuid.UUID) ([]MembershipFlag, error) {
	var flags []MembershipFlag
	for _, g := range r.groups {
		_, selected := r.memberships[g.ID]
		flags = append(flags, MembershipFlag{
			ArtworkID:  artworkID,
			GroupName:  g.Description,
			IsSelected: selected,
		})
	}
	return flags, nil
}

func TestEnsureDefaultMembershipIdempotent(t *testing.T) {
	repo := newRepoStub()
	svc := NewService(repo, nil, 0)

	artistID := uuid.New()
	artworkID := uuid.New()

	for i := 0; i < 3; i++ {
		if err := svc.EnsureDefaultMembership(context.Background(), artworkID, artistID); err != nil {
			t.Fatalf("unexpected error on call %d: %v", i, err)
		}
	}

	if len(repo.created) != 1 {
		t.Errorf("expected the All group created once, got %d creations", len(repo.created))
	}
	grp := repo.groups[DefaultGroupName]
	if grp == nil {
		t.Fatal("expected the All group to exist")
	}
	if repo.memberships[grp.ID] != artworkID {
		t.Error("expected membership row in All")
	}
}

func TestToggleMembershipTwiceRestoresState(t *testing.T) {
	repo := newRepoStub()
	svc := NewService(repo, nil, 0)

	artistID := uuid.New()
	artworkID := uuid.New()
	if _, err := svc.CreateGroup(context.Background(), "Abstract", artistID); err != nil {
		t.Fatalf("create group: %v", err)
	}

	selected, err := svc.ToggleMembership(context.Background(), artworkID, "Abstract", artistID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !selected {
		t.Error("expected first toggle to add membership")
	}

	selected, err = svc.ToggleMembership(context.Background(), artworkID, "Abstract", artistID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if selected {
		t.Error("expected second toggle to remove membership")
	}

	grp := repo.groups["Abstract"]
	if _, ok := repo.memberships[grp.ID]; ok {
		t.Error("expected no membership row after double toggle")
	}
}

func TestToggleDefaultGroupRefused(t *testing.T) {
	svc := NewService(newRepoStub(), nil, 0)

	_, err := svc.ToggleMembership(context.Background(), uuid.New(), DefaultGroupName, uuid.New())
	if !errors.Is(err, ErrDefaultGroupImmutable) {
		t.Errorf("expected ErrDefaultGroupImmutable, got %v", err)
	}
}

func TestToggleUnknownGroup(t *testing.T) {
	svc := NewService(newRepoStub(), nil, 0)

	_, err := svc.ToggleMembership(context.Background(), uuid.New(), "Nope", uuid.New())
	if !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestCreateGroupRequiresName(t *testing.T) {
	svc := NewService(newRepoStub(), nil, 0)

	_, err := svc.CreateGroup(context.Background(), "   ", uuid.New())
	if !errors.Is(err, ErrGroupNameRequired) {
		t.Errorf("expected ErrGroupNameRequired, got %v", err)
	}
}
