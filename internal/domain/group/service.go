package group

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Service handles group membership business logic
type Service struct {
	repo Repository
	rdb  *redis.Client // optional listing cache
	ttl  time.Duration
}

// NewService creates group service. rdb may be nil to disable caching.
func NewService(repo Repository, rdb *redis.Client, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Service{repo: repo, rdb: rdb, ttl: cacheTTL}
}

func listCacheKey(artistID uuid.UUID) string {
	return "catalog:groups:" + artistID.String()
}

// EnsureDefaultMembership guarantees the artwork has a membership row in
// the "All" group, creating the group itself on first use. Idempotent.
func (s *Service) EnsureDefaultMembership(ctx context.Context, artworkID, artistID uuid.UUID) error {
	grp, err := s.repo.EnsureGroup(ctx, artistID, DefaultGroupName)
	if err != nil {
		return fmt.Errorf("failed to ensure default group: %w", err)
	}
	if grp == nil {
		return ErrGroupNotFound
	}

	if err := s.repo.AddMembership(ctx, artworkID, grp.ID); err != nil {
		return fmt.Errorf("failed to add default membership: %w", err)
	}
	return nil
}

// ToggleMembership flips the artwork's membership in the named group.
//
// Current state comes from the denormalized membership view rather than
// any client-cached flag, so a stale client cannot produce a double-add.
// The "All" group refuses the toggle; only soft-deleting the artwork
// removes it from there.
func (s *Service) ToggleMembership(ctx context.Context, artworkID uuid.UUID, groupName string, artistID uuid.UUID) (bool, error) {
	if strings.EqualFold(groupName, DefaultGroupName) {
		return false, ErrDefaultGroupImmutable
	}

	grp, err := s.repo.GetByName(ctx, artistID, groupName)
	if err != nil {
		return false, err
	}
	if grp == nil {
		return false, ErrGroupNotFound
	}

	flags, err := s.repo.MembershipView(ctx, artworkID)
	if err != nil {
		return false, err
	}

	selected := false
	for _, f := range flags {
		if f.GroupName == groupName {
			selected = f.IsSelected
			break
		}
	}

	if selected {
		if err := s.repo.RemoveMembership(ctx, artworkID, grp.ID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.repo.AddMembership(ctx, artworkID, grp.ID); err != nil {
		return false, err
	}
	return true, nil
}

// CreateGroup inserts a new named group for the artist. No artwork is
// added to it automatically.
func (s *Service) CreateGroup(ctx context.Context, name string, artistID uuid.UUID) (*Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrGroupNameRequired
	}

	grp := &Group{
		ID:          uuid.New(),
		ArtistID:    artistID,
		Description: name,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, grp); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx, artistID)
	return grp, nil
}

// ListByArtist returns the artist's groups, via cache when available
func (s *Service) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]Group, error) {
	key := listCacheKey(artistID)

	if s.rdb != nil {
		data, err := s.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var groups []Group
			if err := json.Unmarshal(data, &groups); err == nil {
				return groups, nil
			}
			s.rdb.Del(ctx, key)
		}
	}

	groups, err := s.repo.ListByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(groups); err == nil {
			if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
				log.Warn().Err(err).Msg("Failed to cache group listing")
			}
		}
	}

	return groups, nil
}

// ListForArtwork returns the membership view rows for one artwork
func (s *Service) ListForArtwork(ctx context.Context, artworkID uuid.UUID) ([]MembershipFlag, error) {
	return s.repo.MembershipView(ctx, artworkID)
}

func (s *Service) invalidateListCache(ctx context.Context, artistID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, listCacheKey(artistID)).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate group listing cache")
	}
}
