package artwork

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/artlet/artlet-api/internal/domain/group"
	"github.com/artlet/artlet-api/internal/domain/tag"
	"github.com/artlet/artlet-api/internal/pkg/assetname"
	"github.com/artlet/artlet-api/internal/pkg/imaging"
	"github.com/artlet/artlet-api/internal/pkg/storage"
)

// TagReconciler replaces an artwork's tag associations from the
// artist's per-category selections
type TagReconciler interface {
	Reconcile(ctx context.Context, artworkID uuid.UUID, selections map[string]string) error
}

// MembershipManager keeps the default "All" group membership in place
type MembershipManager interface {
	EnsureDefaultMembership(ctx context.Context, artworkID, artistID uuid.UUID) error
}

// TagLister resolves the tags attached to an artwork, for listings
type TagLister interface {
	ListForArtwork(ctx context.Context, artworkID uuid.UUID) ([]tag.Tag, error)
}

// GroupLister resolves the membership view of an artwork, for listings
type GroupLister interface {
	ListForArtwork(ctx context.Context, artworkID uuid.UUID) ([]group.MembershipFlag, error)
}

// PaletteSource computes the representative colors of an image.
// Satisfied by palette.Extractor; stubbed in tests to exercise the
// best-effort fallback.
type PaletteSource interface {
	Extract(img image.Image) ([]string, error)
}

// Draft is the in-memory edit state handed to Save. ID is nil until the
// first successful save of a newly selected image.
type Draft struct {
	ID                 *uuid.UUID
	ArtistID           uuid.UUID
	Title              string
	WorkURL            string
	Dimensions         Dimensions
	MultipleDimensions bool
	Price              *float64
	MultiplePrices     bool
	TagSelections      map[string]string
	// ImageData holds the locally selected raster; nil when the image
	// is unchanged for this edit session
	ImageData []byte
}

// Service drives the artwork publishing pipeline: derive variants,
// extract a palette, upload, upsert metadata, then reconcile tag and
// group state. Step ordering is strict and there is no cross-step
// transaction; see Save.
type Service struct {
	repo      Repository
	store     storage.Storage
	processor *imaging.Processor
	extractor PaletteSource
	tags      TagReconciler
	groups    MembershipManager

	tagLister   TagLister
	groupLister GroupLister
}

// NewService creates artwork service
func NewService(
	repo Repository,
	store storage.Storage,
	processor *imaging.Processor,
	extractor PaletteSource,
	tags TagReconciler,
	groups MembershipManager,
	tagLister TagLister,
	groupLister GroupLister,
) *Service {
	return &Service{
		repo:        repo,
		store:       store,
		processor:   processor,
		extractor:   extractor,
		tags:        tags,
		groups:      groups,
		tagLister:   tagLister,
		groupLister: groupLister,
	}
}

// Save runs one complete save of a draft.
//
// Order is fixed: validate, derive+upload variants (only when the image
// asset is new), upsert metadata, reconcile tags, ensure default group
// membership. Derivation or upload failures abort before any metadata
// write; tag/group failures are logged and do not revert the committed
// metadata, since the primary record already succeeded.
func (s *Service) Save(ctx context.Context, draft Draft) (*Artwork, error) {
	// Validation blocks the save before any I/O
	fields := make(map[string]string)
	if strings.TrimSpace(draft.Title) == "" {
		fields["title"] = "Title is required"
	}
	if strings.TrimSpace(draft.WorkURL) == "" {
		fields["work_url"] = "Store URL is required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var existing *Artwork
	if draft.ID != nil {
		var err error
		existing, err = s.repo.GetByID(ctx, *draft.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load artwork: %w", err)
		}
		if existing == nil {
			return nil, ErrArtworkNotFound
		}
		if existing.ArtistID != draft.ArtistID {
			return nil, ErrNotArtworkOwner
		}
	}

	imageURL := ""
	var colors []string
	if existing != nil {
		imageURL = existing.ImageURL
		colors = existing.Palette()
	}

	// Variants are generated and uploaded only when no stored image
	// reference exists for this edit session. Metadata-only edits leave
	// the stored objects untouched.
	if names, minted := assetname.Resolve(imageURL); minted {
		if len(draft.ImageData) == 0 {
			return nil, ErrImageRequired
		}

		variants, err := s.processor.Process(bytes.NewReader(draft.ImageData))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
		}

		// Palette extraction is best effort: on failure keep whatever
		// palette was stored before (empty for a new artwork)
		if extracted, err := s.extractor.Extract(variants.Source); err != nil {
			log.Warn().Err(err).Msg("Palette extraction failed, keeping prior palette")
		} else {
			colors = extracted
		}

		if err := s.store.Put(ctx, names.PrimaryKey, bytes.NewReader(variants.Primary), imaging.ContentType); err != nil {
			return nil, fmt.Errorf("%w: primary variant: %v", ErrUploadFailed, err)
		}
		if err := s.store.Put(ctx, names.ThumbKey, bytes.NewReader(variants.Thumbnail), imaging.ContentType); err != nil {
			return nil, fmt.Errorf("%w: thumbnail variant: %v", ErrUploadFailed, err)
		}

		imageURL = s.store.GetURL(names.PrimaryKey)
	}

	saved, err := s.persist(ctx, draft, existing, imageURL, colors)
	if err != nil {
		// Already-uploaded variants are not rolled back here; the
		// orphan-asset risk on a metadata write failure is accepted
		return nil, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	// Association reconciliation never reverts the committed metadata
	if err := s.tags.Reconcile(ctx, saved.ID, draft.TagSelections); err != nil {
		log.Error().Err(err).Str("artwork_id", saved.ID.String()).Msg("Tag reconciliation failed")
	}
	if err := s.groups.EnsureDefaultMembership(ctx, saved.ID, draft.ArtistID); err != nil {
		log.Error().Err(err).Str("artwork_id", saved.ID.String()).Msg("Default group membership failed")
	}

	return saved, nil
}

// persist is the single atomic unit of metadata persistence: one insert
// or one in-place update of the artwork row.
func (s *Service) persist(ctx context.Context, draft Draft, existing *Artwork, imageURL string, colors []string) (*Artwork, error) {
	now := time.Now()

	art := &Artwork{}
	if existing != nil {
		*art = *existing
	} else {
		art.ID = uuid.New()
		art.ArtistID = draft.ArtistID
		art.CreatedAt = now
	}

	art.Title = draft.Title
	art.WorkURL = draft.WorkURL
	art.ImageURL = imageURL
	art.UpdatedAt = now
	art.SetPalette(colors)

	// Flag coupling: the per-piece dimension fields are cleared when the
	// work comes in multiple sizes, and the single price is inapplicable
	// when it comes at multiple prices
	art.MultipleDimensions = draft.MultipleDimensions
	if draft.MultipleDimensions {
		art.Dimensions = Dimensions{}
	} else {
		art.Dimensions = draft.Dimensions
	}

	art.MultiplePrices = draft.MultiplePrices
	if draft.MultiplePrices || draft.Price == nil {
		art.Price = sql.NullFloat64{}
	} else {
		art.Price = sql.NullFloat64{Float64: *draft.Price, Valid: true}
	}

	if existing != nil {
		if err := s.repo.Update(ctx, art); err != nil {
			return nil, err
		}
		return art, nil
	}

	if err := s.repo.Insert(ctx, art); err != nil {
		return nil, err
	}
	return art, nil
}

// GetByID returns one artwork, enforcing ownership
func (s *Service) GetByID(ctx context.Context, id, artistID uuid.UUID) (*Artwork, error) {
	art, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if art == nil || art.IsDeleted {
		return nil, ErrArtworkNotFound
	}
	if art.ArtistID != artistID {
		return nil, ErrNotArtworkOwner
	}
	return art, nil
}

// ListByArtist returns the artist's non-deleted artworks with their
// resolved tags and group membership view
func (s *Service) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]*Detailed, error) {
	artworks, err := s.repo.ListByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	items := make([]*Detailed, len(artworks))
	for i, art := range artworks {
		item := &Detailed{Artwork: art}

		if s.tagLister != nil {
			tags, err := s.tagLister.ListForArtwork(ctx, art.ID)
			if err != nil {
				log.Warn().Err(err).Str("artwork_id", art.ID.String()).Msg("Failed to resolve tags")
			} else {
				item.Tags = tags
			}
		}
		if s.groupLister != nil {
			flags, err := s.groupLister.ListForArtwork(ctx, art.ID)
			if err != nil {
				log.Warn().Err(err).Str("artwork_id", art.ID.String()).Msg("Failed to resolve groups")
			} else {
				item.Groups = flags
			}
		}

		items[i] = item
	}
	return items, nil
}

// SoftDelete removes the artwork from all future listings. Associated
// tags, memberships and stored variants stay in place.
func (s *Service) SoftDelete(ctx context.Context, id, artistID uuid.UUID) error {
	art, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if art == nil {
		return ErrArtworkNotFound
	}
	if art.ArtistID != artistID {
		return ErrNotArtworkOwner
	}
	return s.repo.SoftDelete(ctx, id)
}

// Detailed is an artwork with its resolved associations
type Detailed struct {
	Artwork *Artwork
	Tags    []tag.Tag
	Groups  []group.MembershipFlag
}
