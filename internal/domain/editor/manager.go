package editor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artlet/artlet-api/internal/domain/artwork"
	"github.com/artlet/artlet-api/internal/domain/tag"
)

// ArtworkLoader seeds a session from a stored artwork
type ArtworkLoader interface {
	GetByID(ctx context.Context, id, artistID uuid.UUID) (*artwork.Artwork, error)
}

// SelectionLoader resolves an artwork's current tags so the dropdowns
// open pre-filled
type SelectionLoader interface {
	ListForArtwork(ctx context.Context, artworkID uuid.UUID) ([]tag.Tag, error)
}

// Manager is the in-memory registry of open edit sessions
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	saver      Saver
	loader     ArtworkLoader
	selections SelectionLoader
	statusTTL  time.Duration
}

// NewManager creates the edit session registry
func NewManager(saver Saver, loader ArtworkLoader, selections SelectionLoader, statusTTL time.Duration) *Manager {
	return &Manager{
		sessions:   make(map[uuid.UUID]*Session),
		saver:      saver,
		loader:     loader,
		selections: selections,
		statusTTL:  statusTTL,
	}
}

// Open starts a session. With a nil artworkID it opens on a blank
// draft; otherwise the draft is seeded from the stored record and its
// tag selections.
func (m *Manager) Open(ctx context.Context, artistID uuid.UUID, artworkID *uuid.UUID) (*Session, error) {
	draft := artwork.Draft{ArtistID: artistID}

	if artworkID != nil {
		art, err := m.loader.GetByID(ctx, *artworkID, artistID)
		if err != nil {
			return nil, err
		}

		draft.ID = &art.ID
		draft.Title = art.Title
		draft.WorkURL = art.WorkURL
		draft.Dimensions = art.Dimensions
		draft.MultipleDimensions = art.MultipleDimensions
		draft.MultiplePrices = art.MultiplePrices
		if art.Price.Valid {
			price := art.Price.Float64
			draft.Price = &price
		}

		if m.selections != nil {
			tags, err := m.selections.ListForArtwork(ctx, art.ID)
			if err == nil && len(tags) > 0 {
				draft.TagSelections = make(map[string]string, len(tags))
				for _, t := range tags {
					draft.TagSelections[t.TypeCode] = t.Description
				}
			}
		}
	}

	session := newSession(artistID, draft, m.saver, m.statusTTL)

	m.mu.Lock()
	m.sessions[session.ID()] = session
	m.mu.Unlock()

	return session, nil
}

// Get returns an open session, enforcing ownership
func (m *Manager) Get(sessionID, artistID uuid.UUID) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.ArtistID() != artistID {
		return nil, ErrNotSessionOwner
	}
	return session, nil
}

// Close discards a session. Unsaved edits are lost; stored records are
// not touched.
func (m *Manager) Close(sessionID, artistID uuid.UUID) error {
	session, err := m.Get(sessionID, artistID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.sessions, session.ID())
	m.mu.Unlock()

	return nil
}
