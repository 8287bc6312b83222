package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artlet/artlet-api/internal/domain/artwork"
)

// State is the lifecycle state of an edit session
type State string

const (
	// StateClean means the draft matches the last saved record
	StateClean State = "clean"
	// StateDirty means there are unsaved edits
	StateDirty State = "dirty"
	// StateSaving means a save is in flight
	StateSaving State = "saving"
	// StateError means the last save failed; the draft is preserved
	StateError State = "error"
)

// DefaultStatusTTL is how long a save outcome message stays visible
// before it clears itself
const DefaultStatusTTL = 3 * time.Second

// Saver runs the full publishing pipeline for a draft
type Saver interface {
	Save(ctx context.Context, draft artwork.Draft) (*artwork.Artwork, error)
}

// Edit is a partial update of the draft. Nil fields are left unchanged;
// ClearPrice distinguishes "remove the price" from "no change".
type Edit struct {
	Title              *string
	WorkURL            *string
	Dimensions         *artwork.Dimensions
	MultipleDimensions *bool
	Price              *float64
	ClearPrice         bool
	MultiplePrices     *bool
	TagSelections      map[string]string
}

// Session holds one artist's in-progress edit of a single artwork.
// Edits mutate only the in-memory draft; nothing reaches storage or the
// database until Save.
type Session struct {
	mu sync.Mutex

	id       uuid.UUID
	artistID uuid.UUID

	draft   artwork.Draft
	state   State
	status  string
	version int

	statusTimer *time.Timer
	statusTTL   time.Duration

	saver Saver
}

// Snapshot is a point-in-time copy of the session for read paths
type Snapshot struct {
	ID        uuid.UUID
	ArtistID  uuid.UUID
	State     State
	Status    string
	Draft     artwork.Draft
	HasImage  bool
	ArtworkID *uuid.UUID
}

func newSession(artistID uuid.UUID, draft artwork.Draft, saver Saver, statusTTL time.Duration) *Session {
	if statusTTL <= 0 {
		statusTTL = DefaultStatusTTL
	}
	return &Session{
		id:        uuid.New(),
		artistID:  artistID,
		draft:     draft,
		state:     StateClean,
		statusTTL: statusTTL,
		saver:     saver,
	}
}

// ID returns the session identifier
func (s *Session) ID() uuid.UUID { return s.id }

// ArtistID returns the owning artist
func (s *Session) ArtistID() uuid.UUID { return s.artistID }

// Apply merges a partial edit into the draft. It performs no I/O and
// always leaves the session dirty.
func (s *Session) Apply(edit Edit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if edit.Title != nil {
		s.draft.Title = *edit.Title
	}
	if edit.WorkURL != nil {
		s.draft.WorkURL = *edit.WorkURL
	}
	if edit.Dimensions != nil {
		s.draft.Dimensions = *edit.Dimensions
	}
	if edit.MultipleDimensions != nil {
		s.draft.MultipleDimensions = *edit.MultipleDimensions
	}
	if edit.ClearPrice {
		s.draft.Price = nil
	} else if edit.Price != nil {
		price := *edit.Price
		s.draft.Price = &price
	}
	if edit.MultiplePrices != nil {
		s.draft.MultiplePrices = *edit.MultiplePrices
	}
	for category, selection := range edit.TagSelections {
		if s.draft.TagSelections == nil {
			s.draft.TagSelections = make(map[string]string)
		}
		s.draft.TagSelections[category] = selection
	}

	s.markDirtyLocked()
}

// AttachImage replaces the locally selected raster. Nothing is uploaded
// until Save.
func (s *Session) AttachImage(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft.ImageData = data
	s.markDirtyLocked()
}

func (s *Session) markDirtyLocked() {
	s.version++
	if s.state != StateSaving {
		s.state = StateDirty
		s.status = ""
	}
}

// Save pushes the draft through the publishing pipeline. Only one save
// may be in flight per session; a save is accepted from the dirty state
// or as a retry after a failed save. On failure the draft is kept
// intact so the artist can retry without re-entering anything.
func (s *Session) Save(ctx context.Context) (*artwork.Artwork, error) {
	s.mu.Lock()
	switch s.state {
	case StateSaving:
		s.mu.Unlock()
		return nil, ErrSaveInFlight
	case StateClean:
		s.mu.Unlock()
		return nil, ErrNothingToSave
	}
	s.state = StateSaving
	s.status = "Saving..."
	draft := s.draft
	if len(s.draft.TagSelections) > 0 {
		draft.TagSelections = make(map[string]string, len(s.draft.TagSelections))
		for category, selection := range s.draft.TagSelections {
			draft.TagSelections[category] = selection
		}
	}
	version := s.version
	s.mu.Unlock()

	saved, err := s.saver.Save(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		// A validation failure never reached storage or the database, so
		// the session is still just dirty; everything else is a failed
		// save the artist can retry
		var verr *artwork.ValidationError
		if errors.As(err, &verr) {
			s.state = StateDirty
		} else {
			s.state = StateError
		}
		s.setStatusLocked(statusMessage(err))
		return nil, err
	}

	s.draft.ID = &saved.ID
	// The raster is stored now; dropping it keeps later metadata saves
	// from re-deriving variants
	s.draft.ImageData = nil

	if s.version != version {
		// Edits arrived while the save was in flight
		s.state = StateDirty
	} else {
		s.state = StateClean
	}
	s.setStatusLocked("Saved")
	return saved, nil
}

// Status returns the current state and the transient status message
func (s *Session) Status() (State, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.status
}

// View returns a copy of the session for rendering
func (s *Session) View() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:        s.id,
		ArtistID:  s.artistID,
		State:     s.state,
		Status:    s.status,
		Draft:     s.draft,
		HasImage:  len(s.draft.ImageData) > 0 || s.draft.ID != nil,
		ArtworkID: s.draft.ID,
	}
}

// setStatusLocked publishes a transient message that clears itself
// after the configured TTL unless a newer message replaced it
func (s *Session) setStatusLocked(message string) {
	s.status = message
	if s.statusTimer != nil {
		s.statusTimer.Stop()
	}
	s.statusTimer = time.AfterFunc(s.statusTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.status == message {
			s.status = ""
		}
	})
}

func statusMessage(err error) string {
	var verr *artwork.ValidationError
	if errors.As(err, &verr) {
		return "Please fix the highlighted fields"
	}
	return "Save failed, please try again"
}
