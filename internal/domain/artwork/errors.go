package artwork

import "errors"

var (
	ErrArtworkNotFound = errors.New("artwork not found")
	ErrNotArtworkOwner = errors.New("you can only manage your own artworks")
	ErrImageRequired   = errors.New("an image is required for a new artwork")
	ErrImageDecode     = errors.New("image could not be decoded")
	ErrUploadFailed    = errors.New("image upload failed")
	ErrPersistFailed   = errors.New("artwork metadata write failed")
)

// ValidationError carries per-field messages for inline display.
// Validation happens before any image or network work starts.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "artwork validation failed"
}
