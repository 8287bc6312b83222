package editor

import "errors"

var (
	ErrSessionNotFound  = errors.New("edit session not found")
	ErrNotSessionOwner  = errors.New("not owner of this edit session")
	ErrSaveInFlight     = errors.New("a save is already in progress")
	ErrNothingToSave    = errors.New("no unsaved changes")
	ErrImageTooLarge    = errors.New("image exceeds the maximum file size")
	ErrUnsupportedImage = errors.New("unsupported image type")
)
