// Package assetname derives storage keys for an artwork's image variants.
//
// Keys are minted once per logical artwork image and reused across edits,
// so metadata-only saves never create duplicate storage objects.
package assetname

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	prefix      = "works/"
	thumbSuffix = "_thumb"
	ext         = ".png"
)

// Pair holds the storage keys for both variants of one artwork image
type Pair struct {
	PrimaryKey string
	ThumbKey   string
}

// Resolve returns the variant keys for an artwork image.
//
// When the artwork already carries an image reference, nothing is minted
// and minted is false: the existing stored objects must be left untouched.
// Otherwise a fresh UUID-based pair is generated; UUIDs rather than
// timestamps keep names collision-resistant across concurrent artists.
func Resolve(existingImageURL string) (pair Pair, minted bool) {
	if existingImageURL != "" {
		return Pair{}, false
	}
	return Mint(), true
}

// Mint generates a new unique key pair
func Mint() Pair {
	id := uuid.New().String()
	return Pair{
		PrimaryKey: fmt.Sprintf("%s%s%s", prefix, id, ext),
		ThumbKey:   fmt.Sprintf("%s%s%s%s", prefix, id, thumbSuffix, ext),
	}
}
