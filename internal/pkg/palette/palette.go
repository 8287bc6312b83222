// Package palette computes a small ordered set of representative colors
// from an artwork image. Extraction is best effort: callers are expected
// to fall back to a previously stored palette when it fails.
package palette

import (
	"errors"
	"fmt"
	"image"

	"github.com/EdlinOrg/prominentcolor"
)

// ErrNoColors is returned when clustering yields nothing usable
var ErrNoColors = errors.New("no representative colors found")

// DefaultSize is the number of palette slots persisted per artwork
const DefaultSize = 6

// Extractor runs k-means clustering over a downsampled copy of the image
type Extractor struct {
	size int
}

// NewExtractor creates an extractor producing up to size colors
func NewExtractor(size int) *Extractor {
	if size <= 0 {
		size = DefaultSize
	}
	return &Extractor{size: size}
}

// Size returns the configured number of palette slots
func (e *Extractor) Size() int {
	return e.size
}

// Extract returns an ordered list of hex-encoded colors ("#RRGGBB"),
// most prominent first. Images with fewer distinct colors than the
// configured size yield fewer entries; no padding.
//
// Hex is the one canonical encoding for this deployment: the persisted
// palette slots are untyped strings, so the format must never drift.
func (e *Extractor) Extract(img image.Image) ([]string, error) {
	var lastErr error

	// Clustering fails when k exceeds the number of distinct colors,
	// so fall back to smaller k until something converges.
	for k := e.size; k >= 1; k-- {
		items, err := prominentcolor.KmeansWithAll(k, img,
			prominentcolor.ArgumentNoCropping,
			prominentcolor.DefaultSize,
			[]prominentcolor.ColorBackgroundMask{})
		if err != nil {
			lastErr = err
			continue
		}

		colors := dedupe(items)
		if len(colors) > 0 {
			return colors, nil
		}
	}

	if lastErr == nil {
		lastErr = ErrNoColors
	}
	return nil, lastErr
}

func dedupe(items []prominentcolor.ColorItem) []string {
	seen := make(map[string]struct{}, len(items))
	colors := make([]string, 0, len(items))
	for _, item := range items {
		hex := fmt.Sprintf("#%02X%02X%02X", item.Color.R, item.Color.G, item.Color.B)
		if _, ok := seen[hex]; ok {
			continue
		}
		seen[hex] = struct{}{}
		colors = append(colors, hex)
	}
	return colors
}
