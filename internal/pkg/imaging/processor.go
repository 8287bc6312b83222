package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Variants contains the two derived rasters of an artwork image
type Variants struct {
	// Primary is the bounded full-resolution variant, PNG encoded
	Primary []byte
	// Thumbnail is the fixed-width variant, PNG encoded
	Thumbnail []byte
	// Source is the decoded original, kept for palette extraction
	Source image.Image

	Width       int
	Height      int
	ThumbWidth  int
	ThumbHeight int
}

// ContentType of all generated variants
const ContentType = "image/png"

// Config for variant generation
type Config struct {
	MaxDimension int // bound on the larger side of the primary variant
	ThumbWidth   int // fixed thumbnail width, height scales proportionally
}

// DefaultConfig returns default processing config
func DefaultConfig() Config {
	return Config{
		MaxDimension: 1536,
		ThumbWidth:   200,
	}
}

// Processor generates image variants
type Processor struct {
	config Config
}

// NewProcessor creates a variant processor
func NewProcessor(config Config) *Processor {
	if config.MaxDimension <= 0 {
		config.MaxDimension = DefaultConfig().MaxDimension
	}
	if config.ThumbWidth <= 0 {
		config.ThumbWidth = DefaultConfig().ThumbWidth
	}
	return &Processor{config: config}
}

// Process decodes the source image and renders both variants.
// A decode failure aborts before anything is produced, so callers can
// fail the whole save without partial uploads.
func (p *Processor) Process(reader io.Reader) (*Variants, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	result := &Variants{
		Source: img,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}

	// Bound the primary variant, preserving aspect ratio. Never upscale.
	primary := img
	if result.Width > p.config.MaxDimension || result.Height > p.config.MaxDimension {
		primary = imaging.Fit(img, p.config.MaxDimension, p.config.MaxDimension, imaging.Lanczos)
		result.Width = primary.Bounds().Dx()
		result.Height = primary.Bounds().Dy()
	}

	encoded, err := encodePNG(primary)
	if err != nil {
		return nil, fmt.Errorf("failed to encode primary variant: %w", err)
	}
	result.Primary = encoded

	// Thumbnail scales from the original image, not the bounded one
	thumb := imaging.Resize(img, p.config.ThumbWidth, 0, imaging.Lanczos)
	result.ThumbWidth = thumb.Bounds().Dx()
	result.ThumbHeight = thumb.Bounds().Dy()

	encoded, err = encodePNG(thumb)
	if err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	result.Thumbnail = encoded

	return result, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ValidateType checks if a filename looks like a supported image type
func ValidateType(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	default:
		return false
	}
}

// MaxFileSize in bytes (10MB)
const MaxFileSize int64 = 10 * 1024 * 1024
