package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func encodeTestImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode variant: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestProcessBoundsLargeImage(t *testing.T) {
	p := NewProcessor(Config{MaxDimension: 1536, ThumbWidth: 200})

	src := encodeTestImage(t, 3000, 1500)
	v, err := p.Process(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w, h := decodeDims(t, v.Primary)
	if w != 1536 || h != 768 {
		t.Errorf("expected primary 1536x768, got %dx%d", w, h)
	}
	if v.Width != 1536 || v.Height != 768 {
		t.Errorf("reported primary dims %dx%d", v.Width, v.Height)
	}
}

func TestProcessNeverUpscales(t *testing.T) {
	p := NewProcessor(Config{MaxDimension: 1536, ThumbWidth: 200})

	src := encodeTestImage(t, 800, 600)
	v, err := p.Process(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w, h := decodeDims(t, v.Primary)
	if w != 800 || h != 600 {
		t.Errorf("expected primary unchanged at 800x600, got %dx%d", w, h)
	}
}

func TestProcessThumbnailScalesFromOriginal(t *testing.T) {
	p := NewProcessor(Config{MaxDimension: 1536, ThumbWidth: 200})

	src := encodeTestImage(t, 800, 600)
	v, err := p.Process(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w, h := decodeDims(t, v.Thumbnail)
	if w != 200 || h != 150 {
		t.Errorf("expected thumbnail 200x150, got %dx%d", w, h)
	}
}

func TestProcessRejectsGarbage(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	_, err := p.Process(strings.NewReader("definitely not an image"))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestValidateType(t *testing.T) {
	if !ValidateType("sunset.JPG") {
		t.Error("expected .JPG to validate")
	}
	if ValidateType("notes.txt") {
		t.Error("expected .txt to be rejected")
	}
}
