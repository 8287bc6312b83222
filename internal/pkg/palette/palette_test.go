package palette

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(c color.RGBA, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestExtractSolidColor(t *testing.T) {
	e := NewExtractor(6)

	img := solidImage(color.RGBA{R: 0x3C, G: 0x64, B: 0xB4, A: 255}, 160, 160)
	colors, err := e.Extract(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(colors) != 1 {
		t.Fatalf("expected single color for solid image, got %v", colors)
	}
	if colors[0] != "#3C64B4" {
		t.Errorf("expected #3C64B4, got %s", colors[0])
	}
}

func TestExtractFewerColorsThanSlots(t *testing.T) {
	e := NewExtractor(6)

	// Two flat halves: at most two distinct colors can come back, no padding.
	img := image.NewRGBA(image.Rect(0, 0, 160, 160))
	for y := 0; y < 160; y++ {
		for x := 0; x < 160; x++ {
			if x < 80 {
				img.Set(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}

	colors, err := e.Extract(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(colors) == 0 || len(colors) > 2 {
		t.Fatalf("expected 1-2 colors, got %v", colors)
	}
	for _, c := range colors {
		if c != "#FF0000" && c != "#0000FF" {
			t.Errorf("unexpected color %s", c)
		}
	}
}

func TestExtractEncoding(t *testing.T) {
	e := NewExtractor(3)

	colors, err := e.Extract(solidImage(color.RGBA{R: 10, G: 200, B: 30, A: 255}, 120, 120))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range colors {
		if len(c) != 7 || c[0] != '#' {
			t.Errorf("expected #RRGGBB encoding, got %q", c)
		}
	}
}
