package ui

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Cell dimensions follow the image aspect ratio within the viewport.
func TestRenderFrame_Dimensions(t *testing.T) {
	out := RenderFrame(ViewerParams{
		Img:     solidImage(4, 4, color.RGBA{R: 255, A: 255}),
		MaxCols: 10,
		MaxRows: 10,
	})

	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d rows, want 5 (4px tall at 2.5x, two pixels per cell)", len(lines))
	}
	for i, l := range lines {
		if n := strings.Count(l, "▀"); n != 10 {
			t.Errorf("row %d has %d cells, want 10", i, n)
		}
	}
}

// A wide image is constrained by columns, not rows.
func TestRenderFrame_WideImage(t *testing.T) {
	out := RenderFrame(ViewerParams{
		Img:     solidImage(8, 2, color.RGBA{G: 255, A: 255}),
		MaxCols: 8,
		MaxRows: 8,
	})

	lines := strings.Split(out, "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d rows, want 1", len(lines))
	}
	if n := strings.Count(lines[0], "▀"); n != 8 {
		t.Errorf("got %d cells, want 8", n)
	}
}

// Small preview frames scale up to fill the same screen area.
func TestRenderFrame_UpscalesPreview(t *testing.T) {
	out := RenderFrame(ViewerParams{
		Img:     solidImage(4, 2, color.RGBA{B: 255, A: 255}),
		MaxCols: 16,
		MaxRows: 16,
	})

	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d rows, want 4", len(lines))
	}
	if n := strings.Count(lines[0], "▀"); n != 16 {
		t.Errorf("got %d cells, want 16", n)
	}
}

// Degenerate input renders nothing rather than panicking.
func TestRenderFrame_DegenerateInput(t *testing.T) {
	if out := RenderFrame(ViewerParams{Img: nil, MaxCols: 10, MaxRows: 10}); out != "" {
		t.Errorf("nil image rendered %q", out)
	}
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if out := RenderFrame(ViewerParams{Img: empty, MaxCols: 10, MaxRows: 10}); out != "" {
		t.Errorf("empty image rendered %q", out)
	}
	img := solidImage(2, 2, color.RGBA{A: 255})
	if out := RenderFrame(ViewerParams{Img: img, MaxCols: 0, MaxRows: 10}); out != "" {
		t.Errorf("zero columns rendered %q", out)
	}
}

// Color sampling picks the pixel under each half-block, top and bottom.
func TestSampleHex(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})

	if got := sampleHex(img, img.Bounds(), 0, 0, 1, 2); got != "#ff0000" {
		t.Errorf("top pixel = %s, want #ff0000", got)
	}
	if got := sampleHex(img, img.Bounds(), 0, 1, 1, 2); got != "#0000ff" {
		t.Errorf("bottom pixel = %s, want #0000ff", got)
	}
}
