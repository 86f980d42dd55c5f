package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestLibrary_GetProcedural(t *testing.T) {
	lib, err := NewLibrary("", 0, nil)
	if err != nil {
		t.Fatalf("NewLibrary() failed: %v", err)
	}

	img, err := lib.Get("bars")
	if err != nil {
		t.Fatalf("Get(bars) failed: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != genWidth || b.Dy() != genHeight {
		t.Errorf("expected %dx%d, got %dx%d", genWidth, genHeight, b.Dx(), b.Dy())
	}
}

func TestLibrary_GetCachesDecodedImage(t *testing.T) {
	lib, err := NewLibrary("", 0, nil)
	if err != nil {
		t.Fatalf("NewLibrary() failed: %v", err)
	}

	first, err := lib.Get("grid:16")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	second, err := lib.Get("grid:16")
	if err != nil {
		t.Fatalf("second Get failed: %v", err)
	}
	if first != second {
		t.Error("expected the cached image instance on the second Get")
	}
}

func TestLibrary_GetFileAsset(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "logo.png"), color.RGBA{255, 0, 0, 255})

	lib, err := NewLibrary(dir, 8, nil)
	if err != nil {
		t.Fatalf("NewLibrary() failed: %v", err)
	}

	img, err := lib.Get("logo.png")
	if err != nil {
		t.Fatalf("Get(logo.png) failed: %v", err)
	}
	if img.Bounds().Dx() != 8 {
		t.Errorf("expected 8px wide image, got %d", img.Bounds().Dx())
	}

	if _, ok := lib.Fingerprint("logo.png"); !ok {
		t.Error("expected a fingerprint after loading")
	}
}

func TestLibrary_GetMissingFile(t *testing.T) {
	lib, err := NewLibrary(t.TempDir(), 8, nil)
	if err != nil {
		t.Fatalf("NewLibrary() failed: %v", err)
	}
	if _, err := lib.Get("missing.png"); err == nil {
		t.Error("expected an error for a missing asset")
	}
}

func TestLibrary_GetWithoutDirectory(t *testing.T) {
	lib, err := NewLibrary("", 0, nil)
	if err != nil {
		t.Fatalf("NewLibrary() failed: %v", err)
	}
	if _, err := lib.Get("file.png"); err == nil {
		t.Error("expected an error when no asset directory is configured")
	}
}

func TestLibrary_RejectsEscapingNames(t *testing.T) {
	lib, err := NewLibrary(t.TempDir(), 8, nil)
	if err != nil {
		t.Fatalf("NewLibrary() failed: %v", err)
	}

	for _, name := range []string{"../outside.png", "/etc/asset.png", "a/../../b.png"} {
		if _, err := lib.Get(name); err == nil {
			t.Errorf("expected %q to be rejected", name)
		}
	}
}

func TestLibrary_ReloadDetectsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bg.png")
	writePNG(t, path, color.RGBA{255, 0, 0, 255})

	lib, err := NewLibrary(dir, 8, nil)
	if err != nil {
		t.Fatalf("NewLibrary() failed: %v", err)
	}
	if _, err := lib.Get("bg.png"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// Same content: no change
	changed, err := lib.Reload("bg.png")
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if changed {
		t.Error("expected unchanged content to report false")
	}

	// New content: change
	writePNG(t, path, color.RGBA{0, 0, 255, 255})
	changed, err = lib.Reload("bg.png")
	if err != nil {
		t.Fatalf("Reload after rewrite failed: %v", err)
	}
	if !changed {
		t.Error("expected rewritten content to report true")
	}
}

func TestLibrary_ReloadVanishedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.png")
	writePNG(t, path, color.RGBA{0, 255, 0, 255})

	lib, err := NewLibrary(dir, 8, nil)
	if err != nil {
		t.Fatalf("NewLibrary() failed: %v", err)
	}
	if _, err := lib.Get("gone.png"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	changed, err := lib.Reload("gone.png")
	if err == nil {
		t.Error("expected an error for the vanished file")
	}
	if !changed {
		t.Error("expected a vanished served asset to count as changed")
	}

	// The stale image must not be served again
	if _, err := lib.Get("gone.png"); err == nil {
		t.Error("expected Get to fail after the file vanished")
	}
}

func TestLibrary_ReloadProceduralNeverChanges(t *testing.T) {
	lib, err := NewLibrary("", 0, nil)
	if err != nil {
		t.Fatalf("NewLibrary() failed: %v", err)
	}
	if _, err := lib.Get("noise:7"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	changed, err := lib.Reload("noise:7")
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if changed {
		t.Error("expected procedural assets to never change")
	}
}

func TestLibrary_InvalidateForcesReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swap.png")
	writePNG(t, path, color.RGBA{10, 10, 10, 255})

	lib, err := NewLibrary(dir, 8, nil)
	if err != nil {
		t.Fatalf("NewLibrary() failed: %v", err)
	}

	first, err := lib.Get("swap.png")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	lib.Invalidate("swap.png")
	second, err := lib.Get("swap.png")
	if err != nil {
		t.Fatalf("Get after Invalidate failed: %v", err)
	}
	if first == second {
		t.Error("expected a fresh decode after Invalidate")
	}
}
