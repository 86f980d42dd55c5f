package assets

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Procedural assets render at a fixed native size; layers scale them.
const (
	genWidth  = 640
	genHeight = 360
)

// isProcedural reports whether name is generated rather than loaded
// from disk.
func isProcedural(name string) bool {
	if name == "bars" {
		return true
	}
	for _, prefix := range []string{"gradient:", "noise:", "grid:"} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func generate(name string) (image.Image, error) {
	switch {
	case name == "bars":
		return colorBars(), nil
	case strings.HasPrefix(name, "gradient:"):
		return gradient(strings.TrimPrefix(name, "gradient:"))
	case strings.HasPrefix(name, "noise:"):
		return noiseField(strings.TrimPrefix(name, "noise:")), nil
	case strings.HasPrefix(name, "grid:"):
		return checkerGrid(strings.TrimPrefix(name, "grid:")), nil
	}
	return nil, fmt.Errorf("unknown procedural asset %q", name)
}

// colorBars draws seven vertical 75%-intensity bars.
func colorBars() image.Image {
	bars := []color.RGBA{
		{191, 191, 191, 255},
		{191, 191, 0, 255},
		{0, 191, 191, 255},
		{0, 191, 0, 255},
		{191, 0, 191, 255},
		{191, 0, 0, 255},
		{0, 0, 191, 255},
	}
	img := image.NewRGBA(image.Rect(0, 0, genWidth, genHeight))
	for x := 0; x < genWidth; x++ {
		c := bars[x*len(bars)/genWidth]
		for y := 0; y < genHeight; y++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// gradient draws a vertical blend between two colors, spec form
// "RRGGBB-RRGGBB".
func gradient(spec string) (image.Image, error) {
	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("gradient wants %q, got %q", "RRGGBB-RRGGBB", spec)
	}
	top, err := parseHexColor(parts[0])
	if err != nil {
		return nil, err
	}
	bottom, err := parseHexColor(parts[1])
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, genWidth, genHeight))
	for y := 0; y < genHeight; y++ {
		t := float64(y) / float64(genHeight-1)
		c := color.RGBA{
			R: lerp(top.R, bottom.R, t),
			G: lerp(top.G, bottom.G, t),
			B: lerp(top.B, bottom.B, t),
			A: 255,
		}
		for x := 0; x < genWidth; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img, nil
}

// noiseField draws deterministic grayscale noise, seeded by the
// argument: a number, or any string hashed down to one.
func noiseField(spec string) image.Image {
	seed, err := strconv.ParseUint(spec, 10, 64)
	if err != nil {
		seed = xxhash.Sum64String(spec)
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	img := image.NewRGBA(image.Rect(0, 0, genWidth, genHeight))
	for y := 0; y < genHeight; y++ {
		for x := 0; x < genWidth; x++ {
			v := uint8(rng.IntN(256))
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

// checkerGrid draws a two-tone checkerboard, spec is the cell size in
// pixels. Anything unparseable falls back to 32.
func checkerGrid(spec string) image.Image {
	cell, err := strconv.Atoi(spec)
	if err != nil || cell <= 0 {
		cell = 32
	}
	dark := color.RGBA{40, 40, 48, 255}
	light := color.RGBA{72, 72, 84, 255}

	img := image.NewRGBA(image.Rect(0, 0, genWidth, genHeight))
	for y := 0; y < genHeight; y++ {
		for x := 0; x < genWidth; x++ {
			c := dark
			if (x/cell+y/cell)%2 == 1 {
				c = light
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("hex color wants 6 digits, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad hex color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
