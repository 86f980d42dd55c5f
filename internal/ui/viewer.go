// Package ui holds the stateless render helpers for the editor views.
// Each function takes a params struct and returns a styled string.
package ui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ViewerParams configures rendering a frame image into terminal cells.
type ViewerParams struct {
	Img     image.Image
	MaxCols int // available terminal columns
	MaxRows int // available terminal rows
}

// RenderFrame draws an image with half-block characters, packing two
// pixels into every terminal cell: the upper half is the foreground
// color, the lower half the background. The image is sampled to fit
// the viewport while preserving its aspect ratio. Low-resolution
// preview frames therefore occupy the same screen area as full
// renders, only blurrier.
func RenderFrame(params ViewerParams) string {
	if params.Img == nil || params.MaxCols < 1 || params.MaxRows < 1 {
		return ""
	}
	b := params.Img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 1 || h < 1 {
		return ""
	}

	cols, rows := FrameCells(w, h, params.MaxCols, params.MaxRows)
	pixRows := rows * 2

	var sb strings.Builder
	for cy := 0; cy < rows; cy++ {
		if cy > 0 {
			sb.WriteByte('\n')
		}
		var runFg, runBg string
		runLen := 0
		for cx := 0; cx < cols; cx++ {
			fg := sampleHex(params.Img, b, cx, 2*cy, cols, pixRows)
			bg := sampleHex(params.Img, b, cx, 2*cy+1, cols, pixRows)
			if runLen > 0 && fg == runFg && bg == runBg {
				runLen++
				continue
			}
			flushRun(&sb, runFg, runBg, runLen)
			runFg, runBg, runLen = fg, bg, 1
		}
		flushRun(&sb, runFg, runBg, runLen)
	}
	return sb.String()
}

// FrameCells reports the terminal cell footprint a w x h pixel image
// occupies inside a maxCols x maxRows viewport: two pixels per cell
// vertically, aspect ratio preserved.
func FrameCells(w, h, maxCols, maxRows int) (cols, rows int) {
	if w < 1 || h < 1 || maxCols < 1 || maxRows < 1 {
		return 0, 0
	}
	scale := float64(maxCols) / float64(w)
	if s := float64(2*maxRows) / float64(h); s < scale {
		scale = s
	}
	cols = int(float64(w) * scale)
	if cols < 1 {
		cols = 1
	}
	rows = int(float64(h) * scale / 2)
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// flushRun emits a run of identical half-block cells.
func flushRun(sb *strings.Builder, fg, bg string, n int) {
	if n == 0 {
		return
	}
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(bg))
	sb.WriteString(style.Render(strings.Repeat("▀", n)))
}

// sampleHex nearest-neighbor samples the image at a cell-pixel
// position and returns the color as a hex string.
func sampleHex(img image.Image, b image.Rectangle, px, py, pw, ph int) string {
	sx := b.Min.X + px*b.Dx()/pw
	sy := b.Min.Y + py*b.Dy()/ph
	if sx >= b.Max.X {
		sx = b.Max.X - 1
	}
	if sy >= b.Max.Y {
		sy = b.Max.Y - 1
	}
	r, g, bl, _ := img.At(sx, sy).RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(bl>>8))
}
