// Package compositor turns one timeline frame into pixels: background
// fill, then every visible layer of every shot covering the frame,
// scaled and blended bottom-up. It knows nothing about caching,
// eviction, or debouncing; the cache engine drives it through a
// render.RenderFunc and cancels it through the context.
package compositor

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	xdraw "golang.org/x/image/draw"

	"github.com/wilbur182/cutroom/internal/assets"
	"github.com/wilbur182/cutroom/internal/render"
	"github.com/wilbur182/cutroom/internal/timeline"
)

// background is the fill behind the bottom track.
var background = color.RGBA{16, 16, 20, 255}

// Frame is one rendered frame: the pixels plus the tier they were
// rendered at. The cache engine stores it as an opaque payload.
type Frame struct {
	Img     *image.RGBA
	Frame   int
	Quality render.Quality
}

// Renderer draws timeline frames. The sequence is treated as immutable
// while renders are in flight.
type Renderer struct {
	seq   *timeline.Sequence
	lib   *assets.Library
	scale float64 // resolution factor for low-quality renders
	log   *slog.Logger
}

// NewRenderer creates a renderer for seq. lowQualityScale is the
// resolution factor applied to low-tier renders; out-of-range values
// fall back to 0.25.
func NewRenderer(seq *timeline.Sequence, lib *assets.Library, lowQualityScale float64, log *slog.Logger) *Renderer {
	if lowQualityScale <= 0 || lowQualityScale > 1 {
		lowQualityScale = 0.25
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Renderer{seq: seq, lib: lib, scale: lowQualityScale, log: log}
}

// Render produces the pixels for frame at the requested quality,
// checking ctx between layers so a superseded or timed-out render
// aborts within one layer's worth of work.
func (r *Renderer) Render(ctx context.Context, frame int, quality render.Quality) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scale := 1.0
	if quality == render.QualityLow {
		scale = r.scale
	}
	outW := max(1, int(float64(r.seq.Width)*scale+0.5))
	outH := max(1, int(float64(r.seq.Height)*scale+0.5))

	img := image.NewRGBA(image.Rect(0, 0, outW, outH))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	scaler := scalerFor(quality)
	for _, sh := range r.seq.ShotsAt(frame) {
		for _, ly := range sh.Layers {
			if ly.Hidden || ly.Opacity <= 0 {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := r.drawLayer(img, scale, scaler, ly); err != nil {
				// A missing or broken asset drops its layer, not the frame
				r.log.Debug("layer skipped", "asset", ly.Asset, "frame", frame, "err", err)
			}
		}
	}

	return &Frame{Img: img, Frame: frame, Quality: quality}, nil
}

// drawLayer composites one layer into dst. scale is the whole-frame
// resolution factor, already applied to dst's size.
func (r *Renderer) drawLayer(dst *image.RGBA, scale float64, scaler xdraw.Scaler, ly timeline.Layer) error {
	src, err := r.lib.Get(ly.Asset)
	if err != nil {
		return err
	}

	sb := src.Bounds()
	dw := int(float64(sb.Dx())*ly.Scale*scale + 0.5)
	dh := int(float64(sb.Dy())*ly.Scale*scale + 0.5)
	if dw <= 0 || dh <= 0 {
		return nil
	}
	x0 := int(float64(ly.OffsetX)*scale + 0.5)
	y0 := int(float64(ly.OffsetY)*scale + 0.5)
	rect := image.Rect(x0, y0, x0+dw, y0+dh)

	if ly.Opacity >= 1 {
		scaler.Scale(dst, rect, src, sb, xdraw.Over, nil)
		return nil
	}

	// Partial opacity: scale into a scratch buffer, then blend it in
	// through a uniform alpha mask.
	tmp := image.NewRGBA(image.Rect(0, 0, dw, dh))
	scaler.Scale(tmp, tmp.Bounds(), src, sb, xdraw.Src, nil)
	mask := image.NewUniform(color.Alpha{A: uint8(ly.Opacity*255 + 0.5)})
	draw.DrawMask(dst, rect, tmp, image.Point{}, mask, image.Point{}, draw.Over)
	return nil
}

// scalerFor picks the resampling kernel per tier: cheap bilinear while
// scrubbing, Catmull-Rom once the playhead rests.
func scalerFor(quality render.Quality) xdraw.Scaler {
	if quality == render.QualityHigh {
		return xdraw.CatmullRom
	}
	return xdraw.ApproxBiLinear
}
