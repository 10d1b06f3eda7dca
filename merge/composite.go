package merge

import (
	"image"
	"image/color"
)

// blendPixel composites src over bg using straight-alpha source-over
// blending, matching spec's rounding rule for partial coverage. Only the
// partial-coverage case takes the background's alpha; a fully opaque source
// pixel is copied verbatim and a fully transparent one yields bg verbatim.
func blendPixel(src, bg color.NRGBA) color.NRGBA {
	if src.A >= 255 {
		return src
	}
	if src.A == 0 {
		return bg
	}
	alpha := float64(src.A) / 255.0
	blend := func(fg, bg uint8) uint8 {
		v := float64(fg)*alpha + float64(bg)*(1-alpha)
		return uint8(v + 0.5)
	}
	return color.NRGBA{
		R: blend(src.R, bg.R),
		G: blend(src.G, bg.G),
		B: blend(src.B, bg.B),
		A: bg.A,
	}
}

// newCanvas allocates an output grid of (w,h) filled solid with bg, the
// same manual fill-then-paint structure as the teacher's ScaleToFit.
func newCanvas(w, h int, bg BackgroundColor) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	fill := color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: bg.A}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			canvas.SetNRGBA(x, y, fill)
		}
	}
	return canvas
}

// paintPlain blits src onto canvas at (offsetX, offsetY) with no cropping,
// used by the Vertical and Horizontal layouts.
func paintPlain(canvas *image.NRGBA, src *image.NRGBA, offsetX, offsetY int, bg BackgroundColor) {
	paintCropped(canvas, src, offsetX, offsetY, 0, src.Bounds().Dy(), bg)
}

// paintCropped blits rows [rowStart, rowEnd) of src onto canvas at
// (offsetX, offsetY), skipping rows outside that range. This is the Smart
// layout's per-image top/bottom crop; Vertical/Horizontal call it with
// rowStart=0 and rowEnd=src height (no cropping).
func paintCropped(canvas *image.NRGBA, src *image.NRGBA, offsetX, offsetY, rowStart, rowEnd int, bg BackgroundColor) {
	sb := src.Bounds()
	cb := canvas.Bounds()
	srcW, srcH := sb.Dx(), sb.Dy()

	top := rowStart
	bottom := rowEnd
	if top < 0 {
		top = 0
	}
	if bottom > srcH {
		bottom = srcH
	}
	if bottom <= top {
		return
	}

	for sy := top; sy < bottom; sy++ {
		dy := offsetY + (sy - top)
		if dy < cb.Min.Y || dy >= cb.Max.Y {
			continue
		}
		for sx := 0; sx < srcW; sx++ {
			dx := offsetX + sx
			if dx < cb.Min.X || dx >= cb.Max.X {
				continue
			}
			srcPixel := src.NRGBAAt(sb.Min.X+sx, sb.Min.Y+sy)
			bgPixel := canvas.NRGBAAt(dx, dy)
			canvas.SetNRGBA(dx, dy, blendPixel(srcPixel, bgPixel))
		}
	}
}
