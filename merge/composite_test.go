package merge

import (
	"image/color"
	"testing"
)

func TestBlendPixelOpaqueCopiesSource(t *testing.T) {
	src := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	bg := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	got := blendPixel(src, bg)
	if got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Fatalf("opaque blend = %+v, want source verbatim", got)
	}
}

func TestBlendPixelOpaqueKeepsSourceAlphaOverNonOpaqueBackground(t *testing.T) {
	// A fully opaque source must be copied verbatim even when the
	// background itself is only partially opaque: the output alpha here is
	// the source's 255, not the background's 128.
	src := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	bg := color.NRGBA{R: 1, G: 2, B: 3, A: 128}
	got := blendPixel(src, bg)
	if got != src {
		t.Fatalf("opaque blend over non-opaque background = %+v, want source verbatim %+v", got, src)
	}
}

func TestBlendPixelTransparentKeepsBackground(t *testing.T) {
	src := color.NRGBA{R: 10, G: 20, B: 30, A: 0}
	bg := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	got := blendPixel(src, bg)
	if got != bg {
		t.Fatalf("transparent blend = %+v, want background verbatim", got)
	}
}

func TestBlendPixelPartialAlpha(t *testing.T) {
	src := color.NRGBA{R: 200, G: 0, B: 0, A: 128}
	bg := color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	got := blendPixel(src, bg)
	// alpha = 128/255 ≈ 0.5020; R = round(200*0.5020 + 0*0.4980) = round(100.39) = 100
	if got.R != 100 {
		t.Fatalf("R = %d, want 100", got.R)
	}
	if got.A != 255 {
		t.Fatalf("output alpha = %d, want background alpha 255", got.A)
	}
}

func TestNewCanvasFillsBackground(t *testing.T) {
	bg := BackgroundColor{R: 10, G: 20, B: 30, A: 255}
	canvas := newCanvas(5, 5, bg)
	got := canvas.NRGBAAt(2, 2)
	if got.R != 10 || got.G != 20 || got.B != 30 || got.A != 255 {
		t.Fatalf("canvas pixel = %+v, want %+v", got, bg)
	}
}

func TestPaintCroppedSkipsCroppedRows(t *testing.T) {
	bg := BackgroundColor{R: 0, G: 0, B: 0, A: 255}
	canvas := newCanvas(4, 10, bg)
	src := newCanvas(4, 4, BackgroundColor{R: 255, G: 255, B: 255, A: 255})

	// Crop the top row (index 0) and the bottom row (index 3), leaving rows
	// 1..2 (height 2) to be painted at canvas y=0.
	paintCropped(canvas, src, 0, 0, 1, 3, bg)

	if got := canvas.NRGBAAt(0, 0); got.R != 255 {
		t.Fatalf("row 0 should carry src row 1 (white), got %+v", got)
	}
	if got := canvas.NRGBAAt(0, 2); got.R != 0 {
		t.Fatalf("row 2 should remain background (not painted), got %+v", got)
	}
}
