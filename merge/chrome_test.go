package merge

import (
	"image"
	"image/color"
	"testing"
)

func grayRow(w int, values []uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, 1))
	for x := 0; x < w; x++ {
		g.SetGray(x, 0, color.Gray{Y: values[x]})
	}
	return g
}

func TestCommonSpan(t *testing.T) {
	start, width := commonSpan(200, 220)
	if start != 5 { // round(200*0.025) = 5
		t.Errorf("start = %d, want 5", start)
	}
	if width != 190 {
		t.Errorf("width = %d, want 190", width)
	}
}

func TestCommonSpanDegenerate(t *testing.T) {
	// A zero common width leaves no span. Any positive width keeps at least
	// one column (commonSpan(1,1) has margin round(0.025)=0 and width 1).
	start, width := commonSpan(0, 1)
	if width != 0 {
		t.Fatalf("expected zero span for common width=0, got start=%d width=%d", start, width)
	}
}

func TestRowsSimilarIdentical(t *testing.T) {
	a := grayRow(10, []uint8{10, 20, 30, 40, 50, 60, 70, 80, 90, 100})
	if !rowsSimilar(a, a, 0, 0, 0, 10) {
		t.Fatal("identical rows should be similar")
	}
}

func TestRowsSimilarDifferent(t *testing.T) {
	a := grayRow(10, []uint8{0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	b := grayRow(10, []uint8{200, 200, 200, 200, 200, 200, 200, 200, 200, 200})
	if rowsSimilar(a, b, 0, 0, 0, 10) {
		t.Fatal("rows differing by 200 should not be similar")
	}
}

func TestClampTrim(t *testing.T) {
	// height=340: cap = min(240, round(340*0.2)=68, 340) = 68
	if got := clampTrim(100, 340); got != 68 {
		t.Errorf("clampTrim(100,340) = %d, want 68", got)
	}
	if got := clampTrim(10, 340); got != 10 {
		t.Errorf("clampTrim(10,340) = %d, want 10 (under cap)", got)
	}
	if got := clampTrim(-5, 340); got != 0 {
		t.Errorf("clampTrim(-5,340) = %d, want 0", got)
	}
}

func TestProxyRowsToPixels(t *testing.T) {
	if got := proxyRowsToPixels(20, 340, 220); got != 31 { // round(20*340/220)=round(30.9)=31
		t.Errorf("proxyRowsToPixels = %d, want 31", got)
	}
}

func TestComputeChromeTrimsForcesEndpoints(t *testing.T) {
	imgs := make([]*image.NRGBA, 3)
	for i := range imgs {
		img := image.NewNRGBA(image.Rect(0, 0, 50, 100))
		for y := 0; y < 100; y++ {
			for x := 0; x < 50; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: uint8((x + y + i) % 256), G: 0, B: 0, A: 255})
			}
		}
		imgs[i] = img
	}
	trims := computeChromeTrims(imgs)
	if trims[0].Top != 0 {
		t.Errorf("first image top = %d, want 0", trims[0].Top)
	}
	if trims[len(trims)-1].Bottom != 0 {
		t.Errorf("last image bottom = %d, want 0", trims[len(trims)-1].Bottom)
	}
}

func TestComputeChromeTrimsCollapsesWhenExceedsMinContent(t *testing.T) {
	// Two small, pixel-identical images: every row matches, so image 0's
	// bottom trim and image 1's top trim each clamp to round(60*0.2)=12,
	// which alone exceeds height-minContentPx = 10, forcing a collapse to (0,0).
	w, h := 100, 60
	make1 := func() *image.NRGBA {
		img := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: uint8(y * 4), G: uint8(x), B: 10, A: 255})
			}
		}
		return img
	}
	imgs := []*image.NRGBA{make1(), make1()}
	trims := computeChromeTrims(imgs)
	if trims[0] != (ChromeTrim{}) {
		t.Errorf("image 0 trims = %+v, want zero (collapsed)", trims[0])
	}
	if trims[1] != (ChromeTrim{}) {
		t.Errorf("image 1 trims = %+v, want zero (collapsed)", trims[1])
	}
}
