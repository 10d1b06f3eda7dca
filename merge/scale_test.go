package merge

import (
	"image"
	"image/color"
	"testing"
)

func TestScaleImageSkipsWhenAlreadyTargetSize(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	out := scaleImage(img, 10, 10)
	if out != img {
		t.Fatal("scaleImage should return the same image when dimensions already match")
	}
}

func TestScaleImageResizes(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	out := scaleImage(img, 20, 5)
	b := out.Bounds()
	if b.Dx() != 20 || b.Dy() != 5 {
		t.Fatalf("scaled size = %dx%d, want 20x5", b.Dx(), b.Dy())
	}
}
