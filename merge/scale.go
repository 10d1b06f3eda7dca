package merge

import (
	"image"

	"github.com/disintegration/imaging"
)

// scaleImage resamples img to exactly (w,h) with Lanczos-3, the spec's
// reference filter for deterministic high-quality resampling. Resizing is
// skipped when the image already has the target dimensions.
func scaleImage(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}
