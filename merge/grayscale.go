package merge

import (
	"image"
	"image/color"
)

// lumaWeights mirrors the BT.709-ish weights the teacher's NCC code
// (domain/capture/ncc.go) already uses for its own grayscale conversion, so
// chrome-strip and overlap detection agree with each other on what "luma"
// means.
const (
	lumaWeightR = 0.2126
	lumaWeightG = 0.7152
	lumaWeightB = 0.0722
)

func lumaOf(r, g, b uint8) uint8 {
	v := lumaWeightR*float64(r) + lumaWeightG*float64(g) + lumaWeightB*float64(b)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v + 0.5)
}

// toGray converts an NRGBA grid to single-channel grayscale using lumaOf.
func toGray(img *image.NRGBA) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			p := img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			out.SetGray(x, y, color.Gray{Y: lumaOf(p.R, p.G, p.B)})
		}
	}
	return out
}

// grayFromResizedGray extracts the grayscale channel out of an NRGBA image
// that was produced by resizing a *image.Gray (imaging's resize always
// returns *image.NRGBA). Since the source had R==G==B, the red channel
// alone carries the interpolated luma value.
func grayFromResizedGray(img *image.NRGBA) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			p := img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			out.SetGray(x, y, color.Gray{Y: p.R})
		}
	}
	return out
}

// extractGray crops an NRGBA image to (x,y,w,h) and converts it to
// grayscale in one pass. Returns nil if the rectangle doesn't fit.
func extractGray(img *image.NRGBA, x, y, w, h int) *image.Gray {
	if w <= 0 || h <= 0 {
		return nil
	}
	b := img.Bounds()
	if x < 0 || y < 0 || x+w > b.Dx() || y+h > b.Dy() {
		return nil
	}
	out := image.NewGray(image.Rect(0, 0, w, h))
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			p := img.NRGBAAt(b.Min.X+x+i, b.Min.Y+y+j)
			out.SetGray(i, j, color.Gray{Y: lumaOf(p.R, p.G, p.B)})
		}
	}
	return out
}
