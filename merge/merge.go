package merge

import (
	"image"
	"math"
)

// version is the fixed identity string returned by Version.
const version = "1.0.0"

// MaxOutputPixels caps the planned output canvas at 16384x16384, the
// pixel-cap gate spec.md §6 requires (TOO_LARGE) but
// original_source/engine/src/merge.rs never actually enforces — this
// engine closes that gap rather than reproducing it.
const MaxOutputPixels = 16384 * 16384

// maxCanvasDimension is the largest canvas width/height Merge accepts (the
// 32-bit signed range); a larger planned size is reported as INTERNAL_ERROR.
const maxCanvasDimension = math.MaxInt32

// Version returns a fixed identity string for this engine.
func Version() string {
	return version
}

// Merge decodes images, normalizes their EXIF orientation, scales them to a
// shared dimension, and composites them into a single PNG according to
// options.Direction. A nil options pointer uses DefaultMergeOptions.
func Merge(images [][]byte, options *MergeOptions) ([]byte, error) {
	if len(images) == 0 {
		return nil, newNoImagesError()
	}

	opts := DefaultMergeOptions()
	if options != nil {
		opts = *options
	}
	opts.sanitize()

	logDebug("merge starting", "count", len(images), "direction", opts.Direction.String())

	decodedImages := make([]*image.NRGBA, len(images))
	for i, raw := range images {
		img, err := decodeImage(raw)
		if err != nil {
			return nil, newDecodeError(i, "", err)
		}
		orientation := extractOrientation(raw)
		decodedImages[i] = normalizeOrientation(img, orientation)
		logDebug("decoded image", "index", i,
			"width", decodedImages[i].Bounds().Dx(),
			"height", decodedImages[i].Bounds().Dy(),
			"orientation", orientation)
	}

	dims := make([][2]int, len(decodedImages))
	for i, img := range decodedImages {
		b := img.Bounds()
		dims[i] = [2]int{b.Dx(), b.Dy()}
	}
	target := computeTargetDimension(dims, opts.Direction)

	scaled := make([]*image.NRGBA, len(decodedImages))
	scaledDims := make([][2]int, len(decodedImages))
	for i, img := range decodedImages {
		w, h := computeScaledDimensions(dims[i][0], dims[i][1], target, opts.Direction)
		scaled[i] = scaleImage(img, w, h)
		scaledDims[i] = [2]int{w, h}
	}

	outW, outH := computeOutputSize(scaledDims, opts.Direction)

	var trims []ChromeTrim
	overlaps := make([]int, len(scaled))
	if opts.Direction == DirectionSmart {
		trims = computeChromeTrims(scaled)
		for i, tr := range trims {
			logDebug("chrome trim", "index", i, "top", tr.Top, "bottom", tr.Bottom)
		}

		for i := 1; i < len(scaled); i++ {
			result := detectOverlap(scaled[i-1], scaled[i], opts.OverlapSensitivity)
			overlaps[i] = result.OverlapPixels
			logDebug("overlap detected", "pairIndex", i, "pixels", result.OverlapPixels, "confidence", result.Confidence)
		}

		var totalTop, totalBottom, totalOverlap uint64
		for i := range scaled {
			totalTop += uint64(trims[i].Top)
			totalBottom += uint64(trims[i].Bottom)
			totalOverlap += uint64(overlaps[i])
		}
		saturatingSub := outH
		for _, v := range []uint64{totalTop, totalBottom, totalOverlap} {
			if v >= saturatingSub {
				saturatingSub = 0
				break
			}
			saturatingSub -= v
		}
		outH = saturatingSub
	}

	if outW > maxCanvasDimension || outH > maxCanvasDimension {
		return nil, newInternalError("planned output exceeds 32-bit canvas dimensions")
	}

	pixels := outW * outH
	if pixels > MaxOutputPixels {
		return nil, newTooLargeError(outW, outH, pixels, MaxOutputPixels)
	}

	canvas := newCanvas(int(outW), int(outH), opts.Background)

	switch opts.Direction {
	case DirectionHorizontal:
		x := 0
		for _, img := range scaled {
			h := img.Bounds().Dy()
			offsetY := (int(outH) - h) / 2
			paintPlain(canvas, img, x, offsetY, opts.Background)
			x += img.Bounds().Dx()
		}
	case DirectionSmart:
		y := 0
		for i, img := range scaled {
			cropTop := trims[i].Top + overlaps[i]
			cropBottom := trims[i].Bottom
			paintCropped(canvas, img, 0, y, cropTop, img.Bounds().Dy()-cropBottom, opts.Background)
			rendered := img.Bounds().Dy() - cropTop - cropBottom
			if rendered < 0 {
				rendered = 0
			}
			y += rendered
		}
	default: // DirectionVertical
		y := 0
		for _, img := range scaled {
			w := img.Bounds().Dx()
			offsetX := (int(outW) - w) / 2
			paintPlain(canvas, img, offsetX, y, opts.Background)
			y += img.Bounds().Dy()
		}
	}

	out, err := encodePNG(canvas)
	if err != nil {
		return nil, newInternalError(err.Error())
	}

	logDebug("merge finished", "width", outW, "height", outH, "bytes", len(out))

	return out, nil
}
