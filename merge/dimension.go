package merge

import "math"

// computeTargetDimension returns the common dimension every image is scaled
// to: max width for Vertical/Smart, max height for Horizontal.
func computeTargetDimension(dims [][2]int, direction Direction) int {
	if len(dims) == 0 {
		return 0
	}
	best := 0
	for _, d := range dims {
		v := d[0]
		if direction == DirectionHorizontal {
			v = d[1]
		}
		if v > best {
			best = v
		}
	}
	return best
}

// computeScaledDimensions scales (w,h) to target, preserving aspect ratio
// along the non-target axis with half-up rounding.
func computeScaledDimensions(w, h, target int, direction Direction) (int, int) {
	if w == 0 || h == 0 || target == 0 {
		return 0, 0
	}
	if direction == DirectionHorizontal {
		scale := float64(target) / float64(h)
		newW := roundHalfUp(float64(w) * scale)
		return max(newW, 1), target
	}
	scale := float64(target) / float64(w)
	newH := roundHalfUp(float64(h) * scale)
	return target, max(newH, 1)
}

// roundHalfUp rounds value to the nearest integer, rounding .5 up.
func roundHalfUp(value float64) int {
	return int(math.Floor(value + 0.5))
}

// roundHalfUpRatio computes round_half_up(num/den) using integer arithmetic
// to stay exact for the chrome-strip proxy conversions.
func roundHalfUpRatio(num, den int) int {
	if den == 0 {
		return 0
	}
	return int((int64(num) + int64(den)/2) / int64(den))
}

// computeOutputSize sums/maxes the scaled per-image dimensions into the
// overall canvas size, in uint64 so an implausibly large input can be
// detected before any 32-bit-sized allocation is attempted.
func computeOutputSize(scaledDims [][2]int, direction Direction) (uint64, uint64) {
	if len(scaledDims) == 0 {
		return 0, 0
	}
	if direction == DirectionHorizontal {
		var width uint64
		maxHeight := 0
		for _, d := range scaledDims {
			width += uint64(d[0])
			if d[1] > maxHeight {
				maxHeight = d[1]
			}
		}
		return width, uint64(maxHeight)
	}
	maxWidth := 0
	var height uint64
	for _, d := range scaledDims {
		if d[0] > maxWidth {
			maxWidth = d[0]
		}
		height += uint64(d[1])
	}
	return uint64(maxWidth), height
}
