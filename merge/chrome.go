package merge

import (
	"image"

	"github.com/disintegration/imaging"
)

const (
	chromeProxyWidth     = 320
	chromeMarginFraction = 0.025
	chromeSimilarDelta   = 12
	chromeRowMatchFrac   = 0.97
	chromeRowMeanAbsMax  = 6.0
	chromeMaxTrimPx      = 240
	chromeMaxTrimFrac    = 0.20
	chromeMinContentPx   = 50
)

// chromeProxy is a downsampled grayscale stand-in for a scaled image, used
// only to decide how many rows of repeated UI chrome to trim.
type chromeProxy struct {
	gray   *image.Gray
	origH  int
	proxyH int
}

// buildChromeProxy resamples img to width min(chromeProxyWidth, img width)
// with a triangle filter, matching the reference engine's proxy
// construction (original_source/engine/src/chrome_strip.rs).
func buildChromeProxy(img *image.NRGBA) chromeProxy {
	b := img.Bounds()
	origW, origH := b.Dx(), b.Dy()

	w := origW
	if w > chromeProxyWidth {
		w = chromeProxyWidth
	}
	h := roundHalfUpRatio(origH*w, origW)
	if h < 1 {
		h = 1
	}

	full := toGray(img)

	var gray *image.Gray
	if w == origW && h == origH {
		gray = full
	} else {
		resized := imaging.Resize(full, w, h, imaging.Linear)
		gray = grayFromResizedGray(resized)
	}

	return chromeProxy{gray: gray, origH: origH, proxyH: h}
}

// commonSpan returns the shared horizontal span (start, width) two proxies
// should be compared over, trimming a margin from each side.
func commonSpan(aw, bw int) (start, width int) {
	w := min(aw, bw)
	margin := roundHalfUp(float64(w) * chromeMarginFraction)
	span := w - 2*margin
	if span <= 0 {
		return 0, 0
	}
	return margin, span
}

// rowsSimilar reports whether row ay of a and row by of b agree over
// [start, start+width) under the chrome-strip similarity gate.
func rowsSimilar(a, b *image.Gray, ay, by, start, width int) bool {
	if width <= 0 {
		return false
	}
	matches := 0
	var sumAbsDiff int
	for i := 0; i < width; i++ {
		av := int(a.GrayAt(start+i, ay).Y)
		bv := int(b.GrayAt(start+i, by).Y)
		d := av - bv
		if d < 0 {
			d = -d
		}
		if d <= chromeSimilarDelta {
			matches++
		}
		sumAbsDiff += d
	}
	if float64(matches) < chromeRowMatchFrac*float64(width) {
		return false
	}
	meanAbsDiff := float64(sumAbsDiff) / float64(width)
	return meanAbsDiff <= chromeRowMeanAbsMax
}

// countTopRows counts how many leading rows of prev and curr are similar,
// walking down from row 0 of each proxy.
func countTopRows(prev, curr chromeProxy, start, width int) int {
	limit := min(prev.gray.Bounds().Dy(), curr.gray.Bounds().Dy())
	count := 0
	for y := 0; y < limit; y++ {
		if !rowsSimilar(prev.gray, curr.gray, y, y, start, width) {
			break
		}
		count++
	}
	return count
}

// countBottomRows counts how many trailing rows of prev and curr are
// similar, walking up from the last row of each proxy.
func countBottomRows(prev, curr chromeProxy, start, width int) int {
	ph := prev.gray.Bounds().Dy()
	ch := curr.gray.Bounds().Dy()
	limit := min(ph, ch)
	count := 0
	for i := 0; i < limit; i++ {
		py := ph - 1 - i
		cy := ch - 1 - i
		if !rowsSimilar(prev.gray, curr.gray, py, cy, start, width) {
			break
		}
		count++
	}
	return count
}

// proxyRowsToPixels converts a count of proxy rows into original-image
// pixels via round-half-up ratio conversion.
func proxyRowsToPixels(rows, origH, proxyH int) int {
	if proxyH == 0 {
		return 0
	}
	return roundHalfUpRatio(rows*origH, proxyH)
}

func clampTrim(px, height int) int {
	maxAllowed := min(chromeMaxTrimPx, roundHalfUp(float64(height)*chromeMaxTrimFrac))
	maxAllowed = min(maxAllowed, height)
	if px > maxAllowed {
		return maxAllowed
	}
	if px < 0 {
		return 0
	}
	return px
}

// computeChromeTrims returns, for each scaled image, the number of top/bottom
// rows to trim before compositing in Smart mode. The first image's top and
// the last image's bottom are always forced to 0.
func computeChromeTrims(scaled []*image.NRGBA) []ChromeTrim {
	trims := make([]ChromeTrim, len(scaled))
	if len(scaled) == 0 {
		return trims
	}

	proxies := make([]chromeProxy, len(scaled))
	for i, img := range scaled {
		proxies[i] = buildChromeProxy(img)
	}

	for i := 1; i < len(scaled); i++ {
		prev := proxies[i-1]
		curr := proxies[i]
		start, width := commonSpan(prev.gray.Bounds().Dx(), curr.gray.Bounds().Dx())

		topRows := 0
		bottomRows := 0
		if width > 0 {
			topRows = countTopRows(prev, curr, start, width)
			bottomRows = countBottomRows(prev, curr, start, width)
		}

		currHeight := scaled[i].Bounds().Dy()
		prevHeight := scaled[i-1].Bounds().Dy()

		topPx := clampTrim(proxyRowsToPixels(topRows, curr.origH, curr.proxyH), currHeight)
		bottomPx := clampTrim(proxyRowsToPixels(bottomRows, prev.origH, prev.proxyH), prevHeight)

		trims[i].Top = topPx
		trims[i-1].Bottom = bottomPx
	}

	for i, img := range scaled {
		h := img.Bounds().Dy()
		if trims[i].Top+trims[i].Bottom > h-chromeMinContentPx {
			trims[i].Top = 0
			trims[i].Bottom = 0
		}
	}

	trims[0].Top = 0
	trims[len(trims)-1].Bottom = 0

	return trims
}
