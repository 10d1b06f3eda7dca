package merge

import (
	"image"
	"math"
)

const (
	minWidthRatio        = 0.9
	overlapMarginFrac    = 0.025
	minTemplateWidth     = 50
	minTemplateHeight    = 30
	templateHeightPxMax  = 240
	templateHeightPx     = 80
	templateHeightStepPx = 40
	minOverlapPixels     = 5
)

// overlapThresholds are the sensitivity-interpolated gates used by
// detectOverlap.
type overlapThresholds struct {
	matchThreshold      float64
	ambiguityGap        float64
	minTemplateVariance float64
	preferSmallerFirst  bool
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// thresholdsFromSensitivity interpolates the spec's three sensitivity gates
// and decides search-order preference, matching the teacher's NCCOptions
// style of deriving a handful of scalar knobs from one sensitivity value.
func thresholdsFromSensitivity(sensitivity int) overlapThresholds {
	s := float64(sensitivity) / 100.0
	return overlapThresholds{
		matchThreshold:      lerp(0.86, 0.76, s),
		ambiguityGap:        lerp(0.04, 0.01, s),
		minTemplateVariance: lerp(50.0, 10.0, s),
		preferSmallerFirst:  sensitivity >= 50,
	}
}

// integralImage is a summed-area table over a grayscale grid, giving O(1)
// windowed sum and sum-of-squares queries. Grounded on the teacher's
// domain/capture/ncc.go integral-image technique, generalized here to
// produce the full NCC score matrix instead of tracking a single running
// best.
type integralImage struct {
	w, h  int
	sum   []float64
	sumSq []float64
}

func buildIntegral(g *image.Gray) *integralImage {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	ii := &integralImage{
		w: w + 1, h: h + 1,
		sum:   make([]float64, (w+1)*(h+1)),
		sumSq: make([]float64, (w+1)*(h+1)),
	}
	stride := w + 1
	for y := 0; y < h; y++ {
		var rowSum, rowSumSq float64
		for x := 0; x < w; x++ {
			v := float64(g.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			rowSum += v
			rowSumSq += v * v
			idx := (y+1)*stride + (x + 1)
			ii.sum[idx] = ii.sum[idx-stride] + rowSum
			ii.sumSq[idx] = ii.sumSq[idx-stride] + rowSumSq
		}
	}
	return ii
}

// windowSums returns (sum, sumSq) over the rectangle [x,x+w)×[y,y+h).
func (ii *integralImage) windowSums(x, y, w, h int) (float64, float64) {
	stride := ii.w
	a := y*stride + x
	b := y*stride + x + w
	c := (y+h)*stride + x
	d := (y+h)*stride + x + w
	sum := ii.sum[d] - ii.sum[c] - ii.sum[b] + ii.sum[a]
	sumSq := ii.sumSq[d] - ii.sumSq[c] - ii.sumSq[b] + ii.sumSq[a]
	return sum, sumSq
}

// templateStats holds the mean-centered statistics of a fixed template,
// precomputed once per matching attempt (never cached across calls — see
// the no-process-wide-state resource rule).
type templateStats struct {
	gray     *image.Gray
	w, h     int
	mean     float64
	variance float64
	std      float64
	n        float64
}

func newTemplateStats(g *image.Gray) templateStats {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	n := float64(w * h)
	var sum, sumSq float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float64(g.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			sum += v
			sumSq += v * v
		}
	}
	mean := sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	return templateStats{gray: g, w: w, h: h, mean: mean, variance: variance, std: math.Sqrt(variance), n: n}
}

// sumTemplateProduct returns the cross-correlation sum of the template
// against the search region window starting at (x,y).
func sumTemplateProduct(search *image.Gray, t templateStats, x, y int) float64 {
	sb := search.Bounds()
	var sum float64
	for ty := 0; ty < t.h; ty++ {
		for tx := 0; tx < t.w; tx++ {
			sv := float64(search.GrayAt(sb.Min.X+x+tx, sb.Min.Y+y+ty).Y)
			tv := float64(t.gray.GrayAt(t.gray.Bounds().Min.X+tx, t.gray.Bounds().Min.Y+ty).Y)
			sum += sv * tv
		}
	}
	return sum
}

// matchResult holds the full NCC score grid and its dimensions, mirroring
// the reference engine's f32 result buffer.
type matchResult struct {
	scores       []float32
	w, h         int
	tmplW, tmplH int
}

func (m *matchResult) at(x, y int) float32 {
	return m.scores[y*m.w+x]
}

// performMatching computes the full NCC score matrix of template t against
// search, using the integral image ii built over search for O(1) windowed
// mean/variance per position.
func performMatching(search *image.Gray, ii *integralImage, t templateStats) *matchResult {
	sb := search.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	rw := sw - t.w + 1
	rh := sh - t.h + 1
	if rw <= 0 || rh <= 0 {
		return &matchResult{w: 0, h: 0, tmplW: t.w, tmplH: t.h}
	}

	res := &matchResult{scores: make([]float32, rw*rh), w: rw, h: rh, tmplW: t.w, tmplH: t.h}

	for y := 0; y < rh; y++ {
		for x := 0; x < rw; x++ {
			winSum, winSumSq := ii.windowSums(x, y, t.w, t.h)
			winMean := winSum / t.n
			winVar := winSumSq/t.n - winMean*winMean
			if winVar < 0 {
				winVar = 0
			}
			winStd := math.Sqrt(winVar)

			if winStd == 0 || t.std == 0 {
				res.scores[y*rw+x] = 0
				continue
			}

			sumFT := sumTemplateProduct(search, t, x, y)
			score := (sumFT - t.n*winMean*t.mean) / (t.n * winStd * t.std)
			res.scores[y*rw+x] = float32(score)
		}
	}

	return res
}

// findSecondBest returns the maximum score outside a rectangular exclusion
// zone centered on (bx,by), or -Inf if every position is excluded.
func findSecondBest(m *matchResult, bx, by int) float64 {
	halfW := max(m.tmplW/4, 2)
	halfH := max(m.tmplH/4, 2)

	second := math.Inf(-1)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if x >= bx-halfW && x <= bx+halfW && y >= by-halfH && y <= by+halfH {
				continue
			}
			v := float64(m.at(x, y))
			if v > second {
				second = v
			}
		}
	}
	return second
}

// findGlobalMax returns the position and value of the maximum score in m.
func findGlobalMax(m *matchResult) (bx, by int, best float64, ok bool) {
	best = math.Inf(-1)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			v := float64(m.at(x, y))
			if v > best {
				best, bx, by, ok = v, x, y, true
			}
		}
	}
	return
}

// buildTemplateHeights returns the ordered set of candidate template
// heights to try for one start-y candidate: base first, then expanding
// smaller-first or larger-first depending on sensitivity.
func buildTemplateHeights(usableMax int, preferSmaller bool) []int {
	base := templateHeightPx
	if base > usableMax {
		base = usableMax
	}
	if base < minTemplateHeight {
		if usableMax < minTemplateHeight {
			return nil
		}
		base = minTemplateHeight
	}

	var smallerRest, largerRest []int
	for h := base - templateHeightStepPx; h >= minTemplateHeight; h -= templateHeightStepPx {
		smallerRest = append(smallerRest, h)
	}
	for h := base + templateHeightStepPx; h <= usableMax; h += templateHeightStepPx {
		largerRest = append(largerRest, h)
	}

	heights := make([]int, 0, 1+len(smallerRest)+len(largerRest))
	heights = append(heights, base)
	if preferSmaller {
		heights = append(heights, smallerRest...)
		heights = append(heights, largerRest...)
	} else {
		heights = append(heights, largerRest...)
		heights = append(heights, smallerRest...)
	}
	return heights
}

// detectOverlap finds the vertical overlap between the bottom rows of top
// and the top rows of bottom, returning the zero OverlapResult if no
// candidate clears every gate. Confidence is the winning NCC score clamped
// to [0,1], the spec's documented range for OverlapResult.Confidence.
func detectOverlap(top, bottom *image.NRGBA, sensitivity int) OverlapResult {
	tb := top.Bounds()
	bb := bottom.Bounds()
	tw, th := tb.Dx(), tb.Dy()
	bw, bh := bb.Dx(), bb.Dy()

	if tw == 0 || bw == 0 {
		return OverlapResult{}
	}
	ratio := float64(min(tw, bw)) / float64(max(tw, bw))
	if ratio < minWidthRatio {
		return OverlapResult{}
	}

	thr := thresholdsFromSensitivity(sensitivity)

	commonWidth := min(tw, bw)
	margin := roundHalfUp(float64(commonWidth) * overlapMarginFrac)
	searchW := commonWidth - 2*margin
	searchH := th
	if searchW < minTemplateWidth || searchH < minTemplateHeight {
		return OverlapResult{}
	}

	searchGray := extractGray(top, margin, 0, searchW, searchH)
	if searchGray == nil {
		return OverlapResult{}
	}
	ii := buildIntegral(searchGray)

	startCandidates := []int{0, roundHalfUp(float64(bh) * 0.02)}

	for _, start := range startCandidates {
		if start < 0 || start >= bh {
			continue
		}
		usableMax := min(templateHeightPxMax, min(bh-start, searchH-1))
		if usableMax < minTemplateHeight {
			continue
		}

		heights := buildTemplateHeights(usableMax, thr.preferSmallerFirst)
		for _, h := range heights {
			tmplGray := extractGray(bottom, margin, start, searchW, h)
			if tmplGray == nil {
				continue
			}
			stats := newTemplateStats(tmplGray)
			if stats.variance < thr.minTemplateVariance {
				continue
			}

			m := performMatching(searchGray, ii, stats)
			if m.w <= 0 || m.h <= 0 {
				continue
			}
			bx, by, best, ok := findGlobalMax(m)
			if !ok || math.IsNaN(best) || math.IsInf(best, 0) || best < thr.matchThreshold {
				continue
			}

			second := findSecondBest(m, bx, by)
			if best-second < thr.ambiguityGap {
				continue
			}

			overlapPixels := th - by
			if overlapPixels < minOverlapPixels || overlapPixels > bh {
				continue
			}

			return OverlapResult{OverlapPixels: overlapPixels, Confidence: clampUnit(best)}
		}
	}

	return OverlapResult{}
}

// clampUnit clamps an NCC score (range [-1,1]) into the documented
// OverlapResult.Confidence range of [0,1].
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
