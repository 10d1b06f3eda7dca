package merge

import "math"

// Direction selects how input images are laid out in the output canvas.
// Smart is a vertical layout with chrome-strip trimming and overlap removal
// applied between adjacent images.
type Direction int

const (
	DirectionVertical Direction = iota
	DirectionHorizontal
	DirectionSmart
)

func (d Direction) String() string {
	switch d {
	case DirectionHorizontal:
		return "horizontal"
	case DirectionSmart:
		return "smart"
	default:
		return "vertical"
	}
}

// parseDirection maps a wire-level direction string to a Direction. Unknown
// values (including the empty string) fall back to DirectionVertical.
func parseDirection(s string) Direction {
	switch s {
	case "horizontal":
		return DirectionHorizontal
	case "smart":
		return DirectionSmart
	default:
		return DirectionVertical
	}
}

// BackgroundColor is the fill color for transparent or uncovered canvas
// regions. Default is opaque white.
type BackgroundColor struct {
	R, G, B, A uint8
}

// DefaultBackground is opaque white.
var DefaultBackground = BackgroundColor{R: 255, G: 255, B: 255, A: 255}

const defaultOverlapSensitivity = 35

// MergeOptions configures a Merge call. Construct with DefaultMergeOptions
// and override individual fields, or build one from untyped wire input with
// ParseOptions.
type MergeOptions struct {
	Direction          Direction
	Background         BackgroundColor
	OverlapSensitivity int // 0..100, default 35
}

// DefaultMergeOptions returns the options used when Merge is called with a
// nil *MergeOptions.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		Direction:          DirectionVertical,
		Background:         DefaultBackground,
		OverlapSensitivity: defaultOverlapSensitivity,
	}
}

// sanitize clamps any out-of-range field to a valid value in place, mirroring
// the teacher's config.Config.Validate: bad input is coerced, never rejected.
func (o *MergeOptions) sanitize() {
	if o.OverlapSensitivity < 0 {
		o.OverlapSensitivity = 0
	}
	if o.OverlapSensitivity > 100 {
		o.OverlapSensitivity = 100
	}
}

// RawColor is a wire-level background color where channels may arrive as
// non-finite floats (e.g. decoded from untrusted JSON).
type RawColor struct {
	R, G, B, A float64
}

// RawOptions is the wire-level shape of the "options" record from the
// external interface: direction as a string, background as raw float
// channels, overlapSensitivity as a raw float. Unknown keys are the caller's
// concern (this struct only models the recognized ones); all fields are
// optional.
type RawOptions struct {
	Direction          string
	Background         *RawColor
	OverlapSensitivity *float64
}

// ParseOptions resolves a RawOptions into a validated MergeOptions, clamping
// and defaulting exactly as spec'd: non-finite numeric inputs fall back to
// their default, out-of-range values clamp into range, and an unrecognized
// direction string resolves to vertical.
func ParseOptions(raw RawOptions) MergeOptions {
	opts := DefaultMergeOptions()
	opts.Direction = parseDirection(raw.Direction)

	if raw.Background != nil {
		opts.Background = BackgroundColor{
			R: coerceChannel(raw.Background.R),
			G: coerceChannel(raw.Background.G),
			B: coerceChannel(raw.Background.B),
			A: coerceChannel(raw.Background.A),
		}
	}

	if raw.OverlapSensitivity != nil {
		opts.OverlapSensitivity = coerceSensitivity(*raw.OverlapSensitivity)
	}

	return opts
}

func coerceChannel(v float64) uint8 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 255
	}
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

func coerceSensitivity(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return defaultOverlapSensitivity
	}
	r := int(math.Round(v))
	if r < 0 {
		r = 0
	}
	if r > 100 {
		r = 100
	}
	return r
}

// ChromeTrim is the number of pixels to remove from the top and bottom of a
// single image before compositing, to strip repeated UI chrome.
type ChromeTrim struct {
	Top, Bottom int
}

// OverlapResult is the outcome of overlap detection between two adjacent
// images; the zero value means no overlap was found.
type OverlapResult struct {
	OverlapPixels int
	Confidence    float64
}

// Orientation is an EXIF orientation tag value (1..8). Unknown values map to
// OrientationNormal.
type Orientation int

const (
	OrientationNormal         Orientation = 1
	OrientationFlipHorizontal Orientation = 2
	OrientationRotate180      Orientation = 3
	OrientationFlipVertical   Orientation = 4
	OrientationRotate90FlipH  Orientation = 5
	OrientationRotate90       Orientation = 6
	OrientationRotate270FlipH Orientation = 7
	OrientationRotate270      Orientation = 8
)

func orientationFromValue(v uint16) Orientation {
	switch v {
	case 1, 2, 3, 4, 5, 6, 7, 8:
		return Orientation(v)
	default:
		return OrientationNormal
	}
}
