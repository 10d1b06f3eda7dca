package merge

import (
	"math"
	"testing"
)

func TestParseDirection(t *testing.T) {
	cases := map[string]Direction{
		"vertical":   DirectionVertical,
		"horizontal": DirectionHorizontal,
		"smart":      DirectionSmart,
		"bogus":      DirectionVertical,
		"":           DirectionVertical,
	}
	for in, want := range cases {
		if got := parseDirection(in); got != want {
			t.Errorf("parseDirection(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDefaultMergeOptions(t *testing.T) {
	opts := DefaultMergeOptions()
	if opts.Direction != DirectionVertical {
		t.Errorf("default direction = %v, want vertical", opts.Direction)
	}
	if opts.Background != DefaultBackground {
		t.Errorf("default background = %v, want opaque white", opts.Background)
	}
	if opts.OverlapSensitivity != 35 {
		t.Errorf("default sensitivity = %d, want 35", opts.OverlapSensitivity)
	}
}

func TestSanitizeClampsSensitivity(t *testing.T) {
	o := MergeOptions{OverlapSensitivity: 150}
	o.sanitize()
	if o.OverlapSensitivity != 100 {
		t.Fatalf("sanitize did not clamp high sensitivity: %d", o.OverlapSensitivity)
	}

	o2 := MergeOptions{OverlapSensitivity: -5}
	o2.sanitize()
	if o2.OverlapSensitivity != 0 {
		t.Fatalf("sanitize did not clamp low sensitivity: %d", o2.OverlapSensitivity)
	}
}

func TestParseOptionsNonFinite(t *testing.T) {
	sens := math.NaN()
	raw := RawOptions{
		Direction:          "smart",
		Background:         &RawColor{R: math.Inf(1), G: -10, B: 300, A: 128},
		OverlapSensitivity: &sens,
	}
	opts := ParseOptions(raw)

	if opts.Direction != DirectionSmart {
		t.Errorf("direction = %v, want smart", opts.Direction)
	}
	if opts.Background.R != 255 {
		t.Errorf("R = %d, want 255 (non-finite -> default)", opts.Background.R)
	}
	if opts.Background.G != 0 {
		t.Errorf("G = %d, want 0 (clamped)", opts.Background.G)
	}
	if opts.Background.B != 255 {
		t.Errorf("B = %d, want 255 (clamped)", opts.Background.B)
	}
	if opts.Background.A != 128 {
		t.Errorf("A = %d, want 128", opts.Background.A)
	}
	if opts.OverlapSensitivity != defaultOverlapSensitivity {
		t.Errorf("sensitivity = %d, want default %d", opts.OverlapSensitivity, defaultOverlapSensitivity)
	}
}

func TestOrientationFromValue(t *testing.T) {
	if o := orientationFromValue(6); o != OrientationRotate90 {
		t.Fatalf("orientationFromValue(6) = %v, want Rotate90", o)
	}
	if o := orientationFromValue(99); o != OrientationNormal {
		t.Fatalf("orientationFromValue(99) = %v, want Normal (invalid tag)", o)
	}
}
