package shading

import (
	"math"
	"testing"
)

func TestSRGBToLinear(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"black", 0, 0},
		{"white", 1, 1},
		{"linear segment", 0.04045, 0.04045 / 12.92},
		{"mid gray", 0.5, 0.21404114},
		{"above one extrapolates", 1.5, math.Pow((1.5+0.055)/1.055, 2.4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SRGBToLinear(Color{R: tc.in, G: tc.in, B: tc.in, A: 1})
			if math.Abs(got.R-tc.expected) > 1e-5 {
				t.Errorf("SRGBToLinear(%v).R = %v, want %v", tc.in, got.R, tc.expected)
			}
			if got.A != 1 {
				t.Errorf("alpha should pass through unchanged, got %v", got.A)
			}
		})
	}
}

func TestSRGBRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.003, 0.04045, 0.1, 0.5, 0.9, 1} {
		linear := SRGBToLinear(Color{R: v, G: v, B: v, A: 1})
		back := LinearToSRGB(linear)
		// The two branch thresholds (0.04045 decode, 0.0031308 encode) are
		// not exact inverses, so the trip picks up a few 1e-8 of error at
		// the boundary.
		if math.Abs(back.R-v) > 1e-6 {
			t.Errorf("round trip of %v = %v", v, back.R)
		}
	}
}

func TestSRGBMonotonic(t *testing.T) {
	prev := -1.0
	for i := 0; i <= 100; i++ {
		v := float64(i) / 100
		got := SRGBToLinear(Color{R: v}).R
		if got <= prev {
			t.Fatalf("SRGBToLinear not strictly increasing at %v: %v <= %v", v, got, prev)
		}
		prev = got
	}
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		name     string
		c        Color
		expected float64
	}{
		{"black", Color{}, 0},
		{"white", RGB(1, 1, 1), 1},
		{"pure red", RGB(1, 0, 0), 0.299},
		{"pure green", RGB(0, 1, 0), 0.587},
		{"pure blue", RGB(0, 0, 1), 0.114},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Luminance(); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Luminance(%v) = %v, want %v", tc.c, got, tc.expected)
			}
		})
	}
}

func TestColorOps(t *testing.T) {
	a := Color{0.2, 0.4, 0.6, 0.5}
	b := Color{0.5, 0.5, 0.5, 1}

	sum := a.Add(b)
	if sum.R != 0.7 || sum.A != 0.5 {
		t.Errorf("Add = %v, want alpha from receiver", sum)
	}

	prod := a.Mul(b)
	if math.Abs(prod.G-0.2) > 1e-12 || prod.A != 0.5 {
		t.Errorf("Mul = %v", prod)
	}

	scaled := a.Scale(2)
	if scaled.B != 1.2 || scaled.A != 0.5 {
		t.Errorf("Scale should leave alpha unchanged, got %v", scaled)
	}

	mid := a.Lerp(b, 0.5)
	want := Color{0.35, 0.45, 0.55, 0.75}
	if math.Abs(mid.R-want.R) > 1e-12 || math.Abs(mid.A-want.A) > 1e-12 {
		t.Errorf("Lerp midpoint = %v, want %v", mid, want)
	}
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp t=0 = %v, want a", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp t=1 = %v, want b", got)
	}
}
