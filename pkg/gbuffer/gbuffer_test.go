package gbuffer

import (
	"math"
	"testing"

	"github.com/dusk3d/dusk/pkg/math3d"
)

func TestNewGBufferClearsDepthToFar(t *testing.T) {
	gb := New(4, 4)
	if got := gb.Depth.Load(2, 2); got != 1 {
		t.Errorf("fresh depth = %v, want 1", got)
	}

	gb.Depth.Store(2, 2, 0.25)
	gb.Mask.Store(2, 2, 3)
	gb.Clear()

	if got := gb.Depth.Load(2, 2); got != 1 {
		t.Errorf("cleared depth = %v, want 1", got)
	}
	if got := gb.Mask.Sample(0.6, 0.6); got != 0 {
		t.Errorf("cleared mask = %v, want 0", got)
	}
}

func TestNormalEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		n    math3d.Vec3
	}{
		{"up", math3d.V3(0, 1, 0)},
		{"forward", math3d.V3(0, 0, -1)},
		{"diagonal", math3d.V3(1, 1, 1).Normalize()},
		{"skewed", math3d.V3(0.3, -0.8, 0.2).Normalize()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			back := DecodeNormal(EncodeNormal(tc.n))
			if back.Sub(tc.n).Len() > 1e-12 {
				t.Errorf("round trip of %v = %v", tc.n, back)
			}
			if math.Abs(back.Len()-1) > 1e-12 {
				t.Errorf("decoded normal not unit: %v", back.Len())
			}
		})
	}
}

func TestEncodeNormalRange(t *testing.T) {
	c := EncodeNormal(math3d.V3(0, 0, -1))
	if c.B != 0 {
		t.Errorf("encoded -Z = %v, want B 0", c.B)
	}
	c = EncodeNormal(math3d.V3(1, 0, 0))
	if c.R != 1 {
		t.Errorf("encoded +X = %v, want R 1", c.R)
	}
}
