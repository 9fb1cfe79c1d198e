package shadow

import (
	"testing"

	"github.com/dusk3d/dusk/pkg/math3d"
)

func testCascades() CascadeSet {
	return CascadeSet{
		{MaxDistance: 10},
		{MaxDistance: 50},
		{MaxDistance: 200},
	}
}

func TestCascadeSelect(t *testing.T) {
	set := testCascades()

	tests := []struct {
		name     string
		depth    float64
		expected int
	}{
		{"near fragment", 5, 0},
		{"first boundary", 10, 0},
		{"middle fragment", 30, 1},
		{"second boundary", 50, 1},
		{"far fragment", 100, 2},
		{"last boundary", 200, 2},
		{"beyond all cascades", 300, -1},
		{"negative view depth", -30, 1},
		{"zero depth", 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := set.Select(tc.depth); got != tc.expected {
				t.Errorf("Select(%v) = %v, want %v", tc.depth, got, tc.expected)
			}
		})
	}
}

func TestCascadeSelectEmpty(t *testing.T) {
	var set CascadeSet
	if got := set.Select(1); got != -1 {
		t.Errorf("empty set Select = %v, want -1", got)
	}
}

func TestBuild(t *testing.T) {
	camPos := math3d.V3(0, 2, 8)
	forward := math3d.V3(0, 0, -1)
	lightDir := math3d.V3(-0.5, -1, -0.3).Normalize()
	splits := []float64{10, 50, 200}

	set := Build(camPos, forward, lightDir, splits)

	if len(set) != len(splits) {
		t.Fatalf("cascade count = %v, want %v", len(set), len(splits))
	}

	for i, c := range set {
		if c.MaxDistance != splits[i] {
			t.Errorf("cascade %d bound = %v, want %v", i, c.MaxDistance, splits[i])
		}

		// A point inside the cascade's coverage sphere projects into the
		// light's clip volume.
		center := camPos.Add(forward.Scale(splits[i] * 0.5))
		ndc := c.ViewProjection.MulVec3(center)
		if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
			t.Errorf("cascade %d center projects outside clip volume: %v", i, ndc)
		}
	}
}

func TestBuildVerticalLight(t *testing.T) {
	// A straight-down light exercises the up-vector fallback.
	set := Build(math3d.Zero3(), math3d.V3(0, 0, -1), math3d.V3(0, -1, 0), []float64{10})

	ndc := set[0].ViewProjection.MulVec3(math3d.V3(0, 0, -5))
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 {
		t.Errorf("vertical light cascade broken: center at %v", ndc)
	}
}
