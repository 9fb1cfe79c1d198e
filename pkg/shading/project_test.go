package shading

import (
	"math"
	"testing"

	"github.com/dusk3d/dusk/pkg/math3d"
)

func testViewProj() math3d.Mat4 {
	view := math3d.LookAt(math3d.V3(0, 2, 8), math3d.V3(0, 0, 0), math3d.Up())
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100)
	return proj.Mul(view)
}

func TestProjectUnprojectRoundTrip(t *testing.T) {
	vp := testViewProj()
	inv := vp.Inverse()

	points := []struct {
		name  string
		world math3d.Vec3
	}{
		{"origin", math3d.V3(0, 0, 0)},
		{"off axis", math3d.V3(1.5, -0.75, 2)},
		{"near camera", math3d.V3(0.2, 1.8, 6)},
		{"far", math3d.V3(-4, 3, -20)},
	}

	for _, tc := range points {
		t.Run(tc.name, func(t *testing.T) {
			p := Project(tc.world, vp)
			back := Unproject(math3d.V2(p.X, p.Y), p.Z, inv)

			if back.Sub(tc.world).Len() > 1e-6 {
				t.Errorf("round trip of %v = %v", tc.world, back)
			}
		})
	}
}

func TestProjectRange(t *testing.T) {
	vp := testViewProj()

	// A point straight ahead of the camera lands inside the unit cube of
	// screen space.
	p := Project(math3d.V3(0, 0, 0), vp)
	for _, c := range []float64{p.X, p.Y, p.Z} {
		if c < 0 || c > 1 {
			t.Fatalf("visible point projected outside [0,1]: %v", p)
		}
	}
}

func TestProjectShadowScale(t *testing.T) {
	vp := testViewProj()
	world := math3d.V3(1, 2, 3)

	full := Project(world, vp)
	atlas := ProjectShadow(world, vp)

	if math.Abs(atlas.X-full.X*ShadowAtlasScale) > 1e-12 ||
		math.Abs(atlas.Y-full.Y*ShadowAtlasScale) > 1e-12 ||
		math.Abs(atlas.Z-full.Z*ShadowAtlasScale) > 1e-12 {
		t.Errorf("ProjectShadow = %v, want %v scaled by %v", atlas, full, ShadowAtlasScale)
	}
}

func TestUnprojectScreenYGrowsDownward(t *testing.T) {
	// V follows pixel rows: smaller v is higher on screen, so it must map
	// to larger world Y. Checked against identity matrices so the numbers
	// are exact.
	id := math3d.Identity()

	top := Unproject(math3d.V2(0.5, 0.25), 0.5, id)
	if top != math3d.V3(0, 0.5, 0) {
		t.Errorf("unproject of upper-screen point = %v, want (0, 0.5, 0)", top)
	}

	bottom := Unproject(math3d.V2(0.5, 0.75), 0.5, id)
	if bottom != math3d.V3(0, -0.5, 0) {
		t.Errorf("unproject of lower-screen point = %v, want (0, -0.5, 0)", bottom)
	}

	// And Project inverts it: a point above the axis lands in the upper
	// half of screen space.
	if p := Project(math3d.V3(0, 0.5, 0), id); p != math3d.V3(0.5, 0.25, 0.5) {
		t.Errorf("project of elevated point = %v, want (0.5, 0.25, 0.5)", p)
	}
}

func TestUnprojectDegenerateW(t *testing.T) {
	// A zero matrix forces w to zero; the reconstruction degrades to the
	// zero vector instead of infinities.
	var zero math3d.Mat4
	got := Unproject(math3d.V2(0.5, 0.5), 0.5, zero)
	if got != math3d.Zero3() {
		t.Errorf("degenerate unproject = %v, want zero vector", got)
	}
}
