// Package shadow implements cascaded shadow mapping for the directional
// light pass: cascade selection by view-space depth, hard and soft-filtered
// visibility sampling, and a fitting helper that builds the per-cascade
// light matrices.
package shadow

import (
	"math"

	"github.com/dusk3d/dusk/pkg/math3d"
)

// DefaultCascadeCount is the cascade count the renderer configures by
// default. Nothing below depends on it; CascadeSet is sized by its caller.
const DefaultCascadeCount = 3

// Cascade is one shadow map covering a sub-range of view depth.
type Cascade struct {
	// ViewProjection transforms world space into the cascade's light space.
	ViewProjection math3d.Mat4
	// MaxDistance is the largest view-space depth this cascade accepts.
	MaxDistance float64
}

// CascadeSet is an ordered sequence of cascades, smallest coverage first.
type CascadeSet []Cascade

// Select returns the index of the first cascade whose bound accepts the
// fragment's view-space depth, or -1 when none matches (the fragment is
// beyond all cascades and renders fully lit). Cascades are hard-cut: a
// fragment belongs to exactly one, never a blend of two, so seams at the
// boundaries are expected.
func (s CascadeSet) Select(viewDepth float64) int {
	d := math.Abs(viewDepth)
	for i, c := range s {
		if d <= c.MaxDistance {
			return i
		}
	}
	return -1
}

// Build fits one orthographic light matrix per split distance. Each cascade
// covers a sphere of radius splits[i] in front of the camera, so nearer
// geometry lands in the smaller, higher-resolution cascades. splits must be
// ascending.
func Build(camPos, camForward, lightDir math3d.Vec3, splits []float64) CascadeSet {
	set := make(CascadeSet, 0, len(splits))
	dir := lightDir.Normalize()

	up := math3d.Up()
	if math.Abs(dir.Dot(up)) > 0.99 {
		up = math3d.V3(0, 0, 1) // light is near-vertical, pick another up
	}

	for _, d := range splits {
		center := camPos.Add(camForward.Normalize().Scale(d * 0.5))
		radius := d
		eye := center.Sub(dir.Scale(radius * 2))
		view := math3d.LookAt(eye, center, up)
		proj := math3d.Orthographic(-radius, radius, -radius, radius, 0.1, radius*4)

		set = append(set, Cascade{
			ViewProjection: proj.Mul(view),
			MaxDistance:    d,
		})
	}
	return set
}
