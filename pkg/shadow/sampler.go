package shadow

import (
	"github.com/dusk3d/dusk/pkg/gbuffer"
	"github.com/dusk3d/dusk/pkg/math3d"
	"github.com/dusk3d/dusk/pkg/shading"
)

// softTaps is the soft-filter tap count: both axes iterate {-0.5, 0, 0.5}
// texels, a 3x3 grid of 9 samples.
const softTaps = 9

// Params is the shadow configuration of one light, immutable for the
// duration of a pass.
type Params struct {
	Enabled   bool
	Soft      bool
	Bias      float64
	TexelSize float64 // 1 / shadow-map resolution
}

// Factor computes the visibility of a world-space fragment against one
// cascade's depth map, in [0,1]: 1 fully lit, 0 fully occluded.
//
// When shadows are disabled it returns exactly 1.0 without touching the
// sampler. Otherwise the fragment is projected into light space, the bias is
// subtracted from its depth, and the biased depth is compared against the
// stored map: a single tap in hard mode, a 9-tap average in soft mode.
func Factor(p Params, world math3d.Vec3, lightViewProj math3d.Mat4, tex gbuffer.DepthSampler) float64 {
	if !p.Enabled {
		return 1.0
	}

	pos := shading.ProjectShadow(world, lightViewProj)
	depth := pos.Z - p.Bias

	if !p.Soft {
		if depth > tex.SampleDepth(pos.X, pos.Y) {
			return 0.0
		}
		return 1.0
	}

	occluded := 0
	for dy := -0.5; dy <= 0.5; dy += 0.5 {
		for dx := -0.5; dx <= 0.5; dx += 0.5 {
			u := pos.X + dx*p.TexelSize
			v := pos.Y + dy*p.TexelSize
			if depth > tex.SampleDepth(u, v) {
				occluded++
			}
		}
	}
	return math3d.Clamp01(1 - float64(occluded)/softTaps)
}
