package passes

import (
	"math"

	"github.com/dusk3d/dusk/pkg/gbuffer"
	"github.com/dusk3d/dusk/pkg/math3d"
	"github.com/dusk3d/dusk/pkg/shading"
)

// DecalFragment is the two-target output of the decal projector: a diffuse
// delta and a packed-normal delta, composited onto the G-buffer on write.
type DecalFragment struct {
	Diffuse   shading.Color
	Normal    shading.Color
	Discarded bool
}

// DecalUniforms describe one projected decal.
type DecalUniforms struct {
	// InvModel transforms world space into the decal's unit cube, where the
	// decal occupies [-0.5, 0.5] on every axis.
	InvModel math3d.Mat4
	// Model is the decal's world transform, used to orient sampled normals.
	Model math3d.Mat4
	// LayerIndex must match the G-buffer mask for the decal to apply.
	LayerIndex uint8
}

// DecalPass projects a decal onto the reconstructed scene surface. Fragments
// outside the decal volume or on a mismatched mask layer discard, which is
// the common outcome rather than a failure.
type DecalPass struct {
	Frame   FrameUniforms
	Decal   DecalUniforms
	Depth   gbuffer.DepthSampler
	Mask    *gbuffer.MaskTarget
	Diffuse *gbuffer.ColorTarget // decal diffuse texture
	Normal  *gbuffer.ColorTarget // decal tangent-space normal texture, [0,1] packed
}

// Shade evaluates the decal at one pixel.
func (p *DecalPass) Shade(u, v float64) DecalFragment {
	if p.Mask.Sample(u, v) != p.Decal.LayerIndex {
		return DecalFragment{Discarded: true}
	}

	depth := p.Depth.SampleDepth(u, v)
	world := shading.Unproject(math3d.V2(u, v), depth, p.Frame.InvViewProjection)
	local := p.Decal.InvModel.MulVec3(world)

	if math.Abs(local.X) > 0.5 || math.Abs(local.Y) > 0.5 || math.Abs(local.Z) > 0.5 {
		return DecalFragment{Discarded: true}
	}

	// The decal's XY face parameterizes the texture.
	du := local.X + 0.5
	dv := local.Y + 0.5

	diffuse := p.Diffuse.Sample(du, dv)

	// Reorient the sampled tangent-space normal by the decal's basis and
	// repack it for the normal target.
	tangent := gbuffer.DecodeNormal(p.Normal.Sample(du, dv))
	worldNormal := p.Decal.Model.MulVec3Dir(tangent).Normalize()

	return DecalFragment{
		Diffuse: diffuse,
		Normal:  gbuffer.EncodeNormal(worldNormal),
	}
}

// Render composites the decal onto the G-buffer's albedo and normal targets.
// Diffuse blends by the decal texture's alpha; the normal replaces outright.
func (p *DecalPass) Render(gb *gbuffer.GBuffer) {
	for y := range gb.Albedo.Height {
		v := (float64(y) + 0.5) / float64(gb.Albedo.Height)
		for x := range gb.Albedo.Width {
			u := (float64(x) + 0.5) / float64(gb.Albedo.Width)

			frag := p.Shade(u, v)
			if frag.Discarded {
				continue
			}

			base := gb.Albedo.Load(x, y)
			a := frag.Diffuse.A
			gb.Albedo.Store(x, y, shading.Color{
				R: math3d.Lerp(base.R, frag.Diffuse.R, a),
				G: math3d.Lerp(base.G, frag.Diffuse.G, a),
				B: math3d.Lerp(base.B, frag.Diffuse.B, a),
				A: base.A,
			})
			gb.Normal.Store(x, y, frag.Normal)
		}
	}
}
