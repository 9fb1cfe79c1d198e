package passes

import (
	"math"

	"github.com/dusk3d/dusk/pkg/gbuffer"
	"github.com/dusk3d/dusk/pkg/math3d"
	"github.com/dusk3d/dusk/pkg/shading"
	"github.com/dusk3d/dusk/pkg/shadow"
)

// Light is the dispatch point for light-type variants. Point and spot
// variants plug in here once they grow a real implementation.
type Light interface {
	// Shade evaluates the light's contribution at a normalized screen
	// coordinate.
	Shade(u, v float64) Fragment
}

// DirectionalLightUniforms are the per-light parameters, immutable for the
// duration of the pass.
type DirectionalLightUniforms struct {
	Direction math3d.Vec3 // direction the light travels (sun -> scene)
	Color     shading.Color
	Intensity float64
	Shadow    shadow.Params
}

// DirectionalLightBindings names every resource the pass reads. Binding is
// explicit per pass; there is no implicit global resource state.
type DirectionalLightBindings struct {
	GBuffer     *gbuffer.GBuffer
	Cascades    shadow.CascadeSet
	CascadeMaps []gbuffer.DepthSampler // one depth map per cascade, same order
}

// DirectionalLightPass shades the G-buffer with one directional light and
// cascaded shadows.
type DirectionalLightPass struct {
	Frame    FrameUniforms
	Light    DirectionalLightUniforms
	Bindings DirectionalLightBindings
}

// Shade lights one pixel: decode the G-buffer, reconstruct the world
// position, evaluate the BRDF, and attenuate by the cascade shadow factor.
// Pixels with no geometry (depth at the far plane) discard.
func (p *DirectionalLightPass) Shade(u, v float64) Fragment {
	gb := p.Bindings.GBuffer

	depth := gb.Depth.SampleDepth(u, v)
	if depth >= 1 {
		return Discard()
	}

	albedo := shading.SRGBToLinear(gb.Albedo.Sample(u, v))
	normal := gbuffer.DecodeNormal(gb.Normal.Sample(u, v))
	material := gb.Material.Sample(u, v)

	world := shading.Unproject(math3d.V2(u, v), depth, p.Frame.InvViewProjection)
	view := p.Frame.CameraPosition.Sub(world).Normalize()

	brdf := shading.EvaluateDirectLight(shading.Context{
		Albedo:     albedo,
		Normal:     normal,
		View:       view,
		Light:      p.Light.Direction.Normalize().Negate(),
		LightColor: p.Light.Color,
		Metallic:   material.R,
		Roughness:  material.G,
	})

	factor := p.shadowFactor(world)

	out := brdf.Scale(factor * p.Light.Intensity)
	return Write(out.WithAlpha(albedo.A))
}

// shadowFactor selects the cascade for the fragment's view-space depth and
// evaluates its visibility. Fragments beyond every cascade are fully lit.
func (p *DirectionalLightPass) shadowFactor(world math3d.Vec3) float64 {
	if !p.Light.Shadow.Enabled {
		return 1.0
	}

	viewPos := p.Frame.View.MulVec4(math3d.V4FromV3(world, 1))
	idx := p.Bindings.Cascades.Select(math.Abs(viewPos.Z))
	if idx < 0 || idx >= len(p.Bindings.CascadeMaps) {
		return 1.0
	}

	return shadow.Factor(
		p.Light.Shadow,
		world,
		p.Bindings.Cascades[idx].ViewProjection,
		p.Bindings.CascadeMaps[idx],
	)
}

// Render accumulates the pass additively into dst, one light per call.
func (p *DirectionalLightPass) Render(dst *gbuffer.ColorTarget) {
	RenderAccumulate(p, dst)
}

// RenderAccumulate runs a light over every pixel of dst, adding non-discarded
// fragments onto the existing contents.
func RenderAccumulate(l Light, dst *gbuffer.ColorTarget) {
	for y := range dst.Height {
		v := (float64(y) + 0.5) / float64(dst.Height)
		for x := range dst.Width {
			u := (float64(x) + 0.5) / float64(dst.Width)
			if frag := l.Shade(u, v); !frag.Discarded {
				dst.Accumulate(x, y, frag.Color)
			}
		}
	}
}

// PointLightPass is a placeholder for the point-light variant. It contributes
// nothing yet; it exists so the light dispatch has a seam to grow through.
type PointLightPass struct{}

// Shade implements Light. Point lights are not implemented and contribute
// nothing.
func (*PointLightPass) Shade(u, v float64) Fragment {
	return Discard()
}

// SpotLightPass is a placeholder for the spot-light variant.
type SpotLightPass struct{}

// Shade implements Light. Spot lights are not implemented and contribute
// nothing.
func (*SpotLightPass) Shade(u, v float64) Fragment {
	return Discard()
}
