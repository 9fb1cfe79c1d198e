package passes

import (
	"github.com/dusk3d/dusk/pkg/gbuffer"
	"github.com/dusk3d/dusk/pkg/shading"
)

// AmbientPass adds the constant ambient term: ambient color modulated by the
// sRGB-decoded albedo, optionally attenuated by an occlusion map.
type AmbientPass struct {
	AmbientColor shading.Color
	Albedo       *gbuffer.ColorTarget
	Occlusion    gbuffer.DepthSampler // optional, 1 = unoccluded
}

// Shade computes the ambient contribution for one pixel. Alpha is carried
// from the decoded albedo so blended surfaces keep their hint downstream.
func (p *AmbientPass) Shade(u, v float64) Fragment {
	albedo := shading.SRGBToLinear(p.Albedo.Sample(u, v))
	out := p.AmbientColor.Mul(albedo)
	if p.Occlusion != nil {
		out = out.Scale(p.Occlusion.SampleDepth(u, v))
	}
	return Write(out.WithAlpha(albedo.A))
}

// Render accumulates the ambient term additively into dst.
func (p *AmbientPass) Render(dst *gbuffer.ColorTarget) {
	RenderAccumulate(p, dst)
}
