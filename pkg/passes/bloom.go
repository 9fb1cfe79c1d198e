package passes

import (
	"github.com/dusk3d/dusk/pkg/gbuffer"
	"github.com/dusk3d/dusk/pkg/shading"
)

// BloomThreshold is the luminance above which a pixel feeds the bloom chain.
// The comparison is strictly greater-than: luminance of exactly 1.0 does not
// bloom.
const BloomThreshold = 1.0

// BloomPass extracts the bright portion of an HDR target.
type BloomPass struct {
	Source *gbuffer.ColorTarget
}

// Shade passes the pixel through when its perceptual luminance exceeds the
// threshold and emits black otherwise.
func (p *BloomPass) Shade(u, v float64) Fragment {
	c := p.Source.Sample(u, v)
	if c.Luminance() > BloomThreshold {
		return Write(c)
	}
	return Write(shading.Color{A: c.A})
}

// Render writes the bright-pass output into dst.
func (p *BloomPass) Render(dst *gbuffer.ColorTarget) {
	for y := range dst.Height {
		v := (float64(y) + 0.5) / float64(dst.Height)
		for x := range dst.Width {
			u := (float64(x) + 0.5) / float64(dst.Width)
			dst.Store(x, y, p.Shade(u, v).Color)
		}
	}
}

// LuminanceSampler adapts a color target to the single-channel sampling
// surface the blur pass consumes, reading perceptual luminance per tap.
type LuminanceSampler struct {
	Source *gbuffer.ColorTarget
}

// SampleDepth returns the luminance of the source pixel at (u, v).
func (s LuminanceSampler) SampleDepth(u, v float64) float64 {
	return s.Source.Sample(u, v).Luminance()
}
