package passes

import (
	"github.com/dusk3d/dusk/pkg/gbuffer"
	"github.com/dusk3d/dusk/pkg/shading"
)

// FlatColorPass writes a constant color wherever geometry exists. It is the
// debug draw used to visualize coverage without lighting.
type FlatColorPass struct {
	Color shading.Color
	Depth gbuffer.DepthSampler
}

// Shade returns the flat color for covered pixels and discards background.
func (p *FlatColorPass) Shade(u, v float64) Fragment {
	if p.Depth.SampleDepth(u, v) >= 1 {
		return Discard()
	}
	return Write(p.Color)
}

// Render overwrites the covered pixels of dst with the flat color.
func (p *FlatColorPass) Render(dst *gbuffer.ColorTarget) {
	for y := range dst.Height {
		v := (float64(y) + 0.5) / float64(dst.Height)
		for x := range dst.Width {
			u := (float64(x) + 0.5) / float64(dst.Width)
			if frag := p.Shade(u, v); !frag.Discarded {
				dst.Store(x, y, frag.Color)
			}
		}
	}
}
