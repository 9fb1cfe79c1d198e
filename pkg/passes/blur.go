package passes

import "github.com/dusk3d/dusk/pkg/gbuffer"

// blurGrid holds the centered 4x4 tap offsets, in texels, step 1.
var blurGrid = [4]float64{-1.5, -0.5, 0.5, 1.5}

// BlurPass is a single-channel 16-tap box blur over a 4x4 offset grid.
// Run once per axis-agnostic pass; the kernel is small enough that
// separability buys nothing here.
type BlurPass struct {
	Source    gbuffer.DepthSampler
	TexelSize float64 // 1 / source resolution
}

// Shade averages the 16 taps around (u, v).
func (p *BlurPass) Shade(u, v float64) float64 {
	var sum float64
	for _, dy := range blurGrid {
		for _, dx := range blurGrid {
			sum += p.Source.SampleDepth(u+dx*p.TexelSize, v+dy*p.TexelSize)
		}
	}
	return sum / 16
}

// Render writes the blurred channel into dst.
func (p *BlurPass) Render(dst *gbuffer.DepthTarget) {
	for y := range dst.Height {
		v := (float64(y) + 0.5) / float64(dst.Height)
		for x := range dst.Width {
			u := (float64(x) + 0.5) / float64(dst.Width)
			dst.Store(x, y, p.Shade(u, v))
		}
	}
}
