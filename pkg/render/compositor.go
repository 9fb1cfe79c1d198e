package render

import (
	"image/color"
	"math"

	"github.com/dusk3d/dusk/pkg/gbuffer"
	"github.com/dusk3d/dusk/pkg/shading"
)

// Compositor resolves the HDR lighting output into the 8-bit framebuffer:
// add the blurred bloom contribution, tone-map, encode to sRGB, quantize.
type Compositor struct {
	// Exposure scales the HDR input before tone mapping. 1 is neutral.
	Exposure float64
	// BloomStrength scales the blurred bloom luminance added back on top.
	// Zero disables the bloom term entirely.
	BloomStrength float64
	// BloomTint colors the bloom contribution. White by default.
	BloomTint shading.Color
}

// NewCompositor creates a compositor with neutral settings.
func NewCompositor() *Compositor {
	return &Compositor{
		Exposure:      1,
		BloomStrength: 0,
		BloomTint:     shading.RGB(1, 1, 1),
	}
}

// Resolve tone-maps hdr (plus the optional blurred bloom channel) into fb.
// bloom may be nil. All targets must share the framebuffer's dimensions.
func (c *Compositor) Resolve(hdr *gbuffer.ColorTarget, bloom *gbuffer.DepthTarget, fb *Framebuffer) {
	for y := range fb.Height {
		v := (float64(y) + 0.5) / float64(fb.Height)
		for x := range fb.Width {
			u := (float64(x) + 0.5) / float64(fb.Width)

			px := hdr.Sample(u, v).Scale(c.Exposure)
			if bloom != nil && c.BloomStrength > 0 {
				glow := bloom.SampleDepth(u, v) * c.BloomStrength
				px = px.Add(c.BloomTint.Scale(glow))
			}

			fb.SetPixel(x, y, encodePixel(px))
		}
	}
}

// encodePixel tone-maps one linear HDR color and packs it to 8-bit sRGB.
func encodePixel(c shading.Color) color.RGBA {
	mapped := shading.Color{
		R: reinhard(c.R),
		G: reinhard(c.G),
		B: reinhard(c.B),
		A: 1,
	}
	srgb := shading.LinearToSRGB(mapped)
	return color.RGBA{
		R: quantize(srgb.R),
		G: quantize(srgb.G),
		B: quantize(srgb.B),
		A: 255,
	}
}

// reinhard compresses an HDR channel into [0,1).
func reinhard(c float64) float64 {
	if c <= 0 {
		return 0
	}
	return c / (1 + c)
}

// quantize converts a [0,1] channel to a display byte.
func quantize(c float64) uint8 {
	return uint8(math.Round(math.Min(1, math.Max(0, c)) * 255))
}
