// Package gbuffer provides the CPU-resident render targets of the deferred
// pipeline: float color targets, single-channel depth targets, and the decal
// mask layer. Sampling is nearest with clamp-to-edge, the border behavior the
// shading passes are specified against.
package gbuffer

import (
	"github.com/dusk3d/dusk/pkg/math3d"
	"github.com/dusk3d/dusk/pkg/shading"
)

// DepthSampler is the sampling surface the shadow code reads through.
// Tests substitute counting implementations to assert how many taps a
// configuration performs.
type DepthSampler interface {
	// SampleDepth returns the stored depth at the normalized coordinate
	// (u, v), clamped to the edge when outside [0,1].
	SampleDepth(u, v float64) float64
}

// ColorTarget is a 2D RGBA float target. Row-major pixel data.
type ColorTarget struct {
	Width  int
	Height int
	Pixels []shading.Color
}

// NewColorTarget creates a zeroed color target.
func NewColorTarget(width, height int) *ColorTarget {
	return &ColorTarget{
		Width:  width,
		Height: height,
		Pixels: make([]shading.Color, width*height),
	}
}

// Clear fills the target with a solid color.
func (t *ColorTarget) Clear(c shading.Color) {
	for i := range t.Pixels {
		t.Pixels[i] = c
	}
}

// Store writes the pixel at (x, y). Out-of-bounds writes are dropped.
func (t *ColorTarget) Store(x, y int, c shading.Color) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// Load returns the pixel at (x, y), or zero when out of bounds.
func (t *ColorTarget) Load(x, y int) shading.Color {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return shading.Color{}
	}
	return t.Pixels[y*t.Width+x]
}

// Accumulate adds c onto the pixel at (x, y), the additive compositing the
// per-light output targets use.
func (t *ColorTarget) Accumulate(x, y int, c shading.Color) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	i := y*t.Width + x
	p := t.Pixels[i]
	t.Pixels[i] = shading.Color{R: p.R + c.R, G: p.G + c.G, B: p.B + c.B, A: c.A}
}

// Sample returns the nearest pixel at the normalized coordinate (u, v),
// clamped to the edge.
func (t *ColorTarget) Sample(u, v float64) shading.Color {
	x, y := texelClamp(u, v, t.Width, t.Height)
	return t.Pixels[y*t.Width+x]
}

// DepthTarget is a 2D single-channel float target.
type DepthTarget struct {
	Width  int
	Height int
	Pixels []float64
}

// NewDepthTarget creates a depth target cleared to the given value.
func NewDepthTarget(width, height int, clear float64) *DepthTarget {
	t := &DepthTarget{
		Width:  width,
		Height: height,
		Pixels: make([]float64, width*height),
	}
	t.Clear(clear)
	return t
}

// Clear fills the target with the given depth.
func (t *DepthTarget) Clear(d float64) {
	for i := range t.Pixels {
		t.Pixels[i] = d
	}
}

// Store writes the depth at (x, y). Out-of-bounds writes are dropped.
func (t *DepthTarget) Store(x, y int, d float64) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = d
}

// Load returns the depth at (x, y), or the maximum depth when out of bounds.
func (t *DepthTarget) Load(x, y int) float64 {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return 1
	}
	return t.Pixels[y*t.Width+x]
}

// SampleDepth returns the nearest depth at (u, v), clamped to the edge.
// Implements DepthSampler.
func (t *DepthTarget) SampleDepth(u, v float64) float64 {
	x, y := texelClamp(u, v, t.Width, t.Height)
	return t.Pixels[y*t.Width+x]
}

// MaskTarget is a 2D layer-index target used for decal masking.
type MaskTarget struct {
	Width  int
	Height int
	Pixels []uint8
}

// NewMaskTarget creates a zeroed mask target.
func NewMaskTarget(width, height int) *MaskTarget {
	return &MaskTarget{
		Width:  width,
		Height: height,
		Pixels: make([]uint8, width*height),
	}
}

// Store writes the layer index at (x, y). Out-of-bounds writes are dropped.
func (t *MaskTarget) Store(x, y int, layer uint8) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = layer
}

// Sample returns the nearest layer index at (u, v), clamped to the edge.
func (t *MaskTarget) Sample(u, v float64) uint8 {
	x, y := texelClamp(u, v, t.Width, t.Height)
	return t.Pixels[y*t.Width+x]
}

// texelClamp converts a normalized coordinate to a texel index with
// clamp-to-edge addressing.
func texelClamp(u, v float64, width, height int) (int, int) {
	x := int(math3d.Clamp01(u) * float64(width))
	y := int(math3d.Clamp01(v) * float64(height))
	if x >= width {
		x = width - 1
	}
	if y >= height {
		y = height - 1
	}
	return x, y
}
