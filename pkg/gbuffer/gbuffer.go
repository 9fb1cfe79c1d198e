package gbuffer

import (
	"github.com/dusk3d/dusk/pkg/math3d"
	"github.com/dusk3d/dusk/pkg/shading"
)

// GBuffer aggregates the per-pixel targets the geometry pass produces and the
// lighting passes consume read-only:
//
//	Depth:    post-projection depth in [0,1]
//	Albedo:   sRGB-encoded base color, alpha carried through lighting
//	Normal:   world-space normal packed into [0,1] per channel
//	Material: R = metallic, G = roughness
//	Mask:     decal layer index
type GBuffer struct {
	Depth    *DepthTarget
	Albedo   *ColorTarget
	Normal   *ColorTarget
	Material *ColorTarget
	Mask     *MaskTarget
}

// New creates a G-buffer with all targets allocated at the given size.
// Depth clears to 1 (far plane).
func New(width, height int) *GBuffer {
	return &GBuffer{
		Depth:    NewDepthTarget(width, height, 1),
		Albedo:   NewColorTarget(width, height),
		Normal:   NewColorTarget(width, height),
		Material: NewColorTarget(width, height),
		Mask:     NewMaskTarget(width, height),
	}
}

// Clear resets every target for a new frame.
func (g *GBuffer) Clear() {
	g.Depth.Clear(1)
	g.Albedo.Clear(shading.Color{})
	g.Normal.Clear(shading.Color{})
	g.Material.Clear(shading.Color{})
	for i := range g.Mask.Pixels {
		g.Mask.Pixels[i] = 0
	}
}

// EncodeNormal packs a unit world-space normal into [0,1] per channel.
func EncodeNormal(n math3d.Vec3) shading.Color {
	return shading.Color{
		R: n.X*0.5 + 0.5,
		G: n.Y*0.5 + 0.5,
		B: n.Z*0.5 + 0.5,
		A: 1,
	}
}

// DecodeNormal unpacks a [0,1]-encoded normal back to a unit vector.
// Renormalization absorbs the quantization the packing introduces.
func DecodeNormal(c shading.Color) math3d.Vec3 {
	return math3d.V3(2*c.R-1, 2*c.G-1, 2*c.B-1).Normalize()
}
