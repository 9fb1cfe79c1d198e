package shading

import "github.com/dusk3d/dusk/pkg/math3d"

// ShadowAtlasScale is the sub-range the cascade shadow maps are packed into.
// ProjectShadow emits coordinates in [0, ShadowAtlasScale] and the cascade
// depth writer stores depths under the same convention, so the two sides of
// the shadow comparison always agree.
const ShadowAtlasScale = 0.25

// Unproject maps a normalized screen coordinate and depth in [0,1] back to a
// world-space position using the inverse view-projection matrix. V grows
// downward like pixel rows, so it maps to clip Y with a flip; this matches
// the Y flip the rasterizer applies when it goes from NDC to screen.
// A w of exactly zero (depth at the degenerate clip plane) yields the zero
// vector rather than infinities; the caller tolerates the bad pixel.
func Unproject(uv math3d.Vec2, depth float64, invViewProj math3d.Mat4) math3d.Vec3 {
	clip := math3d.V4(2*uv.X-1, 1-2*uv.Y, 2*depth-1, 1)
	world := invViewProj.MulVec4(clip)
	if world.W == 0 {
		return math3d.Zero3()
	}
	return world.PerspectiveDivide()
}

// Project maps a world-space position through a view-projection matrix and
// remaps the clip-space result from [-1,1] to [0,1] per component, flipping
// Y into the downward screen convention. It is the exact inverse of
// Unproject for any invertible matrix.
func Project(world math3d.Vec3, viewProj math3d.Mat4) math3d.Vec3 {
	clip := viewProj.MulVec4(math3d.V4FromV3(world, 1))
	ndc := clip.PerspectiveDivide()
	return math3d.V3(ndc.X*0.5+0.5, 0.5-ndc.Y*0.5, ndc.Z*0.5+0.5)
}

// ProjectShadow projects a world-space position into a cascade's light space,
// scaled into the [0, ShadowAtlasScale] sub-range the stored cascade textures
// use. The scale is an atlas-packing convention, not a normalization.
func ProjectShadow(world math3d.Vec3, lightViewProj math3d.Mat4) math3d.Vec3 {
	return Project(world, lightViewProj).Scale(ShadowAtlasScale)
}
