package geometry

import (
	"math"

	"github.com/dusk3d/dusk/pkg/gbuffer"
	"github.com/dusk3d/dusk/pkg/math3d"
	"github.com/dusk3d/dusk/pkg/models"
	"github.com/dusk3d/dusk/pkg/shading"
)

// ShadowCasterPass renders depth-only geometry into one cascade's map. It
// writes through the same atlas remap the shadow sampler reads through, so
// stored and compared depths share a single convention. Both windings write
// depth; shadow casting never culls backfaces.
type ShadowCasterPass struct {
	Target         *gbuffer.DepthTarget
	ViewProjection math3d.Mat4
}

// NewShadowCasterPass creates a caster pass for one cascade.
func NewShadowCasterPass(target *gbuffer.DepthTarget, lightViewProj math3d.Mat4) *ShadowCasterPass {
	return &ShadowCasterPass{Target: target, ViewProjection: lightViewProj}
}

// Clear resets the map to the far plane.
func (p *ShadowCasterPass) Clear() {
	p.Target.Clear(1)
}

// DrawMesh rasterizes a mesh's depth under the given world transform.
func (p *ShadowCasterPass) DrawMesh(mesh *models.Mesh, transform math3d.Mat4) {
	for i := range mesh.TriangleCount() {
		face := mesh.GetFace(i)

		var pts [3]math3d.Vec3
		for j := range 3 {
			pos, _, _ := mesh.GetVertex(face[j])
			world := transform.MulVec3(pos)
			pts[j] = shading.ProjectShadow(world, p.ViewProjection)
		}

		p.drawTriangle(pts)
	}
}

// drawTriangle rasterizes one light-space triangle, keeping the nearest
// depth per texel. Coordinates arrive already remapped to atlas UV space.
func (p *ShadowCasterPass) drawTriangle(pts [3]math3d.Vec3) {
	w := float64(p.Target.Width)
	h := float64(p.Target.Height)

	var sx, sy, sz [3]float64
	for i := range 3 {
		sx[i] = pts[i].X * w
		sy[i] = pts[i].Y * h
		sz[i] = pts[i].Z
	}

	// Accept both windings: flip the edge functions when the signed area
	// comes out negative.
	area2 := (sx[1]-sx[0])*(sy[2]-sy[0]) - (sy[1]-sy[0])*(sx[2]-sx[0])
	if area2 == 0 {
		return
	}
	sign := 1.0
	if area2 < 0 {
		sign = -1.0
	}
	invArea := sign / area2

	minX := int(math.Max(0, math.Floor(min3(sx[0], sx[1], sx[2]))))
	maxX := int(math.Min(w-1, math.Ceil(max3(sx[0], sx[1], sx[2]))))
	minY := int(math.Max(0, math.Floor(min3(sy[0], sy[1], sy[2]))))
	maxY := int(math.Min(h-1, math.Ceil(max3(sy[0], sy[1], sy[2]))))

	if minX > maxX || minY > maxY {
		return
	}

	A0, B0, C0 := edgeCoeffs(sx[1], sy[1], sx[2], sy[2])
	A1, B1, C1 := edgeCoeffs(sx[2], sy[2], sx[0], sy[0])
	A2, B2, C2 := edgeCoeffs(sx[0], sy[0], sx[1], sy[1])

	px := float64(minX) + 0.5
	py := float64(minY) + 0.5

	w0Row := edgeFunc(A0, B0, C0, px, py) * sign
	w1Row := edgeFunc(A1, B1, C1, px, py) * sign
	w2Row := edgeFunc(A2, B2, C2, px, py) * sign

	for y := minY; y <= maxY; y++ {
		w0 := w0Row
		w1 := w1Row
		w2 := w2Row

		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				bc0 := w0 * invArea
				bc1 := w1 * invArea
				bc2 := w2 * invArea

				z := bc0*sz[0] + bc1*sz[1] + bc2*sz[2]
				if z >= 0 && z < p.Target.Load(x, y) {
					p.Target.Store(x, y, z)
				}
			}

			w0 += A0 * sign
			w1 += A1 * sign
			w2 += A2 * sign
		}

		w0Row += B0 * sign
		w1Row += B1 * sign
		w2Row += B2 * sign
	}
}
