package geometry

import (
	"math"

	"github.com/dusk3d/dusk/pkg/gbuffer"
	"github.com/dusk3d/dusk/pkg/math3d"
	"github.com/dusk3d/dusk/pkg/models"
	"github.com/dusk3d/dusk/pkg/shading"
)

// screenVertex holds a projected vertex and the attributes interpolated
// across the triangle.
type screenVertex struct {
	X, Y, Z, W float64
	Normal     math3d.Vec3
	UV         math3d.Vec2
}

// edgeCoeffs returns the A, B, C coefficients for the edge function
// edge(x,y) = A*x + B*y + C between two screen points.
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1 // dy
	B = x1 - x0 // -dx
	C = x0*y1 - x1*y0
	return
}

// edgeFunc evaluates an edge function at point (x, y).
func edgeFunc(A, B, C, x, y float64) float64 {
	return A*x + B*y + C
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

// GeometryPass rasterizes meshes into the G-buffer using incremental edge
// functions. Depth is stored in [0,1]; albedo stays sRGB-encoded; normals
// are packed; material carries metallic in R and roughness in G; the mask
// target takes the material's decal layer.
type GeometryPass struct {
	Target *gbuffer.GBuffer
	Camera *Camera

	DisableBackfaceCulling bool

	defaultMaterial models.Material
	texCache        map[*models.Material]*Texture
}

// NewGeometryPass creates a geometry pass writing into target.
func NewGeometryPass(target *gbuffer.GBuffer, cam *Camera) *GeometryPass {
	return &GeometryPass{
		Target:          target,
		Camera:          cam,
		defaultMaterial: models.DefaultMaterial(),
		texCache:        make(map[*models.Material]*Texture),
	}
}

// DrawMesh rasterizes a mesh under the given world transform.
func (p *GeometryPass) DrawMesh(mesh *models.Mesh, transform math3d.Mat4) {
	viewProj := p.Camera.ViewProjectionMatrix()

	for i := range mesh.TriangleCount() {
		face := mesh.GetFace(i)

		mat := mesh.GetMaterial(mesh.GetFaceMaterial(i))
		if mat == nil {
			mat = &p.defaultMaterial
		}

		var sv [3]screenVertex
		for j := range 3 {
			pos, normal, uvc := mesh.GetVertex(face[j])
			world := transform.MulVec3(pos)
			sv[j] = p.projectVertex(world, viewProj)
			sv[j].Normal = transform.MulVec3Dir(normal).Normalize()
			sv[j].UV = uvc
		}

		p.drawTriangle(sv, mat)
	}
}

// projectVertex takes a world position to screen space, keeping W for
// perspective-correct interpolation.
func (p *GeometryPass) projectVertex(world math3d.Vec3, viewProj math3d.Mat4) screenVertex {
	clip := viewProj.MulVec4(math3d.V4FromV3(world, 1))

	var sv screenVertex
	if clip.W != 0 {
		invW := 1.0 / clip.W
		sv.X = clip.X * invW
		sv.Y = clip.Y * invW
		sv.Z = clip.Z * invW
	}
	sv.W = clip.W

	w := float64(p.Target.Depth.Width)
	h := float64(p.Target.Depth.Height)
	sv.X = (sv.X + 1) * 0.5 * w
	sv.Y = (1 - sv.Y) * 0.5 * h // Y is flipped in screen space
	return sv
}

// drawTriangle rasterizes one screen-space triangle into every G-buffer
// target at once.
func (p *GeometryPass) drawTriangle(sv [3]screenVertex, mat *models.Material) {
	if sv[0].W <= 0 && sv[1].W <= 0 && sv[2].W <= 0 {
		return
	}

	// Backface culling: fronts are CW after the Y flip.
	edge1X := sv[1].X - sv[0].X
	edge1Y := sv[1].Y - sv[0].Y
	edge2X := sv[2].X - sv[0].X
	edge2Y := sv[2].Y - sv[0].Y
	cross := edge1X*edge2Y - edge1Y*edge2X
	if cross < 0 && !p.DisableBackfaceCulling {
		return
	}

	width := p.Target.Depth.Width
	height := p.Target.Depth.Height

	minX := int(math.Max(0, math.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(width-1), math.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(height-1), math.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))

	if minX > maxX || minY > maxY {
		return
	}

	// Edge 0: v1 -> v2, Edge 1: v2 -> v0, Edge 2: v0 -> v1
	A0, B0, C0 := edgeCoeffs(sv[1].X, sv[1].Y, sv[2].X, sv[2].Y)
	A1, B1, C1 := edgeCoeffs(sv[2].X, sv[2].Y, sv[0].X, sv[0].Y)
	A2, B2, C2 := edgeCoeffs(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y)

	area2 := cross // 2 * signed area
	if area2 == 0 {
		return
	}

	// With culling disabled, backfaces arrive with negative area; flip the
	// edge functions so the inside test still holds.
	sign := 1.0
	if area2 < 0 {
		sign = -1.0
	}
	invArea := sign / area2

	// Perspective-correct interpolation: precompute 1/W
	var invW [3]float64
	for i := range 3 {
		if sv[i].W != 0 {
			invW[i] = 1.0 / sv[i].W
		}
	}

	tex := p.texture(mat)
	matColor := shading.Color{R: mat.Metallic, G: mat.Roughness, A: 1}

	px := float64(minX) + 0.5
	py := float64(minY) + 0.5

	w0Row := edgeFunc(A0, B0, C0, px, py) * sign
	w1Row := edgeFunc(A1, B1, C1, px, py) * sign
	w2Row := edgeFunc(A2, B2, C2, px, py) * sign

	depth := p.Target.Depth

	for y := minY; y <= maxY; y++ {
		w0 := w0Row
		w1 := w1Row
		w2 := w2Row

		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				bc0 := w0 * invArea
				bc1 := w1 * invArea
				bc2 := w2 * invArea

				// NDC z in [-1,1] remaps to the stored [0,1] range.
				z := (bc0*sv[0].Z + bc1*sv[1].Z + bc2*sv[2].Z + 1) * 0.5

				if z >= 0 && z < depth.Load(x, y) {
					pw0 := bc0 * invW[0]
					pw1 := bc1 * invW[1]
					pw2 := bc2 * invW[2]
					oneOverW := pw0 + pw1 + pw2
					if oneOverW != 0 {
						invOneOverW := 1.0 / oneOverW

						normal := sv[0].Normal.Scale(pw0).
							Add(sv[1].Normal.Scale(pw1)).
							Add(sv[2].Normal.Scale(pw2)).
							Scale(invOneOverW).Normalize()

						albedo := mat.BaseColor
						if tex != nil {
							u := (pw0*sv[0].UV.X + pw1*sv[1].UV.X + pw2*sv[2].UV.X) * invOneOverW
							v := (pw0*sv[0].UV.Y + pw1*sv[1].UV.Y + pw2*sv[2].UV.Y) * invOneOverW
							albedo = tex.Sample(u, v).Mul(mat.BaseColor)
						}

						depth.Store(x, y, z)
						p.Target.Albedo.Store(x, y, albedo)
						p.Target.Normal.Store(x, y, gbuffer.EncodeNormal(normal))
						p.Target.Material.Store(x, y, matColor)
						p.Target.Mask.Store(x, y, mat.DecalLayer)
					}
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

// texture returns the cached sampler for a material's base map, or nil when
// the material is untextured.
func (p *GeometryPass) texture(mat *models.Material) *Texture {
	if !mat.HasTexture || mat.BaseMap == nil {
		return nil
	}
	if tex, ok := p.texCache[mat]; ok {
		return tex
	}
	tex := TextureFromImage(mat.BaseMap)
	p.texCache[mat] = tex
	return tex
}
