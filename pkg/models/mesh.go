// Package models provides mesh loading and representation for the deferred
// pipeline, including the PBR material attributes the G-buffer carries.
package models

import (
	"image"

	"github.com/dusk3d/dusk/pkg/math3d"
	"github.com/dusk3d/dusk/pkg/shading"
)

// Mesh represents a 3D mesh with vertices, faces, and materials.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face represents a triangle face with vertex indices and material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material holds the PBR attributes the geometry pass writes into the
// G-buffer. BaseColor is stored sRGB-encoded; the lighting passes linearize
// it when they sample the albedo target.
type Material struct {
	Name       string
	BaseColor  shading.Color // sRGB base color factor
	Metallic   float64       // 0 = dielectric, 1 = metal
	Roughness  float64       // 0 = smooth, 1 = rough
	DecalLayer uint8         // decal mask layer this surface belongs to
	BaseMap    image.Image   // Optional base color texture
	HasTexture bool
}

// DefaultMaterial is the material applied to faces with no assignment:
// white, fully rough dielectric on decal layer 0.
func DefaultMaterial() Material {
	return Material{
		Name:      "default",
		BaseColor: shading.RGB(1, 1, 1),
		Metallic:  0,
		Roughness: 1,
	}
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Vertices:  make([]MeshVertex, 0),
		Faces:     make([]Face, 0),
		BoundsMin: math3d.V3(0, 0, 0),
		BoundsMax: math3d.V3(0, 0, 0),
	}
}

// cubeFaceDefs drives NewCubeMesh: per face a normal and the four corners
// in CCW order when viewed from outside. Triangle emission reverses the
// winding because fronts are CW in screen space after the Y flip.
var cubeFaceDefs = [6]struct {
	normal  math3d.Vec3
	corners [4]math3d.Vec3
}{
	{math3d.V3(0, 0, 1), [4]math3d.Vec3{math3d.V3(-0.5, -0.5, 0.5), math3d.V3(0.5, -0.5, 0.5), math3d.V3(0.5, 0.5, 0.5), math3d.V3(-0.5, 0.5, 0.5)}},
	{math3d.V3(0, 0, -1), [4]math3d.Vec3{math3d.V3(0.5, -0.5, -0.5), math3d.V3(-0.5, -0.5, -0.5), math3d.V3(-0.5, 0.5, -0.5), math3d.V3(0.5, 0.5, -0.5)}},
	{math3d.V3(1, 0, 0), [4]math3d.Vec3{math3d.V3(0.5, -0.5, 0.5), math3d.V3(0.5, -0.5, -0.5), math3d.V3(0.5, 0.5, -0.5), math3d.V3(0.5, 0.5, 0.5)}},
	{math3d.V3(-1, 0, 0), [4]math3d.Vec3{math3d.V3(-0.5, -0.5, -0.5), math3d.V3(-0.5, -0.5, 0.5), math3d.V3(-0.5, 0.5, 0.5), math3d.V3(-0.5, 0.5, -0.5)}},
	{math3d.V3(0, 1, 0), [4]math3d.Vec3{math3d.V3(-0.5, 0.5, 0.5), math3d.V3(0.5, 0.5, 0.5), math3d.V3(0.5, 0.5, -0.5), math3d.V3(-0.5, 0.5, -0.5)}},
	{math3d.V3(0, -1, 0), [4]math3d.Vec3{math3d.V3(-0.5, -0.5, -0.5), math3d.V3(0.5, -0.5, -0.5), math3d.V3(0.5, -0.5, 0.5), math3d.V3(-0.5, -0.5, 0.5)}},
}

// NewCubeMesh creates a unit cube centered at the origin with the given
// material. Faces are flat shaded.
func NewCubeMesh(mat Material) *Mesh {
	m := NewMesh("cube")
	m.Materials = []Material{mat}

	uvs := [4]math3d.Vec2{math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(1, 1), math3d.V2(0, 1)}
	for _, f := range cubeFaceDefs {
		base := len(m.Vertices)
		for i, c := range f.corners {
			m.Vertices = append(m.Vertices, MeshVertex{Position: c, Normal: f.normal, UV: uvs[i]})
		}
		m.Faces = append(m.Faces,
			Face{V: [3]int{base, base + 2, base + 1}, Material: 0},
			Face{V: [3]int{base, base + 3, base + 2}, Material: 0},
		)
	}

	m.CalculateBounds()
	return m
}

// NewPlaneMesh creates a flat XZ plane of the given extent centered at the
// origin, facing +Y.
func NewPlaneMesh(extent float64, mat Material) *Mesh {
	m := NewMesh("plane")
	m.Materials = []Material{mat}

	h := extent * 0.5
	up := math3d.Up()
	m.Vertices = []MeshVertex{
		{Position: math3d.V3(-h, 0, h), Normal: up, UV: math3d.V2(0, 0)},
		{Position: math3d.V3(h, 0, h), Normal: up, UV: math3d.V2(1, 0)},
		{Position: math3d.V3(h, 0, -h), Normal: up, UV: math3d.V2(1, 1)},
		{Position: math3d.V3(-h, 0, -h), Normal: up, UV: math3d.V2(0, 1)},
	}
	m.Faces = []Face{
		{V: [3]int{0, 2, 1}, Material: 0},
		{V: [3]int{0, 3, 2}, Material: 0},
	}

	m.CalculateBounds()
	return m
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// CalculateNormals computes face normals and assigns them to vertices.
// This is a simple flat-shading approach; for smooth shading, normals
// should be averaged per-vertex.
func (m *Mesh) CalculateNormals() {
	for i := range m.Faces {
		f := &m.Faces[i]
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		edge1 := v1.Sub(v0)
		edge2 := v2.Sub(v0)
		normal := edge1.Cross(edge2).Normalize()

		m.Vertices[f.V[0]].Normal = normal
		m.Vertices[f.V[1]].Normal = normal
		m.Vertices[f.V[2]].Normal = normal
	}
}

// CalculateSmoothNormals computes averaged normals for smooth shading.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	// Accumulate unnormalized face normals so larger faces weigh more.
	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		edge1 := v1.Sub(v0)
		edge2 := v2.Sub(v0)
		normal := edge1.Cross(edge2)

		m.Vertices[f.V[0]].Normal = m.Vertices[f.V[0]].Normal.Add(normal)
		m.Vertices[f.V[1]].Normal = m.Vertices[f.V[1]].Normal.Add(normal)
		m.Vertices[f.V[2]].Normal = m.Vertices[f.V[2]].Normal.Add(normal)
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		// Directions use the rotation part only. Non-uniform scale would
		// need the inverse transpose here.
		m.Vertices[i].Normal = mat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]MeshVertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: make([]Material, len(m.Materials)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Materials, m.Materials)
	return clone
}

// GetVertex returns the position, normal, and UV for vertex i.
func (m *Mesh) GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	v := m.Vertices[i]
	return v.Position, v.Normal, v.UV
}

// GetFace returns the vertex indices for face i.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}

// GetFaceMaterial returns the material index for face i.
// Returns -1 if no material assigned.
func (m *Mesh) GetFaceMaterial(i int) int {
	return m.Faces[i].Material
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}
