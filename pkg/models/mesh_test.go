package models

import (
	"math"
	"testing"

	"github.com/dusk3d/dusk/pkg/math3d"
	"github.com/dusk3d/dusk/pkg/shading"
)

func TestNewCubeMesh(t *testing.T) {
	mat := DefaultMaterial()
	m := NewCubeMesh(mat)

	if m.VertexCount() != 24 {
		t.Errorf("cube vertices = %v, want 24", m.VertexCount())
	}
	if m.TriangleCount() != 12 {
		t.Errorf("cube triangles = %v, want 12", m.TriangleCount())
	}
	if len(m.Materials) != 1 {
		t.Errorf("cube materials = %v, want 1", len(m.Materials))
	}

	if m.BoundsMin != math3d.V3(-0.5, -0.5, -0.5) || m.BoundsMax != math3d.V3(0.5, 0.5, 0.5) {
		t.Errorf("cube bounds = %v..%v, want unit cube", m.BoundsMin, m.BoundsMax)
	}
	if m.Center() != math3d.Zero3() {
		t.Errorf("cube center = %v, want origin", m.Center())
	}

	// Every vertex normal is axis-aligned and unit.
	for i, v := range m.Vertices {
		if math.Abs(v.Normal.Len()-1) > 1e-12 {
			t.Fatalf("vertex %d normal not unit: %v", i, v.Normal)
		}
	}
}

func TestCubeWindingMatchesNormals(t *testing.T) {
	// Triangle winding reverses the CCW corner order, so the geometric
	// cross product points opposite the stored outward normal.
	m := NewCubeMesh(DefaultMaterial())

	for i, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position
		geo := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
		stored := m.Vertices[f.V[0]].Normal

		if geo.Dot(stored) > -0.999 {
			t.Errorf("face %d winding normal %v not opposite stored %v", i, geo, stored)
		}
	}
}

func TestNewPlaneMesh(t *testing.T) {
	m := NewPlaneMesh(10, DefaultMaterial())

	if m.VertexCount() != 4 || m.TriangleCount() != 2 {
		t.Fatalf("plane shape = %v verts / %v tris", m.VertexCount(), m.TriangleCount())
	}

	if m.BoundsMin != math3d.V3(-5, 0, -5) || m.BoundsMax != math3d.V3(5, 0, 5) {
		t.Errorf("plane bounds = %v..%v", m.BoundsMin, m.BoundsMax)
	}

	for i, v := range m.Vertices {
		if v.Normal != math3d.Up() {
			t.Errorf("plane vertex %d normal = %v, want up", i, v.Normal)
		}
	}
}

func TestFaceMaterialLookup(t *testing.T) {
	m := NewMesh("test")
	m.Materials = []Material{
		{Name: "red", BaseColor: shading.RGB(1, 0, 0), Roughness: 0.4},
		{Name: "metal", BaseColor: shading.RGB(0.9, 0.9, 0.9), Metallic: 1, Roughness: 0.1, DecalLayer: 3},
	}
	m.Vertices = []MeshVertex{
		{Position: math3d.V3(0, 0, 0)},
		{Position: math3d.V3(1, 0, 0)},
		{Position: math3d.V3(0, 1, 0)},
	}
	m.Faces = []Face{
		{V: [3]int{0, 1, 2}, Material: 1},
		{V: [3]int{0, 2, 1}, Material: -1},
	}

	if got := m.GetFaceMaterial(0); got != 1 {
		t.Errorf("face 0 material index = %v, want 1", got)
	}
	if got := m.GetFaceMaterial(1); got != -1 {
		t.Errorf("face 1 material index = %v, want -1", got)
	}

	mat := m.GetMaterial(1)
	if mat == nil || mat.Name != "metal" {
		t.Fatalf("GetMaterial(1) = %v, want the metal material", mat)
	}
	if mat.Metallic != 1 || mat.Roughness != 0.1 || mat.DecalLayer != 3 {
		t.Errorf("metal attributes wrong: %+v", mat)
	}

	if m.GetMaterial(-1) != nil {
		t.Error("GetMaterial(-1) should be nil")
	}
	if m.GetMaterial(2) != nil {
		t.Error("out-of-range GetMaterial should be nil")
	}
}

func TestDefaultMaterial(t *testing.T) {
	mat := DefaultMaterial()
	if mat.BaseColor != shading.RGB(1, 1, 1) {
		t.Errorf("default base color = %v, want white", mat.BaseColor)
	}
	if mat.Metallic != 0 || mat.Roughness != 1 {
		t.Errorf("default material = metallic %v roughness %v, want rough dielectric", mat.Metallic, mat.Roughness)
	}
	if mat.DecalLayer != 0 || mat.HasTexture {
		t.Errorf("default material carries unexpected extras: %+v", mat)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := NewCubeMesh(DefaultMaterial())
	c := m.Clone()

	c.Vertices[0].Position = math3d.V3(100, 0, 0)
	c.Materials[0].Metallic = 1
	c.Faces[0].Material = -1

	if m.Vertices[0].Position == math3d.V3(100, 0, 0) {
		t.Error("clone shares vertex storage")
	}
	if m.Materials[0].Metallic == 1 {
		t.Error("clone shares material storage")
	}
	if m.Faces[0].Material == -1 {
		t.Error("clone shares face storage")
	}
}

func TestTransform(t *testing.T) {
	m := NewPlaneMesh(2, DefaultMaterial())
	m.Transform(math3d.Translate(math3d.V3(0, 3, 0)))

	if m.BoundsMin != math3d.V3(-1, 3, -1) || m.BoundsMax != math3d.V3(1, 3, 1) {
		t.Errorf("translated bounds = %v..%v", m.BoundsMin, m.BoundsMax)
	}
	if m.Vertices[0].Normal != math3d.Up() {
		t.Errorf("translation changed a normal: %v", m.Vertices[0].Normal)
	}

	m.Transform(math3d.RotateX(math.Pi / 2))
	n := m.Vertices[0].Normal
	if n.Sub(math3d.V3(0, 0, 1)).Len() > 1e-9 && n.Sub(math3d.V3(0, 0, -1)).Len() > 1e-9 {
		t.Errorf("rotated normal = %v, want along Z", n)
	}
}

func TestCalculateSmoothNormals(t *testing.T) {
	// Two triangles sharing an edge, one in XY and one tilted: the shared
	// vertices get an averaged normal.
	m := NewMesh("wedge")
	m.Vertices = []MeshVertex{
		{Position: math3d.V3(0, 0, 0)},
		{Position: math3d.V3(1, 0, 0)},
		{Position: math3d.V3(0, 1, 0)},
		{Position: math3d.V3(1, 1, 1)},
	}
	m.Faces = []Face{
		{V: [3]int{0, 1, 2}},
		{V: [3]int{1, 3, 2}},
	}

	m.CalculateSmoothNormals()

	for i, v := range m.Vertices {
		if math.Abs(v.Normal.Len()-1) > 1e-12 {
			t.Errorf("vertex %d smooth normal not unit: %v", i, v.Normal)
		}
	}

	flatOnly := m.Vertices[0].Normal
	shared := m.Vertices[1].Normal
	if flatOnly.Sub(shared).Len() < 1e-9 {
		t.Error("shared vertex normal should differ from the single-face vertex")
	}
}
