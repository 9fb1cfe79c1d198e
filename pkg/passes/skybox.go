package passes

import (
	"math"

	"github.com/dusk3d/dusk/pkg/gbuffer"
	"github.com/dusk3d/dusk/pkg/math3d"
	"github.com/dusk3d/dusk/pkg/shading"
)

// CubeFace indexes the six faces of a cubemap.
type CubeFace int

// Cubemap face order.
const (
	FacePosX CubeFace = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// Cubemap is six square color targets sampled by direction.
type Cubemap struct {
	Faces [6]*gbuffer.ColorTarget
}

// NewGradientCubemap builds a simple sky: zenith color above, horizon color
// at the equator, ground color below. Useful as a default and in tests.
func NewGradientCubemap(size int, zenith, horizon, ground shading.Color) *Cubemap {
	cm := &Cubemap{}
	for f := range cm.Faces {
		cm.Faces[f] = gbuffer.NewColorTarget(size, size)
	}
	for f := FacePosX; f <= FaceNegZ; f++ {
		face := cm.Faces[f]
		for y := range size {
			for x := range size {
				dir := faceDirection(f,
					(float64(x)+0.5)/float64(size),
					(float64(y)+0.5)/float64(size))
				t := dir.Y
				c := ground
				if t >= 0 {
					c = horizon.Lerp(zenith, t).WithAlpha(1)
				}
				face.Store(x, y, c)
			}
		}
	}
	return cm
}

// Sample returns the cubemap color in the given direction.
func (cm *Cubemap) Sample(dir math3d.Vec3) shading.Color {
	face, u, v := selectFace(dir)
	return cm.Faces[face].Sample(u, v)
}

// selectFace picks the dominant-axis face and its local UV for a direction.
func selectFace(d math3d.Vec3) (CubeFace, float64, float64) {
	ax, ay, az := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)

	var face CubeFace
	var u, v, ma float64
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if d.X > 0 {
			face, u, v = FacePosX, -d.Z, -d.Y
		} else {
			face, u, v = FaceNegX, d.Z, -d.Y
		}
	case ay >= az:
		ma = ay
		if d.Y > 0 {
			face, u, v = FacePosY, d.X, d.Z
		} else {
			face, u, v = FaceNegY, d.X, -d.Z
		}
	default:
		ma = az
		if d.Z > 0 {
			face, u, v = FacePosZ, d.X, -d.Y
		} else {
			face, u, v = FaceNegZ, -d.X, -d.Y
		}
	}
	if ma == 0 {
		return face, 0.5, 0.5
	}
	return face, (u/ma + 1) * 0.5, (v/ma + 1) * 0.5
}

// faceDirection is the inverse of selectFace: the world direction through a
// face texel at local (u, v).
func faceDirection(f CubeFace, u, v float64) math3d.Vec3 {
	uc := 2*u - 1
	vc := 2*v - 1
	var dir math3d.Vec3
	switch f {
	case FacePosX:
		dir = math3d.V3(1, -vc, -uc)
	case FaceNegX:
		dir = math3d.V3(-1, -vc, uc)
	case FacePosY:
		dir = math3d.V3(uc, 1, vc)
	case FaceNegY:
		dir = math3d.V3(uc, -1, -vc)
	case FacePosZ:
		dir = math3d.V3(uc, -vc, 1)
	default:
		dir = math3d.V3(-uc, -vc, -1)
	}
	return dir.Normalize()
}

// SkyboxPass fills the pixels the geometry pass left empty with the cubemap
// color along the camera ray.
type SkyboxPass struct {
	Frame FrameUniforms
	Sky   *Cubemap
	Depth gbuffer.DepthSampler
}

// Shade returns the sky color for background pixels and discards where
// geometry already covers the pixel.
func (p *SkyboxPass) Shade(u, v float64) Fragment {
	if p.Depth.SampleDepth(u, v) < 1 {
		return Discard()
	}
	far := shading.Unproject(math3d.V2(u, v), 1, p.Frame.InvViewProjection)
	dir := far.Sub(p.Frame.CameraPosition).Normalize()
	return Write(p.Sky.Sample(dir))
}

// Render writes the sky into the background pixels of dst.
func (p *SkyboxPass) Render(dst *gbuffer.ColorTarget) {
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
