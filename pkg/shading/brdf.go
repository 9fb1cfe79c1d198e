package shading

import (
	"math"

	"github.com/dusk3d/dusk/pkg/math3d"
)

// MinRoughness keeps the GGX distribution away from its singularity at
// roughness 0.
const MinRoughness = 1e-3

// specularEpsilon guards the specular denominator at grazing angles.
const specularEpsilon = 0.001

// dielectricF0 is the base reflectance of a non-metallic surface.
var dielectricF0 = math3d.V3(0.04, 0.04, 0.04)

// Context carries everything the BRDF needs for one pixel. Normal, View and
// Light must be unit length; violating that biases every dot-product term.
type Context struct {
	Albedo     Color       // linear, alpha carried through to the pass output
	Normal     math3d.Vec3 // world space, unit
	View       math3d.Vec3 // surface -> camera, unit
	Light      math3d.Vec3 // surface -> light, unit
	LightColor Color
	Metallic   float64 // [0,1]
	Roughness  float64 // (0,1], clamped by EvaluateDirectLight
}

// EvaluateDirectLight computes the outgoing radiance contribution of one
// directional light using a Cook-Torrance microfacet specular term (GGX
// distribution, Smith geometric attenuation, Schlick Fresnel) plus a
// Lambertian diffuse term. All dot products are clamped at zero.
func EvaluateDirectLight(ctx Context) Color {
	roughness := math3d.Clamp(ctx.Roughness, MinRoughness, 1)

	albedo := math3d.V3(ctx.Albedo.R, ctx.Albedo.G, ctx.Albedo.B)
	f0 := dielectricF0.Lerp(albedo, ctx.Metallic)

	h := ctx.View.Add(ctx.Light).Normalize()

	ndotv := ctx.Normal.DotClamped(ctx.View)
	ndotl := ctx.Normal.DotClamped(ctx.Light)
	ndoth := ctx.Normal.DotClamped(h)
	hdotv := h.DotClamped(ctx.View)

	d := distributionGGX(ndoth, roughness)
	g := geometrySmith(ndotv, ndotl, roughness)
	f := fresnelSchlick(hdotv, f0)

	denom := 4*ndotv*ndotl + specularEpsilon
	specular := f.Scale(d * g / denom)

	// Energy split: whatever the Fresnel term reflects is unavailable to the
	// diffuse lobe, and metals have no diffuse response at all.
	kd := math3d.V3(1-f.X, 1-f.Y, 1-f.Z).Scale(1 - ctx.Metallic)
	diffuse := kd.Mul(albedo).Scale(1 / math.Pi)

	out := diffuse.Add(specular).Scale(ndotl)
	return Color{
		R: out.X * ctx.LightColor.R,
		G: out.Y * ctx.LightColor.G,
		B: out.Z * ctx.LightColor.B,
		A: ctx.Albedo.A,
	}
}

// distributionGGX is the Trowbridge-Reitz normal distribution function with
// a = roughness².
func distributionGGX(ndoth, roughness float64) float64 {
	a := roughness * roughness
	a2 := a * a
	denom := ndoth*ndoth*(a2-1) + 1
	return a2 / (math.Pi * denom * denom)
}

// geometrySmith combines Schlick-GGX attenuation for the view and light
// directions with k = (roughness+1)²/8.
func geometrySmith(ndotv, ndotl, roughness float64) float64 {
	k := (roughness + 1) * (roughness + 1) / 8
	return schlickGGX(ndotv, k) * schlickGGX(ndotl, k)
}

func schlickGGX(ndotx, k float64) float64 {
	return ndotx / (ndotx*(1-k) + k)
}

// fresnelSchlick is the Schlick approximation of the Fresnel reflectance.
func fresnelSchlick(cosTheta float64, f0 math3d.Vec3) math3d.Vec3 {
	t := math.Pow(1-cosTheta, 5)
	return math3d.V3(
		f0.X+(1-f0.X)*t,
		f0.Y+(1-f0.Y)*t,
		f0.Z+(1-f0.Z)*t,
	)
}
