package shading

import (
	"math"
	"testing"

	"github.com/dusk3d/dusk/pkg/math3d"
)

// baseContext is a head-on white light on a white, fully rough dielectric.
func baseContext() Context {
	return Context{
		Albedo:     RGB(1, 1, 1),
		Normal:     math3d.V3(0, 0, 1),
		View:       math3d.V3(0, 0, 1),
		Light:      math3d.V3(0, 0, 1),
		LightColor: RGB(1, 1, 1),
		Metallic:   0,
		Roughness:  1,
	}
}

func TestEvaluateDirectLight_LambertianReference(t *testing.T) {
	// A fully rough dielectric lit head-on lands near the Lambertian value
	// 1/pi: the diffuse lobe carries (1-F0)/pi and the specular term stays
	// small.
	got := EvaluateDirectLight(baseContext())
	want := 1 / math.Pi
	if math.Abs(got.R-want) > 0.02 {
		t.Errorf("head-on rough dielectric = %v, want about %v", got.R, want)
	}
	if got.R != got.G || got.G != got.B {
		t.Errorf("white albedo and light should stay achromatic, got %v", got)
	}
}

func TestEvaluateDirectLight_BackfaceIsBlack(t *testing.T) {
	ctx := baseContext()
	ctx.Light = math3d.V3(0, 0, -1)

	got := EvaluateDirectLight(ctx)
	if got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("light behind the surface should contribute nothing, got %v", got)
	}
}

func TestEvaluateDirectLight_MetalHasNoDiffuse(t *testing.T) {
	// Tilt the light away from the view so the half vector misses the
	// normal and the specular lobe is small; a pure metal should then be
	// much darker than the equivalent dielectric.
	light := math3d.V3(0, 1, 0.3).Normalize()

	dielectric := baseContext()
	dielectric.Light = light

	metal := baseContext()
	metal.Light = light
	metal.Metallic = 1

	d := EvaluateDirectLight(dielectric)
	m := EvaluateDirectLight(metal)
	if m.R >= d.R {
		t.Errorf("metal off-specular %v should be darker than dielectric %v", m.R, d.R)
	}
}

func TestEvaluateDirectLight_RoughnessClamped(t *testing.T) {
	ctx := baseContext()
	ctx.Roughness = 0

	got := EvaluateDirectLight(ctx)
	if math.IsNaN(got.R) || math.IsInf(got.R, 0) {
		t.Fatalf("roughness 0 must not blow up the GGX denominator, got %v", got.R)
	}
	if got.R <= 0 {
		t.Errorf("head-on mirror highlight should be positive, got %v", got.R)
	}
}

func TestEvaluateDirectLight_ScalesWithNdotL(t *testing.T) {
	head := EvaluateDirectLight(baseContext())

	grazing := baseContext()
	grazing.Light = math3d.V3(0, math.Sin(1.3), math.Cos(1.3)) // ~75 degrees off
	graz := EvaluateDirectLight(grazing)

	if graz.R >= head.R {
		t.Errorf("grazing light %v should be dimmer than head-on %v", graz.R, head.R)
	}
}

func TestEvaluateDirectLight_LightColorModulates(t *testing.T) {
	ctx := baseContext()
	ctx.LightColor = RGB(1, 0, 0)

	got := EvaluateDirectLight(ctx)
	if got.G != 0 || got.B != 0 {
		t.Errorf("red light should produce no green or blue, got %v", got)
	}
	if got.R <= 0 {
		t.Errorf("red channel should survive, got %v", got)
	}
}

func TestEvaluateDirectLight_AlphaCarriedFromAlbedo(t *testing.T) {
	ctx := baseContext()
	ctx.Albedo = ctx.Albedo.WithAlpha(0.25)

	if got := EvaluateDirectLight(ctx); got.A != 0.25 {
		t.Errorf("alpha = %v, want 0.25", got.A)
	}
}

func TestFresnelSchlick(t *testing.T) {
	f0 := math3d.V3(0.04, 0.04, 0.04)

	head := fresnelSchlick(1, f0)
	if math.Abs(head.X-0.04) > 1e-12 {
		t.Errorf("head-on Fresnel = %v, want f0", head.X)
	}

	grazing := fresnelSchlick(0, f0)
	if math.Abs(grazing.X-1) > 1e-12 {
		t.Errorf("grazing Fresnel = %v, want 1", grazing.X)
	}
}
