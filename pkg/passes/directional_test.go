package passes

import (
	"math"
	"testing"

	"github.com/dusk3d/dusk/pkg/gbuffer"
	"github.com/dusk3d/dusk/pkg/math3d"
	"github.com/dusk3d/dusk/pkg/shading"
	"github.com/dusk3d/dusk/pkg/shadow"
)

// litPixelGBuffer is a 1x1 G-buffer holding a white, fully rough dielectric
// facing +Z at the world origin (depth 0.5 under identity matrices).
func litPixelGBuffer() *gbuffer.GBuffer {
	gb := gbuffer.New(1, 1)
	gb.Depth.Store(0, 0, 0.5)
	gb.Albedo.Store(0, 0, shading.RGB(1, 1, 1))
	gb.Normal.Store(0, 0, gbuffer.EncodeNormal(math3d.V3(0, 0, 1)))
	gb.Material.Store(0, 0, shading.Color{R: 0, G: 1, A: 1})
	return gb
}

func identityFrame() FrameUniforms {
	return FrameUniforms{
		ViewProjection:    math3d.Identity(),
		InvViewProjection: math3d.Identity(),
		View:              math3d.Identity(),
		CameraPosition:    math3d.V3(0, 0, 1),
	}
}

func headOnSun() DirectionalLightUniforms {
	return DirectionalLightUniforms{
		Direction: math3d.V3(0, 0, -1),
		Color:     shading.RGB(1, 1, 1),
		Intensity: 1,
	}
}

func TestDirectionalLightLitPixel(t *testing.T) {
	p := &DirectionalLightPass{
		Frame:    identityFrame(),
		Light:    headOnSun(),
		Bindings: DirectionalLightBindings{GBuffer: litPixelGBuffer()},
	}

	frag := p.Shade(0.5, 0.5)
	if frag.Discarded {
		t.Fatal("covered pixel discarded")
	}

	// Head-on white light on a fully rough white dielectric lands near the
	// Lambertian albedo/pi, plus a small specular residue.
	if math.Abs(frag.Color.R-1/math.Pi) > 0.02 {
		t.Errorf("lit value = %v, want near %v", frag.Color.R, 1/math.Pi)
	}
	if frag.Color.R != frag.Color.G || frag.Color.G != frag.Color.B {
		t.Errorf("white light on white surface is tinted: %v", frag.Color)
	}
	if frag.Color.A != 1 {
		t.Errorf("alpha = %v, want albedo alpha 1", frag.Color.A)
	}
}

func TestDirectionalLightBackgroundDiscards(t *testing.T) {
	gb := gbuffer.New(1, 1) // depth stays at the far plane
	p := &DirectionalLightPass{
		Frame:    identityFrame(),
		Light:    headOnSun(),
		Bindings: DirectionalLightBindings{GBuffer: gb},
	}

	if !p.Shade(0.5, 0.5).Discarded {
		t.Error("background pixel did not discard")
	}

	dst := gbuffer.NewColorTarget(1, 1)
	p.Render(dst)
	if got := dst.Load(0, 0); got != (shading.Color{}) {
		t.Errorf("discarded pixel accumulated %v", got)
	}
}

func TestDirectionalLightIntensityScales(t *testing.T) {
	mk := func(intensity float64) Fragment {
		light := headOnSun()
		light.Intensity = intensity
		p := &DirectionalLightPass{
			Frame:    identityFrame(),
			Light:    light,
			Bindings: DirectionalLightBindings{GBuffer: litPixelGBuffer()},
		}
		return p.Shade(0.5, 0.5)
	}

	one := mk(1)
	two := mk(2)
	if math.Abs(two.Color.R-2*one.Color.R) > 1e-12 {
		t.Errorf("intensity 2 = %v, want double of %v", two.Color.R, one.Color.R)
	}
}

func testCascadeVP() math3d.Mat4 {
	view := math3d.LookAt(math3d.V3(0, 10, 0), math3d.Zero3(), math3d.V3(0, 0, 1))
	proj := math3d.Orthographic(-5, 5, -5, 5, 0.1, 20)
	return proj.Mul(view)
}

func TestDirectionalLightShadowOcclusion(t *testing.T) {
	light := headOnSun()
	light.Shadow = shadow.Params{Enabled: true, Bias: 0.002, TexelSize: 1.0 / 64}

	// The cascade map is filled with depth 0: everything is occluded.
	occluder := gbuffer.NewDepthTarget(8, 8, 0)

	p := &DirectionalLightPass{
		Frame: identityFrame(),
		Light: light,
		Bindings: DirectionalLightBindings{
			GBuffer:     litPixelGBuffer(),
			Cascades:    shadow.CascadeSet{{ViewProjection: testCascadeVP(), MaxDistance: 10}},
			CascadeMaps: []gbuffer.DepthSampler{occluder},
		},
	}

	frag := p.Shade(0.5, 0.5)
	if frag.Discarded {
		t.Fatal("shadowed pixel discarded instead of going black")
	}
	if frag.Color.R != 0 || frag.Color.G != 0 || frag.Color.B != 0 {
		t.Errorf("fully occluded pixel = %v, want black", frag.Color)
	}
}

func TestDirectionalLightBeyondCascadesFullyLit(t *testing.T) {
	light := headOnSun()
	light.Shadow = shadow.Params{Enabled: true, Bias: 0.002, TexelSize: 1.0 / 64}

	occluder := gbuffer.NewDepthTarget(8, 8, 0)

	// Push the fragment's view depth past every cascade bound.
	frame := identityFrame()
	frame.View = math3d.Translate(math3d.V3(0, 0, -50))

	p := &DirectionalLightPass{
		Frame: frame,
		Light: light,
		Bindings: DirectionalLightBindings{
			GBuffer:     litPixelGBuffer(),
			Cascades:    shadow.CascadeSet{{ViewProjection: testCascadeVP(), MaxDistance: 10}},
			CascadeMaps: []gbuffer.DepthSampler{occluder},
		},
	}

	frag := p.Shade(0.5, 0.5)
	if frag.Color.R == 0 {
		t.Error("fragment beyond all cascades should render fully lit")
	}
}

func TestRenderAccumulateAdds(t *testing.T) {
	p := &DirectionalLightPass{
		Frame:    identityFrame(),
		Light:    headOnSun(),
		Bindings: DirectionalLightBindings{GBuffer: litPixelGBuffer()},
	}

	dst := gbuffer.NewColorTarget(1, 1)
	p.Render(dst)
	once := dst.Load(0, 0).R
	p.Render(dst)
	twice := dst.Load(0, 0).R

	if math.Abs(twice-2*once) > 1e-12 {
		t.Errorf("second pass did not accumulate: %v then %v", once, twice)
	}
}

func TestPlaceholderLightsDiscard(t *testing.T) {
	if !(&PointLightPass{}).Shade(0.5, 0.5).Discarded {
		t.Error("point light placeholder produced output")
	}
	if !(&SpotLightPass{}).Shade(0.5, 0.5).Discarded {
		t.Error("spot light placeholder produced output")
	}
}
