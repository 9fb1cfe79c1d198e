package passes

import (
	"math"
	"testing"

	"github.com/dusk3d/dusk/pkg/gbuffer"
	"github.com/dusk3d/dusk/pkg/shading"
)

func TestAmbientShade(t *testing.T) {
	albedo := gbuffer.NewColorTarget(1, 1)
	albedo.Store(0, 0, shading.Color{R: 0.5, G: 0.5, B: 0.5, A: 0.75})

	p := &AmbientPass{
		AmbientColor: shading.RGB(0.1, 0.1, 0.1),
		Albedo:       albedo,
	}

	frag := p.Shade(0.5, 0.5)
	if frag.Discarded {
		t.Fatal("ambient never discards")
	}

	// Mid-gray sRGB decodes to ~0.2140 linear.
	want := 0.1 * 0.21404114
	if math.Abs(frag.Color.R-want) > 1e-6 {
		t.Errorf("ambient R = %v, want %v", frag.Color.R, want)
	}
	if frag.Color.A != 0.75 {
		t.Errorf("alpha = %v, want albedo alpha 0.75", frag.Color.A)
	}
}

func TestAmbientOcclusionAttenuates(t *testing.T) {
	albedo := gbuffer.NewColorTarget(1, 1)
	albedo.Store(0, 0, shading.RGB(1, 1, 1))

	open := &AmbientPass{AmbientColor: shading.RGB(0.2, 0.2, 0.2), Albedo: albedo}
	halved := &AmbientPass{
		AmbientColor: shading.RGB(0.2, 0.2, 0.2),
		Albedo:       albedo,
		Occlusion:    constSampler(0.5),
	}

	a := open.Shade(0.5, 0.5).Color.R
	b := halved.Shade(0.5, 0.5).Color.R
	if math.Abs(b-a*0.5) > 1e-12 {
		t.Errorf("occluded ambient = %v, want half of %v", b, a)
	}
}
