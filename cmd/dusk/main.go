// dusk - deferred shading demo in the terminal.
// Renders a small PBR scene with cascaded shadow maps, bloom, a skybox, and
// a projected decal, displayed with half-block cells.
//
// Controls:
//
//	Mouse drag  - Orbit camera
//	Scroll      - Zoom in/out
//	W/S         - Orbit up/down
//	A/D         - Orbit left/right
//	[/]         - Move the sun
//	Space       - Spin the cube
//	H           - Cycle shadows (off / hard / soft)
//	B           - Toggle bloom
//	R           - Reset view
//	P           - Save a PNG of the current frame
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/dusk3d/dusk/pkg/gbuffer"
	"github.com/dusk3d/dusk/pkg/geometry"
	"github.com/dusk3d/dusk/pkg/math3d"
	"github.com/dusk3d/dusk/pkg/models"
	"github.com/dusk3d/dusk/pkg/passes"
	"github.com/dusk3d/dusk/pkg/render"
	"github.com/dusk3d/dusk/pkg/shading"
	"github.com/dusk3d/dusk/pkg/shadow"
)

var (
	targetFPS     = flag.Int("fps", 30, "Target FPS")
	shadowMode    = flag.String("shadows", "soft", "Shadow mode: off, hard, soft")
	bloomStrength = flag.Float64("bloom", 0.4, "Bloom strength (0 disables)")
	sunIntensity  = flag.Float64("sun", 3.0, "Sun intensity")
	shadowMapSize = flag.Int("shadow-size", 256, "Shadow map resolution per cascade")
	pngPath       = flag.String("png", "", "Render one frame to this PNG path and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "dusk - terminal deferred renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: dusk [options] [model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Orbit camera\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Orbit\n")
		fmt.Fprintf(os.Stderr, "  [/]         - Move the sun\n")
		fmt.Fprintf(os.Stderr, "  Space       - Spin the cube\n")
		fmt.Fprintf(os.Stderr, "  H           - Cycle shadows\n")
		fmt.Fprintf(os.Stderr, "  B           - Toggle bloom\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// SpringValue animates a scalar toward a target with harmonica spring
// physics, giving camera and sun motion a smooth settle.
type SpringValue struct {
	Position float64
	Target   float64
	velocity float64
	spring   harmonica.Spring
}

// NewSpringValue creates a critically damped spring at the given value.
func NewSpringValue(fps int, initial float64) SpringValue {
	return SpringValue{
		Position: initial,
		Target:   initial,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), 5.0, 1.0),
	}
}

// Update advances the spring one frame.
func (s *SpringValue) Update() {
	s.Position, s.velocity = s.spring.Update(s.Position, s.velocity, s.Target)
}

// Impulse kicks the spring's velocity directly.
func (s *SpringValue) Impulse(v float64) {
	s.velocity += v
}

// sceneObject pairs a mesh with its world transform.
type sceneObject struct {
	mesh      *models.Mesh
	transform math3d.Mat4
}

// pipeline owns every render target and pass of one frame size.
type pipeline struct {
	width, height int

	gb          *gbuffer.GBuffer
	hdr         *gbuffer.ColorTarget
	bloomBright *gbuffer.ColorTarget
	bloomBlur   *gbuffer.DepthTarget
	fb          *render.Framebuffer

	camera      *geometry.Camera
	geoPass     *geometry.GeometryPass
	cascadeMaps []*gbuffer.DepthTarget
	compositor  *render.Compositor
	sky         *passes.Cubemap
	decal       *passes.DecalPass
}

func newPipeline(width, height, mapSize int) *pipeline {
	gb := gbuffer.New(width, height)
	cam := geometry.NewCamera()
	cam.SetAspectRatio(float64(width) / float64(height) * 0.5) // cells are twice as tall as wide
	cam.SetClipPlanes(0.1, 500)

	maps := make([]*gbuffer.DepthTarget, shadow.DefaultCascadeCount)
	for i := range maps {
		maps[i] = gbuffer.NewDepthTarget(mapSize, mapSize, 1)
	}

	p := &pipeline{
		width:       width,
		height:      height,
		gb:          gb,
		hdr:         gbuffer.NewColorTarget(width, height),
		bloomBright: gbuffer.NewColorTarget(width, height),
		bloomBlur:   gbuffer.NewDepthTarget(width, height, 0),
		fb:          render.NewFramebuffer(width, height),
		camera:      cam,
		geoPass:     geometry.NewGeometryPass(gb, cam),
		cascadeMaps: maps,
		compositor:  render.NewCompositor(),
		sky: passes.NewGradientCubemap(64,
			shading.RGB(0.18, 0.28, 0.55),
			shading.RGB(0.85, 0.55, 0.35),
			shading.RGB(0.10, 0.09, 0.08)),
	}
	p.decal = buildDecal(gb)
	return p
}

// frameSettings is the per-frame mutable state the input loop drives.
type frameSettings struct {
	shadowParams shadow.Params
	bloomOn      bool
	sunAngle     float64
	splits       []float64
}

// renderFrame runs the full deferred pipeline once.
func (p *pipeline) renderFrame(scene []sceneObject, set frameSettings) {
	// Geometry into the G-buffer.
	p.gb.Clear()
	for _, obj := range scene {
		p.geoPass.DrawMesh(obj.mesh, obj.transform)
	}

	frame := passes.FrameUniforms{
		ViewProjection:    p.camera.ViewProjectionMatrix(),
		InvViewProjection: p.camera.InverseViewProjectionMatrix(),
		View:              p.camera.ViewMatrix(),
		CameraPosition:    p.camera.Position,
	}

	// Decals modify the G-buffer before any lighting reads it.
	if p.decal != nil {
		p.decal.Frame = frame
		p.decal.Render(p.gb)
	}

	sunDir := math3d.V3(math.Cos(set.sunAngle), -0.8, math.Sin(set.sunAngle)).Normalize()

	// Shadow cascades.
	cascades := shadow.Build(p.camera.Position, p.camera.Forward(), sunDir, set.splits)
	samplers := make([]gbuffer.DepthSampler, len(cascades))
	if set.shadowParams.Enabled {
		for i, c := range cascades {
			caster := geometry.NewShadowCasterPass(p.cascadeMaps[i], c.ViewProjection)
			caster.Clear()
			for _, obj := range scene {
				caster.DrawMesh(obj.mesh, obj.transform)
			}
			samplers[i] = p.cascadeMaps[i]
		}
	} else {
		for i := range samplers {
			samplers[i] = p.cascadeMaps[i]
		}
	}

	// Lighting accumulates into the HDR target.
	p.hdr.Clear(shading.Color{})

	sun := &passes.DirectionalLightPass{
		Frame: frame,
		Light: passes.DirectionalLightUniforms{
			Direction: sunDir,
			Color:     shading.RGB(1.0, 0.95, 0.85),
			Intensity: *sunIntensity,
			Shadow:    set.shadowParams,
		},
		Bindings: passes.DirectionalLightBindings{
			GBuffer:     p.gb,
			Cascades:    cascades,
			CascadeMaps: samplers,
		},
	}
	sun.Render(p.hdr)

	ambient := &passes.AmbientPass{
		AmbientColor: shading.RGB(0.08, 0.09, 0.12),
		Albedo:       p.gb.Albedo,
	}
	ambient.Render(p.hdr)

	skybox := &passes.SkyboxPass{Frame: frame, Sky: p.sky, Depth: p.gb.Depth}
	skybox.Render(p.hdr)

	// Bloom chain: bright pass, then the 16-tap luminance blur.
	if set.bloomOn {
		bright := &passes.BloomPass{Source: p.hdr}
		bright.Render(p.bloomBright)
		blur := &passes.BlurPass{
			Source:    passes.LuminanceSampler{Source: p.bloomBright},
			TexelSize: 1.0 / float64(p.width),
		}
		blur.Render(p.bloomBlur)
		p.compositor.BloomStrength = *bloomStrength
	} else {
		p.compositor.BloomStrength = 0
	}

	p.compositor.Resolve(p.hdr, p.bloomBlur, p.fb)
}

// buildScene assembles the demo objects: a ground plane, a metal cube, an
// emissive-ish bright cube, and optionally a loaded GLB model.
func buildScene(modelPath string) ([]sceneObject, *models.Mesh, error) {
	ground := models.NewPlaneMesh(30, models.Material{
		Name:      "ground",
		BaseColor: shading.RGB(0.45, 0.45, 0.48),
		Metallic:  0,
		Roughness: 0.9,
	})

	cube := models.NewCubeMesh(models.Material{
		Name:       "cube",
		BaseColor:  shading.RGB(0.8, 0.3, 0.2),
		Metallic:   0.9,
		Roughness:  0.25,
		DecalLayer: 1, // keeps the ground decal off the cube
	})

	// The lamp reuses the cube's geometry with its own surface.
	lamp := cube.Clone()
	lamp.Name = "lamp"
	lamp.Materials[0] = models.Material{
		Name:      "lamp",
		BaseColor: shading.RGB(1, 1, 0.9),
		Metallic:  0,
		Roughness: 1,
	}

	scene := []sceneObject{
		{ground, math3d.Identity()},
		{cube, math3d.Translate(math3d.V3(0, 0.75, 0)).Mul(math3d.Scale(math3d.V3(1.5, 1.5, 1.5)))},
		{lamp, math3d.Translate(math3d.V3(-2.5, 0.5, -1.5))},
	}

	if modelPath != "" {
		mesh, err := models.LoadGLB(modelPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
		if mesh.VertexCount() == 0 || mesh.TriangleCount() == 0 {
			return nil, nil, fmt.Errorf("model %s has no triangles", modelPath)
		}

		// Normalize to a 2-unit box resting on the ground.
		center := mesh.Center()
		size := mesh.Size()
		maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
		if maxDim > 0 {
			s := 2.0 / maxDim
			mesh.Transform(math3d.Scale(math3d.V3(s, s, s)).Mul(math3d.Translate(center.Scale(-1))))
		}
		scene = append(scene, sceneObject{mesh, math3d.Translate(math3d.V3(2.5, 1, 0))})
		return scene, cube, nil
	}

	return scene, cube, nil
}

// buildDecal projects a checker decal onto the ground plane (layer 0 by
// default, so it lands on everything the demo materials leave on layer 0;
// the cube is moved to layer 1 to show the mask rejecting it).
func buildDecal(gb *gbuffer.GBuffer) *passes.DecalPass {
	checker := geometry.NewCheckerTexture(16, 16, 4,
		shading.Color{R: 0.1, G: 0.1, B: 0.4, A: 0.85},
		shading.Color{})
	diffuse := gbuffer.NewColorTarget(16, 16)
	for y := range 16 {
		for x := range 16 {
			diffuse.Store(x, y, checker.GetPixel(x, y))
		}
	}

	// Flat tangent-space normal pointing straight out.
	normal := gbuffer.NewColorTarget(1, 1)
	normal.Store(0, 0, shading.Color{R: 0.5, G: 0.5, B: 1, A: 1})

	model := math3d.Translate(math3d.V3(0.8, 0, 1.2)).
		Mul(math3d.RotateX(-math.Pi / 2)).
		Mul(math3d.Scale(math3d.V3(3, 3, 1)))

	return &passes.DecalPass{
		Decal: passes.DecalUniforms{
			InvModel:   model.Inverse(),
			Model:      model,
			LayerIndex: 0,
		},
		Depth:   gb.Depth,
		Mask:    gb.Mask,
		Diffuse: diffuse,
		Normal:  normal,
	}
}

func parseShadowParams(mode string, mapSize int) shadow.Params {
	p := shadow.Params{
		Bias:      0.0015,
		TexelSize: 1.0 / float64(mapSize),
	}
	switch mode {
	case "hard":
		p.Enabled = true
	case "soft":
		p.Enabled = true
		p.Soft = true
	}
	return p
}

func run(modelPath string) error {
	scene, spinMesh, err := buildScene(modelPath)
	if err != nil {
		return err
	}

	// One-shot PNG mode renders a single frame headless.
	if *pngPath != "" {
		p := newPipeline(320, 180, *shadowMapSize)
		p.camera.SetPosition(math3d.V3(6, 4, 8))
		p.camera.LookAt(math3d.V3(0, 0.5, 0))
		p.renderFrame(scene, frameSettings{
			shadowParams: parseShadowParams(*shadowMode, *shadowMapSize),
			bloomOn:      *bloomStrength > 0,
			sunAngle:     0.6,
			splits:       []float64{10, 50, 200},
		})
		return p.fb.SavePNG(*pngPath)
	}

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Mouse tracking (any-event + SGR extended)
	fmt.Fprint(os.Stdout, "\x1b[?1003h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	p := newPipeline(width, height*2, *shadowMapSize)

	// Orbit camera state with spring smoothing.
	orbitYaw := NewSpringValue(*targetFPS, 0.7)
	orbitPitch := NewSpringValue(*targetFPS, 0.45)
	orbitDist := NewSpringValue(*targetFPS, 9)
	sunAngle := NewSpringValue(*targetFPS, 0.6)
	spin := NewSpringValue(*targetFPS, 0)

	settings := frameSettings{
		shadowParams: parseShadowParams(*shadowMode, *shadowMapSize),
		bloomOn:      *bloomStrength > 0,
		splits:       []float64{10, 50, 200},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	var mouseDown bool
	var lastMouseX, lastMouseY int

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				p = newPipeline(width, height*2, *shadowMapSize)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("w", "up"):
					orbitPitch.Target = math.Min(1.4, orbitPitch.Target+0.15)
				case ev.MatchString("s", "down"):
					orbitPitch.Target = math.Max(0.05, orbitPitch.Target-0.15)
				case ev.MatchString("a", "left"):
					orbitYaw.Target -= 0.2
				case ev.MatchString("d", "right"):
					orbitYaw.Target += 0.2
				case ev.MatchString("["):
					sunAngle.Target -= 0.25
				case ev.MatchString("]"):
					sunAngle.Target += 0.25
				case ev.MatchString("space"):
					spin.Impulse((rand.Float64() + 0.5) * 2)
				case ev.MatchString("h"):
					settings.shadowParams = cycleShadows(settings.shadowParams)
				case ev.MatchString("b"):
					settings.bloomOn = !settings.bloomOn
				case ev.MatchString("r"):
					orbitYaw.Target = 0.7
					orbitPitch.Target = 0.45
					orbitDist.Target = 9
					sunAngle.Target = 0.6
				case ev.MatchString("p"):
					_ = p.fb.SavePNG(fmt.Sprintf("dusk-%d.png", time.Now().Unix()))
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					orbitYaw.Target += float64(dx) * 0.02
					orbitPitch.Target = math3d.Clamp(orbitPitch.Target+float64(dy)*0.03, 0.05, 1.4)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					orbitDist.Target = math.Max(3, orbitDist.Target-0.5)
				case uv.MouseWheelDown:
					orbitDist.Target = math.Min(25, orbitDist.Target+0.5)
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(*targetFPS)

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		frameStart := time.Now()

		orbitYaw.Update()
		orbitPitch.Update()
		orbitDist.Update()
		sunAngle.Update()
		spin.Update()

		// Orbit camera around the scene center.
		yaw, pitch, dist := orbitYaw.Position, orbitPitch.Position, orbitDist.Position
		eye := math3d.V3(
			dist*math.Cos(pitch)*math.Sin(yaw),
			dist*math.Sin(pitch),
			dist*math.Cos(pitch)*math.Cos(yaw),
		)
		p.camera.SetPosition(eye)
		p.camera.LookAt(math3d.V3(0, 0.5, 0))

		// Spin the hero cube.
		for i := range scene {
			if scene[i].mesh == spinMesh {
				scene[i].transform = math3d.Translate(math3d.V3(0, 0.75, 0)).
					Mul(math3d.RotateY(spin.Position)).
					Mul(math3d.Scale(math3d.V3(1.5, 1.5, 1.5)))
			}
		}

		settings.sunAngle = sunAngle.Position
		p.renderFrame(scene, settings)

		p.fb.Draw(term, uv.Rect(0, 0, width, height))
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		elapsed := time.Since(frameStart)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// cycleShadows steps off -> hard -> soft -> off.
func cycleShadows(p shadow.Params) shadow.Params {
	switch {
	case !p.Enabled:
		p.Enabled = true
		p.Soft = false
	case !p.Soft:
		p.Soft = true
	default:
		p.Enabled = false
		p.Soft = false
	}
	return p
}
