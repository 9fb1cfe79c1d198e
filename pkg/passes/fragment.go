// Package passes contains the screen-space pass drivers of the deferred
// pipeline. Each pass is an immutable struct of uniforms and bindings with a
// pure per-pixel Shade function; Render helpers iterate a target and apply
// the pass output. There is no shared mutable state between pixels.
package passes

import (
	"github.com/dusk3d/dusk/pkg/math3d"
	"github.com/dusk3d/dusk/pkg/shading"
)

// Fragment is the tagged result of one pass invocation: either a color write
// or a discard. Discard is ordinary control flow for masked or rejected
// pixels, not an error.
type Fragment struct {
	Color     shading.Color
	Discarded bool
}

// Write returns a fragment carrying a color.
func Write(c shading.Color) Fragment {
	return Fragment{Color: c}
}

// Discard returns a fragment that produces no output.
func Discard() Fragment {
	return Fragment{Discarded: true}
}

// FrameUniforms are the camera matrices shared by every pass in a frame.
// They are value data, immutable for the frame's duration.
type FrameUniforms struct {
	ViewProjection    math3d.Mat4
	InvViewProjection math3d.Mat4
	View              math3d.Mat4
	CameraPosition    math3d.Vec3
}
