// Package shading implements the per-pixel math of the deferred lighting
// stage: color-space conversion, screen/world reconstruction, and the
// physically based direct-light BRDF. Everything here is a pure function over
// value types; there is no state and no error path (bad inputs degrade the
// output numerically, they never abort a pass).
package shading

import "math"

// Color is a linear-light RGBA color. Channels are nominally [0,1] but HDR
// accumulation targets routinely exceed 1.
type Color struct {
	R, G, B, A float64
}

// RGB creates an opaque color.
func RGB(r, g, b float64) Color {
	return Color{r, g, b, 1}
}

// Add returns the channel-wise sum a + b. Alpha is taken from a.
func (a Color) Add(b Color) Color {
	return Color{a.R + b.R, a.G + b.G, a.B + b.B, a.A}
}

// Mul returns the channel-wise product a * b. Alpha is taken from a.
func (a Color) Mul(b Color) Color {
	return Color{a.R * b.R, a.G * b.G, a.B * b.B, a.A}
}

// Scale multiplies the RGB channels by s, leaving alpha unchanged.
func (a Color) Scale(s float64) Color {
	return Color{a.R * s, a.G * s, a.B * s, a.A}
}

// Lerp interpolates from a toward b by t in every channel, alpha included.
func (a Color) Lerp(b Color, t float64) Color {
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

// WithAlpha returns the color with alpha replaced by a.
func (c Color) WithAlpha(a float64) Color {
	return Color{c.R, c.G, c.B, a}
}

// Luminance returns the perceptual luminance using Rec.601 weights,
// the weighting the bloom threshold pass is specified against.
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// SRGBToLinear applies the standard piecewise inverse sRGB transfer function
// per channel. Alpha passes through unchanged. Inputs outside [0,1] are
// extrapolated by the same formula without clamping.
func SRGBToLinear(c Color) Color {
	return Color{
		R: srgbChannelToLinear(c.R),
		G: srgbChannelToLinear(c.G),
		B: srgbChannelToLinear(c.B),
		A: c.A,
	}
}

func srgbChannelToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// LinearToSRGB applies the forward sRGB transfer function per channel,
// the inverse of SRGBToLinear. Alpha passes through unchanged.
func LinearToSRGB(c Color) Color {
	return Color{
		R: linearChannelToSRGB(c.R),
		G: linearChannelToSRGB(c.G),
		B: linearChannelToSRGB(c.B),
		A: c.A,
	}
}

func linearChannelToSRGB(c float64) float64 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}
