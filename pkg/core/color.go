package core

import (
	"image/color"
	"math"
)

// MaxChannel is the upper bound of a displayable color channel
const MaxChannel = 255.0

// Color is an RGB triple nominally in [0, 255]. Shading math may push
// channels out of range; they are only clamped by ToRGBA.
type Color struct {
	R, G, B float64
}

// White is the full-intensity color used for specular highlights
var White = Color{R: MaxChannel, G: MaxChannel, B: MaxChannel}

// Black is the zero color
var Black = Color{}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// Clamp returns a color with channels clamped to [minVal, maxVal]. NaN
// channels become minVal.
func (c Color) Clamp(minVal, maxVal float64) Color {
	return Color{
		R: clampChannel(c.R, minVal, maxVal),
		G: clampChannel(c.G, minVal, maxVal),
		B: clampChannel(c.B, minVal, maxVal),
	}
}

func clampChannel(v, minVal, maxVal float64) float64 {
	if math.IsNaN(v) {
		return minVal
	}
	return max(minVal, min(maxVal, v))
}

// IsFinite reports whether no channel is NaN or infinite
func (c Color) IsFinite() bool {
	return isFinite(c.R) && isFinite(c.G) && isFinite(c.B)
}

// ToRGBA clamps the color to the displayable range and converts it to an
// opaque 8-bit pixel
func (c Color) ToRGBA() color.RGBA {
	clamped := c.Clamp(0, MaxChannel)
	return color.RGBA{
		R: uint8(math.Round(clamped.R)),
		G: uint8(math.Round(clamped.G)),
		B: uint8(math.Round(clamped.B)),
		A: 255,
	}
}
