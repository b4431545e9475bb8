package lights

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var ErrInvalidIntensity = errors.New("lights: intensity must be finite and non-negative")

// PointLight is a positioned light with a scalar intensity that modulates
// every color channel uniformly
type PointLight struct {
	Position  core.Vec3
	Intensity float64
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, intensity float64) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// DirectionFrom returns the unit vector from point toward the light
func (l PointLight) DirectionFrom(point core.Vec3) core.Vec3 {
	return l.Position.Subtract(point).Normalize()
}

// DistanceFrom returns the distance between point and the light
func (l PointLight) DistanceFrom(point core.Vec3) float64 {
	return l.Position.Subtract(point).Length()
}

// Validate checks the light position and intensity
func (l PointLight) Validate() error {
	if !l.Position.IsFinite() {
		return fmt.Errorf("lights: position %v is not finite", l.Position)
	}
	if math.IsNaN(l.Intensity) || math.IsInf(l.Intensity, 0) || l.Intensity < 0 {
		return fmt.Errorf("%w: %g", ErrInvalidIntensity, l.Intensity)
	}
	return nil
}
