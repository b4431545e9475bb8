package geometry

import (
	"errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// MinT is the smallest ray parameter accepted as a hit. Anything closer is
// treated as the surface the ray starts on.
const MinT = 1e-6

var (
	ErrInvalidRadius      = errors.New("geometry: ellipsoid radii must be finite and positive")
	ErrDegenerateTriangle = errors.New("geometry: triangle has zero area")
	ErrNonFinitePoint     = errors.New("geometry: point is not finite")
)

// Shape is the closed set of renderable primitives: *Ellipsoid and *Triangle.
type Shape interface {
	// Intersect returns the smallest ray parameter t > MinT at which the ray
	// meets the surface, or false when there is no such t.
	Intersect(ray core.Ray) (float64, bool)

	// Normal returns the unit outward normal at a point on the surface.
	Normal(point core.Vec3) core.Vec3

	// Material returns the surface material.
	Material() material.Material

	shape()
}

// RayCaster is the nearest-hit search the shading step recurses into.
type RayCaster interface {
	// CastRay returns the color seen along ray at the given recursion depth.
	CastRay(ray core.Ray, depth int) core.Color

	// Occluded reports whether any shape is hit along ray before maxT.
	Occluded(ray core.Ray, maxT float64) bool
}
