package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Ellipsoid is an axis-aligned quadric with per-axis radii
type Ellipsoid struct {
	Center   core.Vec3
	Radii    core.Vec3
	material material.Material
	invSq    core.Vec3 // 1/a², 1/b², 1/c² for the gradient
}

// NewEllipsoid creates a new ellipsoid. Every radius must be finite and
// strictly positive.
func NewEllipsoid(center, radii core.Vec3, mat material.Material) (*Ellipsoid, error) {
	if !center.IsFinite() {
		return nil, fmt.Errorf("%w: center %v", ErrNonFinitePoint, center)
	}
	if !radii.IsFinite() || radii.X <= 0 || radii.Y <= 0 || radii.Z <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radii)
	}
	if err := mat.Validate(); err != nil {
		return nil, err
	}

	return &Ellipsoid{
		Center:   center,
		Radii:    radii,
		material: mat,
		invSq: core.NewVec3(
			1/(radii.X*radii.X),
			1/(radii.Y*radii.Y),
			1/(radii.Z*radii.Z),
		),
	}, nil
}

// NewSphere creates an ellipsoid with equal radii
func NewSphere(center core.Vec3, radius float64, mat material.Material) (*Ellipsoid, error) {
	return NewEllipsoid(center, core.NewVec3(radius, radius, radius), mat)
}

// Intersect scales the ray into the ellipsoid's unit-sphere space and solves
// At² + Bt + C = 0. Scaling both origin and direction preserves t.
func (e *Ellipsoid) Intersect(ray core.Ray) (float64, bool) {
	oc := ray.Origin.Subtract(e.Center).DivideVec(e.Radii)
	dir := ray.Direction.DivideVec(e.Radii)

	a := dir.Dot(dir)
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 || a == 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	near := (-b - sqrtD) / (2 * a)
	far := (-b + sqrtD) / (2 * a)

	if near > MinT {
		return near, true
	}
	if far > MinT {
		return far, true
	}
	return 0, false
}

// Normal returns the normalized gradient of the quadric at point
func (e *Ellipsoid) Normal(point core.Vec3) core.Vec3 {
	return point.Subtract(e.Center).MultiplyVec(e.invSq).Normalize()
}

// Material returns the ellipsoid's material
func (e *Ellipsoid) Material() material.Material {
	return e.material
}

func (e *Ellipsoid) shape() {}
