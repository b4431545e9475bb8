package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// parallelEpsilon bounds |N·d| below which a ray is treated as parallel to
// the triangle's plane
const parallelEpsilon = 1e-12

// Triangle represents a single flat-shaded triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices
	material   material.Material
	normal     core.Vec3 // Cached normal vector
	edge1      core.Vec3 // V1 - V0
	edge2      core.Vec3 // V2 - V0
	d00        float64   // edge1·edge1
	d01        float64   // edge1·edge2
	d11        float64   // edge2·edge2
	invDenom   float64   // 1 / (d00*d11 - d01²)
}

// NewTriangle creates a new triangle. Vertices listed clockwise when seen
// from the visible side give an outward normal.
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) (*Triangle, error) {
	for _, v := range []core.Vec3{v0, v1, v2} {
		if !v.IsFinite() {
			return nil, fmt.Errorf("%w: vertex %v", ErrNonFinitePoint, v)
		}
	}
	if err := mat.Validate(); err != nil {
		return nil, err
	}

	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		material: mat,
	}

	cross := v2.Subtract(v0).Cross(v1.Subtract(v0))
	if cross.Length() == 0 {
		return nil, fmt.Errorf("%w: %v, %v, %v", ErrDegenerateTriangle, v0, v1, v2)
	}
	t.normal = cross.Normalize()

	// Precompute barycentric terms for the point-in-triangle test
	t.edge1 = v1.Subtract(v0)
	t.edge2 = v2.Subtract(v0)
	t.d00 = t.edge1.Dot(t.edge1)
	t.d01 = t.edge1.Dot(t.edge2)
	t.d11 = t.edge2.Dot(t.edge2)
	denom := t.d00*t.d11 - t.d01*t.d01
	if denom == 0 || math.IsInf(1/denom, 0) {
		return nil, fmt.Errorf("%w: %v, %v, %v", ErrDegenerateTriangle, v0, v1, v2)
	}
	t.invDenom = 1 / denom

	return t, nil
}

// Intersect hits the triangle's plane and then checks the barycentric
// coordinates of the hit point
func (t *Triangle) Intersect(ray core.Ray) (float64, bool) {
	denom := t.normal.Dot(ray.Direction)
	if math.Abs(denom) < parallelEpsilon {
		return 0, false
	}

	tParam := t.normal.Dot(t.V0.Subtract(ray.Origin)) / denom
	if tParam <= MinT {
		return 0, false
	}

	w := ray.At(tParam).Subtract(t.V0)
	d20 := w.Dot(t.edge1)
	d21 := w.Dot(t.edge2)

	v := (t.d11*d20 - t.d01*d21) * t.invDenom
	if v < 0 || v > 1 {
		return 0, false
	}
	u := (t.d00*d21 - t.d01*d20) * t.invDenom
	if u < 0 || u+v > 1 {
		return 0, false
	}

	return tParam, true
}

// Normal returns the constant face normal; point is ignored
func (t *Triangle) Normal(point core.Vec3) core.Vec3 {
	return t.normal
}

// Material returns the triangle's material
func (t *Triangle) Material() material.Material {
	return t.material
}

func (t *Triangle) shape() {}
