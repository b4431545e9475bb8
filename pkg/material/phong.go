package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var (
	ErrInvalidCoefficient = errors.New("material: invalid coefficient")
	ErrInvalidExponent    = errors.New("material: specular exponent must be >= 1")
	ErrInvalidColor       = errors.New("material: color channels must be finite and non-negative")
)

// Material holds the Phong coefficients of a surface
type Material struct {
	Color core.Color // Base color in [0, 255]
	Ka    float64    // Ambient coefficient
	Kd    float64    // Diffuse coefficient
	Ks    float64    // Specular coefficient
	N     float64    // Specular exponent
	Kr    float64    // Reflective attenuation applied to the mirror bounce
}

// NewPhong creates a material whose reflective coefficient is derived from
// the remaining energy budget (see DefaultReflectivity)
func NewPhong(color core.Color, ka, kd, ks, n float64) Material {
	return Material{
		Color: color,
		Ka:    ka,
		Kd:    kd,
		Ks:    ks,
		N:     n,
		Kr:    DefaultReflectivity(ka, kd, ks),
	}
}

// NewReflective creates a material with an explicit reflective coefficient
func NewReflective(color core.Color, ka, kd, ks, n, kr float64) Material {
	m := NewPhong(color, ka, kd, ks, n)
	m.Kr = kr
	return m
}

// DefaultReflectivity returns 1 - (ka+kd+ks) clamped to [0, 1]
func DefaultReflectivity(ka, kd, ks float64) float64 {
	return max(0, min(1, 1-(ka+kd+ks)))
}

// Validate checks the coefficient invariants: ka, kd, ks >= 0, n >= 1 and
// kr in [0, 1]
func (m Material) Validate() error {
	coefficients := []struct {
		name  string
		value float64
	}{
		{"ka", m.Ka},
		{"kd", m.Kd},
		{"ks", m.Ks},
	}
	for _, c := range coefficients {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) || c.value < 0 {
			return fmt.Errorf("%w: %s = %g", ErrInvalidCoefficient, c.name, c.value)
		}
	}

	if math.IsNaN(m.Kr) || m.Kr < 0 || m.Kr > 1 {
		return fmt.Errorf("%w: kr = %g outside [0, 1]", ErrInvalidCoefficient, m.Kr)
	}

	if math.IsNaN(m.N) || math.IsInf(m.N, 0) || m.N < 1 {
		return fmt.Errorf("%w: n = %g", ErrInvalidExponent, m.N)
	}

	if !m.Color.IsFinite() || m.Color.R < 0 || m.Color.G < 0 || m.Color.B < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidColor, m.Color)
	}

	return nil
}
