package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// ShadeContext carries everything shading needs beyond the hit itself.
// Depth is the recursion level of the ray being shaded; a reflection ray is
// only cast while Depth < MaxDepth.
type ShadeContext struct {
	Light    lights.PointLight
	Caster   RayCaster
	Depth    int
	MaxDepth int
	Shadows  bool // test the light for occluders before adding direct light
}

// Shade computes the Phong color of s at hitPoint for a ray travelling along
// ray.Direction, plus the attenuated mirror bounce. Channels are not clamped.
func Shade(s Shape, ctx ShadeContext, hitPoint core.Vec3, ray core.Ray) core.Color {
	mat := s.Material()
	normal := s.Normal(hitPoint)

	result := mat.Color.Multiply(mat.Ka)

	toLight := ctx.Light.DirectionFrom(hitPoint)
	nDotL := max(0, normal.Dot(toLight))

	// R is L mirrored about N; the highlight does not depend on N·L
	reflected := toLight.Negate().Reflect(normal)
	toViewer := ray.Direction.Negate().Normalize()
	rDotV := max(0, reflected.Dot(toViewer))

	if (nDotL > 0 || rDotV > 0) && !inShadow(ctx, hitPoint, toLight) {
		diffuse := mat.Color.Multiply(mat.Kd * nDotL * ctx.Light.Intensity)
		specular := core.White.Multiply(mat.Ks * math.Pow(rDotV, mat.N) * ctx.Light.Intensity)
		result = result.Add(diffuse).Add(specular)
	}

	if ctx.Depth < ctx.MaxDepth && mat.Kr > 0 && ctx.Caster != nil {
		bounce := core.NewRay(hitPoint, ray.Direction.Reflect(normal).Normalize())
		result = result.Add(ctx.Caster.CastRay(bounce, ctx.Depth+1).Multiply(mat.Kr))
	}

	return result
}

func inShadow(ctx ShadeContext, hitPoint, toLight core.Vec3) bool {
	if !ctx.Shadows || ctx.Caster == nil {
		return false
	}
	return ctx.Caster.Occluded(core.NewRay(hitPoint, toLight), ctx.Light.DistanceFrom(hitPoint))
}
