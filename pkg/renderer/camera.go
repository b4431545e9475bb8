package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera is a fixed pinhole looking through the image plane at world z=0.
// One pixel maps to one world unit, so the distance to the plane alone sets
// the apparent zoom.
type Camera struct {
	origin     core.Vec3
	halfWidth  float64
	halfHeight float64
}

// NewCamera creates a pinhole camera at origin for a width x height frame
func NewCamera(origin core.Vec3, width, height int) *Camera {
	return &Camera{
		origin:     origin,
		halfWidth:  float64(width) / 2,
		halfHeight: float64(height) / 2,
	}
}

// Target returns the world-space point on the image plane for pixel (x, y).
// Y is flipped: screen rows grow downward, world Y grows upward.
func (c *Camera) Target(x, y int) core.Vec3 {
	return core.NewVec3(float64(x)-c.halfWidth, c.halfHeight-float64(y), 0)
}

// GetRay generates the primary ray for pixel (x, y)
func (c *Camera) GetRay(x, y int) core.Ray {
	direction := c.Target(x, y).Subtract(c.origin).Normalize()
	return core.NewRay(c.origin, direction)
}
