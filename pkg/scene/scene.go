package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Scene contains all the elements needed for rendering. It is immutable
// once built and safe to read from several goroutines.
type Scene struct {
	Background core.Color
	Light      lights.PointLight
	Shapes     []geometry.Shape // Scanned in order during the nearest-hit search
}

// NewScene validates the light and background and returns a scene holding
// the given shapes
func NewScene(background core.Color, light lights.PointLight, shapes ...geometry.Shape) (*Scene, error) {
	if !background.IsFinite() || background.R < 0 || background.G < 0 || background.B < 0 {
		return nil, fmt.Errorf("scene: invalid background color %v", background)
	}
	if err := light.Validate(); err != nil {
		return nil, err
	}

	s := &Scene{
		Background: background,
		Light:      light,
		Shapes:     make([]geometry.Shape, 0, len(shapes)),
	}
	s.Shapes = append(s.Shapes, shapes...)
	return s, nil
}

// GetBackground returns the color seen by rays that hit nothing
func (s *Scene) GetBackground() core.Color { return s.Background }

// GetLight returns the scene's point light
func (s *Scene) GetLight() lights.PointLight { return s.Light }

// GetShapes returns the shapes in scan order
func (s *Scene) GetShapes() []geometry.Shape { return s.Shapes }

// PrimitiveCounts returns the number of ellipsoids and triangles
func (s *Scene) PrimitiveCounts() (ellipsoids, triangles int) {
	for _, shape := range s.Shapes {
		switch shape.(type) {
		case *geometry.Ellipsoid:
			ellipsoids++
		case *geometry.Triangle:
			triangles++
		}
	}
	return ellipsoids, triangles
}
