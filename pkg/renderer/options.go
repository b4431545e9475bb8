package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultMaxDepth is the reflection recursion bound of the reference scene
const DefaultMaxDepth = 5

var (
	ErrInvalidOptions  = errors.New("renderer: invalid options")
	ErrSceneNotDefined = errors.New("renderer: no scene defined")
)

// Options contains rendering configuration
type Options struct {
	Width    int       // Image width in pixels
	Height   int       // Image height in pixels
	Camera   core.Vec3 // Eye position; the image plane is world z=0
	MaxDepth int       // Maximum reflection depth
	Workers  int       // Parallel workers; 1 renders on the calling goroutine, 0 uses every CPU
	Shadows  bool      // Test the point light for occluders
}

// DefaultOptions returns the reference configuration: 256x256 seen from
// (0, 0, 700), depth 5, single-threaded, no shadows
func DefaultOptions() Options {
	return Options{
		Width:    256,
		Height:   256,
		Camera:   core.NewVec3(0, 0, 700),
		MaxDepth: DefaultMaxDepth,
		Workers:  1,
	}
}

// Validate checks that the options describe a renderable frame
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: frame size %dx%d must be positive", ErrInvalidOptions, o.Width, o.Height)
	}
	if o.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth %d is negative", ErrInvalidOptions, o.MaxDepth)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: worker count %d is negative", ErrInvalidOptions, o.Workers)
	}
	if !o.Camera.IsFinite() {
		return fmt.Errorf("%w: camera position %v is not finite", ErrInvalidOptions, o.Camera)
	}
	return nil
}
