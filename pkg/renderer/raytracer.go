package renderer

import (
	"context"
	"image"
	"math"
	"runtime"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// maxDistance bounds the nearest-hit search for camera and reflection rays
const maxDistance = math.MaxFloat64

// Scene interface to avoid circular imports
type Scene interface {
	GetBackground() core.Color
	GetLight() lights.PointLight
	GetShapes() []geometry.Shape
}

// Raytracer handles the rendering process. It holds no mutable state, so a
// single Raytracer may render from several goroutines at once.
type Raytracer struct {
	scene  Scene
	opts   Options
	camera *Camera
	logger core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, opts Options) (*Raytracer, error) {
	if scene == nil {
		return nil, ErrSceneNotDefined
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Raytracer{
		scene:  scene,
		opts:   opts,
		camera: NewCamera(opts.Camera, opts.Width, opts.Height),
		logger: core.NopLogger{},
	}, nil
}

// SetLogger sets the logger used for render progress
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// Options returns the options the raytracer was created with
func (rt *Raytracer) Options() Options {
	return rt.opts
}

// CastRay returns the color seen along ray at the given recursion depth
func (rt *Raytracer) CastRay(ray core.Ray, depth int) core.Color {
	var stats RayStats
	return rt.newTracer(&stats).CastRay(ray, depth)
}

// Render renders the whole frame
func (rt *Raytracer) Render() *image.RGBA {
	img, _ := rt.RenderWithStats()
	return img
}

// RenderWithStats renders the whole frame and reports ray counts and timings
func (rt *Raytracer) RenderWithStats() (*image.RGBA, RenderStats) {
	// A background context is never cancelled, so rendering cannot fail
	img, stats, _ := rt.RenderContext(context.Background())
	return img, stats
}

// RenderContext renders the whole frame, stopping early when ctx is
// cancelled. On cancellation the partially rendered image and stats are
// returned together with ctx.Err().
func (rt *Raytracer) RenderContext(ctx context.Context) (*image.RGBA, RenderStats, error) {
	img := image.NewRGBA(image.Rect(0, 0, rt.opts.Width, rt.opts.Height))
	start := time.Now()

	numWorkers := rt.opts.Workers
	if numWorkers == 0 {
		numWorkers = runtime.NumCPU()
	}

	stats := RenderStats{
		Pixels:  rt.opts.Width * rt.opts.Height,
		Workers: numWorkers,
	}

	rt.logger.Debugf("rendering %dx%d frame from %v with %d worker(s), max depth %d",
		rt.opts.Width, rt.opts.Height, rt.opts.Camera, numWorkers, rt.opts.MaxDepth)

	var err error
	if numWorkers == 1 {
		var band BandStats
		band, err = rt.renderBand(ctx, img, 0, rt.opts.Height)
		stats.Bands = []BandStats{band}
	} else {
		stats.Bands, err = rt.renderParallel(ctx, img, numWorkers)
	}

	for _, band := range stats.Bands {
		stats.Rays.merge(band.Rays)
	}
	stats.RenderTime = time.Since(start)

	if err != nil {
		rt.logger.Infof("render stopped after %s: %v", stats.RenderTime, err)
		return img, stats, err
	}

	rt.logger.Debugf("rendered %d pixels with %d rays in %s", stats.Pixels, stats.Rays.Total(), stats.RenderTime)
	return img, stats, nil
}

// renderBand renders rows [minY, maxY) into img, checking ctx before each
// row
func (rt *Raytracer) renderBand(ctx context.Context, img *image.RGBA, minY, maxY int) (BandStats, error) {
	start := time.Now()
	band := BandStats{MinY: minY, MaxY: maxY}
	tr := rt.newTracer(&band.Rays)

	for y := minY; y < maxY; y++ {
		if err := ctx.Err(); err != nil {
			band.RenderTime = time.Since(start)
			return band, err
		}
		for x := 0; x < rt.opts.Width; x++ {
			color := tr.CastRay(rt.camera.GetRay(x, y), 0)
			img.SetRGBA(x, y, color.ToRGBA())
		}
	}

	band.RenderTime = time.Since(start)
	return band, nil
}

func (rt *Raytracer) newTracer(stats *RayStats) *tracer {
	return &tracer{
		scene:    rt.scene,
		maxDepth: rt.opts.MaxDepth,
		shadows:  rt.opts.Shadows,
		stats:    stats,
	}
}

// tracer is the nearest-hit search for one band. Each band owns its tracer
// and counters, so bands share nothing but the read-only scene.
type tracer struct {
	scene    Scene
	maxDepth int
	shadows  bool
	stats    *RayStats
}

// nearest scans every shape and keeps the smallest t. Strict comparison
// means the first shape in scan order wins ties.
func (tr *tracer) nearest(ray core.Ray, tMax float64) (geometry.Shape, float64, bool) {
	var closest geometry.Shape
	closestSoFar := tMax

	for _, shape := range tr.scene.GetShapes() {
		if t, ok := shape.Intersect(ray); ok && t < closestSoFar {
			closestSoFar = t
			closest = shape
		}
	}

	return closest, closestSoFar, closest != nil
}

// CastRay implements geometry.RayCaster
func (tr *tracer) CastRay(ray core.Ray, depth int) core.Color {
	if depth == 0 {
		tr.stats.Primary++
	} else {
		tr.stats.Reflection++
	}
	tr.stats.MaxDepth = max(tr.stats.MaxDepth, depth)

	shape, t, ok := tr.nearest(ray, maxDistance)
	if !ok {
		return tr.scene.GetBackground()
	}

	ctx := geometry.ShadeContext{
		Light:    tr.scene.GetLight(),
		Caster:   tr,
		Depth:    depth,
		MaxDepth: tr.maxDepth,
		Shadows:  tr.shadows,
	}
	return geometry.Shade(shape, ctx, ray.At(t), ray)
}

// Occluded implements geometry.RayCaster
func (tr *tracer) Occluded(ray core.Ray, maxT float64) bool {
	tr.stats.Shadow++
	_, _, ok := tr.nearest(ray, maxT)
	return ok
}
