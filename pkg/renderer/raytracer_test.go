package renderer

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// MockScene implements Scene for testing
type MockScene struct {
	shapes     []geometry.Shape
	background core.Color
	light      lights.PointLight
}

func (m MockScene) GetShapes() []geometry.Shape { return m.shapes }
func (m MockScene) GetBackground() core.Color { return m.background }
func (m MockScene) GetLight() lights.PointLight { return m.light }

func ambient(c core.Color) material.Material {
	return material.NewReflective(c, 1, 0, 0, 1, 0)
}

func mustSphere(t *testing.T, center core.Vec3, radius float64, mat material.Material) *geometry.Ellipsoid {
	t.Helper()
	s, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		t.Fatalf("NewSphere failed: %v", err)
	}
	return s
}

func mustTriangle(t *testing.T, v0, v1, v2 core.Vec3, mat material.Material) *geometry.Triangle {
	t.Helper()
	tri, err := geometry.NewTriangle(v0, v1, v2, mat)
	if err != nil {
		t.Fatalf("NewTriangle failed: %v", err)
	}
	return tri
}

func mustRaytracer(t *testing.T, s Scene, opts Options) *Raytracer {
	t.Helper()
	rt, err := NewRaytracer(s, opts)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}
	return rt
}

func TestRaytracer_CastRay_MissReturnsBackground(t *testing.T) {
	background := core.NewColor(12, 34, 56)
	s := MockScene{
		shapes:     []geometry.Shape{mustSphere(t, core.NewVec3(0, 0, 0), 50, ambient(core.NewColor(255, 0, 0)))},
		background: background,
		light:      lights.NewPointLight(core.NewVec3(0, 0, 100), 1),
	}
	rt := mustRaytracer(t, s, DefaultOptions())

	got := rt.CastRay(core.NewRay(core.NewVec3(0, 0, 700), core.NewVec3(0, 1, 0)), 0)
	if got != background {
		t.Errorf("Expected background %v, got %v", background, got)
	}

	empty := mustRaytracer(t, MockScene{background: background}, DefaultOptions())
	if got := empty.CastRay(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0); got != background {
		t.Errorf("Expected background from empty scene, got %v", got)
	}
}

func TestRaytracer_CastRay_NearestShapeWins(t *testing.T) {
	red := core.NewColor(255, 0, 0)
	green := core.NewColor(0, 255, 0)
	blue := core.NewColor(0, 0, 255)

	tests := []struct {
		name     string
		shapes   []geometry.Shape
		expected core.Color
	}{
		{
			name: "far shape listed first",
			shapes: []geometry.Shape{
				mustSphere(t, core.NewVec3(0, 0, -200), 50, ambient(red)),
				mustSphere(t, core.NewVec3(0, 0, 0), 50, ambient(green)),
			},
			expected: green,
		},
		{
			name: "near shape listed first",
			shapes: []geometry.Shape{
				mustSphere(t, core.NewVec3(0, 0, 0), 50, ambient(green)),
				mustSphere(t, core.NewVec3(0, 0, -200), 50, ambient(red)),
			},
			expected: green,
		},
		{
			name: "ties go to the first shape scanned",
			shapes: []geometry.Shape{
				mustSphere(t, core.NewVec3(0, 0, 0), 50, ambient(blue)),
				mustSphere(t, core.NewVec3(0, 0, 0), 50, ambient(red)),
			},
			expected: blue,
		},
		{
			name: "triangle in front of sphere",
			shapes: []geometry.Shape{
				mustSphere(t, core.NewVec3(0, 0, 0), 50, ambient(red)),
				mustTriangle(t,
					core.NewVec3(-100, -100, 100),
					core.NewVec3(-100, 300, 100),
					core.NewVec3(300, -100, 100),
					ambient(blue)),
			},
			expected: blue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := MockScene{shapes: tt.shapes, light: lights.NewPointLight(core.NewVec3(0, 0, 1000), 1)}
			rt := mustRaytracer(t, s, DefaultOptions())

			got := rt.CastRay(core.NewRay(core.NewVec3(0, 0, 700), core.NewVec3(0, 0, -1)), 0)
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// facingMirrors returns two parallel mirrors at x=±100 with normals pointing
// at each other. Each contributes 10 red of ambient light per bounce.
func facingMirrors(t *testing.T) MockScene {
	mirror := material.NewReflective(core.NewColor(100, 0, 0), 0.1, 0, 0, 1, 1)
	return MockScene{
		shapes: []geometry.Shape{
			mustTriangle(t,
				core.NewVec3(-100, -2000, -2000),
				core.NewVec3(-100, -2000, 4000),
				core.NewVec3(-100, 4000, -2000),
				mirror),
			mustTriangle(t,
				core.NewVec3(100, -2000, -2000),
				core.NewVec3(100, 4000, -2000),
				core.NewVec3(100, -2000, 4000),
				mirror),
		},
		background: core.NewColor(0, 0, 255),
		light:      lights.NewPointLight(core.NewVec3(0, 1000, 0), 1),
	}
}

func TestRaytracer_CastRay_RecursionBoundedByMaxDepth(t *testing.T) {
	s := facingMirrors(t)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))

	for _, maxDepth := range []int{0, 1, DefaultMaxDepth, 12} {
		opts := DefaultOptions()
		opts.MaxDepth = maxDepth
		rt := mustRaytracer(t, s, opts)

		var stats RayStats
		got := rt.newTracer(&stats).CastRay(ray, 0)

		if stats.Reflection != maxDepth {
			t.Errorf("maxDepth=%d: expected %d reflection rays, got %d", maxDepth, maxDepth, stats.Reflection)
		}
		if stats.MaxDepth != maxDepth {
			t.Errorf("maxDepth=%d: expected deepest level %d, got %d", maxDepth, maxDepth, stats.MaxDepth)
		}

		// One ambient contribution per level, the background is never reached
		expected := core.NewColor(10*float64(maxDepth+1), 0, 0)
		if math.Abs(got.R-expected.R) > 1e-9 || got.G != 0 || got.B != 0 {
			t.Errorf("maxDepth=%d: expected %v, got %v", maxDepth, expected, got)
		}
	}
}

func TestRaytracer_CastRay_ReflectionSeesOtherShapes(t *testing.T) {
	// A mirror facing +Z reflects the camera ray back toward a red sphere
	// sitting behind the camera
	mirror := material.NewReflective(core.NewColor(0, 0, 0), 0, 0, 0, 1, 0.5)
	s := MockScene{
		shapes: []geometry.Shape{
			mustTriangle(t,
				core.NewVec3(-100, -100, 0),
				core.NewVec3(-100, 300, 0),
				core.NewVec3(300, -100, 0),
				mirror),
			mustSphere(t, core.NewVec3(0, 0, 300), 20, ambient(core.NewColor(200, 0, 0))),
		},
		light: lights.NewPointLight(core.NewVec3(0, 0, 1000), 1),
	}
	rt := mustRaytracer(t, s, DefaultOptions())

	got := rt.CastRay(core.NewRay(core.NewVec3(0, 0, 100), core.NewVec3(0, 0, -1)), 0)
	expected := core.NewColor(100, 0, 0)
	if got != expected {
		t.Errorf("Expected half of the reflected sphere %v, got %v", expected, got)
	}
}

func TestRaytracer_Shadows(t *testing.T) {
	floor := material.NewReflective(core.NewColor(200, 200, 200), 0.1, 0.5, 0, 1, 0)
	blocker := ambient(core.NewColor(0, 0, 0))
	s := MockScene{
		shapes: []geometry.Shape{
			// Floor at y=0 facing +Y
			mustTriangle(t,
				core.NewVec3(-500, 0, 500),
				core.NewVec3(-500, 0, -500),
				core.NewVec3(1000, 0, 500),
				floor),
			// Blocker between the floor origin and the light
			mustSphere(t, core.NewVec3(0, 100, 0), 10, blocker),
		},
		light: lights.NewPointLight(core.NewVec3(0, 200, 0), 1),
	}
	ray := core.NewRay(core.NewVec3(0, 10, 10), core.NewVec3(0, -1, -1).Normalize())

	opts := DefaultOptions()
	lit := mustRaytracer(t, s, opts).CastRay(ray, 0)

	opts.Shadows = true
	shadowed := mustRaytracer(t, s, opts).CastRay(ray, 0)

	if math.Abs(lit.R-120) > 1e-9 {
		t.Errorf("Expected lit floor (120), got %v", lit)
	}
	if math.Abs(shadowed.R-20) > 1e-9 {
		t.Errorf("Expected shadowed floor (20), got %v", shadowed)
	}
}

func TestRaytracer_Render_SingleSphere(t *testing.T) {
	s, err := scene.Builtin("single-sphere")
	if err != nil {
		t.Fatalf("Failed to build scene: %v", err)
	}
	rt := mustRaytracer(t, s, DefaultOptions())
	img := rt.Render()

	if img.Bounds().Dx() != 256 || img.Bounds().Dy() != 256 {
		t.Fatalf("Expected 256x256 raster, got %v", img.Bounds())
	}
	if len(img.Pix) != 256*256*4 {
		t.Fatalf("Expected %d bytes, got %d", 256*256*4, len(img.Pix))
	}

	tests := []struct {
		name     string
		x, y     int
		expected color.RGBA
	}{
		{"silhouette center", 128, 128, color.RGBA{255, 0, 0, 255}},
		{"inside silhouette", 140, 120, color.RGBA{255, 0, 0, 255}},
		{"top left corner misses", 0, 0, color.RGBA{0, 0, 0, 255}},
		{"right of the sphere misses", 200, 128, color.RGBA{0, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := img.RGBAAt(tt.x, tt.y); got != tt.expected {
				t.Errorf("Pixel (%d, %d): expected %v, got %v", tt.x, tt.y, tt.expected, got)
			}
		})
	}
}

func TestRaytracer_Render_YAxisPointsUp(t *testing.T) {
	// Sphere above the origin in world space appears in the top half
	s := MockScene{
		shapes: []geometry.Shape{mustSphere(t, core.NewVec3(0, 60, 0), 20, ambient(core.NewColor(0, 255, 0)))},
		light:  lights.NewPointLight(core.NewVec3(0, 0, 1000), 1),
	}
	img := mustRaytracer(t, s, DefaultOptions()).Render()

	if got := img.RGBAAt(128, 128-60); got.G != 255 {
		t.Errorf("Expected sphere in the upper half, got %v", got)
	}
	if got := img.RGBAAt(128, 128+60); got.G != 0 {
		t.Errorf("Expected nothing in the lower half, got %v", got)
	}
}

func TestRaytracer_Render_Idempotent(t *testing.T) {
	s, err := scene.Builtin("default")
	if err != nil {
		t.Fatalf("Failed to build scene: %v", err)
	}
	opts := DefaultOptions()
	opts.Width, opts.Height = 64, 48
	opts.Shadows = true
	rt := mustRaytracer(t, s, opts)

	first := rt.Render()
	second := rt.Render()
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("Expected byte-identical renders of the same scene")
	}
}

func TestRaytracer_Render_ParallelMatchesSequential(t *testing.T) {
	s, err := scene.Builtin("default")
	if err != nil {
		t.Fatalf("Failed to build scene: %v", err)
	}

	opts := DefaultOptions()
	opts.Width, opts.Height = 96, 80
	opts.Shadows = true
	sequential, seqStats := mustRaytracer(t, s, opts).RenderWithStats()

	opts.Workers = 4
	parallel, parStats := mustRaytracer(t, s, opts).RenderWithStats()

	if !bytes.Equal(sequential.Pix, parallel.Pix) {
		t.Error("Expected parallel render to match sequential render")
	}
	if seqStats.Rays != parStats.Rays {
		t.Errorf("Expected identical ray counts, got %+v and %+v", seqStats.Rays, parStats.Rays)
	}
	if parStats.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", parStats.Workers)
	}
}

func TestRaytracer_RenderWithStats(t *testing.T) {
	s, err := scene.Builtin("mirrors")
	if err != nil {
		t.Fatalf("Failed to build scene: %v", err)
	}
	opts := DefaultOptions()
	opts.Width, opts.Height = 40, 30
	opts.Workers = 3
	_, stats := mustRaytracer(t, s, opts).RenderWithStats()

	if stats.Pixels != 1200 || stats.Rays.Primary != 1200 {
		t.Errorf("Expected 1200 pixels and primary rays, got %d and %d", stats.Pixels, stats.Rays.Primary)
	}
	if stats.Rays.Shadow != 0 {
		t.Errorf("Expected no shadow rays with shadows disabled, got %d", stats.Rays.Shadow)
	}
	if stats.Rays.MaxDepth > opts.MaxDepth {
		t.Errorf("Recursion went past max depth: %d", stats.Rays.MaxDepth)
	}

	// Bands are ordered and cover every row exactly once
	nextRow := 0
	for i, band := range stats.Bands {
		if band.TaskID != i {
			t.Errorf("Expected band %d to have TaskID %d, got %d", i, i, band.TaskID)
		}
		if band.MinY != nextRow {
			t.Errorf("Expected band %d to start at row %d, got %d", i, nextRow, band.MinY)
		}
		nextRow = band.MaxY
	}
	if nextRow != opts.Height {
		t.Errorf("Expected bands to end at row %d, got %d", opts.Height, nextRow)
	}
}

func TestNewRaytracer_Errors(t *testing.T) {
	if _, err := NewRaytracer(nil, DefaultOptions()); !errors.Is(err, ErrSceneNotDefined) {
		t.Errorf("Expected ErrSceneNotDefined, got %v", err)
	}

	opts := DefaultOptions()
	opts.Width = 0
	if _, err := NewRaytracer(MockScene{}, opts); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("Expected ErrInvalidOptions, got %v", err)
	}
}

func TestRaytracer_RenderContext_Cancelled(t *testing.T) {
	s, err := scene.Builtin("default")
	if err != nil {
		t.Fatalf("Failed to build scene: %v", err)
	}

	for _, workers := range []int{1, 4} {
		opts := DefaultOptions()
		opts.Width, opts.Height = 32, 32
		opts.Workers = workers
		rt := mustRaytracer(t, s, opts)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		img, stats, err := rt.RenderContext(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("workers=%d: expected context.Canceled, got %v", workers, err)
		}
		if img == nil || img.Bounds().Dx() != 32 {
			t.Errorf("workers=%d: expected the partial frame to be returned", workers)
		}
		if stats.Rays.Primary != 0 {
			t.Errorf("workers=%d: expected no rays for a cancelled render, got %d", workers, stats.Rays.Primary)
		}
	}
}

func TestRaytracer_RenderContext_MatchesRender(t *testing.T) {
	s, err := scene.Builtin("mirrors")
	if err != nil {
		t.Fatalf("Failed to build scene: %v", err)
	}
	opts := DefaultOptions()
	opts.Width, opts.Height = 40, 24
	opts.Workers = 3
	rt := mustRaytracer(t, s, opts)

	img, _, err := rt.RenderContext(context.Background())
	if err != nil {
		t.Fatalf("RenderContext failed: %v", err)
	}
	if !bytes.Equal(img.Pix, rt.Render().Pix) {
		t.Error("Expected RenderContext to match Render")
	}
}
