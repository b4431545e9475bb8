package renderer

import (
	"image"
	"time"
)

// RayStats counts the rays cast while rendering
type RayStats struct {
	Primary    int // Rays cast at depth 0
	Reflection int // Mirror bounces
	Shadow     int // Occlusion tests toward the light
	MaxDepth   int // Deepest recursion level reached
}

// Total returns the number of rays of every kind
func (s RayStats) Total() int {
	return s.Primary + s.Reflection + s.Shadow
}

func (s *RayStats) merge(other RayStats) {
	s.Primary += other.Primary
	s.Reflection += other.Reflection
	s.Shadow += other.Shadow
	s.MaxDepth = max(s.MaxDepth, other.MaxDepth)
}

// BandStats describes the rendering of one horizontal band of rows
type BandStats struct {
	TaskID     int
	Worker     int
	MinY, MaxY int // Rows [MinY, MaxY)
	Rays       RayStats
	RenderTime time.Duration
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Pixels     int
	Workers    int
	Rays       RayStats
	Bands      []BandStats // Ordered by TaskID
	RenderTime time.Duration
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img in
// [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += 0.2126*float64(c.R)/255 + 0.7152*float64(c.G)/255 + 0.0722*float64(c.B)/255
		}
	}
	return total / float64(pixels)
}
