package loaders

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

// ErrUnsupportedFormat is returned for image file extensions with no encoder
var ErrUnsupportedFormat = errors.New("loaders: unsupported image format")

// SupportedFormats lists the extensions SaveImage can write
var SupportedFormats = []string{".png", ".bmp"}

// SaveImage writes img to filename, choosing the encoder from the file
// extension. Missing parent directories are created.
func SaveImage(filename string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(filename))
	var encode func(io.Writer, image.Image) error
	switch ext {
	case ".png":
		encode = png.Encode
	case ".bmp":
		encode = bmp.Encode
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	if err := encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", ext, err)
	}
	return file.Close()
}

// LoadImage loads a PNG, BMP or JPEG image as RGBA
func LoadImage(filename string) (*image.RGBA, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode auto-detects the format from the file header
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba, nil
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba, nil
}

// Resize scales img to width x height with a Catmull-Rom filter
func Resize(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}

// ImageDiff summarizes the per-channel difference of two equally sized images
type ImageDiff struct {
	DifferentPixels int
	MaxDelta        uint8 // Largest absolute difference of any RGBA channel
}

// Identical reports whether the images matched byte for byte
func (d ImageDiff) Identical() bool {
	return d.DifferentPixels == 0
}

// Compare diffs two images of the same size
func Compare(a, b *image.RGBA) (ImageDiff, error) {
	if a.Bounds().Size() != b.Bounds().Size() {
		return ImageDiff{}, fmt.Errorf("image sizes differ: %v vs %v", a.Bounds().Size(), b.Bounds().Size())
	}

	var diff ImageDiff
	size := a.Bounds().Size()
	for y := 0; y < size.Y; y++ {
		rowA := a.Pix[y*a.Stride : y*a.Stride+size.X*4]
		rowB := b.Pix[y*b.Stride : y*b.Stride+size.X*4]
		for x := 0; x < len(rowA); x += 4 {
			differs := false
			for c := 0; c < 4; c++ {
				delta := absDiff(rowA[x+c], rowB[x+c])
				if delta > 0 {
					differs = true
					diff.MaxDelta = max(diff.MaxDelta, delta)
				}
			}
			if differs {
				diff.DifferentPixels++
			}
		}
	}
	return diff, nil
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
