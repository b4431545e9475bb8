package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/signal"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// thumbnailDivisor is the downscale factor of the --thumbnail image
const thumbnailDivisor = 4

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := optionsFromFlags(ctx)
	if err != nil {
		return err
	}

	sc, err := scene.Resolve(ctx.String("scene"))
	if err != nil {
		return err
	}
	ellipsoids, triangles := sc.PrimitiveCounts()
	logger.Infof("loaded scene %q: %d ellipsoid(s), %d triangle(s)", ctx.String("scene"), ellipsoids, triangles)

	rt, err := renderer.NewRaytracer(sc, opts)
	if err != nil {
		return err
	}
	rt.SetLogger(logger)

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, stats, err := rt.RenderContext(renderCtx)
	if err != nil {
		return fmt.Errorf("render interrupted: %w", err)
	}

	out := ctx.String("out")
	if err := loaders.SaveImage(out, img); err != nil {
		return err
	}
	logger.Noticef("rendered %dx%d frame in %s, saved to %s", opts.Width, opts.Height, stats.RenderTime, out)

	if thumb := ctx.String("thumbnail"); thumb != "" {
		if err := saveThumbnail(thumb, img); err != nil {
			return err
		}
		logger.Infof("saved thumbnail to %s", thumb)
	}

	if ctx.Bool("stats") {
		displayFrameStats(stats, renderer.CalculateAverageLuminance(img))
	}
	return nil
}

func optionsFromFlags(ctx *cli.Context) (renderer.Options, error) {
	opts := renderer.DefaultOptions()
	opts.Width = ctx.Int("width")
	opts.Height = ctx.Int("height")
	opts.MaxDepth = ctx.Int("max-depth")
	opts.Workers = ctx.Int("workers")
	opts.Shadows = ctx.Bool("shadows")

	if ctx.IsSet("camera") {
		camera, err := core.ParseVec3(ctx.String("camera"))
		if err != nil {
			return opts, fmt.Errorf("invalid --camera: %w", err)
		}
		opts.Camera = camera
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

func saveThumbnail(filename string, img *image.RGBA) error {
	bounds := img.Bounds()
	width := max(1, bounds.Dx()/thumbnailDivisor)
	height := max(1, bounds.Dy()/thumbnailDivisor)
	return loaders.SaveImage(filename, loaders.Resize(img, width, height))
}

// Compare two rendered images.
func CompareImages(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 2 {
		return errors.New("compare expects exactly two image files")
	}

	a, err := loaders.LoadImage(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	b, err := loaders.LoadImage(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	diff, err := loaders.Compare(a, b)
	if err != nil {
		return err
	}
	if !diff.Identical() {
		return fmt.Errorf("images differ: %d pixel(s), max channel delta %d", diff.DifferentPixels, diff.MaxDelta)
	}

	fmt.Fprintln(ctx.App.Writer, "images are identical")
	return nil
}

func displayFrameStats(stats renderer.RenderStats, luminance float64) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Band", "Worker", "Rows", "Primary", "Reflection", "Shadow", "Render time"})
	for _, band := range stats.Bands {
		table.Append([]string{
			fmt.Sprintf("%d", band.TaskID),
			fmt.Sprintf("%d", band.Worker),
			fmt.Sprintf("%d-%d", band.MinY, band.MaxY-1),
			fmt.Sprintf("%d", band.Rays.Primary),
			fmt.Sprintf("%d", band.Rays.Reflection),
			fmt.Sprintf("%d", band.Rays.Shadow),
			band.RenderTime.String(),
		})
	}
	table.SetFooter([]string{
		"", fmt.Sprintf("%d", stats.Workers), "TOTAL",
		fmt.Sprintf("%d", stats.Rays.Primary),
		fmt.Sprintf("%d", stats.Rays.Reflection),
		fmt.Sprintf("%d", stats.Rays.Shadow),
		stats.RenderTime.String(),
	})

	table.Render()
	logger.Noticef("frame statistics (max depth reached %d, average luminance %.3f)\n%s",
		stats.Rays.MaxDepth, luminance, buf.String())
}
