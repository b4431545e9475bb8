package cmd

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List builtin scenes and the scene files found in --dir.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	scenes := scene.ListBuiltinScenes()
	if dir := ctx.String("dir"); dir != "" {
		files, errs := scene.ListSceneFiles(dir)
		for _, err := range errs {
			logger.Warningf("skipping scene file: %v", err)
		}
		scenes = append(scenes, files...)
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Type", "Ellipsoids", "Triangles", "Description"})
	for _, info := range scenes {
		table.Append([]string{
			info.ID,
			info.Type,
			fmt.Sprintf("%d", info.Ellipsoids),
			fmt.Sprintf("%d", info.Triangles),
			info.Description,
		})
	}
	table.Render()
	return nil
}

// Print the JSON description of a builtin scene.
func ExportScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing builtin scene name argument")
	}

	desc, err := scene.BuiltinDescription(ctx.Args().First())
	if err != nil {
		return err
	}
	return scene.Encode(ctx.App.Writer, desc)
}

// Load and validate scene files.
func ValidateScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return errors.New("missing scene file argument")
	}

	failed := 0
	for _, filename := range ctx.Args() {
		sc, err := scene.LoadFile(filename)
		if err != nil {
			logger.Errorf("%s: %v", filename, err)
			failed++
			continue
		}
		ellipsoids, triangles := sc.PrimitiveCounts()
		fmt.Fprintf(ctx.App.Writer, "%s: ok (%d ellipsoid(s), %d triangle(s))\n", filename, ellipsoids, triangles)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scene file(s) failed validation", failed, ctx.NArg())
	}
	return nil
}
