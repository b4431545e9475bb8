package main

import (
	"fmt"
	"os"

	"github.com/df07/go-whitted-raytracer/cmd"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	defaults := renderer.DefaultOptions()

	// The default version flag also claims -v, which is the verbosity flag
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "whitted"
	app.Usage = "render ellipsoids and triangles with recursive Whitted raytracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a builtin scene or a JSON scene file. The camera looks down -Z through
the image plane at z=0, one pixel per world unit, centered on the origin.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "builtin scene name or path to a .json scene file",
				},
				cli.IntFlag{
					Name:  "width",
					Value: defaults.Width,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: defaults.Height,
					Usage: "frame height",
				},
				cli.StringFlag{
					Name:  "camera",
					Value: "0,0,700",
					Usage: "eye position as x,y,z",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Value: defaults.MaxDepth,
					Usage: "maximum number of mirror bounces",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Value: 0,
					Usage: "parallel render workers; 0 uses every CPU",
				},
				cli.BoolFlag{
					Name:  "shadows",
					Usage: "test the point light for occluders",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame (.png or .bmp)",
				},
				cli.StringFlag{
					Name:  "thumbnail",
					Usage: "also write a quarter-size preview to this file",
				},
				cli.BoolFlag{
					Name:  "stats",
					Usage: "display per-band ray statistics",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:  "scenes",
			Usage: "list builtin scenes and scene files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Value: "scenes",
					Usage: "directory to scan for .json scene files",
				},
			},
			Action: cmd.ListScenes,
		},
		{
			Name:      "export",
			Usage:     "print a builtin scene as JSON",
			ArgsUsage: "scene_name",
			Action:    cmd.ExportScene,
		},
		{
			Name:      "validate",
			Usage:     "load and validate scene files",
			ArgsUsage: "scene_file1.json scene_file2.json ...",
			Action:    cmd.ValidateScenes,
		},
		{
			Name:      "compare",
			Usage:     "check that two rendered images are identical",
			ArgsUsage: "image1 image2",
			Action:    cmd.CompareImages,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
