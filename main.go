package main

import (
	"os"

	"github.com/Stroby241/svoray/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "svoray"
	app.Usage = "render paged sparse voxel octrees using ray traversal"
	app.Version = "0.0.1"
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

	renderFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 512,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 512,
			Usage: "frame height",
		},
		cli.IntFlag{
			Name:  "num-tracers",
			Value: 0,
			Usage: "number of cpu tracers; 0 selects one per logical cpu",
		},
		cli.IntFlag{
			Name:  "max-steps",
			Value: 256,
			Usage: "per-ray traversal step budget",
		},
		cli.StringFlag{
			Name:  "mode",
			Value: "shaded",
			Usage: "render mode: shaded, depth or steps",
		},
		cli.Float64Flag{
			Name:  "debug-scale",
			Value: 1.0,
			Usage: "scale factor for the depth/steps debug modes",
		},
		cli.StringFlag{
			Name:  "materials",
			Value: "",
			Usage: "json material palette; omit to use the built-in palette",
		},
		cli.StringFlag{
			Name:  "eye",
			Value: "",
			Usage: "camera position as x,y,z",
		},
		cli.StringFlag{
			Name:  "look-at",
			Value: "",
			Usage: "camera target as x,y,z",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "render",
			Usage:  "render octree",
			Action: nil,
			Subcommands: []cli.Command{
				{
					Name:        "frame",
					Usage:       "render single frame",
					Description: `Render a single frame of an octree snapshot and save it as a png image.`,
					ArgsUsage:   "octree_file.svo",
					Flags: append(renderFlags, cli.StringFlag{
						Name:  "out, o",
						Value: "frame.png",
						Usage: "image filename for the rendered frame",
					}),
					Action: cmd.RenderFrame,
				},
				{
					Name:        "interactive",
					Usage:       "render interactive view of the octree",
					Description: `Open a window and re-render the octree as the camera moves. Use the arrow keys or WASD to move and drag with the left mouse button to look around.`,
					ArgsUsage:   "octree_file.svo",
					Flags:       renderFlags,
					Action:      cmd.RenderInteractive,
				},
			},
		},
		{
			Name:      "info",
			Usage:     "print octree snapshot statistics",
			ArgsUsage: "octree_file.svo",
			Action:    cmd.Info,
		},
	}

	app.Run(os.Args)
}
