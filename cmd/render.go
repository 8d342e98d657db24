package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/Stroby241/svoray/asset/material"
	"github.com/Stroby241/svoray/asset/octree"
	"github.com/Stroby241/svoray/renderer"
	"github.com/Stroby241/svoray/scene"
	"github.com/Stroby241/svoray/tracer"
	"github.com/Stroby241/svoray/tracer/svo"
	"github.com/Stroby241/svoray/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, opts, err := setupScene(ctx)
	if err != nil {
		return err
	}

	r, err := renderer.NewDefault(sc, tracer.NaiveScheduler(), opts)
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Notice("rendering frame")
	start := time.Now()
	if err = r.Render(); err != nil {
		return err
	}
	logger.Noticef("rendered frame in %d ms", time.Since(start).Nanoseconds()/1e6)

	imgFile := ctx.String("out")
	f, err := os.Create(imgFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = png.Encode(f, r.Frame()); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", imgFile)

	displayFrameStats(r.Stats())
	return nil
}

// Use opengl to render an interactive view of the octree which can be
// explored with the keyboard and mouse.
func RenderInteractive(ctx *cli.Context) error {
	setupLogging(ctx)

	// glfw event handling must run on the main OS thread
	runtime.LockOSThread()

	sc, opts, err := setupScene(ctx)
	if err != nil {
		return err
	}

	r, err := renderer.NewInteractive(sc, tracer.PerfectScheduler(), opts)
	if err != nil {
		return err
	}
	defer r.Close()

	return r.Render()
}

// Load the octree snapshot and material palette referenced by the context
// arguments and assemble the scene and renderer options.
func setupScene(ctx *cli.Context) (*scene.Scene, renderer.Options, error) {
	var opts renderer.Options

	if ctx.NArg() != 1 {
		return nil, opts, errors.New("missing octree file argument")
	}

	mode, err := parseRenderMode(ctx.String("mode"))
	if err != nil {
		return nil, opts, err
	}

	opts = renderer.Options{
		FrameW:     uint32(ctx.Int("width")),
		FrameH:     uint32(ctx.Int("height")),
		NumTracers: uint32(ctx.Int("num-tracers")),
		Traversal: svo.Options{
			MaxSteps:   uint32(ctx.Int("max-steps")),
			Mode:       mode,
			DebugScale: float32(ctx.Float64("debug-scale")),
		},
	}

	snap, err := octree.ReadFile(ctx.Args().First())
	if err != nil {
		return nil, opts, err
	}
	logger.Noticef(
		"loaded octree: %d pages of %d nodes, max depth %d, root size %d",
		snap.PageCount(), snap.PageSize(), snap.MaxDepth(), snap.RootSize(),
	)

	materials := material.DefaultTable()
	if palFile := ctx.String("materials"); palFile != "" {
		materials, err = material.ReadTable(palFile)
		if err != nil {
			return nil, opts, err
		}
	}

	sc := scene.New(snap, materials)
	if eye := ctx.String("eye"); eye != "" {
		if sc.Camera.Position, err = parseVec3(eye); err != nil {
			return nil, opts, err
		}
	}
	if lookAt := ctx.String("look-at"); lookAt != "" {
		if sc.Camera.LookAt, err = parseVec3(lookAt); err != nil {
			return nil, opts, err
		}
	}
	sc.Camera.SetupProjection(float32(opts.FrameW) / float32(opts.FrameH))

	return sc, opts, nil
}

func parseRenderMode(mode string) (svo.RenderMode, error) {
	switch mode {
	case "shaded":
		return svo.ModeShaded, nil
	case "depth":
		return svo.ModeDepth, nil
	case "steps":
		return svo.ModeSteps, nil
	}
	return svo.ModeShaded, fmt.Errorf("unsupported render mode %q", mode)
}

// Parse a comma-delimited coordinate triplet.
func parseVec3(list string) (types.Vec3, error) {
	var out types.Vec3

	fields := strings.Split(list, ",")
	if len(fields) != 3 {
		return out, fmt.Errorf("invalid coordinate triplet %q", list)
	}

	for i, field := range fields {
		val, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
		if err != nil {
			return out, fmt.Errorf("invalid coordinate triplet %q", list)
		}
		out[i] = float32(val)
	}
	return out, nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Block height", "% of frame", "Render time"})
	for _, stat := range stats.Tracers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%s", stat.RenderTime),
		})
	}
	table.SetFooter([]string{"", "", "TOTAL", fmt.Sprintf("%s", stats.RenderTime)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
