package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Stroby241/svoray/asset/octree"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Print octree snapshot statistics.
func Info(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing octree file argument")
	}

	snap, err := octree.ReadFile(ctx.Args().First())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Property", "Value"})
	table.AppendBulk([][]string{
		{"Max depth", fmt.Sprintf("%d", snap.MaxDepth())},
		{"Root size", fmt.Sprintf("%d voxels", snap.RootSize())},
		{"Page size", fmt.Sprintf("%d nodes (%d bits)", snap.PageSize(), snap.PageBits())},
		{"Resident pages", fmt.Sprintf("%d", snap.PageCount())},
		{"Node capacity", fmt.Sprintf("%d slots", snap.NodeCapacity())},
		{"Store size", fmt.Sprintf("%d KiB", snap.NodeCapacity()*octree.NodeWords*4/1024)},
	})

	table.Render()
	logger.Noticef("octree info for %s\n%s", ctx.Args().First(), buf.String())
	return nil
}
