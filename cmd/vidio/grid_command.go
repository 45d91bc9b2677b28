package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidio/internal/ffargs"
	"vidio/internal/runner"
)

type gridCommand struct {
	ctx *commandContext
}

func (gridCommand) Name() string { return "grid" }

func (c gridCommand) Register(parent *cobra.Command) {
	var opts ffargs.GridOptions
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "grid <input1> <input2> [input...] <output>",
		Short: "Tile videos into a grid",
		Long: `Tile two or more videos into a grid in row-major order.

Without --rows/--cols the grid is as square as possible (4 inputs give 2x2,
5 give 2x3). Each input is scaled to fit its cell and letterboxed with the
background colour. More inputs than cells is an error. Audio is dropped.`,
		Example: `  vidio grid a.mp4 b.mp4 c.mp4 d.mp4 grid.mp4
  vidio grid a.mp4 b.mp4 c.mp4 strip.mp4 --rows 1 --width 480
  vidio grid *.mp4 wall.mp4 --cols 4 --padding 8 --background white`,
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Inputs = args[:len(args)-1]
			opts.Output = args[len(args)-1]
			cfg := c.ctx.config
			if !cmd.Flags().Changed("width") && !cmd.Flags().Changed("height") {
				opts.CellWidth, opts.CellHeight = cfg.Grid.CellWidth, cfg.Grid.CellHeight
			}
			if !cmd.Flags().Changed("background") {
				opts.Background = cfg.Grid.Background
			}
			return c.run(cmd, c.ctx.options(), opts, overwrite)
		},
	}
	cmd.Flags().IntVar(&opts.Rows, "rows", 0, "Number of rows (default: computed)")
	cmd.Flags().IntVar(&opts.Cols, "cols", 0, "Number of columns (default: computed)")
	cmd.Flags().IntVar(&opts.CellWidth, "width", 0, "Cell width in pixels (default 640)")
	cmd.Flags().IntVar(&opts.CellHeight, "height", 0, "Cell height in pixels (default 360)")
	cmd.Flags().IntVar(&opts.Padding, "padding", 0, "Gap between cells in pixels")
	cmd.Flags().StringVar(&opts.Background, "background", ffargs.DefaultBackground, "Background colour (name or #RRGGBB)")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "f", false, "Overwrite the output file if it exists")
	parent.AddCommand(cmd)
}

func (c gridCommand) run(cmd *cobra.Command, opts cliOptions, grid ffargs.GridOptions, overwrite bool) error {
	grid.Encoding = c.ctx.config.EncodingDefaults()
	layout, args, err := ffargs.BuildGrid(grid)
	if err != nil {
		return err
	}
	if err := checkPaths("grid", grid.Inputs, grid.Output, overwrite); err != nil {
		return err
	}

	width, height := layout.CanvasSize()
	c.ctx.commandLogger("grid").Debug("grid layout",
		"rows", layout.Rows,
		"cols", layout.Cols,
		"cell", fmt.Sprintf("%dx%d", layout.CellWidth, layout.CellHeight),
		"canvas_width", width,
		"canvas_height", height,
	)

	r := c.ctx.toolRunner(cmd, opts)
	if err := r.Run(cmd.Context(), runner.Job{Tool: "ffmpeg", Args: args, Output: grid.Output, Force: overwrite}); err != nil {
		return err
	}
	newPrinter(cmd.OutOrStdout(), opts).success("%dx%d grid (%dx%d) saved to %s", layout.Rows, layout.Cols, width, height, grid.Output)
	return nil
}
