package main

import (
	"github.com/spf13/cobra"

	"vidio/internal/ffargs"
	"vidio/internal/geometry"
	"vidio/internal/runner"
)

type concatCommand struct {
	ctx *commandContext
}

func (concatCommand) Name() string { return "concat" }

func (c concatCommand) Register(parent *cobra.Command) {
	var vertical, overwrite bool

	cmd := &cobra.Command{
		Use:   "concat <input1> <input2> [input...] <output>",
		Short: "Stack videos side by side or on top of each other",
		Long: `Stack two or more videos into one frame.

Inputs are placed left to right, or top to bottom with --vertical. Horizontal
stacking needs equal heights and vertical stacking equal widths. The first
input's audio is kept and the output ends with the shortest input.`,
		Example: `  vidio concat left.mp4 right.mp4 side_by_side.mp4
  vidio concat top.mp4 bottom.mp4 stacked.mp4 --vertical`,
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := ffargs.ConcatOptions{
				Inputs:   args[:len(args)-1],
				Output:   args[len(args)-1],
				Vertical: vertical,
			}
			return c.run(cmd, c.ctx.options(), opts, overwrite)
		},
	}
	cmd.Flags().BoolVar(&vertical, "vertical", false, "Stack vertically instead of horizontally")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "f", false, "Overwrite the output file if it exists")
	parent.AddCommand(cmd)
}

func (c concatCommand) run(cmd *cobra.Command, opts cliOptions, concat ffargs.ConcatOptions, overwrite bool) error {
	concat.Encoding = c.ctx.config.EncodingDefaults()
	if err := ffargs.ValidateConcat(concat); err != nil {
		return err
	}
	if err := checkPaths("concat", concat.Inputs, concat.Output, overwrite); err != nil {
		return err
	}

	r := c.ctx.toolRunner(cmd, opts)
	sizes := make([]geometry.Size, 0, len(concat.Inputs))
	for _, in := range concat.Inputs {
		size, err := probeSize(cmd, r, "concat", in)
		if err != nil {
			return err
		}
		sizes = append(sizes, size)
	}
	concat.Sizes = sizes

	args, err := ffargs.BuildConcat(concat)
	if err != nil {
		return err
	}
	c.ctx.commandLogger("concat").Debug("stacking inputs", "count", len(concat.Inputs), "vertical", concat.Vertical)

	if err := r.Run(cmd.Context(), runner.Job{Tool: "ffmpeg", Args: args, Output: concat.Output, Force: overwrite}); err != nil {
		return err
	}
	newPrinter(cmd.OutOrStdout(), opts).success("Combined %d videos into %s", len(concat.Inputs), concat.Output)
	return nil
}
