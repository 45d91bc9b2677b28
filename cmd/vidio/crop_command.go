package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vidio/internal/ffargs"
	"vidio/internal/geometry"
	"vidio/internal/runner"
)

type cropCommand struct {
	ctx *commandContext
}

func (cropCommand) Name() string { return "crop" }

func (c cropCommand) Register(parent *cobra.Command) {
	var opts ffargs.CropOptions
	var x, y int
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "crop <input> <output>",
		Short: "Crop a region out of a video",
		Long: fmt.Sprintf(`Crop a video to an aspect preset or an explicit region.

A preset takes the largest centred region with that ratio and cannot be
combined with --width/--height/--x/--y. Explicit regions are centred unless
--x/--y are given. Presets: %s.`, strings.Join(geometry.PresetNames(), ", ")),
		Example: `  vidio crop input.mp4 output.mp4 --preset 9:16
  vidio crop input.mp4 output.mp4 --preset center-square
  vidio crop input.mp4 output.mp4 -w 1280 -H 720 --x 0 --y 0`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input, opts.Output = args[0], args[1]
			opts.X, opts.Y = nil, nil
			if cmd.Flags().Changed("x") {
				opts.X = &x
			}
			if cmd.Flags().Changed("y") {
				opts.Y = &y
			}
			return c.run(cmd, c.ctx.options(), opts, overwrite)
		},
	}
	cmd.Flags().StringVarP(&opts.Preset, "preset", "p", "", "Aspect preset ("+strings.Join(geometry.PresetNames(), ", ")+")")
	cmd.Flags().IntVarP(&opts.Width, "width", "w", 0, "Crop width in pixels")
	cmd.Flags().IntVarP(&opts.Height, "height", "H", 0, "Crop height in pixels")
	cmd.Flags().IntVar(&x, "x", 0, "Left edge of the crop (default: centred)")
	cmd.Flags().IntVar(&y, "y", 0, "Top edge of the crop (default: centred)")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "f", false, "Overwrite the output file if it exists")
	parent.AddCommand(cmd)
}

func (c cropCommand) run(cmd *cobra.Command, opts cliOptions, crop ffargs.CropOptions, overwrite bool) error {
	crop.Encoding = c.ctx.config.EncodingDefaults()
	if err := ffargs.ValidateCrop(crop); err != nil {
		return err
	}
	if err := checkPaths("crop", []string{crop.Input}, crop.Output, overwrite); err != nil {
		return err
	}

	r := c.ctx.toolRunner(cmd, opts)
	source, err := probeSize(cmd, r, "crop", crop.Input)
	if err != nil {
		return err
	}
	crop.Source = source

	region, err := ffargs.ResolveCropRegion(crop)
	if err != nil {
		return err
	}
	args, err := ffargs.BuildCrop(crop)
	if err != nil {
		return err
	}
	c.ctx.commandLogger("crop").Debug("crop region", "source", source.String(), "region", region.String())

	if err := r.Run(cmd.Context(), runner.Job{Tool: "ffmpeg", Args: args, Output: crop.Output, Force: overwrite}); err != nil {
		return err
	}
	newPrinter(cmd.OutOrStdout(), opts).success("Cropped video (%s) saved to %s", region, crop.Output)
	return nil
}
