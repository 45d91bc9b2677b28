package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vidio/internal/ffargs"
	"vidio/internal/geometry"
	"vidio/internal/runner"
)

type resizeCommand struct {
	ctx *commandContext
}

func (resizeCommand) Name() string { return "resize" }

func (c resizeCommand) Register(parent *cobra.Command) {
	var opts ffargs.ResizeOptions
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "resize <input> <output>",
		Short: "Scale a video to a new size",
		Long: fmt.Sprintf(`Scale a video by explicit size, factor, or aspect preset.

Exactly one of --width/--height, --scale or --preset may be used. A single
side keeps the source aspect ratio. Sizes are rounded to even numbers unless
--force-aspect is set. Presets: %s.`, strings.Join(geometry.PresetNames(), ", ")),
		Example: `  vidio resize input.mp4 output.mp4 --width 1280
  vidio resize input.mp4 output.mp4 --scale 0.5
  vidio resize input.mp4 output.mp4 --preset 9:16
  vidio resize input.mp4 output.mp4 -w 640 -H 640 --force-aspect`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input, opts.Output = args[0], args[1]
			return c.run(cmd, c.ctx.options(), opts, overwrite)
		},
	}
	cmd.Flags().IntVarP(&opts.Width, "width", "w", 0, "Target width in pixels")
	cmd.Flags().IntVarP(&opts.Height, "height", "H", 0, "Target height in pixels")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "Scale factor (e.g. 0.5 halves both sides)")
	cmd.Flags().StringVar(&opts.Preset, "preset", "", "Aspect preset ("+strings.Join(geometry.PresetNames(), ", ")+")")
	cmd.Flags().BoolVar(&opts.ForceAspect, "force-aspect", false, "Use --width/--height verbatim even if it distorts")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "f", false, "Overwrite the output file if it exists")
	parent.AddCommand(cmd)
}

func (c resizeCommand) run(cmd *cobra.Command, opts cliOptions, resize ffargs.ResizeOptions, overwrite bool) error {
	resize.Encoding = c.ctx.config.EncodingDefaults()
	if err := ffargs.ValidateResize(resize); err != nil {
		return err
	}
	if err := checkPaths("resize", []string{resize.Input}, resize.Output, overwrite); err != nil {
		return err
	}

	r := c.ctx.toolRunner(cmd, opts)
	source, err := probeSize(cmd, r, "resize", resize.Input)
	if err != nil {
		return err
	}
	resize.Source = source

	target, err := ffargs.ResolveResizeTarget(resize)
	if err != nil {
		return err
	}
	args, err := ffargs.BuildResize(resize)
	if err != nil {
		return err
	}
	c.ctx.commandLogger("resize").Debug("resize target", "source", source.String(), "target", target.String())

	if err := r.Run(cmd.Context(), runner.Job{Tool: "ffmpeg", Args: args, Output: resize.Output, Force: overwrite}); err != nil {
		return err
	}
	newPrinter(cmd.OutOrStdout(), opts).success("Resized video (%s → %s) saved to %s", source, target, resize.Output)
	return nil
}
