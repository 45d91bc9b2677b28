package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"vidio/internal/ffargs"
	"vidio/internal/registry"
	"vidio/internal/runner"
)

type toGIFCommand struct {
	ctx *commandContext
}

func (toGIFCommand) Name() string { return registry.NameFromIdentifier("to_gif") }

func (c toGIFCommand) Register(parent *cobra.Command) {
	var opts ffargs.GIFOptions
	var overwrite bool

	cmd := &cobra.Command{
		Use:   c.Name() + " <input> <output>",
		Short: "Convert a video to an animated GIF",
		Long: `Convert a video (or part of it) to an animated GIF.

By default a palette is generated from the clip first and then applied, which
gives far better colours than a single pass. Quality tiers:
  low   8 fps, 320 px wide, bayer dither, 128 colours
  med   10 fps, 480 px wide, floyd_steinberg dither, 192 colours
  high  15 fps, source width, sierra2_4a dither, 256 colours
--quality also accepts 1-10. --fps, --width and --dither override the tier.`,
		Example: `  vidio to-gif clip.mp4 clip.gif
  vidio to-gif clip.mp4 clip.gif --quality high --start 5 --duration 3
  vidio to-gif clip.mp4 clip.gif --scale 0.5 --fps 12 --loop -1`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input, opts.Output = args[0], args[1]
			if !cmd.Flags().Changed("quality") {
				opts.Quality = c.ctx.config.GIF.DefaultQuality
			}
			return c.run(cmd, c.ctx.options(), opts, overwrite)
		},
	}
	cmd.Flags().StringVarP(&opts.Quality, "quality", "q", "med", "Quality tier: low, med, high, or 1-10")
	cmd.Flags().IntVar(&opts.FPS, "fps", 0, "Frames per second, 1-30 (default: from quality)")
	cmd.Flags().IntVarP(&opts.Width, "width", "w", 0, "Output width in pixels (default: from quality)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "Scale factor relative to the source, 0.1-2")
	cmd.Flags().StringVar(&opts.Dither, "dither", "", "Dither: none, bayer, floyd_steinberg, sierra2, sierra2_4a")
	cmd.Flags().BoolVar(&opts.NoOptimize, "no-optimize", false, "Skip palette generation (faster, lower quality)")
	cmd.Flags().StringVar(&opts.Start, "start", "", "Start time (HH:MM:SS, MM:SS, or seconds)")
	cmd.Flags().StringVar(&opts.End, "end", "", "End time")
	cmd.Flags().StringVar(&opts.Duration, "duration", "", "Length to convert; alternative to --end")
	cmd.Flags().IntVar(&opts.Loop, "loop", 0, "Loop count: 0 loops forever, -1 plays once")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "f", false, "Overwrite the output file if it exists")
	parent.AddCommand(cmd)
}

func (c toGIFCommand) run(cmd *cobra.Command, opts cliOptions, gif ffargs.GIFOptions, overwrite bool) error {
	if _, err := ffargs.ValidateGIF(gif); err != nil {
		return err
	}
	if err := checkPaths("to-gif", []string{gif.Input}, gif.Output, overwrite); err != nil {
		return err
	}

	r := c.ctx.toolRunner(cmd, opts)
	source, err := probeSize(cmd, r, "to-gif", gif.Input)
	if err != nil {
		return err
	}
	gif.Source = source

	var palette string
	if !gif.NoOptimize {
		dir, err := os.MkdirTemp("", "vidio-gif-")
		if err != nil {
			return fmt.Errorf("create palette directory: %w", err)
		}
		defer os.RemoveAll(dir)
		palette = filepath.Join(dir, "palette.png")
	}

	plan, err := ffargs.BuildGIF(gif, palette)
	if err != nil {
		return err
	}
	settings := plan.Settings
	c.ctx.commandLogger("to-gif").Debug("gif settings",
		"quality", string(settings.Quality),
		"fps", settings.FPS,
		"width", settings.Width,
		"dither", settings.Dither,
		"passes", len(plan.Passes),
	)

	job := runner.Job{Tool: "ffmpeg", Args: plan.Final().Args, Output: gif.Output, Force: overwrite}
	for _, pass := range plan.Passes[:len(plan.Passes)-1] {
		job.Setup = append(job.Setup, pass.Args)
	}
	if err := r.Run(cmd.Context(), job); err != nil {
		return err
	}

	size := ""
	if info, err := os.Stat(gif.Output); err == nil {
		size = " (" + humanize.IBytes(uint64(info.Size())) + ")"
	}
	newPrinter(cmd.OutOrStdout(), opts).success("GIF saved to %s%s", gif.Output, size)
	return nil
}
