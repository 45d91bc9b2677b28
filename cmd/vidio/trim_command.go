package main

import (
	"github.com/spf13/cobra"

	"vidio/internal/ffargs"
	"vidio/internal/runner"
)

type trimCommand struct {
	ctx *commandContext
}

func (trimCommand) Name() string { return "trim" }

func (c trimCommand) Register(parent *cobra.Command) {
	var opts ffargs.TrimOptions
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "trim <input> <output>",
		Short: "Cut a time range without re-encoding",
		Long: `Cut a time range out of a video by stream copy.

Times accept SS[.ms], MM:SS or HH:MM:SS. --end is an absolute timestamp in
the source; --duration is a length counted from --start.`,
		Example: `  vidio trim input.mp4 output.mp4 --start 30 --end 90
  vidio trim input.mp4 output.mp4 --start 1:30 --duration 45
  vidio trim input.mp4 output.mp4 --end 2:15`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input, opts.Output = args[0], args[1]
			return c.run(cmd, c.ctx.options(), opts, overwrite)
		},
	}
	cmd.Flags().StringVarP(&opts.Start, "start", "s", "", "Start time (HH:MM:SS, MM:SS, or seconds)")
	cmd.Flags().StringVarP(&opts.End, "end", "e", "", "End time; trims to the end of the video when omitted")
	cmd.Flags().StringVarP(&opts.Duration, "duration", "d", "", "Length to keep; alternative to --end")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "f", false, "Overwrite the output file if it exists")
	parent.AddCommand(cmd)
}

func (c trimCommand) run(cmd *cobra.Command, opts cliOptions, trim ffargs.TrimOptions, overwrite bool) error {
	window, err := ffargs.ResolveTrim(trim)
	if err != nil {
		return err
	}
	args, err := ffargs.BuildTrim(trim)
	if err != nil {
		return err
	}
	if err := checkPaths("trim", []string{trim.Input}, trim.Output, overwrite); err != nil {
		return err
	}

	logger := c.ctx.commandLogger("trim")
	logger.Debug("trim window", "start", window.Start.String(), "end", window.End, "duration", window.Duration)

	r := c.ctx.toolRunner(cmd, opts)
	if err := r.Run(cmd.Context(), runner.Job{Tool: "ffmpeg", Args: args, Output: trim.Output, Force: overwrite}); err != nil {
		return err
	}
	newPrinter(cmd.OutOrStdout(), opts).success("Trimmed video saved to %s", trim.Output)
	return nil
}
