package main

import (
	"github.com/spf13/cobra"

	"vidio/internal/registry"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var verbose bool
	var noColor bool

	ctx := newCommandContext(&configFlag, &verbose, &noColor)
	return buildRootCommand(ctx)
}

func buildRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vidio",
		Short:         "Everyday video edits on top of ffmpeg",
		Long:          "vidio turns common edits (trim, resize, crop, stack, grid, GIF) into ffmpeg invocations and reports metadata through ffprobe.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkip(cmd, annotationSkipConfig) {
				return nil
			}
			return ctx.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.SetFlagErrorFunc(usageFlagError)
	rootCmd.SetVersionTemplate("vidio version: {{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "Show the version and exit")
	rootCmd.PersistentFlags().StringVarP(ctx.configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(ctx.verboseFlag, "verbose", "v", false, "Show ffmpeg/ffprobe commands and debug logs")
	rootCmd.PersistentFlags().BoolVar(ctx.noColorFlag, "no-color", false, "Disable coloured output")

	reg := registry.New(nil)
	if _, err := reg.Discover(rootCmd, commandSet(ctx)...); err != nil {
		panic(err)
	}
	return rootCmd
}
