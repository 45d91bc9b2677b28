package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"vidio/internal/config"
	"vidio/internal/deps"
	"vidio/internal/logging"
	"vidio/internal/runner"
)

const (
	annotationSkipConfig = "skipConfigLoad"
	annotationSkipTools  = "skipToolCheck"
)

// cliOptions are the global flags, passed by value into each command.
type cliOptions struct {
	Verbose bool
	NoColor bool
}

type commandContext struct {
	configFlag  *string
	verboseFlag *bool
	noColorFlag *bool

	// executor replaces real processes in tests.
	executor runner.Executor

	config     *config.Config
	configPath string
	ffprobe    string
	logger     *slog.Logger
}

func newCommandContext(configFlag *string, verboseFlag, noColorFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
		noColorFlag: noColorFlag,
		logger:      logging.NewNop(),
	}
}

func (c *commandContext) options() cliOptions {
	var opts cliOptions
	if c.verboseFlag != nil {
		opts.Verbose = *c.verboseFlag
	}
	if c.noColorFlag != nil {
		opts.NoColor = *c.noColorFlag
	}
	return opts
}

// prepare loads config, builds the logger, and checks the tools once per
// invocation.
func (c *commandContext) prepare(cmd *cobra.Command) error {
	opts := c.options()

	var path string
	if c.configFlag != nil {
		path = strings.TrimSpace(*c.configFlag)
	}
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		return err
	}
	c.config = cfg
	c.configPath = resolved

	level := cfg.Logging.Level
	if opts.Verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		Level:  level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	c.logger = logger
	logger.Debug("configuration loaded", "path", resolved, "exists", exists)

	c.ffprobe = deps.ResolveCompanion(cfg.Tools.FFmpeg, "ffprobe", cfg.Tools.FFprobe)
	if shouldSkip(cmd, annotationSkipTools) {
		return nil
	}
	return deps.RequireAll(deps.CheckBinaries(c.requirements()))
}

func (c *commandContext) requirements() []deps.Requirement {
	return []deps.Requirement{
		{Name: "ffmpeg", Command: c.config.Tools.FFmpeg, Description: "media tool"},
		{Name: "ffprobe", Command: c.ffprobe, Description: "metadata probe"},
	}
}

// toolRunner builds the runner for one command invocation.
func (c *commandContext) toolRunner(cmd *cobra.Command, opts cliOptions) *runner.Runner {
	exec := c.executor
	if exec == nil {
		process := runner.ExecExecutor{}
		if opts.Verbose {
			process.Stream = cmd.ErrOrStderr()
		}
		exec = process
	}
	runOpts := []runner.Option{
		runner.WithExecutor(exec),
		runner.WithLogger(logging.NewComponentLogger(c.logger, "runner")),
		runner.WithTool("ffmpeg", c.config.Tools.FFmpeg),
		runner.WithTool("ffprobe", c.ffprobe),
	}
	if opts.Verbose {
		runOpts = append(runOpts, runner.WithEcho(cmd.ErrOrStderr()))
	}
	return runner.New(runOpts...)
}

func (c *commandContext) commandLogger(name string) *slog.Logger {
	return logging.NewComponentLogger(c.logger, name)
}

func shouldSkip(cmd *cobra.Command, annotation string) bool {
	if !cmd.HasParent() || cmd.Name() == "help" || strings.HasPrefix(cmd.Name(), cobra.ShellCompRequestCmd) {
		return true
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations[annotation] == "true" {
			return true
		}
		if c.Name() == "completion" && c.HasParent() {
			return true
		}
	}
	return false
}
