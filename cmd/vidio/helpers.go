package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"vidio/internal/failures"
	"vidio/internal/geometry"
	"vidio/internal/media/ffprobe"
	"vidio/internal/runner"
)

// checkInputs requires every input to be an existing regular file.
func checkInputs(command string, inputs []string) error {
	for _, in := range inputs {
		info, err := os.Stat(in)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return failures.Wrap(failures.ErrInvalidOption, command, in, "input file does not exist", nil)
		case err != nil:
			return fmt.Errorf("stat input %s: %w", in, err)
		case info.IsDir():
			return failures.Wrap(failures.ErrInvalidOption, command, in, "input is a directory", nil)
		}
	}
	return nil
}

// checkPaths runs before any subprocess: inputs must exist, the output must
// not be one of them, and an existing output needs --overwrite.
func checkPaths(command string, inputs []string, output string, overwrite bool) error {
	if err := checkInputs(command, inputs); err != nil {
		return err
	}
	outAbs, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	for _, in := range inputs {
		if inAbs, err := filepath.Abs(in); err == nil && inAbs == outAbs {
			return failures.Wrap(failures.ErrInvalidOption, command, output, "output would overwrite an input", nil)
		}
	}
	return runner.CheckOutput(output, overwrite)
}

// probeSize returns the primary video size of path.
func probeSize(cmd *cobra.Command, r *runner.Runner, command, path string) (geometry.Size, error) {
	meta, err := ffprobe.NewProber(r).Probe(cmd.Context(), path, false)
	if err != nil {
		return geometry.Size{}, err
	}
	if meta.Video == nil || !meta.Size().Valid() {
		return geometry.Size{}, failures.Wrap(failures.ErrIncompatibleInputs, command, path, "no video stream found", nil)
	}
	return meta.Size(), nil
}

// usageArgs marks positional-argument errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return failures.Wrap(failures.ErrInvalidOption, cmd.Name(), "", err.Error(), nil)
		}
		return nil
	}
}

func usageFlagError(cmd *cobra.Command, err error) error {
	return failures.Wrap(failures.ErrInvalidOption, cmd.Name(), "", err.Error(), nil)
}
