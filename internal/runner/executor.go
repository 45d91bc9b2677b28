package runner

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// Output is what a finished process wrote.
type Output struct {
	Stdout string
	Stderr string
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (Output, error)
}

// ExecExecutor runs real processes. When Stream is set, stderr is copied to it
// live as well as captured.
type ExecExecutor struct {
	Stream io.Writer
}

func (e ExecExecutor) Run(ctx context.Context, binary string, args []string) (Output, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if e.Stream != nil {
		cmd.Stderr = io.MultiWriter(&stderr, e.Stream)
	}
	err := cmd.Run()
	return Output{Stdout: stdout.String(), Stderr: stderr.String()}, err
}
