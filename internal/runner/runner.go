package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"vidio/internal/failures"
	"vidio/internal/fileutil"
	"vidio/internal/logging"
)

// Option configures the runner.
type Option func(*Runner)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(r *Runner) {
		if exec != nil {
			r.exec = exec
		}
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithEcho prints every command line to w before it runs.
func WithEcho(w io.Writer) Option {
	return func(r *Runner) {
		r.echo = w
	}
}

// WithTool maps a logical tool name to a binary path.
func WithTool(name, binary string) Option {
	return func(r *Runner) {
		if binary = strings.TrimSpace(binary); binary != "" {
			r.tools[name] = binary
		}
	}
}

// Runner executes tool invocations.
type Runner struct {
	exec   Executor
	logger *slog.Logger
	echo   io.Writer
	tools  map[string]string
}

// New constructs a Runner backed by real processes.
func New(opts ...Option) *Runner {
	r := &Runner{
		exec:   ExecExecutor{},
		logger: logging.NewNop(),
		tools:  map[string]string{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Binary resolves a logical tool name to the configured binary.
func (r *Runner) Binary(tool string) string {
	if binary, ok := r.tools[tool]; ok {
		return binary
	}
	return tool
}

// Job is one output-producing command. Setup passes run first, in order, and
// write only to paths the caller manages; Args is the final pass and must
// contain Output, which the runner redirects to a temp file.
type Job struct {
	Tool   string
	Setup  [][]string
	Args   []string
	Output string
	Force  bool
}

// CheckOutput fails with ErrOutputExists when path exists and force is unset.
func CheckOutput(path string, force bool) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("stat output %s: %w", path, err)
	case info.IsDir():
		return failures.Wrap(failures.ErrInvalidOption, "", "", path+" is a directory", nil)
	case !force:
		return failures.Wrap(failures.ErrOutputExists, "", "", path+" already exists (use --overwrite to replace it)", nil)
	}
	return nil
}

// Run executes job with overwrite protection and atomic publish.
func (r *Runner) Run(ctx context.Context, job Job) error {
	if err := CheckOutput(job.Output, job.Force); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(job.Output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	lockPath, err := fileutil.LockPath(job.Output)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	// Lock files stay on disk so every process locks the same inode.
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return failures.Wrap(failures.ErrOutputExists, "", "", job.Output+" is being written by another vidio process", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	// The lock may have been won after another process published.
	if err := CheckOutput(job.Output, job.Force); err != nil {
		return err
	}

	temp := fileutil.TempSibling(job.Output)
	args, err := redirectOutput(job.Args, job.Output, temp)
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(temp)
	}()

	start := time.Now()
	for i, pass := range job.Setup {
		r.logger.Debug("running setup pass", "tool", job.Tool, "pass", i+1, "of", len(job.Setup)+1)
		if _, err := r.Exec(ctx, job.Tool, pass); err != nil {
			return err
		}
	}
	if _, err := r.Exec(ctx, job.Tool, args); err != nil {
		return err
	}
	if _, err := os.Stat(temp); err != nil {
		return &failures.ToolFailure{Tool: job.Tool, ExitCode: -1, Err: fmt.Errorf("no output written: %w", err)}
	}
	if err := fileutil.Publish(temp, job.Output); err != nil {
		return err
	}
	r.logger.Debug("output published", "path", job.Output, "elapsed", time.Since(start))
	return nil
}

func redirectOutput(args []string, output, temp string) ([]string, error) {
	for i := len(args) - 1; i >= 0; i-- {
		if args[i] == output {
			rewritten := append([]string(nil), args...)
			rewritten[i] = temp
			return rewritten, nil
		}
	}
	return nil, fmt.Errorf("output %s not present in arguments", output)
}

// Exec runs a single tool invocation and classifies failures: a missing
// binary maps to ErrToolNotFound, anything else to a *failures.ToolFailure
// carrying the tail of stderr.
func (r *Runner) Exec(ctx context.Context, tool string, args []string) (Output, error) {
	binary := r.Binary(tool)
	if r.echo != nil {
		fmt.Fprintf(r.echo, "Running: %s\n", CommandLine(binary, args))
	}
	r.logger.Debug("executing tool", "tool", tool, "binary", binary, "args", len(args))

	out, err := r.exec.Run(ctx, binary, args)
	if err == nil {
		return out, nil
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return out, failures.Wrap(failures.ErrToolNotFound, "", tool, binary+" is not installed or not on PATH", err)
	}

	failure := &failures.ToolFailure{
		Tool:       tool,
		ExitCode:   -1,
		StderrTail: failures.Tail(out.Stderr, failures.DefaultTailLines),
		Err:        err,
	}
	var exitErr interface{ ExitCode() int }
	if ctx.Err() != nil {
		failure.Err = ctx.Err()
	} else if errors.As(err, &exitErr) {
		failure.ExitCode = exitErr.ExitCode()
		failure.Err = nil
	}
	r.logger.Debug("tool failed", "tool", tool, "exit_code", failure.ExitCode)
	return out, failure
}

// CommandLine renders binary and args as a copy-pasteable shell line.
func CommandLine(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quote(binary))
	for _, arg := range args {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.ContainsAny(s, " \t\n'\"\\$`;&|<>()[]*?!#~{}") {
		return strconv.Quote(s)
	}
	return s
}
