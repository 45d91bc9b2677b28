package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"vidio/internal/failures"
)

type exitStatus int

func (e exitStatus) Error() string { return "exit status" }
func (e exitStatus) ExitCode() int { return int(e) }

func TestRunRefusesExistingOutputWithoutStartingProcess(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.mp4")
	if err := os.WriteFile(out, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	rec := &RecordingExecutor{WriteOutput: true}
	r := New(WithExecutor(rec))

	err := r.Run(context.Background(), Job{Tool: "ffmpeg", Args: []string{"-i", "in.mp4", "-y", out}, Output: out})
	if !errors.Is(err, failures.ErrOutputExists) {
		t.Fatalf("expected ErrOutputExists, got %v", err)
	}
	if rec.CallCount() != 0 {
		t.Fatalf("expected no process, got %d calls", rec.CallCount())
	}
	got, _ := os.ReadFile(out)
	if string(got) != "keep" {
		t.Fatalf("existing output modified: %q", got)
	}
}

func TestRunPublishesThroughTempFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "nested", "out.mp4")
	rec := &RecordingExecutor{WriteOutput: true}
	r := New(WithExecutor(rec), WithTool("ffmpeg", "/opt/ffmpeg/bin/ffmpeg"))

	if err := r.Run(context.Background(), Job{Tool: "ffmpeg", Args: []string{"-i", "in.mp4", "-y", out}, Output: out}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rec.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(rec.Calls))
	}
	call := rec.Calls[0]
	if call.Binary != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("binary = %q", call.Binary)
	}
	written := call.Args[len(call.Args)-1]
	if written == out || filepath.Dir(written) != filepath.Dir(out) || !strings.HasSuffix(written, ".mp4") {
		t.Fatalf("expected temp sibling, got %q", written)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output not published: %v", err)
	}
	if _, err := os.Stat(written); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
	if _, err := os.Stat(out + ".lock"); !os.IsNotExist(err) {
		t.Fatalf("lock file left behind: %v", err)
	}
}

func TestRunLeavesNeighbouringLockFilesAlone(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	dir := t.TempDir()
	out := filepath.Join(dir, "clip.mp4")
	userLock := out + ".lock"
	if err := os.WriteFile(userLock, []byte("user data"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := New(WithExecutor(&RecordingExecutor{WriteOutput: true}))
	if err := r.Run(context.Background(), Job{Tool: "ffmpeg", Args: []string{"-i", "in.mp4", "-y", out}, Output: out}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got, err := os.ReadFile(userLock)
	if err != nil {
		t.Fatalf("user file %s removed: %v", userLock, err)
	}
	if string(got) != "user data" {
		t.Fatalf("user file modified: %q", got)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output not published: %v", err)
	}
}

func TestRunFailureLeavesNoPartialOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.mp4")
	rec := &RecordingExecutor{Results: []Result{{
		Output: Output{Stderr: "frame=1\nin.mp4: Invalid data found when processing input\n"},
		Err:    exitStatus(1),
	}}}
	r := New(WithExecutor(rec))

	err := r.Run(context.Background(), Job{Tool: "ffmpeg", Args: []string{"-i", "in.mp4", "-y", out}, Output: out})
	var failure *failures.ToolFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected ToolFailure, got %v", err)
	}
	if failure.ExitCode != 1 || !strings.Contains(failure.StderrTail, "Invalid data") {
		t.Fatalf("unexpected failure %+v", failure)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected empty dir, found %v", names)
	}
}

func TestRunSetupPassesRunFirst(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.gif")
	palette := filepath.Join(dir, "palette.png")
	rec := &RecordingExecutor{WriteOutput: true}
	r := New(WithExecutor(rec))

	job := Job{
		Tool:   "ffmpeg",
		Setup:  [][]string{{"-i", "in.mp4", "-vf", "palettegen", "-y", palette}},
		Args:   []string{"-i", "in.mp4", "-i", palette, "-y", out},
		Output: out,
	}
	if err := r.Run(context.Background(), job); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rec.Calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(rec.Calls))
	}
	if rec.Calls[0].Args[len(rec.Calls[0].Args)-1] != palette {
		t.Fatalf("setup pass output rewritten: %v", rec.Calls[0].Args)
	}
}

func TestRunSetupFailureSkipsFinalPass(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.gif")
	rec := &RecordingExecutor{Results: []Result{{Err: exitStatus(2)}}}
	r := New(WithExecutor(rec))

	err := r.Run(context.Background(), Job{
		Tool:   "ffmpeg",
		Setup:  [][]string{{"-y", filepath.Join(dir, "p.png")}},
		Args:   []string{"-y", out},
		Output: out,
	})
	if !errors.Is(err, failures.ErrToolFailure) {
		t.Fatalf("expected tool failure, got %v", err)
	}
	if rec.CallCount() != 1 {
		t.Fatalf("final pass should not run, got %d calls", rec.CallCount())
	}
}

func TestRunRejectsLockedOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.mp4")
	first := New(WithExecutor(&blockingExecutor{
		inner: &RecordingExecutor{WriteOutput: true},
		during: func() {
			second := New(WithExecutor(&RecordingExecutor{}))
			err := second.Run(context.Background(), Job{Tool: "ffmpeg", Args: []string{"-y", out}, Output: out})
			if !errors.Is(err, failures.ErrOutputExists) {
				t.Errorf("expected concurrent run to be refused, got %v", err)
			}
		},
	}))
	if err := first.Run(context.Background(), Job{Tool: "ffmpeg", Args: []string{"-y", out}, Output: out}); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

type blockingExecutor struct {
	inner  Executor
	during func()
}

func (b *blockingExecutor) Run(ctx context.Context, binary string, args []string) (Output, error) {
	b.during()
	return b.inner.Run(ctx, binary, args)
}

func TestRunForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.mp4")
	if err := os.WriteFile(out, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := New(WithExecutor(&RecordingExecutor{WriteOutput: true}))
	if err := r.Run(context.Background(), Job{Tool: "ffmpeg", Args: []string{"-y", out}, Output: out, Force: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got, _ := os.ReadFile(out)
	if string(got) != "recorded output" {
		t.Fatalf("output not replaced: %q", got)
	}
}

func TestExecMapsMissingBinary(t *testing.T) {
	r := New(WithExecutor(&RecordingExecutor{Results: []Result{{Err: &exec.Error{Name: "ffmpeg", Err: exec.ErrNotFound}}}}))
	_, err := r.Exec(context.Background(), "ffmpeg", []string{"-version"})
	if !errors.Is(err, failures.ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
}

func TestExecEchoesCommandLine(t *testing.T) {
	var echo bytes.Buffer
	r := New(WithExecutor(&RecordingExecutor{}), WithEcho(&echo))
	if _, err := r.Exec(context.Background(), "ffmpeg", []string{"-i", "my clip.mp4", "-vf", "scale=640:-2"}); err != nil {
		t.Fatal(err)
	}
	want := "Running: ffmpeg -i \"my clip.mp4\" -vf scale=640:-2\n"
	if echo.String() != want {
		t.Fatalf("echo = %q, want %q", echo.String(), want)
	}
}

func TestExecExecutorRealProcess(t *testing.T) {
	script := filepath.Join(t.TempDir(), "fake-tool")
	body := "#!/bin/sh\necho out\necho \"bad input\" >&2\nexit 3\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}
	var live bytes.Buffer
	r := New(WithExecutor(ExecExecutor{Stream: &live}))

	out, err := r.Exec(context.Background(), script, nil)
	var failure *failures.ToolFailure
	if !errors.As(err, &failure) || failure.ExitCode != 3 {
		t.Fatalf("expected exit 3 failure, got %v", err)
	}
	if strings.TrimSpace(out.Stdout) != "out" || failure.StderrTail != "bad input" {
		t.Fatalf("unexpected output %+v / %q", out, failure.StderrTail)
	}
	if !strings.Contains(live.String(), "bad input") {
		t.Fatalf("stderr not streamed: %q", live.String())
	}
}

func TestExecExecutorMissingBinary(t *testing.T) {
	r := New()
	_, err := r.Exec(context.Background(), filepath.Join(t.TempDir(), "missing-ffmpeg"), nil)
	if !errors.Is(err, failures.ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
}
