package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"vidio/internal/runner"
)

type cliTestEnv struct {
	dir        string
	configPath string
	ffmpeg     string
	ffprobe    string
	exec       *runner.RecordingExecutor
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"VIDIO_FFMPEG", "VIDIO_FFPROBE", "VIDIO_LOG_LEVEL", "VIDIO_LOG_FORMAT", "VIDIO_VIDEO_CODEC", "NO_COLOR"} {
		t.Setenv(key, "")
	}
	t.Chdir(dir)

	binDir := filepath.Join(dir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	env := &cliTestEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "vidio-test.toml"),
		ffmpeg:     filepath.Join(binDir, "ffmpeg"),
		ffprobe:    filepath.Join(binDir, "ffprobe"),
		exec:       &runner.RecordingExecutor{WriteOutput: true},
	}
	script := []byte("#!/bin/sh\nexit 0\n")
	for _, path := range []string{env.ffmpeg, env.ffprobe} {
		if err := os.WriteFile(path, script, 0o755); err != nil {
			t.Fatalf("write stub: %v", err)
		}
	}
	env.writeConfig(t, "")
	return env
}

func (e *cliTestEnv) writeConfig(t *testing.T, extra string) {
	t.Helper()
	content := fmt.Sprintf("[tools]\nffmpeg = %q\nffprobe = %q\n%s", e.ffmpeg, e.ffprobe, extra)
	if err := os.WriteFile(e.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func (e *cliTestEnv) touch(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(e.dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("video"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// probeJSON queues an ffprobe response describing a WxH h264 stream.
func (e *cliTestEnv) probeJSON(width, height int) {
	body := fmt.Sprintf(`{"streams":[{"index":0,"codec_type":"video","codec_name":"h264","width":%d,"height":%d,"r_frame_rate":"30/1","nb_frames":"1234","pix_fmt":"yuv420p"},{"index":1,"codec_type":"audio","codec_name":"aac","channels":2,"sample_rate":"44100"}],"format":{"format_name":"mov,mp4,m4a,3gp,3g2,mj2","duration":"41.133","size":"2048","bit_rate":"398000"}}`, width, height)
	e.exec.Results = append(e.exec.Results, runner.Result{Output: runner.Output{Stdout: body}})
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	var configFlag string
	var verbose, noColor bool
	ctx := newCommandContext(&configFlag, &verbose, &noColor)
	ctx.executor = env.exec

	cmd := buildRootCommand(ctx)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func indexOf(args []string, value string) int {
	for i, arg := range args {
		if arg == value {
			return i
		}
	}
	return -1
}

func argAfter(args []string, flag string) string {
	if i := indexOf(args, flag); i >= 0 && i+1 < len(args) {
		return args[i+1]
	}
	return ""
}
