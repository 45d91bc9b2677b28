package main

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"vidio/internal/failures"
)

func TestRootRegistersCommandSet(t *testing.T) {
	var configFlag string
	var verbose, noColor bool
	root := buildRootCommand(newCommandContext(&configFlag, &verbose, &noColor))

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"concat", "config", "crop", "grid", "info", "list", "resize", "to-gif", "trim"} {
		if !slices.Contains(names, want) {
			t.Fatalf("missing command %q in %v", want, names)
		}
	}
	list, _, err := root.Find([]string{"ls"})
	if err != nil || list.Name() != "list" {
		t.Fatalf("expected ls alias for list, got %v %v", list, err)
	}
}

func TestVersionFlagSkipsToolCheck(t *testing.T) {
	env := setupCLITestEnv(t)
	env.ffmpeg = filepath.Join(env.dir, "missing", "ffmpeg")
	env.writeConfig(t, "")

	for _, flag := range []string{"--version", "-V"} {
		out, _, err := runCLI(t, env, flag)
		if err != nil {
			t.Fatalf("%s: %v", flag, err)
		}
		if out != "vidio version: "+version+"\n" {
			t.Fatalf("%s: unexpected output %q", flag, out)
		}
	}
	if env.exec.CallCount() != 0 {
		t.Fatalf("expected no calls, got %d", env.exec.CallCount())
	}
}

func TestMissingToolFailsBeforeRunning(t *testing.T) {
	env := setupCLITestEnv(t)
	env.ffmpeg = filepath.Join(env.dir, "missing", "ffmpeg")
	env.writeConfig(t, "")
	env.touch(t, "in.mp4")

	_, _, err := runCLI(t, env, "trim", "in.mp4", "out.mp4")
	if !errors.Is(err, failures.ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
	if failures.ExitCode(err) != failures.ExitFailure {
		t.Fatalf("expected runtime exit code, got %d", failures.ExitCode(err))
	}
	if env.exec.CallCount() != 0 {
		t.Fatalf("expected no calls, got %d", env.exec.CallCount())
	}
}

func TestInvalidConfigIsUsageError(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeConfig(t, "[encoding]\ncrf = 99\n")

	_, _, err := runCLI(t, env, "list")
	if !errors.Is(err, failures.ErrInvalidOption) || !strings.Contains(err.Error(), "crf") {
		t.Fatalf("expected crf validation error, got %v", err)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.dir, "conf", "vidio.toml")

	out, _, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration to "+target) {
		t.Fatalf("unexpected output %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil || !strings.Contains(string(data), "[encoding]") {
		t.Fatalf("sample not written: %v", err)
	}

	if _, _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected existing config to be refused")
	}
	if _, _, err := runCLI(t, env, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidateReportsTools(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	for _, want := range []string{"Config path: " + env.configPath, "ffmpeg", "ffprobe", "OK", "Configuration valid"} {
		if !strings.Contains(out, want) {
			t.Fatalf("validate output missing %q:\n%s", want, out)
		}
	}

	env.ffprobe = filepath.Join(env.dir, "missing", "ffprobe")
	env.writeConfig(t, "")
	out, _, err = runCLI(t, env, "config", "validate")
	if !errors.Is(err, failures.ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
	if !strings.Contains(out, "MISSING") {
		t.Fatalf("expected MISSING row:\n%s", out)
	}
}
