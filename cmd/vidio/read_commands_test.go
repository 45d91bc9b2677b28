package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidio/internal/failures"
	"vidio/internal/runner"
)

func TestInfoTable(t *testing.T) {
	env := setupCLITestEnv(t)
	env.touch(t, "clip.mp4")
	env.probeJSON(1920, 1080)

	out, _, err := runCLI(t, env, "info", "clip.mp4")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{
		"Video Information: clip.mp4",
		"00:00:41.133",
		"2.0 KiB (2,048 bytes)",
		"1920x1080",
		"30.00 fps",
		"1,234 (estimated)",
		"Video Codec",
		"44.1 kHz",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("info output missing %q:\n%s", want, out)
		}
	}
	call := env.exec.Calls[0]
	if call.Binary != env.ffprobe || indexOf(call.Args, "-show_streams") < 0 {
		t.Fatalf("unexpected probe call %+v", call)
	}
}

func TestInfoJSONWithExactFrames(t *testing.T) {
	env := setupCLITestEnv(t)
	env.touch(t, "clip.mp4")
	env.probeJSON(1280, 720)
	env.exec.Results = append(env.exec.Results, runner.Result{Output: runner.Output{Stdout: "1240\n"}})

	out, _, err := runCLI(t, env, "info", "clip.mp4", "--json", "--exact-frames")
	if err != nil {
		t.Fatalf("info --json: %v", err)
	}
	var payload struct {
		Path  string `json:"path"`
		Video struct {
			Width           int   `json:"width"`
			FrameCount      int64 `json:"frame_count"`
			FrameCountExact bool  `json:"frame_count_exact"`
		} `json:"video"`
		Audio struct {
			Channels int `json:"channels"`
		} `json:"audio"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if payload.Path != "clip.mp4" || payload.Video.Width != 1280 {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload.Video.FrameCount != 1240 || !payload.Video.FrameCountExact {
		t.Fatalf("expected exact frame count, got %+v", payload.Video)
	}
	if payload.Audio.Channels != 2 {
		t.Fatalf("expected audio channels, got %+v", payload.Audio)
	}
	if env.exec.CallCount() != 2 || indexOf(env.exec.Calls[1].Args, "-count_packets") < 0 {
		t.Fatalf("expected a counting probe, got %+v", env.exec.Calls)
	}
}

func TestInfoProbeFailure(t *testing.T) {
	env := setupCLITestEnv(t)
	env.touch(t, "broken.mp4")
	env.exec.Results = []runner.Result{{
		Output: runner.Output{Stderr: "broken.mp4: moov atom not found"},
		Err:    errors.New("exit status 1"),
	}}

	_, _, err := runCLI(t, env, "info", "broken.mp4")
	if !errors.Is(err, failures.ErrProbeFailure) {
		t.Fatalf("expected ErrProbeFailure, got %v", err)
	}
	if failures.ExitCode(err) != failures.ExitFailure {
		t.Fatalf("expected runtime exit code, got %d", failures.ExitCode(err))
	}
}

func TestListLsStyleDoesNotProbe(t *testing.T) {
	env := setupCLITestEnv(t)
	env.touch(t, "videos/b.mkv", "videos/a.MP4", "videos/notes.txt", "videos/.hidden.mp4")

	out, _, err := runCLI(t, env, "ls", "videos")
	if err != nil {
		t.Fatalf("ls: %v", err)
	}
	if env.exec.CallCount() != 0 {
		t.Fatalf("plain listing should not probe, got %d calls", env.exec.CallCount())
	}
	aIdx, bIdx := strings.Index(out, "a.MP4"), strings.Index(out, "b.mkv")
	if aIdx < 0 || bIdx < 0 || aIdx > bIdx {
		t.Fatalf("expected sorted video entries:\n%s", out)
	}
	if strings.Contains(out, "notes.txt") || strings.Contains(out, ".hidden.mp4") {
		t.Fatalf("unexpected entries:\n%s", out)
	}
	if !strings.Contains(out, "5 B a.MP4") {
		t.Fatalf("expected ls-style size column:\n%s", out)
	}
	if !strings.Contains(out, "Found 2 video file(s)") {
		t.Fatalf("missing footer:\n%s", out)
	}
}

func TestListRecursiveTable(t *testing.T) {
	env := setupCLITestEnv(t)
	env.touch(t, "top.mp4", "nested/deep.webm")

	out, _, err := runCLI(t, env, "list", "-r", "--table")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Video Files in") {
		t.Fatalf("missing table title:\n%s", out)
	}
	if !strings.Contains(out, "deep.webm") || !strings.Contains(out, "top.mp4") {
		t.Fatalf("expected nested entry:\n%s", out)
	}
	if !strings.Contains(out, "Total") || !strings.Contains(out, "10 B") {
		t.Fatalf("expected size total footer:\n%s", out)
	}
}

func TestListDetailedJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	env.touch(t, "a.mp4", "b.mov")
	env.probeJSON(640, 480)
	env.exec.Results = append(env.exec.Results, runner.Result{Err: errors.New("exit status 1")})

	out, _, err := runCLI(t, env, "list", "-l", "--json")
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	var records []map[string]any
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if len(records) != 2 {
		t.Fatalf("expected two records, got %d", len(records))
	}
	if records[0]["name"] != "a.mp4" || records[0]["resolution"] != "640x480" || records[0]["codec"] != "h264" {
		t.Fatalf("unexpected first record %v", records[0])
	}
	if records[0]["duration_formatted"] != "00:00:41" {
		t.Fatalf("unexpected duration %v", records[0]["duration_formatted"])
	}
	if records[1]["duration_formatted"] != "Unknown" || records[1]["resolution"] != "Unknown" {
		t.Fatalf("failed probe should be Unknown, got %v", records[1])
	}
}

func TestListEmptyDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	empty := filepath.Join(env.dir, "empty")
	if err := os.Mkdir(empty, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	out, _, err := runCLI(t, env, "list", empty)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "No video files found in directory: "+empty) {
		t.Fatalf("unexpected output %q", out)
	}

	out, _, err = runCLI(t, env, "list", empty, "--json")
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected empty JSON array, got %q", out)
	}
}

func TestListMissingDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, env, "list", "nope")
	if !errors.Is(err, failures.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
}
