package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"vidio/internal/failures"
	"vidio/internal/runner"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index        int               `json:"index"`
	CodecName    string            `json:"codec_name"`
	CodecType    string            `json:"codec_type"`
	CodecTag     string            `json:"codec_tag_string"`
	Duration     string            `json:"duration"`
	BitRate      string            `json:"bit_rate"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	PixFmt       string            `json:"pix_fmt"`
	ColorSpace   string            `json:"color_space"`
	RFrameRate   string            `json:"r_frame_rate"`
	AvgFrameRate string            `json:"avg_frame_rate"`
	NBFrames     string            `json:"nb_frames"`
	SampleRate   string            `json:"sample_rate"`
	Channels     int               `json:"channels"`
	Tags         map[string]string `json:"tags"`
	Disposition  map[string]int    `json:"disposition"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename       string `json:"filename"`
	NBStreams      int    `json:"nb_streams"`
	Duration       string `json:"duration"`
	Size           string `json:"size"`
	BitRate        string `json:"bit_rate"`
	FormatName     string `json:"format_name"`
	FormatLongName string `json:"format_long_name"`
}

// Execer runs a tool by logical name; *runner.Runner satisfies it.
type Execer interface {
	Exec(ctx context.Context, tool string, args []string) (runner.Output, error)
}

// Prober runs ffprobe through an Execer.
type Prober struct {
	exec Execer
	tool string
}

// NewProber returns a Prober that invokes the "ffprobe" tool.
func NewProber(exec Execer) *Prober {
	return &Prober{exec: exec, tool: "ffprobe"}
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func (p *Prober) Inspect(ctx context.Context, path string) (Result, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, failures.Wrap(failures.ErrProbeFailure, "", "", "empty path", nil)
	}

	out, err := p.exec.Exec(ctx, p.tool, []string{"-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path})
	if err != nil {
		return Result{}, probeError(path, err)
	}

	var result Result
	if err := json.Unmarshal([]byte(out.Stdout), &result); err != nil {
		return Result{}, failures.Wrap(failures.ErrProbeFailure, "", path, "unparsable ffprobe output", err)
	}
	return result, nil
}

// CountFrames decodes the packets of the stream with the given absolute index
// for an exact count. It reads the whole file and is much slower than the
// estimate.
func (p *Prober) CountFrames(ctx context.Context, path string, streamIndex int) (int64, error) {
	out, err := p.exec.Exec(ctx, p.tool, []string{
		"-v", "error",
		"-select_streams", strconv.Itoa(streamIndex),
		"-count_packets",
		"-show_entries", "stream=nb_read_packets",
		"-of", "csv=p=0",
		path,
	})
	if err != nil {
		return 0, probeError(path, err)
	}
	value := strings.Trim(strings.TrimSpace(out.Stdout), ",")
	if line, _, ok := strings.Cut(value, "\n"); ok {
		value = strings.Trim(strings.TrimSpace(line), ",")
	}
	count, err := strconv.ParseInt(value, 10, 64)
	if err != nil || count < 0 {
		return 0, failures.Wrap(failures.ErrProbeFailure, "", path, fmt.Sprintf("unexpected frame count %q", out.Stdout), nil)
	}
	return count, nil
}

func probeError(path string, err error) error {
	if errors.Is(err, failures.ErrToolNotFound) {
		return err
	}
	return failures.Wrap(failures.ErrProbeFailure, "", path, "", err)
}

// VideoStreamCount returns the number of video streams discovered.
func (r Result) VideoStreamCount() int {
	return r.countType("video")
}

// AudioStreamCount returns the number of audio streams discovered.
func (r Result) AudioStreamCount() int {
	return r.countType("audio")
}

func (r Result) countType(kind string) int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, kind) {
			count++
		}
	}
	return count
}

// PrimaryVideo returns the first video stream that is not embedded cover art.
func (r Result) PrimaryVideo() (Stream, bool) {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") && stream.Disposition["attached_pic"] != 1 {
			return stream, true
		}
	}
	return Stream{}, false
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	return parseFloat(r.Format.Duration)
}

// SizeBytes returns the reported container size in bytes, or 0 when unavailable.
func (r Result) SizeBytes() int64 {
	return nonNegative(parseFloat(r.Format.Size))
}

// BitRate returns the container bitrate in bits per second, or 0 when unavailable.
func (r Result) BitRate() int64 {
	return nonNegative(parseFloat(r.Format.BitRate))
}

// FrameRate parses r_frame_rate, falling back to avg_frame_rate.
func (s Stream) FrameRate() float64 {
	if rate := parseRational(s.RFrameRate); rate > 0 {
		return rate
	}
	return parseRational(s.AvgFrameRate)
}

func parseRational(value string) float64 {
	num, den, ok := strings.Cut(strings.TrimSpace(value), "/")
	if !ok {
		v := parseFloat(num)
		if math.IsNaN(v) || v < 0 {
			return 0
		}
		return v
	}
	n, d := parseFloat(num), parseFloat(den)
	if math.IsNaN(n) || math.IsNaN(d) || d == 0 || n < 0 {
		return 0
	}
	return n / d
}

func nonNegative(v float64) int64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return int64(v)
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}
