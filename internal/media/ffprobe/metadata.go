package ffprobe

import (
	"context"
	"math"
	"strings"

	"vidio/internal/geometry"
)

// Metadata is the record shown by info and list.
type Metadata struct {
	Path            string         `json:"path"`
	Format          string         `json:"format"`
	FormatLongName  string         `json:"format_long_name,omitempty"`
	DurationSeconds float64        `json:"duration_seconds"`
	SizeBytes       int64          `json:"size_bytes"`
	BitRate         int64          `json:"bit_rate"`
	Video           *VideoInfo     `json:"video,omitempty"`
	Audio           *AudioInfo     `json:"audio,omitempty"`
	Subtitles       []SubtitleInfo `json:"subtitles,omitempty"`
}

// VideoInfo describes the primary video stream.
type VideoInfo struct {
	Codec           string  `json:"codec"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	FrameRate       float64 `json:"frame_rate"`
	FrameCount      int64   `json:"frame_count"`
	FrameCountExact bool    `json:"frame_count_exact"`
	PixelFormat     string  `json:"pixel_format,omitempty"`
	ColorSpace      string  `json:"color_space,omitempty"`
	BitRate         int64   `json:"bit_rate,omitempty"`
}

// AudioInfo describes the first audio stream.
type AudioInfo struct {
	Codec      string `json:"codec"`
	Channels   int    `json:"channels"`
	SampleRate int    `json:"sample_rate"`
	BitRate    int64  `json:"bit_rate,omitempty"`
}

// SubtitleInfo describes one subtitle track.
type SubtitleInfo struct {
	Codec    string `json:"codec"`
	Language string `json:"language"`
}

// Size returns the primary video size, or the zero Size when there is none.
func (m Metadata) Size() geometry.Size {
	if m.Video == nil {
		return geometry.Size{}
	}
	return geometry.Size{Width: m.Video.Width, Height: m.Video.Height}
}

// Probe inspects path and builds its metadata. The frame count is estimated
// from the container unless exact is set, in which case the stream is decoded.
func (p *Prober) Probe(ctx context.Context, path string, exact bool) (Metadata, error) {
	result, err := p.Inspect(ctx, path)
	if err != nil {
		return Metadata{}, err
	}
	meta := FromResult(path, result)
	if primary, ok := result.PrimaryVideo(); exact && ok {
		count, err := p.CountFrames(ctx, path, primary.Index)
		if err != nil {
			return Metadata{}, err
		}
		meta.Video.FrameCount = count
		meta.Video.FrameCountExact = true
	}
	return meta, nil
}

// FromResult builds the metadata record from a decoded ffprobe result.
func FromResult(path string, result Result) Metadata {
	meta := Metadata{
		Path:            path,
		Format:          result.Format.FormatName,
		FormatLongName:  result.Format.FormatLongName,
		DurationSeconds: sanitize(result.DurationSeconds()),
		SizeBytes:       result.SizeBytes(),
		BitRate:         result.BitRate(),
	}

	if video, ok := result.PrimaryVideo(); ok {
		info := &VideoInfo{
			Codec:       video.CodecName,
			Width:       video.Width,
			Height:      video.Height,
			FrameRate:   video.FrameRate(),
			PixelFormat: video.PixFmt,
			ColorSpace:  video.ColorSpace,
			BitRate:     nonNegative(parseFloat(video.BitRate)),
		}
		if meta.DurationSeconds == 0 {
			meta.DurationSeconds = sanitize(parseFloat(video.Duration))
		}
		info.FrameCount = estimateFrames(video, meta.DurationSeconds, info.FrameRate)
		meta.Video = info
	}

	for _, stream := range result.Streams {
		switch strings.ToLower(stream.CodecType) {
		case "audio":
			if meta.Audio == nil {
				meta.Audio = &AudioInfo{
					Codec:      stream.CodecName,
					Channels:   stream.Channels,
					SampleRate: int(nonNegative(parseFloat(stream.SampleRate))),
					BitRate:    nonNegative(parseFloat(stream.BitRate)),
				}
			}
		case "subtitle":
			lang := strings.TrimSpace(stream.Tags["language"])
			if lang == "" {
				lang = "und"
			}
			meta.Subtitles = append(meta.Subtitles, SubtitleInfo{Codec: stream.CodecName, Language: lang})
		}
	}
	return meta
}

// estimateFrames prefers the container's nb_frames and otherwise multiplies
// duration by frame rate.
func estimateFrames(video Stream, duration, rate float64) int64 {
	if n := parseFloat(video.NBFrames); !math.IsNaN(n) && n > 0 {
		return int64(n)
	}
	if duration <= 0 || rate <= 0 {
		return 0
	}
	return int64(math.Round(duration * rate))
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
