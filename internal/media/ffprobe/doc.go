// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties
//   - Metadata: the record rendered by info and list
//
// Prober runs ffprobe through the shared runner so missing binaries and
// non-zero exits surface as the same typed failures ffmpeg produces.
// Probe estimates the frame count from the container; exact mode decodes
// the first video stream instead.
package ffprobe
