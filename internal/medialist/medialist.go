// Package medialist finds video files in a directory for the list command.
package medialist

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"vidio/internal/failures"
	"vidio/internal/media/ffprobe"
)

const unknown = "Unknown"

var videoExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".mkv":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".m4v":  true,
	".3gp":  true,
	".3g2":  true,
	".mxf":  true,
	".roq":  true,
	".nsv":  true,
	".f4v":  true,
	".f4p":  true,
	".f4a":  true,
	".f4b":  true,
}

// Extensions returns the recognised video extensions in sorted order.
func Extensions() []string {
	out := make([]string, 0, len(videoExtensions))
	for ext := range videoExtensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// IsVideo reports whether name has a video extension, ignoring case.
func IsVideo(name string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}

// Entry is one listed file. The probed fields are zero until Apply runs.
type Entry struct {
	Name            string  `json:"name"`
	Path            string  `json:"path"`
	SizeBytes       int64   `json:"size_bytes"`
	Probed          bool    `json:"-"`
	DurationSeconds float64 `json:"duration_seconds"`
	Width           int     `json:"width,omitempty"`
	Height          int     `json:"height,omitempty"`
	Codec           string  `json:"codec,omitempty"`
}

// Apply copies probe results onto the entry.
func (e *Entry) Apply(meta ffprobe.Metadata) {
	e.Probed = true
	e.DurationSeconds = meta.DurationSeconds
	if meta.Video != nil {
		e.Width = meta.Video.Width
		e.Height = meta.Video.Height
		e.Codec = meta.Video.Codec
	}
}

// SizeLabel renders the file size in binary units.
func (e Entry) SizeLabel() string {
	if e.SizeBytes < 0 {
		return unknown
	}
	return humanize.IBytes(uint64(e.SizeBytes))
}

// DurationLabel renders HH:MM:SS, or Unknown when the file was not probed.
func (e Entry) DurationLabel() string {
	if !e.Probed {
		return unknown
	}
	return FormatDuration(e.DurationSeconds)
}

// Resolution renders WxH, or Unknown when no video stream was found.
func (e Entry) Resolution() string {
	if e.Width <= 0 || e.Height <= 0 {
		return unknown
	}
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}

// CodecLabel returns the video codec or Unknown.
func (e Entry) CodecLabel() string {
	if e.Codec == "" {
		return unknown
	}
	return e.Codec
}

// FormatDuration renders whole seconds as HH:MM:SS. Non-positive values are
// 00:00:00.
func FormatDuration(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) {
		return "00:00:00"
	}
	total := int64(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// Discover lists the video files in dir, optionally descending into
// subdirectories. Hidden files and directories are skipped, as are
// subdirectories that cannot be read. Results are sorted by path.
func Discover(dir string, recursive bool) ([]Entry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, failures.Wrap(failures.ErrInvalidOption, "list", dir, "directory does not exist", nil)
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, failures.Wrap(failures.ErrInvalidOption, "list", dir, "not a directory", nil)
	}

	var entries []Entry
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == dir {
				return walkErr
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path == dir {
				return nil
			}
			if !recursive || strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || !IsVideo(d.Name()) {
			return nil
		}
		stat, err := os.Stat(path)
		if err != nil || !stat.Mode().IsRegular() {
			return nil
		}
		entries = append(entries, Entry{
			Name:      d.Name(),
			Path:      path,
			SizeBytes: stat.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}
