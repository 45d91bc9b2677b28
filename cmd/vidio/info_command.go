package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"vidio/internal/media/ffprobe"
	"vidio/internal/timespec"
)

type infoCommand struct {
	ctx *commandContext
}

func (infoCommand) Name() string { return "info" }

func (c infoCommand) Register(parent *cobra.Command) {
	var jsonOutput, exact bool

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Show metadata for a video file",
		Long: `Show container, video, audio and subtitle metadata read by ffprobe.

The frame count is estimated from the container unless --exact-frames is
given, which decodes the whole video stream and can take a while.`,
		Example: `  vidio info clip.mp4
  vidio info clip.mkv --exact-frames
  vidio info clip.mp4 --json`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, c.ctx.options(), args[0], jsonOutput, exact)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output metadata as JSON")
	cmd.Flags().BoolVar(&exact, "exact-frames", false, "Count frames by decoding (slow)")
	parent.AddCommand(cmd)
}

func (c infoCommand) run(cmd *cobra.Command, opts cliOptions, path string, jsonOutput, exact bool) error {
	if err := checkInputs("info", []string{path}); err != nil {
		return err
	}
	prober := ffprobe.NewProber(c.ctx.toolRunner(cmd, opts))
	meta, err := prober.Probe(cmd.Context(), path, exact)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(cmd, meta)
	}
	view := tableView{
		Title:   "Video Information: " + filepath.Base(path),
		Headers: []string{"Property", "Value"},
		Rows:    infoRows(meta),
	}
	fmt.Fprintln(cmd.OutOrStdout(), view.render(newPrinter(cmd.OutOrStdout(), opts)))
	return nil
}

// infoRows lays out the metadata as property rows. A nil row is a section
// separator.
func infoRows(meta ffprobe.Metadata) [][]string {
	p := message.NewPrinter(language.English)
	title := cases.Title(language.English)

	format := meta.Format
	if meta.FormatLongName != "" {
		format = meta.FormatLongName
	}
	rows := [][]string{
		{"Duration", timespec.Format(timespec.Spec(meta.DurationSeconds))},
		{"File Size", p.Sprintf("%s (%d bytes)", humanize.IBytes(uint64(meta.SizeBytes)), meta.SizeBytes)},
		{"Format", orUnknown(format)},
		{"Bit Rate", kbps(meta.BitRate)},
	}

	if v := meta.Video; v != nil {
		frames := p.Sprintf("%d", v.FrameCount)
		if v.FrameCountExact {
			frames += " (exact)"
		} else {
			frames += " (estimated)"
		}
		rows = append(rows, nil,
			[]string{title.String("video codec"), orUnknown(v.Codec)},
			[]string{"Resolution", fmt.Sprintf("%dx%d", v.Width, v.Height)},
			[]string{"Frame Rate", fmt.Sprintf("%.2f fps", v.FrameRate)},
			[]string{"Total Frames", frames},
			[]string{"Pixel Format", orUnknown(v.PixelFormat)},
			[]string{"Color Space", orUnknown(v.ColorSpace)},
		)
		if v.BitRate > 0 {
			rows = append(rows, []string{"Video Bitrate", kbps(v.BitRate)})
		}
	}

	if a := meta.Audio; a != nil {
		rows = append(rows, nil,
			[]string{title.String("audio codec"), orUnknown(a.Codec)},
			[]string{"Channels", fmt.Sprintf("%d", a.Channels)},
			[]string{"Sample Rate", fmt.Sprintf("%.1f kHz", float64(a.SampleRate)/1000)},
		)
		if a.BitRate > 0 {
			rows = append(rows, []string{"Audio Bitrate", kbps(a.BitRate)})
		}
	}

	if len(meta.Subtitles) > 0 {
		tracks := make([]string, 0, len(meta.Subtitles))
		for _, sub := range meta.Subtitles {
			tracks = append(tracks, fmt.Sprintf("%s (%s)", orUnknown(sub.Codec), sub.Language))
		}
		rows = append(rows, nil, []string{title.String("subtitle tracks"), strings.Join(tracks, ", ")})
	}
	return rows
}

func kbps(bitsPerSecond int64) string {
	if bitsPerSecond <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%.0f kbps", float64(bitsPerSecond)/1000)
}

func orUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Unknown"
	}
	return value
}
