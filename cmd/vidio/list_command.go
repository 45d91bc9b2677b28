package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"vidio/internal/failures"
	"vidio/internal/media/ffprobe"
	"vidio/internal/medialist"
)

type listCommand struct {
	ctx *commandContext
}

func (listCommand) Name() string { return "list" }

type listFlags struct {
	detailed  bool
	recursive bool
	json      bool
	table     bool
}

// listRecord is the JSON shape of one entry.
type listRecord struct {
	Name              string  `json:"name"`
	Path              string  `json:"path"`
	SizeBytes         int64   `json:"size_bytes"`
	SizeFormatted     string  `json:"size_formatted"`
	DurationSeconds   float64 `json:"duration_seconds"`
	DurationFormatted string  `json:"duration_formatted"`
	Width             int     `json:"width,omitempty"`
	Height            int     `json:"height,omitempty"`
	Resolution        string  `json:"resolution"`
	Codec             string  `json:"codec"`
}

func (c listCommand) Register(parent *cobra.Command) {
	var flags listFlags

	cmd := &cobra.Command{
		Use:     "list [dir]",
		Aliases: []string{"ls"},
		Short:   "List video files in a directory",
		Long: `List video files in a directory (default: the current one).

The default output is ls-style: size then name. --list adds duration,
resolution and codec read through ffprobe.`,
		Example: `  vidio ls
  vidio list -l
  vidio list ~/Videos --recursive --table
  vidio list --json`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return c.run(cmd, c.ctx.options(), dir, flags)
		},
	}
	cmd.Flags().BoolVarP(&flags.detailed, "list", "l", false, "Show duration, resolution and codec")
	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "r", false, "Search subdirectories too")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&flags.table, "table", "t", false, "Render a table instead of ls-style output")
	parent.AddCommand(cmd)
}

func (c listCommand) run(cmd *cobra.Command, opts cliOptions, dir string, flags listFlags) error {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	entries, err := medialist.Discover(dir, flags.recursive)
	if err != nil {
		return err
	}

	out := newPrinter(cmd.OutOrStdout(), opts)
	if len(entries) == 0 {
		if flags.json {
			return writeJSON(cmd, []listRecord{})
		}
		where := "in directory"
		if flags.recursive {
			where = "recursively"
		}
		out.warn("No video files found %s: %s", where, dir)
		return nil
	}

	if flags.detailed || flags.json {
		if err := c.probeAll(cmd, opts, entries); err != nil {
			return err
		}
	}

	switch {
	case flags.json:
		records := make([]listRecord, 0, len(entries))
		for _, e := range entries {
			records = append(records, listRecord{
				Name:              e.Name,
				Path:              e.Path,
				SizeBytes:         e.SizeBytes,
				SizeFormatted:     e.SizeLabel(),
				DurationSeconds:   e.DurationSeconds,
				DurationFormatted: e.DurationLabel(),
				Width:             e.Width,
				Height:            e.Height,
				Resolution:        e.Resolution(),
				Codec:             e.CodecLabel(),
			})
		}
		return writeJSON(cmd, records)
	case flags.table:
		fmt.Fprintln(cmd.OutOrStdout(), listTable(dir, entries, flags.detailed).render(out))
	default:
		writeLsStyle(out, entries, flags.detailed)
	}

	out.line("")
	out.line("%s", out.paint(fmt.Sprintf("Found %d video file(s)", len(entries)), color.Bold))
	return nil
}

// probeAll fills in metadata. A file ffprobe cannot read is reported as
// Unknown; a missing ffprobe or cancellation aborts the listing.
func (c listCommand) probeAll(cmd *cobra.Command, opts cliOptions, entries []medialist.Entry) error {
	prober := ffprobe.NewProber(c.ctx.toolRunner(cmd, opts))
	logger := c.ctx.commandLogger("list")

	var bar *progressbar.ProgressBar
	if len(entries) > 1 && !opts.Verbose && shouldColorize(cmd.ErrOrStderr()) {
		bar = progressbar.NewOptions(len(entries),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("Probing"),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for i := range entries {
		meta, err := prober.Probe(cmd.Context(), entries[i].Path, false)
		switch {
		case err == nil:
			entries[i].Apply(meta)
		case errors.Is(err, failures.ErrToolNotFound), errors.Is(err, context.Canceled):
			return err
		default:
			logger.Debug("probe failed", "path", entries[i].Path, "error", err)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return nil
}

func listTable(dir string, entries []medialist.Entry, detailed bool) tableView {
	view := tableView{
		Title:   "Video Files in " + dir,
		Headers: []string{"Name", "Size"},
		Aligns:  []columnAlignment{alignLeft, alignRight},
		Rows:    make([][]string, 0, len(entries)),
	}
	if detailed {
		view.Headers = append(view.Headers, "Duration", "Resolution", "Codec")
	}
	var total int64
	for _, e := range entries {
		total += e.SizeBytes
		row := []string{e.Name, e.SizeLabel()}
		if detailed {
			row = append(row, e.DurationLabel(), e.Resolution(), e.CodecLabel())
		}
		view.Rows = append(view.Rows, row)
	}
	view.Footer = []string{"Total", humanize.IBytes(uint64(total))}
	return view
}

func writeLsStyle(p printer, entries []medialist.Entry, detailed bool) {
	sizeWidth, durationWidth, resolutionWidth := 0, 0, 0
	for _, e := range entries {
		sizeWidth = max(sizeWidth, len(e.SizeLabel()))
		durationWidth = max(durationWidth, len(e.DurationLabel()))
		resolutionWidth = max(resolutionWidth, len(e.Resolution()))
	}
	for _, e := range entries {
		parts := []string{p.paint(fmt.Sprintf("%*s", sizeWidth, e.SizeLabel()), color.FgGreen)}
		if detailed {
			parts = append(parts,
				p.paint(fmt.Sprintf("%-*s", durationWidth, e.DurationLabel()), color.FgYellow),
				p.paint(fmt.Sprintf("%-*s", resolutionWidth, e.Resolution()), color.FgMagenta),
				p.paint(fmt.Sprintf("%-8s", e.CodecLabel()), color.FgBlue),
			)
		}
		parts = append(parts, p.paint(e.Name, color.FgCyan))
		p.line("%s", strings.Join(parts, " "))
	}
}
