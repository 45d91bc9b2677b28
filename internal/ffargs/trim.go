package ffargs

import (
	"vidio/internal/failures"
	"vidio/internal/timespec"
)

// TrimOptions are the raw trim flags. End and Duration are mutually exclusive;
// both empty trims to the end of the stream.
type TrimOptions struct {
	Input    string
	Output   string
	Start    string
	End      string
	Duration string
}

// TrimRange is the parsed window.
type TrimRange struct {
	Start    timespec.Spec
	End      *timespec.Spec
	Duration *timespec.Spec
}

// ResolveTrim validates the options and parses the time window.
func ResolveTrim(opts TrimOptions) (TrimRange, error) {
	if err := requireInputs("trim", []string{opts.Input}, 1); err != nil {
		return TrimRange{}, err
	}
	if err := requireOutput("trim", opts.Output); err != nil {
		return TrimRange{}, err
	}
	return parseWindow("trim", opts.Start, opts.End, opts.Duration)
}

func parseWindow(command, start, end, duration string) (TrimRange, error) {
	if end != "" && duration != "" {
		return TrimRange{}, conflict(command, "--end", "--duration")
	}
	var window TrimRange
	if start != "" {
		s, err := timespec.Parse(start)
		if err != nil {
			return TrimRange{}, failures.Wrap(failures.ErrInvalidTimeFormat, command, "--start", "", err)
		}
		window.Start = s
	}
	if end != "" {
		e, err := timespec.Parse(end)
		if err != nil {
			return TrimRange{}, failures.Wrap(failures.ErrInvalidTimeFormat, command, "--end", "", err)
		}
		if e <= window.Start {
			return TrimRange{}, failures.Wrap(failures.ErrInvalidOption, command, "--end", "must be after --start ("+window.Start.String()+")", nil)
		}
		window.End = &e
	}
	if duration != "" {
		d, err := timespec.Parse(duration)
		if err != nil {
			return TrimRange{}, failures.Wrap(failures.ErrInvalidTimeFormat, command, "--duration", "", err)
		}
		if d <= 0 {
			return TrimRange{}, failures.Wrap(failures.ErrInvalidOption, command, "--duration", "must be greater than 0", nil)
		}
		window.Duration = &d
	}
	return window, nil
}

// seekArgs renders the window; start is omitted when zero.
func (w TrimRange) seekArgs() []string {
	var args []string
	if w.Start > 0 {
		args = append(args, "-ss", w.Start.Arg())
	}
	switch {
	case w.End != nil:
		args = append(args, "-to", w.End.Arg())
	case w.Duration != nil:
		args = append(args, "-t", w.Duration.Arg())
	}
	return args
}

// BuildTrim returns a stream-copy cut. Seeking happens after -i so that --end
// stays an absolute timestamp in the source.
func BuildTrim(opts TrimOptions) ([]string, error) {
	window, err := ResolveTrim(opts)
	if err != nil {
		return nil, err
	}
	args := []string{"-hide_banner", "-i", opts.Input}
	args = append(args, window.seekArgs()...)
	args = append(args, "-c", "copy", "-avoid_negative_ts", "make_zero")
	return withOutput(args, opts.Output), nil
}
