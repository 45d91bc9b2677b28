package ffargs

import (
	"fmt"
	"strings"

	"vidio/internal/failures"
	"vidio/internal/geometry"
)

// ConcatOptions stacks inputs side by side, or on top of each other when
// Vertical is set. Sizes, when it has one entry per input, lets the stack
// dimension be checked before ffmpeg runs.
type ConcatOptions struct {
	Inputs   []string
	Output   string
	Vertical bool
	Sizes    []geometry.Size
	Encoding Encoding
}

// ValidateConcat checks input count and, when sizes are known, that the
// stacked edge matches across inputs.
func ValidateConcat(opts ConcatOptions) error {
	if err := requireInputs("concat", opts.Inputs, 2); err != nil {
		return err
	}
	if err := requireOutput("concat", opts.Output); err != nil {
		return err
	}
	if len(opts.Sizes) == len(opts.Inputs) {
		first := opts.Sizes[0]
		for i, size := range opts.Sizes[1:] {
			if opts.Vertical && size.Width != first.Width {
				return failures.Wrap(failures.ErrIncompatibleInputs, "concat", "--vertical",
					fmt.Sprintf("%s is %d px wide but %s is %d px; vertical stacking needs equal widths", opts.Inputs[i+1], size.Width, opts.Inputs[0], first.Width), nil)
			}
			if !opts.Vertical && size.Height != first.Height {
				return failures.Wrap(failures.ErrIncompatibleInputs, "concat", "",
					fmt.Sprintf("%s is %d px high but %s is %d px; horizontal stacking needs equal heights", opts.Inputs[i+1], size.Height, opts.Inputs[0], first.Height), nil)
			}
		}
	}
	return opts.Encoding.check("concat")
}

// ConcatFilter renders the stacking graph for n inputs.
func ConcatFilter(n int, vertical bool) string {
	layout := "hstack"
	if vertical {
		layout = "vstack"
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "[%d:v]", i)
	}
	fmt.Fprintf(&b, "%s=inputs=%d[v]", layout, n)
	return b.String()
}

// BuildConcat stacks the video streams and keeps the first input's audio.
func BuildConcat(opts ConcatOptions) ([]string, error) {
	if err := ValidateConcat(opts); err != nil {
		return nil, err
	}
	args := []string{"-hide_banner"}
	for _, in := range opts.Inputs {
		args = append(args, "-i", in)
	}
	args = append(args,
		"-filter_complex", ConcatFilter(len(opts.Inputs), opts.Vertical),
		"-map", "[v]",
		"-map", "0:a?",
	)
	args = append(args, opts.Encoding.VideoArgs()...)
	args = append(args, "-c:a", opts.Encoding.audioCodec(), "-shortest")
	return withOutput(args, opts.Output), nil
}
