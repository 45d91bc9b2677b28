package ffargs

import (
	"fmt"
	"math"
	"strings"

	"vidio/internal/failures"
)

// Default cell size when neither --width nor --height is given.
const (
	DefaultCellWidth  = 640
	DefaultCellHeight = 360
	DefaultBackground = "black"
)

// GridOptions tiles the inputs in row-major order. Zero Rows/Cols are
// computed from the input count; zero cell sides fall back to 640x360, or are
// derived at 16:9 when only one side is set. An empty Background is black.
type GridOptions struct {
	Inputs     []string
	Output     string
	Rows       int      `flag:"rows" validate:"gte=0"`
	Cols       int      `flag:"cols" validate:"gte=0"`
	CellWidth  int      `flag:"width" validate:"gte=0,lte=7680"`
	CellHeight int      `flag:"height" validate:"gte=0,lte=4320"`
	Padding    int      `flag:"padding" validate:"gte=0,lte=1024"`
	Background string   `flag:"background" validate:"ffcolor"`
	Encoding   Encoding `flag:"-" validate:"-"`
}

// GridLayout is the resolved tiling.
type GridLayout struct {
	Rows       int
	Cols       int
	CellWidth  int
	CellHeight int
	Padding    int
	Background string
}

// CanvasSize is the output frame size, rounded up to even sides.
func (l GridLayout) CanvasSize() (int, int) {
	width := l.Cols*l.CellWidth + (l.Cols-1)*l.Padding
	height := l.Rows*l.CellHeight + (l.Rows-1)*l.Padding
	return width + width%2, height + height%2
}

// Cell returns the top-left corner of the i-th cell.
func (l GridLayout) Cell(i int) (int, int) {
	row, col := i/l.Cols, i%l.Cols
	return col * (l.CellWidth + l.Padding), row * (l.CellHeight + l.Padding)
}

// ComputeGridSize picks rows and cols for n inputs. With neither given the
// grid is the smallest square-ish arrangement, preferring extra columns.
// More inputs than cells is rejected rather than silently dropped.
func ComputeGridSize(n, rows, cols int) (int, int, error) {
	if n <= 0 {
		return 0, 0, failures.Wrap(failures.ErrIncompatibleInputs, "grid", "", "no inputs", nil)
	}
	switch {
	case rows > 0 && cols > 0:
	case rows > 0:
		cols = ceilDiv(n, rows)
	case cols > 0:
		rows = ceilDiv(n, cols)
	default:
		cols = int(math.Ceil(math.Sqrt(float64(n))))
		rows = ceilDiv(n, cols)
	}
	if rows*cols < n {
		return 0, 0, failures.Wrap(
			failures.ErrTooManyInputs,
			"grid",
			"--rows/--cols",
			fmt.Sprintf("%dx%d grid has %d cells but %d inputs were given", rows, cols, rows*cols, n),
			nil,
		)
	}
	return rows, cols, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// ValidateGrid checks options without resolving the layout.
func ValidateGrid(opts GridOptions) error {
	_, err := PlanGrid(opts)
	return err
}

// PlanGrid validates the options and resolves the layout.
func PlanGrid(opts GridOptions) (GridLayout, error) {
	if err := requireInputs("grid", opts.Inputs, 2); err != nil {
		return GridLayout{}, err
	}
	if err := requireOutput("grid", opts.Output); err != nil {
		return GridLayout{}, err
	}
	if opts.Background == "" {
		opts.Background = DefaultBackground
	}
	if err := checkStruct("grid", opts); err != nil {
		return GridLayout{}, err
	}
	if err := opts.Encoding.check("grid"); err != nil {
		return GridLayout{}, err
	}
	rows, cols, err := ComputeGridSize(len(opts.Inputs), opts.Rows, opts.Cols)
	if err != nil {
		return GridLayout{}, err
	}

	// Cells, gaps and therefore the canvas stay on the 4:2:0 chroma grid.
	width, height := opts.CellWidth, opts.CellHeight
	switch {
	case width == 0 && height == 0:
		width, height = DefaultCellWidth, DefaultCellHeight
	case height == 0:
		width = evenCeil(width)
		height = evenCeil(width * 9 / 16)
	case width == 0:
		height = evenCeil(height)
		width = evenCeil(height * 16 / 9)
	default:
		width, height = evenCeil(width), evenCeil(height)
	}
	return GridLayout{
		Rows:       rows,
		Cols:       cols,
		CellWidth:  width,
		CellHeight: height,
		Padding:    opts.Padding + opts.Padding%2,
		Background: opts.Background,
	}, nil
}

func evenCeil(n int) int {
	if n < 2 {
		return 2
	}
	return n + n%2
}

// GridFilter renders the tiling graph for layout with n inputs: each input is
// letterboxed into its cell, then overlaid on a background canvas so unused
// cells keep the background colour.
func GridFilter(layout GridLayout, n int) string {
	w, h := layout.CellWidth, layout.CellHeight
	canvasW, canvasH := layout.CanvasSize()

	parts := make([]string, 0, 2*n+2)
	for i := 0; i < n; i++ {
		parts = append(parts, fmt.Sprintf(
			"[%d:v]scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:color=%s,setsar=1[c%d]",
			i, w, h, w, h, layout.Background, i,
		))
	}
	parts = append(parts, fmt.Sprintf("color=c=%s:s=%dx%d[bg]", layout.Background, canvasW, canvasH))

	prev := "bg"
	for i := 0; i < n; i++ {
		x, y := layout.Cell(i)
		next := fmt.Sprintf("t%d", i)
		parts = append(parts, fmt.Sprintf("[%s][c%d]overlay=x=%d:y=%d:shortest=1[%s]", prev, i, x, y, next))
		prev = next
	}
	parts = append(parts, fmt.Sprintf("[%s]format=yuv420p[v]", prev))
	return strings.Join(parts, ";")
}

// BuildGrid returns the layout and the argument vector. Audio is dropped.
func BuildGrid(opts GridOptions) (GridLayout, []string, error) {
	layout, err := PlanGrid(opts)
	if err != nil {
		return GridLayout{}, nil, err
	}
	args := []string{"-hide_banner"}
	for _, in := range opts.Inputs {
		args = append(args, "-i", in)
	}
	args = append(args, "-filter_complex", GridFilter(layout, len(opts.Inputs)), "-map", "[v]")
	args = append(args, opts.Encoding.VideoArgs()...)
	args = append(args, "-an", "-shortest")
	return layout, withOutput(args, opts.Output), nil
}
