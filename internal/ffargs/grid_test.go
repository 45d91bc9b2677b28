package ffargs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidio/internal/failures"
)

func inputs(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "in" + string(rune('a'+i)) + ".mp4"
	}
	return out
}

func TestComputeGridSize(t *testing.T) {
	cases := []struct {
		n, rows, cols      int
		wantRows, wantCols int
	}{
		{4, 0, 0, 2, 2},
		{2, 0, 0, 1, 2},
		{5, 0, 0, 2, 3},
		{9, 0, 0, 3, 3},
		{10, 0, 0, 3, 4},
		{5, 1, 0, 1, 5},
		{5, 0, 2, 3, 2},
		{3, 2, 2, 2, 2},
	}
	for _, tc := range cases {
		rows, cols, err := ComputeGridSize(tc.n, tc.rows, tc.cols)
		require.NoError(t, err)
		assert.Equal(t, tc.wantRows, rows, "rows for %+v", tc)
		assert.Equal(t, tc.wantCols, cols, "cols for %+v", tc)
	}
}

func TestComputeGridSizeRejectsOverflow(t *testing.T) {
	_, _, err := ComputeGridSize(5, 2, 2)
	require.ErrorIs(t, err, failures.ErrTooManyInputs)
	assert.Contains(t, err.Error(), "4 cells but 5 inputs")
}

func TestPlanGridDefaults(t *testing.T) {
	layout, err := PlanGrid(GridOptions{Inputs: inputs(4), Output: "out.mp4"})
	require.NoError(t, err)
	assert.Equal(t, GridLayout{Rows: 2, Cols: 2, CellWidth: 640, CellHeight: 360, Background: "black"}, layout)

	layout, err = PlanGrid(GridOptions{Inputs: inputs(2), Output: "out.mp4", CellWidth: 500})
	require.NoError(t, err)
	assert.Equal(t, 282, layout.CellHeight)

	layout, err = PlanGrid(GridOptions{Inputs: inputs(2), Output: "out.mp4", CellWidth: 641, CellHeight: 361, Padding: 3})
	require.NoError(t, err)
	assert.Equal(t, 642, layout.CellWidth)
	assert.Equal(t, 362, layout.CellHeight)
	assert.Equal(t, 4, layout.Padding)
	canvasW, canvasH := layout.CanvasSize()
	assert.Zero(t, canvasW%2)
	assert.Zero(t, canvasH%2)
	assert.Contains(t, GridFilter(layout, 2), "pad=642:362:")

	layout, err = PlanGrid(GridOptions{Inputs: inputs(2), Output: "out.mp4", CellWidth: 501})
	require.NoError(t, err)
	assert.Equal(t, 502, layout.CellWidth)
	assert.Equal(t, 282, layout.CellHeight)
}

func TestPlanGridValidation(t *testing.T) {
	_, err := PlanGrid(GridOptions{Inputs: inputs(1), Output: "out.mp4"})
	require.ErrorIs(t, err, failures.ErrIncompatibleInputs)

	_, err = PlanGrid(GridOptions{Inputs: inputs(3), Output: "out.mp4", Padding: -1})
	require.ErrorIs(t, err, failures.ErrInvalidOption)
	assert.Contains(t, err.Error(), "--padding: must be at least 0")

	_, err = PlanGrid(GridOptions{Inputs: inputs(3), Output: "out.mp4", Background: "red;drawtext"})
	require.ErrorIs(t, err, failures.ErrInvalidOption)
	assert.Contains(t, err.Error(), "--background")

	_, err = PlanGrid(GridOptions{Inputs: inputs(3), Output: "out.mp4", Background: "#1a1a1a@0.5"})
	require.NoError(t, err)
}

func TestGridFilterPlacesCellsRowMajor(t *testing.T) {
	layout := GridLayout{Rows: 2, Cols: 2, CellWidth: 320, CellHeight: 180, Padding: 5, Background: "white"}
	filter := GridFilter(layout, 3)

	assert.Contains(t, filter, "color=c=white:s=646x366[bg]")
	assert.Contains(t, filter, "[bg][c0]overlay=x=0:y=0:shortest=1[t0]")
	assert.Contains(t, filter, "[t0][c1]overlay=x=325:y=0:shortest=1[t1]")
	assert.Contains(t, filter, "[t1][c2]overlay=x=0:y=185:shortest=1[t2]")
	assert.True(t, strings.HasSuffix(filter, "[t2]format=yuv420p[v]"))
	assert.Contains(t, filter, "[2:v]scale=320:180:force_original_aspect_ratio=decrease,pad=320:180:(ow-iw)/2:(oh-ih)/2:color=white,setsar=1[c2]")
	assert.NotContains(t, filter, "[3:v]")
}

func TestBuildGridArgs(t *testing.T) {
	layout, args, err := BuildGrid(GridOptions{Inputs: inputs(4), Output: "grid.mp4"})
	require.NoError(t, err)
	assert.Equal(t, 2, layout.Rows)
	assert.Equal(t, "-filter_complex", args[9])
	assert.Equal(t, []string{"-map", "[v]", "-c:v", "libx264", "-crf", "23", "-preset", "medium", "-an", "-shortest", "-y", "grid.mp4"}, args[11:])
}
