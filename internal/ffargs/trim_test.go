package ffargs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidio/internal/failures"
)

func TestBuildTrimStartAndDuration(t *testing.T) {
	args, err := BuildTrim(TrimOptions{Input: "in.mp4", Output: "out.mp4", Start: "1:30", Duration: "45"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"-hide_banner", "-i", "in.mp4",
		"-ss", "90", "-t", "45",
		"-c", "copy", "-avoid_negative_ts", "make_zero",
		"-y", "out.mp4",
	}, args)
	assert.NotContains(t, args, "-to")
}

func TestBuildTrimEnd(t *testing.T) {
	args, err := BuildTrim(TrimOptions{Input: "in.mp4", Output: "out.mp4", Start: "30", End: "1:30.5"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-hide_banner", "-i", "in.mp4", "-ss", "30", "-to", "90.5", "-c", "copy", "-avoid_negative_ts", "make_zero", "-y", "out.mp4"}, args)
}

func TestBuildTrimZeroStartOmitsSeek(t *testing.T) {
	args, err := BuildTrim(TrimOptions{Input: "in.mp4", Output: "out.mp4", Start: "0", End: "2:15"})
	require.NoError(t, err)
	assert.NotContains(t, args, "-ss")
	assert.Contains(t, args, "135")
}

func TestBuildTrimEndAndDurationConflict(t *testing.T) {
	starts := []string{"", "0", "10", "bogus"}
	for _, start := range starts {
		_, err := BuildTrim(TrimOptions{Input: "in.mp4", Output: "out.mp4", Start: start, End: "20", Duration: "5"})
		require.ErrorIs(t, err, failures.ErrConflictingOptions, "start %q", start)
	}
}

func TestBuildTrimRejectsBadTimes(t *testing.T) {
	_, err := BuildTrim(TrimOptions{Input: "in.mp4", Output: "out.mp4", Start: "1:75"})
	require.ErrorIs(t, err, failures.ErrInvalidTimeFormat)
	assert.Contains(t, err.Error(), "--start")

	_, err = BuildTrim(TrimOptions{Input: "in.mp4", Output: "out.mp4", Start: "40", End: "30"})
	require.ErrorIs(t, err, failures.ErrInvalidOption)
	assert.Contains(t, err.Error(), "--end")

	_, err = BuildTrim(TrimOptions{Input: "in.mp4", Output: "out.mp4", Duration: "0"})
	require.ErrorIs(t, err, failures.ErrInvalidOption)
}
