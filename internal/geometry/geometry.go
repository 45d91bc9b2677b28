// Package geometry resolves resize targets and crop regions from user options
// and the source video's dimensions.
//
// Encoders commonly reject odd frame sizes, so every size produced here is an
// even positive integer. The one exception is an explicit width/height pair
// resized with force-aspect, which is passed through verbatim.
package geometry

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"vidio/internal/failures"
)

// Size is a frame size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Valid reports whether both sides are positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Region is a crop window inside a source frame.
type Region struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	X      int `json:"x"`
	Y      int `json:"y"`
}

func (r Region) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Preset is a named aspect ratio.
type Preset struct {
	Name string
	Num  int
	Den  int
}

// Ratio returns width over height.
func (p Preset) Ratio() float64 {
	return float64(p.Num) / float64(p.Den)
}

var presets = map[string]Preset{
	"center-square": {Name: "center-square", Num: 1, Den: 1},
	"1:1":           {Name: "1:1", Num: 1, Den: 1},
	"16:9":          {Name: "16:9", Num: 16, Den: 9},
	"9:16":          {Name: "9:16", Num: 9, Den: 16},
	"4:3":           {Name: "4:3", Num: 4, Den: 3},
}

// PresetNames lists the accepted preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPreset finds a preset by name, ignoring case and surrounding space.
func LookupPreset(name string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if p, ok := presets[key]; ok {
		return p, nil
	}
	return Preset{}, failures.Wrap(
		failures.ErrInvalidOption,
		"",
		"--preset",
		fmt.Sprintf("unknown preset %q (valid: %s)", name, strings.Join(PresetNames(), ", ")),
		nil,
	)
}

// RoundEven rounds v to the nearest even integer, never below 2.
func RoundEven(v float64) int {
	n := int(math.Round(v/2)) * 2
	if n < 2 {
		return 2
	}
	return n
}

// FloorEven drops an odd trailing pixel, never below 2.
func FloorEven(n int) int {
	n -= n % 2
	if n < 2 {
		return 2
	}
	return n
}

func capEven(n, limit int) int {
	if n > limit {
		return FloorEven(limit)
	}
	return n
}

func requireSource(source Size) error {
	if !source.Valid() {
		return failures.Wrap(failures.ErrIncompatibleInputs, "", "", fmt.Sprintf("input has no usable video dimensions (%s)", source), nil)
	}
	return nil
}
