package ffargs

import (
	"fmt"
	"strconv"
	"strings"

	"vidio/internal/failures"
	"vidio/internal/geometry"
)

// Quality is a GIF quality tier.
type Quality string

const (
	QualityLow  Quality = "low"
	QualityMed  Quality = "med"
	QualityHigh Quality = "high"
)

// QualityPreset is the fixed setting triple behind a tier plus its palette
// size. Width zero keeps the source width.
type QualityPreset struct {
	FPS    int
	Width  int
	Dither string
	Colors int
}

var qualityPresets = map[Quality]QualityPreset{
	QualityLow:  {FPS: 8, Width: 320, Dither: "bayer", Colors: 128},
	QualityMed:  {FPS: 10, Width: 480, Dither: "floyd_steinberg", Colors: 192},
	QualityHigh: {FPS: 15, Width: 0, Dither: "sierra2_4a", Colors: 256},
}

// Preset returns the settings for q.
func (q Quality) Preset() QualityPreset {
	return qualityPresets[q]
}

// ParseQuality accepts low, med/medium, high, or a number 1-10
// (1-3 low, 4-7 med, 8-10 high).
func ParseQuality(value string) (Quality, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	switch key {
	case "low":
		return QualityLow, nil
	case "med", "medium":
		return QualityMed, nil
	case "high":
		return QualityHigh, nil
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return "", failures.Wrap(failures.ErrInvalidOption, "to-gif", "--quality", fmt.Sprintf("%q is not low, med, high or a number 1-10", value), nil)
	}
	switch {
	case n >= 1 && n <= 3:
		return QualityLow, nil
	case n >= 4 && n <= 7:
		return QualityMed, nil
	case n >= 8 && n <= 10:
		return QualityHigh, nil
	}
	return "", failures.Wrap(failures.ErrInvalidOption, "to-gif", "--quality", "must be between 1 and 10", nil)
}

// GIFOptions are the to-gif flags. Zero FPS/Width and empty Dither take the
// quality tier's value.
type GIFOptions struct {
	Input      string
	Output     string
	Quality    string
	FPS        int     `flag:"fps" validate:"omitempty,min=1,max=30"`
	Width      int     `flag:"width" validate:"gte=0,lte=7680"`
	Scale      float64 `flag:"scale" validate:"omitempty,gte=0.1,lte=2"`
	Dither     string  `flag:"dither" validate:"omitempty,oneof=none bayer floyd_steinberg sierra2 sierra2_4a"`
	Start      string
	End        string
	Duration   string
	Loop       int `flag:"loop" validate:"gte=-1,lte=65535"`
	NoOptimize bool
	Source     geometry.Size
}

// GIFSettings are the effective settings after applying the tier.
type GIFSettings struct {
	Quality Quality
	FPS     int
	Width   int
	Scale   float64
	Dither  string
	Colors  int
	Window  TrimRange
}

// GIFPass is one ffmpeg invocation.
type GIFPass struct {
	Args   []string
	Output string
}

// GIFPlan is the ordered passes; the last one writes the GIF.
type GIFPlan struct {
	Settings GIFSettings
	Passes   []GIFPass
}

// Final returns the pass that writes the requested output.
func (p GIFPlan) Final() GIFPass {
	return p.Passes[len(p.Passes)-1]
}

// ValidateGIF checks the options and resolves the effective settings.
func ValidateGIF(opts GIFOptions) (GIFSettings, error) {
	if err := requireInputs("to-gif", []string{opts.Input}, 1); err != nil {
		return GIFSettings{}, err
	}
	if err := requireOutput("to-gif", opts.Output); err != nil {
		return GIFSettings{}, err
	}
	if opts.Scale != 0 && opts.Width != 0 {
		return GIFSettings{}, conflict("to-gif", "--scale", "--width")
	}
	if err := checkStruct("to-gif", opts); err != nil {
		return GIFSettings{}, err
	}
	window, err := parseWindow("to-gif", opts.Start, opts.End, opts.Duration)
	if err != nil {
		return GIFSettings{}, err
	}

	tier := QualityMed
	if opts.Quality != "" {
		if tier, err = ParseQuality(opts.Quality); err != nil {
			return GIFSettings{}, err
		}
	}
	preset := tier.Preset()
	settings := GIFSettings{
		Quality: tier,
		FPS:     preset.FPS,
		Width:   preset.Width,
		Scale:   opts.Scale,
		Dither:  preset.Dither,
		Colors:  preset.Colors,
		Window:  window,
	}
	if opts.FPS != 0 {
		settings.FPS = opts.FPS
	}
	if opts.Dither != "" {
		settings.Dither = opts.Dither
	}
	switch {
	case opts.Width != 0:
		settings.Width = opts.Width
	case opts.Scale != 0:
		settings.Width = 0
	case settings.Width > 0 && opts.Source.Width > 0 && settings.Width > opts.Source.Width:
		// Tier widths never upscale.
		settings.Width = 0
	}
	return settings, nil
}

func (s GIFSettings) scaleFilter(source geometry.Size) string {
	switch {
	case s.Scale > 0 && source.Valid():
		return fmt.Sprintf("scale=%d:%d:flags=lanczos",
			geometry.RoundEven(float64(source.Width)*s.Scale),
			geometry.RoundEven(float64(source.Height)*s.Scale))
	case s.Scale > 0:
		return fmt.Sprintf("scale=trunc(iw*%s/2)*2:-2:flags=lanczos", strconv.FormatFloat(s.Scale, 'f', -1, 64))
	case s.Width > 0:
		return fmt.Sprintf("scale=%d:-2:flags=lanczos", s.Width)
	case source.Valid():
		return fmt.Sprintf("scale=%d:%d:flags=lanczos", source.Width, source.Height)
	default:
		return "scale=iw:ih:flags=lanczos"
	}
}

// BaseFilter is the frame-rate and scale chain shared by both passes.
func (s GIFSettings) BaseFilter(source geometry.Size) string {
	return fmt.Sprintf("fps=%d,%s", s.FPS, s.scaleFilter(source))
}

// BuildGIF plans the conversion. Without NoOptimize it is two passes: a
// palettegen pass writing palettePath, then a paletteuse pass reading it.
func BuildGIF(opts GIFOptions, palettePath string) (GIFPlan, error) {
	settings, err := ValidateGIF(opts)
	if err != nil {
		return GIFPlan{}, err
	}
	if !opts.NoOptimize && strings.TrimSpace(palettePath) == "" {
		return GIFPlan{}, failures.Wrap(failures.ErrInvalidOption, "to-gif", "", "palette path is required for two-pass conversion", nil)
	}

	base := settings.BaseFilter(opts.Source)
	input := append([]string{"-hide_banner"}, settings.Window.seekArgs()...)
	input = append(input, "-i", opts.Input)
	loop := []string{"-loop", strconv.Itoa(opts.Loop)}

	if opts.NoOptimize {
		args := append(clone(input), "-vf", base)
		args = append(args, loop...)
		return GIFPlan{
			Settings: settings,
			Passes:   []GIFPass{{Args: withOutput(args, opts.Output), Output: opts.Output}},
		}, nil
	}

	palette := append(clone(input),
		"-vf", fmt.Sprintf("%s,palettegen=max_colors=%d:stats_mode=diff", base, settings.Colors),
	)
	final := append(clone(input),
		"-i", palettePath,
		"-filter_complex", fmt.Sprintf("%s[x];[x][1:v]paletteuse=dither=%s", base, settings.Dither),
	)
	final = append(final, loop...)
	return GIFPlan{
		Settings: settings,
		Passes: []GIFPass{
			{Args: withOutput(palette, palettePath), Output: palettePath},
			{Args: withOutput(final, opts.Output), Output: opts.Output},
		},
	}, nil
}

func clone(args []string) []string {
	return append([]string(nil), args...)
}
