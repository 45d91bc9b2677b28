package ffargs

import (
	"fmt"

	"vidio/internal/geometry"
)

// ResizeOptions are the resize flags plus the probed source size.
type ResizeOptions struct {
	Input       string
	Output      string
	Width       int     `flag:"width" validate:"gte=0,lte=16384"`
	Height      int     `flag:"height" validate:"gte=0,lte=16384"`
	Scale       float64 `flag:"scale" validate:"omitempty,gt=0,lte=10"`
	Preset      string
	ForceAspect bool
	Source      geometry.Size
	Encoding    Encoding `flag:"-" validate:"-"`
}

func (o ResizeOptions) request() geometry.ResizeRequest {
	return geometry.ResizeRequest{
		Width:       o.Width,
		Height:      o.Height,
		Scale:       o.Scale,
		Preset:      o.Preset,
		ForceAspect: o.ForceAspect,
	}
}

// ValidateResize checks everything that does not need the source size.
func ValidateResize(opts ResizeOptions) error {
	if err := requireInputs("resize", []string{opts.Input}, 1); err != nil {
		return err
	}
	if err := requireOutput("resize", opts.Output); err != nil {
		return err
	}
	if err := geometry.CheckResize(opts.request()); err != nil {
		return err
	}
	if err := checkStruct("resize", opts); err != nil {
		return err
	}
	if opts.ForceAspect && opts.Scale != 0 {
		return conflict("resize", "--force-aspect", "--scale")
	}
	if opts.ForceAspect && opts.Preset != "" {
		return conflict("resize", "--force-aspect", "--preset")
	}
	return opts.Encoding.check("resize")
}

// ResolveResizeTarget returns the output size for the options.
func ResolveResizeTarget(opts ResizeOptions) (geometry.Size, error) {
	if err := ValidateResize(opts); err != nil {
		return geometry.Size{}, err
	}
	return geometry.ResolveResize(opts.request(), opts.Source)
}

// BuildResize scales the video stream and copies audio.
func BuildResize(opts ResizeOptions) ([]string, error) {
	size, err := ResolveResizeTarget(opts)
	if err != nil {
		return nil, err
	}
	args := []string{"-hide_banner", "-i", opts.Input, "-vf", ScaleFilter(size)}
	args = append(args, opts.Encoding.VideoArgs()...)
	args = append(args, "-c:a", "copy")
	return withOutput(args, opts.Output), nil
}

// ScaleFilter renders a scale filter for an exact size.
func ScaleFilter(size geometry.Size) string {
	return fmt.Sprintf("scale=%d:%d", size.Width, size.Height)
}
