package geometry

import (
	"fmt"

	"vidio/internal/failures"
)

// ResizeRequest holds the sizing options of the resize command. Exactly one
// mode may be set: explicit Width/Height, Scale, or Preset.
type ResizeRequest struct {
	Width       int
	Height      int
	Scale       float64
	Preset      string
	ForceAspect bool
}

func (r ResizeRequest) modes() []string {
	var modes []string
	if r.Width != 0 || r.Height != 0 {
		modes = append(modes, "--width/--height")
	}
	if r.Scale != 0 {
		modes = append(modes, "--scale")
	}
	if r.Preset != "" {
		modes = append(modes, "--preset")
	}
	return modes
}

// CheckResize validates the request without needing the source size.
func CheckResize(req ResizeRequest) error {
	modes := req.modes()
	switch {
	case len(modes) == 0:
		return failures.Wrap(failures.ErrInvalidOption, "resize", "", "specify one of --width, --height, --scale or --preset", nil)
	case len(modes) > 1:
		return failures.Wrap(failures.ErrConflictingOptions, "resize", modes[0], fmt.Sprintf("cannot be combined with %s", modes[1]), nil)
	}
	if req.Width < 0 {
		return failures.Wrap(failures.ErrInvalidOption, "resize", "--width", "must be positive", nil)
	}
	if req.Height < 0 {
		return failures.Wrap(failures.ErrInvalidOption, "resize", "--height", "must be positive", nil)
	}
	if req.Scale < 0 {
		return failures.Wrap(failures.ErrInvalidOption, "resize", "--scale", "must be positive", nil)
	}
	if req.Preset != "" {
		if _, err := LookupPreset(req.Preset); err != nil {
			return err
		}
	}
	return nil
}

// ResolveResize computes the output size for source.
func ResolveResize(req ResizeRequest, source Size) (Size, error) {
	if err := CheckResize(req); err != nil {
		return Size{}, err
	}
	if err := requireSource(source); err != nil {
		return Size{}, err
	}

	switch {
	case req.Scale > 0:
		return Size{
			Width:  RoundEven(float64(source.Width) * req.Scale),
			Height: RoundEven(float64(source.Height) * req.Scale),
		}, nil
	case req.Preset != "":
		preset, _ := LookupPreset(req.Preset)
		width := FloorEven(source.Width)
		return Size{Width: width, Height: RoundEven(float64(width) / preset.Ratio())}, nil
	}

	if req.ForceAspect {
		size := Size{Width: req.Width, Height: req.Height}
		if size.Width == 0 {
			size.Width = source.Width
		}
		if size.Height == 0 {
			size.Height = source.Height
		}
		return size, nil
	}

	aspect := float64(source.Width) / float64(source.Height)
	switch {
	case req.Width > 0 && req.Height > 0:
		// Fit inside the requested box without distorting.
		width := float64(req.Width)
		height := width / aspect
		if height > float64(req.Height) {
			height = float64(req.Height)
			width = height * aspect
		}
		return Size{Width: RoundEven(width), Height: RoundEven(height)}, nil
	case req.Width > 0:
		return Size{Width: RoundEven(float64(req.Width)), Height: RoundEven(float64(req.Width) / aspect)}, nil
	default:
		return Size{Width: RoundEven(float64(req.Height) * aspect), Height: RoundEven(float64(req.Height))}, nil
	}
}
