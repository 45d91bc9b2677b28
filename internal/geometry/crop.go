package geometry

import (
	"fmt"

	"vidio/internal/failures"
)

// CropRequest holds the crop command options. A preset excludes the manual
// fields; X and Y are nil when the region should be centred.
type CropRequest struct {
	Width  int
	Height int
	X      *int
	Y      *int
	Preset string
}

func (r CropRequest) manual() string {
	switch {
	case r.Width != 0:
		return "--width"
	case r.Height != 0:
		return "--height"
	case r.X != nil:
		return "--x"
	case r.Y != nil:
		return "--y"
	}
	return ""
}

// CheckCrop validates the request without needing the source size.
func CheckCrop(req CropRequest) error {
	if req.Preset != "" {
		if flag := req.manual(); flag != "" {
			return failures.Wrap(failures.ErrConflictingOptions, "crop", "--preset", "cannot be combined with "+flag, nil)
		}
		_, err := LookupPreset(req.Preset)
		return err
	}
	if req.Width <= 0 || req.Height <= 0 {
		return failures.Wrap(failures.ErrInvalidOption, "crop", "", "specify --width and --height, or --preset", nil)
	}
	if req.X != nil && *req.X < 0 {
		return failures.Wrap(failures.ErrInvalidOption, "crop", "--x", "must not be negative", nil)
	}
	if req.Y != nil && *req.Y < 0 {
		return failures.Wrap(failures.ErrInvalidOption, "crop", "--y", "must not be negative", nil)
	}
	return nil
}

// ResolveCrop computes the crop region inside source.
func ResolveCrop(req CropRequest, source Size) (Region, error) {
	if err := CheckCrop(req); err != nil {
		return Region{}, err
	}
	if err := requireSource(source); err != nil {
		return Region{}, err
	}
	if req.Preset != "" {
		preset, _ := LookupPreset(req.Preset)
		return presetRegion(preset, source), nil
	}

	width := FloorEven(req.Width)
	height := FloorEven(req.Height)
	if width > source.Width || height > source.Height {
		return Region{}, failures.Wrap(
			failures.ErrInvalidOption,
			"crop",
			"--width/--height",
			fmt.Sprintf("crop %dx%d exceeds source %s", width, height, source),
			nil,
		)
	}

	region := Region{Width: width, Height: height, X: (source.Width - width) / 2, Y: (source.Height - height) / 2}
	if req.X != nil {
		region.X = *req.X
	}
	if req.Y != nil {
		region.Y = *req.Y
	}
	if region.X+region.Width > source.Width {
		return Region{}, failures.Wrap(failures.ErrInvalidOption, "crop", "--x", fmt.Sprintf("region ends at %d, past source width %d", region.X+region.Width, source.Width), nil)
	}
	if region.Y+region.Height > source.Height {
		return Region{}, failures.Wrap(failures.ErrInvalidOption, "crop", "--y", fmt.Sprintf("region ends at %d, past source height %d", region.Y+region.Height, source.Height), nil)
	}
	return region, nil
}

// presetRegion returns the largest centred region of the preset ratio.
func presetRegion(preset Preset, source Size) Region {
	ratio := preset.Ratio()
	current := float64(source.Width) / float64(source.Height)

	var width, height int
	if current > ratio {
		height = FloorEven(source.Height)
		width = capEven(RoundEven(float64(height)*ratio), source.Width)
	} else {
		width = FloorEven(source.Width)
		height = capEven(RoundEven(float64(width)/ratio), source.Height)
	}
	return Region{
		Width:  width,
		Height: height,
		X:      (source.Width - width) / 2,
		Y:      (source.Height - height) / 2,
	}
}
