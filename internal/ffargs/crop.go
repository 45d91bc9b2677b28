package ffargs

import (
	"fmt"

	"vidio/internal/geometry"
)

// CropOptions are the crop flags plus the probed source size.
type CropOptions struct {
	Input    string
	Output   string
	Preset   string
	Width    int  `flag:"width" validate:"gte=0"`
	Height   int  `flag:"height" validate:"gte=0"`
	X        *int `flag:"x" validate:"omitempty,gte=0"`
	Y        *int `flag:"y" validate:"omitempty,gte=0"`
	Source   geometry.Size
	Encoding Encoding `flag:"-" validate:"-"`
}

func (o CropOptions) request() geometry.CropRequest {
	return geometry.CropRequest{
		Width:  o.Width,
		Height: o.Height,
		X:      o.X,
		Y:      o.Y,
		Preset: o.Preset,
	}
}

// ValidateCrop checks everything that does not need the source size.
func ValidateCrop(opts CropOptions) error {
	if err := requireInputs("crop", []string{opts.Input}, 1); err != nil {
		return err
	}
	if err := requireOutput("crop", opts.Output); err != nil {
		return err
	}
	if err := checkStruct("crop", opts); err != nil {
		return err
	}
	if err := geometry.CheckCrop(opts.request()); err != nil {
		return err
	}
	return opts.Encoding.check("crop")
}

// ResolveCropRegion returns the region that BuildCrop will cut.
func ResolveCropRegion(opts CropOptions) (geometry.Region, error) {
	if err := ValidateCrop(opts); err != nil {
		return geometry.Region{}, err
	}
	return geometry.ResolveCrop(opts.request(), opts.Source)
}

// BuildCrop crops the video stream and copies audio.
func BuildCrop(opts CropOptions) ([]string, error) {
	region, err := ResolveCropRegion(opts)
	if err != nil {
		return nil, err
	}
	args := []string{"-hide_banner", "-i", opts.Input, "-vf", CropFilter(region)}
	args = append(args, opts.Encoding.VideoArgs()...)
	args = append(args, "-c:a", "copy")
	return withOutput(args, opts.Output), nil
}

// CropFilter renders crop=w:h:x:y.
func CropFilter(r geometry.Region) string {
	return fmt.Sprintf("crop=%d:%d:%d:%d", r.Width, r.Height, r.X, r.Y)
}
