package ffargs

import "strconv"

// Encoding carries the codec settings shared by the re-encoding commands.
type Encoding struct {
	VideoCodec string `flag:"video-codec" validate:"required,ffname"`
	AudioCodec string `flag:"audio-codec" validate:"required,ffname"`
	CRF        int    `flag:"crf" validate:"gte=0,lte=51"`
	Preset     string `flag:"preset" validate:"required,ffname"`
}

// DefaultEncoding matches the built-in config defaults.
func DefaultEncoding() Encoding {
	return Encoding{
		VideoCodec: "libx264",
		AudioCodec: "aac",
		CRF:        23,
		Preset:     "medium",
	}
}

// x264-family encoders understand -crf and named -preset values.
var rateControlled = map[string]bool{
	"libx264": true,
	"libx265": true,
}

// orDefault treats an unset Encoding as the defaults.
func (e Encoding) orDefault() Encoding {
	if e == (Encoding{}) {
		return DefaultEncoding()
	}
	return e
}

// VideoArgs returns the video codec flags.
func (e Encoding) VideoArgs() []string {
	e = e.orDefault()
	codec := e.VideoCodec
	args := []string{"-c:v", codec}
	if rateControlled[codec] {
		args = append(args, "-crf", strconv.Itoa(e.CRF))
		if e.Preset != "" {
			args = append(args, "-preset", e.Preset)
		}
	}
	return args
}

func (e Encoding) audioCodec() string {
	return e.orDefault().AudioCodec
}

func (e Encoding) check(command string) error {
	return checkStruct(command, e.orDefault())
}
