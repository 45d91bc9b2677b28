package config

const (
	defaultFFmpeg     = "ffmpeg"
	defaultFFprobe    = "ffprobe"
	defaultVideoCodec = "libx264"
	defaultAudioCodec = "aac"
	defaultCRF        = 23
	defaultPreset     = "medium"
	defaultGIFQuality = "med"
	defaultCellWidth  = 640
	defaultCellHeight = 360
	defaultBackground = "black"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
	defaultConfigPath = "~/.config/vidio/config.toml"
	projectConfigName = "vidio.toml"
)

// Default returns a Config populated with built-in defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FFmpeg:  defaultFFmpeg,
			FFprobe: defaultFFprobe,
		},
		Encoding: Encoding{
			VideoCodec: defaultVideoCodec,
			AudioCodec: defaultAudioCodec,
			CRF:        defaultCRF,
			Preset:     defaultPreset,
		},
		GIF: GIF{
			DefaultQuality: defaultGIFQuality,
		},
		Grid: Grid{
			CellWidth:  defaultCellWidth,
			CellHeight: defaultCellHeight,
			Background: defaultBackground,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
