package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sethvargo/go-envconfig"

	"vidio/internal/ffargs"
)

//go:embed sample_config.toml
var sampleConfig string

// Tools holds the external binaries. An empty ffprobe is resolved next to
// ffmpeg, then on PATH.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg" validate:"required"`
	FFprobe string `toml:"ffprobe"`
}

// Encoding holds the codec defaults for resize, crop, concat and grid.
type Encoding struct {
	VideoCodec string `toml:"video_codec" validate:"required"`
	AudioCodec string `toml:"audio_codec" validate:"required"`
	CRF        int    `toml:"crf" validate:"gte=0,lte=51"`
	Preset     string `toml:"preset" validate:"oneof=ultrafast superfast veryfast faster fast medium slow slower veryslow placebo"`
}

// GIF holds to-gif defaults.
type GIF struct {
	DefaultQuality string `toml:"default_quality"`
}

// Grid holds grid defaults used when the flags are not given.
type Grid struct {
	CellWidth  int    `toml:"cell_width" validate:"gte=0,lte=7680"`
	CellHeight int    `toml:"cell_height" validate:"gte=0,lte=4320"`
	Background string `toml:"background"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" validate:"oneof=console json"`
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
}

// Config encapsulates all configuration values for vidio.
//
// Configuration sections:
//   - Tools: ffmpeg and ffprobe binaries
//   - Encoding: codec, CRF and preset for re-encoding commands
//   - GIF: default quality tier for to-gif
//   - Grid: default cell size and background colour
//   - Logging: log format and level
type Config struct {
	Tools    Tools    `toml:"tools"`
	Encoding Encoding `toml:"encoding"`
	GIF      GIF      `toml:"gif"`
	Grid     Grid     `toml:"grid"`
	Logging  Logging  `toml:"logging"`
}

// envOverrides are applied after the file is decoded. Unset variables leave
// the file values alone.
type envOverrides struct {
	FFmpeg     string `env:"VIDIO_FFMPEG"`
	FFprobe    string `env:"VIDIO_FFPROBE"`
	LogLevel   string `env:"VIDIO_LOG_LEVEL"`
	LogFormat  string `env:"VIDIO_LOG_FORMAT"`
	VideoCodec string `env:"VIDIO_VIDEO_CODEC"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file
// is not an error unless path was given explicitly.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.applyEnv(context.Background()); err != nil {
		return nil, "", false, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func (c *Config) applyEnv(ctx context.Context) error {
	var env envOverrides
	if err := envconfig.Process(ctx, &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	override := func(dst *string, value string) {
		if value = strings.TrimSpace(value); value != "" {
			*dst = value
		}
	}
	override(&c.Tools.FFmpeg, env.FFmpeg)
	override(&c.Tools.FFprobe, env.FFprobe)
	override(&c.Logging.Level, env.LogLevel)
	override(&c.Logging.Format, env.LogFormat)
	override(&c.Encoding.VideoCodec, env.VideoCodec)
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file %s does not exist", expanded)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %s is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EncodingDefaults converts the encoding section for the argument builders.
func (c *Config) EncodingDefaults() ffargs.Encoding {
	return ffargs.Encoding{
		VideoCodec: c.Encoding.VideoCodec,
		AudioCodec: c.Encoding.AudioCodec,
		CRF:        c.Encoding.CRF,
		Preset:     c.Encoding.Preset,
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
