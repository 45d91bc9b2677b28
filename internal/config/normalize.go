package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeTools(); err != nil {
		return err
	}
	c.normalizeEncoding()
	c.normalizeGIF()
	c.normalizeGrid()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeTools() error {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpeg
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)

	var err error
	if strings.ContainsRune(c.Tools.FFmpeg, '/') || strings.HasPrefix(c.Tools.FFmpeg, "~") {
		if c.Tools.FFmpeg, err = expandPath(c.Tools.FFmpeg); err != nil {
			return fmt.Errorf("tools.ffmpeg: %w", err)
		}
	}
	if strings.ContainsRune(c.Tools.FFprobe, '/') || strings.HasPrefix(c.Tools.FFprobe, "~") {
		if c.Tools.FFprobe, err = expandPath(c.Tools.FFprobe); err != nil {
			return fmt.Errorf("tools.ffprobe: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeEncoding() {
	c.Encoding.VideoCodec = strings.TrimSpace(c.Encoding.VideoCodec)
	if c.Encoding.VideoCodec == "" {
		c.Encoding.VideoCodec = defaultVideoCodec
	}
	c.Encoding.AudioCodec = strings.TrimSpace(c.Encoding.AudioCodec)
	if c.Encoding.AudioCodec == "" {
		c.Encoding.AudioCodec = defaultAudioCodec
	}
	c.Encoding.Preset = strings.ToLower(strings.TrimSpace(c.Encoding.Preset))
	if c.Encoding.Preset == "" {
		c.Encoding.Preset = defaultPreset
	}
}

func (c *Config) normalizeGIF() {
	c.GIF.DefaultQuality = strings.ToLower(strings.TrimSpace(c.GIF.DefaultQuality))
	if c.GIF.DefaultQuality == "" {
		c.GIF.DefaultQuality = defaultGIFQuality
	}
}

func (c *Config) normalizeGrid() {
	c.Grid.Background = strings.TrimSpace(c.Grid.Background)
	if c.Grid.Background == "" {
		c.Grid.Background = defaultBackground
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console", "text":
		c.Logging.Format = "console"
	case "json":
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch c.Logging.Level {
	case "":
		c.Logging.Level = defaultLogLevel
	case "warning":
		c.Logging.Level = "warn"
	}
}
