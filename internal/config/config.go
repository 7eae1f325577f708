// Package config handles renderer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/df07/go-phong-raytracer/internal/logger"
	"github.com/df07/go-phong-raytracer/pkg/imageio"
)

// Stdout is the output path that streams a PPM image to standard output.
const Stdout = "-"

// DefaultFormat encodes generated output paths when no format is set.
const DefaultFormat = imageio.FormatPNG

// Config holds all renderer settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig selects the scene and overrides its sampling settings.
type RenderConfig struct {
	Scene           string `yaml:"scene"`             // Built-in name, scene file path or discovered scene ID
	ScenesDir       string `yaml:"scenes_dir"`        // Directory searched for scene files
	Width           int    `yaml:"width"`             // 0 keeps the scene width; height follows the aspect ratio
	MaxDepth        int    `yaml:"max_depth"`         // -1 keeps the scene depth
	SamplesPerPixel int    `yaml:"samples_per_pixel"` // 0 keeps the scene setting
	Workers         int    `yaml:"workers"`           // 0 uses every CPU
	TileSize        int    `yaml:"tile_size"`
}

// OutputConfig controls where the image is written.
type OutputConfig struct {
	Path   string `yaml:"path"`   // Empty picks <dir>/<scene>/render_<timestamp>.<format>; "-" writes PPM to stdout
	Dir    string `yaml:"dir"`    // Root of generated output paths
	Format string `yaml:"format"` // ppm, png or bmp; empty follows the path extension, png for generated paths
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Scene:           "default",
			ScenesDir:       "scenes",
			Width:           0,
			MaxDepth:        -1,
			SamplesPerPixel: 0,
			Workers:         0,
			TileSize:        64,
		},
		Output: OutputConfig{
			Path:   "",
			Dir:    "output",
			Format: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error

	if c.Render.Scene == "" {
		err = multierr.Append(err, errors.New("render.scene must not be empty"))
	}
	if c.Render.Width < 0 {
		err = multierr.Append(err, fmt.Errorf("render.width must not be negative, got %d", c.Render.Width))
	}
	if c.Render.MaxDepth < -1 {
		err = multierr.Append(err, fmt.Errorf("render.max_depth must be -1 or more, got %d", c.Render.MaxDepth))
	}
	if c.Render.SamplesPerPixel < 0 {
		err = multierr.Append(err, fmt.Errorf("render.samples_per_pixel must not be negative, got %d", c.Render.SamplesPerPixel))
	}
	if c.Render.Workers < 0 {
		err = multierr.Append(err, fmt.Errorf("render.workers must not be negative, got %d", c.Render.Workers))
	}
	if c.Render.TileSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("render.tile_size must be positive, got %d", c.Render.TileSize))
	}
	err = multierr.Append(err, c.Output.validate())
	if !logger.ValidLevel(c.Logging.Level) {
		err = multierr.Append(err, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}

	return err
}

// GeneratedFormat returns the encoding used when no output path is given.
func (o OutputConfig) GeneratedFormat() imageio.Format {
	if format, err := imageio.ParseFormat(o.Format); err == nil {
		return format
	}
	return DefaultFormat
}

// validate checks the format against an explicit output path, whose extension picks the encoder.
func (o OutputConfig) validate() error {
	if o.Path == Stdout {
		return nil
	}

	var format imageio.Format
	if o.Format != "" {
		var err error
		if format, err = imageio.ParseFormat(o.Format); err != nil {
			return fmt.Errorf("output.format: %w", err)
		}
	}
	if o.Path == "" {
		return nil
	}

	pathFormat, err := imageio.FormatFromPath(o.Path)
	if err != nil {
		return fmt.Errorf("output.path: %w", err)
	}
	if format != "" && format != pathFormat {
		return fmt.Errorf("output.format %q does not match output.path %s", o.Format, o.Path)
	}
	return nil
}
