package config

import (
	"errors"
	"fmt"

	"zebranoise/internal/filter"
	"zebranoise/internal/noise"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStimulus(); err != nil {
		return err
	}
	if err := c.validateNoise(); err != nil {
		return err
	}
	if err := c.validateDiscretize(); err != nil {
		return err
	}
	if _, err := filter.Resolve(c.FilterSpecs()); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateStimulus() error {
	if c.Stimulus.Width <= 0 || c.Stimulus.Height <= 0 {
		return errors.New("stimulus.width and stimulus.height must be positive")
	}
	if c.Stimulus.DurationSeconds <= 0 {
		return errors.New("stimulus.duration_seconds must be positive")
	}
	if c.Stimulus.FPS <= 0 {
		return errors.New("stimulus.fps must be positive")
	}
	return nil
}

func (c *Config) validateNoise() error {
	if c.Noise.Levels < 1 || c.Noise.Levels > noise.MaxLevels {
		return fmt.Errorf("noise.levels must be between 1 and %d", noise.MaxLevels)
	}
	if c.Noise.TScale <= 0 {
		return errors.New("noise.tscale must be positive")
	}
	if c.Noise.XScale <= 0 || c.Noise.YScale <= 0 {
		return errors.New("noise.xscale and noise.yscale must be positive")
	}
	if c.Noise.Persistence <= 0 || c.Noise.Persistence > 1 {
		return errors.New("noise.persistence must be in (0, 1]")
	}
	if c.Noise.Align < 0 {
		return errors.New("noise.align must be zero or positive")
	}
	if _, err := noise.ParseBasis(c.Noise.Basis); err != nil {
		return errors.New("noise.basis must be perlin or opensimplex")
	}
	return nil
}

func (c *Config) validateDiscretize() error {
	if c.Discretize.Shades < 2 || c.Discretize.Shades > 256 {
		return errors.New("discretize.shades must be between 2 and 256")
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Format {
	case FormatVideo, FormatPNG:
	default:
		return fmt.Errorf("output.format must be %q or %q", FormatVideo, FormatPNG)
	}
	if c.Output.Quality < 1 || c.Output.Quality > 31 {
		return errors.New("output.quality must be between 1 and 31")
	}
	if c.Output.MinFreeMiB < 0 {
		return errors.New("output.min_free_mib must be zero or positive")
	}
	if c.Output.Verify && c.Output.Format != FormatVideo {
		return errors.New("output.verify requires output.format = \"video\"")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return errors.New("logging.format must be console or json")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("logging.level must be debug, info, warn, or error")
	}
	return nil
}
