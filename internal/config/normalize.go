package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeEnv(); err != nil {
		return err
	}
	c.normalizeNoise()
	c.normalizeFilters()
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeEnv() error {
	if value, ok := os.LookupEnv("ZEBRANOISE_SEED"); ok && strings.TrimSpace(value) != "" {
		seed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("ZEBRANOISE_SEED: %w", err)
		}
		c.Stimulus.Seed = seed
	}
	if value, ok := os.LookupEnv("ZEBRANOISE_OUTPUT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Output.Dir = strings.TrimSpace(value)
	}
	return nil
}

func (c *Config) normalizeNoise() {
	c.Noise.Basis = strings.ToLower(strings.TrimSpace(c.Noise.Basis))
	if c.Noise.Basis == "" {
		c.Noise.Basis = defaultBasis
	}
}

func (c *Config) normalizeFilters() {
	for i := range c.Filters {
		c.Filters[i].Name = strings.ToLower(strings.TrimSpace(c.Filters[i].Name))
	}
}

func (c *Config) normalizeOutput() error {
	var err error
	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = defaultOutputDir
	}
	if c.Output.Dir, err = expandPath(c.Output.Dir); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = defaultFormat
	}
	c.Output.Codec = strings.TrimSpace(c.Output.Codec)
	if c.Output.Codec == "" {
		c.Output.Codec = defaultCodec
	}
	c.Output.Container = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Output.Container)), ".")
	if c.Output.Container == "" {
		c.Output.Container = defaultContainer
	}
	c.Output.FFmpegBinary = strings.TrimSpace(c.Output.FFmpegBinary)
	if c.Output.FFmpegBinary == "" {
		c.Output.FFmpegBinary = defaultFFmpeg
	}
	c.Output.FFprobeBinary = strings.TrimSpace(c.Output.FFprobeBinary)
	if c.Output.FFprobeBinary == "" {
		c.Output.FFprobeBinary = defaultFFprobe
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		dir, err := expandPath(c.Logging.Dir)
		if err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
		c.Logging.Dir = dir
	}
	return nil
}
