package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"zebranoise/internal/failure"
	"zebranoise/internal/filter"
)

//go:embed sample_config.toml
var sampleConfig string

const (
	FormatVideo = "video"
	FormatPNG   = "png"
)

// Stimulus holds the timeline and frame geometry.
type Stimulus struct {
	Width           int     `toml:"width" yaml:"width"`
	Height          int     `toml:"height" yaml:"height"`
	DurationSeconds float64 `toml:"duration_seconds" yaml:"duration_seconds"`
	FPS             int     `toml:"fps" yaml:"fps"`
	Seed            int64   `toml:"seed" yaml:"seed"`
}

// Noise holds the octave synthesis parameters.
type Noise struct {
	// Levels is the number of octaves summed, not the number of luminance shades.
	Levels  int     `toml:"levels" yaml:"levels"`
	XYScale float64 `toml:"xyscale" yaml:"xyscale"`
	TScale  float64 `toml:"tscale" yaml:"tscale"`
	XScale  float64 `toml:"xscale" yaml:"xscale"`
	YScale  float64 `toml:"yscale" yaml:"yscale"`
	// Persistence is the amplitude ratio between successive octaves. 0.5 gives
	// an approximately 1/f spectrum.
	Persistence float64 `toml:"persistence" yaml:"persistence"`
	Align       int     `toml:"align" yaml:"align"`
	Basis       string  `toml:"basis" yaml:"basis"`
}

// Discretize controls luminance quantization.
type Discretize struct {
	Shades int `toml:"shades" yaml:"shades"`
}

// Filter is one (name, param) entry of the filter list.
type Filter struct {
	Name  string  `toml:"name" yaml:"name"`
	Param float64 `toml:"param" yaml:"param"`
}

// Output controls where and how frames are written.
type Output struct {
	Dir           string `toml:"dir" yaml:"dir"`
	Format        string `toml:"format" yaml:"format"`
	Codec         string `toml:"codec" yaml:"codec"`
	Container     string `toml:"container" yaml:"container"`
	Quality       int    `toml:"quality" yaml:"quality"`
	FFmpegBinary  string `toml:"ffmpeg_binary" yaml:"ffmpeg_binary"`
	FFprobeBinary string `toml:"ffprobe_binary" yaml:"ffprobe_binary"`
	MinFreeMiB    int    `toml:"min_free_mib" yaml:"min_free_mib"`
	Verify        bool   `toml:"verify" yaml:"verify"`
	Manifest      bool   `toml:"manifest" yaml:"manifest"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" yaml:"format"`
	Level  string `toml:"level" yaml:"level"`
	Dir    string `toml:"dir" yaml:"dir"`
}

// Config encapsulates all configuration values for zebranoise.
//
// Configuration sections:
//   - Stimulus: frame size, duration, frame rate, seed
//   - Noise: octave synthesis parameters
//   - Discretize: number of luminance shades
//   - Filters: ordered temporal/pixel filters
//   - Output: destination, encoder, and post-run checks
//   - Logging: log format, level, and optional log directory
type Config struct {
	Stimulus   Stimulus   `toml:"stimulus" yaml:"stimulus"`
	Noise      Noise      `toml:"noise" yaml:"noise"`
	Discretize Discretize `toml:"discretize" yaml:"discretize"`
	Filters    []Filter   `toml:"filters" yaml:"filters"`
	Output     Output     `toml:"output" yaml:"output"`
	Logging    Logging    `toml:"logging" yaml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/zebranoise/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded. Validation failures carry the
// failure.ErrConfiguration marker.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		data, err := os.ReadFile(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		if err := decode(resolvedPath, data, &cfg); err != nil {
			return nil, "", false, failure.Wrap(failure.ErrConfiguration, "config", "parse", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, failure.Wrap(failure.ErrConfiguration, "config", "normalize", "", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, failure.Wrap(failure.ErrConfiguration, "config", "", "", err)
	}

	return &cfg, resolvedPath, exists, nil
}

// decode fills cfg from data. An absent filters key keeps the default comb,
// while an explicit empty list selects the identity filter.
func decode(path string, data []byte, cfg *Config) error {
	defaults := cfg.Filters
	cfg.Filters = nil
	probe := map[string]any{}

	if isYAML(path) {
		if err := yaml.Unmarshal(data, &probe); err != nil {
			return err
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	} else {
		if err := toml.Unmarshal(data, &probe); err != nil {
			return err
		}
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return err
		}
	}

	if _, ok := probe["filters"]; !ok {
		cfg.Filters = defaults
	} else if cfg.Filters == nil {
		cfg.Filters = []Filter{}
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	for _, name := range []string{"zebranoise.toml", "zebranoise.yaml", "zebranoise.yml"} {
		projectPath, err := filepath.Abs(name)
		if err != nil {
			return "", false, err
		}
		if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
			return projectPath, true, nil
		}
	}

	return defaultPath, false, nil
}

// FilterSpecs converts the configured filter list into unresolved specs.
func (c *Config) FilterSpecs() []filter.Spec {
	specs := make([]filter.Spec, 0, len(c.Filters))
	for _, f := range c.Filters {
		specs = append(specs, filter.Spec{Name: f.Name, Param: f.Param})
	}
	return specs
}

// OutputFilename returns the default artifact name for the configured seed.
func (c *Config) OutputFilename() string {
	if c.Output.Format == FormatPNG {
		return fmt.Sprintf("zebra_noise_%d", c.Stimulus.Seed)
	}
	return fmt.Sprintf("zebra_noise_%d.%s", c.Stimulus.Seed, c.Output.Container)
}

// Marshal renders the effective configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
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

// ExpandPath exposes the repository path expansion rules for other packages.
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
