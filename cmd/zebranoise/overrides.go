package main

import (
	"strings"

	"github.com/spf13/cobra"

	"zebranoise/internal/config"
	"zebranoise/internal/failure"
	"zebranoise/internal/filter"
)

// stimulusFlags are the per-invocation overrides shared by every command
// that builds a stimulus.
type stimulusFlags struct {
	duration float64
	fps      int
	seed     int64
	width    int
	height   int
	levels   int
	shades   int
	xyscale  float64
	tscale   float64
	basis    string
	filters  []string
}

func (f *stimulusFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Float64Var(&f.duration, "duration", 0, "Noise duration in seconds (excludes the 4s calibration lead-in)")
	flags.IntVar(&f.fps, "fps", 0, "Frame rate")
	flags.Int64Var(&f.seed, "seed", 0, "Noise seed")
	flags.IntVar(&f.width, "width", 0, "Frame width in pixels")
	flags.IntVar(&f.height, "height", 0, "Frame height in pixels")
	flags.IntVar(&f.levels, "levels", 0, "Number of noise octaves")
	flags.IntVar(&f.shades, "shades", 0, "Number of luminance levels after discretization")
	flags.Float64Var(&f.xyscale, "xyscale", 0, "Spatial scale of the lowest octave")
	flags.Float64Var(&f.tscale, "tscale", 0, "Temporal scale in frames at 30 fps")
	flags.StringVar(&f.basis, "basis", "", "Noise basis (perlin or opensimplex)")
	flags.StringSliceVar(&f.filters, "filter", nil, "Filter as name[:param], repeatable; \"none\" clears the list")
}

// apply copies every flag the user set onto cfg and revalidates it.
func (f *stimulusFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("duration") {
		cfg.Stimulus.DurationSeconds = f.duration
	}
	if changed("fps") {
		cfg.Stimulus.FPS = f.fps
	}
	if changed("seed") {
		cfg.Stimulus.Seed = f.seed
	}
	if changed("width") {
		cfg.Stimulus.Width = f.width
	}
	if changed("height") {
		cfg.Stimulus.Height = f.height
	}
	if changed("levels") {
		cfg.Noise.Levels = f.levels
	}
	if changed("shades") {
		cfg.Discretize.Shades = f.shades
	}
	if changed("xyscale") {
		cfg.Noise.XYScale = f.xyscale
	}
	if changed("tscale") {
		cfg.Noise.TScale = f.tscale
	}
	if changed("basis") {
		cfg.Noise.Basis = strings.ToLower(strings.TrimSpace(f.basis))
	}
	if changed("filter") {
		specs, err := filter.ParseSpecs(f.filters)
		if err != nil {
			return err
		}
		cfg.Filters = make([]config.Filter, 0, len(specs))
		for _, s := range specs {
			cfg.Filters = append(cfg.Filters, config.Filter{Name: s.Name, Param: s.Param})
		}
	}
	return nil
}

// outputFlags are the generate-only destination overrides.
type outputFlags struct {
	dir    string
	format string
	verify bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.dir, "out", "o", "", "Output directory")
	flags.StringVar(&f.format, "format", "", "Output format (video or png)")
	flags.BoolVar(&f.verify, "verify", false, "Decode the finished video with ffprobe and check the frame count")
}

func (f *outputFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("out") {
		dir, err := config.ExpandPath(strings.TrimSpace(f.dir))
		if err != nil {
			return failure.Wrap(failure.ErrConfiguration, "cli", "", "--out", err)
		}
		cfg.Output.Dir = dir
	}
	if changed("format") {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(f.format))
		if cfg.Output.Format == config.FormatPNG && !changed("verify") {
			cfg.Output.Verify = false
		}
	}
	if changed("verify") {
		cfg.Output.Verify = f.verify
	}
	return nil
}

func validateOverrides(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return failure.Wrap(failure.ErrConfiguration, "cli", "", "invalid overrides", err)
	}
	return nil
}
