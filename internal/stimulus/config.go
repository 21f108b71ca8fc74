package stimulus

import (
	"zebranoise/internal/config"
	"zebranoise/internal/filter"
	"zebranoise/internal/noise"
)

// Config is the full parameter set for one run.
type Config struct {
	Width       int
	Height      int
	Duration    float64
	FPS         int
	Levels      int
	Shades      int
	XYScale     float64
	TScale      float64
	XScale      float64
	YScale      float64
	Seed        int64
	Filters     []filter.Spec
	Persistence float64
	Align       int
	Basis       noise.Basis
}

// FromConfig extracts the stimulus parameters from application config.
func FromConfig(cfg *config.Config) Config {
	return Config{
		Width:       cfg.Stimulus.Width,
		Height:      cfg.Stimulus.Height,
		Duration:    cfg.Stimulus.DurationSeconds,
		FPS:         cfg.Stimulus.FPS,
		Levels:      cfg.Noise.Levels,
		Shades:      cfg.Discretize.Shades,
		XYScale:     cfg.Noise.XYScale,
		TScale:      cfg.Noise.TScale,
		XScale:      cfg.Noise.XScale,
		YScale:      cfg.Noise.YScale,
		Seed:        cfg.Stimulus.Seed,
		Filters:     cfg.FilterSpecs(),
		Persistence: cfg.Noise.Persistence,
		Align:       cfg.Noise.Align,
		Basis:       noise.Basis(cfg.Noise.Basis),
	}
}
