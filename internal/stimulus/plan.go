package stimulus

import (
	"math"

	"zebranoise/internal/failure"
	"zebranoise/internal/filter"
	"zebranoise/internal/frame"
	"zebranoise/internal/noise"
)

// CalibrationSeconds is the length of each of the black and grey segments.
const CalibrationSeconds = 2

// referenceFPS is the frame rate tscale is expressed against.
const referenceFPS = 30

// Plan is the frame accounting for a run.
type Plan struct {
	Nominal   int
	TScale    float64
	Period    int
	Padding   int
	Corrected int
	Black     int
	Grey      int
	Total     int
	Width     int
	Height    int
	Filters   []filter.Filter
	Warning   *failure.AlignmentWarning
}

// Seconds is the playback length of the whole video.
func (p Plan) Seconds(fps int) float64 {
	if fps <= 0 {
		return 0
	}
	return float64(p.Total) / float64(fps)
}

// Pipeline evaluates discretized noise frames for a prepared run.
type Pipeline struct {
	cfg   Config
	plan  Plan
	chain *filter.Chain
	field *noise.Field
}

// Prepare validates cfg and builds the plan, filter chain, and noise field.
// Every error it returns carries failure.ErrConfiguration.
func Prepare(cfg Config) (*Pipeline, error) {
	if cfg.FPS <= 0 {
		return nil, failure.Configf("stimulus", "fps must be positive, got %d", cfg.FPS)
	}
	if cfg.Duration <= 0 || math.IsNaN(cfg.Duration) || math.IsInf(cfg.Duration, 0) {
		return nil, failure.Configf("stimulus", "duration must be positive, got %v", cfg.Duration)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, failure.Configf("stimulus", "frame size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Shades < 2 {
		return nil, failure.Configf("stimulus", "shades must be at least 2, got %d", cfg.Shades)
	}
	if cfg.TScale <= 0 {
		return nil, failure.Configf("stimulus", "tscale must be positive, got %v", cfg.TScale)
	}

	nominal := int(math.Round(cfg.Duration * float64(cfg.FPS)))
	if nominal <= 0 {
		return nil, failure.Configf("stimulus", "duration %vs at %d fps yields no frames", cfg.Duration, cfg.FPS)
	}
	tscale := cfg.TScale * float64(cfg.FPS) / referenceFPS

	filters, err := filter.Resolve(cfg.Filters)
	if err != nil {
		return nil, err
	}
	chain, warning, err := filter.Build(filters, nominal, tscale)
	if err != nil {
		return nil, err
	}

	field, err := noise.New(noise.Params{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Frames:      chain.Corrected(),
		Levels:      cfg.Levels,
		XYScale:     cfg.XYScale,
		TScale:      tscale,
		XScale:      cfg.XScale,
		YScale:      cfg.YScale,
		Seed:        cfg.Seed,
		Persistence: cfg.Persistence,
		Align:       cfg.Align,
		Basis:       cfg.Basis,
	})
	if err != nil {
		return nil, err
	}

	width, height := field.Size()
	calibration := CalibrationSeconds * cfg.FPS
	plan := Plan{
		Nominal:   nominal,
		TScale:    tscale,
		Period:    chain.Period(),
		Padding:   chain.Corrected() - nominal,
		Corrected: chain.Corrected(),
		Black:     calibration,
		Grey:      calibration,
		Total:     2*calibration + chain.Corrected(),
		Width:     width,
		Height:    height,
		Filters:   chain.Filters(),
		Warning:   warning,
	}
	return &Pipeline{cfg: cfg, plan: plan, chain: chain, field: field}, nil
}

// Plan returns the frame accounting.
func (p *Pipeline) Plan() Plan { return p.plan }

// Config returns the parameters the pipeline was prepared with.
func (p *Pipeline) Config() Config { return p.cfg }

// Source resolves output position pos to the noise time index.
func (p *Pipeline) Source(pos int) int { return p.chain.Index(pos) }

// Marker reports whether output position pos is a comb sync frame.
func (p *Pipeline) Marker(pos int) bool { return p.chain.Marker(pos) }

// Raw returns the continuous slice for output position pos after the pixel
// filters, before discretization.
func (p *Pipeline) Raw(pos int) *frame.Float {
	slice := p.field.Slice(p.chain.Index(pos))
	p.chain.Transform(slice)
	return slice
}

// Frame returns the discretized noise frame for output position pos.
func (p *Pipeline) Frame(pos int) (*frame.Gray, error) {
	return frame.Discretize(p.Raw(pos), p.cfg.Shades)
}
