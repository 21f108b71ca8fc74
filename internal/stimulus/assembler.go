package stimulus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"zebranoise/internal/failure"
	"zebranoise/internal/frame"
	"zebranoise/internal/logging"
)

// Stage names reported to observers and logs.
const (
	StageBlack = "black"
	StageGrey  = "grey"
	StageNoise = "noise"
)

// Result summarizes a completed run.
type Result struct {
	Plan    Plan
	Written int
	Elapsed time.Duration
	Warning *failure.AlignmentWarning
}

// Assembler writes calibration and noise frames to a sink.
type Assembler struct {
	logger   *slog.Logger
	observer Observer
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithObserver registers a progress callback.
func WithObserver(fn Observer) Option {
	return func(a *Assembler) { a.observer = fn }
}

// NewAssembler constructs an Assembler.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Generate prepares cfg, opens a sink through opener, and writes the whole
// stimulus. Configuration errors are returned before opener is called.
func (a *Assembler) Generate(ctx context.Context, cfg Config, opener Opener) (result Result, err error) {
	if opener == nil {
		return Result{}, failure.Configf("stimulus", "no sink opener supplied")
	}
	pipeline, err := Prepare(cfg)
	if err != nil {
		return Result{}, err
	}
	plan := pipeline.Plan()
	result = Result{Plan: plan, Warning: plan.Warning}
	logger := logging.WithContext(ctx, logging.NewComponentLogger(a.logger, "stimulus"))

	if plan.Warning != nil {
		logging.WarnWithContext(logger, "timeline padded to filter period", "alignment_padding",
			logging.Int("nominal_frames", plan.Nominal),
			logging.Int("corrected_frames", plan.Corrected),
			logging.Int("added_frames", plan.Padding),
			logging.Int("period", plan.Period),
			logging.String(logging.FieldErrorHint, "choose a duration that is a multiple of the comb period to avoid padding"),
			logging.String(logging.FieldImpact, "video runs slightly longer than requested"),
		)
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	sink, err := opener.Open(ctx, Format{Width: plan.Width, Height: plan.Height, FPS: cfg.FPS})
	if err != nil {
		if errors.Is(err, failure.ErrSink) || errors.Is(err, failure.ErrExternalTool) || errors.Is(err, context.Canceled) {
			return result, err
		}
		return result, failure.Wrap(failure.ErrSink, "stimulus", "open sink", "", err)
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = failure.Wrap(failure.ErrSink, "stimulus", "close sink", "", cerr)
		}
	}()

	logger.Info("stimulus generation started",
		logging.String("size", fmt.Sprintf("%dx%d", plan.Width, plan.Height)),
		logging.Int("fps", cfg.FPS),
		logging.Int("noise_frames", plan.Corrected),
		logging.Int("total_frames", plan.Total),
		logging.Int64("seed", cfg.Seed),
	)
	started := time.Now()

	write := func(stage string, done, total int, f *frame.RGB) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sink.Write(f); err != nil {
			return failure.Wrap(failure.ErrSink, "stimulus", "write frame", fmt.Sprintf("%s frame %d", stage, done), err)
		}
		result.Written++
		if a.observer != nil {
			a.observer(Progress{Stage: stage, Done: done + 1, Total: total})
		}
		return nil
	}

	black := frame.Solid(plan.Width, plan.Height, frame.Black)
	for i := range plan.Black {
		if err := write(StageBlack, i, plan.Black, black); err != nil {
			return result, err
		}
	}
	grey := frame.Solid(plan.Width, plan.Height, frame.Grey)
	for i := range plan.Grey {
		if err := write(StageGrey, i, plan.Grey, grey); err != nil {
			return result, err
		}
	}
	logger.Debug("calibration written", logging.Int("frames", plan.Black+plan.Grey))

	for pos := range plan.Corrected {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		gray, ferr := pipeline.Frame(pos)
		if ferr != nil {
			return result, ferr
		}
		if err := write(StageNoise, pos, plan.Corrected, gray.RGB()); err != nil {
			return result, err
		}
	}

	result.Elapsed = time.Since(started)
	logger.Info("stimulus generation completed",
		logging.Int("frames_written", result.Written),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

// Generate runs a default Assembler.
func Generate(ctx context.Context, cfg Config, opener Opener) (Result, error) {
	return NewAssembler().Generate(ctx, cfg, opener)
}
