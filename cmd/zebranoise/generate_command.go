package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"zebranoise/internal/config"
	"zebranoise/internal/deps"
	"zebranoise/internal/failure"
	"zebranoise/internal/logging"
	"zebranoise/internal/output"
	"zebranoise/internal/preflight"
	"zebranoise/internal/sink"
	"zebranoise/internal/stimulus"
)

type generateSummary struct {
	RunID          string  `json:"run_id"`
	Artifact       string  `json:"artifact"`
	Manifest       string  `json:"manifest,omitempty"`
	Format         string  `json:"format"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	FPS            int     `json:"fps"`
	Seed           int64   `json:"seed"`
	FramesWritten  int     `json:"frames_written"`
	PaddingFrames  int     `json:"padding_frames"`
	Bytes          int64   `json:"bytes"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Verified       bool    `json:"verified"`
	Warning        string  `json:"warning,omitempty"`
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var stim stimulusFlags
	var out outputFlags
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render and encode a zebra noise stimulus",
		Long: `Render the calibration lead-in (2s black, 2s grey) followed by the
discretized noise and write it to the output directory as a video or a PNG
sequence. A TOML manifest with the run parameters is written next to it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configCopy()
			if err != nil {
				return err
			}
			if err := stim.apply(cmd, cfg); err != nil {
				return err
			}
			if err := out.apply(cmd, cfg); err != nil {
				return err
			}
			if err := validateOverrides(cfg); err != nil {
				return err
			}

			summary, err := runGenerate(cmd, cfg)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printReport(cmd.OutOrStdout(), summary)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderGenerateSummary(summary))
			return nil
		},
	}

	stim.register(cmd)
	out.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")
	return cmd
}

func runGenerate(cmd *cobra.Command, cfg *config.Config) (generateSummary, error) {
	sc := stimulus.FromConfig(cfg)
	pipeline, err := stimulus.Prepare(sc)
	if err != nil {
		return generateSummary{}, err
	}
	plan := pipeline.Plan()

	video := cfg.Output.Format == config.FormatVideo
	statuses := deps.CheckBinaries(cmd.Context(), deps.Requirements(cfg.Output.FFmpegBinary, cfg.Output.FFprobeBinary, video, cfg.Output.Verify))
	if missing := deps.Missing(statuses); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, m := range missing {
			names = append(names, fmt.Sprintf("%s (%s)", m.Name, m.Detail))
		}
		return generateSummary{}, failure.Wrap(failure.ErrExternalTool, "generate", "dependencies", strings.Join(names, ", "), nil)
	}

	target, err := output.Acquire(cfg.Output.Dir, cfg.OutputFilename())
	if err != nil {
		return generateSummary{}, err
	}
	defer func() { _ = target.Release() }()

	if err := preflight.Err(preflight.RunAll(cfg)); err != nil {
		return generateSummary{}, err
	}

	runID := output.NewRunID()
	runCtx := failure.WithStage(failure.WithRunID(cmd.Context(), runID), "generate")
	baseLogger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return generateSummary{}, failure.Wrap(failure.ErrConfiguration, "generate", "logger", "", err)
	}
	logger := logging.WithContext(runCtx, baseLogger)

	var opener stimulus.Opener
	if video {
		opener = sink.VideoOpener(target.Path,
			sink.WithBinary(cfg.Output.FFmpegBinary),
			sink.WithCodec(cfg.Output.Codec),
			sink.WithQuality(cfg.Output.Quality),
		)
	} else {
		opener = sink.PNGOpener(target.Path)
	}

	progress := newProgressReporter(cmd.ErrOrStderr(), logger, plan.Total)
	assembler := stimulus.NewAssembler(
		stimulus.WithLogger(logger),
		stimulus.WithObserver(progress.observe),
	)
	started := time.Now()
	res, err := assembler.Generate(runCtx, sc, opener)
	progress.finish()
	if err != nil {
		if !errors.Is(err, failure.ErrConfiguration) {
			logging.ErrorWithContext(logger, "stimulus generation failed", failure.Category(err),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, failure.Hint(err)),
				logging.Int("frames_written", res.Written),
			)
		}
		return generateSummary{}, err
	}
	finished := time.Now()

	summary := generateSummary{
		RunID:          runID,
		Artifact:       target.Path,
		Format:         cfg.Output.Format,
		Width:          res.Plan.Width,
		Height:         res.Plan.Height,
		FPS:            cfg.Stimulus.FPS,
		Seed:           cfg.Stimulus.Seed,
		FramesWritten:  res.Written,
		PaddingFrames:  res.Plan.Padding,
		ElapsedSeconds: finished.Sub(started).Seconds(),
	}
	if res.Warning != nil {
		summary.Warning = res.Warning.Error()
	}
	if size, err := target.Size(); err == nil {
		summary.Bytes = size
	}

	if cfg.Output.Verify {
		v, err := output.Verify(runCtx, cfg.Output.FFprobeBinary, target.Path, res.Plan, cfg.Stimulus.FPS)
		if err != nil {
			return summary, err
		}
		summary.Verified = true
		logger.Info("verification passed",
			logging.Int("decoded_frames", v.Frames),
			logging.String("codec", v.Codec),
		)
	}

	if cfg.Output.Manifest {
		manifest := output.NewManifest(runID, cfg, res, target.Path, started, finished)
		manifest.Bytes = summary.Bytes
		path, err := output.WriteManifest(manifest)
		if err != nil {
			return summary, failure.Wrap(failure.ErrSink, "generate", "manifest", "", err)
		}
		summary.Manifest = path
	}
	return summary, nil
}

func renderGenerateSummary(s generateSummary) string {
	rows := [][]string{
		{"Artifact", s.Artifact},
		{"Run ID", s.RunID},
		{"Format", s.Format},
		{"Size", fmt.Sprintf("%dx%d @ %d fps", s.Width, s.Height, s.FPS)},
		{"Seed", fmt.Sprintf("%d", s.Seed)},
		{"Frames written", count(s.FramesWritten)},
		{"Padding frames", count(s.PaddingFrames)},
		{"Bytes", humanize.IBytes(uint64(max(s.Bytes, 0)))},
		{"Elapsed", (time.Duration(s.ElapsedSeconds * float64(time.Second))).Round(time.Millisecond).String()},
		{"Verified", yesNo(s.Verified)},
	}
	if s.Manifest != "" {
		rows = append(rows, []string{"Manifest", s.Manifest})
	}
	if s.Warning != "" {
		rows = append(rows, []string{"Warning", s.Warning})
	}
	return renderKeyValues(rows)
}
