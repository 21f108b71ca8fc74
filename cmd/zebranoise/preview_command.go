package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"golang.org/x/image/draw"

	"zebranoise/internal/analysis"
	"zebranoise/internal/failure"
	"zebranoise/internal/stimulus"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var stim stimulusFlags
	var position int
	var outPath string
	var thumbWidth int
	var traceFrames int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render one noise frame to PNG and plot mean luminance over time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configCopy()
			if err != nil {
				return err
			}
			if err := stim.apply(cmd, cfg); err != nil {
				return err
			}
			if err := validateOverrides(cfg); err != nil {
				return err
			}
			pipeline, err := stimulus.Prepare(stimulus.FromConfig(cfg))
			if err != nil {
				return err
			}
			plan := pipeline.Plan()
			if position < 0 || position >= plan.Corrected {
				return failure.Configf("preview", "--frame must be in [0, %d), got %d", plan.Corrected, position)
			}

			gray, err := pipeline.Frame(position)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = filepath.Join(cfg.Output.Dir, fmt.Sprintf("preview_%d_%06d.png", cfg.Stimulus.Seed, position))
			}
			if err := writePreview(outPath, gray.Image(), thumbWidth); err != nil {
				return failure.Wrap(failure.ErrSink, "preview", "write png", outPath, err)
			}

			stats := analysis.Stats(gray)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s (noise frame %d, source index %d, sync marker %s)\n",
				outPath, position, pipeline.Source(position), yesNo(pipeline.Marker(position)))
			fmt.Fprintf(out, "Mean luminance %.3f, std %.3f, white fraction %.3f\n", stats.Mean, stats.StdDev, stats.White)

			if traceFrames > 0 {
				trace, err := analysis.LuminanceTrace(pipeline, traceFrames)
				if err != nil {
					return err
				}
				if len(trace) > 1 {
					fmt.Fprintln(out, asciigraph.Plot(trace,
						asciigraph.Height(10),
						asciigraph.Width(80),
						asciigraph.Precision(2),
						asciigraph.Caption(fmt.Sprintf("mean luminance, first %d noise frames", len(trace))),
					))
				}
			}
			return nil
		},
	}

	stim.register(cmd)
	cmd.Flags().IntVar(&position, "frame", 0, "Noise frame position to render")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "PNG path (default: <output.dir>/preview_<seed>_<frame>.png)")
	cmd.Flags().IntVar(&thumbWidth, "thumb-width", 0, "Scale the PNG to this width (0 keeps the frame size)")
	cmd.Flags().IntVar(&traceFrames, "trace", 120, "Frames in the luminance trace (0 disables it)")
	return cmd
}

// writePreview scales with nearest neighbour so the discrete shades survive.
func writePreview(path string, src *image.Gray, width int) error {
	img := image.Image(src)
	if width > 0 && width != src.Bounds().Dx() {
		height := max(1, src.Bounds().Dy()*width/src.Bounds().Dx())
		dst := image.NewGray(image.Rect(0, 0, width, height))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		img = dst
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
