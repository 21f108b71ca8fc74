package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"zebranoise/internal/failure"
	"zebranoise/internal/media/ffprobe"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var countFrames bool
	var rawJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show ffprobe details for an encoded stimulus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			res, err := ffprobe.Inspect(cmd.Context(), cfg.Output.FFprobeBinary, args[0], ffprobe.Options{CountFrames: countFrames})
			if err != nil {
				return failure.Wrap(failure.ErrExternalTool, "inspect", "ffprobe", args[0], err)
			}
			out := cmd.OutOrStdout()
			if rawJSON {
				_, err := out.Write(res.RawJSON())
				return err
			}

			rows := make([][]string, 0, len(res.Streams))
			for _, s := range res.Streams {
				frames := "-"
				if n := s.FrameCount(); n >= 0 {
					frames = count(n)
				}
				size := "-"
				if s.Width > 0 {
					size = fmt.Sprintf("%dx%d", s.Width, s.Height)
				}
				rate := "-"
				if r := s.FrameRate(); r > 0 {
					rate = fmt.Sprintf("%.3f", r)
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", s.Index), s.CodecType, s.CodecName, s.PixFmt, size, rate, frames,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Type", "Codec", "Pixel format", "Size", "FPS", "Frames"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			fmt.Fprintf(out, "Container %s, %.2fs, %s\n",
				res.Format.FormatName, res.DurationSeconds(), humanize.IBytes(uint64(res.SizeBytes())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&countFrames, "count-frames", false, "Decode the file to count frames exactly")
	cmd.Flags().BoolVar(&rawJSON, "json", false, "Print the raw ffprobe JSON")
	return cmd
}
