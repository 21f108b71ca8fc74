package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zebranoise/internal/config"
	"zebranoise/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Report external tool availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			video := cfg.Output.Format == config.FormatVideo
			statuses := deps.CheckBinaries(cmd.Context(), deps.Requirements(cfg.Output.FFmpegBinary, cfg.Output.FFprobeBinary, video, cfg.Output.Verify))
			if jsonOutput {
				return printReport(cmd.OutOrStdout(), statuses)
			}

			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				state := "ok"
				switch {
				case !s.Available && s.Optional:
					state = "missing (optional)"
				case !s.Available:
					state = "missing"
				}
				location := s.Path
				if location == "" {
					location = s.Detail
				}
				rows = append(rows, []string{s.Name, state, location, s.Version, s.Description})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Dependency", "Status", "Path", "Version", "Purpose"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	return cmd
}
