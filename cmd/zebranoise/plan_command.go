package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"zebranoise/internal/stimulus"
)

type planReport struct {
	NominalFrames   int      `json:"nominal_frames"`
	AdjustedTScale  float64  `json:"adjusted_tscale"`
	Filters         []string `json:"filters"`
	Period          int      `json:"period"`
	PaddingFrames   int      `json:"padding_frames"`
	CorrectedFrames int      `json:"corrected_frames"`
	BlackFrames     int      `json:"black_frames"`
	GreyFrames      int      `json:"grey_frames"`
	TotalFrames     int      `json:"total_frames"`
	Seconds         float64  `json:"seconds"`
	Width           int      `json:"width"`
	Height          int      `json:"height"`
	Warning         string   `json:"warning,omitempty"`
}

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var stim stimulusFlags
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show frame accounting without rendering",
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
			report := newPlanReport(pipeline.Plan(), cfg.Stimulus.FPS)
			if jsonOutput {
				return printReport(cmd.OutOrStdout(), report)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPlan(report))
			if report.Warning != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Warning: %s\n", report.Warning)
			}
			return nil
		},
	}

	stim.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the plan as JSON")
	return cmd
}

func newPlanReport(plan stimulus.Plan, fps int) planReport {
	filters := make([]string, 0, len(plan.Filters))
	for _, f := range plan.Filters {
		filters = append(filters, f.String())
	}
	report := planReport{
		NominalFrames:   plan.Nominal,
		AdjustedTScale:  plan.TScale,
		Filters:         filters,
		Period:          plan.Period,
		PaddingFrames:   plan.Padding,
		CorrectedFrames: plan.Corrected,
		BlackFrames:     plan.Black,
		GreyFrames:      plan.Grey,
		TotalFrames:     plan.Total,
		Seconds:         plan.Seconds(fps),
		Width:           plan.Width,
		Height:          plan.Height,
	}
	if plan.Warning != nil {
		report.Warning = plan.Warning.Error()
	}
	return report
}

func renderPlan(r planReport) string {
	filters := "none"
	if len(r.Filters) > 0 {
		filters = strings.Join(r.Filters, ", ")
	}
	period := "-"
	if r.Period > 0 {
		period = count(r.Period)
	}
	return renderKeyValues([][]string{
		{"Filters", filters},
		{"Adjusted tscale", fmt.Sprintf("%.3g", r.AdjustedTScale)},
		{"Filter period", period},
		{"Nominal frames", count(r.NominalFrames)},
		{"Padding frames", count(r.PaddingFrames)},
		{"Noise frames", count(r.CorrectedFrames)},
		{"Black frames", count(r.BlackFrames)},
		{"Grey frames", count(r.GreyFrames)},
		{"Total frames", count(r.TotalFrames)},
		{"Duration", fmt.Sprintf("%.2fs", r.Seconds)},
		{"Frame size", fmt.Sprintf("%dx%d", r.Width, r.Height)},
	})
}
