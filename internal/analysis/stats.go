package analysis

import (
	"gonum.org/v1/gonum/stat"

	"zebranoise/internal/frame"
	"zebranoise/internal/stimulus"
)

// FrameStats summarizes the luminance of a discretized frame on a 0..1 scale.
type FrameStats struct {
	Mean   float64
	StdDev float64
	// White is the fraction of pixels at full intensity.
	White float64
}

// Stats computes FrameStats for g.
func Stats(g *frame.Gray) FrameStats {
	if g == nil || len(g.Pix) == 0 {
		return FrameStats{}
	}
	values := make([]float64, len(g.Pix))
	white := 0
	for i, v := range g.Pix {
		values[i] = float64(v) / 255
		if v == 255 {
			white++
		}
	}
	mean, std := stat.MeanStdDev(values, nil)
	return FrameStats{Mean: mean, StdDev: std, White: float64(white) / float64(len(values))}
}

// LuminanceTrace returns the mean luminance of the first n noise positions.
func LuminanceTrace(p *stimulus.Pipeline, n int) ([]float64, error) {
	n = min(n, p.Plan().Corrected)
	trace := make([]float64, 0, n)
	for pos := range n {
		g, err := p.Frame(pos)
		if err != nil {
			return nil, err
		}
		trace = append(trace, Stats(g).Mean)
	}
	return trace, nil
}
