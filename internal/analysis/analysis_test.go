package analysis

import (
	"math"
	"math/rand/v2"
	"testing"

	"zebranoise/internal/filter"
	"zebranoise/internal/frame"
	"zebranoise/internal/noise"
	"zebranoise/internal/stimulus"
)

func TestRadialSpectrumWhiteNoiseIsFlat(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	s := frame.NewFloat(128, 100)
	for i := range s.Pix {
		s.Pix[i] = rng.Float64()
	}
	spec, err := RadialSpectrum(s)
	if err != nil {
		t.Fatalf("RadialSpectrum: %v", err)
	}
	if spec.Size != 64 {
		t.Fatalf("expected 64x64 crop, got %d", spec.Size)
	}
	if len(spec.Frequencies) != 32 {
		t.Fatalf("expected 32 radial bins, got %d", len(spec.Frequencies))
	}
	if math.Abs(spec.Slope) > 0.5 {
		t.Fatalf("white noise slope %v, want near 0", spec.Slope)
	}
}

func TestRadialSpectrumNoiseFallsOff(t *testing.T) {
	field, err := noise.New(noise.Params{
		Width: 128, Height: 128, Frames: 10, Levels: 6, XYScale: 0.2,
		TScale: 5, XScale: 1, YScale: 1, Seed: 9, Align: 16,
	})
	if err != nil {
		t.Fatalf("noise.New: %v", err)
	}
	spec, err := RadialSpectrum(field.Slice(0))
	if err != nil {
		t.Fatalf("RadialSpectrum: %v", err)
	}
	if spec.Slope > -1 {
		t.Fatalf("expected a steep falloff, got slope %v", spec.Slope)
	}
}

func TestRadialSpectrumRejectsDegenerateInput(t *testing.T) {
	if _, err := RadialSpectrum(nil); err == nil {
		t.Fatal("expected error for nil slice")
	}
	if _, err := RadialSpectrum(frame.NewFloat(4, 4)); err == nil {
		t.Fatal("expected error for tiny slice")
	}
	if _, err := RadialSpectrum(frame.NewFloat(32, 32)); err == nil {
		t.Fatal("expected error for constant slice")
	}
}

func TestStats(t *testing.T) {
	g := frame.NewGray(2, 2)
	copy(g.Pix, []uint8{0, 255, 255, 0})
	st := Stats(g)
	if st.Mean != 0.5 || st.White != 0.5 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if math.Abs(st.StdDev-math.Sqrt(1.0/3)) > 1e-9 {
		t.Fatalf("unexpected stddev %v", st.StdDev)
	}
	if (Stats(nil) != FrameStats{}) {
		t.Fatal("expected zero stats for nil frame")
	}
}

func TestLuminanceTrace(t *testing.T) {
	p, err := stimulus.Prepare(stimulus.Config{
		Width: 32, Height: 16, Duration: 1, FPS: 10, Levels: 3, Shades: 2,
		XYScale: 0.2, TScale: 50, XScale: 1, YScale: 1, Seed: 4, Align: 16,
		Filters: []filter.Spec{{Name: "comb", Param: 0.08}},
	})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	trace, err := LuminanceTrace(p, 50)
	if err != nil {
		t.Fatalf("LuminanceTrace: %v", err)
	}
	if len(trace) != 10 {
		t.Fatalf("expected trace clipped to 10 frames, got %d", len(trace))
	}
	if trace[0] != trace[2] {
		t.Fatalf("comb marker frames should share luminance: %v vs %v", trace[0], trace[2])
	}
	for _, v := range trace {
		if v < 0 || v > 1 {
			t.Fatalf("luminance %v out of range", v)
		}
	}
}
