package logging

import "testing"

func TestNewProgressSamplerDefaultsStep(t *testing.T) {
	for _, step := range []float64{0, -3} {
		if s := NewProgressSampler(step); s.step != 5 {
			t.Fatalf("step %v: got %v, want 5", step, s.step)
		}
	}
	if s := NewProgressSampler(10); s.step != 10 {
		t.Fatalf("custom step not kept: %v", s.step)
	}
}

func TestProgressSamplerNil(t *testing.T) {
	var s *ProgressSampler
	percent, ok := s.Sample(1, 4, "noise")
	if !ok || percent != 25 {
		t.Fatalf("nil sampler: got (%v, %v)", percent, ok)
	}
}

func TestProgressSamplerSteps(t *testing.T) {
	s := NewProgressSampler(10)
	var logged []float64
	for done := 1; done <= 40; done++ {
		stage := "calibration"
		if done > 8 {
			stage = "noise"
		}
		if percent, ok := s.Sample(done, 40, stage); ok {
			logged = append(logged, percent)
		}
	}
	// 2.5 on the first event, 10 and 20 by step, 22.5 on the stage change,
	// then every 10% through 100.
	want := []float64{2.5, 10, 20, 22.5, 30, 40, 50, 60, 70, 80, 90, 100}
	if len(logged) != len(want) {
		t.Fatalf("logged %v, want %v", logged, want)
	}
	for i := range want {
		if logged[i] != want[i] {
			t.Fatalf("logged %v, want %v", logged, want)
		}
	}
}

func TestProgressSamplerUnknownTotal(t *testing.T) {
	s := NewProgressSampler(5)
	if _, ok := s.Sample(1, 0, "noise"); !ok {
		t.Fatal("first stage should log")
	}
	if percent, ok := s.Sample(2, 0, "noise"); ok || percent != -1 {
		t.Fatalf("unknown total on the same stage should stay quiet, got (%v, %v)", percent, ok)
	}
	if _, ok := s.Sample(3, 0, "grey"); !ok {
		t.Fatal("stage change should log")
	}
}

func TestProgressSamplerClampsOvershoot(t *testing.T) {
	s := NewProgressSampler(25)
	if percent, ok := s.Sample(12, 10, "noise"); !ok || percent != 100 {
		t.Fatalf("got (%v, %v), want (100, true)", percent, ok)
	}
	if _, ok := s.Sample(13, 10, "noise"); ok {
		t.Fatal("completion should only log once")
	}
}
