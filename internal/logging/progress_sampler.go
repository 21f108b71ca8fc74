package logging

import "math"

// ProgressSampler thins per-frame progress events down to one line per
// percentage step, plus one whenever the stage changes.
type ProgressSampler struct {
	step  float64
	stage string
	next  float64
}

// NewProgressSampler returns a sampler emitting every step percent (5 when
// step is not positive).
func NewProgressSampler(step float64) *ProgressSampler {
	if step <= 0 {
		step = 5
	}
	return &ProgressSampler{step: step}
}

// Sample converts done/total into a percentage and reports whether the event
// should be logged. With an unknown total the percentage is -1 and only stage
// changes are reported. A nil sampler logs everything.
func (s *ProgressSampler) Sample(done, total int, stage string) (float64, bool) {
	percent := -1.0
	if total > 0 {
		percent = min(100, 100*float64(done)/float64(total))
	}
	if s == nil {
		return percent, true
	}
	emit := stage != s.stage
	s.stage = stage
	if percent >= 0 && percent >= s.next {
		emit = true
	}
	if emit && percent >= 0 {
		s.next = (math.Floor(percent/s.step) + 1) * s.step
	}
	return percent, emit
}
