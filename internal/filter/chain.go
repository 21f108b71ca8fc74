package filter

import (
	"zebranoise/internal/failure"
	"zebranoise/internal/frame"
)

// Chain applies a resolved filter list to a timeline of fixed length.
type Chain struct {
	filters   []Filter
	periods   []int
	nominal   int
	corrected int
	period    int
}

// Build pads tsize to the combined period of the periodic filters and returns
// the resulting chain. The warning is non-nil only when padding was added.
func Build(filters []Filter, tsize int, tscale float64) (*Chain, *failure.AlignmentWarning, error) {
	if tsize <= 0 {
		return nil, nil, failure.Configf("filter", "timeline must have at least one frame, got %d", tsize)
	}
	c := &Chain{
		filters:   append([]Filter(nil), filters...),
		periods:   make([]int, len(filters)),
		nominal:   tsize,
		corrected: tsize,
	}
	combined := 1
	for i, f := range filters {
		if p := f.Period(tscale); p > 0 {
			c.periods[i] = p
			combined = lcm(combined, p)
		}
	}
	if combined <= 1 {
		return c, nil, nil
	}
	c.period = combined
	added := (combined - tsize%combined) % combined
	if added == 0 {
		return c, nil, nil
	}
	c.corrected = tsize + added
	return c, &failure.AlignmentWarning{Nominal: tsize, Corrected: c.corrected, Added: added, Period: combined}, nil
}

// Nominal is the frame count before padding.
func (c *Chain) Nominal() int { return c.nominal }

// Corrected is the padded frame count.
func (c *Chain) Corrected() int { return c.corrected }

// Period is the combined period of the periodic filters, 0 when none.
func (c *Chain) Period() int { return c.period }

// Filters returns a copy of the resolved filters.
func (c *Chain) Filters() []Filter { return append([]Filter(nil), c.filters...) }

// Index maps output position i to the source time index, applying each
// filter's remap in order.
func (c *Chain) Index(i int) int {
	idx, _ := c.resolve(i)
	return idx
}

// Marker reports whether output position i resolves to a comb phase-0 frame.
func (c *Chain) Marker(i int) bool {
	_, marker := c.resolve(i)
	return marker
}

// resolve folds i through the filters in order. The marker is set when a comb
// sees a phase-0 index at its point in the chain.
func (c *Chain) resolve(i int) (int, bool) {
	marker := false
	for n, f := range c.filters {
		switch f.Kind {
		case KindComb:
			if i%c.periods[n] == 0 {
				i = 0
				marker = true
			}
		case KindReverse:
			i = c.corrected - 1 - i
		}
	}
	return i, marker
}

// Transform applies the pixel-space filters to s in place.
func (c *Chain) Transform(s *frame.Float) {
	for _, f := range c.filters {
		if f.Kind == KindInvert {
			for i, v := range s.Pix {
				s.Pix[i] = 1 - v
			}
		}
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int { return a / gcd(a, b) * b }
