package frame

import (
	"math"

	"zebranoise/internal/failure"
)

// Discretize quantizes src into levels evenly spaced buckets over [0,1] and
// spreads the bucket indices across 0..255. A value exactly on a boundary
// lands in the lower bucket.
func Discretize(src *Float, levels int) (*Gray, error) {
	if levels < 2 {
		return nil, failure.Configf("discretize", "shades must be at least 2, got %d", levels)
	}
	lut := levelTable(levels)
	out := NewGray(src.Width, src.Height)
	for i, v := range src.Pix {
		out.Pix[i] = lut[bucket(v, levels)]
	}
	return out, nil
}

// Level maps a single value the same way Discretize does.
func Level(v float64, levels int) uint8 {
	if levels < 2 {
		return 0
	}
	return levelTable(levels)[bucket(v, levels)]
}

func bucket(v float64, levels int) int {
	if math.IsNaN(v) {
		return 0
	}
	b := int(math.Ceil(v*float64(levels))) - 1
	if b < 0 {
		return 0
	}
	if b >= levels {
		return levels - 1
	}
	return b
}

func levelTable(levels int) []uint8 {
	lut := make([]uint8, levels)
	for b := range lut {
		lut[b] = uint8(math.Round(float64(b) * 255 / float64(levels-1)))
	}
	return lut
}
