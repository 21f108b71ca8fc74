package noise

import (
	"math"
	"math/rand/v2"
)

// Octave describes one term of the fractal sum.
type Octave struct {
	// Spatial is the frequency in cycles per long-side length.
	Spatial float64
	// Cycles is the number of temporal lattice cells across the timeline.
	Cycles int
	// Weight is the amplitude applied to this octave.
	Weight float64
	// OffsetX and OffsetY shift the spatial lattice so octaves decorrelate.
	OffsetX float64
	OffsetY float64
	// Salt seeds the gradient hash for this octave.
	Salt uint64
}

// buildOctaves derives the octave table for p. The generator is seeded from
// p.Seed alone so the table is identical across runs.
func buildOctaves(p Params, frames int) []Octave {
	seed := uint64(p.Seed)
	rng := rand.New(rand.NewPCG(seed, seed^0x5a3b_9e37_79b9_7f4a))
	base := temporalCells(frames, p.TScale)
	octaves := make([]Octave, p.Levels)
	for k := range octaves {
		scale := math.Ldexp(1, k)
		octaves[k] = Octave{
			Spatial: p.XYScale * scale,
			Cycles:  base << k,
			Weight:  math.Pow(p.Persistence, float64(k)),
			OffsetX: rng.Float64() * 256,
			OffsetY: rng.Float64() * 256,
			Salt:    rng.Uint64(),
		}
	}
	return octaves
}

// temporalCells is the number of base-octave cells spanning frames, at least one.
func temporalCells(frames int, tscale float64) int {
	if tscale <= 0 {
		return 1
	}
	cells := int(math.Round(float64(frames) / tscale))
	if cells < 1 {
		return 1
	}
	return cells
}
