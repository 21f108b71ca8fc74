package noise

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// simplexBasis loops time around a circle in the extra dimension of 4D
// OpenSimplex noise, one generator per octave.
type simplexBasis struct {
	gens []opensimplex.Noise
}

func newSimplexBasis(seed int64, octaves []Octave) *simplexBasis {
	gens := make([]opensimplex.Noise, len(octaves))
	for k, o := range octaves {
		gens[k] = opensimplex.New(seed ^ int64(o.Salt))
	}
	return &simplexBasis{gens: gens}
}

// eval samples octave k at spatial lattice coordinates (x, y) and timeline
// phase in [0,1). The circle radius keeps the circumference at o.Cycles units.
func (b *simplexBasis) eval(k int, o Octave, x, y, phase float64) float64 {
	r := float64(o.Cycles) / (2 * math.Pi)
	theta := 2 * math.Pi * phase
	return b.gens[k].Eval4(x, y, r*math.Cos(theta), r*math.Sin(theta))
}
