package noise

import (
	"math"
	"strings"

	"zebranoise/internal/failure"
	"zebranoise/internal/frame"
)

// Basis selects the coherent noise primitive summed by each octave.
type Basis string

const (
	BasisPerlin      Basis = "perlin"
	BasisOpenSimplex Basis = "opensimplex"
)

// DefaultPersistence halves the amplitude of every successive octave, which
// gives the summed field an approximately 1/f spectrum.
const DefaultPersistence = 0.5

// MaxLevels bounds the octave count so temporal cell counts stay in range.
const MaxLevels = 24

// ParseBasis resolves a basis name; the empty string selects Perlin.
func ParseBasis(name string) (Basis, error) {
	switch Basis(strings.ToLower(strings.TrimSpace(name))) {
	case "", BasisPerlin:
		return BasisPerlin, nil
	case BasisOpenSimplex:
		return BasisOpenSimplex, nil
	default:
		return "", failure.Configf("noise", "unknown basis %q (want perlin or opensimplex)", name)
	}
}

// Params fully determines a noise volume.
type Params struct {
	Width       int
	Height      int
	Frames      int
	Levels      int
	XYScale     float64
	TScale      float64
	XScale      float64
	YScale      float64
	Seed        int64
	Persistence float64
	Align       int
	Basis       Basis
}

// Field evaluates slices of the noise volume described by Params.
type Field struct {
	params  Params
	octaves []Octave
	width   int
	height  int
	long    float64
	norm    float64
	simplex *simplexBasis
}

// New validates p and precomputes the octave table.
func New(p Params) (*Field, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, failure.Configf("noise", "frame size must be positive, got %dx%d", p.Width, p.Height)
	}
	if p.Frames <= 0 {
		return nil, failure.Configf("noise", "timeline must have at least one frame, got %d", p.Frames)
	}
	if p.Levels < 1 || p.Levels > MaxLevels {
		return nil, failure.Configf("noise", "levels must be between 1 and %d, got %d", MaxLevels, p.Levels)
	}
	if p.XScale <= 0 || p.YScale <= 0 {
		return nil, failure.Configf("noise", "xscale and yscale must be positive")
	}
	if p.TScale <= 0 {
		return nil, failure.Configf("noise", "tscale must be positive, got %v", p.TScale)
	}
	if p.Persistence == 0 {
		p.Persistence = DefaultPersistence
	}
	basis, err := ParseBasis(string(p.Basis))
	if err != nil {
		return nil, err
	}
	p.Basis = basis

	w, h := LatticeSize(p.Width, p.Height, p.XScale, p.YScale, p.Align)
	f := &Field{
		params:  p,
		octaves: buildOctaves(p, p.Frames),
		width:   w,
		height:  h,
		long:    float64(max(p.Width, p.Height)),
	}
	for _, o := range f.octaves {
		f.norm += math.Abs(o.Weight)
	}
	if f.norm == 0 {
		f.norm = 1
	}
	if p.Basis == BasisOpenSimplex {
		f.simplex = newSimplexBasis(p.Seed, f.octaves)
	}
	return f, nil
}

// LatticeSize returns the output frame dimensions after scaling and rounding
// up to a multiple of align (no rounding when align <= 1).
func LatticeSize(width, height int, xscale, yscale float64, align int) (int, int) {
	w := int(math.Ceil(float64(width) * xscale))
	h := int(math.Ceil(float64(height) * yscale))
	return alignUp(max(w, 1), align), alignUp(max(h, 1), align)
}

func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}

// Size reports the output lattice dimensions.
func (f *Field) Size() (int, int) { return f.width, f.height }

// Frames reports the timeline length the field loops over.
func (f *Field) Frames() int { return f.params.Frames }

// Octaves returns a copy of the octave table.
func (f *Field) Octaves() []Octave {
	out := make([]Octave, len(f.octaves))
	copy(out, f.octaves)
	return out
}

// Evaluate returns one slice per requested time index.
func (f *Field) Evaluate(indices []int) []*frame.Float {
	out := make([]*frame.Float, len(indices))
	for i, t := range indices {
		out[i] = f.Slice(t)
	}
	return out
}

// Slice computes the height x width plane at time index t. Indices outside
// [0, Frames) wrap around the loop.
func (f *Field) Slice(t int) *frame.Float {
	out := frame.NewFloat(f.width, f.height)
	phase := float64(wrap(int64(t), f.params.Frames)) / float64(f.params.Frames)

	xs := make([]float64, f.width)
	for px := range xs {
		xs[px] = float64(px) / f.params.XScale / f.long
	}

	for k, o := range f.octaves {
		tz := phase * float64(o.Cycles)
		for py := 0; py < f.height; py++ {
			y := float64(py)/f.params.YScale/f.long*o.Spatial + o.OffsetY
			row := out.Row(py)
			for px, nx := range xs {
				x := nx*o.Spatial + o.OffsetX
				var n float64
				if f.simplex != nil {
					n = f.simplex.eval(k, o, x, y, phase)
				} else {
					n = perlin3(o.Salt, x, y, tz, o.Cycles)
				}
				row[px] += o.Weight * n
			}
		}
	}

	for i, v := range out.Pix {
		out.Pix[i] = clamp01(0.5 + 0.5*v/f.norm)
	}
	return out
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0.5
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
