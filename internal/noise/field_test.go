package noise

import (
	"errors"
	"math"
	"testing"

	"zebranoise/internal/failure"
)

func testParams() Params {
	return Params{
		Width:   32,
		Height:  16,
		Frames:  20,
		Levels:  4,
		XYScale: 0.2,
		TScale:  10,
		XScale:  1,
		YScale:  1,
		Seed:    7,
		Align:   16,
	}
}

func TestFieldDeterministic(t *testing.T) {
	a, err := New(testParams())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New(testParams())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, idx := range []int{0, 3, 19} {
		sa, sb := a.Slice(idx), b.Slice(idx)
		for i := range sa.Pix {
			if sa.Pix[i] != sb.Pix[i] {
				t.Fatalf("slice %d differs at %d: %v vs %v", idx, i, sa.Pix[i], sb.Pix[i])
			}
		}
	}
}

func TestFieldSeedChangesOutput(t *testing.T) {
	p := testParams()
	a, _ := New(p)
	p.Seed = 8
	b, _ := New(p)
	sa, sb := a.Slice(5), b.Slice(5)
	same := true
	for i := range sa.Pix {
		if sa.Pix[i] != sb.Pix[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical slices")
	}
}

func TestFieldRangeAndVariation(t *testing.T) {
	for _, basis := range []Basis{BasisPerlin, BasisOpenSimplex} {
		t.Run(string(basis), func(t *testing.T) {
			p := testParams()
			p.Basis = basis
			p.XYScale = 4
			f, err := New(p)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			s := f.Slice(2)
			lo, hi := math.Inf(1), math.Inf(-1)
			for _, v := range s.Pix {
				if v < 0 || v > 1 || math.IsNaN(v) {
					t.Fatalf("value out of range: %v", v)
				}
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
			}
			if hi-lo < 0.05 {
				t.Fatalf("expected spatial variation, got range [%v, %v]", lo, hi)
			}
		})
	}
}

func TestFieldLoopsOverTimeline(t *testing.T) {
	f, err := New(testParams())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first, wrapped := f.Slice(0), f.Slice(20)
	for i := range first.Pix {
		if math.Abs(first.Pix[i]-wrapped.Pix[i]) > 1e-12 {
			t.Fatalf("index 20 should wrap to 0, pixel %d: %v vs %v", i, first.Pix[i], wrapped.Pix[i])
		}
	}
	neg := f.Slice(-1)
	last := f.Slice(19)
	for i := range neg.Pix {
		if neg.Pix[i] != last.Pix[i] {
			t.Fatalf("index -1 should wrap to 19")
		}
	}
}

func TestFieldPermissiveXYScale(t *testing.T) {
	for _, scale := range []float64{0, 3.5, -0.5} {
		p := testParams()
		p.XYScale = scale
		f, err := New(p)
		if err != nil {
			t.Fatalf("xyscale %v: %v", scale, err)
		}
		for _, v := range f.Slice(1).Pix {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("xyscale %v produced non-finite value", scale)
			}
		}
	}
}

func TestLatticeSize(t *testing.T) {
	tests := []struct {
		w, h   int
		xs, ys float64
		align  int
		ww, wh int
	}{
		{1920, 1080, 1, 1, 16, 1920, 1088},
		{100, 50, 0.5, 0.5, 16, 64, 32},
		{100, 50, 1, 1, 0, 100, 50},
		{10, 10, 2, 1, 1, 20, 10},
	}
	for _, tt := range tests {
		gw, gh := LatticeSize(tt.w, tt.h, tt.xs, tt.ys, tt.align)
		if gw != tt.ww || gh != tt.wh {
			t.Fatalf("LatticeSize(%d,%d,%v,%v,%d) = %dx%d, want %dx%d", tt.w, tt.h, tt.xs, tt.ys, tt.align, gw, gh, tt.ww, tt.wh)
		}
	}
}

func TestOctaveTable(t *testing.T) {
	f, err := New(testParams())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	octaves := f.Octaves()
	if len(octaves) != 4 {
		t.Fatalf("expected 4 octaves, got %d", len(octaves))
	}
	for k, o := range octaves {
		if want := 0.2 * math.Pow(2, float64(k)); math.Abs(o.Spatial-want) > 1e-12 {
			t.Fatalf("octave %d spatial = %v, want %v", k, o.Spatial, want)
		}
		if want := 2 << k; o.Cycles != want {
			t.Fatalf("octave %d cycles = %d, want %d", k, o.Cycles, want)
		}
		if want := math.Pow(DefaultPersistence, float64(k)); o.Weight != want {
			t.Fatalf("octave %d weight = %v, want %v", k, o.Weight, want)
		}
	}
}

func TestNewRejectsInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero width", func(p *Params) { p.Width = 0 }},
		{"no frames", func(p *Params) { p.Frames = 0 }},
		{"no levels", func(p *Params) { p.Levels = 0 }},
		{"too many levels", func(p *Params) { p.Levels = MaxLevels + 1 }},
		{"bad scale", func(p *Params) { p.XScale = 0 }},
		{"bad tscale", func(p *Params) { p.TScale = -1 }},
		{"bad basis", func(p *Params) { p.Basis = "worley" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.mutate(&p)
			if _, err := New(p); !errors.Is(err, failure.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestEvaluateMatchesSlice(t *testing.T) {
	f, _ := New(testParams())
	slices := f.Evaluate([]int{4, 4})
	if len(slices) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(slices))
	}
	direct := f.Slice(4)
	for i := range direct.Pix {
		if slices[0].Pix[i] != direct.Pix[i] || slices[1].Pix[i] != direct.Pix[i] {
			t.Fatal("Evaluate disagrees with Slice")
		}
	}
}

func TestOpenSimplexLoopIsSeamless(t *testing.T) {
	p := testParams()
	p.Basis = BasisOpenSimplex
	p.Frames = 200
	p.TScale = 50
	f, err := New(p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	meanDiff := func(a, b int) float64 {
		sa, sb := f.Slice(a), f.Slice(b)
		var sum float64
		for i := range sa.Pix {
			sum += math.Abs(sa.Pix[i] - sb.Pix[i])
		}
		return sum / float64(len(sa.Pix))
	}
	across := meanDiff(199, 0)
	far := meanDiff(0, 100)
	if across >= far {
		t.Fatalf("loop seam (%v) should be smoother than half a loop apart (%v)", across, far)
	}
}

func TestParseBasis(t *testing.T) {
	tests := []struct {
		in   string
		want Basis
	}{
		{"", BasisPerlin},
		{"Perlin", BasisPerlin},
		{" opensimplex ", BasisOpenSimplex},
	}
	for _, tt := range tests {
		got, err := ParseBasis(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseBasis(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseBasis("value"); !errors.Is(err, failure.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
