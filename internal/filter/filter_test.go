package filter

import (
	"errors"
	"testing"

	"zebranoise/internal/failure"
	"zebranoise/internal/frame"
)

func mustResolve(t *testing.T, specs ...Spec) []Filter {
	t.Helper()
	filters, err := Resolve(specs)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return filters
}

func TestIdentityChain(t *testing.T) {
	chain, warning, err := Build(nil, 150, 50)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if warning != nil {
		t.Fatalf("unexpected warning %v", warning)
	}
	if chain.Corrected() != 150 || chain.Period() != 0 {
		t.Fatalf("unexpected corrected=%d period=%d", chain.Corrected(), chain.Period())
	}
	for i := 0; i < chain.Corrected(); i++ {
		if chain.Index(i) != i {
			t.Fatalf("Index(%d) = %d", i, chain.Index(i))
		}
	}
}

func TestCombPadsAndWarns(t *testing.T) {
	filters := mustResolve(t, Spec{Name: "comb", Param: 0.08})
	chain, warning, err := Build(filters, 150, 50)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if chain.Period() != 4 {
		t.Fatalf("period = %d, want 4", chain.Period())
	}
	if chain.Corrected() != 152 {
		t.Fatalf("corrected = %d, want 152", chain.Corrected())
	}
	if chain.Corrected()%chain.Period() != 0 {
		t.Fatal("corrected count must be divisible by the period")
	}
	if warning == nil || warning.Added != 2 || warning.Nominal != 150 || warning.Period != 4 {
		t.Fatalf("unexpected warning %+v", warning)
	}
}

func TestCombNoPaddingWhenAligned(t *testing.T) {
	filters := mustResolve(t, Spec{Name: "comb", Param: 0.08})
	chain, warning, err := Build(filters, 148, 50)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if warning != nil || chain.Corrected() != 148 {
		t.Fatalf("expected no padding, got corrected=%d warning=%v", chain.Corrected(), warning)
	}
}

func TestCombIndexRepeatsPhaseZero(t *testing.T) {
	filters := mustResolve(t, Spec{Name: "comb", Param: 0.08})
	chain, _, _ := Build(filters, 16, 50)
	for i := 0; i < 16; i++ {
		got := chain.Index(i)
		if i%4 == 0 {
			if got != 0 || !chain.Marker(i) {
				t.Fatalf("position %d should map to phase 0, got %d", i, got)
			}
			continue
		}
		if got != i || chain.Marker(i) {
			t.Fatalf("position %d should pass through, got %d", i, got)
		}
	}
}

func TestCombPeriodFloor(t *testing.T) {
	f := Filter{Kind: KindComb, Param: 0.01}
	if p := f.Period(50); p != 2 {
		t.Fatalf("period = %d, want floor of 2", p)
	}
	if p := (Filter{Kind: KindComb, Param: 0.08}).Period(100); p != 8 {
		t.Fatalf("period at tscale 100 = %d, want 8", p)
	}
	if p := (Filter{Kind: KindInvert}).Period(50); p != 0 {
		t.Fatalf("invert should not be periodic, got %d", p)
	}
}

func TestComposeInOrder(t *testing.T) {
	filters := mustResolve(t, Spec{Name: "comb", Param: 0.08}, Spec{Name: "reverse"})
	chain, _, _ := Build(filters, 8, 50)
	tests := map[int]int{0: 7, 1: 6, 4: 7, 5: 2, 7: 0}
	for pos, want := range tests {
		if got := chain.Index(pos); got != want {
			t.Fatalf("Index(%d) = %d, want %d", pos, got, want)
		}
	}
}

func TestMarkerFollowsFilterOrder(t *testing.T) {
	filters := mustResolve(t, Spec{Name: "reverse"}, Spec{Name: "comb", Param: 0.08})
	chain, _, _ := Build(filters, 8, 50)
	for pos := 0; pos < 8; pos++ {
		idx, marker := chain.Index(pos), chain.Marker(pos)
		if (7-pos)%4 == 0 {
			if idx != 0 || !marker {
				t.Fatalf("position %d: index=%d marker=%v, want phase 0 marked", pos, idx, marker)
			}
			continue
		}
		if idx != 7-pos || marker {
			t.Fatalf("position %d: index=%d marker=%v, want %d unmarked", pos, idx, marker, 7-pos)
		}
	}
}

func TestMultipleCombsUseLCM(t *testing.T) {
	filters := mustResolve(t, Spec{Name: "comb", Param: 0.08}, Spec{Name: "comb", Param: 0.12})
	chain, warning, err := Build(filters, 10, 50)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if chain.Period() != 12 || chain.Corrected() != 12 || warning == nil {
		t.Fatalf("unexpected period=%d corrected=%d warning=%v", chain.Period(), chain.Corrected(), warning)
	}
}

func TestInvertTransform(t *testing.T) {
	filters := mustResolve(t, Spec{Name: "invert"})
	chain, _, _ := Build(filters, 4, 50)
	s := &frame.Float{Width: 2, Height: 1, Pix: []float64{0.25, 1}}
	chain.Transform(s)
	if s.Pix[0] != 0.75 || s.Pix[1] != 0 {
		t.Fatalf("unexpected transform result %v", s.Pix)
	}
	if chain.Index(3) != 3 {
		t.Fatal("invert must not remap indices")
	}
}

func TestResolveRejectsUnknownAndBadParams(t *testing.T) {
	tests := []Spec{
		{Name: "bogus"},
		{Name: "comb", Param: 0},
		{Name: "comb", Param: 1},
		{Name: ""},
	}
	for _, spec := range tests {
		t.Run(spec.String(), func(t *testing.T) {
			if _, err := Resolve([]Spec{spec}); !errors.Is(err, failure.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestBuildRejectsEmptyTimeline(t *testing.T) {
	if _, _, err := Build(nil, 0, 50); !errors.Is(err, failure.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestParseSpecs(t *testing.T) {
	specs, err := ParseSpecs([]string{"comb:0.08", " Reverse "})
	if err != nil {
		t.Fatalf("ParseSpecs: %v", err)
	}
	if len(specs) != 2 || specs[0].Name != "comb" || specs[0].Param != 0.08 || specs[1].Name != "Reverse" {
		t.Fatalf("unexpected specs %+v", specs)
	}
	filters, err := Resolve(specs)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if filters[1].Kind != KindReverse || filters[0].String() != "comb:0.08" {
		t.Fatalf("unexpected filters %+v", filters)
	}

	none, err := ParseSpecs([]string{"none"})
	if err != nil || len(none) != 0 {
		t.Fatalf("expected empty list for none, got %v %v", none, err)
	}
	if _, err := ParseSpec("comb:abc"); !errors.Is(err, failure.ErrConfiguration) {
		t.Fatalf("expected configuration error for bad parameter, got %v", err)
	}
}
