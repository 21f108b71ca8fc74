package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"zebranoise/internal/failure"
)

// Kind enumerates the supported filters.
type Kind int

const (
	KindComb Kind = iota + 1
	KindReverse
	KindInvert
)

var kindNames = map[Kind]string{
	KindComb:    "comb",
	KindReverse: "reverse",
	KindInvert:  "invert",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Spec is the unresolved (name, parameter) pair as it appears in config.
type Spec struct {
	Name  string
	Param float64
}

func (s Spec) String() string {
	if s.Param == 0 {
		return s.Name
	}
	return s.Name + ":" + strconv.FormatFloat(s.Param, 'g', -1, 64)
}

// Filter is a resolved, validated filter.
type Filter struct {
	Kind  Kind
	Param float64
}

func (f Filter) String() string {
	return Spec{Name: f.Kind.String(), Param: f.Param}.String()
}

// Period returns the frame period of a periodic filter at the given temporal
// scale, or 0 for filters that do not constrain the timeline length.
func (f Filter) Period(tscale float64) int {
	if f.Kind != KindComb {
		return 0
	}
	return max(2, int(math.Round(f.Param*tscale)))
}

// Resolve turns specs into filters, rejecting unknown names and out-of-range
// parameters.
func Resolve(specs []Spec) ([]Filter, error) {
	out := make([]Filter, 0, len(specs))
	for i, spec := range specs {
		name := strings.ToLower(strings.TrimSpace(spec.Name))
		var f Filter
		switch name {
		case "comb":
			if !(spec.Param > 0 && spec.Param < 1) {
				return nil, failure.Configf("filter", "filters[%d]: comb parameter must be in (0,1), got %v", i, spec.Param)
			}
			f = Filter{Kind: KindComb, Param: spec.Param}
		case "reverse":
			f = Filter{Kind: KindReverse}
		case "invert":
			f = Filter{Kind: KindInvert}
		default:
			return nil, failure.Configf("filter", "filters[%d]: unknown filter %q", i, spec.Name)
		}
		out = append(out, f)
	}
	return out, nil
}

// ParseSpec parses the textual "name" or "name:param" form.
func ParseSpec(text string) (Spec, error) {
	name, param, hasParam := strings.Cut(strings.TrimSpace(text), ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return Spec{}, failure.Configf("filter", "empty filter in %q", text)
	}
	spec := Spec{Name: name}
	if hasParam {
		value, err := strconv.ParseFloat(strings.TrimSpace(param), 64)
		if err != nil {
			return Spec{}, failure.Wrap(failure.ErrConfiguration, "filter", "parse", fmt.Sprintf("parameter for %q", name), err)
		}
		spec.Param = value
	}
	return spec, nil
}

// ParseSpecs parses a list of textual filters. A single "none" entry yields
// the empty list.
func ParseSpecs(texts []string) ([]Spec, error) {
	if len(texts) == 1 && strings.EqualFold(strings.TrimSpace(texts[0]), "none") {
		return []Spec{}, nil
	}
	specs := make([]Spec, 0, len(texts))
	for _, text := range texts {
		spec, err := ParseSpec(text)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
