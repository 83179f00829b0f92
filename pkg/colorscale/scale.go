// Package colorscale builds value-to-color mappings, legend tick
// values, and metric-aware value formatting for heatmap grids.
package colorscale

import (
	"fmt"
	"image/color"

	"github.com/user/heatgrid/pkg/timegrid"
)

// DomainEpsilon is the minimum width of a working color domain.
// Degenerate (zero-width) domains are widened by this much so scale
// construction never divides by zero.
const DomainEpsilon = 1e-6

// sequential palette stops (viridis).
var sequentialStops = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// diverging palette stops (blue-white-red).
var divergingStops = []string{
	"#2166ac", "#4393c3", "#92c5de", "#d1e5f0", "#f7f7f7",
	"#fddbc7", "#f4a582", "#d6604d", "#b2182b",
}

// Scale maps values to colors by piecewise-linear interpolation across
// the domain stops. Values outside the domain are clamped to the
// nearest endpoint color.
type Scale struct {
	domain []float64
	stops  []color.RGBA
}

// New builds a scale from a spec. The domain must have at least two
// ascending stops; a degenerate domain (min == max) yields a valid
// scale that returns the low endpoint color for every value.
func New(spec timegrid.ScaleSpec) (*Scale, error) {
	if len(spec.Domain) < 2 {
		return nil, fmt.Errorf("color scale domain needs at least 2 stops, got %d", len(spec.Domain))
	}
	for i := 1; i < len(spec.Domain); i++ {
		if spec.Domain[i] < spec.Domain[i-1] {
			return nil, fmt.Errorf("color scale domain not ascending at index %d", i)
		}
	}

	names := sequentialStops
	if spec.Family == timegrid.FamilyDiverging {
		names = divergingStops
	}
	stops := make([]color.RGBA, len(names))
	for i, hex := range names {
		c, err := parseHex(hex)
		if err != nil {
			return nil, err
		}
		stops[i] = c
	}

	domain := make([]float64, len(spec.Domain))
	copy(domain, spec.Domain)
	return &Scale{domain: domain, stops: stops}, nil
}

// Color returns the mapped color for v, clamping out-of-domain values
// to the endpoint colors.
func (s *Scale) Color(v float64) color.RGBA {
	return s.sample(s.position(v))
}

// Hex returns the mapped color as a #rrggbb string.
func (s *Scale) Hex(v float64) string {
	c := s.Color(v)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Domain returns the scale's domain stops.
func (s *Scale) Domain() []float64 {
	return s.domain
}

// position maps v to [0, 1] across the domain stops. Multi-stop
// domains map to equally spaced positions, so a diverging three-stop
// domain pins its midpoint to the palette center.
func (s *Scale) position(v float64) float64 {
	last := len(s.domain) - 1
	if v <= s.domain[0] {
		return 0
	}
	if v >= s.domain[last] {
		return 1
	}
	for i := 0; i < last; i++ {
		lo, hi := s.domain[i], s.domain[i+1]
		if v > hi {
			continue
		}
		frac := 0.0
		if hi > lo {
			frac = (v - lo) / (hi - lo)
		}
		return (float64(i) + frac) / float64(last)
	}
	return 1
}

// sample interpolates the palette stops at t in [0, 1].
func (s *Scale) sample(t float64) color.RGBA {
	if t <= 0 {
		return s.stops[0]
	}
	if t >= 1 {
		return s.stops[len(s.stops)-1]
	}
	scaled := t * float64(len(s.stops)-1)
	i := int(scaled)
	frac := scaled - float64(i)
	a, b := s.stops[i], s.stops[i+1]
	return color.RGBA{
		R: lerpByte(a.R, b.R, frac),
		G: lerpByte(a.G, b.G, frac),
		B: lerpByte(a.B, b.B, frac),
		A: 255,
	}
}

// PaletteHex returns the palette stop colors for a family, for
// renderers that interpolate on their own (e.g. an echarts visual map).
func PaletteHex(family timegrid.Family) []string {
	if family == timegrid.FamilyDiverging {
		return append([]string(nil), divergingStops...)
	}
	return append([]string(nil), sequentialStops...)
}

// WorkingDomain returns [min, max] widened to at least DomainEpsilon.
// The working domain for a dataset's own scale is always the exact
// min/max of its non-null values, never a percentile-trimmed range.
func WorkingDomain(min, max float64) []float64 {
	if max-min < DomainEpsilon {
		max = min + DomainEpsilon
	}
	return []float64{min, max}
}

// SpecFor derives the dataset's own scale spec from its non-null
// values. A dataset with no values gets a [0, epsilon] domain so the
// scale still constructs.
func SpecFor(d *timegrid.Dataset, family timegrid.Family) timegrid.ScaleSpec {
	min, max, ok := d.ValueDomain()
	if !ok {
		min, max = 0, 0
	}
	return timegrid.ScaleSpec{
		Domain: WorkingDomain(min, max),
		Family: family,
		Metric: d.MetricID,
	}
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

func parseHex(hex string) (color.RGBA, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", hex)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
