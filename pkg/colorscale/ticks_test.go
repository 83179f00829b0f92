package colorscale

import (
	"math"
	"testing"
)

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestLegendTicks_RoundedSteps(t *testing.T) {
	cases := []struct {
		name   string
		domain []float64
		target int
		want   []float64
	}{
		{
			// roughStep 25 -> candidates step 20 (6 ticks) and 50
			// (3 ticks); 6 is nearer the target of 5.
			name:   "0 to 100",
			domain: []float64{0, 100},
			target: 5,
			want:   []float64{0, 20, 40, 60, 80, 100},
		},
		{
			name:   "unit range",
			domain: []float64{0, 1},
			target: 5,
			want:   []float64{0, 0.2, 0.4, 0.6, 0.8, 1.0},
		},
		{
			name:   "small fractional range",
			domain: []float64{0, 0.04},
			target: 5,
			want:   []float64{0, 0.02, 0.04},
		},
		{
			name:   "offset range keeps ticks inside the domain",
			domain: []float64{13, 87},
			target: 5,
			want:   []float64{20, 40, 60, 80},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := LegendTicks(tc.domain, tc.target)
			if !floatsEqual(got, tc.want) {
				t.Errorf("LegendTicks(%v, %d) = %v, expected %v", tc.domain, tc.target, got, tc.want)
			}
		})
	}
}

func TestLegendTicks_DegenerateDomain(t *testing.T) {
	got := LegendTicks([]float64{5, 5}, 5)
	if !floatsEqual(got, []float64{5}) {
		t.Errorf("expected single tick [5], got %v", got)
	}
	if got := LegendTicks(nil, 5); got != nil {
		t.Errorf("expected nil for empty domain, got %v", got)
	}
}

// TestLegendTicks_Bounds checks that for a spread of realistic domains
// every tick lands inside the domain and the count stays readable.
func TestLegendTicks_Bounds(t *testing.T) {
	domains := [][]float64{
		{0.0021, 0.0098},  // daily fertility rates
		{1200, 98000},     // monthly births
		{-12.5, 14.2},     // seasonality percentage
		{0.5, 0.6},
		{-1, 1},
	}
	for _, domain := range domains {
		ticks := LegendTicks(domain, 5)
		if len(ticks) < 1 || len(ticks) > 7 {
			t.Errorf("domain %v: got %d ticks, expected 1..7: %v", domain, len(ticks), ticks)
		}
		for _, tick := range ticks {
			if tick < domain[0]-1e-9 || tick > domain[1]+1e-9 {
				t.Errorf("domain %v: tick %g outside domain", domain, tick)
			}
		}
		for i := 1; i < len(ticks); i++ {
			if ticks[i] <= ticks[i-1] {
				t.Errorf("domain %v: ticks not strictly ascending: %v", domain, ticks)
			}
		}
	}
}
