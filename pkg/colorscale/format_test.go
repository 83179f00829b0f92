package colorscale

import (
	"testing"

	"github.com/user/heatgrid/pkg/timegrid"
)

func f(v float64) *float64 { return &v }

func TestFormatValue(t *testing.T) {
	cases := []struct {
		name   string
		value  *float64
		metric string
		want   string
	}{
		{"nil renders em dash", nil, MetricBirths, "—"},
		{"births group thousands", f(1234567), MetricBirths, "1,234,567"},
		{"births round to integer", f(12345.6), MetricBirths, "12,346"},
		{"births below a thousand", f(999), MetricBirths, "999"},
		{"negative births", f(-12345), MetricBirths, "-12,345"},
		{"rate uses four decimals", f(0.00123456), MetricDailyFertilityRate, "0.0012"},
		{"rate pads decimals", f(1.5), MetricDailyFertilityRate, "1.5000"},
		{"seasonality positive sign", f(3.14), MetricSeasonalityPercentage, "+3.1%"},
		{"seasonality negative sign", f(-2.5), MetricSeasonalityPctAnnual, "-2.5%"},
		{"seasonality zero keeps sign", f(0), MetricSeasonalityPctAdjusted, "+0.0%"},
		{"unknown metric uses two decimals", f(2.5), "something_else", "2.50"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatValue(tc.value, tc.metric); got != tc.want {
				t.Errorf("FormatValue(%v, %q) = %q, expected %q", tc.value, tc.metric, got, tc.want)
			}
		})
	}
}

func TestDefaultFamily(t *testing.T) {
	for _, metric := range []string{MetricSeasonalityPercentage, MetricSeasonalityPctAnnual, MetricSeasonalityPctAdjusted} {
		if got := DefaultFamily(metric); got != timegrid.FamilyDiverging {
			t.Errorf("DefaultFamily(%q) = %q, expected diverging", metric, got)
		}
	}
	for _, metric := range []string{MetricBirths, MetricDailyFertilityRate, "anything"} {
		if got := DefaultFamily(metric); got != timegrid.FamilySequential {
			t.Errorf("DefaultFamily(%q) = %q, expected sequential", metric, got)
		}
	}
}
