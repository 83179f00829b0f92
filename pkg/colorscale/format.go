package colorscale

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/user/heatgrid/pkg/timegrid"
)

// MissingPlaceholder is shown for cells with no data.
const MissingPlaceholder = "—" // em dash

// Metric identifiers exported by the data pipeline.
const (
	MetricBirths                 = "births"
	MetricDailyFertilityRate     = "daily_fertility_rate"
	MetricSeasonalityPercentage  = "seasonality_percentage"
	MetricSeasonalityPctAnnual   = "seasonality_percentage_annual"
	MetricSeasonalityPctAdjusted = "seasonality_percentage_normalized"
)

// DefaultFamily returns the palette family conventionally used for a
// metric: diverging for signed seasonality deviations, sequential
// otherwise.
func DefaultFamily(metric string) timegrid.Family {
	switch metric {
	case MetricSeasonalityPercentage, MetricSeasonalityPctAnnual, MetricSeasonalityPctAdjusted:
		return timegrid.FamilyDiverging
	default:
		return timegrid.FamilySequential
	}
}

// FormatValue renders a cell value for display. Nil values become an
// em dash. Counts use thousands separators, rates use fixed decimals,
// and seasonality percentages carry an explicit sign.
func FormatValue(v *float64, metric string) string {
	if v == nil {
		return MissingPlaceholder
	}
	switch metric {
	case MetricBirths:
		return groupThousands(int64(math.Round(*v)))
	case MetricDailyFertilityRate:
		return strconv.FormatFloat(*v, 'f', 4, 64)
	case MetricSeasonalityPercentage, MetricSeasonalityPctAnnual, MetricSeasonalityPctAdjusted:
		return fmt.Sprintf("%+.1f%%", *v)
	default:
		return strconv.FormatFloat(*v, 'f', 2, 64)
	}
}

// groupThousands inserts comma separators into an integer.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
