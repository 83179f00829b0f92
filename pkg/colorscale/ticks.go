package colorscale

import (
	"math"
	"sort"
)

// LegendTicks generates rounded tick values (multiples of 2, 5, or 10
// times a power of ten) between the domain endpoints, aiming for
// approximately target ticks. Candidates outside the domain are
// clipped; the endpoints themselves are rendered separately by the
// caller as min/max labels and are not forced into the tick set.
func LegendTicks(domain []float64, target int) []float64 {
	if len(domain) == 0 {
		return nil
	}
	vmin, vmax := domain[0], domain[len(domain)-1]
	if target < 2 {
		target = 2
	}
	dataRange := vmax - vmin
	if dataRange <= 0 {
		return []float64{vmin}
	}

	roughStep := dataRange / float64(target-1)
	magnitude := math.Pow(10, math.Floor(math.Log10(roughStep)))

	var (
		bestStep  float64
		bestTicks []float64
	)
	for _, mult := range []float64{2, 5, 10} {
		step := mult * magnitude
		ticks := ticksForStep(vmin, vmax, step)
		n := len(ticks)
		if n < 3 || n > 7 {
			continue
		}
		switch {
		case bestTicks == nil:
			bestStep, bestTicks = step, ticks
		case abs(n-target) < abs(len(bestTicks)-target):
			bestStep, bestTicks = step, ticks
		case abs(n-target) == abs(len(bestTicks)-target) && step < bestStep:
			// Same distance from target, prefer the finer step.
			bestStep, bestTicks = step, ticks
		}
	}
	if bestTicks != nil {
		return bestTicks
	}

	// No candidate landed in the 3..7 band; fall back to the nearest
	// nice multiplier for the rough step.
	normalized := roughStep / magnitude
	mult := 10.0
	if normalized <= 2 {
		mult = 2
	} else if normalized <= 5 {
		mult = 5
	}
	return ticksForStep(vmin, vmax, mult*magnitude)
}

func ticksForStep(vmin, vmax, step float64) []float64 {
	tickMin := math.Floor(vmin/step) * step
	var ticks []float64
	for i := 0; ; i++ {
		t := tickMin + float64(i)*step
		if t > vmax+step/2 {
			break
		}
		if t >= vmin && t <= vmax {
			ticks = append(ticks, t)
		}
	}
	sort.Float64s(ticks)
	return uniqueFloats(ticks)
}

func uniqueFloats(sorted []float64) []float64 {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
