// Package export produces static artifacts from datasets: raster PNG
// heatmaps and interactive go-echarts HTML charts.
package export

// YearsPerRow calculates how many years each raster row should hold,
// preferring multiples of 5 (spans up to 30 years) or 10 (larger
// spans) for cleaner displays. The last row keeps at least
// minYearsPerRow years.
func YearsPerRow(totalYears, numRows, minYearsPerRow int) int {
	if numRows <= 0 {
		numRows = 1
	}
	if minYearsPerRow <= 0 {
		minYearsPerRow = 1
	}
	if totalYears <= 0 {
		return minYearsPerRow
	}

	ideal := (totalYears + numRows - 1) / numRows
	perRow := ideal
	if perRow < minYearsPerRow {
		perRow = minYearsPerRow
	}

	multiple := 5
	if totalYears > 30 {
		multiple = 10
	}
	roundedDown := (perRow / multiple) * multiple
	roundedUp := roundedDown + multiple

	lastRowOK := func(ypr int) bool {
		if ypr >= totalYears {
			return true
		}
		remaining := totalYears % ypr
		if remaining > 0 {
			return remaining >= minYearsPerRow
		}
		return ypr >= minYearsPerRow
	}

	// Prefer the larger multiple for cleaner splits.
	if roundedUp >= minYearsPerRow && lastRowOK(roundedUp) {
		return roundedUp
	}
	if roundedDown >= minYearsPerRow && lastRowOK(roundedDown) {
		return roundedDown
	}
	return perRow
}

// SplitYears splits a sorted year list into chunks of at most perRow
// years for multi-row display.
func SplitYears(years []int, perRow int) [][]int {
	if perRow <= 0 || len(years) <= perRow {
		return [][]int{years}
	}
	var chunks [][]int
	for start := 0; start < len(years); start += perRow {
		end := start + perRow
		if end > len(years) {
			end = len(years)
		}
		chunks = append(chunks, years[start:end])
	}
	return chunks
}
