package analysis

import (
	"github.com/montanaflynn/stats"
)

// buildDescriptiveStats summarizes every selected column with at least one
// retained value. Output order follows the selected-column order.
func buildDescriptiveStats(sel columnSelection, agg *aggregate) []DescriptiveStat {
	out := make([]DescriptiveStat, 0, len(sel.selected))

	for pos, colIdx := range sel.selected {
		col := agg.values[pos]
		if len(col) == 0 {
			continue
		}

		mean, _ := stats.Mean(col)
		median, _ := stats.Median(col)

		// Sample standard deviation (Bessel's correction); defined as 0
		// when n < 2 rather than NaN.
		stdDev := 0.0
		if len(col) >= 2 {
			stdDev, _ = stats.StandardDeviationSample(col)
		}

		out = append(out, DescriptiveStat{
			Column: sel.columnName(colIdx),
			Count:  len(col),
			Mean:   mean,
			StdDev: stdDev,
			Min:    agg.mins[pos],
			Median: median,
			Max:    agg.maxs[pos],
		})
	}

	return out
}
