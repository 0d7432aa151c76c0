package analysis

import (
	"sort"

	"oxbio/internal/render"
)

// Heatmaps cover at most the first 20 selected columns.
const maxHeatmapColumns = 20

// correlationMatrix computes the pairwise Pearson correlation matrix over
// the first min(limit, selected) retained column vectors. Zero-variance
// columns correlate 0 with everything, themselves included.
func correlationMatrix(agg *aggregate, limit int) [][]float64 {
	size := len(agg.values)
	if size > limit {
		size = limit
	}
	if size == 0 {
		return nil
	}

	corr := make([][]float64, size)
	for i := range corr {
		corr[i] = make([]float64, size)
		for j := range corr[i] {
			r, _ := pearson(agg.values[i], agg.values[j])
			corr[i][j] = r
		}
	}
	return corr
}

// buildGroupSummaries prepares box-plot groups: deterministically sorted by
// label, truncated to maxGroups, five-number summary per group. Quartiles
// use plain order-statistic indexing (floor(n/4), floor(n/2), floor(3n/4)),
// not interpolated quantiles.
func buildGroupSummaries(agg *aggregate, maxGroups int) []render.GroupSummary {
	labels := make([]string, 0, len(agg.boxplotGroups))
	for label := range agg.boxplotGroups {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	if len(labels) > maxGroups {
		labels = labels[:maxGroups]
	}

	summaries := make([]render.GroupSummary, 0, len(labels))
	for _, label := range labels {
		v := append([]float64(nil), agg.boxplotGroups[label]...)
		if len(v) == 0 {
			continue
		}
		sort.Float64s(v)
		n := len(v)
		summaries = append(summaries, render.GroupSummary{
			Label:  label,
			Min:    v[0],
			Q1:     v[n/4],
			Median: v[n/2],
			Q3:     v[n*3/4],
			Max:    v[n-1],
		})
	}
	return summaries
}
