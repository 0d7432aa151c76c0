package analysis

import "math"

const noveltyRationale = "Scaled deviation of group means from overall mean (0-1)"

// buildNoveltyScores scores each column with at least two aggregated values
// by how far its group means stray from the global mean, relative to global
// spread. This is a bounded, dimensionless outlier-group indicator, not a
// statistical test.
func buildNoveltyScores(sel columnSelection, agg *aggregate) []NoveltyScore {
	scores := make([]NoveltyScore, 0, len(sel.selected))

	for pos, colIdx := range sel.selected {
		if agg.counts[pos] < 2 {
			continue
		}

		n := float64(agg.counts[pos])
		mean := agg.sums[pos] / n
		// E[X^2] - E[X]^2, clamped at 0 before the square root so
		// floating-point error cannot produce a negative variance.
		variance := agg.sumSqs[pos]/n - mean*mean
		std := math.Sqrt(math.Max(variance, 0))

		maxDelta := 0.0
		for _, sums := range agg.groupSums {
			acc := sums[pos]
			if acc.count == 0 {
				continue
			}
			groupMean := acc.sum / float64(acc.count)
			maxDelta = math.Max(maxDelta, math.Abs(groupMean-mean))
		}

		score := 0.0
		if std > 0 {
			score = math.Min(maxDelta/(3*std), 1.0)
		}

		scores = append(scores, NoveltyScore{
			Column:    sel.columnName(colIdx),
			Score:     score,
			Rationale: noveltyRationale,
		})
	}

	return scores
}
