package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

const (
	maxBiomarkerCandidates = 50
	minBiomarkerPairs      = 3

	biomarkerNotes = "Pearson correlation with target. Higher absolute correlation suggests stronger biomarker signal."
)

// pearson computes the Pearson correlation between two series, pairing by
// position up to the shorter length. The second return is false when either
// series has zero variance (or fewer than two pairs), in which case r is 0.
func pearson(x, y []float64) (float64, bool) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	if n < 2 {
		return 0, false
	}
	r := stat.Correlation(x[:n], y[:n], nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

// buildBiomarkerCandidates ranks selected columns by absolute Pearson
// correlation with the target. Zero-variance columns are excluded (the
// correlation denominator is undefined), the sort is stable so ties keep
// encounter order, and the list is truncated to the top 50.
func buildBiomarkerCandidates(targetName string, sel columnSelection, agg *aggregate) []BiomarkerCandidate {
	candidates := make([]BiomarkerCandidate, 0)
	if targetName == "" {
		return candidates
	}

	for pos, colIdx := range sel.selected {
		xs, ys := agg.markerX[pos], agg.markerY[pos]
		if len(xs) < minBiomarkerPairs || len(xs) != len(ys) {
			continue
		}
		r, ok := pearson(xs, ys)
		if !ok {
			continue
		}

		direction := "positive"
		if r < 0 {
			direction = "negative"
		}
		candidates = append(candidates, BiomarkerCandidate{
			Column:      sel.columnName(colIdx),
			Score:       math.Abs(r),
			Correlation: r,
			Direction:   direction,
			Notes:       biomarkerNotes,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > maxBiomarkerCandidates {
		candidates = candidates[:maxBiomarkerCandidates]
	}

	return candidates
}
