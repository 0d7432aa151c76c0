package analysis

import (
	"math"
	"strconv"
	"strings"
)

// groupAccum is a running (sum, count) for one (group, column) pair
type groupAccum struct {
	sum   float64
	count int
}

// aggregate accumulates everything the downstream builders need in exactly
// one pass over the data rows. Retained per-column value vectors make this
// O(rows x selected columns) in memory, not constant-memory streaming:
// median and pairwise correlation are not computable from the running sums.
type aggregate struct {
	// Per selected column, indexed by selection position.
	values [][]float64
	mins   []float64
	maxs   []float64
	sums   []float64
	sumSqs []float64
	counts []int

	// Per (group label, column) running sums, present when a group column
	// is configured.
	groupSums map[string][]groupAccum

	// (value, target) pairs per column for biomarker ranking.
	markerX [][]float64
	markerY [][]float64

	// (value, target) pairs per column for the univariate regression
	// fallback. Populated only when no covariates are configured.
	uniX [][]float64
	uniY [][]float64

	// Row-wise complete covariate rows with their targets. A row enters
	// only when every configured covariate parses; partial rows are
	// dropped here while the pair datasets above are unaffected.
	covariateRows    [][]float64
	covariateTargets []float64

	// Raw values per group label for the box plot column.
	boxplotGroups map[string][]float64
}

func newAggregate(columns int) *aggregate {
	agg := &aggregate{
		values:        make([][]float64, columns),
		mins:          make([]float64, columns),
		maxs:          make([]float64, columns),
		sums:          make([]float64, columns),
		sumSqs:        make([]float64, columns),
		counts:        make([]int, columns),
		markerX:       make([][]float64, columns),
		markerY:       make([][]float64, columns),
		uniX:          make([][]float64, columns),
		uniY:          make([][]float64, columns),
		groupSums:     make(map[string][]groupAccum),
		boxplotGroups: make(map[string][]float64),
	}
	for pos := range agg.mins {
		agg.mins[pos] = math.Inf(1)
		agg.maxs[pos] = math.Inf(-1)
	}
	return agg
}

// consume folds one data row into the aggregate. Columns are independent: an
// unparseable cell only excludes that cell, never the whole row.
func (a *aggregate) consume(row []string, sel columnSelection, haveCovariates bool) {
	groupLabel, hasGroup := cellAt(row, sel.group)

	for pos, colIdx := range sel.selected {
		cell, ok := cellAt(row, colIdx)
		if !ok {
			continue
		}
		parsed, ok := parseCell(cell)
		if !ok {
			continue
		}

		a.values[pos] = append(a.values[pos], parsed)
		a.mins[pos] = math.Min(a.mins[pos], parsed)
		a.maxs[pos] = math.Max(a.maxs[pos], parsed)
		a.sums[pos] += parsed
		a.sumSqs[pos] += parsed * parsed
		a.counts[pos]++

		if hasGroup {
			entry, exists := a.groupSums[groupLabel]
			if !exists {
				entry = make([]groupAccum, len(sel.selected))
			}
			entry[pos].sum += parsed
			entry[pos].count++
			a.groupSums[groupLabel] = entry
		}
	}

	if sel.target >= 0 {
		if targetCell, ok := cellAt(row, sel.target); ok {
			if targetVal, ok := parseCell(targetCell); ok {
				a.consumeTargetRow(row, sel, targetVal, haveCovariates)
			}
		}
	}

	if hasGroup && sel.boxplot >= 0 {
		if cell, ok := cellAt(row, sel.boxplot); ok {
			if parsed, ok := parseCell(cell); ok {
				a.boxplotGroups[groupLabel] = append(a.boxplotGroups[groupLabel], parsed)
			}
		}
	}
}

func (a *aggregate) consumeTargetRow(row []string, sel columnSelection, targetVal float64, haveCovariates bool) {
	for pos, colIdx := range sel.selected {
		if colIdx == sel.target {
			continue
		}
		cell, ok := cellAt(row, colIdx)
		if !ok {
			continue
		}
		parsed, ok := parseCell(cell)
		if !ok {
			continue
		}
		a.markerX[pos] = append(a.markerX[pos], parsed)
		a.markerY[pos] = append(a.markerY[pos], targetVal)
		if !haveCovariates {
			a.uniX[pos] = append(a.uniX[pos], parsed)
			a.uniY[pos] = append(a.uniY[pos], targetVal)
		}
	}

	if !haveCovariates {
		return
	}

	covRow := make([]float64, 0, len(sel.covariates))
	for _, cov := range sel.covariates {
		cell, ok := cellAt(row, cov.index)
		if !ok {
			return
		}
		parsed, ok := parseCell(cell)
		if !ok {
			return
		}
		covRow = append(covRow, parsed)
	}
	a.covariateRows = append(a.covariateRows, covRow)
	a.covariateTargets = append(a.covariateTargets, targetVal)
}

func cellAt(row []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(row) {
		return "", false
	}
	return row[idx], true
}

func parseCell(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
