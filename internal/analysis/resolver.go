package analysis

import "fmt"

// covariate is a resolved covariate column
type covariate struct {
	index int
	name  string
}

// columnSelection holds the resolved column positions for one run. Selection
// order is header order, so identical inputs always produce identical output
// ordering downstream.
type columnSelection struct {
	headers    []string
	selected   []int // header positions chosen for analysis
	target     int   // -1 when unresolved
	group      int   // -1 when unresolved
	boxplot    int   // -1 when unresolved
	covariates []covariate
}

// resolveColumns maps configured column names to header positions. Unresolved
// names are skipped silently: features depending on them simply do not run.
func resolveColumns(headers []string, cfg Config) columnSelection {
	sel := columnSelection{
		headers: headers,
		target:  indexOf(headers, cfg.TargetColumn),
		group:   indexOf(headers, cfg.GroupColumn),
		boxplot: indexOf(headers, cfg.BoxplotColumn),
	}

	for _, name := range cfg.Covariates {
		if idx := indexOf(headers, name); idx >= 0 {
			sel.covariates = append(sel.covariates, covariate{index: idx, name: name})
		}
	}

	// All columns except the group column, capped at MaxColumns.
	for idx := range headers {
		if idx == sel.group {
			continue
		}
		if len(sel.selected) >= cfg.MaxColumns {
			break
		}
		sel.selected = append(sel.selected, idx)
	}

	// An empty filter result falls back to every column.
	if len(sel.selected) == 0 {
		sel.selected = make([]int, len(headers))
		for idx := range headers {
			sel.selected[idx] = idx
		}
	}

	return sel
}

// columnName returns the header name at idx, synthesizing one when absent
func (s columnSelection) columnName(idx int) string {
	if idx >= 0 && idx < len(s.headers) && s.headers[idx] != "" {
		return s.headers[idx]
	}
	return fmt.Sprintf("column_%d", idx+1)
}

// selectedNames returns the names of the selected columns in analysis order
func (s columnSelection) selectedNames() []string {
	names := make([]string, len(s.selected))
	for pos, idx := range s.selected {
		names[pos] = s.columnName(idx)
	}
	return names
}

func indexOf(headers []string, name string) int {
	if name == "" {
		return -1
	}
	for idx, h := range headers {
		if h == name {
			return idx
		}
	}
	return -1
}
