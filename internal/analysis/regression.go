package analysis

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// olsFit is the outcome of one ordinary least squares fit
type olsFit struct {
	intercept    float64
	coefficients []float64
	r2           float64
}

// fitOLS solves beta = (X^T X)^-1 X^T y via the normal equations. The first
// design-matrix column must be the intercept column of ones. Returns false
// when X^T X is singular; callers skip that model silently.
func fitOLS(x *mat.Dense, y *mat.VecDense) (olsFit, bool) {
	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return olsFit{}, false
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	var beta mat.VecDense
	beta.MulVec(&inv, &xty)

	var yHat mat.VecDense
	yHat.MulVec(x, &beta)

	n := y.Len()
	meanY := stat.Mean(y.RawVector().Data, nil)
	ssTot, ssRes := 0.0, 0.0
	for i := 0; i < n; i++ {
		dTot := y.AtVec(i) - meanY
		dRes := y.AtVec(i) - yHat.AtVec(i)
		ssTot += dTot * dTot
		ssRes += dRes * dRes
	}

	// R^2 is 0 by definition when the target is constant.
	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	coeffs := make([]float64, beta.Len()-1)
	for i := range coeffs {
		coeffs[i] = beta.AtVec(i + 1)
	}

	return olsFit{
		intercept:    beta.AtVec(0),
		coefficients: coeffs,
		r2:           r2,
	}, true
}

// buildMultivariateRegression fits one model of the target against the
// configured covariates, using only row-wise complete covariate rows.
func buildMultivariateRegression(targetName string, sel columnSelection, agg *aggregate) []RegressionResult {
	results := make([]RegressionResult, 0, 1)
	if targetName == "" || len(sel.covariates) == 0 {
		return results
	}
	n := len(agg.covariateRows)
	if n == 0 || n != len(agg.covariateTargets) {
		return results
	}

	p := len(sel.covariates)
	x := mat.NewDense(n, p+1, nil)
	for i, row := range agg.covariateRows {
		x.Set(i, 0, 1)
		for j, v := range row {
			x.Set(i, j+1, v)
		}
	}
	y := mat.NewVecDense(n, append([]float64(nil), agg.covariateTargets...))

	fit, ok := fitOLS(x, y)
	if !ok {
		return results
	}

	predictors := make([]string, p)
	for i, cov := range sel.covariates {
		predictors[i] = cov.name
	}

	return append(results, RegressionResult{
		Target:       targetName,
		Predictors:   predictors,
		Intercept:    fit.intercept,
		Coefficients: fit.coefficients,
		R2:           fit.r2,
		N:            n,
	})
}

// buildUnivariateRegressions fits one model per selected column against the
// target when no covariates are configured. Columns with fewer than two
// paired observations are skipped.
func buildUnivariateRegressions(targetName string, sel columnSelection, agg *aggregate) []RegressionResult {
	results := make([]RegressionResult, 0)
	if targetName == "" {
		return results
	}

	for pos, colIdx := range sel.selected {
		xs, ys := agg.uniX[pos], agg.uniY[pos]
		if len(xs) < 2 || len(xs) != len(ys) {
			continue
		}

		n := len(xs)
		x := mat.NewDense(n, 2, nil)
		for i, v := range xs {
			x.Set(i, 0, 1)
			x.Set(i, 1, v)
		}
		y := mat.NewVecDense(n, append([]float64(nil), ys...))

		fit, ok := fitOLS(x, y)
		if !ok {
			continue
		}

		results = append(results, RegressionResult{
			Target:       targetName,
			Predictors:   []string{sel.columnName(colIdx)},
			Intercept:    fit.intercept,
			Coefficients: fit.coefficients,
			R2:           fit.r2,
			N:            n,
		})
	}

	return results
}
