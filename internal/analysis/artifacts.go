package analysis

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"oxbio/internal/errors"
)

// Fixed artifact file names, request-scoped: repeat analyses of the same
// dataset overwrite them.
const (
	statsFileName     = "descriptive_stats.csv"
	regressionsFile   = "regressions.csv"
	noveltyFileName   = "novelty_scores.csv"
	biomarkerFileName = "biomarker_candidates.csv"
)

// writeArtifactFiles writes the four result CSVs and returns the complete
// file-artifact list for the run, image paths included.
func writeArtifactFiles(outputDir string, a *Artifacts) ([]FileArtifact, error) {
	statsPath := filepath.Join(outputDir, statsFileName)
	if err := writeStatsCSV(statsPath, a.DescriptiveStats); err != nil {
		return nil, err
	}
	regressionsPath := filepath.Join(outputDir, regressionsFile)
	if err := writeRegressionsCSV(regressionsPath, a.Regressions); err != nil {
		return nil, err
	}
	noveltyPath := filepath.Join(outputDir, noveltyFileName)
	if err := writeNoveltyCSV(noveltyPath, a.NoveltyScores); err != nil {
		return nil, err
	}
	biomarkerPath := filepath.Join(outputDir, biomarkerFileName)
	if err := writeBiomarkerCSV(biomarkerPath, a.BiomarkerCandidates); err != nil {
		return nil, err
	}

	files := []FileArtifact{
		{ID: "descriptive_stats", Name: statsFileName, Description: "Descriptive statistics per numeric column", Type: "FILE", Path: statsPath},
		{ID: "regressions", Name: regressionsFile, Description: "Linear regression results", Type: "FILE", Path: regressionsPath},
		{ID: "novelty_scores", Name: noveltyFileName, Description: "Novelty scoring based on group mean deviation", Type: "FILE", Path: noveltyPath},
		{ID: "biomarker_candidates", Name: biomarkerFileName, Description: "Ranked biomarker candidates by correlation", Type: "FILE", Path: biomarkerPath},
	}
	if a.HeatmapPath != "" {
		files = append(files, FileArtifact{ID: "heatmap", Name: filepath.Base(a.HeatmapPath), Description: "Correlation heatmap", Type: "FILE", Path: a.HeatmapPath})
	}
	if a.BoxplotPath != "" {
		files = append(files, FileArtifact{ID: "boxplot", Name: filepath.Base(a.BoxplotPath), Description: "Box plot by group", Type: "FILE", Path: a.BoxplotPath})
	}
	return files, nil
}

func writeStatsCSV(path string, stats []DescriptiveStat) error {
	rows := make([][]string, 0, len(stats)+1)
	rows = append(rows, []string{"column", "count", "mean", "std_dev", "min", "median", "max"})
	for _, s := range stats {
		rows = append(rows, []string{
			s.Column,
			strconv.Itoa(s.Count),
			formatFloat(s.Mean),
			formatFloat(s.StdDev),
			formatFloat(s.Min),
			formatFloat(s.Median),
			formatFloat(s.Max),
		})
	}
	return writeCSV(path, rows)
}

func writeRegressionsCSV(path string, regressions []RegressionResult) error {
	rows := make([][]string, 0, len(regressions)+1)
	rows = append(rows, []string{"target", "predictors", "intercept", "coefficients", "r2", "n"})
	for _, r := range regressions {
		coeffs := make([]string, len(r.Coefficients))
		for i, c := range r.Coefficients {
			coeffs[i] = formatFloat(c)
		}
		rows = append(rows, []string{
			r.Target,
			strings.Join(r.Predictors, ";"),
			formatFloat(r.Intercept),
			strings.Join(coeffs, ";"),
			formatFloat(r.R2),
			strconv.Itoa(r.N),
		})
	}
	return writeCSV(path, rows)
}

func writeNoveltyCSV(path string, scores []NoveltyScore) error {
	rows := make([][]string, 0, len(scores)+1)
	rows = append(rows, []string{"column", "score", "rationale"})
	for _, s := range scores {
		rows = append(rows, []string{s.Column, formatFloat(s.Score), s.Rationale})
	}
	return writeCSV(path, rows)
}

func writeBiomarkerCSV(path string, candidates []BiomarkerCandidate) error {
	rows := make([][]string, 0, len(candidates)+1)
	rows = append(rows, []string{"column", "score", "correlation", "direction", "notes"})
	for _, b := range candidates {
		rows = append(rows, []string{b.Column, formatFloat(b.Score), formatFloat(b.Correlation), b.Direction, b.Notes})
	}
	return writeCSV(path, rows)
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.ArtifactWrite(path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return errors.ArtifactWrite(path, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.ArtifactWrite(path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
