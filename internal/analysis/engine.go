package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"oxbio/domain/dataset"
	"oxbio/internal"
	"oxbio/internal/errors"
	"oxbio/internal/render"
)

// Engine runs the full analysis pipeline for one dataset: a single pass over
// the rows, in-memory post-processing, then artifact files. It holds no
// mutable state of its own, so one Engine can serve concurrent runs as long
// as each run gets its own output directory.
type Engine struct {
	log *internal.Logger
}

// NewEngine creates a new analysis engine
func NewEngine() *Engine {
	return &Engine{log: internal.NewLogger("AnalysisEngine")}
}

// Run executes the whole pipeline and writes artifact files under outputDir.
// Structural failures (unreadable dataset, unwritable artifacts) return an
// error; degraded statistical conditions never do. Every sub-computation
// falls back to skip/zero so imperfect input still yields partial results.
func (e *Engine) Run(record *dataset.Record, cfg Config, outputDir string) (*Artifacts, error) {
	cfg = cfg.WithDefaults()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, errors.ArtifactWrite(outputDir, err)
	}

	sel, agg, err := e.aggregateDataset(record, cfg)
	if err != nil {
		return nil, err
	}

	targetName := ""
	if sel.target >= 0 {
		targetName = cfg.TargetColumn
	}
	haveCovariates := len(sel.covariates) > 0

	artifacts := &Artifacts{
		DescriptiveStats:    buildDescriptiveStats(sel, agg),
		NoveltyScores:       buildNoveltyScores(sel, agg),
		BiomarkerCandidates: buildBiomarkerCandidates(targetName, sel, agg),
	}
	if haveCovariates {
		artifacts.Regressions = buildMultivariateRegression(targetName, sel, agg)
	} else {
		artifacts.Regressions = buildUnivariateRegressions(targetName, sel, agg)
	}

	artifacts.Summary = fmt.Sprintf(
		"Computed descriptive statistics for %d columns. Generated %d regression model(s). "+
			"Novelty scores computed for %d columns. Biomarker candidates ranked for %d columns.",
		len(artifacts.DescriptiveStats), len(artifacts.Regressions),
		len(artifacts.NoveltyScores), len(artifacts.BiomarkerCandidates))

	if len(sel.selected) > 0 {
		heatmapPath := filepath.Join(outputDir, "heatmap.png")
		corr := correlationMatrix(agg, maxHeatmapColumns)
		labels := sel.selectedNames()
		if len(labels) > len(corr) {
			labels = labels[:len(corr)]
		}
		if err := render.Heatmap(heatmapPath, corr, labels); err != nil {
			return nil, errors.ArtifactWrite(heatmapPath, err)
		}
		artifacts.HeatmapPath = heatmapPath
	}

	if groups := buildGroupSummaries(agg, cfg.MaxGroups); len(groups) > 0 {
		boxplotPath := filepath.Join(outputDir, "boxplot.png")
		if err := render.BoxPlot(boxplotPath, groups); err != nil {
			return nil, errors.ArtifactWrite(boxplotPath, err)
		}
		artifacts.BoxplotPath = boxplotPath
	}

	files, err := writeArtifactFiles(outputDir, artifacts)
	if err != nil {
		return nil, err
	}
	artifacts.Files = files

	e.log.Info("dataset %s analyzed: %s", record.ID, artifacts.Summary)
	return artifacts, nil
}

// aggregateDataset opens the dataset file and folds every data row into one
// aggregate. This is the only pass over the rows.
func (e *Engine) aggregateDataset(record *dataset.Record, cfg Config) (columnSelection, *aggregate, error) {
	file, err := os.Open(record.LocalPath)
	if err != nil {
		return columnSelection{}, nil, errors.DatasetUnreadable(record.LocalPath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ','
	if record.Delimiter != 0 {
		reader.Comma = rune(record.Delimiter)
	}
	reader.FieldsPerRecord = -1

	headers := record.Columns
	if record.HasHeader {
		headerRow, err := reader.Read()
		if err != nil && err != io.EOF {
			return columnSelection{}, nil, errors.DatasetUnreadable(record.LocalPath, err)
		}
		if len(headers) == 0 {
			headers = headerRow
		}
	}

	sel := resolveColumns(headers, cfg)
	agg := newAggregate(len(sel.selected))
	haveCovariates := len(sel.covariates) > 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return columnSelection{}, nil, errors.DatasetUnreadable(record.LocalPath, err)
		}
		agg.consume(row, sel, haveCovariates)
	}

	return sel, agg, nil
}
