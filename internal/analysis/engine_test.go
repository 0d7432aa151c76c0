package analysis

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"oxbio/domain/dataset"
	"oxbio/internal/errors"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testRecord(path string, columns []string, hasHeader bool) *dataset.Record {
	return &dataset.Record{
		ID:        "ds-test",
		Filename:  "data.csv",
		LocalPath: path,
		Delimiter: ',',
		HasHeader: hasHeader,
		Columns:   columns,
		RowCount:  4,
		CreatedAt: time.Now(),
	}
}

const sampleCSV = `age,marker_up,marker_down,flat,cell_type
10,1,9,5,T
20,2,7,5,T
30,3,5,5,B
40,4,3,5,B
`

var sampleColumns = []string{"age", "marker_up", "marker_down", "flat", "cell_type"}

func TestEngineFullRun(t *testing.T) {
	path := writeTempCSV(t, sampleCSV)
	record := testRecord(path, sampleColumns, true)
	outputDir := t.TempDir()

	artifacts, err := NewEngine().Run(record, Config{
		TargetColumn:  "age",
		GroupColumn:   "cell_type",
		BoxplotColumn: "marker_up",
	}, outputDir)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// Group column is excluded; the four numeric columns remain.
	if len(artifacts.DescriptiveStats) != 4 {
		t.Errorf("descriptive stats = %d columns, want 4", len(artifacts.DescriptiveStats))
	}

	// Univariate models for marker_up and marker_down; flat is a singular
	// fit and the target never regresses on itself.
	if len(artifacts.Regressions) != 2 {
		t.Errorf("regressions = %d, want 2", len(artifacts.Regressions))
	}
	for _, r := range artifacts.Regressions {
		if r.Target != "age" {
			t.Errorf("regression target = %q, want age", r.Target)
		}
	}

	// flat has zero variance and is excluded from candidates.
	if len(artifacts.BiomarkerCandidates) != 2 {
		t.Errorf("biomarker candidates = %d, want 2", len(artifacts.BiomarkerCandidates))
	}
	for _, b := range artifacts.BiomarkerCandidates {
		if b.Column == "flat" {
			t.Error("zero-variance column ranked as a biomarker candidate")
		}
	}

	if len(artifacts.NoveltyScores) != 4 {
		t.Errorf("novelty scores = %d, want 4", len(artifacts.NoveltyScores))
	}
	for _, n := range artifacts.NoveltyScores {
		if n.Column == "flat" && n.Score != 0 {
			t.Errorf("flat novelty = %v, want 0", n.Score)
		}
	}

	if artifacts.Summary == "" {
		t.Error("summary must not be empty")
	}

	for _, name := range []string{
		"descriptive_stats.csv", "regressions.csv", "novelty_scores.csv",
		"biomarker_candidates.csv", "heatmap.png", "boxplot.png",
	} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Errorf("artifact %s missing: %v", name, err)
		}
	}
	if len(artifacts.Files) != 6 {
		t.Errorf("file artifacts = %d, want 6", len(artifacts.Files))
	}
}

func TestEngineDeterministic(t *testing.T) {
	path := writeTempCSV(t, sampleCSV)
	record := testRecord(path, sampleColumns, true)
	cfg := Config{TargetColumn: "age", GroupColumn: "cell_type", BoxplotColumn: "marker_up"}

	dirA, dirB := t.TempDir(), t.TempDir()
	engine := NewEngine()
	a, err := engine.Run(record, cfg, dirA)
	if err != nil {
		t.Fatal(err)
	}
	b, err := engine.Run(record, cfg, dirB)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(a.DescriptiveStats, b.DescriptiveStats) {
		t.Error("descriptive stats differ between identical runs")
	}
	if !reflect.DeepEqual(a.Regressions, b.Regressions) {
		t.Error("regressions differ between identical runs")
	}
	if !reflect.DeepEqual(a.NoveltyScores, b.NoveltyScores) {
		t.Error("novelty scores differ between identical runs")
	}
	if !reflect.DeepEqual(a.BiomarkerCandidates, b.BiomarkerCandidates) {
		t.Error("biomarker candidates differ between identical runs")
	}

	for _, name := range []string{
		"descriptive_stats.csv", "regressions.csv", "novelty_scores.csv",
		"biomarker_candidates.csv", "heatmap.png", "boxplot.png",
	} {
		bytesA, err := os.ReadFile(filepath.Join(dirA, name))
		if err != nil {
			t.Fatal(err)
		}
		bytesB, err := os.ReadFile(filepath.Join(dirB, name))
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(bytesA, bytesB) {
			t.Errorf("artifact %s differs between identical runs", name)
		}
	}
}

func TestEngineFourRowStudy(t *testing.T) {
	csv := "marker_1,age,cell_type\n1,10,A\n2,20,A\n3,30,B\n4,40,B\n"
	path := writeTempCSV(t, csv)
	record := testRecord(path, []string{"marker_1", "age", "cell_type"}, true)

	artifacts, err := NewEngine().Run(record, Config{
		TargetColumn: "age",
		GroupColumn:  "cell_type",
	}, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	var marker *DescriptiveStat
	for i := range artifacts.DescriptiveStats {
		if artifacts.DescriptiveStats[i].Column == "marker_1" {
			marker = &artifacts.DescriptiveStats[i]
		}
	}
	if marker == nil {
		t.Fatal("no descriptive stat for marker_1")
	}
	if marker.Mean != 2.5 || marker.Median != 2.5 || marker.Min != 1 || marker.Max != 4 {
		t.Errorf("marker_1 stats = %+v, want mean 2.5, median 2.5, min 1, max 4", marker)
	}

	if len(artifacts.Regressions) != 1 {
		t.Fatalf("regressions = %d, want 1", len(artifacts.Regressions))
	}
	r := artifacts.Regressions[0]
	if r.Predictors[0] != "marker_1" {
		t.Errorf("predictor = %q, want marker_1", r.Predictors[0])
	}
	if math.Abs(r.Intercept) > 1e-9 || math.Abs(r.Coefficients[0]-10) > 1e-9 || math.Abs(r.R2-1) > 1e-9 {
		t.Errorf("fit = {intercept %v, slope %v, r2 %v}, want {0, 10, 1}", r.Intercept, r.Coefficients[0], r.R2)
	}

	if len(artifacts.BiomarkerCandidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(artifacts.BiomarkerCandidates))
	}
	b := artifacts.BiomarkerCandidates[0]
	if b.Column != "marker_1" || b.Direction != "positive" || math.Abs(b.Correlation-1) > 1e-9 {
		t.Errorf("candidate = %+v, want marker_1 with correlation 1, positive", b)
	}
}

func TestEngineMaxColumnsOne(t *testing.T) {
	csv := "c1,c2,c3,c4,c5,grp\n1,2,3,4,5,A\n6,7,8,9,10,B\n"
	path := writeTempCSV(t, csv)
	record := testRecord(path, []string{"c1", "c2", "c3", "c4", "c5", "grp"}, true)

	artifacts, err := NewEngine().Run(record, Config{
		GroupColumn: "grp",
		MaxColumns:  1,
	}, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if len(artifacts.DescriptiveStats) != 1 {
		t.Fatalf("descriptive stats = %d, want exactly 1", len(artifacts.DescriptiveStats))
	}
	if artifacts.DescriptiveStats[0].Column != "c1" {
		t.Errorf("column = %q, want the first encountered column c1", artifacts.DescriptiveStats[0].Column)
	}
}

func TestEngineUnknownConfiguredColumns(t *testing.T) {
	path := writeTempCSV(t, sampleCSV)
	record := testRecord(path, sampleColumns, true)

	artifacts, err := NewEngine().Run(record, Config{
		TargetColumn:  "nonexistent",
		GroupColumn:   "also_missing",
		BoxplotColumn: "nope",
	}, t.TempDir())
	if err != nil {
		t.Fatalf("unknown column names must degrade, not fail: %v", err)
	}

	if len(artifacts.Regressions) != 0 {
		t.Errorf("regressions = %d, want 0 without a resolved target", len(artifacts.Regressions))
	}
	if len(artifacts.BiomarkerCandidates) != 0 {
		t.Errorf("candidates = %d, want 0 without a resolved target", len(artifacts.BiomarkerCandidates))
	}
	if len(artifacts.DescriptiveStats) == 0 {
		t.Error("descriptive stats must still be produced")
	}
	if artifacts.BoxplotPath != "" {
		t.Error("no box plot expected without a resolved group column")
	}
}

func TestEngineHeaderlessDataset(t *testing.T) {
	path := writeTempCSV(t, "10,1\n20,2\n30,3\n")
	record := testRecord(path, []string{"column_1", "column_2"}, false)

	artifacts, err := NewEngine().Run(record, Config{TargetColumn: "column_1"}, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if len(artifacts.DescriptiveStats) != 2 {
		t.Fatalf("descriptive stats = %d, want 2", len(artifacts.DescriptiveStats))
	}
	if artifacts.DescriptiveStats[0].Column != "column_1" {
		t.Errorf("column name = %q, want column_1", artifacts.DescriptiveStats[0].Column)
	}
	// First physical row is data, not a header.
	if artifacts.DescriptiveStats[0].Count != 3 {
		t.Errorf("count = %d, want 3", artifacts.DescriptiveStats[0].Count)
	}
	if len(artifacts.Regressions) != 1 {
		t.Errorf("regressions = %d, want 1", len(artifacts.Regressions))
	}
}

func TestEngineMissingFileIsStructural(t *testing.T) {
	record := testRecord(filepath.Join(t.TempDir(), "absent.csv"), sampleColumns, true)

	_, err := NewEngine().Run(record, Config{}, t.TempDir())
	if err == nil {
		t.Fatal("missing dataset file must be a hard error")
	}
	if code := errors.GetCode(err); code != errors.CodeDatasetUnreadable {
		t.Errorf("error code = %q, want %q", code, errors.CodeDatasetUnreadable)
	}
}

func TestEngineEmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")
	record := testRecord(path, nil, true)

	artifacts, err := NewEngine().Run(record, Config{}, t.TempDir())
	if err != nil {
		t.Fatalf("empty file must degrade, not fail: %v", err)
	}
	if len(artifacts.DescriptiveStats) != 0 {
		t.Errorf("descriptive stats = %d, want 0", len(artifacts.DescriptiveStats))
	}
}
