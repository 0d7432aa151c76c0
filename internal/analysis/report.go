package analysis

import (
	"fmt"
	"strings"

	"oxbio/domain/dataset"
)

const topBiomarkersInReport = 10

// BuildManuscript assembles the fixed-template narrative report from
// already-computed artifacts. No additional computation happens here; given
// the same artifacts it always produces the same string.
func BuildManuscript(datasetID, target, group string, record *dataset.Record, artifacts *Artifacts) string {
	projectID := fmt.Sprintf("OXBIO-%s", datasetID)

	top := make([]string, 0, topBiomarkersInReport)
	for _, b := range artifacts.BiomarkerCandidates {
		if len(top) >= topBiomarkersInReport {
			break
		}
		top = append(top, fmt.Sprintf("%s (r=%.3f, %s)", b.Column, b.Correlation, b.Direction))
	}
	topList := "No biomarker candidates were identified."
	if len(top) > 0 {
		topList = strings.Join(top, ", ")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Project ID: %s\n", projectID)
	sb.WriteString("Title: Biomarker discovery in log2-normalized microarray data\n\n")

	sb.WriteString("Abstract\n")
	fmt.Fprintf(&sb,
		"We analyzed log2-normalized microarray data to identify aging-associated biomarkers. "+
			"The dataset contained %d rows and %d columns. Using descriptive statistics, "+
			"regression modeling, and biomarker ranking by correlation with %s, we identified "+
			"candidate biomarkers with the strongest association to aging.\n\n",
		record.RowCount, len(record.Columns), target)

	sb.WriteString("Methods\n")
	fmt.Fprintf(&sb,
		"Data ingestion validated CSV/TSV structure and inferred column headers. "+
			"Descriptive statistics were computed per numeric marker. Linear regression models were fit "+
			"to explain %s from specified covariates. Biomarker candidates were ranked by Pearson "+
			"correlation with %s. Group-level distributions were summarized by %s. "+
			"Correlation heatmaps and box plots were generated for exploratory analysis.\n\n",
		target, target, group)

	sb.WriteString("Results\n")
	fmt.Fprintf(&sb,
		"Computed descriptive statistics for %d markers, regressions for %d model(s), "+
			"and novelty scores for %d markers. Top biomarker candidates: %s.\n\n",
		len(artifacts.DescriptiveStats), len(artifacts.Regressions), len(artifacts.NoveltyScores), topList)

	sb.WriteString("Discussion\n")
	fmt.Fprintf(&sb,
		"Markers with strong correlations to %s represent candidate aging biomarkers in this "+
			"dataset. These findings provide a ranked shortlist for downstream validation (e.g., "+
			"replication cohorts, pathway analysis, or mechanistic experiments). "+
			"Because the data are already log2-normalized, relative effect sizes are interpretable in "+
			"log2 space. The correlation-based ranking provides a fast triage; additional modeling "+
			"and multiple-testing correction are recommended for definitive claims.\n\n",
		target)

	sb.WriteString("Limitations\n")
	sb.WriteString(
		"The analysis assumes numeric columns are properly normalized and does not perform batch " +
			"correction or probe re-annotation. Statistical significance testing and biological " +
			"annotation are not yet included.\n")

	return sb.String()
}
