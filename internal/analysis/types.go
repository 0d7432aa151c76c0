package analysis

// Default caps applied when the request leaves them unset.
const (
	DefaultMaxColumns = 50
	DefaultMaxGroups  = 20
)

// Config controls a single analysis run. Immutable once constructed.
type Config struct {
	TargetColumn  string   `json:"target_column,omitempty"`
	GroupColumn   string   `json:"group_column,omitempty"`
	Covariates    []string `json:"covariates,omitempty"`
	BoxplotColumn string   `json:"boxplot_column,omitempty"`
	MaxColumns    int      `json:"max_columns,omitempty"`
	MaxGroups     int      `json:"max_groups,omitempty"`
}

// WithDefaults returns a copy of the config with caps filled in
func (c Config) WithDefaults() Config {
	if c.MaxColumns <= 0 {
		c.MaxColumns = DefaultMaxColumns
	}
	if c.MaxGroups <= 0 {
		c.MaxGroups = DefaultMaxGroups
	}
	return c
}

// DescriptiveStat summarizes one numeric column
type DescriptiveStat struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// RegressionResult is one fitted OLS model. Coefficients align 1:1 with Predictors.
type RegressionResult struct {
	Target       string    `json:"target"`
	Predictors   []string  `json:"predictors"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	R2           float64   `json:"r2"`
	N            int       `json:"n"`
}

// NoveltyScore is a bounded [0,1] outlier-group indicator for one column
type NoveltyScore struct {
	Column    string  `json:"column"`
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
}

// BiomarkerCandidate ranks one column by absolute correlation with the target
type BiomarkerCandidate struct {
	Column      string  `json:"column"`
	Score       float64 `json:"score"`
	Correlation float64 `json:"correlation"`
	Direction   string  `json:"direction"`
	Notes       string  `json:"notes"`
}

// FileArtifact references one file written during an analysis run
type FileArtifact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Path        string `json:"path"`
}

// Artifacts is the aggregate result bundle of one analysis run. Everything
// here is created fresh per invocation and discarded once the response and
// report are produced; only the files under the artifact directory persist.
type Artifacts struct {
	DescriptiveStats    []DescriptiveStat    `json:"descriptive_stats"`
	Regressions         []RegressionResult   `json:"regressions"`
	NoveltyScores       []NoveltyScore       `json:"novelty_scores"`
	BiomarkerCandidates []BiomarkerCandidate `json:"biomarker_candidates"`
	Summary             string               `json:"summary"`
	HeatmapPath         string               `json:"heatmap_path,omitempty"`
	BoxplotPath         string               `json:"boxplot_path,omitempty"`
	Files               []FileArtifact       `json:"files"`
}
