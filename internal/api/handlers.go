package api

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"

	"oxbio/domain/core"
	"oxbio/domain/dataset"
	"oxbio/internal/analysis"
	"oxbio/internal/errors"
)

// Manuscript defaults when the request leaves target or group unset. The
// narrative template is written around aging biomarkers, so these are the
// column names the template expects.
const (
	defaultTargetColumn = "age"
	defaultGroupColumn  = "cell_type"
)

// analysisRequest is the body of POST /api/analysis
type analysisRequest struct {
	DatasetID string `json:"dataset_id" binding:"required"`
	analysis.Config
}

// analysisResponse mirrors the full result bundle of one run
type analysisResponse struct {
	Status              string                        `json:"status"`
	DatasetID           string                        `json:"dataset_id"`
	Summary             string                        `json:"summary"`
	DescriptiveStats    []analysis.DescriptiveStat    `json:"descriptive_stats"`
	Regressions         []analysis.RegressionResult   `json:"regressions"`
	NoveltyScores       []analysis.NoveltyScore       `json:"novelty_scores"`
	BiomarkerCandidates []analysis.BiomarkerCandidate `json:"biomarker_candidates"`
	Manuscript          string                        `json:"manuscript"`
	Artifacts           []analysis.FileArtifact       `json:"artifacts"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) uploadDataset(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer file.Close()

	record, err := s.processor.Process(c.Request.Context(),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (s *Server) getDataset(c *gin.Context) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := s.repo.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) runAnalysis(c *gin.Context) {
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := core.ParseDatasetID(req.DatasetID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, artifacts, err := s.analyze(c, id, req.Config)
	if err != nil {
		s.writeError(c, err)
		return
	}

	target, group := manuscriptColumns(req.Config)
	c.JSON(http.StatusOK, analysisResponse{
		Status:              "completed",
		DatasetID:           id.String(),
		Summary:             artifacts.Summary,
		DescriptiveStats:    artifacts.DescriptiveStats,
		Regressions:         artifacts.Regressions,
		NoveltyScores:       artifacts.NoveltyScores,
		BiomarkerCandidates: artifacts.BiomarkerCandidates,
		Manuscript:          analysis.BuildManuscript(id.String(), target, group, record, artifacts),
		Artifacts:           artifacts.Files,
	})
}

// getReport runs a fresh analysis with default configuration and renders the
// manuscript as HTML. Runs are deterministic, so re-running instead of
// persisting results always yields the same report.
func (s *Server) getReport(c *gin.Context) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := analysis.Config{TargetColumn: defaultTargetColumn, GroupColumn: defaultGroupColumn}
	record, artifacts, err := s.analyze(c, id, cfg)
	if err != nil {
		s.writeError(c, err)
		return
	}

	manuscript := analysis.BuildManuscript(id.String(), defaultTargetColumn, defaultGroupColumn, record, artifacts)
	html := markdown.ToHTML([]byte(manuscript), nil, nil)
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// analyze looks up the dataset and runs the engine under a concurrency slot
func (s *Server) analyze(c *gin.Context, id core.DatasetID, cfg analysis.Config) (*dataset.Record, *analysis.Artifacts, error) {
	record, err := s.repo.Get(c.Request.Context(), id)
	if err != nil {
		return nil, nil, err
	}

	if err := s.slots.Acquire(c.Request.Context(), 1); err != nil {
		return nil, nil, errors.Wrap(err, "analysis canceled while waiting for a slot")
	}
	defer s.slots.Release(1)

	outputDir := filepath.Join(s.cfg.Storage.ArtifactsDir, id.String())
	artifacts, err := s.engine.Run(record, cfg, outputDir)
	if err != nil {
		return nil, nil, err
	}
	return record, artifacts, nil
}

// writeError maps AppError codes to HTTP statuses
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeDatasetNotFound:
		status = http.StatusNotFound
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}

func manuscriptColumns(cfg analysis.Config) (target, group string) {
	target, group = cfg.TargetColumn, cfg.GroupColumn
	if target == "" {
		target = defaultTargetColumn
	}
	if group == "" {
		group = defaultGroupColumn
	}
	return target, group
}
