// Package api exposes the analysis service over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"oxbio/internal"
	"oxbio/internal/analysis"
	"oxbio/internal/config"
	"oxbio/internal/upload"
	"oxbio/ports"
)

// Server wires the HTTP routes to the dataset registry, the upload processor
// and the analysis engine.
type Server struct {
	router    *gin.Engine
	cfg       *config.Config
	repo      ports.DatasetRepository
	processor *upload.Processor
	engine    *analysis.Engine
	// slots bounds concurrent engine runs. Each run is single-threaded and
	// owns its state; the cap only bounds memory.
	slots *semaphore.Weighted
	log   *internal.Logger
}

// NewServer creates a configured server with all routes registered
func NewServer(cfg *config.Config, repo ports.DatasetRepository, processor *upload.Processor) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:    gin.New(),
		cfg:       cfg,
		repo:      repo,
		processor: processor,
		engine:    analysis.NewEngine(),
		slots:     semaphore.NewWeighted(cfg.Analysis.Slots),
		log:       internal.NewLogger("API"),
	}

	s.router.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.health)

	api := s.router.Group("/api")
	{
		api.POST("/datasets", s.uploadDataset)
		api.GET("/datasets/:id", s.getDataset)
		api.GET("/datasets/:id/report", s.getReport)
		api.POST("/analysis", s.runAnalysis)
	}
}

// Handler returns the underlying http.Handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	addr := ":" + s.cfg.Server.Port
	s.log.Info("listening on %s", addr)
	return s.router.Run(addr)
}
