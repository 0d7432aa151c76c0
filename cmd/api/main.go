package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"oxbio/adapters/memory"
	"oxbio/adapters/postgres"
	"oxbio/internal"
	"oxbio/internal/api"
	"oxbio/internal/config"
	"oxbio/internal/upload"
	"oxbio/ports"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	logger := internal.NewLogger("Main")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[FATAL] [Main] %v", err)
	}

	var repo ports.DatasetRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("[FATAL] [Main] failed to connect to database: %v", err)
		}
		defer db.Close()
		repo = postgres.NewDatasetRepository(db)
		logger.Info("dataset registry: postgres")
	} else {
		repo = memory.NewDatasetRepository()
		logger.Info("dataset registry: in-memory")
	}

	processor := upload.NewProcessor(repo, cfg.Storage.UploadsDir, cfg.Storage.MaxUploadMB)
	server := api.NewServer(cfg, repo, processor)

	if err := server.Run(); err != nil {
		log.Fatalf("[FATAL] [Main] server stopped: %v", err)
	}
}
