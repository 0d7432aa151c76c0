package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "DATABASE_URL", "UPLOADS_DIR",
		"ARTIFACTS_DIR", "MAX_UPLOAD_MB", "ANALYSIS_SLOTS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.MaxUploadMB != 50 {
		t.Errorf("max upload = %d, want 50", cfg.Storage.MaxUploadMB)
	}
	if cfg.Analysis.Slots != 4 {
		t.Errorf("slots = %d, want 4", cfg.Analysis.Slots)
	}
	if cfg.Database.URL != "" {
		t.Errorf("database url = %q, want empty", cfg.Database.URL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("ANALYSIS_SLOTS", "8")
	t.Setenv("MAX_UPLOAD_MB", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != "9999" {
		t.Errorf("port = %q, want 9999", cfg.Server.Port)
	}
	if cfg.Analysis.Slots != 8 {
		t.Errorf("slots = %d, want 8", cfg.Analysis.Slots)
	}
	if cfg.Storage.MaxUploadMB != 10 {
		t.Errorf("max upload = %d, want 10", cfg.Storage.MaxUploadMB)
	}
}

func TestLoadRejectsNonPositiveLimits(t *testing.T) {
	t.Setenv("MAX_UPLOAD_MB", "-1")

	if _, err := Load(); err == nil {
		t.Error("expected validation failure for a negative upload limit")
	}
}

func TestLoadIgnoresUnparseableInts(t *testing.T) {
	t.Setenv("ANALYSIS_SLOTS", "lots")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Analysis.Slots != 4 {
		t.Errorf("slots = %d, want the default 4", cfg.Analysis.Slots)
	}
}
