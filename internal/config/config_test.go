package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Sheet.Range != "IMPFDcurrent" {
		t.Errorf("expected default range IMPFDcurrent, got %q", cfg.Sheet.Range)
	}
	if cfg.Sheet.FetchTimeout != 30*time.Second {
		t.Errorf("expected 30s fetch timeout, got %v", cfg.Sheet.FetchTimeout)
	}
	if cfg.Paths.BackupCSV != "data/raw/data.csv" {
		t.Errorf("unexpected backup path %q", cfg.Paths.BackupCSV)
	}
	if cfg.Paths.DBFile != "data/processed/data.db" {
		t.Errorf("unexpected db path %q", cfg.Paths.DBFile)
	}
	if cfg.Scoring.SizeTolerance != 0.5 {
		t.Errorf("expected default tolerance 0.5, got %v", cfg.Scoring.SizeTolerance)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WORKSHEET_RANGE", "Sheet2")
	t.Setenv("SIZE_TOLERANCE", "1.0")
	t.Setenv("FETCH_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Sheet.Range != "Sheet2" {
		t.Errorf("expected Sheet2, got %q", cfg.Sheet.Range)
	}
	if cfg.Scoring.SizeTolerance != 1.0 {
		t.Errorf("expected tolerance 1.0, got %v", cfg.Scoring.SizeTolerance)
	}
	if cfg.Sheet.FetchTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.Sheet.FetchTimeout)
	}
}

func TestLoadRejectsNegativeTolerance(t *testing.T) {
	t.Setenv("SIZE_TOLERANCE", "-1")
	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for negative tolerance")
	}
}
