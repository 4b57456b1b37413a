package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"mpf/adapters/backup"
	"mpf/adapters/excel"
	"mpf/adapters/sheets"
	"mpf/adapters/store"
	"mpf/domain/accuracy"
	"mpf/domain/normalize"
	"mpf/domain/profile"
	"mpf/internal"
	"mpf/internal/config"
	"mpf/internal/report"
)

// distanceThreshold excludes recovery distances at or below this many meters
// from the distance profile, filtering footwear found essentially on the
// subject.
const distanceThreshold = 1.0

func main() {
	_ = godotenv.Load()
	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading configuration: %v", err)
		os.Exit(1)
	}

	cred, err := sheets.LoadCredential(cfg.Paths.TokenFile)
	if err != nil {
		// Without a credential the fetch fails and the backup takes over.
		logger.Warn("no usable credential: %v", err)
	}

	client := sheets.NewClient(cfg.Sheet.FetchTimeout)
	service := sheets.NewService(client, backup.NewStore(cfg.Paths.BackupCSV), logger)

	ctx := context.Background()
	raw, err := service.GetData(ctx, cred, cfg.Sheet.SpreadsheetID, cfg.Sheet.Range)
	if err != nil {
		logger.Error("obtaining sheet data: %v", err)
		os.Exit(1)
	}

	admin, err := normalize.AdminTable(raw)
	if err != nil {
		logger.Error("building admin table: %v", err)
		os.Exit(1)
	}
	footwear, err := normalize.FootwearTable(raw)
	if err != nil {
		logger.Error("building footwear table: %v", err)
		os.Exit(1)
	}
	logger.Info("normalized %d cases, %d observations", admin.NumRows(), footwear.NumRows())

	entries, err := accuracy.Summaries(footwear, cfg.Scoring.SizeTolerance)
	if err != nil {
		logger.Error("scoring accuracy: %v", err)
		os.Exit(1)
	}

	now := time.Now()
	run := store.Run{ID: uuid.NewString(), FetchedAt: now, Source: cfg.Sheet.Range}

	data := report.Data{
		RunID:       run.ID,
		GeneratedAt: now,
		Source:      run.Source,
		Admin:       admin,
		Footwear:    footwear,
		Entries:     entries,
		Percents:    accuracy.Percentages(entries),
		Distances:   profile.Distances(footwear, distanceThreshold),
		Sizes:       profile.Sizes(footwear),
		TypeTab:     profile.TypeCrossTab(footwear, false),
		Mismatches:  profile.BrandMismatches(footwear),
	}

	// Artifacts are written independently so one failure does not abort the
	// batch.
	failures := 0

	if db, err := store.Open(cfg.Paths.DBFile); err != nil {
		logger.Error("opening processed database: %v", err)
		failures++
	} else {
		if err := db.SaveRun(run, admin, footwear, entries); err != nil {
			logger.Error("persisting run: %v", err)
			failures++
		} else {
			logger.Info("run %s persisted to %s", run.ID, cfg.Paths.DBFile)
		}
		db.Close()
	}

	exportDir := filepath.Join(cfg.Paths.ExportDir, now.Format("2006-01-02"))
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		logger.Error("creating export directory: %v", err)
		os.Exit(1)
	}

	workbook := filepath.Join(exportDir, "tables.xlsx")
	if err := excel.WriteWorkbook(workbook, admin, footwear, entries); err != nil {
		logger.Error("writing workbook: %v", err)
		failures++
	} else {
		logger.Info("workbook written to %s", workbook)
	}

	if err := report.Write(exportDir, data); err != nil {
		logger.Error("writing report: %v", err)
		failures++
	} else {
		logger.Info("report written to %s", exportDir)
	}

	if failures > 0 {
		logger.Warn("completed with %d failed artifacts", failures)
		os.Exit(1)
	}
}
