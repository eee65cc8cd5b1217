// Command ingest bulk-loads historical customer and loan CSV exports into
// the credit-engine database. Customers must be loaded before loans so loan
// rows can resolve their owners.
package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/credigo/credit-engine/internal/infrastructure/config"
	"github.com/credigo/credit-engine/internal/infrastructure/ingest"
	"github.com/credigo/credit-engine/internal/platform/observability"
	platformpg "github.com/credigo/credit-engine/internal/platform/postgres"
)

func main() {
	customersPath := flag.String("customers", "", "path to the customer CSV export")
	loansPath := flag.String("loans", "", "path to the loan CSV export")
	flag.Parse()

	if *customersPath == "" && *loansPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load() //nolint:errcheck

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pgCfg := platformpg.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := platformpg.NewPool(ctx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if migErr := platformpg.RunMigrations(pgCfg.DSN(), cfg.MigrationsDir); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	ingestor := ingest.NewIngestor(pool, logger)

	if *customersPath != "" {
		if err := ingestFile(ctx, logger, *customersPath, "customers", ingestor.IngestCustomers); err != nil {
			os.Exit(1)
		}
	}
	if *loansPath != "" {
		if err := ingestFile(ctx, logger, *loansPath, "loans", ingestor.IngestLoans); err != nil {
			os.Exit(1)
		}
	}
}

func ingestFile(
	ctx context.Context,
	logger *slog.Logger,
	path, kind string,
	fn func(context.Context, io.Reader) (ingest.Report, error),
) error {
	f, err := os.Open(path)
	if err != nil {
		logger.Error("failed to open file", "kind", kind, "path", path, "error", err)
		return err
	}
	defer f.Close()

	report, err := fn(ctx, f)
	if err != nil {
		logger.Error("ingestion failed", "kind", kind, "path", path, "error", err)
		return err
	}
	logger.Info("ingestion finished", "kind", kind, "path", path,
		"inserted", report.Inserted, "skipped", report.Skipped)
	return nil
}
