package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/gmail-finance-ingest/internal/core"
	"github.com/mikey/gmail-finance-ingest/internal/di"
	"github.com/mikey/gmail-finance-ingest/internal/factory"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run one ingestion pass
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run executes a single sequential ingestion pass over all resolved accounts
// and exits. Periodicity comes from the external scheduler.
func run(
	logger *zap.Logger,
	service *core.IngestService,
	sources *factory.SourceSet,
	extractor core.Extractor,
) error {
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := service.Run(ctx, sources.Sources)
	if err != nil {
		logger.Error("Ingestion run failed", zap.Error(err))
		return err
	}

	for _, stats := range report.Accounts {
		logger.Info("Account summary",
			zap.String("account", stats.AccountID),
			zap.Int("candidates", stats.Candidates),
			zap.Int("appended", stats.Appended),
			zap.Int("duplicates", stats.Duplicates),
			zap.Int("skipped", stats.Skipped),
			zap.Int("failed", stats.Failed))
	}
	logger.Info("All accounts processed",
		zap.String("run_id", report.RunID),
		zap.Int("appended", report.TotalAppended()))

	// Close any resources that need closing
	if closer, ok := extractor.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close extractor", zap.Error(err))
		}
	}

	return nil
}
