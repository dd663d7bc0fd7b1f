package di

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/gmail-finance-ingest/internal/accounts"
	"github.com/mikey/gmail-finance-ingest/internal/adapters/sheets"
	"github.com/mikey/gmail-finance-ingest/internal/config"
	"github.com/mikey/gmail-finance-ingest/internal/core"
	"github.com/mikey/gmail-finance-ingest/internal/factory"
	"github.com/mikey/gmail-finance-ingest/internal/logging"
	"github.com/mikey/gmail-finance-ingest/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register token store
	if err := container.Provide(func(cfg *config.Config) *accounts.FileTokenStore {
		return accounts.NewFileTokenStore(cfg.GetGmail().TokenDir)
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewExtractorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSourceFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewNotifierFactory); err != nil {
		return nil, err
	}

	// Register extractor
	if err := container.Provide(func(f *factory.ExtractorFactory) (core.Extractor, error) {
		return f.CreateExtractor()
	}); err != nil {
		return nil, err
	}

	// Register per-account mail sources
	if err := container.Provide(func(f *factory.SourceFactory) (*factory.SourceSet, error) {
		return f.CreateSources(context.Background())
	}); err != nil {
		return nil, err
	}

	// Register sheet sink, sharing the first account's credentials
	if err := container.Provide(func(cfg *config.Config, set *factory.SourceSet, logger *zap.Logger) (core.SheetSink, error) {
		sheetsCfg := cfg.GetSheets()
		return sheets.NewSink(
			context.Background(),
			set.SinkTokenSource,
			sheetsCfg.SpreadsheetID,
			sheetsCfg.SheetName,
			logger,
		)
	}); err != nil {
		return nil, err
	}

	// Register notifier
	if err := container.Provide(func(f *factory.NotifierFactory) core.Notifier {
		return f.CreateNotifier()
	}); err != nil {
		return nil, err
	}

	// Register pipeline options
	if err := container.Provide(func(cfg *config.Config) core.Options {
		gmailCfg := cfg.GetGmail()
		return core.Options{
			BaseQuery:       gmailCfg.SearchQuery,
			LookbackDays:    gmailCfg.LookbackDays,
			BatchThreshold:  cfg.GetInt("notify.batch_threshold"),
			ProcessorUserID: cfg.GetSheets().ProcessorUserID,
		}
	}); err != nil {
		return nil, err
	}

	// Register ingestion service
	if err := container.Provide(core.NewIngestService); err != nil {
		return nil, err
	}

	return container, nil
}
