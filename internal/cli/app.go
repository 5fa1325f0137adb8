package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/emberwatch/calfire-incident-etl/internal/adapter/calfire"
	"github.com/emberwatch/calfire-incident-etl/internal/adapter/sheets"
	"github.com/emberwatch/calfire-incident-etl/internal/config"
	"github.com/emberwatch/calfire-incident-etl/internal/domain"
	"github.com/emberwatch/calfire-incident-etl/internal/observability"
	"github.com/emberwatch/calfire-incident-etl/internal/pipeline"
)

// app bundles the wired service components a subcommand needs.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	metrics  *observability.Metrics
	engine   *pipeline.Engine
	counties *domain.CountySet
}

// buildApp loads configuration and wires the fetcher, store, and engine.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	counties, err := loadCounties(cfg)
	if err != nil {
		return nil, err
	}

	fetcher := calfire.NewClient(cfg.FeedURL, cfg.FetchTimeout, logger)
	store, err := sheets.NewStore(ctx, cfg.CredentialsFile, cfg.SpreadsheetID, cfg.SheetName, cfg.BatchSize, logger)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
		engine:   pipeline.New(fetcher, store, counties, logger, metrics),
		counties: counties,
	}, nil
}

func loadCounties(cfg *config.Config) (*domain.CountySet, error) {
	if cfg.CountyEnumSource == "" {
		return domain.DefaultCounties(), nil
	}
	return domain.LoadCounties(cfg.CountyEnumSource)
}
