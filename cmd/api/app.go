package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/soul23/healthchecker/internal/config"
	"github.com/soul23/healthchecker/internal/health"
	"github.com/soul23/healthchecker/internal/logging"
	"github.com/soul23/healthchecker/internal/notify"
	"github.com/soul23/healthchecker/internal/probe"
	"github.com/soul23/healthchecker/internal/sites"
)

// app holds the components shared by serve and check.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	runner *health.Runner
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	strategies := probe.NewStrategies(probe.NewClient(), probe.Options{
		Timeout:       cfg.ProbeTimeout,
		VendorTimeout: cfg.VendorTimeout,
		IncidentsURL:  cfg.IncidentsFeedURL,
	})
	agg := health.NewAggregator(strategies, logger, cfg.MaxConcurrentChecks)
	dispatcher := notify.NewDispatcher(cfg.WebhookURLs, cfg.WebhookTimeout, logger)
	runner := health.NewRunner(sites.NewFile(cfg.SitesFile), agg, dispatcher, logger)

	return &app{cfg: cfg, logger: logger, runner: runner}, nil
}
