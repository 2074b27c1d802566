package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soul23/healthchecker/internal/httpapi"
	"github.com/soul23/healthchecker/internal/probe"
	"github.com/soul23/healthchecker/internal/repo/memory"
	"github.com/soul23/healthchecker/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server. Reports are produced on demand through
GET /api/healthcheck and, when CHECK_INTERVAL is set, on a timer.
Runs until interrupted (Ctrl+C) or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.logger.Sync()
	cfg := a.cfg

	store := memory.New()
	hub := httpapi.NewHub()
	sched := scheduler.NewScheduler(a.logger, a.runner, store, hub, cfg.CheckInterval)

	api := httpapi.NewServer(a.logger, sched, store, hub, probe.NewExecPinger(), cfg.PingTarget, cfg.StaticDir)
	api.PrivateDirs = []string{cfg.LogDir}
	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: api.Router(httpapi.RouterOptions{
			AllowedOrigins: cfg.AllowedOrigins,
			RunRPM:         cfg.RunRPM,
			RunBurst:       cfg.RunBurst,
			TrustProxy:     cfg.TrustProxy,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go sched.Run(ctx)

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("api_listen",
			zap.String("addr", cfg.Addr),
			zap.String("sites_file", cfg.SitesFile),
			zap.Int("webhooks", len(cfg.WebhookURLs)),
		)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("shutdown_error", zap.Error(err))
		}
		a.logger.Info("shutdown_complete")
		return nil
	}
}
