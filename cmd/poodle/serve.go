package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ba4bes/moodpoodle/internal/adapter/httpserver"
	"github.com/Ba4bes/moodpoodle/internal/adapter/metrics"
	"github.com/Ba4bes/moodpoodle/internal/app"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout     = 10 * time.Second
	resolvePollInterval = 30 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server with built-in refresh and resolution timers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.WebhookSecret == "" {
				return errors.New("POODLE_WEBHOOK_SECRET is required in serve mode")
			}

			clock := clockwork.NewRealClock()
			registry := metrics.NewRegistry()
			appMetrics := metrics.NewAppMetrics(registry)

			svc, err := buildService(cmd.Context(), cfg, clock, appMetrics)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go app.NewRefreshTicker(svc, clock, cfg.RefreshInterval).Run(ctx)
			go app.NewCooldownResolver(svc, clock, cfg.CooldownWindow, resolvePollInterval).Run(ctx)

			srv := httpserver.NewServer(cfg, svc, metrics.Handler(registry))

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("server error: %w", err)
			case <-ctx.Done():
			}

			slog.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
