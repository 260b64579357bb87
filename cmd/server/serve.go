package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"

	"github.com/mathieu-neron/tubedash/internal/config"
	"github.com/mathieu-neron/tubedash/internal/db"
	"github.com/mathieu-neron/tubedash/internal/handler"
	"github.com/mathieu-neron/tubedash/internal/middleware"
	"github.com/mathieu-neron/tubedash/internal/router"
	"github.com/mathieu-neron/tubedash/internal/service"
)

const shutdownTimeout = 10 * time.Second

// newServeCmd creates the serve subcommand.
func newServeCmd() *cobra.Command {
	var source string
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset and serve the dashboard API",
		Long:  "Load the dataset once, then serve chart tables, KPIs and filter options over HTTP until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if source != "" {
				cfg.DataSource = source
			}
			if port != "" {
				cfg.Port = port
			}

			middleware.InitLogger(cfg.LogLevel, "tubedash")
			log := middleware.Logger

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			start := time.Now()
			ds, err := loadDataset(ctx, cfg, log)
			if err != nil {
				log.Error().Err(err).Msg("dataset load failed")
				return err
			}

			handler.InitMetrics()
			handler.RecordLoad(ds.Len(), ds.Warnings(), time.Since(start))

			rdb := db.NewRedis(cfg.RedisURL, log)
			if rdb != nil {
				defer rdb.Close()
			}

			var limiter *middleware.RateLimiter
			if cfg.RateLimitPerMinute > 0 {
				limiter = middleware.NewAPIRateLimiter(cfg.RateLimitPerMinute, rdb)
			}

			svc := service.NewDashboardService(ds)
			app := fiber.New(fiber.Config{
				AppName:      "Tubedash API",
				ServerHeader: "Tubedash",
			})
			router.Setup(app, &router.Handlers{
				Health:  handler.NewHealthHandler(ds, rdb, version),
				Stats:   handler.NewStatsHandler(svc),
				Chart:   handler.NewChartHandler(svc),
				Channel: handler.NewChannelHandler(svc),
				Video:   handler.NewVideoHandler(svc),
				Export:  handler.NewExportHandler(svc),
			}, cfg.CORSOrigins, limiter)

			go func() {
				<-ctx.Done()
				log.Info().Msg("shutting down")
				sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := app.ShutdownWithContext(sctx); err != nil {
					log.Error().Err(err).Msg("shutdown failed")
				}
			}()

			log.Info().
				Str("port", cfg.Port).
				Str("env", cfg.Environment).
				Str("source", ds.Source()).
				Msg("tubedash starting")
			if err := app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
				return fmt.Errorf("listen: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "Data source: CSV path, http(s) URL, drive:<file id> or postgres (overrides DATA_SOURCE)")
	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")

	return cmd
}
