// Package main is the entry point for the stock performance analyzer.
// It wires the Yahoo Finance client into the analysis services and serves
// the API plus the embedded frontend over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/perfscope/perfscope/internal/clients/yahoo"
	"github.com/perfscope/perfscope/internal/config"
	"github.com/perfscope/perfscope/internal/modules/charts"
	"github.com/perfscope/perfscope/internal/modules/comparison"
	"github.com/perfscope/perfscope/internal/modules/historical"
	"github.com/perfscope/perfscope/internal/server"
	"github.com/perfscope/perfscope/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	log.Info().Msg("Starting stock performance analyzer")

	provider := yahoo.NewClient(cfg.YahooBaseURL, log)

	historicalService := historical.NewService(provider, log)
	comparisonService := comparison.NewService(provider, log)
	chartsService := charts.NewService(log)

	srv := server.New(server.Config{
		Port:              cfg.Port,
		Log:               log,
		Config:            cfg,
		DevMode:           cfg.DevMode,
		HistoricalService: historicalService,
		ComparisonService: comparisonService,
		ChartsService:     chartsService,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// In-flight requests get up to 10 seconds to finish.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
