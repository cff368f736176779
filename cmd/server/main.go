// Package main is the entry point for the investment portfolio manager and
// buy-opportunity monitor. It wires the file-backed stores, the quote
// service, the evaluation scheduler and the HTTP API, and shuts everything
// down cleanly on SIGINT/SIGTERM.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ariel-pastor/proyecto-jubilacion/internal/clients/yahoo"
	"github.com/ariel-pastor/proyecto-jubilacion/internal/config"
	"github.com/ariel-pastor/proyecto-jubilacion/internal/database"
	"github.com/ariel-pastor/proyecto-jubilacion/internal/events"
	"github.com/ariel-pastor/proyecto-jubilacion/internal/modules/history"
	"github.com/ariel-pastor/proyecto-jubilacion/internal/modules/opportunities"
	"github.com/ariel-pastor/proyecto-jubilacion/internal/modules/portfolio"
	"github.com/ariel-pastor/proyecto-jubilacion/internal/quotes"
	"github.com/ariel-pastor/proyecto-jubilacion/internal/scheduler"
	"github.com/ariel-pastor/proyecto-jubilacion/internal/server"
	"github.com/ariel-pastor/proyecto-jubilacion/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger with config level
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	log.Info().Str("data_dir", cfg.DataDir).Msg("Starting portfolio manager")

	// Initialize the price cache database
	db, err := database.New(cfg.PriceCachePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize price cache database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Event manager for the structured audit trail
	eventManager := events.NewManager(log)

	// Quote service: Yahoo Finance client plus local close cache
	yahooClient := yahoo.NewClient(log)
	priceCache := quotes.NewCacheRepository(db)
	quoteService := quotes.NewService(yahooClient, priceCache, log)

	// Portfolio: file-backed purchase store and the aggregator
	purchaseStore := portfolio.NewStore(cfg.PortfolioPath, log)
	aggregator := portfolio.NewAggregator(quoteService, log)
	valuation := portfolio.NewValuation(purchaseStore, aggregator)

	// Opportunity evaluator with its append-only logbook
	logbook := opportunities.NewLogbook(cfg.OpportunityLogPath)
	evaluator := opportunities.NewEvaluator(quoteService, logbook, eventManager, cfg.OversoldThreshold, log)

	// History: snapshot store and trend recorder
	historyStore := history.NewStore(cfg.HistoryPath, log)
	recorder := history.NewRecorder(historyStore, eventManager, log)

	// Initialize scheduler and register background jobs
	sched := scheduler.New(log)
	if err := registerJobs(sched, cfg, evaluator, recorder, valuation, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to register jobs")
	}
	sched.Start()
	defer sched.Stop()

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:                 cfg.Port,
		Log:                  log,
		Config:               cfg,
		DevMode:              cfg.DevMode,
		PortfolioHandler:     portfolio.NewHandler(purchaseStore, aggregator, eventManager, log),
		OpportunitiesHandler: opportunities.NewHandler(evaluator, log),
		HistoryHandler:       history.NewHandler(recorder, valuation, log),
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func registerJobs(
	sched *scheduler.Scheduler,
	cfg *config.Config,
	evaluator *opportunities.Evaluator,
	recorder *history.Recorder,
	valuation *portfolio.Valuation,
	log zerolog.Logger,
) error {
	scanSchedule := fmt.Sprintf("@every %ds", cfg.MonitorInterval)
	if err := sched.AddJob(scanSchedule, scheduler.NewOpportunityScanJob(evaluator, log)); err != nil {
		return err
	}

	if err := sched.AddJob("@daily", scheduler.NewValueSnapshotJob(recorder, valuation, log)); err != nil {
		return err
	}

	return nil
}
