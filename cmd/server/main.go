package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/saisie-livres/internal/config"
	airtablerepo "github.com/mamadbah2/saisie-livres/internal/repository/airtable"
	"github.com/mamadbah2/saisie-livres/internal/repository/mongodb"
	"github.com/mamadbah2/saisie-livres/internal/repository/sheets"
	"github.com/mamadbah2/saisie-livres/internal/scheduler"
	"github.com/mamadbah2/saisie-livres/internal/server/handlers"
	"github.com/mamadbah2/saisie-livres/internal/server/router"
	reportingsvc "github.com/mamadbah2/saisie-livres/internal/service/reporting"
	stocksvc "github.com/mamadbah2/saisie-livres/internal/service/stock"
	airtableclient "github.com/mamadbah2/saisie-livres/pkg/clients/airtable"
	"github.com/mamadbah2/saisie-livres/pkg/logger"
	"github.com/mamadbah2/saisie-livres/web"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	// A missing or broken Airtable setup must not stop the form from loading;
	// submissions report the uninitialized connection instead.
	var store stocksvc.Store
	if client, err := airtableclient.NewClient(cfg.Airtable); err != nil {
		baseLogger.Error("airtable client not initialized", zap.Error(err))
	} else if repo, err := airtablerepo.NewStockRepository(client, cfg.Airtable.TableName, logger.Named(baseLogger, "repo.airtable")); err != nil {
		baseLogger.Error("airtable repository not initialized", zap.Error(err))
	} else {
		store = repo
		baseLogger.Info("airtable client initialized", zap.String("table", cfg.Airtable.TableName))
	}

	var (
		journal     stocksvc.Journal
		journalRepo *mongodb.JournalRepository
	)
	if cfg.MongoDB.Enabled() {
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		journalRepo, err = mongodb.NewJournalRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		cancel()
		if err != nil {
			baseLogger.Error("entry journal disabled", zap.Error(err))
			journalRepo = nil
		} else {
			journal = journalRepo
			defer func() {
				if err := journalRepo.Close(context.Background()); err != nil {
					baseLogger.Error("failed to close mongodb connection", zap.Error(err))
				}
			}()
		}
	}

	if journalRepo != nil && cfg.Sheets.Enabled() {
		if sched := startRecapScheduler(cfg, journalRepo, baseLogger); sched != nil {
			defer sched.Stop()
		}
	} else {
		baseLogger.Info("daily recap export disabled")
	}

	stockSvc := stocksvc.NewService(store, journal, logger.Named(baseLogger, "svc.stock"))

	assets := web.Static()
	pageHandler, err := handlers.NewPageHandler(assets, logger.Named(baseLogger, "handlers.page"))
	if err != nil {
		baseLogger.Fatal("failed to load entry page", zap.Error(err))
	}
	stockHandler := handlers.NewStockHandler(stockSvc, logger.Named(baseLogger, "handlers.stock"))
	engine := router.New(stockHandler, pageHandler, assets, logger.Named(baseLogger, "router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func startRecapScheduler(cfg *config.Config, journal *mongodb.JournalRepository, baseLogger *zap.Logger) *scheduler.Scheduler {
	loc, err := time.LoadLocation(cfg.Recap.Timezone)
	if err != nil {
		baseLogger.Error("daily recap disabled: invalid timezone", zap.Error(err))
		return nil
	}

	recapRepo, err := sheets.NewRecapRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
	if err != nil {
		baseLogger.Error("daily recap disabled: sheets client", zap.Error(err))
		return nil
	}

	reportingSvc := reportingsvc.NewService(journal, recapRepo, loc, logger.Named(baseLogger, "svc.reporting"))
	sched := scheduler.NewScheduler(cfg.Recap.CronSchedule, loc, reportingSvc, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Error("daily recap disabled", zap.Error(err))
		return nil
	}
	return sched
}
