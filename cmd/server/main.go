package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/mamadbah2/retailsheet/internal/config"
	"github.com/mamadbah2/retailsheet/internal/metrics"
	"github.com/mamadbah2/retailsheet/internal/repository/mongodb"
	"github.com/mamadbah2/retailsheet/internal/repository/sheets"
	"github.com/mamadbah2/retailsheet/internal/repository/stores"
	"github.com/mamadbah2/retailsheet/internal/scheduler"
	"github.com/mamadbah2/retailsheet/internal/server/handlers"
	"github.com/mamadbah2/retailsheet/internal/server/router"
	"github.com/mamadbah2/retailsheet/internal/service/dataset"
	"github.com/mamadbah2/retailsheet/internal/service/session"
	"github.com/mamadbah2/retailsheet/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, closeStore, err := stores.Open(context.Background(), cfg, baseLogger.Named("repo.store"))
	if err != nil {
		baseLogger.Fatal("failed to init table store", zap.Error(err))
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			baseLogger.Error("failed to close table store", zap.Error(err))
		}
	}()

	// Snapshots go to MongoDB whenever it is configured, whatever the table store.
	var snapshots mongodb.SnapshotRepository
	if repo, ok := store.(*mongodb.MongoDBRepository); ok {
		snapshots = repo
	} else if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		snapshots = mongoRepo
	} else {
		baseLogger.Warn("mongodb uri missing, summary snapshots will only be logged")
	}

	opts := dataset.Options{
		ChunkSize: cfg.Pipeline.ChunkSize,
		PageSize:  cfg.Pipeline.PageSize,
		Metrics:   metrics.New(),
		Logger:    baseLogger.Named("svc.dataset"),
	}
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		opts.Sheets = sheetsRepo
		baseLogger.Info("google sheets import and export enabled")
	} else {
		baseLogger.Warn("google sheets credentials missing, sheet import and export disabled")
	}

	registry := dataset.NewDefaultRegistry(store, opts)
	sessions := session.NewManager()

	datasetHandler := handlers.NewDatasetHandler(registry, sessions, baseLogger.Named("handlers.dataset"))
	healthHandler := handlers.NewHealthHandler(registry, baseLogger.Named("handlers.health"))
	engine := router.New(cfg.Server, datasetHandler, healthHandler, opts.Metrics, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Reporting, registry, snapshots, sessions, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	// Imports of large workbooks can take minutes, so there is no write timeout.
	srv := &http.Server{
		Addr:        ":" + cfg.Server.Port,
		Handler:     engine,
		ReadTimeout: 60 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Backend))
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
