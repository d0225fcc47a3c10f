package main

// @title           Book Catalog API
// @version         0.1.0
// @description     Read-only lookup and search over the book catalog.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/book-catalog/internal/config"
	"github.com/snnyvrz/book-catalog/internal/db"
	"github.com/snnyvrz/book-catalog/internal/handler"
	"github.com/snnyvrz/book-catalog/internal/logging"
	"github.com/snnyvrz/book-catalog/internal/repository"
	"github.com/snnyvrz/book-catalog/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const appVersion = "0.1.0"

func main() {
	configFile := flag.String("config", os.Getenv("CONFIG_FILE"), "path to a YAML configuration file")
	flag.Parse()

	if err := run(*configFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	startTime := time.Now()

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)

	logger := logging.New(cfg, appVersion)
	defer func() {
		_ = logger.Sync()
	}()

	database, err := db.ConnectWithRetry(cfg, logger)
	if err != nil {
		return err
	}

	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}
	defer sqlDB.Close()

	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	books := service.NewBookService(repository.NewGormBookRepository(database))

	router := handler.NewRouter(handler.RouterDeps{
		Config:    cfg,
		Logger:    logger,
		Books:     books,
		DB:        sqlDB,
		StartTime: startTime,
		Version:   appVersion,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return serve(srv, logger, cfg.Server.ShutdownTimeout)
}

// serve runs srv until SIGINT/SIGTERM or a listen failure, then shuts it
// down, falling back to Close when the graceful shutdown does not finish in
// time.
func serve(srv *http.Server, logger *zap.Logger, shutdownTimeout time.Duration) error {
	nCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(nCtx)

	g.Go(func() error {
		logger.Info("api server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		if nCtx.Err() != nil {
			logger.Info("api server stopping", zap.String("reason", "requested to stop"))
		} else {
			logger.Info("api server stopping", zap.String("reason", "errored at running"))
		}

		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(sCtx); err != nil {
			logger.Warn("api server graceful shutdown failed", zap.Error(err))
			logger.Info("api server going to force shutdown", zap.Error(srv.Close()))
			return nil
		}

		logger.Info("api server graceful shutdown succeeded")
		return nil
	})

	err := g.Wait()
	logger.Info("api server stopped", zap.String("addr", srv.Addr), zap.Error(err))
	return err
}
