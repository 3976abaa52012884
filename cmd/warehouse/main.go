// Command warehouse serves the parts warehouse HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/jacentio/warehouse/api"
	"github.com/jacentio/warehouse/catalog"
	"github.com/jacentio/warehouse/internal/config"
	"github.com/jacentio/warehouse/store"
)

func main() {
	envFile := flag.String("env-file", ".env", "optional file of environment variables")
	flag.Parse()

	if err := run(*envFile); err != nil {
		slog.Error("warehouse exited", "error", err)
		os.Exit(1)
	}
}

func run(envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	awsCfg, err := cfg.AWS(ctx)
	if err != nil {
		return err
	}
	tables := cfg.Tables()
	s := store.NewWithRegistry(cfg.DynamoDB(awsCfg), cfg.Store(), catalog.NewRegistry(tables))
	logger.Info("store ready",
		"uniqueTable", s.Config().UniqueTable,
		"scanSegments", s.Config().ScanSegments,
		"endpoint", cfg.DynamoDBEndpoint,
	)
	if cfg.CreateTables {
		if err := catalog.EnsureTables(ctx, s, tables, logger); err != nil {
			return err
		}
	}

	parts := catalog.NewPartRepository(s, tables, logger)
	categories := catalog.NewCategoryRepository(s, tables, parts, logger)

	gin.SetMode(gin.ReleaseMode)
	server := api.NewServer(
		catalog.NewCategoryService(categories, parts, logger),
		catalog.NewPartService(parts, categories, logger),
		logger,
	)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
