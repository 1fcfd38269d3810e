package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/histafrica/sharedkernel/domain/category"
	"github.com/histafrica/sharedkernel/infrastructure"
	"github.com/histafrica/sharedkernel/infrastructure/memory"
	"github.com/histafrica/sharedkernel/infrastructure/sqlite"
)

func main() {
	ctx := context.Background()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func setupCategories(ctx context.Context, cfg config) (category.Repository, func(), error) {
	switch cfg.Storage {
	case storageSqlite:
		db, err := sqlite.Open(ctx, cfg.SqliteDsn)
		if err != nil {
			return nil, nil, fmt.Errorf("setup database: %w", err)
		}
		tidy := func() {
			if err := db.Close(); err != nil {
				slog.Error("failed to close database", "error", err)
			}
		}
		return sqlite.CategoryStore{Db: db}, tidy, nil
	default:
		return memory.NewCategoryRepository(), func() {}, nil
	}
}

func serve(ctx context.Context, cfg config, stdout io.Writer) error {
	logger, err := newLogger(cfg, stdout)
	if err != nil {
		return err
	}

	categories, cleanup, err := setupCategories(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	srv := NewServer(logger, registry, categories, infrastructure.Clock{})
	httpServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", httpServer.Addr, "storage", cfg.Storage)
		err := httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shut down http server: %w", err)
	}
	logger.Info("stopped")
	return <-serveErr
}
