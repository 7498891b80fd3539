package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/config"
	"github.com/MrJamesThe3rd/gofinances/internal/dashboard"
	"github.com/MrJamesThe3rd/gofinances/internal/database"
	"github.com/MrJamesThe3rd/gofinances/internal/export"
	gofinancesHttp "github.com/MrJamesThe3rd/gofinances/internal/http"
	categoryHandler "github.com/MrJamesThe3rd/gofinances/internal/http/category"
	dashboardHandler "github.com/MrJamesThe3rd/gofinances/internal/http/dashboard"
	exportHandler "github.com/MrJamesThe3rd/gofinances/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/gofinances/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/gofinances/internal/http/matching"
	txHandler "github.com/MrJamesThe3rd/gofinances/internal/http/transaction"
	"github.com/MrJamesThe3rd/gofinances/internal/importer"
	"github.com/MrJamesThe3rd/gofinances/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/gofinances/internal/matching/store"
	"github.com/MrJamesThe3rd/gofinances/internal/summary"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
	txStore "github.com/MrJamesThe3rd/gofinances/internal/transaction/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))

	tokens, err := auth.NewTokens(cfg.Auth.Secret, cfg.Auth.TTL)
	if err != nil {
		return fmt.Errorf("configuring auth: %w", err)
	}

	dialect, err := database.ParseDialect(cfg.Store.Driver)
	if err != nil {
		return err
	}

	db, err := database.Open(dialect, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	var (
		transactionService = transaction.NewService(txStore.New(db))
		matchingService    = matching.NewService(matchingStore.New(db))
		importService      = importer.NewService(transactionService, matchingService)
		dashboardService   = dashboard.NewService(transactionService, summary.NewEngine(nil))
		exportService      = export.NewService(transactionService)
	)

	router := gofinancesHttp.New(tokens, cfg.Server.CORSOrigins, gofinancesHttp.Handlers{
		Categories:   categoryHandler.NewHandler(),
		Transactions: txHandler.NewHandler(transactionService, matchingService),
		Dashboard:    dashboardHandler.NewHandler(dashboardService),
		Import:       importHandler.NewHandler(importService),
		Export:       exportHandler.NewHandler(exportService),
		Matching:     matchingHandler.NewHandler(matchingService),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "store", dialect)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
