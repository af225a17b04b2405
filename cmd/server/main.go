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

	"github.com/jmoiron/sqlx"
	"golang.org/x/text/language"

	"github.com/sudo-init-do/restful-users/internal/config"
	"github.com/sudo-init-do/restful-users/internal/db"
	"github.com/sudo-init-do/restful-users/internal/greeting"
	"github.com/sudo-init-do/restful-users/internal/logging"
	"github.com/sudo-init-do/restful-users/internal/user"
)

var nowFunc = time.Now

func main() {
	if err := run(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	validator, err := user.NewValidator()
	if err != nil {
		return err
	}
	locale, err := language.Parse(cfg.DefaultLocale)
	if err != nil {
		return fmt.Errorf("DEFAULT_LOCALE: %w", err)
	}
	catalog, err := greeting.NewCatalog(locale, greeting.DefaultMessages)
	if err != nil {
		return err
	}

	d := deps{
		cfg:       cfg,
		logger:    logger,
		users:     user.NewService(store, logger),
		validator: validator,
		catalog:   catalog,
	}
	if err := seed(ctx, d); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	e := newEcho(d)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", ":"+cfg.Port, "store", cfg.Store)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (user.Store, func(), error) {
	var (
		conn *sqlx.DB
		err  error
	)
	switch cfg.Store {
	case config.StoreMemory:
		return user.NewMemoryStore(), func() {}, nil
	case config.StorePostgres:
		conn, err = db.Open(ctx, db.DriverPostgres, cfg.DatabaseURL)
	case config.StoreSQLite:
		conn, err = db.Open(ctx, db.DriverSQLite, cfg.SQLitePath)
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return user.NewSQLStore(conn), func() { conn.Close() }, nil
}
