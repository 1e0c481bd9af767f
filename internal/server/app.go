// Package server initializes and runs the JobKeeper backend.
// It opens the database, applies migrations, wires the services into the
// REST API and shuts everything down gracefully on a signal.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/jobkeeper/internal/logging"
	"github.com/dmitrijs2005/jobkeeper/internal/server/config"
	"github.com/dmitrijs2005/jobkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/jobkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/jobkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobkeeper/internal/server/services"
)

// seam for tests
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	api    *httpapi.Server
	sync   func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	zl, err := logging.NewProductionZap(logging.ParseLevel(c.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	app, err := newApp(ctx, c, zl, repomanager.NewPostgresRepositoryManager())
	if err != nil {
		_ = zl.Sync()
		return nil, err
	}
	app.sync = zl.Sync
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, rm repomanager.RepositoryManager) (*App, error) {
	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	api := httpapi.New(httpapi.Deps{
		Users:   services.NewUserService(db, rm, c),
		Records: services.NewRecordService(db, rm),
		Storage: services.NewStorageService(c),
		DB:      db,
		Metrics: metrics.New(),
		Logger:  logger,
		APIKey:  c.APIKey,
	})

	return &App{config: c, logger: logger, db: db, api: api}, nil
}

// Run serves until ctx is cancelled, then gives in-flight requests
// ShutdownTimeout to finish.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.ListenAddr)

	var wg sync.WaitGroup
	errCh := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.api.Start(app.config.ListenAddr); err != nil {
			app.logger.Error(ctx, "http server error", "err", err)
			errCh <- err
			cancelFunc()
		}
	}()

	<-ctx.Done()
	app.logger.Info(context.Background(), "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := app.api.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown error", "err", err)
	}
	wg.Wait()

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

func (app *App) Close() error {
	err := app.db.Close()
	if app.sync != nil {
		_ = app.sync()
	}
	return err
}
