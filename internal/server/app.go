// Package server wires configuration, storage, services and the HTTP API
// together and runs them until the process is told to stop.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MrSidSir/sidEstate/internal/logging"
	"github.com/MrSidSir/sidEstate/internal/server/config"
	"github.com/MrSidSir/sidEstate/internal/server/repositories/repomanager"
	"github.com/MrSidSir/sidEstate/internal/server/rest"
	"github.com/MrSidSir/sidEstate/internal/server/services"
)

const closeTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   repomanager.RepositoryManager
	users   *services.UserService
	media   *services.MediaService
	listing *services.ListingService
}

// NewApp opens the configured storage backend, brings its schema up to date
// and builds the services on top of it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	repos, err := repomanager.New(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	if err := repos.RunMigrations(ctx); err != nil {
		_ = repos.Close(ctx)
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	if c.TokenValidityDuration == 0 {
		logger.Warn(ctx, "token validity is zero, session tokens will never expire")
	}

	return &App{
		config:  c,
		logger:  logger,
		repos:   repos,
		users:   services.NewUserService(repos, c, logger),
		listing: services.NewListingService(repos, logger),
		media:   services.NewMediaService(c),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", sig.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := rest.NewServer(app.config, app.logger, app.users, app.listing, app.media)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "HTTP server failed", "error", err)
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the storage backend.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.StorageDriver)

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := app.repos.Close(closeCtx); err != nil {
		app.logger.Error(ctx, "closing storage", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
