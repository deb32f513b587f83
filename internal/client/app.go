package client

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-lms-sync/internal/config"
	"github.com/MKhiriev/go-lms-sync/internal/ipc"
	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/internal/service"
	"github.com/MKhiriev/go-lms-sync/internal/store"
	"github.com/MKhiriev/go-lms-sync/internal/uitest"
	"github.com/MKhiriev/go-lms-sync/internal/workers"
)

type App struct {
	db       *store.DB
	services *service.Services
	workers  *workers.Workers
	logger   *logger.Logger
}

// NewApp assembles the client runtime. With cfg.IPC.Enabled the app also
// serves UI-test helpers on the app channel of cfg.IPC.ID; helpers run one
// at a time on a dedicated queue.
func NewApp(db *store.DB, services *service.Services, cfg config.ClientConfig, logger *logger.Logger) (*App, error) {
	ws := []workers.Worker{workers.NewSyncWorker(services.SyncJob, cfg.Workers.SyncInterval)}

	if cfg.IPC.Enabled {
		queue := ipc.NewMainQueue()
		server, err := ipc.NewAppServer(
			cfg.IPC.ID,
			uitest.NewHelpers(db, services.SyncService),
			ipc.WithSocketDir(cfg.IPC.SocketDir),
			ipc.WithLogger(logger),
			ipc.WithDispatcher(queue),
		)
		switch {
		case errors.Is(err, ipc.ErrDisabled):
			logger.Warn().Msg("IPC bridge is not available in release builds")
		case err != nil:
			return nil, fmt.Errorf("create IPC app server: %w", err)
		default:
			ws = append(ws, workers.NewQueueWorker(queue), workers.NewBridgeWorker(server, logger))
		}
	}

	return &App{
		db:       db,
		services: services,
		workers:  workers.NewWorkers(ws...),
		logger:   logger,
	}, nil
}

// NewForwardingTransport returns the API transport of a UI-test run: every
// request is offered to the driver of cfg.ID before it goes to the network.
// The caller closes the returned transport's Client.
func NewForwardingTransport(cfg config.ClientIPC, logger *logger.Logger) (*ipc.ForwardingTransport, error) {
	c, err := ipc.NewClient(
		ipc.DriverChannel(cfg.ID),
		cfg.ConnectTimeout,
		ipc.WithSocketDir(cfg.SocketDir),
		ipc.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create driver client: %w", err)
	}
	return &ipc.ForwardingTransport{Client: c}, nil
}

// Run blocks until SIGTERM, SIGINT or SIGQUIT.
func (a *App) Run() error {
	return a.run(context.Background())
}

func (a *App) run(parent context.Context) error {
	ctx, stop := signal.NotifyContext(
		parent,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()
	ctx = a.logger.WithContext(ctx)

	report, err := a.services.SyncService.FullSync(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("initial sync failed")
	}
	a.logger.Info().
		Int("passes", report.Passes).
		Int("item_errors", len(report.ItemErrors)).
		Msg("initial sync finished")

	a.workers.Run(ctx)
	<-ctx.Done()

	a.logger.Info().Msg("shutting down")
	a.workers.Stop()

	if err = a.db.Close(); err != nil {
		return fmt.Errorf("close local storage: %w", err)
	}
	return nil
}
