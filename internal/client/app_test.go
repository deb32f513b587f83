package client

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-lms-sync/internal/config"
	"github.com/MKhiriev/go-lms-sync/internal/ipc"
	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/internal/mock"
	"github.com/MKhiriev/go-lms-sync/internal/service"
	"github.com/MKhiriev/go-lms-sync/internal/store"
	"github.com/MKhiriev/go-lms-sync/internal/uitest"
	"github.com/MKhiriev/go-lms-sync/models"
)

type testApp struct {
	app      *App
	sync     *mock.MockSyncService
	job      *mock.MockSyncJob
	dbExpect sqlmock.Sqlmock
}

func newTestApp(t *testing.T, cfg config.ClientConfig) *testApp {
	t.Helper()
	ctrl := gomock.NewController(t)

	conn, dbExpect, err := sqlmock.New()
	require.NoError(t, err)
	dbExpect.ExpectClose()

	syncSvc := mock.NewMockSyncService(ctrl)
	job := mock.NewMockSyncJob(ctrl)
	services := &service.Services{SyncService: syncSvc, SyncJob: job}

	app, err := NewApp(store.NewDB(conn, logger.Nop()), services, cfg, logger.Nop())
	require.NoError(t, err)

	return &testApp{app: app, sync: syncSvc, job: job, dbExpect: dbExpect}
}

// runUntilStarted runs the app until the sync job has been started, then
// stops it and returns the result of run.
func (a *testApp) runUntilStarted(t *testing.T, whileRunning func()) error {
	t.Helper()
	started := make(chan struct{})
	a.job.EXPECT().Start(gomock.Any(), time.Minute).Do(func(context.Context, time.Duration) { close(started) })
	a.job.EXPECT().Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- a.app.run(ctx) }()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("sync job was not started")
	}
	if whileRunning != nil {
		whileRunning()
	}
	cancel()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
		return nil
	}
}

func TestApp_Run(t *testing.T) {
	a := newTestApp(t, config.ClientConfig{Workers: config.ClientWorkers{SyncInterval: time.Minute}})
	a.sync.EXPECT().FullSync(gomock.Any()).Return(service.SyncReport{Passes: 4}, nil)

	require.NoError(t, a.runUntilStarted(t, nil))
	assert.NoError(t, a.dbExpect.ExpectationsWereMet())
}

// TestApp_Run_InitialSyncFails verifies that a failed initial sync does not
// keep the app from starting.
func TestApp_Run_InitialSyncFails(t *testing.T) {
	a := newTestApp(t, config.ClientConfig{Workers: config.ClientWorkers{SyncInterval: time.Minute}})
	a.sync.EXPECT().FullSync(gomock.Any()).Return(service.SyncReport{}, errors.New("offline"))

	require.NoError(t, a.runUntilStarted(t, nil))
}

func TestApp_Run_ServesHelpers(t *testing.T) {
	dir, err := os.MkdirTemp("", "client")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	cfg := config.ClientConfig{
		Workers: config.ClientWorkers{SyncInterval: time.Minute},
		IPC:     config.ClientIPC{Enabled: true, ID: "run-1", SocketDir: dir},
	}
	a := newTestApp(t, cfg)
	gomock.InOrder(
		a.sync.EXPECT().FullSync(gomock.Any()).Return(service.SyncReport{Passes: 4}, nil),
		a.sync.EXPECT().FullSync(gomock.Any()).Return(service.SyncReport{Passes: 2}, nil),
	)

	err = a.runUntilStarted(t, func() {
		c, err := ipc.NewClient(ipc.AppChannel("run-1"), 2*time.Second, ipc.WithSocketDir(dir))
		require.NoError(t, err)
		defer c.Close()

		reply, err := c.RequestRemote(context.Background(), models.Helper{Name: models.HelperSync})
		require.NoError(t, err)

		var result uitest.Result
		require.NoError(t, json.Unmarshal(reply, &result))
		assert.True(t, result.OK)
		assert.JSONEq(t, `{"passes":2}`, string(result.Data))
	})
	require.NoError(t, err)

	// сокет удаляется при остановке
	_, err = os.Stat(ipc.SocketPath(dir, ipc.AppChannel("run-1")))
	assert.True(t, os.IsNotExist(err))
}

func TestNewForwardingTransport(t *testing.T) {
	transport, err := NewForwardingTransport(config.ClientIPC{ID: "run-1", SocketDir: t.TempDir(), ConnectTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, transport.Client)
	assert.NoError(t, transport.Client.Close())
}
