package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/MKhiriev/go-lms-sync/internal/config"
	"github.com/MKhiriev/go-lms-sync/internal/fixtures"
	"github.com/MKhiriev/go-lms-sync/internal/handler"
	"github.com/MKhiriev/go-lms-sync/internal/ipc"
	"github.com/MKhiriev/go-lms-sync/internal/uitest"
	"github.com/MKhiriev/go-lms-sync/internal/workers"
	"github.com/MKhiriev/go-lms-sync/models"
)

// runHelper sends one helper to the app and prints its JSON result. A helper
// that reports a failure exits with status 1.
func runHelper(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return cli.Exit("helper name is required", 2)
	}

	var args json.RawMessage
	if raw := c.Args().Get(1); raw != "" {
		if !json.Valid([]byte(raw)) {
			return cli.Exit(fmt.Sprintf("helper args are not valid JSON: %s", raw), 2)
		}
		args = json.RawMessage(raw)
	}

	cfg, log, err := loadConfig(c)
	if err != nil {
		return err
	}

	client, err := ipc.NewClient(
		ipc.AppChannel(cfg.IPC.ID),
		cfg.IPC.ConnectTimeout,
		ipc.WithSocketDir(cfg.IPC.SocketDir),
		ipc.WithLogger(log),
	)
	if err != nil {
		return err
	}
	defer client.Close()

	reply, err := client.RequestRemote(c.Context, models.Helper{Name: models.HelperName(name), Args: args})
	var bridgeErr *ipc.Error
	if errors.As(err, &bridgeErr) {
		return fmt.Errorf("%w (%s)", err, connectTimeoutHint)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, string(reply))

	var result uitest.Result
	if err = json.Unmarshal(reply, &result); err != nil {
		return fmt.Errorf("decode helper result: %w", err)
	}
	if !result.OK {
		return cli.Exit(result.Error, 1)
	}
	return nil
}

// serve runs the driver channel until SIGTERM, SIGINT or SIGQUIT.
func serve(c *cli.Context) error {
	cfg, log, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.FixturesPath == "" {
		return cli.Exit("--fixtures is required", 2)
	}

	set, err := fixtures.Load(cfg.FixturesPath)
	if err != nil {
		return err
	}

	apiCfg := config.MockAPIConfig{
		LogLevel:     cfg.LogLevel,
		FixturesPath: cfg.FixturesPath,
		PerPage:      c.Int("per-page"),
		AccessToken:  c.String("token"),
	}
	handlers, err := handler.NewHandlers(set, apiCfg, buildInfo(), log)
	if err != nil {
		return err
	}

	srv, err := ipc.NewDriverServer(
		cfg.IPC.ID,
		handlers.Driver,
		ipc.WithSocketDir(cfg.IPC.SocketDir),
		ipc.WithLogger(log),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	bridge := workers.NewBridgeWorker(srv, log)
	bridge.Run(ctx)
	<-ctx.Done()
	bridge.Stop()

	log.Info().Int("requests", len(handlers.Driver.Requests())).Msg("driver stopped")
	return nil
}
