package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-lms-sync/internal/adapter"
	"github.com/MKhiriev/go-lms-sync/internal/client"
	"github.com/MKhiriev/go-lms-sync/internal/config"
	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/internal/service"
	"github.com/MKhiriev/go-lms-sync/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("lms-client", "info").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("lms-client", cfg.App.LogLevel, cfg.App.LogFile)
	ctx := log.WithContext(context.Background())

	localStorage, err := store.NewClientStorage(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	var opts []adapter.Option
	if cfg.IPC.Enabled && cfg.IPC.ForwardRequests {
		transport, err := client.NewForwardingTransport(cfg.IPC, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create forwarding transport")
		}
		defer transport.Client.Close()
		opts = append(opts, adapter.WithTransport(transport))
	}

	api, err := adapter.NewAPIClient(cfg.Adapter, log, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("create LMS adapter")
	}

	services := service.NewServices(localStorage, api, log)

	app, err := client.NewApp(localStorage, services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Error().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
