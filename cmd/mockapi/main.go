package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-lms-sync/internal/config"
	"github.com/MKhiriev/go-lms-sync/internal/fixtures"
	"github.com/MKhiriev/go-lms-sync/internal/handler"
	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/internal/server"
	"github.com/MKhiriev/go-lms-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetMockAPIConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("lms-mockapi", "info").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("lms-mockapi", cfg.LogLevel)
	log.Debug().
		Str("address", cfg.HTTPAddress).
		Str("fixtures", cfg.FixturesPath).
		Int("per_page", cfg.PerPage).
		Bool("auth", cfg.AccessToken != "").
		Msg("received configs")

	set, err := fixtures.Load(cfg.FixturesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading fixtures")
	}

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	handlers, err := handler.NewHandlers(set, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers.HTTP.Init(), *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
