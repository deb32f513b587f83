package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/MKhiriev/go-lms-sync/internal/config"
	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "print the version",
	}

	app := &cli.App{
		Name:    "lms-driver",
		Usage:   "UI-test driver for the LMS client debug bridge",
		Version: buildVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "id",
				Usage:   "Test run or device id the channel names derive from",
				EnvVars: []string{"IPC_ID"},
			},
			&cli.StringFlag{
				Name:  "socket-dir",
				Usage: "Directory holding the channel sockets",
			},
			&cli.DurationFlag{
				Name:  "connect-timeout",
				Usage: "How long to wait for the app to come up",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "JSON file with configs",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Print detailed version information",
				Action: func(c *cli.Context) error {
					fmt.Printf("Build version: %s\n", buildVersion)
					fmt.Printf("Build date: %s\n", buildDate)
					fmt.Printf("Build commit: %s\n", buildCommit)
					return nil
				},
			},
			{
				Name:      "helper",
				Usage:     "Run a UI-test helper inside the app",
				ArgsUsage: "<name> [args-json]",
				Action:    runHelper,
			},
			{
				Name:  "serve",
				Usage: "Answer the app's forwarded API requests from fixtures",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "fixtures",
						Usage: "Fixture file path",
					},
					&cli.StringFlag{
						Name:  "token",
						Usage: "Access token the fixtures are served for",
					},
					&cli.IntFlag{
						Name:  "per-page",
						Usage: "Default page size of paginated endpoints",
					},
				},
				Action: serve,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.NewLogger("lms-driver", "info").Fatal().Err(err).Send()
	}
}

// loadConfig merges the global flags with env and the optional JSON file.
func loadConfig(c *cli.Context) (*config.DriverConfig, *logger.Logger, error) {
	overrides := &config.StructuredConfig{
		App: config.App{LogLevel: c.String("log-level")},
		IPC: config.IPC{
			ID:             c.String("id"),
			SocketDir:      c.String("socket-dir"),
			ConnectTimeout: c.Duration("connect-timeout"),
		},
		Server:       config.Server{FixturesPath: c.String("fixtures")},
		JSONFilePath: c.String("config"),
	}

	cfg, err := config.GetDriverConfig(overrides)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.NewLogger("lms-driver", cfg.LogLevel), nil
}

func buildInfo() models.AppBuildInfo {
	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}

// connectTimeoutHint is shown when the app never opened its channel.
const connectTimeoutHint = "is the app running with -ipc and the same -ipc-id?"
