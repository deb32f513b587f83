package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from args.
//
// Flags:
//
//	-d local database DSN
//	-a LMS base address
//	-token LMS access token
//	-request-timeout API request timeout (e.g., "30s", "1m")
//	-per-page page size for paginated endpoints
//	-retries retry count for failed API requests
//	-sync-interval background sync period (e.g., "5m")
//	-log-level log level name
//	-log-file client log file path
//	-ipc enable the debug IPC bridge
//	-ipc-id IPC channel id
//	-ipc-dir IPC socket directory
//	-ipc-connect-timeout IPC client connect deadline
//	-ipc-forward forward API requests to the UI-test driver
//	-listen mock API server address in format [host]:[port]
//	-fixtures fixture file path
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("lms", flag.ContinueOnError)

	var listenAddress NetAddress
	var databaseDSN, adapterAddress, accessToken string
	var requestTimeout, syncInterval, ipcConnectTimeout time.Duration
	var perPage, retries int
	var logLevel, logFile string
	var ipcEnabled, ipcForward bool
	var ipcID, ipcDir string
	var fixturesPath, jsonConfigPath string

	fs.StringVar(&databaseDSN, "d", "", "Local database DSN")
	fs.StringVar(&adapterAddress, "a", "", "LMS base address")
	fs.StringVar(&accessToken, "token", "", "LMS access token")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.IntVar(&perPage, "per-page", 0, "Page size for paginated endpoints")
	fs.IntVar(&retries, "retries", 0, "Retry count for failed API requests")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.BoolVar(&ipcEnabled, "ipc", false, "Enable debug IPC bridge")
	fs.StringVar(&ipcID, "ipc-id", "", "IPC channel id")
	fs.StringVar(&ipcDir, "ipc-dir", "", "IPC socket directory")
	fs.DurationVar(&ipcConnectTimeout, "ipc-connect-timeout", 0, "IPC connect deadline")
	fs.BoolVar(&ipcForward, "ipc-forward", false, "Forward API requests to the UI-test driver")
	fs.Var(&listenAddress, "listen", "Mock API address host:port")
	fs.StringVar(&fixturesPath, "fixtures", "", "Fixture file path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
			LogFile:  logFile,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			AccessToken:    accessToken,
			RequestTimeout: requestTimeout,
			PerPage:        perPage,
			Retries:        retries,
		},
		Workers: Workers{SyncInterval: syncInterval},
		IPC: IPC{
			Enabled:         ipcEnabled,
			ID:              ipcID,
			SocketDir:       ipcDir,
			ConnectTimeout:  ipcConnectTimeout,
			ForwardRequests: ipcForward,
		},
		Server: Server{
			HTTPAddress:  listenAddress.String(),
			FixturesPath: fixturesPath,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
