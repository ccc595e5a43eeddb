package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/namsral/flag"
	log "github.com/sirupsen/logrus"
)

// DefaultListenAddress is used when no -listen-http flag is given.
const DefaultListenAddress = "0.0.0.0:8000"

// Config stores all the config options relevant to the caish-website
// server.
type Config struct {
	General General
	Server  Server
	Log     Log
	Sentry  Sentry

	// ListenHTTPStrings contains the raw strings passed for listen-http.
	// appMain uses them to create the listeners.
	ListenHTTPStrings MultiStringFlag
}

// General groups settings that can not be categorized under other heads.
type General struct {
	RootDir        string
	MaxConns       int
	MaxURILength   int
	MetricsAddress string
	StatusPath     string

	DisableCrossOriginRequests bool
	PropagateCorrelationID     bool

	ShowVersion bool

	CustomHeaders []string
}

// Server groups settings related to configuring the HTTP server.
type Server struct {
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	ListenKeepAlive   time.Duration
	ShutdownTimeout   time.Duration
}

// Log groups settings related to configuring logging.
type Log struct {
	Format  string
	Verbose bool
}

// Sentry groups settings related to configuring Sentry.
type Sentry struct {
	DSN         string
	Environment string
}

// rootDirFromFlags returns the directory to serve, as an absolute path.
// Without a -root flag the server serves the directory its own
// executable lives in.
func rootDirFromFlags() (string, error) {
	if *siteRoot != "" {
		rootDir, err := filepath.Abs(*siteRoot)
		if err != nil {
			return "", fmt.Errorf("resolving root directory: %w", err)
		}

		return rootDir, nil
	}

	executable, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating server executable: %w", err)
	}

	return filepath.Dir(executable), nil
}

func loadConfig() (*Config, error) {
	config := &Config{
		General: General{
			MaxConns:                   *maxConns,
			MaxURILength:               *maxURILength,
			MetricsAddress:             *metricsAddress,
			StatusPath:                 *statusPath,
			DisableCrossOriginRequests: *disableCrossOriginRequests,
			PropagateCorrelationID:     *propagateCorrelationID,
			CustomHeaders:              header.Split(),
			ShowVersion:                *showVersion,
		},
		Server: Server{
			ReadTimeout:       *serverReadTimeout,
			ReadHeaderTimeout: *serverReadHeaderTimeout,
			WriteTimeout:      *serverWriteTimeout,
			ListenKeepAlive:   *serverKeepAlive,
			ShutdownTimeout:   *serverShutdownTimeout,
		},
		Log: Log{
			Format:  *logFormat,
			Verbose: *logVerbose,
		},
		Sentry: Sentry{
			DSN:         *sentryDSN,
			Environment: *sentryEnvironment,
		},

		// Actual listeners are created in appMain. We populate the raw
		// strings here so that they are available there.
		ListenHTTPStrings: listenHTTP,
	}

	if config.ListenHTTPStrings.Len() == 0 {
		config.ListenHTTPStrings.Set(DefaultListenAddress)
	}

	var err error
	if config.General.RootDir, err = rootDirFromFlags(); err != nil {
		return nil, err
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// LogConfig emits the effective settings at debug level.
func LogConfig(config *Config) {
	log.WithFields(log.Fields{
		"default-config-filename":       flag.DefaultConfigFlagname,
		"disable-cross-origin-requests": *disableCrossOriginRequests,
		"header":                        header.String(),
		"listen-http":                   config.ListenHTTPStrings.String(),
		"log-format":                    *logFormat,
		"log-verbose":                   *logVerbose,
		"max-conns":                     config.General.MaxConns,
		"max-uri-length":                config.General.MaxURILength,
		"metrics-address":               config.General.MetricsAddress,
		"propagate-correlation-id":      config.General.PropagateCorrelationID,
		"root":                          config.General.RootDir,
		"server-read-timeout":           config.Server.ReadTimeout,
		"server-read-header-timeout":    config.Server.ReadHeaderTimeout,
		"server-write-timeout":          config.Server.WriteTimeout,
		"server-keep-alive":             config.Server.ListenKeepAlive,
		"server-shutdown-timeout":       config.Server.ShutdownTimeout,
		"status-path":                   config.General.StatusPath,
	}).Debug("Start server with configuration")
}

// LoadConfig parses configuration settings passed as command line
// arguments or via config file, and populates a Config object with those
// values.
func LoadConfig() (*Config, error) {
	initFlags()

	return loadConfig()
}
