package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	mimedb "gitlab.com/gitlab-org/go-mimedb"
	"gitlab.com/gitlab-org/labkit/errortracking"

	"github.com/y-arjun-y/caish-website/internal/config"
	"github.com/y-arjun-y/caish-website/internal/logging"
	"github.com/y-arjun-y/caish-website/metrics"
)

// VERSION stores the information about the semantic version of application
var VERSION = "dev"

// REVISION stores the information about the git revision of application
var REVISION = "HEAD"

func initErrorReporting(sentryDSN, sentryEnvironment string) {
	errortracking.Initialize(
		errortracking.WithSentryDSN(sentryDSN),
		errortracking.WithVersion(fmt.Sprintf("%s-%s", VERSION, REVISION)),
		errortracking.WithLoggerName("caish-website"),
		errortracking.WithSentryEnvironment(sentryEnvironment))
}

func appMain() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fatal(err, "invalid configuration")
	}

	printVersion(cfg.General.ShowVersion, VERSION)

	if err := logging.ConfigureLogging(cfg.Log.Format, cfg.Log.Verbose); err != nil {
		fatal(err, "failed to initialize logging")
	}

	if cfg.Sentry.DSN != "" {
		initErrorReporting(cfg.Sentry.DSN, cfg.Sentry.Environment)
	}

	config.LogConfig(cfg)

	log.WithFields(log.Fields{
		"version":  VERSION,
		"revision": REVISION,
	}).Print("caish-website")

	if err := mimedb.LoadTypes(); err != nil {
		log.WithError(err).Fatal("Loading extended MIME database failed")
	}

	addExtraMIMETypes()

	runApp(cfg)
}

func printVersion(showVersion bool, version string) {
	if showVersion {
		fmt.Fprintf(os.Stdout, "%s\n", version)
		os.Exit(0)
	}
}

func main() {
	log.SetOutput(os.Stderr)

	metrics.MustRegister()

	appMain()
}
