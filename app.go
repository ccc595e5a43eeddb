package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"gitlab.com/gitlab-org/labkit/correlation"
	"golang.org/x/sync/errgroup"

	"github.com/y-arjun-y/caish-website/internal/cleanurl"
	"github.com/y-arjun-y/caish-website/internal/config"
	"github.com/y-arjun-y/caish-website/internal/customheaders"
	"github.com/y-arjun-y/caish-website/internal/handlers"
	"github.com/y-arjun-y/caish-website/internal/healthcheck"
	"github.com/y-arjun-y/caish-website/internal/logging"
	"github.com/y-arjun-y/caish-website/internal/rejectmethods"
	"github.com/y-arjun-y/caish-website/internal/serving"
	"github.com/y-arjun-y/caish-website/internal/urilimiter"
	"github.com/y-arjun-y/caish-website/metrics"
)

type theApp struct {
	config *config.Config
}

// buildHandlerPipeline wraps the disk serving core with the middleware
// stack. Handlers are applied from the inside out.
func (a *theApp) buildHandlerPipeline() (http.Handler, error) {
	handler := http.Handler(serving.New(a.config.General.RootDir))

	handler = cleanurl.NewMiddleware(handler, a.config.General.RootDir)

	// a failing request must never take the server down
	handler = ghandlers.RecoveryHandler(
		ghandlers.RecoveryLogger(log.StandardLogger()),
		ghandlers.PrintRecoveryStack(true),
	)(handler)

	customHeaders, err := customheaders.ParseHeaderString(a.config.General.CustomHeaders)
	if err != nil {
		return nil, err
	}

	handler = customheaders.NewMiddleware(handler, customHeaders)

	handler, err = logging.BasicAccessLogger(handler, a.config.Log.Format)
	if err != nil {
		return nil, err
	}

	handler = promhttp.InstrumentHandlerCounter(metrics.RequestsTotal, handler)
	handler = promhttp.InstrumentHandlerInFlight(metrics.SessionsActive, handler)

	handler = handlers.CorsHandler(a.config, handler)

	if a.config.General.StatusPath != "" {
		handler = healthcheck.NewMiddleware(handler, a.config.General.StatusPath)
	}

	handler = urilimiter.NewMiddleware(handler, a.config.General.MaxURILength)

	handler = rejectmethods.NewMiddleware(handler)

	if a.config.General.PropagateCorrelationID {
		handler = correlation.InjectCorrelationID(handler, correlation.WithPropagation(), correlation.WithSetResponseHeader())
	} else {
		handler = correlation.InjectCorrelationID(handler, correlation.WithSetResponseHeader())
	}

	return handler, nil
}

// Run serves the handler pipeline on every configured listener until an
// interrupt or termination signal arrives, then drains the servers.
func (a *theApp) Run() error {
	handler, err := a.buildHandlerPipeline()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)

	var servers []*http.Server

	for _, addr := range a.config.ListenHTTPStrings.Split() {
		l, err := a.newListener(addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %q: %w", addr, err)
		}

		server := a.newServer(handler)
		servers = append(servers, server)

		log.WithFields(log.Fields{
			"listener": l.Addr().String(),
		}).Debug("Set up HTTP listener")

		fmt.Fprintf(os.Stdout, "Serving at http://%s\n", advertisedAddress(l))

		eg.Go(func() error {
			return ignoreServerClosed(server.Serve(l))
		})
	}

	if addr := a.config.General.MetricsAddress; addr != "" {
		l, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %q: %w", addr, err)
		}

		router := mux.NewRouter()
		router.Handle("/metrics", promhttp.Handler())

		server := &http.Server{Handler: router}
		servers = append(servers, server)

		log.WithFields(log.Fields{
			"listener": l.Addr().String(),
		}).Debug("Set up metrics listener")

		eg.Go(func() error {
			return ignoreServerClosed(server.Serve(l))
		})
	}

	eg.Go(func() error {
		<-ctx.Done()

		return a.shutdown(servers)
	})

	fmt.Fprintln(os.Stdout, "Press Ctrl+C to stop")

	return eg.Wait()
}

// shutdown drains every server, bounded by the configured timeout.
func (a *theApp) shutdown(servers []*http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	var result *multierror.Error
	for _, server := range servers {
		if err := server.Shutdown(ctx); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

func ignoreServerClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// advertisedAddress translates the listener address into something a
// browser can open: wildcard hosts become localhost.
func advertisedAddress(l net.Listener) string {
	addr := l.Addr().String()

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	switch host {
	case "", "::", "0.0.0.0":
		host = "localhost"
	}

	return net.JoinHostPort(host, port)
}

func runApp(cfg *config.Config) {
	a := theApp{config: cfg}

	if err := a.Run(); err != nil {
		capturingFatal(err)
	}
}
