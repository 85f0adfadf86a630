package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/tui"
	turinghttp "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ShutdownTimeout bounds how long in-flight requests may take after the
// server is asked to stop.
const ShutdownTimeout = 5 * time.Second

// ServeOptions configures the HTTP API.
type ServeOptions struct {
	Addr       string
	Watch      bool
	SessionTTL time.Duration
	MaxSteps   int
}

// Service is the HTTP API with its workspace, metrics and sessions wired.
type Service struct {
	Workspace *Workspace
	API       *turinghttp.Server
	Metrics   *prometheus.Registry

	opts ServeOptions
}

// NewService opens the workspace of cfg with the run metrics attached to
// every machine, and builds the API over it.
func NewService(cfg Config, opts ServeOptions) (*Service, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	ws, err := Open(cfg, turing.WithLifecycleHooks(metrics.Hooks()))
	if err != nil {
		return nil, err
	}

	sessions, err := ws.serverSessions(opts.SessionTTL)
	if err != nil {
		_ = ws.Close()
		return nil, err
	}

	apiOpts := []turinghttp.Option{
		turinghttp.WithSessions(sessions),
		turinghttp.WithGatherer(reg),
		turinghttp.WithLogger(ws.Logger),
	}
	if opts.MaxSteps > 0 {
		apiOpts = append(apiOpts, turinghttp.WithMaxSteps(opts.MaxSteps))
	}
	api, err := turinghttp.NewServer(ws.Registry, apiOpts...)
	if err != nil {
		_ = ws.Close()
		return nil, err
	}

	ws.Registry.OnChange(api.NotifyReload)
	return &Service{Workspace: ws, API: api, Metrics: reg, opts: opts}, nil
}

// Close releases the workspace.
func (s *Service) Close() error {
	return s.Workspace.Close()
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
// With Watch set, definition changes clear the machine cache and are
// pushed to event subscribers.
func (s *Service) ListenAndServe(ctx context.Context) error {
	if s.opts.Watch {
		if err := s.Workspace.watch(ctx); err != nil {
			return fmt.Errorf("failed to watch definitions: %w", err)
		}
	}

	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.API.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.Workspace.Logger.Info("server listening", "addr", srv.Addr, "dir", s.Workspace.Config.Dir)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.Workspace.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.Workspace.Logger.Warn("graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
		return srv.Close()
	}
	return nil
}

// Serve runs the HTTP API until ctx is done. The banner goes to banner
// when it is not nil.
func Serve(ctx context.Context, cfg Config, opts ServeOptions, banner io.Writer) error {
	svc, err := NewService(cfg, opts)
	if err != nil {
		return err
	}
	defer svc.Close()

	if banner != nil {
		printBanner(banner)
		fmt.Fprintf(banner, "Serving machines from %s on %s\n", cfg.Dir, opts.Addr)
	}
	return svc.ListenAndServe(ctx)
}

func printBanner(w io.Writer) {
	_, profile, _ := prettyOutput(w, nil)
	tui.PrintBanner(w, profile)
	fmt.Fprintf(w, "turing %s\n", turing.Version)
}
