// Package cli holds the wiring shared by the turing commands: logger setup,
// definition loading and the long-running service modes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/loam"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/registry"
)

// Definition sources.
const (
	SourceFile = "file"
	SourceLoam = "loam"
)

// DefaultLogLevel keeps run hooks off stderr unless asked for.
const DefaultLogLevel = "warn"

// SessionKeyEnv names the variable read when --session-key is not given.
const SessionKeyEnv = "TURING_SESSION_KEY"

// ErrUnknownSource is returned for a --source value other than file or loam.
var ErrUnknownSource = errors.New("unknown definition source")

// Config holds the settings shared by every command.
type Config struct {
	Dir      string
	Source   string
	LogLevel string
	LogFile  string
	RedisURL string

	// SessionKey seals stored sessions with AES-256-GCM when set.
	SessionKey string
}

// Logger builds the application logger. Records go to stderr and, when
// LogFile is set, also to that file as JSON.
func (c Config) Logger() (*slog.Logger, io.Closer, error) {
	lvl := c.LogLevel
	if lvl == "" {
		lvl = DefaultLogLevel
	}
	level, err := logging.ParseLevel(lvl)
	if err != nil {
		return nil, nil, err
	}
	if c.LogFile == "" {
		return logging.New(level), io.NopCloser(nil), nil
	}
	h, closer, err := logging.FileHandler(c.LogFile, level)
	if err != nil {
		return nil, nil, err
	}
	return logging.New(level, h), closer, nil
}

// Workspace is a definitions directory opened with the shared conventions.
type Workspace struct {
	Config   Config
	Logger   *slog.Logger
	Loader   ports.DefinitionLoader
	Registry *registry.Registry

	machOpts []turing.Option
	closer   io.Closer
}

// Open builds the logger, the loader for cfg.Source and a registry over it.
// Extra options are applied to every machine, after the logging hooks.
func Open(cfg Config, opts ...turing.Option) (*Workspace, error) {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	logger, closer, err := cfg.Logger()
	if err != nil {
		return nil, err
	}

	loader, err := openLoader(cfg, logger)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	machOpts := append([]turing.Option{
		turing.WithLogger(logger),
		turing.WithLifecycleHooks(observability.LogHooks(logger)),
	}, opts...)

	return &Workspace{
		Config: cfg,
		Logger: logger,
		Loader: loader,
		Registry: registry.New(loader,
			registry.WithMachineOptions(machOpts...),
			registry.WithLogger(logger),
		),
		machOpts: machOpts,
		closer:   closer,
	}, nil
}

func openLoader(cfg Config, logger *slog.Logger) (ports.DefinitionLoader, error) {
	switch cfg.Source {
	case "", SourceFile:
		return file.New(cfg.Dir, file.WithLogger(logger))
	case SourceLoam:
		return loam.Open(cfg.Dir)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
}

// Close releases the log file, if any.
func (w *Workspace) Close() error {
	return w.closer.Close()
}

// Machine resolves ref as a definition file when one exists at that path,
// and as a machine name in the workspace otherwise.
func (w *Workspace) Machine(ctx context.Context, ref string) (*turing.Machine, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		def, err := file.LoadFile(ref)
		if err != nil {
			return nil, err
		}
		return turing.New(def, w.machOpts...)
	}
	return w.Registry.Machine(ctx, ref)
}

// watch starts the registry watcher unless the loader cannot report changes.
func (w *Workspace) watch(ctx context.Context) error {
	err := w.Registry.Watch(ctx)
	if errors.Is(err, registry.ErrNotWatchable) {
		w.Logger.Warn("definition source does not support watching", "source", w.Config.Source)
		return nil
	}
	return err
}
