// Package registry serves validated machines by name, compiling each
// definition from a loader once and caching the result.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// ErrNotWatchable is returned by Watch when the loader cannot report changes.
var ErrNotWatchable = errors.New("loader does not support watching")

// Registry implements ports.MachineProvider on top of a DefinitionLoader.
// Machines registered directly take precedence over loaded ones.
// Safe for concurrent use.
type Registry struct {
	loader   ports.DefinitionLoader
	machOpts []turing.Option
	logger   *slog.Logger

	mu       sync.RWMutex
	cache    map[string]*turing.Machine
	pinned   map[string]*turing.Machine
	onChange []func(name string)
}

// Option configures the Registry.
type Option func(*Registry)

// WithMachineOptions passes options to every machine the registry builds,
// e.g. logging or metrics hooks.
func WithMachineOptions(opts ...turing.Option) Option {
	return func(r *Registry) {
		r.machOpts = append(r.machOpts, opts...)
	}
}

// WithLogger configures a logger for the Registry.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates a registry. loader may be nil for a registry that only
// serves machines added with Register.
func New(loader ports.DefinitionLoader, opts ...Option) *Registry {
	r := &Registry{
		loader: loader,
		logger: logging.NewNop(),
		cache:  make(map[string]*turing.Machine),
		pinned: make(map[string]*turing.Machine),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register validates def and serves it under def.Name, shadowing any
// loaded definition of the same name.
func (r *Registry) Register(def domain.Definition) (*turing.Machine, error) {
	if def.Name == "" {
		return nil, errors.New("definition missing name")
	}
	m, err := turing.New(def, r.machOpts...)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.pinned[def.Name] = m
	r.mu.Unlock()
	return m, nil
}

// Machine returns the machine registered under name, building it on first use.
func (r *Registry) Machine(ctx context.Context, name string) (*turing.Machine, error) {
	r.mu.RLock()
	m, ok := r.pinned[name]
	if !ok {
		m, ok = r.cache[name]
	}
	r.mu.RUnlock()
	if ok {
		return m, nil
	}

	if r.loader == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	def, err := r.loader.GetDefinition(ctx, name)
	if err != nil {
		return nil, err
	}
	def.Name = name

	m, err = turing.New(def, r.machOpts...)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if cached, ok := r.cache[name]; ok {
		m = cached
	} else {
		r.cache[name] = m
	}
	r.mu.Unlock()

	r.logger.Debug("machine compiled", "machine", name)
	return m, nil
}

// Names lists registered and loadable machine names, sorted.
func (r *Registry) Names(ctx context.Context) ([]string, error) {
	set := make(map[string]struct{})
	if r.loader != nil {
		names, err := r.loader.ListDefinitions(ctx)
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			set[n] = struct{}{}
		}
	}
	r.mu.RLock()
	for n := range r.pinned {
		set[n] = struct{}{}
	}
	r.mu.RUnlock()
	return slices.Sorted(maps.Keys(set)), nil
}

// ValidateAll builds every loadable machine and returns the failures by name.
func (r *Registry) ValidateAll(ctx context.Context) (map[string]error, error) {
	names, err := r.Names(ctx)
	if err != nil {
		return nil, err
	}
	failures := make(map[string]error)
	for _, name := range names {
		if _, err := r.Machine(ctx, name); err != nil {
			failures[name] = err
		}
	}
	return failures, nil
}

// Invalidate drops the cached machine for name.
func (r *Registry) Invalidate(name string) {
	r.mu.Lock()
	delete(r.cache, name)
	r.mu.Unlock()
}

// InvalidateAll drops every cached machine.
func (r *Registry) InvalidateAll() {
	r.mu.Lock()
	clear(r.cache)
	r.mu.Unlock()
}

// OnChange registers a callback invoked after the cache is invalidated by
// Watch.
func (r *Registry) OnChange(fn func(name string)) {
	r.mu.Lock()
	r.onChange = append(r.onChange, fn)
	r.mu.Unlock()
}

// Watch subscribes to loader changes and invalidates the cache on every
// event until ctx is done. A change event names a source, which need not
// be the machine name, so the whole cache is dropped.
func (r *Registry) Watch(ctx context.Context) error {
	w, ok := r.loader.(ports.Watchable)
	if !ok {
		return ErrNotWatchable
	}
	events, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	go func() {
		for name := range events {
			r.InvalidateAll()
			r.logger.Info("definitions changed, cache cleared", "source", name)

			r.mu.RLock()
			callbacks := slices.Clone(r.onChange)
			r.mu.RUnlock()
			for _, fn := range callbacks {
				fn(name)
			}
		}
	}()
	return nil
}
