package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// Loader implements ports.DefinitionLoader and ports.Watchable using an
// in-memory map keyed by definition name.
// Safe for concurrent use.
type Loader struct {
	mu       sync.RWMutex
	defs     map[string]domain.Definition
	watchers []chan string
}

// NewLoader creates a loader holding defs. Every definition needs a
// unique, non-empty name.
func NewLoader(defs ...domain.Definition) (*Loader, error) {
	l := &Loader{defs: make(map[string]domain.Definition, len(defs))}
	for _, def := range defs {
		if def.Name == "" {
			return nil, errors.New("definition missing name")
		}
		if _, dup := l.defs[def.Name]; dup {
			return nil, fmt.Errorf("duplicate definition name %q", def.Name)
		}
		l.defs[def.Name] = def.Clone()
	}
	return l, nil
}

// GetDefinition returns a copy of the named definition.
func (l *Loader) GetDefinition(_ context.Context, name string) (domain.Definition, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	def, ok := l.defs[name]
	if !ok {
		return domain.Definition{}, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	return def.Clone(), nil
}

// ListDefinitions returns all names in sorted order.
func (l *Loader) ListDefinitions(_ context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.defs))
	for name := range l.defs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Put adds or replaces a definition and notifies watchers.
func (l *Loader) Put(def domain.Definition) error {
	if def.Name == "" {
		return errors.New("definition missing name")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.defs[def.Name] = def.Clone()
	l.notify(def.Name)
	return nil
}

// Remove deletes a definition and notifies watchers.
func (l *Loader) Remove(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.defs[name]; ok {
		delete(l.defs, name)
		l.notify(name)
	}
}

// Watch implements ports.Watchable. Notifications are dropped while the
// channel buffer is full.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	ch := make(chan string, 16)

	l.mu.Lock()
	l.watchers = append(l.watchers, ch)
	l.mu.Unlock()

	go func() {
		<-ctx.Done()
		l.mu.Lock()
		l.watchers = slices.DeleteFunc(l.watchers, func(c chan string) bool { return c == ch })
		l.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}

// notify must be called with l.mu held; sends never block.
func (l *Loader) notify(name string) {
	for _, ch := range l.watchers {
		select {
		case ch <- name:
		default:
		}
	}
}
