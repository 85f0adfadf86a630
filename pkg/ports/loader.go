package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// DefinitionLoader retrieves machine definitions.
// Loaders parse but do not validate; validation happens when a machine is
// built from the definition.
type DefinitionLoader interface {
	// GetDefinition returns the definition registered under name.
	// Returns an error wrapping domain.ErrMachineNotFound if it does not exist.
	GetDefinition(ctx context.Context, name string) (domain.Definition, error)

	// ListDefinitions returns the names of all available definitions, sorted.
	ListDefinitions(ctx context.Context) ([]string, error)
}

// Watchable is implemented by loaders that can notify about backend changes.
type Watchable interface {
	// Watch returns a channel that receives the name (or source id) of a
	// changed definition. The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
