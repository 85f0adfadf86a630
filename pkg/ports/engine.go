package ports

import (
	"context"

	"github.com/aretw0/turing"
)

// MachineProvider hands out validated machines by name.
// It is the port used by the transport adapters (HTTP, MCP).
type MachineProvider interface {
	// Machine returns the machine registered under name.
	// Returns an error wrapping domain.ErrMachineNotFound if it does not exist,
	// or a *domain.ValidationError if its definition is malformed.
	Machine(ctx context.Context, name string) (*turing.Machine, error)

	// Names lists the available machine names, sorted.
	Names(ctx context.Context) ([]string, error)
}
