/*
Package turing validates and executes deterministic Turing machines.

A machine is described by a [domain.Definition]: its states, input and tape
alphabets, blank symbol, initial and final states, and a transition table
mapping (state, symbol) to (next state, symbol to write, head move).
[New] validates the definition eagerly, so a *Machine is always well formed.

# Execution

[Machine.Run] returns a lazy sequence of configurations. Each configuration
is an immutable snapshot of the current state and tape; collecting them all
gives the full trace of the computation.

	m, err := turing.New(def)
	if err != nil {
		log.Fatal(err)
	}
	for cfg, err := range m.Run(ctx, "0011") {
		if err != nil {
			// *domain.RejectionError, *domain.InputError or ctx.Err()
			break
		}
		fmt.Println(cfg.Render())
	}

A run ends after the first accepting configuration. When a non-final
configuration has no transition the sequence yields a
*domain.RejectionError and ends. A machine may also never halt; callers
that cannot afford that use [Machine.RunBounded] or [Machine.Trace] with a
step limit.

# Errors

Definition errors are *domain.ValidationError values that unwrap to one of
the kind sentinels in package domain (domain.ErrInvalidState,
domain.ErrInvalidSymbol, ...). Use errors.Is / errors.As to inspect them.

# Adapters

Definitions can be loaded from YAML/JSON files (pkg/adapters/file), loam
document repositories (pkg/adapters/loam) or memory. Step-by-step sessions
are managed by pkg/session on top of a ports.SessionStore such as the redis
adapter. The cmd/turing CLI wires all of it together, including an HTTP API
and an MCP server.
*/
package turing
