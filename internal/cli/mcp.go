package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/turing/pkg/adapters/mcp"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// ErrUnknownTransport is returned for a transport other than stdio or sse.
var ErrUnknownTransport = errors.New("unknown transport")

// MCPOptions configures the MCP server.
type MCPOptions struct {
	Transport string
	Addr      string
	BaseURL   string
	MaxSteps  int
	Watch     bool
}

// ServeMCP exposes the workspace machines as MCP tools. Stdio keeps stdout
// for the protocol, so logs must stay on stderr.
func ServeMCP(ctx context.Context, cfg Config, opts MCPOptions) error {
	ws, err := Open(cfg)
	if err != nil {
		return err
	}
	defer ws.Close()

	if opts.Watch {
		if err := ws.watch(ctx); err != nil {
			return fmt.Errorf("failed to watch definitions: %w", err)
		}
	}

	srvOpts := []mcp.Option{mcp.WithLogger(ws.Logger)}
	if opts.MaxSteps > 0 {
		srvOpts = append(srvOpts, mcp.WithMaxSteps(opts.MaxSteps))
	}
	srv := mcp.NewServer(ws.Registry, srvOpts...)

	switch opts.Transport {
	case "", TransportStdio:
		ws.Logger.Info("starting MCP server", "transport", TransportStdio)
		return srv.ServeStdio()
	case TransportSSE:
		baseURL := opts.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost" + opts.Addr
		}
		return srv.ServeSSE(ctx, opts.Addr, baseURL)
	}
	return fmt.Errorf("%w: %q (supported: stdio, sse)", ErrUnknownTransport, opts.Transport)
}
