package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the machines in --dir as MCP tools, so agents can list, validate
and run them.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts cli.MCPOptions
		opts.Transport, _ = cmd.Flags().GetString("transport")
		opts.Addr, _ = cmd.Flags().GetString("addr")
		opts.BaseURL, _ = cmd.Flags().GetString("base-url")
		opts.Watch, _ = cmd.Flags().GetBool("watch")
		opts.MaxSteps, _ = cmd.Flags().GetInt("max-steps")

		sm := runner.NewSignalManager(cmd.Context())
		defer sm.Stop()

		return cli.ServeMCP(sm.Context(), configFrom(cmd), opts)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", cli.TransportStdio, "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", ":8081", "Address to listen on (only for SSE)")
	mcpCmd.Flags().String("base-url", "", "Public base URL of the SSE endpoint (default: http://localhost<addr>)")
	mcpCmd.Flags().BoolP("watch", "w", false, "Reload definitions when files change")
	mcpCmd.Flags().Int("max-steps", 0, "Cap on transitions per run (0 = server default)")
}
