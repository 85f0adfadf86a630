package main

import (
	"time"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the machines in --dir over a JSON API, with step-by-step sessions,
Prometheus metrics on /metrics and server-sent events on /events.
Sessions live in memory unless --redis is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts cli.ServeOptions
		opts.Addr, _ = cmd.Flags().GetString("addr")
		opts.Watch, _ = cmd.Flags().GetBool("watch")
		opts.SessionTTL, _ = cmd.Flags().GetDuration("session-ttl")
		opts.MaxSteps, _ = cmd.Flags().GetInt("max-steps")

		sm := runner.NewSignalManager(cmd.Context())
		defer sm.Stop()

		return cli.Serve(sm.Context(), configFrom(cmd), opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload definitions when files change")
	serveCmd.Flags().Duration("session-ttl", 24*time.Hour, "Expire redis sessions after this long idle (0 = never)")
	serveCmd.Flags().Int("max-steps", 0, "Cap on transitions per run (0 = server default)")
}
