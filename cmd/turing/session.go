package main

import (
	"fmt"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/session"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage step-by-step executions",
	Long: `Start, advance, inspect and remove persistent sessions. Sessions are
stored in <dir>/.turing/sessions, or in redis when --redis is set.`,
}

var sessionStartCmd = &cobra.Command{
	Use:   "start <name> [input]",
	Short: "Start a session at the initial configuration",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := ""
		if len(args) > 1 {
			input = args[1]
		}
		return withSessions(cmd, func(mgr *session.Manager) error {
			s, err := mgr.Start(cmd.Context(), args[0], input)
			if err != nil {
				return err
			}
			cli.PrintSession(cmd.OutOrStdout(), s)
			return nil
		})
	},
}

var sessionStepCmd = &cobra.Command{
	Use:   "step <session-id>",
	Short: "Advance a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("steps")
		return withSessions(cmd, func(mgr *session.Manager) error {
			s, err := mgr.Step(cmd.Context(), args[0], n)
			if err != nil {
				return err
			}
			cli.PrintSession(cmd.OutOrStdout(), s)
			return nil
		})
	},
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSessions(cmd, func(mgr *session.Manager) error {
			ids, err := mgr.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("error listing sessions: %w", err)
			}
			if len(ids) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions found.")
				return nil
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		})
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Print a session as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSessions(cmd, func(mgr *session.Manager) error {
			s, err := mgr.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return cli.PrintSessionJSON(cmd.OutOrStdout(), s)
		})
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSessions(cmd, func(mgr *session.Manager) error {
			failed := 0
			for _, id := range args {
				if err := mgr.Delete(cmd.Context(), id); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error removing '%s': %v\n", id, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed session '%s'\n", id)
			}
			if failed > 0 {
				return exitError(cli.ExitError)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionStepCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)

	sessionStepCmd.Flags().IntP("steps", "n", 1, "Number of transitions to take")
	sessionCmd.PersistentFlags().Duration("ttl", 0, "Expire redis sessions after this long idle (0 = never)")
}

func withSessions(cmd *cobra.Command, fn func(*session.Manager) error) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	ttl, _ := cmd.Flags().GetDuration("ttl")
	mgr, err := ws.Sessions(ttl)
	if err != nil {
		return err
	}
	return fn(mgr)
}
