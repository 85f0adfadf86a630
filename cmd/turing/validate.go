package main

import (
	"fmt"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file|dir...]",
	Short: "Check machine definitions for consistency",
	Long: `Parses and validates every definition in the given files and directories
(default: --dir) and reports the first problem found in each machine.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		if err := cli.Validate(cmd.Context(), ws, cmd.OutOrStdout(), args); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All machines are valid.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
