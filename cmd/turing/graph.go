package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <file|name>",
	Short: "Print the machine as a Mermaid state diagram",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()
		return cli.Graph(cmd.Context(), ws, cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
