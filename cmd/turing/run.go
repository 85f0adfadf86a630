package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file|name> [input]",
	Short: "Run a machine over an input and print every configuration",
	Long: `Runs the machine named by a definition file or by its name in --dir.
A missing input runs the machine on the empty tape.

The exit status is 0 when the input is accepted, 2 when it is rejected,
3 when --max-steps is reached and 130 when interrupted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.RunOptions{Ref: args[0]}
		if len(args) > 1 {
			opts.Input = args[1]
		}
		opts.MaxSteps, _ = cmd.Flags().GetInt("max-steps")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")
		if cmd.Flags().Changed("pretty") {
			pretty, _ := cmd.Flags().GetBool("pretty")
			opts.Pretty = &pretty
		}

		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		sm := runner.NewSignalManager(cmd.Context())
		defer sm.Stop()

		res, err := cli.Run(sm.Context(), ws, cmd.OutOrStdout(), opts)
		if err != nil {
			return err
		}
		if code := cli.ExitCode(res); code != cli.ExitAccepted {
			return exitError(code)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("max-steps", 0, "Stop after this many transitions (0 = no limit)")
	runCmd.Flags().Bool("json", false, "Write JSON lines instead of text")
	runCmd.Flags().Bool("pretty", false, "Force styled output on or off (default: when stdout is a terminal)")
	runCmd.Flags().BoolP("quiet", "q", false, "Print only the outcome")
}
