/*
Package runner drives a machine over one input and presents the run.

A Runner walks the configurations lazily and hands each of them to a
Handler, so unbounded runs print as they go. Two handlers are provided:

  - TextHandler: the human trace, one rendered configuration per step.
  - JSONHandler: newline-delimited JSON for scripts and other tools.

# Usage

	r := runner.NewRunner(
		runner.WithHandler(runner.NewJSONHandler(os.Stdout)),
		runner.WithMaxSteps(10_000),
	)

	res, err := r.Run(ctx, machine, "0011")
*/
package runner
