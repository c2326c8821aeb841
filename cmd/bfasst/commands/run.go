package commands

import (
	"errors"
	"os/exec"

	"github.com/bfasst/bfasst/internal/printer"
	"github.com/bfasst/bfasst/internal/runner"
	"github.com/spf13/cobra"
)

var (
	runSel   selection
	runJobs  int
	runNinja string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate build.ninja and build it",
	Long: `Generate the build graph for an experiment or a single design and hand
it to ninja.

Exactly one of --descriptor or --design with --flow must be given.

Examples:
  bfasst run --descriptor experiments/example.yaml -j 4
  bfasst run --design example/add4 --flow vivado`,
	RunE: runRun,
}

func init() {
	runSel.bind(runCmd)
	runCmd.Flags().IntVarP(&runJobs, "jobs", "j", 0, "Parallel jobs passed to ninja (default: ninja's choice)")
	runCmd.Flags().StringVar(&runNinja, "ninja", "ninja", "Ninja executable")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	opts := runSel.options()
	opts.Jobs = runJobs

	printer.Step("Generating build graph...\n")
	result, err := runner.Run(cmd.Context(), opts, runner.NewNinja(runNinja))
	if err != nil {
		if result != nil {
			return buildFailed(err)
		}
		return report(err)
	}

	warnPostRun(result)
	printer.Success("Built %d design(s)\n", len(result.Experiment.Designs))
	return nil
}

func buildFailed(err error) error {
	var notFound *exec.Error
	if errors.As(err, &notFound) {
		return printer.Error(
			"ninja not found",
			err.Error(),
			[]string{"Install ninja or pass --ninja <path>", "Run 'bfasst generate' and invoke ninja yourself"},
		)
	}
	return printer.Error("Build failed", err.Error(), nil)
}
