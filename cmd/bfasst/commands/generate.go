package commands

import (
	"github.com/bfasst/bfasst/internal/printer"
	"github.com/bfasst/bfasst/internal/runner"
	"github.com/spf13/cobra"
)

var generateSel selection

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write config artifacts and build.ninja without building",
	Long: `Write the config artifacts of every selected design and the top-level
build.ninja, then stop.

This is the command build.ninja runs to regenerate itself.

Examples:
  bfasst generate --descriptor experiments/example.yaml
  bfasst generate --design example/add4 --flow vivado_ooc`,
	RunE: runGenerate,
}

func init() {
	generateSel.bind(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	result, err := runner.Generate(cmd.Context(), generateSel.options())
	if err != nil {
		return report(err)
	}

	warnPostRun(result)
	printer.Success("Generated %s for %d design(s)\n", result.Paths.NinjaFile, len(result.Experiment.Designs))
	return nil
}
