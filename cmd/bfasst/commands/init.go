package commands

import (
	"github.com/bfasst/bfasst/internal/paths"
	"github.com/bfasst/bfasst/internal/printer"
	"github.com/bfasst/bfasst/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	forceInit bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a bfasst repository",
	Long: `Initialize a bfasst repository with default templates and an example design.

Creates:
  • master.ninja.tmpl - Header of every generated build.ninja
  • tools/ - Vivado rule, synthesis and implementation templates
  • designs/example/add4/ - Example design with its design.yaml manifest
  • experiments/example.yaml - Experiment running the vivado flow on the example

The repository root is --root, $BFASST_ROOT, the Git toplevel or the working
directory, in that order.

Use --force to reinitialize an existing repository (WARNING: overwrites existing templates).`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Force reinitialization (overwrites master.ninja.tmpl and tools/)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	p, err := paths.Discover(rootDir)
	if err != nil {
		return report(err)
	}

	files, err := scaffold.Initialize(p.Root, forceInit)
	if err != nil {
		return printer.Error(
			"Initialization failed",
			err.Error(),
			[]string{"Run 'bfasst init --force' to overwrite the existing templates"},
		)
	}

	printer.Success("Initialized bfasst repository in %s\n\n", p.Root)
	for _, f := range files {
		printer.Info("  %s\n", f.Path)
	}
	printer.Info("\nNext steps:\n")
	printer.Info("  1. Add designs under designs/, each with a design.yaml naming its top module\n")
	printer.Info("  2. List them in an experiment under experiments/\n")
	printer.Info("  3. Run: bfasst run --descriptor experiments/example.yaml\n")
	return nil
}
