package commands

import (
	"github.com/bfasst/bfasst/internal/runner"
	"github.com/spf13/cobra"
)

// selection holds the two mutually exclusive ways of choosing what to build.
type selection struct {
	descriptor string
	design     string
	flow       string
}

func (s *selection) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.descriptor, "descriptor", "d", "", "Experiment descriptor (YAML), looked up under experiments/ if not found")
	cmd.Flags().StringVar(&s.design, "design", "", "Single design, relative to designs/")
	cmd.Flags().StringVar(&s.flow, "flow", "", "Flow to run on --design")
}

func (s *selection) options() runner.Options {
	return runner.Options{
		Root:       rootDir,
		Descriptor: s.descriptor,
		Design:     s.design,
		Flow:       s.flow,
		Explain:    explain,
	}
}
