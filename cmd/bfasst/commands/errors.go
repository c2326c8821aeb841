package commands

import (
	"errors"
	"fmt"

	"github.com/bfasst/bfasst/internal/artifact"
	"github.com/bfasst/bfasst/internal/design"
	"github.com/bfasst/bfasst/internal/experiment"
	"github.com/bfasst/bfasst/internal/flow"
	"github.com/bfasst/bfasst/internal/ninja"
	"github.com/bfasst/bfasst/internal/printer"
	"github.com/bfasst/bfasst/internal/runner"
)

// report prints err with suggestions matching its kind and returns the
// error Cobra exits with.
func report(err error) error {
	var (
		configErr  *experiment.ConfigError
		resolveErr *design.ResolutionError
		kindErr    *flow.UnsupportedKindError
		writeErr   *artifact.WriteError
		refErr     *ninja.ForwardReferenceError
	)

	switch {
	case errors.Is(err, runner.ErrConflictingInputs), errors.Is(err, runner.ErrNoInputs):
		return printer.Error(
			"Invalid invocation",
			err.Error(),
			[]string{
				"Pass an experiment: --descriptor experiments/<name>.yaml",
				"Pass a single design: --design <name> --flow <kind>",
			},
		)

	case errors.Is(err, experiment.ErrMissingFlow):
		return printer.ErrorWithContext(
			"Experiment has no flow",
			"The descriptor must name the flow to run on its designs.",
			[][2]string{{"Descriptor", descriptorPath(err)}},
			[]string{fmt.Sprintf("Add a line such as 'flow: %s' (known flows: %v)", flow.KindVivado, flow.Kinds())},
		)

	case errors.As(err, &kindErr):
		return printer.Error(
			"Unsupported flow",
			err.Error(),
			[]string{fmt.Sprintf("Use one of: %v", flow.Kinds())},
		)

	case errors.As(err, &resolveErr):
		return printer.ErrorWithContext(
			"Design not found",
			resolveErr.Err.Error(),
			[][2]string{{"Selector", resolveErr.Selector}, {"Path", resolveErr.Path}},
			[]string{"Selectors under 'designs' are relative to designs/ and must contain a " + design.ManifestName},
		)

	case errors.Is(err, design.ErrManifestMissing):
		return printer.Error(
			"Design manifest missing",
			err.Error(),
			[]string{
				fmt.Sprintf("Add a %s with 'top: <module>' to the design", design.ManifestName),
				"Move non-design directories out of the design_dirs group",
			},
		)

	case errors.As(err, &configErr):
		return printer.Error("Invalid experiment", err.Error(), nil)

	case errors.As(err, &writeErr):
		return printer.ErrorWithContext(
			"Failed to write generated file",
			writeErr.Err.Error(),
			[][2]string{{"File", writeErr.Path}},
			[]string{"Check that the build directory is writable"},
		)

	case errors.As(err, &refErr):
		return printer.Error(
			"Generated graph is invalid",
			err.Error(),
			[]string{"Check that every rule in the tool templates is defined before a build statement uses it"},
		)
	}

	return printer.Error("Generation failed", err.Error(), nil)
}

// descriptorPath returns the descriptor path recorded on a ConfigError, if any.
func descriptorPath(err error) string {
	var configErr *experiment.ConfigError
	if errors.As(err, &configErr) && configErr.Path != "" {
		return configErr.Path
	}
	return "-"
}

// warnPostRun notes that a declared post_run hook is recorded but not run.
func warnPostRun(result *runner.Result) {
	d := result.Experiment.Descriptor
	if d == nil || d.PostRun == "" {
		return
	}
	printer.Warning("post_run hook %q is declared but not executed by bfasst\n", d.PostRun)
}
