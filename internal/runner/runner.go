// Package runner sequences one generation run: parse the experiment, build
// the flows, let each flow emit its artifacts and fragments, compose
// build.ninja and optionally hand it to ninja.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bfasst/bfasst/internal/artifact"
	"github.com/bfasst/bfasst/internal/design"
	"github.com/bfasst/bfasst/internal/experiment"
	"github.com/bfasst/bfasst/internal/flow"
	"github.com/bfasst/bfasst/internal/ninja"
	"github.com/bfasst/bfasst/internal/paths"
	"github.com/bfasst/bfasst/internal/render"
	"github.com/google/uuid"
)

var (
	// ErrConflictingInputs is returned when both a descriptor and a design/flow are given.
	ErrConflictingInputs = errors.New("cannot specify both a descriptor and a design/flow")
	// ErrNoInputs is returned when neither a descriptor nor a design and flow are given.
	ErrNoInputs = errors.New("must specify either a descriptor or both a design and a flow")
)

// Options select what a run generates.
type Options struct {
	// Root overrides repository root discovery.
	Root string

	// Descriptor is an experiment file. Mutually exclusive with Design/Flow.
	Descriptor string
	Design     string
	Flow       string

	// Jobs is passed to ninja as -j when positive.
	Jobs int

	// Generator is the executable build.ninja calls back into. Defaults to
	// the running executable.
	Generator string

	// Explain logs a diff for every config artifact that gets rewritten.
	Explain bool
}

// Validate checks that exactly one input form is given.
func (o Options) Validate() error {
	single := o.Design != "" || o.Flow != ""
	switch {
	case o.Descriptor != "" && single:
		return &experiment.ConfigError{Err: ErrConflictingInputs}
	case o.Descriptor == "" && (o.Design == "" || o.Flow == ""):
		return &experiment.ConfigError{Err: ErrNoInputs}
	}
	return nil
}

// Result describes a completed generation run.
type Result struct {
	RunID      string
	Paths      paths.Paths
	Experiment *experiment.Result
	// Deps are the regeneration dependencies of build.ninja.
	Deps []string
}

// run is one prepared generation: experiment resolved, flows built, nothing
// written yet.
type run struct {
	id        string
	paths     paths.Paths
	generator string
	args      []string
	store     *artifact.Store
	env       *flow.Env
	result    *experiment.Result
}

func prepare(opts Options) (*run, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	p, err := paths.Discover(opts.Root)
	if err != nil {
		return nil, err
	}

	generator, err := generatorPath(opts.Generator)
	if err != nil {
		return nil, err
	}

	r := &run{
		id:        uuid.New().String(),
		paths:     p,
		generator: generator,
		store:     artifact.NewStore(),
	}
	r.store.Explain = opts.Explain
	r.env = flow.NewEnv(p, r.store, generator)
	log.Printf("[INFO] run %s: root %s", r.id, p.Root)

	resolver := design.NewResolver(p.Designs)
	if opts.Descriptor != "" {
		descriptor, err := filepath.Abs(experiment.Locate(opts.Descriptor, p.Experiments))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve descriptor path: %w", err)
		}
		r.result, err = experiment.Parse(descriptor, resolver, r.env)
		if err != nil {
			return nil, err
		}
		r.args = []string{"--descriptor", descriptor}
	} else {
		r.result, err = experiment.Single(opts.Design, opts.Flow, resolver, r.env)
		if err != nil {
			return nil, err
		}
		r.args = []string{"--design", opts.Design, "--flow", opts.Flow}
	}
	log.Printf("[INFO] run %s: %d design(s), flow %s", r.id, len(r.result.Designs), r.result.Kind)

	for _, f := range r.result.Flows {
		r.env.AddRegenDeps(f)
	}
	r.env.Graph.Deps.Add(p.MasterTemplate)
	if r.result.Descriptor != nil {
		r.env.Graph.Deps.Add(r.result.Descriptor.Path)
	}
	if trackedGenerator(generator) {
		r.env.Graph.Deps.Add(generator)
	}
	return r, nil
}

func (r *run) summary() *Result {
	return &Result{
		RunID:      r.id,
		Paths:      r.paths,
		Experiment: r.result,
		Deps:       r.env.Graph.Deps.List(),
	}
}

// Resolve parses the experiment and builds its flows without writing
// anything.
func Resolve(opts Options) (*Result, error) {
	r, err := prepare(opts)
	if err != nil {
		return nil, err
	}
	return r.summary(), nil
}

// Generate writes the config artifacts of every flow and then build.ninja.
// Nothing is written if the experiment cannot be parsed or a flow cannot be
// built, and build.ninja is only written once every flow has been created.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	r, err := prepare(opts)
	if err != nil {
		return nil, err
	}

	for _, f := range r.result.Flows {
		if err := f.Create(ctx); err != nil {
			return nil, fmt.Errorf("%s flow for %s: %w", f.Kind(), f.Design().Name, err)
		}
	}

	header, err := render.File(r.paths.MasterTemplate, render.Bindings{
		"root":          r.paths.Root,
		"generator":     r.generator,
		"generate_args": r.args,
		"regen_rule":    ninja.RegenRule,
		"deps":          r.env.Graph.Deps.Clause(),
	})
	if err != nil {
		return nil, err
	}

	content, err := r.env.Graph.Compose(header)
	if err != nil {
		return nil, err
	}
	if err := r.store.Put(ctx, r.paths.NinjaFile, content); err != nil {
		return nil, err
	}
	log.Printf("[INFO] run %s: wrote %s (%d fragments)", r.id, r.paths.NinjaFile, len(r.env.Graph.Fragments()))

	return r.summary(), nil
}

// Run generates build.ninja and builds it with executor.
func Run(ctx context.Context, opts Options, executor Executor) (*Result, error) {
	result, err := Generate(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := executor.Build(ctx, result.Paths.Root, opts.Jobs); err != nil {
		return result, err
	}
	return result, nil
}

// trackedGenerator reports whether build.ninja should depend on the
// generator executable. Binaries under the temp dir, like the ones go run
// builds, are gone once the process exits.
func trackedGenerator(generator string) bool {
	if !filepath.IsAbs(generator) {
		return false
	}
	rel, err := filepath.Rel(os.TempDir(), generator)
	if err != nil {
		return true
	}
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func generatorPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	return exe, nil
}
