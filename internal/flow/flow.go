// Package flow turns one design into the config artifacts and ninja
// fragments that drive a toolchain over it.
//
// Flows of a run share an Env. The Env carries the run's graph buffer, the
// artifact store and the once-per-run guards, so a fresh Env gives a fresh
// run.
package flow

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/bfasst/bfasst/internal/artifact"
	"github.com/bfasst/bfasst/internal/design"
	"github.com/bfasst/bfasst/internal/ninja"
	"github.com/bfasst/bfasst/internal/paths"
)

// Flow is one pipeline instantiated for one design.
type Flow interface {
	// Kind is the name the flow is selected by.
	Kind() string
	// Family names the toolchain whose rule fragment the flow needs.
	Family() string
	Design() *design.Design
	Layout() Layout
	// RegenDeps are the templates that, when edited, must regenerate the graph.
	RegenDeps() []string
	// Create writes the config artifacts and appends this flow's fragments
	// to the run's graph.
	Create(ctx context.Context) error
}

// Layout is where a flow puts its outputs.
type Layout struct {
	Build string
	Synth string
	Impl  string
}

// Dirs lists the directories Create must make.
func (l Layout) Dirs() []string {
	return []string{l.Build, l.Synth, l.Impl}
}

// Env is the state shared by every flow of one run.
type Env struct {
	Paths paths.Paths
	Graph *ninja.Graph
	Store *artifact.Store
	// Generator is the executable the rule fragments call back into.
	Generator string

	regenKinds map[string]bool
}

// NewEnv creates the shared state of a run writing its graph to p.NinjaFile.
// The graph regenerates itself under the name ninja loads it by.
func NewEnv(p paths.Paths, store *artifact.Store, generator string) *Env {
	return &Env{
		Paths:      p,
		Graph:      ninja.NewGraph(p.NinjaManifest),
		Store:      store,
		Generator:  generator,
		regenKinds: make(map[string]bool),
	}
}

// AddRegenDeps adds f's regeneration dependencies to the graph the first
// time a flow of f's kind is seen. It reports whether anything was added.
func (e *Env) AddRegenDeps(f Flow) bool {
	if e.regenKinds[f.Kind()] {
		return false
	}
	e.regenKinds[f.Kind()] = true
	e.Graph.Deps.Add(f.RegenDeps()...)
	return true
}

// Constructor builds a flow for one design.
type Constructor func(env *Env, p design.Path) (Flow, error)

var constructors = map[string]Constructor{
	KindVivado:    NewVivado,
	KindVivadoOOC: NewVivadoOOC,
}

// Kinds lists the known flow kinds in order.
func Kinds() []string {
	kinds := make([]string, 0, len(constructors))
	for kind := range constructors {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// UnsupportedKindError reports a flow kind with no constructor.
type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported flow %q (known flows: %s)", e.Kind, strings.Join(Kinds(), ", "))
}

// Lookup returns the constructor for kind.
func Lookup(kind string) (Constructor, error) {
	ctor, ok := constructors[kind]
	if !ok {
		return nil, &UnsupportedKindError{Kind: kind}
	}
	return ctor, nil
}

// New builds a flow of kind for the design at p.
func New(env *Env, kind string, p design.Path) (Flow, error) {
	ctor, err := Lookup(kind)
	if err != nil {
		return nil, err
	}
	f, err := ctor(env, p)
	if err != nil {
		return nil, fmt.Errorf("%s flow for %s: %w", kind, p.Name, err)
	}
	log.Printf("[DEBUG] %s flow for %s -> %s", kind, p.Name, f.Layout().Build)
	return f, nil
}
