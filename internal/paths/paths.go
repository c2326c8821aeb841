// Package paths resolves the well-known repository locations every other
// package works against. Nothing here touches the filesystem except Discover.
package paths

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/bfasst/bfasst/internal/git"
)

// RootEnv overrides root discovery when set.
const RootEnv = "BFASST_ROOT"

const ninjaFileName = "build.ninja"

// Paths holds absolute repository locations.
type Paths struct {
	Root        string
	Designs     string
	Experiments string
	Tools       string
	SynthTools  string
	ImplTools   string
	VivadoRules string
	Utils       string
	Build       string

	// MasterTemplate renders the header of NinjaFile.
	MasterTemplate string
	NinjaFile      string
	// NinjaManifest is NinjaFile as ninja names it when run with -C Root.
	// The regeneration statement must use this form for ninja to treat it
	// as the manifest rebuild.
	NinjaManifest string
}

// New lays out the repository locations under root.
func New(root string) Paths {
	root = filepath.Clean(root)
	tools := filepath.Join(root, "tools")
	return Paths{
		Root:           root,
		Designs:        filepath.Join(root, "designs"),
		Experiments:    filepath.Join(root, "experiments"),
		Tools:          tools,
		SynthTools:     filepath.Join(tools, "synth"),
		ImplTools:      filepath.Join(tools, "impl"),
		VivadoRules:    filepath.Join(tools, "vivado", "vivado.ninja.tmpl"),
		Utils:          filepath.Join(root, "bin"),
		Build:          filepath.Join(root, "build"),
		MasterTemplate: filepath.Join(root, "master.ninja.tmpl"),
		NinjaFile:      filepath.Join(root, ninjaFileName),
		NinjaManifest:  ninjaFileName,
	}
}

// Discover picks the repository root: override, then $BFASST_ROOT, then the
// enclosing Git repository, then the working directory.
func Discover(override string) (Paths, error) {
	if override == "" {
		override = os.Getenv(RootEnv)
	}
	if override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return Paths{}, fmt.Errorf("failed to resolve root %s: %w", override, err)
		}
		return New(abs), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to get current directory: %w", err)
	}

	checker := git.NewChecker(cwd)
	if isRepo, _ := checker.IsGitRepository(); isRepo {
		if root, err := checker.GetGitRoot(); err == nil {
			return New(root), nil
		}
	}

	log.Printf("[DEBUG] no Git repository around %s, using it as root", cwd)
	return New(cwd), nil
}

// DesignBuild is the output directory for the design named name.
func (p Paths) DesignBuild(name string) string {
	return filepath.Join(p.Build, filepath.FromSlash(name))
}
