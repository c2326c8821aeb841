package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"

	"github.com/bfasst/bfasst/internal/design"
	"github.com/bfasst/bfasst/internal/render"
)

const (
	KindVivado    = "vivado"
	KindVivadoOOC = "vivado_ooc"

	// FamilyVivado keys the vivado rule fragment.
	FamilyVivado = "vivado"

	// VivadoPart is the device every vivado flow targets.
	VivadoPart = "xc7a200tlffg1156-2L"
)

// File names inside the synth and impl output directories.
const (
	synthJSON = "synth.json"
	synthTcl  = "synth.tcl"
	synthEdif = "viv_synth.edif"
	synthDcp  = "synth.dcp"
	ioFile    = "iofile.txt"
	implJSON  = "impl.json"
	implTcl   = "impl.tcl"
	implDcp   = "impl.dcp"
	implEdif  = "viv_impl.edif"
	netlist   = "viv_impl.v"
	utilFile  = "utilization.txt"

	synthNinjaTemplate = "viv_synth.ninja.tmpl"
	synthTclTemplate   = "viv_synth.tcl.tmpl"
	implNinjaTemplate  = "viv_impl.ninja.tmpl"
	implTclTemplate    = "viv_impl.tcl.tmpl"
)

// SynthConfig is synth.json, the parameters of vivado synthesis.
type SynthConfig struct {
	Part          string   `json:"part"`
	Verilog       []string `json:"verilog"`
	SystemVerilog []string `json:"system_verilog"`
	Top           string   `json:"top"`
	Edif          string   `json:"edif"`
	Dcp           string   `json:"dcp"`
	IO            string   `json:"io"`
	SynthOutput   string   `json:"synth_output"`
	OOC           bool     `json:"ooc"`
}

// ImplConfig is impl.json, the parameters of vivado implementation.
type ImplConfig struct {
	SynthEdif   string   `json:"synth_edif"`
	Part        string   `json:"part"`
	XDC         Optional `json:"xdc"`
	Dcp         string   `json:"dcp"`
	ImplEdif    string   `json:"impl_edif"`
	Netlist     string   `json:"netlist"`
	UtilFile    string   `json:"util_file"`
	Bit         Optional `json:"bit"`
	ImplOutput  string   `json:"impl_output"`
	SynthOutput string   `json:"synth_output"`
}

// Vivado synthesizes and implements a design with vivado. The out-of-context
// variant drops the constraint and bitstream stages and builds into its own
// subtree.
type Vivado struct {
	env    *Env
	design *design.Design
	ooc    bool
	part   string
	layout Layout
}

// NewVivado builds the standard vivado flow.
func NewVivado(env *Env, p design.Path) (Flow, error) {
	return newVivado(env, p, false)
}

// NewVivadoOOC builds the out-of-context vivado flow.
func NewVivadoOOC(env *Env, p design.Path) (Flow, error) {
	return newVivado(env, p, true)
}

func newVivado(env *Env, p design.Path, ooc bool) (*Vivado, error) {
	d, err := design.Load(p)
	if err != nil {
		return nil, err
	}

	build := env.Paths.DesignBuild(p.Name)
	if ooc {
		build = filepath.Join(build, "ooc")
	}

	return &Vivado{
		env:    env,
		design: d,
		ooc:    ooc,
		part:   VivadoPart,
		layout: Layout{
			Build: build,
			Synth: filepath.Join(build, "synth"),
			Impl:  filepath.Join(build, "impl"),
		},
	}, nil
}

func (v *Vivado) Kind() string {
	if v.ooc {
		return KindVivadoOOC
	}
	return KindVivado
}

func (v *Vivado) Family() string         { return FamilyVivado }
func (v *Vivado) Design() *design.Design { return v.design }
func (v *Vivado) Layout() Layout         { return v.layout }

// RegenDeps lists the ninja templates both variants render.
func (v *Vivado) RegenDeps() []string {
	return []string{
		filepath.Join(v.env.Paths.SynthTools, synthNinjaTemplate),
		filepath.Join(v.env.Paths.ImplTools, implNinjaTemplate),
		v.env.Paths.VivadoRules,
	}
}

// Create makes the output directories, writes synth.json and impl.json when
// their content changed, then appends the rule fragment (once per run) and
// this design's build fragments.
func (v *Vivado) Create(ctx context.Context) error {
	for _, dir := range v.layout.Dirs() {
		if err := v.env.Store.EnsureDir(ctx, dir); err != nil {
			return err
		}
	}

	if err := v.writeConfig(ctx, filepath.Join(v.layout.Synth, synthJSON), v.SynthConfig()); err != nil {
		return err
	}
	if err := v.writeConfig(ctx, filepath.Join(v.layout.Impl, implJSON), v.ImplConfig()); err != nil {
		return err
	}

	if err := v.addRules(); err != nil {
		return err
	}
	return v.addBuilds()
}

// SynthConfig computes synth.json.
func (v *Vivado) SynthConfig() SynthConfig {
	return SynthConfig{
		Part:          v.part,
		Verilog:       v.design.Sources.Verilog,
		SystemVerilog: v.design.Sources.SystemVerilog,
		Top:           v.design.Top(),
		Edif:          synthEdif,
		Dcp:           synthDcp,
		IO:            filepath.Join(v.layout.Synth, ioFile),
		SynthOutput:   v.layout.Synth,
		OOC:           v.ooc,
	}
}

// ImplConfig computes impl.json.
func (v *Vivado) ImplConfig() ImplConfig {
	xdc := Enabled(filepath.Join(v.layout.Synth, v.design.Top()+".xdc"))
	bit := Enabled(filepath.Join(v.layout.Impl, v.design.Top()+".bit"))
	if v.ooc {
		xdc, bit = Disabled, Disabled
	}

	return ImplConfig{
		SynthEdif:   synthEdif,
		Part:        v.part,
		XDC:         xdc,
		Dcp:         implDcp,
		ImplEdif:    implEdif,
		Netlist:     netlist,
		UtilFile:    utilFile,
		Bit:         bit,
		ImplOutput:  v.layout.Impl,
		SynthOutput: v.layout.Synth,
	}
}

func (v *Vivado) writeConfig(ctx context.Context, path string, config any) error {
	data, err := json.MarshalIndent(config, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	written, err := v.env.Store.Write(ctx, path, append(data, '\n'))
	if err != nil {
		return err
	}
	if written {
		log.Printf("[INFO] wrote %s", path)
	}
	return nil
}

func (v *Vivado) addRules() error {
	if v.env.Graph.HasRules(v.Family()) {
		return nil
	}
	text, err := render.File(v.env.Paths.VivadoRules, render.Bindings{
		"generator": v.env.Generator,
		"utils":     v.env.Paths.Utils,
	})
	if err != nil {
		return err
	}
	v.env.Graph.AddRules(v.Family(), text)
	return nil
}

func (v *Vivado) addBuilds() error {
	synth := v.SynthConfig()
	impl := v.ImplConfig()
	owner := v.Kind() + ":" + v.design.Name

	synthNinja, err := render.File(filepath.Join(v.env.Paths.SynthTools, synthNinjaTemplate), render.Bindings{
		"name":           v.design.Name,
		"top":            synth.Top,
		"synth_output":   synth.SynthOutput,
		"json":           filepath.Join(v.layout.Synth, synthJSON),
		"tcl":            filepath.Join(v.layout.Synth, synthTcl),
		"tcl_template":   filepath.Join(v.env.Paths.SynthTools, synthTclTemplate),
		"edif":           filepath.Join(v.layout.Synth, synthEdif),
		"dcp":            filepath.Join(v.layout.Synth, synthDcp),
		"io":             synth.IO,
		"verilog":        synth.Verilog,
		"system_verilog": synth.SystemVerilog,
	})
	if err != nil {
		return err
	}
	v.env.Graph.Add(owner, synthNinja)

	implNinja, err := render.File(filepath.Join(v.env.Paths.ImplTools, implNinjaTemplate), render.Bindings{
		"name":         v.design.Name,
		"top":          synth.Top,
		"synth_output": impl.SynthOutput,
		"impl_output":  impl.ImplOutput,
		"json":         filepath.Join(v.layout.Impl, implJSON),
		"tcl":          filepath.Join(v.layout.Impl, implTcl),
		"tcl_template": filepath.Join(v.env.Paths.ImplTools, implTclTemplate),
		"synth_edif":   filepath.Join(v.layout.Synth, synthEdif),
		"io":           synth.IO,
		"dcp":          filepath.Join(v.layout.Impl, implDcp),
		"impl_edif":    filepath.Join(v.layout.Impl, implEdif),
		"netlist":      filepath.Join(v.layout.Impl, netlist),
		"util_file":    filepath.Join(v.layout.Impl, utilFile),
		"xdc":          impl.XDC.Value(),
		"bit":          impl.Bit.Value(),
	})
	if err != nil {
		return err
	}
	v.env.Graph.Add(owner, implNinja)
	return nil
}
