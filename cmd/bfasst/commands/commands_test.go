package commands

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bfasst/bfasst/internal/paths"
	"github.com/bfasst/bfasst/internal/printer"
	"github.com/bfasst/bfasst/internal/testutil"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type output struct {
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// execute runs the command tree with args, resetting the package-level flag
// values first so invocations do not leak into each other.
func execute(t *testing.T, args ...string) (output, error) {
	t.Helper()

	rootDir, verbose, explain = "", false, false
	generateSel, runSel, listSel = selection{}, selection{}, selection{}
	runJobs, runNinja = 0, "ninja"
	renderTemplate, renderData, renderOut = "", "", ""
	listOutputFormat, listMatch, listTop = "default", "", ""
	forceInit = false

	out := output{stdout: new(bytes.Buffer), stderr: new(bytes.Buffer)}
	origOut, origErr, origNoColor := printer.Out, printer.Err, color.NoColor
	printer.Out, printer.Err, color.NoColor = out.stdout, out.stderr, true
	t.Cleanup(func() { printer.Out, printer.Err, color.NoColor = origOut, origErr, origNoColor })

	rootCmd.SetOut(out.stdout)
	rootCmd.SetErr(out.stderr)
	rootCmd.SetArgs(args)
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return out, rootCmd.Execute()
}

func repo(t *testing.T) paths.Paths {
	t.Helper()
	p := testutil.NewRepo(t)
	testutil.WriteDesign(t, p, "byu/add4", "add4", "add4.v")
	testutil.WriteDesign(t, p, "byu/add8", "add8", "add8.v")
	testutil.WriteFile(t, filepath.Join(p.Experiments, "byu.yaml"),
		"flow: vivado\ndesign_dirs:\n  - byu\npost_run: summarize\n")
	return p
}

func TestGenerateCommand(t *testing.T) {
	p := repo(t)

	out, err := execute(t, "generate", "--root", p.Root, "--descriptor", "byu.yaml")
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), "Generated "+p.NinjaFile+" for 2 design(s)")
	assert.Contains(t, out.stdout.String(), `post_run hook "summarize" is declared`)

	graph := testutil.ReadFile(t, p.NinjaFile)
	assert.Contains(t, graph, "# byu/add4:")
	assert.Contains(t, graph, "# byu/add8:")
	assert.FileExists(t, filepath.Join(p.Build, "byu", "add8", "synth", "synth.json"))
}

func TestGenerateCommand_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      func(t *testing.T, p paths.Paths) []string
		wantTitle string
		wantHint  string
	}{
		{
			name:      "neither input form",
			args:      func(t *testing.T, p paths.Paths) []string { return []string{"generate", "--root", p.Root} },
			wantTitle: "Invalid invocation",
			wantHint:  "--design <name> --flow <kind>",
		},
		{
			name: "both input forms",
			args: func(t *testing.T, p paths.Paths) []string {
				return []string{"generate", "--root", p.Root, "-d", "byu.yaml", "--design", "byu/add4", "--flow", "vivado"}
			},
			wantTitle: "Invalid invocation",
		},
		{
			name: "unknown flow",
			args: func(t *testing.T, p paths.Paths) []string {
				return []string{"generate", "--root", p.Root, "--design", "byu/add4", "--flow", "quartus"}
			},
			wantTitle: "Unsupported flow",
			wantHint:  "vivado_ooc",
		},
		{
			name: "missing flow",
			args: func(t *testing.T, p paths.Paths) []string {
				path := filepath.Join(p.Experiments, "noflow.yaml")
				testutil.WriteFile(t, path, "designs:\n  - byu/add4\n")
				return []string{"generate", "--root", p.Root, "-d", path}
			},
			wantTitle: "Experiment has no flow",
			wantHint:  "flow: vivado",
		},
		{
			name: "design not found",
			args: func(t *testing.T, p paths.Paths) []string {
				path := filepath.Join(p.Experiments, "missing.yaml")
				testutil.WriteFile(t, path, "flow: vivado\ndesigns:\n  - lab/nothing\n")
				return []string{"generate", "--root", p.Root, "-d", path}
			},
			wantTitle: "Design not found",
			wantHint:  "lab/nothing",
		},
		{
			name: "group member without manifest",
			args: func(t *testing.T, p paths.Paths) []string {
				testutil.WriteFile(t, filepath.Join(p.Designs, "byu", "notes", "README"), "")
				return []string{"generate", "--root", p.Root, "-d", "byu.yaml"}
			},
			wantTitle: "Design manifest missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := repo(t)
			out, err := execute(t, tt.args(t, p)...)
			require.Error(t, err)
			assert.Equal(t, tt.wantTitle, err.Error())
			assert.True(t, strings.HasPrefix(out.stderr.String(), tt.wantTitle+"\n"))
			assert.Contains(t, out.stderr.String(), tt.wantHint)
			assert.NoFileExists(t, p.NinjaFile)
		})
	}
}

func TestListCommand(t *testing.T) {
	p := repo(t)

	t.Run("table", func(t *testing.T) {
		out, err := execute(t, "list", "--root", p.Root, "-d", "byu.yaml")
		require.NoError(t, err)
		assert.Contains(t, out.stdout.String(), "byu/add4")
		assert.Contains(t, out.stdout.String(), "2 designs found")
		assert.NotContains(t, out.stdout.String(), "match the filters")
		assert.NoFileExists(t, p.NinjaFile)
	})

	t.Run("filtered table notes the filter", func(t *testing.T) {
		out, err := execute(t, "list", "--root", p.Root, "-d", "byu.yaml", "--match", "byu/add8")
		require.NoError(t, err)
		assert.Contains(t, out.stdout.String(), "1 design found")
		assert.Contains(t, out.stdout.String(), "(1 of 2 designs match the filters)")
	})

	t.Run("filtered jsonl", func(t *testing.T) {
		out, err := execute(t, "list", "--root", p.Root, "-d", "byu.yaml", "--top", "add8", "-o", "jsonl")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out.stdout.String()), "\n")
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], `"name":"byu/add8"`)
	})

	t.Run("bad output format", func(t *testing.T) {
		_, err := execute(t, "list", "--root", p.Root, "-d", "byu.yaml", "-o", "xml")
		assert.EqualError(t, err, "Invalid output format")
	})

	t.Run("bad glob", func(t *testing.T) {
		_, err := execute(t, "list", "--root", p.Root, "-d", "byu.yaml", "--match", "byu/[")
		assert.EqualError(t, err, "Invalid --match pattern")
	})
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "synth.tcl.tmpl")
	data := filepath.Join(dir, "synth.json")
	out := filepath.Join(dir, "synth.tcl")
	testutil.WriteFile(t, tmpl, "synth_design -top {{.top}} -part {{.part}}\n")
	testutil.WriteFile(t, data, `{"top": "add4", "part": "xc7a200tlffg1156-2L"}`)

	_, err := execute(t, "render", "--template", tmpl, "--data", data, "--out", out)
	require.NoError(t, err)
	assert.Equal(t, "synth_design -top add4 -part xc7a200tlffg1156-2L\n", testutil.ReadFile(t, out))

	t.Run("missing binding", func(t *testing.T) {
		testutil.WriteFile(t, data, `{"top": "add4"}`)
		o, err := execute(t, "render", "--template", tmpl, "--data", data, "--out", out)
		assert.EqualError(t, err, "Render failed")
		assert.Contains(t, o.stderr.String(), "Template: "+tmpl)
	})

	t.Run("required flags", func(t *testing.T) {
		_, err := execute(t, "render", "--template", tmpl)
		assert.Error(t, err)
	})
}

func TestInitCommand(t *testing.T) {
	root := t.TempDir()

	out, err := execute(t, "init", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), "Initialized bfasst repository")
	assert.Contains(t, out.stdout.String(), "experiments/example.yaml")
	assert.FileExists(t, filepath.Join(root, "master.ninja.tmpl"))

	_, err = execute(t, "init", "--root", root)
	assert.EqualError(t, err, "Initialization failed")

	_, err = execute(t, "init", "--root", root, "--force")
	assert.NoError(t, err)
}

func TestRunCommand(t *testing.T) {
	p := repo(t)

	t.Run("ninja missing", func(t *testing.T) {
		_, err := execute(t, "run", "--root", p.Root, "-d", "byu.yaml", "--ninja", "bfasst-test-no-such-ninja")
		assert.EqualError(t, err, "ninja not found")
		// the graph is generated before ninja is looked for
		assert.FileExists(t, p.NinjaFile)
	})

	t.Run("build succeeds", func(t *testing.T) {
		stub, err := exec.LookPath("true")
		if err != nil {
			t.Skip("true not available")
		}
		out, err := execute(t, "run", "--root", p.Root, "--design", "byu/add4", "--flow", "vivado_ooc", "-j", "2", "--ninja", stub)
		require.NoError(t, err)
		assert.Contains(t, out.stdout.String(), "Built 1 design(s)")
	})
}

func TestRootCommand_RejectsUnknownFlags(t *testing.T) {
	_, err := execute(t, "--unknown-flag", "value")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
}
