package ninja

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "rule regen\n  command = bfasst generate\n  generator = 1\n"

func TestGraph_Compose(t *testing.T) {
	g := NewGraph("build.ninja")
	g.Deps.Add("/repo/master.ninja.tmpl", "/repo/tools/synth/viv_synth.ninja.tmpl")

	assert.True(t, g.AddRules("vivado", "rule vivado\n  command = vivado -source $in"))
	g.Add("byu/add4", "build /build/add4/synth/viv_synth.edif: vivado /build/add4/synth/synth.tcl\n")
	assert.False(t, g.AddRules("vivado", "rule vivado\n  command = other"))
	g.Add("byu/add8", "build /build/add8/synth/viv_synth.edif: vivado /build/add8/synth/synth.tcl\n")

	out, err := g.Compose(header)
	require.NoError(t, err)
	text := string(out)

	assert.True(t, strings.HasPrefix(text, header))
	assert.Equal(t, 1, strings.Count(text, "rule vivado\n"))
	assert.NotContains(t, text, "command = other")
	assert.Less(t, strings.Index(text, "add4"), strings.Index(text, "add8"))
	assert.True(t, strings.HasSuffix(text,
		"build build.ninja: regen | /repo/master.ninja.tmpl /repo/tools/synth/viv_synth.ninja.tmpl\n"))
}

func TestGraph_ComposeDeterministic(t *testing.T) {
	build := func() []byte {
		g := NewGraph("build.ninja")
		g.Deps.Add("/b", "/a", "/b")
		g.AddRules("vivado", "rule vivado\n  command = x\n")
		g.Add("d", "build o: vivado i\n")
		out, err := g.Compose(header)
		require.NoError(t, err)
		return out
	}
	assert.Equal(t, build(), build())
}

func TestGraph_ComposeRejectsForwardReference(t *testing.T) {
	g := NewGraph("build.ninja")
	g.Add("byu/add4", "build out: vivado in\n")
	g.AddRules("vivado", "rule vivado\n  command = x\n")

	_, err := g.Compose(header)
	var fwd *ForwardReferenceError
	require.ErrorAs(t, err, &fwd)
	assert.Equal(t, "vivado", fwd.Rule)
}

func TestGraph_ComposeRequiresRegenRule(t *testing.T) {
	_, err := NewGraph("build.ninja").Compose("# no rules\n")
	var fwd *ForwardReferenceError
	require.ErrorAs(t, err, &fwd)
	assert.Equal(t, RegenRule, fwd.Rule)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr string
	}{
		{"phony is built in", "build all: phony a b\n", ""},
		{"rule before build", "rule cc\n  command = cc\nbuild a.o: cc a.c\n", ""},
		{"escaped colon in output", "rule cc\n  command = cc\nbuild c$:/x.o: cc c$:/x.c\n", ""},
		{"continued build line", "rule cc\n  command = cc\nbuild a.o b.o $\n    c.o: cc a.c\n", ""},
		{"undefined rule", "build a.o: cc a.c\n", "rule \"cc\""},
		{"escaped dollar before colon", "rule cc\n  command = cc\nbuild a$$: cc a\n", ""},
		{"comments and bindings ignored", "# build x: nope\nrule cc\n  command = build y: nope\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.text)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDepSet(t *testing.T) {
	s := NewDepSet()
	s.Add("/t/b.tmpl", "/t/a.tmpl", "", "/t/b.tmpl")
	s.Add("/t/a.tmpl", "/t/with space.tmpl")

	assert.Equal(t, []string{"/t/b.tmpl", "/t/a.tmpl", "/t/with space.tmpl"}, s.List())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "/t/b.tmpl /t/a.tmpl /t/with$ space.tmpl", s.Clause())
}

func TestEscapePath(t *testing.T) {
	assert.Equal(t, "a$ b$:c$$d", EscapePath("a b:c$d"))
	assert.Equal(t, "x y$ z", JoinPaths([]string{"x", "y z"}))
}
