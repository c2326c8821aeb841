package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p := New("/repo/")

	assert.Equal(t, "/repo", p.Root)
	assert.Equal(t, "/repo/designs", p.Designs)
	assert.Equal(t, "/repo/tools/synth", p.SynthTools)
	assert.Equal(t, "/repo/tools/impl", p.ImplTools)
	assert.Equal(t, "/repo/tools/vivado/vivado.ninja.tmpl", p.VivadoRules)
	assert.Equal(t, "/repo/build.ninja", p.NinjaFile)
	assert.Equal(t, "build.ninja", p.NinjaManifest)
	assert.Equal(t, p.NinjaFile, filepath.Join(p.Root, p.NinjaManifest))
	assert.Equal(t, "/repo/build/byu/add4", p.DesignBuild("byu/add4"))
}

func TestDiscover(t *testing.T) {
	t.Run("explicit override wins", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(RootEnv, "/ignored")

		p, err := Discover(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Clean(dir), p.Root)
	})

	t.Run("environment variable", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(RootEnv, dir)

		p, err := Discover("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Clean(dir), p.Root)
	})
}
