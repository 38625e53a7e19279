package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/assetforge/internal/config"
	aerrors "git.home.luguber.info/inful/assetforge/internal/errors"
	"git.home.luguber.info/inful/assetforge/internal/templating"
)

func testConfig(t *testing.T, writers ...string) *config.Config {
	t.Helper()
	cfg := &config.Config{Theme: t.TempDir(), CacheDir: t.TempDir()}
	cfg.ApplyDefaults()
	if len(writers) > 0 {
		cfg.Writers = writers
	}
	return cfg
}

func TestBuildRegistryDefaults(t *testing.T) {
	cfg := testConfig(t)
	reg, err := BuildRegistry(cfg, Env{Engine: templating.NewHTMLEngine(cfg.Theme)})
	require.NoError(t, err)

	assert.Equal(t, "scss", reg.Lookup(".scss").Name())
	assert.Equal(t, "less", reg.Lookup(".less").Name())
	assert.Equal(t, "sass", reg.Lookup(".sass").Name())
	assert.Equal(t, "markdown", reg.Lookup(".md").Name())
	assert.Equal(t, "template", reg.Lookup(".html").Name())
	assert.Equal(t, "xml", reg.Lookup(".xml").Name())
}

func TestLookupFallsBackToCopy(t *testing.T) {
	cfg := testConfig(t)
	reg, err := BuildRegistry(cfg, Env{})
	require.NoError(t, err)

	// Unregistered extensions silently route to the pass-through writer.
	assert.Equal(t, "copy", reg.Lookup(".png").Name())
	assert.Equal(t, "copy", reg.Lookup(".woff2").Name())
}

func TestLastRegistrationWins(t *testing.T) {
	cfg := testConfig(t, "coffee", "iced")
	reg, err := BuildRegistry(cfg, Env{})
	require.NoError(t, err)
	// iced also claims .coffee and was registered later.
	assert.Equal(t, "iced", reg.Lookup(".coffee").Name())

	cfg = testConfig(t, "iced", "coffee")
	reg, err = BuildRegistry(cfg, Env{})
	require.NoError(t, err)
	assert.Equal(t, "coffee", reg.Lookup(".coffee").Name())
	assert.Equal(t, "iced", reg.Lookup(".iced").Name())
}

func TestUnknownWriterName(t *testing.T) {
	cfg := testConfig(t, "bogus")
	_, err := BuildRegistry(cfg, Env{})
	require.Error(t, err)
	assert.True(t, aerrors.IsCategory(err, aerrors.CategoryValidation))
}

func TestCustomWriterRegistered(t *testing.T) {
	cfg := testConfig(t, "less")
	cfg.CustomWriters = []config.WriterSpec{{
		Name:       "stylus",
		Extensions: []string{".styl"},
		Target:     ".css",
		Command:    []string{"stylus", "-p"},
		Uses:       `^@import ["'](?P<file>.+?)["']`,
	}}

	reg, err := BuildRegistry(cfg, Env{})
	require.NoError(t, err)
	assert.Equal(t, "stylus", reg.Lookup(".styl").Name())
}

func TestTemplateWriterRequiresEngine(t *testing.T) {
	cfg := testConfig(t, "template")
	reg, err := BuildRegistry(cfg, Env{})
	require.NoError(t, err)
	// Without an engine, .html routes to the fallback copy writer.
	assert.Equal(t, "copy", reg.Lookup(".html").Name())
}
