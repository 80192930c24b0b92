package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"element-autodoc/internal/document"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err = cmd.ExecuteContext(context.Background())

	return out.String(), errOut.String(), err
}

func elementTypes(set *document.DocumentSet) []string {
	types := make([]string, len(set.Elements))
	for i, el := range set.Elements {
		types[i] = el.Type
	}

	return types
}

func TestGenerate_Stdout(t *testing.T) {
	stdout, _, err := execute(t, "generate", "--pkg", "element-autodoc/examples/basic")
	require.NoError(t, err)

	set, err := document.Decode([]byte(stdout), document.FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, []string{"basic:counter", "basic:echo", "basic:holder"}, elementTypes(set))
	assert.Zero(t, set.Elements[0].LastUpdated)
}

func TestGenerate_ManifestToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "docs", "elements.yaml")

	_, stderr, err := execute(t, "generate",
		"--manifest", "../manifest/testdata/java.yaml",
		"--output", out,
		"--record-time",
	)
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote document set")

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	set, err := document.Decode(data, document.FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, []string{"example:printer", "example:source", "example:window"}, elementTypes(set))
	assert.NotZero(t, set.Elements[0].LastUpdated)
}

func TestGenerate_Deterministic(t *testing.T) {
	first, _, err := execute(t, "generate", "--pkg", "element-autodoc/examples/linked", "--format", "yaml")
	require.NoError(t, err)

	second, _, err := execute(t, "generate", "--pkg", "element-autodoc/examples/linked", "--format", "yaml", "--workers", "1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "autodoc.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
settings:
  description: Element catalog
  url: https://example.com
  maintainers: [alice]
packages:
  - element-autodoc/examples/linked
indent: false
`), 0o644))

	stdout, _, err := execute(t, "generate", "--config", cfgPath)
	require.NoError(t, err)

	set, err := document.Decode([]byte(stdout), document.FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "Element catalog", set.Settings.Description)
	assert.Equal(t, []string{"alice"}, set.Settings.Maintainers)
	assert.Len(t, set.Elements, 3)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no source", []string{"generate"}},
		{"unknown format", []string{"generate", "--pkg", "element-autodoc/examples/basic", "--format", "xml"}},
		{"both sources", []string{"generate", "--pkg", "x", "--manifest", "y.yaml"}},
		{"missing manifest", []string{"generate", "--manifest", "does-not-exist.yaml"}},
		{"bad key pattern", []string{"generate", "--pkg", "element-autodoc/examples/basic", "--key-pattern", "(["}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestGenerate_NoSourceError(t *testing.T) {
	_, _, err := execute(t, "generate")
	assert.True(t, errors.Is(err, errNoSource))
}

func TestCheck(t *testing.T) {
	stdout, _, err := execute(t, "check", "--pkg", "element-autodoc/examples/linked")
	require.NoError(t, err)
	assert.Equal(t, "3 models, 0 errors, 0 warnings\n", stdout)

	_, _, err = execute(t, "check", "--strict", "--pkg", "element-autodoc/examples/linked")
	assert.NoError(t, err)
}

func TestCheck_Fails(t *testing.T) {
	stdout, stderr, err := execute(t, "check", "--pkg", "element-autodoc/examples/chaotic")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCheckFailed))
	assert.Contains(t, stdout, "4 models, 5 errors")
	assert.Contains(t, stderr, "no_factory_operation")
}
