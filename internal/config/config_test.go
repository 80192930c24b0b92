package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"element-autodoc/internal/document"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ConfigFileName+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoadOptions{Dir: t.TempDir()})
	require.NoError(t, err)

	assert.Empty(t, cfg.Packages)
	assert.Empty(t, cfg.Manifest)
	assert.Empty(t, cfg.Settings.Maintainers)
	assert.False(t, cfg.Settings.RecordTime)
	assert.Zero(t, cfg.Workers)
	assert.True(t, cfg.Indent)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
settings:
  description: Element catalog
  url: https://example.com/docs
  founded: 1577836800000
  maintainers: [alice, bob]
  record_time: true
packages:
  - ./examples/...
workers: 3
output: out/elements.yaml
indent: false
`)

	cfg, err := Load(LoadOptions{Dir: dir})
	require.NoError(t, err)

	assert.Equal(t, document.Settings{
		Description: "Element catalog",
		URL:         "https://example.com/docs",
		Founded:     1577836800000,
		Maintainers: []string{"alice", "bob"},
		RecordTime:  true,
	}, cfg.Settings)
	assert.Equal(t, []string{"./examples/..."}, cfg.Packages)
	assert.Equal(t, 3, cfg.Workers)
	assert.False(t, cfg.Indent)

	format, err := cfg.OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, document.FormatYAML, format)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "manifest: universe.yaml\n")

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "universe.yaml", cfg.Manifest)

	_, err = Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestLoad_EnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "workers: 2\nformat: json\n")

	t.Setenv("AUTODOC_WORKERS", "5")
	t.Setenv("AUTODOC_SETTINGS_DESCRIPTION", "from env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "", "")
	flags.StringSlice("pkg", nil, "")
	require.NoError(t, flags.Parse([]string{"--format", "yaml", "--pkg", "./a,./b"}))

	cfg, err := Load(LoadOptions{Dir: dir, Flags: flags})
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Workers)
	assert.Equal(t, "from env", cfg.Settings.Description)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, []string{"./a", "./b"}, cfg.Packages)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{Workers: 1, Format: "yml"}, ""},
		{"bad url", Config{Settings: document.Settings{URL: "not a url"}}, "settings.url"},
		{"negative founded", Config{Settings: document.Settings{Founded: -1}}, "settings.founded"},
		{"empty maintainer", Config{Settings: document.Settings{Maintainers: []string{""}}}, "settings.maintainers[0]"},
		{"negative workers", Config{Workers: -1}, "workers"},
		{"unknown format", Config{Format: "xml"}, "format"},
		{"both sources", Config{Packages: []string{"./..."}, Manifest: "m.yaml"}, "mutually exclusive"},
		{"bad key pattern", Config{KeyPattern: "(["}, "key_pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_OutputFormat(t *testing.T) {
	format, err := (&Config{Output: "docs.json"}).OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, document.FormatJSON, format)

	format, err = (&Config{Output: "docs.json", Format: "yaml"}).OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, document.FormatYAML, format)
}

func TestConfig_Keys(t *testing.T) {
	keys, err := (&Config{}).Keys()
	require.NoError(t, err)
	assert.True(t, keys.Valid("basic:counter"))

	keys, err = (&Config{KeyPattern: "[A-Z]+"}).Keys()
	require.NoError(t, err)
	assert.True(t, keys.Valid("ABC"))
	assert.False(t, keys.Valid("abc"))
}
