package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ".jsonv.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	assert.False(t, cfg.SortKeys)
	assert.Empty(t, cfg.RenameKeys)
	assert.True(t, cfg.TrailingNewline)
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, "sort_keys: true\nrename_keys: snake\ntrailing_newline: false\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.SortKeys)
	assert.Equal(t, "snake", cfg.RenameKeys)
	assert.False(t, cfg.TrailingNewline)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeTempConfig(t, "sort_keys: true\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.SortKeys)
	assert.Empty(t, cfg.RenameKeys)
	assert.True(t, cfg.TrailingNewline)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeTempConfig(t, "sort_keys: [unclosed\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfig_InvalidRenameStyle(t *testing.T) {
	path := writeTempConfig(t, "rename_keys: shouting\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rename_keys")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfigWithCLI_NoFile(t *testing.T) {
	cfg, err := LoadConfigWithCLI("", true, "camel")
	require.NoError(t, err)
	assert.True(t, cfg.SortKeys)
	assert.Equal(t, "camel", cfg.RenameKeys)
}

func TestLoadConfigWithCLI_CLIOverridesFile(t *testing.T) {
	path := writeTempConfig(t, "rename_keys: snake\n")

	cfg, err := LoadConfigWithCLI(path, false, "kebab")
	require.NoError(t, err)
	assert.Equal(t, "kebab", cfg.RenameKeys)

	// Default CLI values leave the file's settings alone
	cfg, err = LoadConfigWithCLI(path, false, "")
	require.NoError(t, err)
	assert.Equal(t, "snake", cfg.RenameKeys)
}

func TestLoadConfigWithCLI_InvalidCLIStyle(t *testing.T) {
	_, err := LoadConfigWithCLI("", false, "shouting")
	assert.Error(t, err)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0755))

	configPath := filepath.Join(dir, "jsonv.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("sort_keys: true\n"), 0644))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(cwd) }()
	require.NoError(t, os.Chdir(sub))

	found := FindConfigFile()
	require.NotEmpty(t, found)

	// Resolve symlinks before comparing; macOS tempdirs live under /var
	wantDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotDir, err := filepath.EvalSymlinks(filepath.Dir(found))
	require.NoError(t, err)
	assert.Equal(t, wantDir, gotDir)
	assert.Equal(t, "jsonv.yml", filepath.Base(found))
}
