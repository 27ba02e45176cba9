package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mcp-assist/customtools/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlData := `
enabled_tools:
  - brave_search
  - read_url
`
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0644))

	cfg, err := config.NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"brave_search", "read_url"}, cfg.EnabledTools)
	assert.True(t, cfg.Enabled("read_url"))
	assert.False(t, cfg.Enabled("wasm_tools"))
}

func TestStore_LoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`enabled_tools = ["read_url"]`), 0644))

	cfg, err := config.NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"read_url"}, cfg.EnabledTools)
}

func TestStore_LoadNonExistent(t *testing.T) {
	cfg, err := config.NewStore(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	assert.NoError(t, err)
	assert.Empty(t, cfg.EnabledTools)
}

func TestStore_LoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	cfg, err := config.NewStore(path).Load()
	assert.NoError(t, err)
	assert.Empty(t, cfg.EnabledTools)
}

func TestStore_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("enabled_tools: [read_url"), 0644))

	_, err := config.NewStore(path).Load()
	assert.Error(t, err)
}

func TestStore_SaveAndLoad(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			store := config.NewStore(filepath.Join(t.TempDir(), name))
			require.NoError(t, store.Save(config.Config{EnabledTools: []string{"code_interpreter"}}))

			cfg, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, []string{"code_interpreter"}, cfg.EnabledTools)
		})
	}
}
