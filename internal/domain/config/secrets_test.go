package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-assist/customtools/internal/domain/config"
)

type mapSecrets map[string]string

func (m mapSecrets) Get(key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", errors.New("element not found")
	}
	return v, nil
}

func (m mapSecrets) Set(key, value string) error {
	m[key] = value
	return nil
}

func (m mapSecrets) Delete(key string) error {
	delete(m, key)
	return nil
}

func TestOptionKeys(t *testing.T) {
	assert.Equal(t, []string{
		config.OptBraveAPIKey,
		config.OptReadURLToken,
		config.OptReadURLTokenHost,
		config.OptWASMDir,
	}, config.OptionKeys())
	assert.True(t, config.IsOptionKey("brave_api_key"))
	assert.False(t, config.IsOptionKey("password"))
}

func TestOptionsFromSecrets(t *testing.T) {
	store := mapSecrets{
		config.OptBraveAPIKey: "BSAsecret",
		"unrelated":           "ignored",
		config.OptWASMDir:     "",
	}

	opts := config.OptionsFromSecrets(store)
	assert.Equal(t, config.Options{config.OptBraveAPIKey: "BSAsecret"}, opts)
}

func TestOptionsFromSecrets_NilStore(t *testing.T) {
	assert.Empty(t, config.OptionsFromSecrets(nil))
}

func TestOptionSourcesLayer(t *testing.T) {
	file := config.Options{config.OptBraveAPIKey: "from-file", config.OptWASMDir: "/opt/wasm"}
	secrets := config.OptionsFromSecrets(mapSecrets{config.OptBraveAPIKey: "from-keychain"})
	t.Setenv("WASM_TOOLS_DIR", "/env/wasm")
	t.Setenv("BRAVE_API_KEY", "")

	opts := file.Merge(secrets).Merge(config.OptionsFromEnv())
	require.Equal(t, "from-keychain", opts.Get(config.OptBraveAPIKey))
	assert.Equal(t, "/env/wasm", opts.Get(config.OptWASMDir))
}
