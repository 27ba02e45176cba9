package config

import (
	"errors"
	"fmt"
	"sort"
)

// ErrSecretsUnsupported is returned by the keychain on platforms without a
// credential store.
var ErrSecretsUnsupported = errors.New("credential store not supported on this platform")

// SecretStore keeps option values such as API keys outside config files.
type SecretStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// OptionKeys returns every option key plugins read, sorted.
func OptionKeys() []string {
	keys := make([]string, 0, len(envOptions))
	for _, key := range envOptions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// IsOptionKey reports whether key is read by any plugin.
func IsOptionKey(key string) bool {
	for _, k := range envOptions {
		if k == key {
			return true
		}
	}
	return false
}

// OptionsFromSecrets looks up every option key in store. Keys that are
// missing or cannot be read are left unset.
func OptionsFromSecrets(store SecretStore) Options {
	opts := Options{}
	if store == nil {
		return opts
	}
	for _, key := range OptionKeys() {
		if v, err := store.Get(key); err == nil && v != "" {
			opts[key] = v
		}
	}
	return opts
}

func secretName(prefix, key string) string {
	return fmt.Sprintf("%s:%s", prefix, key)
}
