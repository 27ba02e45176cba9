//go:build !windows

package config

// Keychain is unavailable off Windows; every operation reports
// ErrSecretsUnsupported and lookups fall through to other option sources.
type Keychain struct {
	prefix string
}

func NewKeychain(prefix string) *Keychain {
	return &Keychain{prefix: prefix}
}

func (k *Keychain) Set(key, secret string) error {
	return ErrSecretsUnsupported
}

func (k *Keychain) Get(key string) (string, error) {
	return "", ErrSecretsUnsupported
}

func (k *Keychain) Delete(key string) error {
	return ErrSecretsUnsupported
}
