package config

import (
	"github.com/danieljoos/wincred"
)

// Keychain stores secrets in the Windows Credential Manager.
type Keychain struct {
	prefix string
}

func NewKeychain(prefix string) *Keychain {
	return &Keychain{prefix: prefix}
}

func (k *Keychain) Set(key, secret string) error {
	cred := wincred.NewGenericCredential(secretName(k.prefix, key))
	cred.CredentialBlob = []byte(secret)
	cred.Persist = wincred.PersistLocalMachine
	return cred.Write()
}

func (k *Keychain) Get(key string) (string, error) {
	cred, err := wincred.GetGenericCredential(secretName(k.prefix, key))
	if err != nil {
		return "", err
	}
	return string(cred.CredentialBlob), nil
}

func (k *Keychain) Delete(key string) error {
	cred, err := wincred.GetGenericCredential(secretName(k.prefix, key))
	if err != nil {
		return err
	}
	return cred.Delete()
}
