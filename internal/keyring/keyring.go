// Package keyring stores sandbox passphrases in the OS keyring, one entry
// per profile.
package keyring

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const serviceName = "qsandbox"

// ErrNotFound is returned when no passphrase is stored for the profile.
var ErrNotFound = keyring.ErrNotFound

// SavePassphrase stores a passphrase in the OS keyring
func SavePassphrase(profile string, passphrase string) error {
	return keyring.Set(serviceName, profile, passphrase)
}

// GetPassphrase retrieves a passphrase from the OS keyring
func GetPassphrase(profile string) (string, error) {
	return keyring.Get(serviceName, profile)
}

// DeletePassphrase removes a passphrase from the OS keyring
func DeletePassphrase(profile string) error {
	return keyring.Delete(serviceName, profile)
}

// HasPassphrase checks if a passphrase is stored for the profile
func HasPassphrase(profile string) bool {
	_, err := keyring.Get(serviceName, profile)
	return err == nil
}

// Lookup returns the stored passphrase, or nil if there is none or the
// keyring is unavailable.
func Lookup(profile string) ([]byte, error) {
	secret, err := keyring.Get(serviceName, profile)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(secret), nil
}
