// Package config resolves qsandbox settings from the environment.
// Command-line flags override the values returned here.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/illarion/qsandbox/internal/crypto"
)

const (
	EnvPassphrase = "QSANDBOX_PASSPHRASE"
	EnvLevel      = "QSANDBOX_LEVEL"
	EnvStore      = "QSANDBOX_STORE"
	EnvLogLevel   = "QSANDBOX_LOG_LEVEL"
	EnvProfile    = "QSANDBOX_PROFILE"

	DefaultStore    = ".qsandbox"
	DefaultLogLevel = "warn"
	DefaultProfile  = "default"
)

// Config holds resolved settings.
type Config struct {
	Level     crypto.Level
	StorePath string
	LogLevel  string
	Profile   string
}

// Load reads settings using os.Getenv.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads settings through getenv.
func LoadFrom(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Level:     crypto.DefaultLevel,
		StorePath: DefaultStore,
		LogLevel:  DefaultLogLevel,
		Profile:   DefaultProfile,
	}

	if v := strings.TrimSpace(getenv(EnvLevel)); v != "" {
		level, err := crypto.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLevel, err)
		}
		cfg.Level = level
	}
	if v := strings.TrimSpace(getenv(EnvStore)); v != "" {
		cfg.StorePath = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvProfile)); v != "" {
		cfg.Profile = v
	}
	return cfg, nil
}

// PassphraseFromEnv reads the passphrase from QSANDBOX_PASSPHRASE.
// Returns nil when unset. The result is a fresh copy the caller may clear.
func PassphraseFromEnv() []byte {
	passphrase := os.Getenv(EnvPassphrase)
	if passphrase == "" {
		return nil
	}
	result := make([]byte, len(passphrase))
	copy(result, passphrase)
	return result
}
