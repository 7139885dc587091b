package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illarion/qsandbox/internal/crypto"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, crypto.DefaultLevel, cfg.Level)
	assert.Equal(t, DefaultStore, cfg.StorePath)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultProfile, cfg.Profile)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		EnvLevel:    "L3",
		EnvStore:    "/tmp/box.db",
		EnvLogLevel: "DEBUG",
		EnvProfile:  "work",
	}))
	require.NoError(t, err)

	assert.Equal(t, crypto.L3, cfg.Level)
	assert.Equal(t, "/tmp/box.db", cfg.StorePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "work", cfg.Profile)
}

func TestLoadRejectsUnknownLevel(t *testing.T) {
	_, err := LoadFrom(envMap(map[string]string{EnvLevel: "L9"}))
	assert.ErrorIs(t, err, crypto.ErrUnknownLevel)
}

func TestPassphraseFromEnv(t *testing.T) {
	t.Setenv(EnvPassphrase, "")
	assert.Nil(t, PassphraseFromEnv())

	t.Setenv(EnvPassphrase, "correct horse")
	assert.Equal(t, []byte("correct horse"), PassphraseFromEnv())
}
