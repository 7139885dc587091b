package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/illarion/qsandbox/internal/config"
	"github.com/illarion/qsandbox/internal/keyring"
)

func TestPassphraseSourceOrder(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv(config.EnvPassphrase, "")

	var prompted, confirmed bool
	src := PassphraseSource{
		Profile: "test",
		Confirm: true,
		Prompt: func(confirm bool) ([]byte, error) {
			prompted, confirmed = true, confirm
			return []byte("typed"), nil
		},
	}

	got, err := src.Get()
	require.NoError(t, err)
	assert.Equal(t, []byte("typed"), got)
	assert.True(t, prompted)
	assert.True(t, confirmed)

	require.NoError(t, keyring.SavePassphrase("test", "from keyring"))
	got, err = src.Get()
	require.NoError(t, err)
	assert.Equal(t, []byte("from keyring"), got)

	t.Setenv(config.EnvPassphrase, "from env")
	got, err = src.Get()
	require.NoError(t, err)
	assert.Equal(t, []byte("from env"), got)
}

func TestPassphraseSourcePromptError(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv(config.EnvPassphrase, "")

	boom := errors.New("no tty")
	src := PassphraseSource{Prompt: func(bool) ([]byte, error) { return nil, boom }}

	_, err := src.Get()
	assert.ErrorIs(t, err, boom)
}
