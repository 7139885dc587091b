package keyring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestPassphraseLifecycle(t *testing.T) {
	keyring.MockInit()

	assert.False(t, HasPassphrase("work"))

	got, err := Lookup("work")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, SavePassphrase("work", "correct horse"))
	assert.True(t, HasPassphrase("work"))
	assert.False(t, HasPassphrase("home"))

	got, err = Lookup("work")
	require.NoError(t, err)
	assert.Equal(t, []byte("correct horse"), got)

	require.NoError(t, DeletePassphrase("work"))
	assert.False(t, HasPassphrase("work"))

	_, err = GetPassphrase("work")
	assert.ErrorIs(t, err, ErrNotFound)
}
