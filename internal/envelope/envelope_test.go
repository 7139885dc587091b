package envelope

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illarion/qsandbox/internal/crypto"
)

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, size := range []int{0, 1, 15, 16, 17, 100, 4096} {
		salt := randomBytes(t, crypto.SaltSize)
		nonce := randomBytes(t, crypto.NonceSize)
		sealed := randomBytes(t, size)

		text, err := Encode(salt, nonce, sealed)
		require.NoError(t, err)

		parts, err := Decode(text)
		require.NoError(t, err)
		assert.Equal(t, salt, parts.Salt)
		assert.Equal(t, nonce, parts.Nonce)
		assert.True(t, bytes.Equal(sealed, parts.Sealed), "sealed mismatch for size %d", size)
	}
}

func TestEncodeLayout(t *testing.T) {
	salt := bytes.Repeat([]byte{0xAA}, crypto.SaltSize)
	nonce := bytes.Repeat([]byte{0xBB}, crypto.NonceSize)
	sealed := []byte{0x01, 0x02, 0x03}

	text, err := Encode(salt, nonce, sealed)
	require.NoError(t, err)

	want := base64.StdEncoding.EncodeToString(append(append(append([]byte{}, salt...), nonce...), sealed...))
	assert.Equal(t, want, text)
	assert.NotContains(t, text, "\n")
}

func TestEncodeRejectsBadLengths(t *testing.T) {
	_, err := Encode(make([]byte, 8), make([]byte, crypto.NonceSize), nil)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Encode(make([]byte, crypto.SaltSize), make([]byte, 16), nil)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeMalformed(t *testing.T) {
	short := base64.StdEncoding.EncodeToString(make([]byte, MinSize-1))

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"too short", short},
		{"illegal characters", "not*base64!"},
		{"bad length", "QUJD" + "R"},
		{"url alphabet", strings.Repeat("-_", 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.text)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Equal(t, "MalformedPackage", crypto.Kind(err))
		})
	}
}

func TestDecodeMinimumSize(t *testing.T) {
	text := base64.StdEncoding.EncodeToString(make([]byte, MinSize))
	parts, err := Decode(text)
	require.NoError(t, err)
	assert.Len(t, parts.Salt, crypto.SaltSize)
	assert.Len(t, parts.Nonce, crypto.NonceSize)
	assert.Empty(t, parts.Sealed)
}

func TestDecodeTrimsWhitespace(t *testing.T) {
	text, err := Encode(make([]byte, crypto.SaltSize), make([]byte, crypto.NonceSize), []byte("x"))
	require.NoError(t, err)

	assert.True(t, Valid("  "+text+"\n"))
}

func TestDecodedPartsDoNotAlias(t *testing.T) {
	text, err := Encode(make([]byte, crypto.SaltSize), make([]byte, crypto.NonceSize), []byte("sealed"))
	require.NoError(t, err)

	parts, err := Decode(text)
	require.NoError(t, err)

	_ = append(parts.Salt, 0xFF)
	_ = append(parts.Nonce, 0xFF)
	assert.Equal(t, byte(0), parts.Nonce[0])
	assert.Equal(t, []byte("sealed"), parts.Sealed)
}
