// Package envelope converts between the sealed message parts and the
// transportable package text.
//
// Binary layout: salt (16 bytes) || nonce (12 bytes) || ciphertext || tag,
// encoded as standard base64 with padding and no line breaks.
package envelope

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/illarion/qsandbox/internal/crypto"
)

// MinSize is the smallest decoded package that can hold salt and nonce.
const MinSize = crypto.SaltSize + crypto.NonceSize

// ErrMalformed is returned for text that is not a valid package.
var ErrMalformed = crypto.ErrMalformedPackage

// Parts holds a decoded package. The slices do not alias each other.
type Parts struct {
	Salt   []byte
	Nonce  []byte
	Sealed []byte
}

// Encode concatenates salt, nonce and sealed and returns base64 text.
func Encode(salt, nonce, sealed []byte) (string, error) {
	if len(salt) != crypto.SaltSize {
		return "", fmt.Errorf("%w: salt must be %d bytes, got %d", ErrMalformed, crypto.SaltSize, len(salt))
	}
	if len(nonce) != crypto.NonceSize {
		return "", fmt.Errorf("%w: nonce must be %d bytes, got %d", ErrMalformed, crypto.NonceSize, len(nonce))
	}

	buf := make([]byte, 0, MinSize+len(sealed))
	buf = append(buf, salt...)
	buf = append(buf, nonce...)
	buf = append(buf, sealed...)
	return base64.StdEncoding.EncodeToString(buf), nil
}

// Decode parses package text produced by Encode.
// Surrounding whitespace is ignored so pasted tokens decode.
func Decode(text string) (*Parts, error) {
	raw, err := base64.StdEncoding.Strict().DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %v", ErrMalformed, err)
	}
	if len(raw) < MinSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformed, len(raw), MinSize)
	}

	return &Parts{
		Salt:   raw[:crypto.SaltSize:crypto.SaltSize],
		Nonce:  raw[crypto.SaltSize:MinSize:MinSize],
		Sealed: raw[MinSize:],
	}, nil
}

// Valid reports whether text decodes as a package.
func Valid(text string) bool {
	_, err := Decode(text)
	return err == nil
}
