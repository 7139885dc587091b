// Package crypto provides the cryptographic primitives behind the sandbox.
//
// Encryption uses AES-256-GCM with:
//   - 32-byte key derived from a passphrase via PBKDF2
//   - 12-byte random nonce per message
//   - 16-byte authentication tag appended to the ciphertext
//
// Key derivation uses PBKDF2-HMAC-SHA256 with:
//   - 16-byte random salt per message (stored unencrypted in the package)
//   - iteration count selected by a security Level (100k to 800k)
//
// Memory safety:
//   - Use ClearBytes() to zero derived keys after use
//   - Keys are never cached between operations
package crypto
