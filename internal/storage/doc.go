// Package storage provides the BBolt database behind saved packages.
//
// Database structure uses two buckets:
//   - config: format version, timestamps, store ID
//   - packages: JSON records keyed by record ID
//
// Records hold package text that is already encrypted, so the store itself
// is not encrypted and listing it never needs a passphrase.
//
// BBolt provides ACID transactions, file locking, and corruption detection.
package storage
