// Package core provides the sandbox session and its supporting operations.
//
// Core operations include:
//   - Sandbox.Encrypt: Seal a message under a passphrase at the selected level
//   - Sandbox.Decrypt: Open a package at the selected level
//   - Vault.Save/Open: Keep packages on disk together with their level
//   - Compare: Diff a decrypted package against expected text
//
// Every sandbox operation appends a line to the session's OperationLog.
// Failures are logged by error kind only, never by message or key material.
package core
