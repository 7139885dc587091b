package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/qsandbox/internal/config"
	"github.com/illarion/qsandbox/internal/core"
	"github.com/illarion/qsandbox/internal/crypto"
	"github.com/illarion/qsandbox/internal/keyring"
)

// KeyringSave prompts for a passphrase and saves it for the profile
func KeyringSave(cfg *config.Config) {
	passphrase, err := core.ReadPassphraseConfirm()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(passphrase)

	if err := keyring.SavePassphrase(cfg.Profile, string(passphrase)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("Passphrase saved to keyring (profile %s)\n", cfg.Profile)
}

// KeyringDelete removes the profile's passphrase from the OS keyring
func KeyringDelete(cfg *config.Config) {
	if err := keyring.DeletePassphrase(cfg.Profile); err != nil {
		fmt.Println("No passphrase stored in keyring")
		return
	}

	fmt.Println("Passphrase removed from keyring")
}

// KeyringStatus checks if a passphrase is stored for the profile
func KeyringStatus(cfg *config.Config) {
	if keyring.HasPassphrase(cfg.Profile) {
		fmt.Printf("Passphrase: stored in keyring (profile %s)\n", cfg.Profile)
	} else {
		fmt.Println("Passphrase: not stored")
	}
}
