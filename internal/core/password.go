package core

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/illarion/qsandbox/internal/config"
	"github.com/illarion/qsandbox/internal/crypto"
	"github.com/illarion/qsandbox/internal/keyring"
)

// ReadPassphrase reads a passphrase from the terminal without echoing
func ReadPassphrase(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)

	passphrase, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// ReadPassphraseConfirm reads a passphrase twice and ensures they match
func ReadPassphraseConfirm() ([]byte, error) {
	passphrase1, err := ReadPassphrase("Enter passphrase: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(passphrase1)

	passphrase2, err := ReadPassphrase("Confirm passphrase: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(passphrase2)

	if !crypto.ConstantTimeCompare(passphrase1, passphrase2) {
		return nil, fmt.Errorf("passphrases do not match")
	}

	result := make([]byte, len(passphrase1))
	copy(result, passphrase1)
	return result, nil
}

// PassphraseSource resolves the passphrase for one operation.
// Order: environment, OS keyring entry for Profile, interactive prompt.
type PassphraseSource struct {
	Profile string
	// Confirm asks twice when prompting.
	Confirm bool
	// Prompt is used when neither env nor keyring has a passphrase.
	// Defaults to ReadPassphrase / ReadPassphraseConfirm.
	Prompt func(confirm bool) ([]byte, error)
}

// Get returns the passphrase. The caller must crypto.ClearBytes the result.
func (p PassphraseSource) Get() ([]byte, error) {
	if passphrase := config.PassphraseFromEnv(); passphrase != nil {
		log.Debug().Str("source", "env").Msg("passphrase resolved")
		return passphrase, nil
	}

	if p.Profile != "" {
		passphrase, err := keyring.Lookup(p.Profile)
		if err != nil {
			log.Debug().Err(err).Msg("keyring unavailable")
		} else if passphrase != nil {
			log.Debug().Str("source", "keyring").Str("profile", p.Profile).Msg("passphrase resolved")
			return passphrase, nil
		}
	}

	prompt := p.Prompt
	if prompt == nil {
		prompt = func(confirm bool) ([]byte, error) {
			if confirm {
				return ReadPassphraseConfirm()
			}
			return ReadPassphrase("Enter passphrase: ")
		}
	}
	return prompt(p.Confirm)
}
