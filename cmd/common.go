package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/illarion/qsandbox/internal/config"
	"github.com/illarion/qsandbox/internal/core"
	"github.com/illarion/qsandbox/internal/crypto"
	"github.com/illarion/qsandbox/internal/envelope"
	"github.com/illarion/qsandbox/internal/security"
)

// GetPassphrase resolves the passphrase from env, keyring or prompt.
// The caller is responsible for calling crypto.ClearBytes on the result.
func GetPassphrase(cfg *config.Config, confirm bool) ([]byte, error) {
	src := core.PassphraseSource{Profile: cfg.Profile, Confirm: confirm}
	passphrase, err := src.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	return passphrase, nil
}

// GetPassphraseOrExit is like GetPassphrase but exits on error
func GetPassphraseOrExit(cfg *config.Config, confirm bool) []byte {
	passphrase, err := GetPassphrase(cfg, confirm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return passphrase
}

// HandleError prints a user-facing message for err and exits.
// Crypto failures are reported by kind only.
func HandleError(err error) {
	switch {
	case errors.Is(err, core.ErrNotInitialized):
		fmt.Fprintf(os.Stderr, "Error: no package store found\n")
		fmt.Fprintf(os.Stderr, "Use 'qsandbox save' or 'qsandbox encrypt -save' to create one\n")
	case errors.Is(err, crypto.ErrAuthentication):
		fmt.Fprintf(os.Stderr, "Error: %s: wrong passphrase, wrong level, or tampered package\n", crypto.Kind(err))
	case errors.Is(err, envelope.ErrMalformed):
		fmt.Fprintf(os.Stderr, "Error: %s: input is not a valid package\n", crypto.Kind(err))
	case errors.Is(err, crypto.ErrDerivation),
		errors.Is(err, crypto.ErrInvalidKeyLength),
		errors.Is(err, crypto.ErrInvalidNonceLength):
		fmt.Fprintf(os.Stderr, "Error: %s\n", crypto.Kind(err))
	case errors.Is(err, core.ErrNotFound), errors.Is(err, core.ErrAmbiguousID):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Use 'qsandbox ls' to see saved packages\n")
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}

// readInput returns text from -in, the remaining arguments, or piped stdin,
// in that order.
func readInput(inFile string, args []string) (string, error) {
	if inFile != "" {
		pv, err := security.New(".")
		if err != nil {
			return "", err
		}
		defer pv.Close()

		data, err := pv.ReadFile(inFile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	return "", fmt.Errorf("no input: pass an argument, -in <file>, or pipe to stdin")
}

// writeOutput prints text, or writes it to -out inside the working directory.
func writeOutput(outFile, text string) error {
	if outFile == "" {
		fmt.Println(text)
		return nil
	}

	pv, err := security.New(".")
	if err != nil {
		return err
	}
	defer pv.Close()

	if err := pv.WriteFile(outFile, []byte(text), 0600); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", outFile)
	return nil
}

// printLog writes the session log, newest first, to stderr.
func printLog(sb *core.Sandbox) {
	for _, entry := range sb.Log().Entries() {
		fmt.Fprintln(os.Stderr, entry)
	}
}

// formatSize formats a size in human-readable form
func formatSize(size int) string {
	const KB = 1024

	if size >= KB {
		return fmt.Sprintf("%.1f KB", float64(size)/KB)
	}
	return fmt.Sprintf("%d bytes", size)
}
