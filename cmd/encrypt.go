package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/illarion/qsandbox/internal/config"
	"github.com/illarion/qsandbox/internal/core"
	"github.com/illarion/qsandbox/internal/crypto"
)

// EncryptOptions holds flags for the encrypt command
type EncryptOptions struct {
	Level   crypto.Level
	In      string
	Out     string
	Save    string
	Verbose bool
}

// Encrypt seals a message and prints the package
func Encrypt(ctx context.Context, cfg *config.Config, opts EncryptOptions, args []string) {
	message, err := readInput(opts.In, args)
	if err != nil {
		HandleError(err)
	}

	passphrase := GetPassphraseOrExit(cfg, true)
	defer crypto.ClearBytes(passphrase)

	sb := core.New(core.WithLevel(opts.Level))
	pkg, err := sb.Encrypt(ctx, passphrase, message)
	if opts.Verbose {
		printLog(sb)
	}
	if err != nil {
		HandleError(err)
	}

	if err := writeOutput(opts.Out, pkg); err != nil {
		HandleError(err)
	}

	if opts.Save != "" {
		rec, err := core.NewVault(cfg.StorePath).Save(opts.Save, opts.Level, pkg)
		if err != nil {
			HandleError(err)
		}
		fmt.Fprintf(os.Stderr, "saved %s (%s)\n", shortID(rec.ID), rec.Level)
	}
}
