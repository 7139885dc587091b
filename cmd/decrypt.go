package cmd

import (
	"context"

	"github.com/illarion/qsandbox/internal/config"
	"github.com/illarion/qsandbox/internal/core"
	"github.com/illarion/qsandbox/internal/crypto"
)

// DecryptOptions holds flags for the decrypt command
type DecryptOptions struct {
	Level   crypto.Level
	In      string
	Out     string
	Verbose bool
}

// Decrypt opens a package at the selected level and prints the message
func Decrypt(ctx context.Context, cfg *config.Config, opts DecryptOptions, args []string) {
	pkg, err := readInput(opts.In, args)
	if err != nil {
		HandleError(err)
	}

	passphrase := GetPassphraseOrExit(cfg, false)
	defer crypto.ClearBytes(passphrase)

	sb := core.New(core.WithLevel(opts.Level))
	message, err := sb.Decrypt(ctx, passphrase, pkg)
	if opts.Verbose {
		printLog(sb)
	}
	if err != nil {
		HandleError(err)
	}

	if err := writeOutput(opts.Out, message); err != nil {
		HandleError(err)
	}
}
