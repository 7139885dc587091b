package cmd

import (
	"context"
	"fmt"

	"github.com/illarion/qsandbox/internal/config"
	"github.com/illarion/qsandbox/internal/core"
	"github.com/illarion/qsandbox/internal/crypto"
)

// Compare decrypts a package and diffs it against expected text.
// expected is read from expectedFile when set, otherwise taken literally.
func Compare(ctx context.Context, cfg *config.Config, level crypto.Level, pkg, expected, expectedFile string) {
	if expectedFile != "" {
		var err error
		if expected, err = readInput(expectedFile, nil); err != nil {
			HandleError(err)
		}
	}

	passphrase := GetPassphraseOrExit(cfg, false)
	defer crypto.ClearBytes(passphrase)

	sb := core.New(core.WithLevel(level))
	diff, err := core.Compare(ctx, sb, passphrase, pkg, expected)
	if err != nil {
		HandleError(err)
	}

	if diff == "" {
		fmt.Println("Decrypted message matches")
		return
	}
	fmt.Print(diff)
}
