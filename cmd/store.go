package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/illarion/qsandbox/internal/config"
	"github.com/illarion/qsandbox/internal/core"
	"github.com/illarion/qsandbox/internal/crypto"
	"github.com/illarion/qsandbox/internal/git"
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Save stores an existing package together with its level
func Save(cfg *config.Config, level crypto.Level, label, in string, args []string) {
	pkg, err := readInput(in, args)
	if err != nil {
		HandleError(err)
	}

	rec, err := core.NewVault(cfg.StorePath).Save(label, level, pkg)
	if err != nil {
		HandleError(err)
	}
	fmt.Printf("saved %s (%s)\n", shortID(rec.ID), rec.Level)
}

// List shows saved packages (no passphrase required)
func List(cfg *config.Config) {
	records, err := core.NewVault(cfg.StorePath).List()
	if err != nil {
		HandleError(err)
	}

	if len(records) == 0 {
		fmt.Println("No saved packages")
		return
	}

	fmt.Printf("Packages in %s:\n", cfg.StorePath)
	for _, rec := range records {
		label := rec.Label
		if label == "" {
			label = "(no label)"
		}
		fmt.Printf("  %s  %s  %s  %s  %s\n",
			shortID(rec.ID), rec.Level, rec.Created.Format(time.DateTime), formatSize(rec.Size()), label)
	}
}

// Show prints a saved package
func Show(cfg *config.Config, id string) {
	rec, err := core.NewVault(cfg.StorePath).Get(id)
	if err != nil {
		HandleError(err)
	}
	fmt.Printf("id:      %s\n", rec.ID)
	fmt.Printf("label:   %s\n", rec.Label)
	fmt.Printf("level:   %s (%d iterations)\n", rec.Level, rec.Level.Iterations())
	fmt.Printf("created: %s\n", rec.Created.Format(time.RFC3339))
	fmt.Println(rec.Package)
}

// Open decrypts a saved package with its recorded level
func Open(ctx context.Context, cfg *config.Config, id, out string) {
	passphrase := GetPassphraseOrExit(cfg, false)
	defer crypto.ClearBytes(passphrase)

	sb := core.New()
	message, err := core.NewVault(cfg.StorePath).Open(ctx, sb, passphrase, id)
	if err != nil {
		HandleError(err)
	}
	if err := writeOutput(out, message); err != nil {
		HandleError(err)
	}
}

// Remove deletes saved packages
func Remove(cfg *config.Config, ids []string) {
	if len(ids) == 0 {
		fmt.Fprintf(os.Stderr, "Error: rm requires at least one id\n")
		fmt.Fprintf(os.Stderr, "Usage: qsandbox rm <id> [id...]\n")
		os.Exit(1)
	}

	vault := core.NewVault(cfg.StorePath)
	for _, id := range ids {
		rec, err := vault.Remove(id)
		if err != nil {
			HandleError(err)
		}
		fmt.Printf("removed: %s\n", shortID(rec.ID))
	}

	if err := vault.Compact(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: compaction failed: %s\n", err)
	}
}

// Compact compacts the store to reclaim unused space
func Compact(cfg *config.Config) {
	info, err := os.Stat(cfg.StorePath)
	if err != nil {
		HandleError(core.ErrNotInitialized)
	}
	sizeBefore := info.Size()

	if err := core.NewVault(cfg.StorePath).Compact(); err != nil {
		HandleError(err)
	}

	info, err = os.Stat(cfg.StorePath)
	if err != nil {
		HandleError(err)
	}
	fmt.Printf("Compacted: %s -> %s\n", formatSize(int(sizeBefore)), formatSize(int(info.Size())))
}

// Status shows store statistics (no passphrase required)
func Status(cfg *config.Config) {
	vault := core.NewVault(cfg.StorePath)
	if !vault.Exists() {
		fmt.Printf("No package store at %s\n", cfg.StorePath)
		fmt.Println("Use 'qsandbox save' or 'qsandbox encrypt -save' to create one")
		return
	}

	status, err := vault.Status()
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("Store:    %s (%s)\n", cfg.StorePath, shortID(status.StoreID))
	fmt.Printf("Packages: %d (%s)\n", status.Count, formatSize(status.TotalSize))
	fmt.Printf("Modified: %s\n", status.Modified.Format(time.RFC3339))
	if status.Count > 0 {
		var parts []string
		for _, level := range crypto.Levels() {
			if n := status.ByLevel[level]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s=%d", level, n))
			}
		}
		fmt.Printf("Levels:   %s\n", strings.Join(parts, " "))
	}
	fmt.Print(git.FormatGitStatus(status.GitStatus, cfg.StorePath))
}
