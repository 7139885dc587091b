package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/awnumar/memguard"

	"github.com/illarion/qsandbox/cmd"
	"github.com/illarion/qsandbox/internal/config"
	"github.com/illarion/qsandbox/internal/crypto"
	"github.com/illarion/qsandbox/internal/logging"
)

func main() {
	defer memguard.Purge()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, os.Stderr)

	switch os.Args[1] {
	case "levels":
		runLevels(cfg, os.Args[2:])
	case "encrypt":
		runEncrypt(ctx, cfg, os.Args[2:])
	case "decrypt":
		runDecrypt(ctx, cfg, os.Args[2:])
	case "save":
		runSave(cfg, os.Args[2:])
	case "ls":
		runLs(cfg, os.Args[2:])
	case "show":
		runShow(cfg, os.Args[2:])
	case "open":
		runOpen(ctx, cfg, os.Args[2:])
	case "rm":
		runRm(cfg, os.Args[2:])
	case "compare":
		runCompare(ctx, cfg, os.Args[2:])
	case "compact":
		runCompact(cfg, os.Args[2:])
	case "status":
		runStatus(cfg, os.Args[2:])
	case "shell":
		runShell(ctx, cfg, os.Args[2:])
	case "keyring":
		runKeyring(cfg, os.Args[2:])
	case "completion":
		runCompletion(os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// parseFlags parses args and exits on error
func parseFlags(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// levelFlag registers -level and returns a resolver that falls back to cfg
func levelFlag(fs *flag.FlagSet, cfg *config.Config) func() crypto.Level {
	value := fs.String("level", "", "Security level L1-L4 (default from QSANDBOX_LEVEL or L1)")
	return func() crypto.Level {
		if *value == "" {
			return cfg.Level
		}
		level, err := crypto.ParseLevel(*value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		return level
	}
}

func storeFlag(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&cfg.StorePath, "store", cfg.StorePath, "Package store file")
}

func runLevels(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("levels", flag.ExitOnError)
	level := levelFlag(fs, cfg)
	parseFlags(fs, args)

	cmd.Levels(level())
}

func runEncrypt(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	level := levelFlag(fs, cfg)
	storeFlag(fs, cfg)
	in := fs.String("in", "", "Read message from file")
	out := fs.String("out", "", "Write package to file")
	save := fs.String("save", "", "Also save the package to the store with this label")
	verbose := fs.Bool("v", false, "Print the operation log to stderr")
	parseFlags(fs, args)

	cmd.Encrypt(ctx, cfg, cmd.EncryptOptions{
		Level:   level(),
		In:      *in,
		Out:     *out,
		Save:    *save,
		Verbose: *verbose,
	}, fs.Args())
}

func runDecrypt(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	level := levelFlag(fs, cfg)
	in := fs.String("in", "", "Read package from file")
	out := fs.String("out", "", "Write message to file")
	verbose := fs.Bool("v", false, "Print the operation log to stderr")
	parseFlags(fs, args)

	cmd.Decrypt(ctx, cfg, cmd.DecryptOptions{
		Level:   level(),
		In:      *in,
		Out:     *out,
		Verbose: *verbose,
	}, fs.Args())
}

func runSave(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	level := levelFlag(fs, cfg)
	storeFlag(fs, cfg)
	label := fs.String("label", "", "Label for the saved package")
	in := fs.String("in", "", "Read package from file")
	parseFlags(fs, args)

	cmd.Save(cfg, level(), *label, *in, fs.Args())
}

func runLs(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	storeFlag(fs, cfg)
	parseFlags(fs, args)

	cmd.List(cfg)
}

func runShow(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	storeFlag(fs, cfg)
	parseFlags(fs, args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: qsandbox show <id>")
		os.Exit(1)
	}
	cmd.Show(cfg, fs.Arg(0))
}

func runOpen(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	storeFlag(fs, cfg)
	out := fs.String("out", "", "Write message to file")
	parseFlags(fs, args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: qsandbox open [-out file] <id>")
		os.Exit(1)
	}
	cmd.Open(ctx, cfg, fs.Arg(0), *out)
}

func runRm(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	storeFlag(fs, cfg)
	parseFlags(fs, args)

	cmd.Remove(cfg, fs.Args())
}

func runCompare(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	level := levelFlag(fs, cfg)
	expectedFile := fs.String("expected-file", "", "Read expected text from file")
	parseFlags(fs, args)

	switch {
	case fs.NArg() == 2 && *expectedFile == "":
		cmd.Compare(ctx, cfg, level(), fs.Arg(0), fs.Arg(1), "")
	case fs.NArg() == 1 && *expectedFile != "":
		cmd.Compare(ctx, cfg, level(), fs.Arg(0), "", *expectedFile)
	default:
		fmt.Fprintln(os.Stderr, "Usage: qsandbox compare [-level L] <package> <expected>")
		fmt.Fprintln(os.Stderr, "       qsandbox compare [-level L] -expected-file <file> <package>")
		os.Exit(1)
	}
}

func runCompact(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("compact", flag.ExitOnError)
	storeFlag(fs, cfg)
	parseFlags(fs, args)

	cmd.Compact(cfg)
}

func runStatus(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	storeFlag(fs, cfg)
	parseFlags(fs, args)

	cmd.Status(cfg)
}

func runShell(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	level := levelFlag(fs, cfg)
	parseFlags(fs, args)

	cfg.Level = level()
	cmd.Shell(ctx, cfg)
}

func runKeyring(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("keyring", flag.ExitOnError)
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "Keyring profile name")
	parseFlags(fs, args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: qsandbox keyring [-profile name] <save|delete|status>")
		os.Exit(1)
	}
	switch fs.Arg(0) {
	case "save":
		cmd.KeyringSave(cfg)
	case "delete":
		cmd.KeyringDelete(cfg)
	case "status":
		cmd.KeyringStatus(cfg)
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring action: %s\n", fs.Arg(0))
		os.Exit(1)
	}
}

func runCompletion(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: qsandbox completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("qsandbox - passphrase message encryption sandbox")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  qsandbox <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  levels      List security levels and their work factors")
	fmt.Println("  encrypt     Encrypt a message into a package")
	fmt.Println("  decrypt     Decrypt a package")
	fmt.Println("  save        Save a package to the store")
	fmt.Println("  ls          List saved packages")
	fmt.Println("  show        Print a saved package")
	fmt.Println("  open        Decrypt a saved package with its recorded level")
	fmt.Println("  rm          Remove saved packages")
	fmt.Println("  compare     Diff a decrypted package against expected text")
	fmt.Println("  compact     Compact the package store")
	fmt.Println("  status      Show package store status")
	fmt.Println("  shell       Start an interactive sandbox session")
	fmt.Println("  keyring     Manage the stored passphrase")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  qsandbox encrypt hello               # Encrypt at L1")
	fmt.Println("  qsandbox encrypt -level L3 -save memo hello")
	fmt.Println("  qsandbox decrypt <package>           # Decrypt at L1")
	fmt.Println("  qsandbox shell                       # Interactive session")
	fmt.Println()
	fmt.Println("Use 'qsandbox help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "levels":
		fmt.Println("qsandbox levels")
		fmt.Println()
		fmt.Println("Lists the four security levels and the PBKDF2 iteration count")
		fmt.Println("each one uses. The selected level is marked with '*'.")
	case "encrypt":
		fmt.Println("qsandbox encrypt [-level L] [-in file] [-out file] [-save label] [-v] [message]")
		fmt.Println()
		fmt.Println("Encrypts a message with AES-256-GCM under a key derived from the passphrase.")
		fmt.Println("The message is taken from -in, the arguments, or stdin.")
		fmt.Println("Prints a base64 package: salt (16) || nonce (12) || ciphertext || tag.")
		fmt.Println()
		fmt.Println("The level is NOT stored in the package; decrypt with the same level,")
		fmt.Println("or use -save so the store records it.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -level L       Security level L1-L4")
		fmt.Println("  -in file       Read message from file")
		fmt.Println("  -out file      Write package to file")
		fmt.Println("  -save label    Also save the package to the store")
		fmt.Println("  -v             Print the operation log")
	case "decrypt":
		fmt.Println("qsandbox decrypt [-level L] [-in file] [-out file] [-v] [package]")
		fmt.Println()
		fmt.Println("Decrypts a package. Any failure to authenticate is reported as")
		fmt.Println("AuthenticationFailure: wrong passphrase, wrong level and tampering")
		fmt.Println("are indistinguishable.")
	case "save":
		fmt.Println("qsandbox save [-level L] [-label X] [-in file] [package]")
		fmt.Println()
		fmt.Println("Saves a package to the store with the level it was encrypted at.")
	case "ls":
		fmt.Println("qsandbox ls")
		fmt.Println()
		fmt.Println("Lists saved packages, newest first. Does not require a passphrase.")
	case "show":
		fmt.Println("qsandbox show <id>")
		fmt.Println()
		fmt.Println("Prints a saved package and its details. IDs may be abbreviated.")
	case "open":
		fmt.Println("qsandbox open [-out file] <id>")
		fmt.Println()
		fmt.Println("Decrypts a saved package using the level recorded with it.")
	case "rm":
		fmt.Println("qsandbox rm <id> [id...]")
		fmt.Println()
		fmt.Println("Removes saved packages and compacts the store.")
	case "compare":
		fmt.Println("qsandbox compare [-level L] <package> <expected>")
		fmt.Println("qsandbox compare [-level L] -expected-file <file> <package>")
		fmt.Println()
		fmt.Println("Decrypts a package and shows a diff against the expected text.")
	case "compact":
		fmt.Println("qsandbox compact")
		fmt.Println()
		fmt.Println("Compacts the package store to reclaim unused disk space.")
	case "status":
		fmt.Println("qsandbox status")
		fmt.Println()
		fmt.Println("Shows package count, size, levels and git integration of the store.")
	case "shell":
		fmt.Println("qsandbox shell [-level L]")
		fmt.Println()
		fmt.Println("Starts an interactive session with a current package and an")
		fmt.Println("in-memory operation log. Type 'help' inside the shell.")
	case "keyring":
		fmt.Println("qsandbox keyring [-profile name] <save|delete|status>")
		fmt.Println()
		fmt.Println("Stores the passphrase in the OS keyring. QSANDBOX_PASSPHRASE takes")
		fmt.Println("precedence over the keyring; the keyring over the prompt.")
	case "completion":
		fmt.Println("qsandbox completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  eval \"$(qsandbox completion bash)\"")
		fmt.Println("  eval \"$(qsandbox completion zsh)\"")
		fmt.Println("  qsandbox completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
