package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/awnumar/memguard"
	"golang.org/x/term"

	"github.com/illarion/qsandbox/internal/config"
	"github.com/illarion/qsandbox/internal/core"
	"github.com/illarion/qsandbox/internal/crypto"
)

const shellHelp = `Commands:
  level [L1-L4]     Show or select the security level
  levels            List levels and iterations
  encrypt <text>    Encrypt text; the package becomes current
  decrypt [pkg]     Decrypt pkg, or the current package
  current           Print the current package
  clear             Forget the current package
  passphrase        Enter a new passphrase
  log               Show the operation log, newest first
  help              Show this help
  quit              Leave the shell
`

// Session is an interactive sandbox session reading commands line by line
type Session struct {
	sb         *core.Sandbox
	out        io.Writer
	prompt     bool
	readPass   func() ([]byte, error)
	passphrase *memguard.LockedBuffer
}

// NewSession creates a shell session around sb. readPass is called for the
// first operation that needs a passphrase and on the passphrase command.
func NewSession(sb *core.Sandbox, out io.Writer, readPass func() ([]byte, error)) *Session {
	return &Session{sb: sb, out: out, readPass: readPass}
}

// Close destroys the held passphrase
func (s *Session) Close() {
	if s.passphrase != nil {
		s.passphrase.Destroy()
		s.passphrase = nil
	}
}

func (s *Session) getPassphrase() ([]byte, error) {
	if s.passphrase == nil {
		pass, err := s.readPass()
		if err != nil {
			return nil, err
		}
		s.passphrase = memguard.NewBufferFromBytes(pass)
	}
	return s.passphrase.Bytes(), nil
}

// Run processes commands from in until EOF, quit, or ctx is done
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		if s.prompt {
			fmt.Fprintf(s.out, "qsandbox[%s]> ", s.sb.Level())
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		quit, err := s.Exec(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(s.out, "error: %s\n", describe(err))
		}
		if quit {
			return nil
		}
	}
}

// describe names crypto failures by kind and passes other errors through.
func describe(err error) string {
	if kind := crypto.Kind(err); kind != "InternalError" {
		return kind
	}
	return err.Error()
}

// Exec runs one command line. It reports whether the session should end.
func (s *Session) Exec(ctx context.Context, line string) (bool, error) {
	name, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "":
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprint(s.out, shellHelp)
	case "levels":
		for _, level := range crypto.Levels() {
			fmt.Fprintf(s.out, "%s %d\n", level, level.Iterations())
		}
	case "level":
		if rest == "" {
			level := s.sb.Level()
			fmt.Fprintf(s.out, "%s (%d iterations)\n", level, level.Iterations())
			return false, nil
		}
		level, err := crypto.ParseLevel(rest)
		if err != nil {
			return false, err
		}
		s.sb.SetLevel(level)
	case "encrypt":
		pass, err := s.getPassphrase()
		if err != nil {
			return false, err
		}
		pkg, err := s.sb.Encrypt(ctx, pass, rest)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, pkg)
	case "decrypt":
		pass, err := s.getPassphrase()
		if err != nil {
			return false, err
		}
		message, err := s.sb.Decrypt(ctx, pass, rest)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, message)
	case "current":
		if pkg := s.sb.Current(); pkg != "" {
			fmt.Fprintln(s.out, pkg)
		} else {
			fmt.Fprintln(s.out, "(none)")
		}
	case "clear":
		s.sb.Clear()
	case "passphrase":
		s.Close()
		if _, err := s.getPassphrase(); err != nil {
			return false, err
		}
	case "log":
		entries := s.sb.Log().Entries()
		if len(entries) == 0 {
			fmt.Fprintln(s.out, "No events yet.")
		}
		for _, entry := range entries {
			fmt.Fprintln(s.out, entry)
		}
	default:
		return false, fmt.Errorf("unknown command %q (try 'help')", name)
	}
	return false, nil
}

// Shell starts an interactive session on stdin/stdout
func Shell(ctx context.Context, cfg *config.Config) {
	sb := core.New(core.WithLevel(cfg.Level))
	session := NewSession(sb, os.Stdout, func() ([]byte, error) {
		return GetPassphrase(cfg, false)
	})
	defer session.Close()

	session.prompt = term.IsTerminal(int(os.Stdin.Fd()))
	if session.prompt {
		fmt.Println("qsandbox shell - type 'help' for commands")
	}

	if err := session.Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		session.Close()
		HandleError(err)
	}
}
