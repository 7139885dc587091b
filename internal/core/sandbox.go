package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/awnumar/memguard"
	"github.com/rs/zerolog/log"

	"github.com/illarion/qsandbox/internal/crypto"
	"github.com/illarion/qsandbox/internal/envelope"
)

// ErrNoPackage is returned when decrypting with nothing to decrypt.
var ErrNoPackage = fmt.Errorf("%w: no package to decrypt", envelope.ErrMalformed)

// Sandbox is one message sandbox session: the selected level, the most
// recent package and the operation log. Operations on one Sandbox are meant
// to run one at a time; derived keys are never shared between calls.
type Sandbox struct {
	mu      sync.Mutex
	level   crypto.Level
	current string
	log     *OperationLog
}

// Option configures a Sandbox.
type Option func(*Sandbox)

// WithLevel sets the initial security level.
func WithLevel(level crypto.Level) Option {
	return func(s *Sandbox) { s.level = level }
}

// WithClock sets the clock used for log timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Sandbox) { s.log = NewOperationLog(now) }
}

// New creates a sandbox session at crypto.DefaultLevel.
func New(opts ...Option) *Sandbox {
	s := &Sandbox{level: crypto.DefaultLevel}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = NewOperationLog(nil)
	}
	return s
}

// Level returns the selected security level.
func (s *Sandbox) Level() crypto.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// SetLevel selects the level used by subsequent operations.
func (s *Sandbox) SetLevel(level crypto.Level) {
	s.mu.Lock()
	s.level = level
	s.mu.Unlock()
	s.log.Append(fmt.Sprintf("Security level set to %s (%d iterations)", level, level.Iterations()))
}

// Current returns the most recent package, or "" if there is none.
func (s *Sandbox) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Sandbox) setCurrent(pkg string) {
	s.mu.Lock()
	s.current = pkg
	s.mu.Unlock()
}

// Clear forgets the current package. The log is kept.
func (s *Sandbox) Clear() {
	s.setCurrent("")
}

// Log returns the session's operation log.
func (s *Sandbox) Log() *OperationLog {
	return s.log
}

// Encrypt seals message under a key derived from passphrase at the selected
// level and returns the package text. The package also becomes Current.
func (s *Sandbox) Encrypt(ctx context.Context, passphrase []byte, message string) (string, error) {
	level := s.Level()
	pkg, err := seal(ctx, passphrase, []byte(message), level)
	if err != nil {
		s.log.Append(fmt.Sprintf("Encrypt error: %s", crypto.Kind(err)))
		return "", err
	}

	s.setCurrent(pkg)
	s.log.Append(fmt.Sprintf("Encrypted message using AES-256-GCM (%s, %d iterations)", level, level.Iterations()))
	return pkg, nil
}

// Decrypt opens pkg with a key derived at the selected level.
// An empty pkg decrypts the current package.
func (s *Sandbox) Decrypt(ctx context.Context, passphrase []byte, pkg string) (string, error) {
	return s.DecryptAt(ctx, passphrase, pkg, s.Level())
}

// DecryptAt is Decrypt with an explicit level, for packages whose level is
// known from elsewhere (e.g. a stored record).
func (s *Sandbox) DecryptAt(ctx context.Context, passphrase []byte, pkg string, level crypto.Level) (string, error) {
	if pkg == "" {
		pkg = s.Current()
	}

	plaintext, err := open(ctx, passphrase, pkg, level)
	if err != nil {
		s.log.Append(fmt.Sprintf("Decrypt error: %s", crypto.Kind(err)))
		return "", err
	}
	defer crypto.ClearBytes(plaintext)

	s.setCurrent(pkg)
	s.log.Append(fmt.Sprintf("Decrypted message (%s)", level))
	return string(plaintext), nil
}

func seal(ctx context.Context, passphrase, plaintext []byte, level crypto.Level) (string, error) {
	salt, err := crypto.GenerateRandom(crypto.SaltSize)
	if err != nil {
		return "", err
	}
	nonce, err := crypto.GenerateRandom(crypto.NonceSize)
	if err != nil {
		return "", err
	}

	keyBuf, err := deriveKey(ctx, passphrase, salt, level.Iterations())
	if err != nil {
		return "", err
	}
	defer keyBuf.Destroy()

	sealed, err := crypto.Seal(keyBuf.Bytes(), nonce, plaintext)
	if err != nil {
		return "", err
	}
	return envelope.Encode(salt, nonce, sealed)
}

func open(ctx context.Context, passphrase []byte, pkg string, level crypto.Level) ([]byte, error) {
	if pkg == "" {
		return nil, ErrNoPackage
	}
	parts, err := envelope.Decode(pkg)
	if err != nil {
		return nil, err
	}

	keyBuf, err := deriveKey(ctx, passphrase, parts.Salt, level.Iterations())
	if err != nil {
		return nil, err
	}
	defer keyBuf.Destroy()

	return crypto.Open(keyBuf.Bytes(), parts.Nonce, parts.Sealed)
}

type deriveResult struct {
	key []byte
	err error
}

// deriveKey runs PBKDF2 off the calling goroutine so ctx can interrupt the
// wait. A key that arrives after cancellation is zeroed and dropped.
func deriveKey(ctx context.Context, passphrase, salt []byte, iterations int) (*memguard.LockedBuffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The caller may clear passphrase as soon as we return.
	pass := append([]byte(nil), passphrase...)
	done := make(chan deriveResult, 1)
	start := time.Now()

	go func() {
		defer crypto.ClearBytes(pass)
		key, err := crypto.DeriveKey(pass, salt, iterations)
		done <- deriveResult{key: key, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		log.Debug().Int("iterations", iterations).Dur("took", time.Since(start)).Msg("key derived")
		return memguard.NewBufferFromBytes(r.key), nil
	case <-ctx.Done():
		go func() {
			r := <-done
			crypto.ClearBytes(r.key)
		}()
		log.Debug().Int("iterations", iterations).Msg("key derivation abandoned")
		return nil, ctx.Err()
	}
}

// IsAuthFailure reports whether err means the package could not be
// authenticated (wrong passphrase, wrong level, or tampered data).
func IsAuthFailure(err error) bool {
	return errors.Is(err, crypto.ErrAuthentication)
}
