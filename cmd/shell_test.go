package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illarion/qsandbox/internal/core"
	"github.com/illarion/qsandbox/internal/crypto"
)

func newTestSession(pass string) (*Session, *core.Sandbox, *bytes.Buffer, *int) {
	var out bytes.Buffer
	calls := 0
	sb := core.New()
	s := NewSession(sb, &out, func() ([]byte, error) {
		calls++
		return []byte(pass), nil
	})
	return s, sb, &out, &calls
}

func TestSessionEncryptDecrypt(t *testing.T) {
	s, sb, out, calls := newTestSession("correct horse")
	defer s.Close()

	script := strings.Join([]string{
		"level L2",
		"encrypt hello there",
		"clear",
		"current",
		"quit",
		"encrypt never reached",
	}, "\n")
	require.NoError(t, s.Run(context.Background(), strings.NewReader(script)))

	assert.Equal(t, crypto.L2, sb.Level())
	assert.Empty(t, sb.Current())
	assert.Contains(t, out.String(), "(none)")
	assert.Equal(t, 1, *calls)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	pkg := lines[0]

	out.Reset()
	_, err := s.Exec(context.Background(), "decrypt "+pkg)
	require.NoError(t, err)
	assert.Equal(t, "hello there\n", out.String())
	assert.Equal(t, 1, *calls, "passphrase is asked once per session")
}

func TestSessionReportsErrorKinds(t *testing.T) {
	s, _, out, _ := newTestSession("pw")
	defer s.Close()

	script := "decrypt\ndecrypt !!!\nlevel L9\nbogus\n"
	require.NoError(t, s.Run(context.Background(), strings.NewReader(script)))

	got := out.String()
	assert.Contains(t, got, "error: MalformedPackage")
	assert.Contains(t, got, "error: UnknownLevel")
	assert.Contains(t, got, `unknown command "bogus"`)
}

func TestSessionWrongPassphrase(t *testing.T) {
	ctx := context.Background()
	other := core.New()
	pkg, err := other.Encrypt(ctx, []byte("right"), "secret")
	require.NoError(t, err)

	s, _, out, _ := newTestSession("wrong")
	defer s.Close()

	require.NoError(t, s.Run(ctx, strings.NewReader("decrypt "+pkg+"\nlog\n")))
	assert.Contains(t, out.String(), "error: AuthenticationFailure")
	assert.Contains(t, out.String(), "Decrypt error: AuthenticationFailure")
	assert.NotContains(t, out.String(), "secret")
}

func TestSessionLogEmpty(t *testing.T) {
	s, _, out, _ := newTestSession("pw")
	defer s.Close()

	_, err := s.Exec(context.Background(), "log")
	require.NoError(t, err)
	assert.Equal(t, "No events yet.\n", out.String())
}
