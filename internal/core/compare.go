package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Compare decrypts pkg in the session and diffs the recovered text against
// expected. It returns "" when they are identical.
func Compare(ctx context.Context, sb *Sandbox, passphrase []byte, pkg, expected string) (string, error) {
	plaintext, err := sb.Decrypt(ctx, passphrase, pkg)
	if err != nil {
		return "", err
	}

	diff := UnifiedDiff("expected", "decrypted", expected, plaintext)
	if diff == "" {
		sb.Log().Append("Compare: decrypted message matches")
	} else {
		sb.Log().Append("Compare: decrypted message differs")
	}
	return diff, nil
}

// UnifiedDiff renders a line diff from a to b with go-diff patches.
// Returns "" when the texts are equal.
func UnifiedDiff(nameA, nameB, a, b string) string {
	if a == b {
		return ""
	}

	dmp := diffmatchpatch.New()

	// Line-mode diff for better output
	ca, cb, lineArray := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(ca, cb, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	patches := dmp.PatchMake(a, diffs)
	if len(patches) == 0 {
		return ""
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("--- %s\n", nameA))
	result.WriteString(fmt.Sprintf("+++ %s\n", nameB))
	result.WriteString(dmp.PatchToText(patches))
	return result.String()
}
