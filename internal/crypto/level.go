package crypto

import (
	"fmt"
	"strings"
)

// Level selects the PBKDF2 work factor.
type Level uint8

const (
	L1 Level = iota + 1
	L2
	L3
	L4
)

// DefaultLevel is used when nothing else is selected.
const DefaultLevel = L1

var levelIterations = [...]int{
	L1: 100_000,
	L2: 200_000,
	L3: 400_000,
	L4: 800_000,
}

// Levels returns all security levels, weakest first.
func Levels() []Level {
	return []Level{L1, L2, L3, L4}
}

// Iterations returns the PBKDF2 iteration count for the level.
// The zero value behaves as DefaultLevel.
func (l Level) Iterations() int {
	if l < L1 || l > L4 {
		return levelIterations[DefaultLevel]
	}
	return levelIterations[l]
}

func (l Level) String() string {
	if l < L1 || l > L4 {
		return DefaultLevel.String()
	}
	return fmt.Sprintf("L%d", uint8(l))
}

// ParseLevel accepts "1".."4" or "L1".."L4" (case-insensitive).
func ParseLevel(s string) (Level, error) {
	v := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "L")
	switch v {
	case "1":
		return L1, nil
	case "2":
		return L2, nil
	case "3":
		return L3, nil
	case "4":
		return L4, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}
