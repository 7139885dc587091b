package cmd

import (
	"fmt"

	"github.com/illarion/qsandbox/internal/crypto"
)

// Levels lists the security levels and their work factors
func Levels(selected crypto.Level) {
	fmt.Println("Security levels (PBKDF2-HMAC-SHA256 iterations):")
	for _, level := range crypto.Levels() {
		marker := " "
		if level == selected {
			marker = "*"
		}
		fmt.Printf("  %s %s  %7d\n", marker, level, level.Iterations())
	}
}
