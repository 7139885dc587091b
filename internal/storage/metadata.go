package storage

import (
	"time"

	"github.com/illarion/qsandbox/internal/crypto"
)

// Record is a saved package. The package text is stored exactly as
// produced; Level records the work factor it was sealed with, since the
// package itself does not carry it.
type Record struct {
	ID      string       `json:"id"`
	Label   string       `json:"label"`
	Level   crypto.Level `json:"level"`
	Package string       `json:"package"`
	Created time.Time    `json:"created"`
}

// Size returns the length of the package text in bytes.
func (r Record) Size() int {
	return len(r.Package)
}
