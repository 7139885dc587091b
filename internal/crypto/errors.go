package crypto

import (
	"context"
	"errors"
)

// ErrMalformedPackage is matched by Kind for package decoding failures.
// The envelope package wraps it so callers only need this package to
// classify errors.
var ErrMalformedPackage = errors.New("malformed package")

// Kind returns a stable, display-safe name for the error class of err.
// It never includes the error text itself.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuthentication):
		return "AuthenticationFailure"
	case errors.Is(err, ErrMalformedPackage):
		return "MalformedPackage"
	case errors.Is(err, ErrDerivation):
		return "DerivationError"
	case errors.Is(err, ErrInvalidNonceLength):
		return "InvalidNonceLength"
	case errors.Is(err, ErrInvalidKeyLength):
		return "InvalidKeyLength"
	case errors.Is(err, ErrUnknownLevel):
		return "UnknownLevel"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Cancelled"
	default:
		return "InternalError"
	}
}
