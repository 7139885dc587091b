// Package git reports whether the package store is tracked or ignored by
// git. Saved packages are encrypted, so committing the store is allowed;
// the check only points out a store that is neither tracked nor ignored.
package git
