// Package security confines the files qsandbox reads and writes to the
// working directory.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrPathEscapes = errors.New("path escapes working directory")
	ErrEmptyPath   = errors.New("empty path not allowed")
)

// PathValidator resolves user-supplied file paths against a root directory
// and performs file I/O through os.Root, so message and package files can
// never be read from or written outside of it.
type PathValidator struct {
	root     *os.Root
	rootPath string
}

// New creates a PathValidator rooted at dir.
func New(dir string) (*PathValidator, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	root, err := os.OpenRoot(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open root: %w", err)
	}

	return &PathValidator{
		root:     root,
		rootPath: absPath,
	}, nil
}

// Close releases resources held by the PathValidator.
func (pv *PathValidator) Close() error {
	if pv.root != nil {
		return pv.root.Close()
	}
	return nil
}

// ValidateAndNormalize returns userPath relative to the root, with forward
// slashes. Absolute paths are accepted only when they point inside the root.
func (pv *PathValidator) ValidateAndNormalize(userPath string) (string, error) {
	if userPath == "" {
		return "", ErrEmptyPath
	}

	if filepath.IsAbs(userPath) {
		rel, err := filepath.Rel(pv.rootPath, userPath)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrPathEscapes, userPath)
		}
		userPath = rel
	}

	cleanPath := filepath.Clean(userPath)
	if !filepath.IsLocal(cleanPath) || strings.HasPrefix(cleanPath, "..") {
		return "", fmt.Errorf("%w: %s", ErrPathEscapes, userPath)
	}

	return filepath.ToSlash(cleanPath), nil
}

// ReadFile reads a file inside the root.
func (pv *PathValidator) ReadFile(path string) ([]byte, error) {
	rel, err := pv.ValidateAndNormalize(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	return pv.root.ReadFile(filepath.FromSlash(rel))
}

// WriteFile writes a file inside the root, creating parent directories
// with owner-only permissions.
func (pv *PathValidator) WriteFile(path string, data []byte, perm os.FileMode) error {
	rel, err := pv.ValidateAndNormalize(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	platformPath := filepath.FromSlash(rel)
	if dir := filepath.Dir(platformPath); dir != "." {
		if err := pv.root.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return pv.root.WriteFile(platformPath, data, perm)
}
