package security

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPathValidator_ValidateAndNormalize(t *testing.T) {
	tmpDir := t.TempDir()

	validator, err := New(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}
	defer validator.Close()

	tests := []struct {
		name    string
		input   string
		want    string
		errType error
	}{
		{"simple file", "msg.txt", "msg.txt", nil},
		{"file in subdirectory", "out/pkg.txt", "out/pkg.txt", nil},
		{"dot slash", "./msg.txt", "msg.txt", nil},
		{"dot segments", "a/./b/../msg.txt", "a/msg.txt", nil},
		{"absolute inside root", filepath.Join(tmpDir, "in", "msg.txt"), "in/msg.txt", nil},

		{"parent directory", "../msg.txt", "", ErrPathEscapes},
		{"nested parent", "a/../../msg.txt", "", ErrPathEscapes},
		{"absolute outside root", filepath.Join(filepath.Dir(tmpDir), "other.txt"), "", ErrPathEscapes},
		{"empty path", "", "", ErrEmptyPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validator.ValidateAndNormalize(tt.input)
			if tt.errType != nil {
				if !errors.Is(err, tt.errType) {
					t.Fatalf("Expected %v, got %v", tt.errType, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPathValidator_WriteAndReadFile(t *testing.T) {
	tmpDir := t.TempDir()

	validator, err := New(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}
	defer validator.Close()

	if err := validator.WriteFile("nested/dir/pkg.txt", []byte("token"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	onDisk, err := os.ReadFile(filepath.Join(tmpDir, "nested", "dir", "pkg.txt"))
	if err != nil {
		t.Fatalf("File not written inside root: %v", err)
	}
	if string(onDisk) != "token" {
		t.Errorf("Content mismatch: %q", onDisk)
	}

	data, err := validator.ReadFile("nested/dir/pkg.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "token" {
		t.Errorf("Content mismatch: %q", data)
	}
}

func TestPathValidator_ActualEscapePrevention(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "root")
	if err := os.Mkdir(root, 0700); err != nil {
		t.Fatal(err)
	}
	secret := filepath.Join(parent, "secret.txt")
	if err := os.WriteFile(secret, []byte("outside"), 0600); err != nil {
		t.Fatal(err)
	}

	validator, err := New(root)
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}
	defer validator.Close()

	if _, err := validator.ReadFile("../secret.txt"); err == nil {
		t.Error("Expected read outside root to fail")
	}
	if err := validator.WriteFile("../evil.txt", []byte("x"), 0600); err == nil {
		t.Error("Expected write outside root to fail")
	}
	if _, err := os.Stat(filepath.Join(parent, "evil.txt")); !os.IsNotExist(err) {
		t.Error("File was written outside root")
	}

	// Symlink pointing outside is stopped by os.Root
	if err := os.Symlink(secret, filepath.Join(root, "link.txt")); err == nil {
		if _, err := validator.ReadFile("link.txt"); err == nil {
			t.Error("Expected read through escaping symlink to fail")
		}
	}
}
