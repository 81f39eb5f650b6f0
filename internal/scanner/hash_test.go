package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func TestComputeFileHashMatchesHashBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.go")
	content := []byte("package main\n")

	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	fromFile, err := ComputeFileHash(path)
	if err != nil {
		t.Fatal(err)
	}

	if fromFile != HashBytes(content) {
		t.Fatalf("hash mismatch: %q != %q", fromFile, HashBytes(content))
	}

	if len(fromFile) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(fromFile))
	}
}

func TestComputeFileHashIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.go")

	if err := os.WriteFile(path, []byte("same content"), 0o644); err != nil {
		t.Fatal(err)
	}

	h1, err := ComputeFileHash(path)
	if err != nil {
		t.Fatal(err)
	}

	h2, err := ComputeFileHash(path)
	if err != nil {
		t.Fatal(err)
	}

	if h1 != h2 {
		t.Fatalf("expected deterministic hash, got %q and %q", h1, h2)
	}
}
