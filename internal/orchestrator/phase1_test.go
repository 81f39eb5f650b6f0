package orchestrator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jade-codes/mother/internal/graph"
	"github.com/jade-codes/mother/internal/scanner"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	return path
}

func TestProcessFilePhase1ReusedFileReturnsNil(t *testing.T) {
	path := writeTempFile(t, "package main\n")

	store := &fakeStore{newFileHashes: map[string]string{path: ""}}

	result, err := processFilePhase1(t.Context(), scanner.DiscoveredFile{Path: path, Language: scanner.LanguageGo}, store, nil, "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result != nil {
		t.Fatalf("expected nil for a reused file, got %+v", result)
	}

	if len(store.files) != 1 || store.files[0].Path != path {
		t.Fatalf("expected file reconciliation attempt recorded, got %+v", store.files)
	}
}

func TestRunPhase1CountsReusedFiles(t *testing.T) {
	path := writeTempFile(t, "package main\n")

	store := &fakeStore{newFileHashes: map[string]string{path: ""}}

	result, err := RunPhase1(t.Context(),
		[]scanner.DiscoveredFile{{Path: path, Language: scanner.LanguageGo}},
		store, nil, "abc123", testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ReusedFileCount != 1 || result.NewFileCount != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	if len(result.FilesToProcess) != 0 {
		t.Fatalf("expected no files to process, got %+v", result.FilesToProcess)
	}
}

func TestRunPhase1SkipsUnreadableFile(t *testing.T) {
	store := &fakeStore{}

	result, err := RunPhase1(t.Context(),
		[]scanner.DiscoveredFile{{Path: "/nonexistent/path/does/not/exist.go", Language: scanner.LanguageGo}},
		store, nil, "abc123", testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.NewFileCount != 0 || result.ReusedFileCount != 0 {
		t.Fatalf("expected the unreadable file to be silently skipped, got %+v", result)
	}
}

var _ graph.Store = (*fakeStore)(nil)
