package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jade-codes/mother/internal/graph"
	"github.com/jade-codes/mother/internal/lspclient"
	"github.com/jade-codes/mother/internal/scanner"
)

// RunPhase1 reconciles files against the graph: every file whose content
// hash is new gets opened in its language's LSP server so Phase 2 can
// extract symbols from it; files whose hash already exists are linked to
// the current commit and otherwise skipped.
func RunPhase1(ctx context.Context, files []scanner.DiscoveredFile, store graph.Store, manager *lspclient.Manager, commitSHA string, logger *slog.Logger) (Phase1Result, error) {
	logger.Info("phase 1: reconciling files", "count", len(files))

	var result Phase1Result

	for _, file := range files {
		toProcess, err := processFilePhase1(ctx, file, store, manager, commitSHA)
		if err != nil {
			logger.Debug("skipping file", "path", file.Path, "error", err)
			continue
		}

		if toProcess == nil {
			result.ReusedFileCount++
			continue
		}

		result.NewFileCount++
		result.FilesToProcess = append(result.FilesToProcess, *toProcess)
	}

	return result, nil
}

// processFilePhase1 returns a non-nil FileToProcess when file is new to the
// graph, nil when its content hash was already known (reused).
func processFilePhase1(ctx context.Context, file scanner.DiscoveredFile, store graph.Store, manager *lspclient.Manager, commitSHA string) (*FileToProcess, error) {
	hash, err := scanner.ComputeFileHash(file.Path)
	if err != nil {
		return nil, fmt.Errorf("hash %s: %w", file.Path, err)
	}

	contentHash, err := store.CreateFileIfNew(ctx, graph.FileNode{
		ContentHash: hash,
		Path:        file.Path,
		Language:    string(file.Language),
	}, commitSHA)
	if err != nil {
		return nil, fmt.Errorf("create file %s: %w", file.Path, err)
	}

	if contentHash == "" {
		return nil, nil
	}

	client, err := manager.GetClient(ctx, string(file.Language))
	if err != nil {
		return nil, fmt.Errorf("get lsp client for %s: %w", file.Language, err)
	}

	fileURI := "file://" + file.Path

	content, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file.Path, err)
	}

	if err := client.DidOpen(ctx, fileURI, string(file.Language), string(content)); err != nil {
		return nil, fmt.Errorf("didOpen %s: %w", file.Path, err)
	}

	return &FileToProcess{
		Path:        file.Path,
		FileURI:     fileURI,
		ContentHash: contentHash,
		Language:    file.Language,
	}, nil
}
