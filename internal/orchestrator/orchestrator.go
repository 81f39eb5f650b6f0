package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jade-codes/mother/internal/graph"
	"github.com/jade-codes/mother/internal/lspclient"
	"github.com/jade-codes/mother/internal/scanner"
)

// Run records a scan run for commit commitSHA in store and — only if the
// commit is new to the graph — discovers files under repoPath, reconciles
// them against the commit, and runs symbol extraction and reference
// derivation against it. It returns IsNewCommit=false with every phase
// result zeroed, without walking the repository, when the commit was
// already scanned.
func Run(ctx context.Context, repoPath, commitSHA, branch, version string, store graph.Store, manager *lspclient.Manager, logger *slog.Logger) (ScanResult, error) {
	isNew, err := store.CreateScanRun(ctx, graph.ScanRun{
		ID:        uuid.New().String(),
		RepoPath:  repoPath,
		ScannedAt: time.Now().UTC(),
		Version:   version,
		Commit:    graph.Commit{SHA: commitSHA, Branch: branch},
	})
	if err != nil {
		return ScanResult{}, fmt.Errorf("create scan run: %w", err)
	}

	logger.Info("scan run created", "commit", commitSHA, "branch", branch, "new_commit", isNew)

	if !isNew {
		logger.Info("commit already scanned, skipping phases", "commit", commitSHA)
		return ScanResult{IsNewCommit: false}, nil
	}

	files, err := scanner.New(repoPath).Scan()
	if err != nil {
		return ScanResult{}, fmt.Errorf("scan repository: %w", err)
	}

	phase1, err := RunPhase1(ctx, files, store, manager, commitSHA, logger)
	if err != nil {
		return ScanResult{}, fmt.Errorf("phase 1: %w", err)
	}

	phase2, err := RunPhase2(ctx, phase1.FilesToProcess, store, manager, logger)
	if err != nil {
		return ScanResult{}, fmt.Errorf("phase 2: %w", err)
	}

	phase3, err := RunPhase3(ctx, phase2.Symbols, store, manager, logger)
	if err != nil {
		return ScanResult{}, fmt.Errorf("phase 3: %w", err)
	}

	result := ScanResult{IsNewCommit: true, Phase1: phase1, Phase2: phase2, Phase3: phase3}

	logScanSummary(logger, result)

	return result, nil
}

func logScanSummary(logger *slog.Logger, result ScanResult) {
	totalErrors := result.Phase2.ErrorCount + result.Phase3.ErrorCount

	logger.Info("scan complete",
		"new_files", result.Phase1.NewFileCount,
		"reused_files", result.Phase1.ReusedFileCount,
		"symbols", result.Phase2.SymbolCount,
		"references", result.Phase3.ReferenceCount,
		"errors", totalErrors,
	)
}
