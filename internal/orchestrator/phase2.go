package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jade-codes/mother/internal/graph"
	"github.com/jade-codes/mother/internal/lspclient"
	"github.com/jade-codes/mother/internal/scanner"
)

// RunPhase2 extracts document symbols from every file Phase 1 flagged as
// new, enriches them with hover text, and persists them to the graph.
func RunPhase2(ctx context.Context, files []FileToProcess, store graph.Store, manager *lspclient.Manager, logger *slog.Logger) (Phase2Result, error) {
	logger.Info("phase 2: extracting symbols", "files", len(files))

	var result Phase2Result

	for _, file := range files {
		symbolInfos, count, err := processFilePhase2(ctx, file, store, manager, logger)
		if err != nil {
			result.ErrorCount++
			logger.Warn("failed to extract symbols", "path", file.Path, "error", err)
			continue
		}

		result.Symbols = append(result.Symbols, symbolInfos...)
		result.SymbolCount += count
	}

	if result.ErrorCount > 0 {
		logger.Warn("phase 2: files failed symbol extraction", "count", result.ErrorCount)
	}

	return result, nil
}

func processFilePhase2(ctx context.Context, file FileToProcess, store graph.Store, manager *lspclient.Manager, logger *slog.Logger) ([]SymbolInfo, int, error) {
	client, err := manager.GetClient(ctx, string(file.Language))
	if err != nil {
		return nil, 0, fmt.Errorf("get lsp client: %w", err)
	}

	docSymbols, err := client.DocumentSymbols(ctx, file.FileURI)
	if err != nil {
		return nil, 0, fmt.Errorf("documentSymbol: %w", err)
	}

	lspSymbols := lspclient.ToSymbols(docSymbols, file.Path)
	graphSymbols := graph.ConvertSymbols(lspSymbols, file.Path)
	fileSymbolCount := len(graphSymbols)

	enrichSymbolsWithHover(ctx, graphSymbols, lspSymbols, client, file.FileURI)

	logger.Info("file symbols extracted",
		"file", filepath.Base(file.Path), "symbols", fileSymbolCount, "lsp_symbols", len(lspSymbols))

	if err := store.CreateSymbolsBatch(ctx, graphSymbols, file.ContentHash); err != nil {
		return nil, 0, fmt.Errorf("create symbols batch: %w", err)
	}

	symbolInfos := collectSymbolInfo(lspSymbols, graphSymbols, file.FileURI, file.Language)

	return symbolInfos, fileSymbolCount, nil
}

// enrichSymbolsWithHover fills in each symbol's doc comment by calling hover
// at its declaration position. graphSymbols and the pre-order flattening of
// lspSymbols are zipped by index, so both must already be in the same
// traversal order.
func enrichSymbolsWithHover(ctx context.Context, graphSymbols []graph.SymbolNode, lspSymbols []lspclient.Symbol, client *lspclient.Client, fileURI string) {
	flat := lspclient.Flatten(lspSymbols)

	for i := range graphSymbols {
		var col uint32

		if i < len(flat) {
			col = flat[i].StartCol
		}

		// start_line is 1-indexed on SymbolNode; hover wants the 0-indexed
		// LSP line, so the +1 applied at construction must be undone here.
		line := uint32(graphSymbols[i].StartLine - 1)

		hoverText, err := client.Hover(ctx, fileURI, line, col)
		if err != nil || hoverText == "" {
			continue
		}

		graphSymbols[i].DocComment = hoverText
	}
}

// collectSymbolInfo zips the pre-order-flattened LSP symbols against the
// graph nodes derived from them, pairing each graph symbol's ID with the
// LSP position data Phase 3 needs for reference resolution.
func collectSymbolInfo(lspSymbols []lspclient.Symbol, graphSymbols []graph.SymbolNode, fileURI string, language scanner.Language) []SymbolInfo {
	flat := lspclient.Flatten(lspSymbols)

	out := make([]SymbolInfo, 0, min(len(flat), len(graphSymbols)))

	for i := 0; i < len(flat) && i < len(graphSymbols); i++ {
		out = append(out, SymbolInfo{
			ID:        graphSymbols[i].ID,
			FileURI:   fileURI,
			StartLine: flat[i].StartLine,
			EndLine:   flat[i].EndLine,
			StartCol:  flat[i].StartCol,
			Language:  language,
		})
	}

	return out
}
