package mcpserver

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jade-codes/mother/internal/graph"
)

// handleFindSymbols processes mother_symbols tool calls.
func handleFindSymbols(
	ctx context.Context,
	store graph.QueryStore,
	_ *mcpsdk.CallToolRequest,
	in FindSymbolsInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if in.Pattern == "" {
		return errorResult(ErrEmptyPattern)
	}

	results, err := store.FindSymbols(ctx, in.Pattern)
	if err != nil {
		return errorResult(fmt.Errorf("find symbols: %w", err))
	}

	return jsonResult(results)
}

// handleSymbolsInFile processes mother_file tool calls.
func handleSymbolsInFile(
	ctx context.Context,
	store graph.QueryStore,
	_ *mcpsdk.CallToolRequest,
	in SymbolsInFileInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if in.FilePath == "" {
		return errorResult(ErrEmptyFilePath)
	}

	results, err := store.SymbolsInFile(ctx, in.FilePath)
	if err != nil {
		return errorResult(fmt.Errorf("symbols in file: %w", err))
	}

	return jsonResult(results)
}

// handleReferencesTo processes mother_refs_to tool calls.
func handleReferencesTo(
	ctx context.Context,
	store graph.QueryStore,
	_ *mcpsdk.CallToolRequest,
	in ReferencesToInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if in.SymbolName == "" {
		return errorResult(ErrEmptySymbolName)
	}

	results, err := store.FindReferencesTo(ctx, in.SymbolName)
	if err != nil {
		return errorResult(fmt.Errorf("references to: %w", err))
	}

	return jsonResult(results)
}

// handleReferencesFrom processes mother_refs_from tool calls.
func handleReferencesFrom(
	ctx context.Context,
	store graph.QueryStore,
	_ *mcpsdk.CallToolRequest,
	in ReferencesFromInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if in.SymbolName == "" {
		return errorResult(ErrEmptySymbolName)
	}

	results, err := store.FindReferencesFrom(ctx, in.SymbolName)
	if err != nil {
		return errorResult(fmt.Errorf("references from: %w", err))
	}

	return jsonResult(results)
}

// handleListFiles processes mother_files tool calls.
func handleListFiles(
	ctx context.Context,
	store graph.QueryStore,
	_ *mcpsdk.CallToolRequest,
	in ListFilesInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	results, err := store.ListFiles(ctx, in.Pattern)
	if err != nil {
		return errorResult(fmt.Errorf("list files: %w", err))
	}

	return jsonResult(results)
}

// handleStats processes mother_stats tool calls.
func handleStats(
	ctx context.Context,
	store graph.QueryStore,
	_ *mcpsdk.CallToolRequest,
	_ StatsInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	stats, err := store.Stats(ctx)
	if err != nil {
		return errorResult(fmt.Errorf("stats: %w", err))
	}

	return jsonResult(stats)
}

// handleExecuteRaw processes mother_raw tool calls.
func handleExecuteRaw(
	ctx context.Context,
	store graph.QueryStore,
	_ *mcpsdk.CallToolRequest,
	in ExecuteRawInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if in.Cypher == "" {
		return errorResult(ErrEmptyCypher)
	}

	rowCount, err := store.ExecuteRaw(ctx, in.Cypher)
	if err != nil {
		return errorResult(fmt.Errorf("execute cypher: %w", err))
	}

	return jsonResult(map[string]int{"rows": rowCount})
}
