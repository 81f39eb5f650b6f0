package orchestrator

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jade-codes/mother/internal/containment"
	"github.com/jade-codes/mother/internal/graph"
	"github.com/jade-codes/mother/internal/lspclient"
)

// RunPhase3 requests references for every extracted symbol and, for each
// reference location, resolves the innermost containing symbol and
// persists a REFERENCES edge from it to the symbol being referenced.
func RunPhase3(ctx context.Context, symbols []SymbolInfo, store graph.Store, manager *lspclient.Manager, logger *slog.Logger) (Phase3Result, error) {
	logger.Info("phase 3: extracting references", "symbols", len(symbols))

	lookup := buildSymbolLookupTable(symbols)

	var result Phase3Result

	for _, symbol := range symbols {
		refs, errs := processSymbolReferences(ctx, symbol, lookup, store, manager)
		result.ReferenceCount += refs
		result.ErrorCount += errs
	}

	if result.ErrorCount > 0 {
		logger.Warn("phase 3: reference lookups failed", "count", result.ErrorCount)
	}

	return result, nil
}

func processSymbolReferences(ctx context.Context, symbol SymbolInfo, lookup containment.Table, store graph.Store, manager *lspclient.Manager) (refCount, errCount int) {
	client, err := manager.GetClient(ctx, string(symbol.Language))
	if err != nil {
		return 0, 1
	}

	refs, err := client.References(ctx, symbol.FileURI, symbol.StartLine, symbol.StartCol, true)
	if err != nil {
		return 0, 1
	}

	return createReferenceEdges(ctx, refs, symbol, lookup, store), 0
}

func createReferenceEdges(ctx context.Context, refs []lspclient.Location, symbol SymbolInfo, lookup containment.Table, store graph.Store) int {
	count := 0

	for _, ref := range refs {
		fromID := containment.FindContainingSymbolForReference(lookup, ref)
		if fromID == "" || fromID == symbol.ID {
			continue
		}

		edge := graph.Edge{
			FromID: fromID,
			ToID:   symbol.ID,
			Kind:   graph.EdgeKindReferences,
			Line:   int(ref.Range.Start.Line),
			Column: int(ref.Range.Start.Character),
		}

		if err := store.CreateEdge(ctx, edge); err == nil {
			count++
		}
	}

	return count
}

// buildSymbolLookupTable groups symbol position data by file path, stripping
// the file:// scheme LSP URIs carry so reference Locations (also file://)
// key into the same table.
func buildSymbolLookupTable(symbols []SymbolInfo) containment.Table {
	table := make(containment.Table)

	for _, symbol := range symbols {
		path := strings.TrimPrefix(symbol.FileURI, "file://")

		table[path] = append(table[path], containment.Entry{
			ID:        symbol.ID,
			StartLine: symbol.StartLine,
			EndLine:   symbol.EndLine,
		})
	}

	return table
}
