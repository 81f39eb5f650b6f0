// Package containment resolves which symbol a reference location falls
// inside, using innermost-containment: the smallest line span that covers
// the reference wins, with ties broken by order of appearance in the lookup
// table.
package containment

import (
	"strings"

	"github.com/jade-codes/mother/internal/lspclient"
)

// Entry is one symbol's identity and line span for containment lookups.
type Entry struct {
	ID        string
	StartLine uint32
	EndLine   uint32
}

// Table maps a file path to the symbols defined in it.
type Table map[string][]Entry

// BuildLookupTable groups symbols by file path, preserving the order each
// symbol was supplied in (pre-order, as produced by graph.FlattenSymbols).
func BuildLookupTable(filePaths []string, symbols [][]Entry) Table {
	table := make(Table, len(filePaths))

	for i, path := range filePaths {
		table[path] = append(table[path], symbols[i]...)
	}

	return table
}

// FindContainingSymbol returns the ID of the symbol in table that most
// tightly contains the reference at (file, line), or "" if none does.
// Among symbols whose span covers line, the one with the smallest
// (end - start) wins; a tie keeps the first match encountered in table's
// slice for that file.
func FindContainingSymbol(table Table, file string, line uint32) string {
	entries, ok := table[file]
	if !ok {
		return ""
	}

	var (
		bestID   string
		bestSpan uint32
		found    bool
	)

	for _, entry := range entries {
		if line < entry.StartLine || line > entry.EndLine {
			continue
		}

		span := entry.EndLine - entry.StartLine

		if !found || span < bestSpan {
			bestID = entry.ID
			bestSpan = span
			found = true
		}
	}

	if !found {
		return ""
	}

	return bestID
}

// FindContainingSymbolForReference is a convenience wrapper around
// FindContainingSymbol that takes an lspclient.Location directly, as
// produced by Client.References.
func FindContainingSymbolForReference(table Table, ref lspclient.Location) string {
	path := strings.TrimPrefix(ref.URI, "file://")

	return FindContainingSymbol(table, path, ref.Range.Start.Line)
}
