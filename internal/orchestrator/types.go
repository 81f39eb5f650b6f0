// Package orchestrator runs the three-phase scan pipeline: file
// reconciliation, symbol extraction, and reference-edge derivation.
package orchestrator

import (
	"github.com/jade-codes/mother/internal/scanner"
)

// FileToProcess is a file that Phase 1 determined is new to the graph and
// must proceed through symbol extraction in Phase 2.
type FileToProcess struct {
	Path        string
	FileURI     string
	ContentHash string
	Language    scanner.Language
}

// SymbolInfo carries the position data Phase 3 needs to resolve references
// back to the symbol that contains them, alongside the symbol's graph ID.
type SymbolInfo struct {
	ID        string
	FileURI   string
	StartLine uint32
	EndLine   uint32
	StartCol  uint32
	Language  scanner.Language
}

// Phase1Result summarizes file reconciliation.
type Phase1Result struct {
	FilesToProcess  []FileToProcess
	NewFileCount    int
	ReusedFileCount int
}

// Phase2Result summarizes symbol extraction.
type Phase2Result struct {
	Symbols     []SymbolInfo
	SymbolCount int
	ErrorCount  int
}

// Phase3Result summarizes reference-edge derivation.
type Phase3Result struct {
	ReferenceCount int
	ErrorCount     int
}

// ScanResult is the combined outcome of all three phases.
type ScanResult struct {
	IsNewCommit bool
	Phase1      Phase1Result
	Phase2      Phase2Result
	Phase3      Phase3Result
}
