package graph

import "context"

// Store is the persistence contract the scan orchestrator writes through.
// Every method is idempotent with respect to the identity described in its
// doc comment, so re-scanning an unchanged commit is always safe.
type Store interface {
	// CreateScanRun records run against its commit. It returns true when
	// the commit is new to the graph (the caller must proceed through
	// Phases 1-3), or false when the commit already exists (the caller may
	// skip the rest of the scan entirely).
	CreateScanRun(ctx context.Context, run ScanRun) (isNewCommit bool, err error)

	// CreateFileIfNew links file to commitSHA, creating the File node only
	// if no node with this content hash exists yet. It returns the content
	// hash when the file is new (the caller must extract symbols), or an
	// empty string when the file already existed (symbols already extracted
	// on a prior commit).
	CreateFileIfNew(ctx context.Context, file FileNode, commitSHA string) (newContentHash string, err error)

	// CreateSymbolsBatch persists symbols, each linked to the file
	// identified by contentHash via a DEFINED_IN edge.
	CreateSymbolsBatch(ctx context.Context, symbols []SymbolNode, contentHash string) error

	// CreateEdge persists a directed edge between two existing symbols.
	// Self-edges (FromID == ToID) are the caller's responsibility to avoid;
	// implementations are not required to reject them.
	CreateEdge(ctx context.Context, edge Edge) error

	// Close releases any resources (connections, sessions) held by the
	// store.
	Close(ctx context.Context) error
}
