// Package graph defines the persisted semantic graph's data model and the
// store contract the scan orchestrator writes through, plus a Neo4j-backed
// implementation of that contract.
package graph

import "time"

// SymbolKind enumerates the closed set of symbol kinds the graph can hold.
// Names match the wire representation persisted on SymbolNode.Kind and used
// directly in query filters.
type SymbolKind string

// Supported symbol kinds.
const (
	SymbolKindModule     SymbolKind = "module"
	SymbolKindClass      SymbolKind = "class"
	SymbolKindStruct     SymbolKind = "struct"
	SymbolKindEnum       SymbolKind = "enum"
	SymbolKindInterface  SymbolKind = "interface"
	SymbolKindTrait      SymbolKind = "trait"
	SymbolKindFunction   SymbolKind = "function"
	SymbolKindMethod     SymbolKind = "method"
	SymbolKindVariable   SymbolKind = "variable"
	SymbolKindConstant   SymbolKind = "constant"
	SymbolKindField      SymbolKind = "field"
	SymbolKindTypeAlias  SymbolKind = "type_alias"
	SymbolKindImport     SymbolKind = "import"
)

// String renders the kind's persisted wire value.
func (k SymbolKind) String() string {
	return string(k)
}

// Visibility enumerates symbol access levels, when the source language and
// LSP server expose one.
type Visibility string

// Supported visibilities. Unknown is used when the LSP server gives no
// signal either way, which is the common case: LSP's DocumentSymbol does
// not carry a visibility field at all.
const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
	VisibilityUnknown Visibility = "unknown"
)

// EdgeKind enumerates the relationship types the graph can hold between
// symbols. The string value is used verbatim as the Cypher relationship
// type, so it is intentionally restricted to this closed Go type rather
// than accepted as a free-form string anywhere near query construction.
type EdgeKind int

// Supported edge kinds. REFERENCES is the only kind the scan pipeline
// currently produces; the rest are reserved for future analyzers operating
// over the same graph.
const (
	EdgeKindReferences EdgeKind = iota
	EdgeKindCalls
	EdgeKindImports
	EdgeKindInherits
	EdgeKindImplements
)

// String renders the edge kind's Cypher relationship type name.
func (k EdgeKind) String() string {
	switch k {
	case EdgeKindReferences:
		return "REFERENCES"
	case EdgeKindCalls:
		return "CALLS"
	case EdgeKindImports:
		return "IMPORTS"
	case EdgeKindInherits:
		return "INHERITS"
	case EdgeKindImplements:
		return "IMPLEMENTS"
	default:
		return "REFERENCES"
	}
}

// Commit identifies the version-control commit a ScanRun was taken against.
type Commit struct {
	SHA    string
	Branch string
}

// ScanRun records one execution of the scan pipeline against a commit.
type ScanRun struct {
	ID        string
	RepoPath  string
	ScannedAt time.Time
	Version   string
	Commit    Commit
}

// FileNode is a content-addressed file: its identity is its hash, not its
// path, so identical file contents across commits share one node.
type FileNode struct {
	ContentHash string
	Path        string
	Language    string
}

// SymbolNode is one symbol extracted from a file via LSP. StartLine and
// EndLine are 1-indexed, matching the persisted graph convention (LSP wire
// positions are 0-indexed and are converted to this convention exactly
// once, at construction).
type SymbolNode struct {
	ID            string
	Name          string
	QualifiedName string
	Kind          SymbolKind
	Visibility    Visibility
	FilePath      string
	StartLine     int
	EndLine       int
	Signature     string
	DocComment    string
}

// Edge is a directed reference from one symbol to another, with the
// location of the referencing occurrence.
type Edge struct {
	FromID string
	ToID   string
	Kind   EdgeKind
	Line   int
	Column int
}
