package mcpserver

import (
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool name constants.
const (
	ToolNameFindSymbols    = "mother_symbols"
	ToolNameSymbolsInFile  = "mother_file"
	ToolNameReferencesTo   = "mother_refs_to"
	ToolNameReferencesFrom = "mother_refs_from"
	ToolNameListFiles      = "mother_files"
	ToolNameStats          = "mother_stats"
	ToolNameExecuteRaw     = "mother_raw"
)

// Tool description constants.
const (
	findSymbolsDescription = "Find symbols whose name contains the given substring, case-insensitive. " +
		"Returns each match's qualified name, kind, file path, and line span."

	symbolsInFileDescription = "List every symbol defined in a single file, ordered by source position."

	referencesToDescription = "Find every reference edge that points at a symbol by name " +
		"(who calls or uses it)."

	referencesFromDescription = "Find every reference edge that originates from a symbol by name " +
		"(what it calls or uses)."

	listFilesDescription = "List scanned files, optionally filtered by a path substring pattern, " +
		"along with each file's language and symbol count."

	statsDescription = "Report aggregate node and relationship counts across the whole graph " +
		"(commits, files, symbols, scan runs, references)."

	executeRawDescription = "Execute an arbitrary read-only Cypher query against the graph and " +
		"return the number of rows it produced. Intended for ad hoc exploration " +
		"beyond the other query tools."
)

// Sentinel errors for tool input validation.
var (
	// ErrEmptyPattern indicates a required pattern/name parameter was empty.
	ErrEmptyPattern = errors.New("pattern parameter is required and must not be empty")
	// ErrEmptyFilePath indicates the file_path parameter was empty.
	ErrEmptyFilePath = errors.New("file_path parameter is required and must not be empty")
	// ErrEmptySymbolName indicates the symbol_name parameter was empty.
	ErrEmptySymbolName = errors.New("symbol_name parameter is required and must not be empty")
	// ErrEmptyCypher indicates the cypher parameter was empty.
	ErrEmptyCypher = errors.New("cypher parameter is required and must not be empty")
)

// Input types (auto-generate JSON schemas via struct tags).

// FindSymbolsInput is the input schema for mother_symbols.
type FindSymbolsInput struct {
	Pattern string `json:"pattern" jsonschema:"substring to search for in symbol names"`
}

// SymbolsInFileInput is the input schema for mother_file.
type SymbolsInFileInput struct {
	FilePath string `json:"file_path" jsonschema:"path of the file to list symbols for, as recorded in the graph"`
}

// ReferencesToInput is the input schema for mother_refs_to.
type ReferencesToInput struct {
	SymbolName string `json:"symbol_name" jsonschema:"name of the symbol to find incoming references for"`
}

// ReferencesFromInput is the input schema for mother_refs_from.
type ReferencesFromInput struct {
	SymbolName string `json:"symbol_name" jsonschema:"name of the symbol to find outgoing references for"`
}

// ListFilesInput is the input schema for mother_files.
type ListFilesInput struct {
	Pattern string `json:"pattern,omitempty" jsonschema:"optional substring filter on file path"`
}

// StatsInput is the input schema for mother_stats. It has no parameters.
type StatsInput struct{}

// ExecuteRawInput is the input schema for mother_raw.
type ExecuteRawInput struct {
	Cypher string `json:"cypher" jsonschema:"a Cypher query to run against the graph"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}
