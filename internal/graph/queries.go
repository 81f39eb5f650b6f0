package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// SymbolResult is one row of a symbol-search query.
type SymbolResult struct {
	ID            string
	Name          string
	QualifiedName string
	Kind          string
	FilePath      string
	StartLine     int64
	EndLine       int64
}

// ReferenceResult is one row of a reference-traversal query.
type ReferenceResult struct {
	SourceName string
	SourceFile string
	SourceLine int64
	TargetName string
	TargetFile string
	TargetLine int64
}

// FileResult is one row of a file-listing query.
type FileResult struct {
	Path        string
	Language    string
	SymbolCount int64
}

// Stats summarizes node and relationship counts across the whole graph.
type Stats struct {
	Commits    int64
	Files      int64
	Symbols    int64
	ScanRuns   int64
	References int64
	DefinedIn  int64
	Contains   int64
}

const maxQueryRows = 100

// QueryStore is the read-only contract the query CLI and MCP server use to
// inspect the graph. *Neo4jStore satisfies it alongside the write-side
// Store interface.
type QueryStore interface {
	FindSymbols(ctx context.Context, pattern string) ([]SymbolResult, error)
	SymbolsInFile(ctx context.Context, filePath string) ([]SymbolResult, error)
	FindReferencesTo(ctx context.Context, symbolName string) ([]ReferenceResult, error)
	FindReferencesFrom(ctx context.Context, symbolName string) ([]ReferenceResult, error)
	ListFiles(ctx context.Context, pattern string) ([]FileResult, error)
	Stats(ctx context.Context) (Stats, error)
	ExecuteRaw(ctx context.Context, cypher string) (int, error)
}

// FindSymbols returns symbols whose name contains pattern, case-insensitive.
func (s *Neo4jStore) FindSymbols(ctx context.Context, pattern string) ([]SymbolResult, error) {
	return s.runSymbolQuery(ctx, `
		MATCH (s:Symbol)
		WHERE toLower(s.name) CONTAINS toLower($pattern)
		RETURN s.id AS id, s.name AS name, s.qualified_name AS qualified_name, s.kind AS kind,
		       s.file_path AS file_path, s.start_line AS start_line, s.end_line AS end_line
		ORDER BY s.name
		LIMIT $limit
	`, map[string]any{"pattern": pattern, "limit": maxQueryRows})
}

// SymbolsInFile returns symbols defined in files whose path contains
// filePath, ordered by source position.
func (s *Neo4jStore) SymbolsInFile(ctx context.Context, filePath string) ([]SymbolResult, error) {
	return s.runSymbolQuery(ctx, `
		MATCH (s:Symbol)
		WHERE s.file_path CONTAINS $file_path
		RETURN s.id AS id, s.name AS name, s.qualified_name AS qualified_name, s.kind AS kind,
		       s.file_path AS file_path, s.start_line AS start_line, s.end_line AS end_line
		ORDER BY s.start_line
	`, map[string]any{"file_path": filePath})
}

func (s *Neo4jStore) runSymbolQuery(ctx context.Context, query string, params map[string]any) ([]SymbolResult, error) {
	records, err := neo4j.ExecuteQuery[*neo4j.EagerResult](ctx, s.driver, query, params,
		neo4j.EagerResultTransformer, neo4j.ExecuteQueryWithDatabase(s.database))
	if err != nil {
		return nil, fmt.Errorf("find symbols: %w", err)
	}

	out := make([]SymbolResult, 0, len(records.Records))

	for _, record := range records.Records {
		out = append(out, SymbolResult{
			ID:            stringField(record, "id"),
			Name:          stringField(record, "name"),
			QualifiedName: stringField(record, "qualified_name"),
			Kind:          stringField(record, "kind"),
			FilePath:      stringField(record, "file_path"),
			StartLine:     intField(record, "start_line"),
			EndLine:       intField(record, "end_line"),
		})
	}

	return out, nil
}

// FindReferencesTo returns every reference edge whose target symbol is
// named symbolName.
func (s *Neo4jStore) FindReferencesTo(ctx context.Context, symbolName string) ([]ReferenceResult, error) {
	return s.runReferenceQuery(ctx, `
		MATCH (source:Symbol)-[r:REFERENCES]->(target:Symbol)
		WHERE target.name = $symbol_name
		RETURN source.name AS source_name, source.file_path AS source_file, r.line AS source_line,
		       target.name AS target_name, target.file_path AS target_file, target.start_line AS target_line
		ORDER BY source.file_path, r.line
		LIMIT $limit
	`, symbolName)
}

// FindReferencesFrom returns every reference edge whose source symbol is
// named symbolName.
func (s *Neo4jStore) FindReferencesFrom(ctx context.Context, symbolName string) ([]ReferenceResult, error) {
	return s.runReferenceQuery(ctx, `
		MATCH (source:Symbol)-[r:REFERENCES]->(target:Symbol)
		WHERE source.name = $symbol_name
		RETURN source.name AS source_name, source.file_path AS source_file, r.line AS source_line,
		       target.name AS target_name, target.file_path AS target_file, target.start_line AS target_line
		ORDER BY target.file_path, target.start_line
		LIMIT $limit
	`, symbolName)
}

func (s *Neo4jStore) runReferenceQuery(ctx context.Context, query, symbolName string) ([]ReferenceResult, error) {
	records, err := neo4j.ExecuteQuery[*neo4j.EagerResult](ctx, s.driver, query,
		map[string]any{"symbol_name": symbolName, "limit": maxQueryRows},
		neo4j.EagerResultTransformer, neo4j.ExecuteQueryWithDatabase(s.database))
	if err != nil {
		return nil, fmt.Errorf("query references: %w", err)
	}

	out := make([]ReferenceResult, 0, len(records.Records))

	for _, record := range records.Records {
		out = append(out, ReferenceResult{
			SourceName: stringField(record, "source_name"),
			SourceFile: stringField(record, "source_file"),
			SourceLine: intField(record, "source_line"),
			TargetName: stringField(record, "target_name"),
			TargetFile: stringField(record, "target_file"),
			TargetLine: intField(record, "target_line"),
		})
	}

	return out, nil
}

// ListFiles returns every File node with its symbol count, optionally
// narrowed to paths containing pattern.
func (s *Neo4jStore) ListFiles(ctx context.Context, pattern string) ([]FileResult, error) {
	query := `
		MATCH (f:File)
	`
	params := map[string]any{"limit": maxQueryRows}

	if pattern != "" {
		query += `WHERE f.path CONTAINS $pattern `
		params["pattern"] = pattern
	}

	query += `
		OPTIONAL MATCH (s:Symbol)-[:DEFINED_IN]->(f)
		RETURN f.path AS path, f.language AS language, count(s) AS symbol_count
		ORDER BY f.path
		LIMIT $limit
	`

	records, err := neo4j.ExecuteQuery[*neo4j.EagerResult](ctx, s.driver, query, params,
		neo4j.EagerResultTransformer, neo4j.ExecuteQueryWithDatabase(s.database))
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	out := make([]FileResult, 0, len(records.Records))

	for _, record := range records.Records {
		out = append(out, FileResult{
			Path:        stringField(record, "path"),
			Language:    stringField(record, "language"),
			SymbolCount: intField(record, "symbol_count"),
		})
	}

	return out, nil
}

// Stats returns node and relationship counts across the whole graph.
func (s *Neo4jStore) Stats(ctx context.Context) (Stats, error) {
	var stats Stats

	nodeRecords, err := neo4j.ExecuteQuery[*neo4j.EagerResult](ctx, s.driver, `
		MATCH (n)
		WITH labels(n)[0] AS label, count(n) AS cnt
		RETURN label, cnt
	`, nil, neo4j.EagerResultTransformer, neo4j.ExecuteQueryWithDatabase(s.database))
	if err != nil {
		return Stats{}, fmt.Errorf("stats: node counts: %w", err)
	}

	for _, record := range nodeRecords.Records {
		label := stringField(record, "label")
		count := intField(record, "cnt")

		switch label {
		case "Commit":
			stats.Commits = count
		case "File":
			stats.Files = count
		case "Symbol":
			stats.Symbols = count
		case "ScanRun":
			stats.ScanRuns = count
		}
	}

	relRecords, err := neo4j.ExecuteQuery[*neo4j.EagerResult](ctx, s.driver, `
		MATCH ()-[r]->()
		WITH type(r) AS rel_type, count(r) AS cnt
		RETURN rel_type, cnt
	`, nil, neo4j.EagerResultTransformer, neo4j.ExecuteQueryWithDatabase(s.database))
	if err != nil {
		return Stats{}, fmt.Errorf("stats: relationship counts: %w", err)
	}

	for _, record := range relRecords.Records {
		relType := stringField(record, "rel_type")
		count := intField(record, "cnt")

		switch relType {
		case "REFERENCES":
			stats.References = count
		case "DEFINED_IN":
			stats.DefinedIn = count
		case "CONTAINS":
			stats.Contains = count
		}
	}

	return stats, nil
}

// ExecuteRaw runs an arbitrary Cypher statement and returns the number of
// rows it produced. Intended for the CLI's "query raw" escape hatch; never
// used internally by the scan pipeline.
func (s *Neo4jStore) ExecuteRaw(ctx context.Context, cypher string) (int, error) {
	records, err := neo4j.ExecuteQuery[*neo4j.EagerResult](ctx, s.driver, cypher, nil,
		neo4j.EagerResultTransformer, neo4j.ExecuteQueryWithDatabase(s.database))
	if err != nil {
		return 0, fmt.Errorf("execute raw query: %w", err)
	}

	return len(records.Records), nil
}

func stringField(record *neo4j.Record, key string) string {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return ""
	}

	s, _ := v.(string)

	return s
}

func intField(record *neo4j.Record, key string) int64 {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return 0
	}

	i, _ := v.(int64)

	return i
}
