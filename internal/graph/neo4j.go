package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jConfig describes how to connect to the Neo4j instance backing the
// graph.
type Neo4jConfig struct {
	URI      string
	User     string
	Password string
	Database string
}

// Neo4jStore is a Store backed by Neo4j via the official Go driver.
type Neo4jStore struct {
	driver   neo4j.DriverWithContext
	database string
}

// ConnectNeo4j opens a driver connection to cfg and verifies connectivity.
func ConnectNeo4j(ctx context.Context, cfg Neo4jConfig) (*Neo4jStore, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}

	return &Neo4jStore{driver: driver, database: cfg.Database}, nil
}

func (s *Neo4jStore) session(ctx context.Context) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
}

// Close implements Store.
func (s *Neo4jStore) Close(ctx context.Context) error {
	if err := s.driver.Close(ctx); err != nil {
		return fmt.Errorf("close neo4j driver: %w", err)
	}

	return nil
}

// CreateScanRun implements Store.
func (s *Neo4jStore) CreateScanRun(ctx context.Context, run ScanRun) (bool, error) {
	session := s.session(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if run.Commit.SHA != "" {
			exists, err := commitExists(ctx, tx, run.Commit.SHA)
			if err != nil {
				return nil, err
			}

			if exists {
				_, err := tx.Run(ctx, `
					MATCH (c:Commit {sha: $commit_sha})
					CREATE (r:ScanRun {id: $id, repo_path: $repo_path, scanned_at: datetime($scanned_at), version: $version})
					CREATE (r)-[:FOR_COMMIT]->(c)
				`, map[string]any{
					"commit_sha": run.Commit.SHA,
					"id":         run.ID,
					"repo_path":  run.RepoPath,
					"scanned_at": run.ScannedAt.Format(rfc3339Nano),
					"version":    run.Version,
				})
				if err != nil {
					return nil, err
				}

				return false, nil
			}
		}

		_, err := tx.Run(ctx, `
			CREATE (c:Commit {sha: $commit_sha, branch: $branch})
			CREATE (r:ScanRun {id: $id, repo_path: $repo_path, scanned_at: datetime($scanned_at), version: $version})
			CREATE (r)-[:FOR_COMMIT]->(c)
		`, map[string]any{
			"commit_sha": run.Commit.SHA,
			"branch":     run.Commit.Branch,
			"id":         run.ID,
			"repo_path":  run.RepoPath,
			"scanned_at": run.ScannedAt.Format(rfc3339Nano),
			"version":    run.Version,
		})
		if err != nil {
			return nil, err
		}

		return true, nil
	})
	if err != nil {
		return false, fmt.Errorf("create scan run: %w", err)
	}

	isNew, _ := result.(bool)

	return isNew, nil
}

func commitExists(ctx context.Context, tx neo4j.ManagedTransaction, sha string) (bool, error) {
	result, err := tx.Run(ctx, `
		MATCH (c:Commit {sha: $commit_sha})
		RETURN c.sha AS sha
		LIMIT 1
	`, map[string]any{"commit_sha": sha})
	if err != nil {
		return false, err
	}

	return result.Next(ctx), nil
}

// CreateFileIfNew implements Store.
func (s *Neo4jStore) CreateFileIfNew(ctx context.Context, file FileNode, commitSHA string) (string, error) {
	session := s.session(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		check, err := tx.Run(ctx, `
			MATCH (f:File {content_hash: $content_hash})
			RETURN f.content_hash AS hash
			LIMIT 1
		`, map[string]any{"content_hash": file.ContentHash})
		if err != nil {
			return nil, err
		}

		if check.Next(ctx) {
			_, err := tx.Run(ctx, `
				MATCH (f:File {content_hash: $content_hash})
				MATCH (c:Commit {sha: $commit_sha})
				MERGE (c)-[:CONTAINS]->(f)
			`, map[string]any{"content_hash": file.ContentHash, "commit_sha": commitSHA})
			if err != nil {
				return nil, err
			}

			return "", nil
		}

		_, err = tx.Run(ctx, `
			MATCH (c:Commit {sha: $commit_sha})
			CREATE (f:File {content_hash: $content_hash, path: $file_path, language: $language})
			CREATE (c)-[:CONTAINS]->(f)
		`, map[string]any{
			"commit_sha":   commitSHA,
			"content_hash": file.ContentHash,
			"file_path":    file.Path,
			"language":     file.Language,
		})
		if err != nil {
			return nil, err
		}

		return file.ContentHash, nil
	})
	if err != nil {
		return "", fmt.Errorf("create file if new: %w", err)
	}

	hash, _ := result.(string)

	return hash, nil
}

// CreateSymbolsBatch implements Store.
func (s *Neo4jStore) CreateSymbolsBatch(ctx context.Context, symbols []SymbolNode, contentHash string) error {
	session := s.session(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, symbol := range symbols {
			_, err := tx.Run(ctx, `
				MATCH (f:File {content_hash: $content_hash})
				CREATE (s:Symbol {
					id: $id, name: $name, qualified_name: $qualified_name, kind: $kind,
					visibility: $visibility, file_path: $file_path, start_line: $start_line,
					end_line: $end_line, signature: $signature, doc_comment: $doc_comment
				})
				CREATE (s)-[:DEFINED_IN]->(f)
			`, map[string]any{
				"content_hash":   contentHash,
				"id":             symbol.ID,
				"name":           symbol.Name,
				"qualified_name": symbol.QualifiedName,
				"kind":           symbol.Kind.String(),
				"visibility":     string(symbol.Visibility),
				"file_path":      symbol.FilePath,
				"start_line":     int64(symbol.StartLine),
				"end_line":       int64(symbol.EndLine),
				"signature":      symbol.Signature,
				"doc_comment":    symbol.DocComment,
			})
			if err != nil {
				return nil, err
			}
		}

		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("create symbols batch: %w", err)
	}

	return nil
}

// CreateEdge implements Store. The relationship type is interpolated into
// the query text because Cypher does not support parameterized relationship
// types; this is safe only because EdgeKind is a closed Go enum whose
// String() values are hardcoded in model.go, never derived from external input.
func (s *Neo4jStore) CreateEdge(ctx context.Context, edge Edge) error {
	session := s.session(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (source:Symbol {id: $source_id})
		MATCH (target:Symbol {id: $target_id})
		CREATE (source)-[:%s {line: $line, column: $column}]->(target)
	`, edge.Kind.String())

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, query, map[string]any{
			"source_id": edge.FromID,
			"target_id": edge.ToID,
			"line":      int64(edge.Line),
			"column":    int64(edge.Column),
		})
	})
	if err != nil {
		return fmt.Errorf("create edge: %w", err)
	}

	return nil
}

const rfc3339Nano = "2006-01-02T15:04:05.999999999Z07:00"
