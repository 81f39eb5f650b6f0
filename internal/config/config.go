// Package config loads the scan pipeline's runtime configuration: where
// Neo4j lives, which languages to scan, and per-language LSP server
// overrides.
package config

import "errors"

// Config is the top-level configuration struct for the scan pipeline.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Neo4j      Neo4jConfig       `mapstructure:"neo4j"`
	Scan       ScanConfig        `mapstructure:"scan"`
	LSPServers []LSPServerConfig `mapstructure:"lsp_servers"`
}

// Neo4jConfig holds the connection details for the graph store.
type Neo4jConfig struct {
	URI      string `mapstructure:"uri"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// ScanConfig holds scan-wide defaults.
type ScanConfig struct {
	Languages          []string `mapstructure:"languages"`
	IndexingTimeoutSec int      `mapstructure:"indexing_timeout_sec"`
	Version            string   `mapstructure:"version"`
}

// LSPServerConfig overrides the default launch command for one language's
// server, keyed by Language.
type LSPServerConfig struct {
	Language string   `mapstructure:"language"`
	Command  string   `mapstructure:"command"`
	Args     []string `mapstructure:"args"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidIndexingTimeout indicates the indexing timeout is not positive.
	ErrInvalidIndexingTimeout = errors.New("scan.indexing_timeout_sec must be positive")
	// ErrMissingNeo4jURI indicates no Neo4j connection URI was configured.
	ErrMissingNeo4jURI = errors.New("neo4j.uri must be set")
	// ErrLSPServerMissingLanguage indicates an lsp_servers entry has no language key.
	ErrLSPServerMissingLanguage = errors.New("lsp_servers entries must set language")
	// ErrLSPServerMissingCommand indicates an lsp_servers entry has no command.
	ErrLSPServerMissingCommand = errors.New("lsp_servers entries must set command")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.Neo4j.URI == "" {
		return ErrMissingNeo4jURI
	}

	if c.Scan.IndexingTimeoutSec <= 0 {
		return ErrInvalidIndexingTimeout
	}

	for _, server := range c.LSPServers {
		if server.Language == "" {
			return ErrLSPServerMissingLanguage
		}

		if server.Command == "" {
			return ErrLSPServerMissingCommand
		}
	}

	return nil
}
