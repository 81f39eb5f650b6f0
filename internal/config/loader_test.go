package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jade-codes/mother/internal/config"
)

func TestLoadConfigAppliesDefaultsWhenNoFileExists(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.LoadConfig(filepath.Join(dir, "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.DefaultNeo4jURI, cfg.Neo4j.URI)
	require.Equal(t, config.DefaultIndexingTimeoutSec, cfg.Scan.IndexingTimeoutSec)
}

func TestLoadConfigReadsExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mother.yaml")

	content := "neo4j:\n  uri: bolt://db.internal:7687\n  password: hunter2\nscan:\n  indexing_timeout_sec: 45\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "bolt://db.internal:7687", cfg.Neo4j.URI)
	require.Equal(t, 45, cfg.Scan.IndexingTimeoutSec)
}

func TestLoadConfigRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mother.yaml")

	content := "scan:\n  indexing_timeout_sec: -1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := config.LoadConfig(path)
	require.Error(t, err)
}
