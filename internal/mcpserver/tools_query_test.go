package mcpserver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jade-codes/mother/internal/graph"
	"github.com/jade-codes/mother/internal/mcpserver"
)

func callTool(t *testing.T, store graph.QueryStore, toolName string, args map[string]any) *mcpsdk.CallToolResult {
	t.Helper()

	srv := mcpserver.NewServer(mcpserver.ServerDeps{Store: store})
	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()

	ctx := t.Context()

	serverDone := make(chan error, 1)

	go func() {
		serverDone <- srv.RunWithTransport(ctx, serverTransport)
	}()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client", Version: "1.0.0"}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() { _ = session.Close() })

	result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{Name: toolName, Arguments: args})
	require.NoError(t, err)

	return result
}

func TestFindSymbols_EmptyPatternIsError(t *testing.T) {
	t.Parallel()

	result := callTool(t, &fakeQueryStore{}, mcpserver.ToolNameFindSymbols, map[string]any{"pattern": ""})
	assert.True(t, result.IsError)
}

func TestSymbolsInFile_EmptyPathIsError(t *testing.T) {
	t.Parallel()

	result := callTool(t, &fakeQueryStore{}, mcpserver.ToolNameSymbolsInFile, map[string]any{"file_path": ""})
	assert.True(t, result.IsError)
}

func TestReferencesTo_EmptyNameIsError(t *testing.T) {
	t.Parallel()

	result := callTool(t, &fakeQueryStore{}, mcpserver.ToolNameReferencesTo, map[string]any{"symbol_name": ""})
	assert.True(t, result.IsError)
}

func TestExecuteRaw_EmptyCypherIsError(t *testing.T) {
	t.Parallel()

	result := callTool(t, &fakeQueryStore{}, mcpserver.ToolNameExecuteRaw, map[string]any{"cypher": ""})
	assert.True(t, result.IsError)
}

func TestStats_ReturnsAggregateCounts(t *testing.T) {
	t.Parallel()

	store := &fakeQueryStore{stats: graph.Stats{Commits: 3, Files: 10, Symbols: 42}}

	result := callTool(t, store, mcpserver.ToolNameStats, nil)
	assert.False(t, result.IsError)
	require.NotEmpty(t, result.Content)
}

func TestListFiles_NoPatternListsAll(t *testing.T) {
	t.Parallel()

	store := &fakeQueryStore{files: []graph.FileResult{{Path: "a.go", Language: "go", SymbolCount: 2}}}

	result := callTool(t, store, mcpserver.ToolNameListFiles, nil)
	assert.False(t, result.IsError)
	require.NotEmpty(t, result.Content)
}
