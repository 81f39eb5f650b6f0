package lspclient

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sourcegraph/jsonrpc2"
)

// DefaultIndexingTimeout bounds how long WaitForIndexing blocks before
// giving up and letting the scan proceed anyway.
const DefaultIndexingTimeout = 30 * time.Second

// Client is a live connection to one language's LSP server process.
type Client struct {
	conn    *jsonrpc2.Conn
	stream  jsonrpc2.ObjectStream
	config  ServerConfig
	notify  *notificationHandler
	logger  *slog.Logger
}

// Start launches the server process described by cfg and opens a JSON-RPC
// connection to it. The connection is not yet initialized; call Initialize
// next.
func Start(ctx context.Context, cfg ServerConfig, logger *slog.Logger) (*Client, error) {
	rw, err := startServer(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("start lsp server %s: %w", cfg.Command, err)
	}

	notify := newNotificationHandler()
	stream := jsonrpc2.NewBufferedStream(rw, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, notify)

	return &Client{conn: conn, stream: stream, config: cfg, notify: notify, logger: logger}, nil
}

// Initialize performs the initialize/initialized handshake against
// rootURI, a file:// URI for the workspace root.
func (c *Client) Initialize(ctx context.Context, rootURI string) error {
	capabilities := map[string]any{
		"workspace": map[string]any{
			"symbol": map[string]any{"dynamicRegistration": true},
		},
		"textDocument": map[string]any{
			"documentSymbol": map[string]any{
				"hierarchicalDocumentSymbolSupport": true,
			},
			"hover": map[string]any{
				"contentFormat": []string{"markdown", "plaintext"},
			},
		},
		"window": map[string]any{
			"workDoneProgress": true,
		},
	}

	params := map[string]any{
		"processId": nil,
		"rootUri":   rootURI,
		"workspaceFolders": []map[string]any{
			{"uri": rootURI, "name": "root"},
		},
		"capabilities":          capabilities,
		"initializationOptions": c.config.InitOptions,
	}

	var result map[string]any

	if err := c.conn.Call(ctx, "initialize", params, &result); err != nil {
		return fmt.Errorf("initialize %s: %w", c.config.Language, err)
	}

	if err := c.conn.Notify(ctx, "initialized", map[string]any{}); err != nil {
		return fmt.Errorf("send initialized notification: %w", err)
	}

	return nil
}

// WaitForIndexing blocks until the server signals end-of-indexing via
// $/progress, or until timeout elapses, whichever comes first. A timeout is
// not an error: indexing-complete detection is best-effort since not every
// language server reports progress.
func (c *Client) WaitForIndexing(ctx context.Context, timeout time.Duration) error {
	select {
	case <-c.notify.indexed:
		if c.logger != nil {
			c.logger.Info("lsp indexing complete", "language", c.config.Language)
		}
	case <-time.After(timeout):
		if c.logger != nil {
			c.logger.Debug("lsp indexing wait timed out, proceeding anyway", "language", c.config.Language)
		}
	case <-ctx.Done():
		return fmt.Errorf("wait for indexing: %w", ctx.Err())
	}

	return nil
}

// DidOpen notifies the server that a file was opened with the given
// content, so subsequent symbol/reference requests see it.
func (c *Client) DidOpen(ctx context.Context, fileURI, languageID, text string) error {
	params := map[string]any{
		"textDocument": map[string]any{
			"uri":        fileURI,
			"languageId": languageID,
			"version":    1,
			"text":       text,
		},
	}

	if err := c.conn.Notify(ctx, "textDocument/didOpen", params); err != nil {
		return fmt.Errorf("didOpen %s: %w", fileURI, err)
	}

	return nil
}

// DocumentSymbols requests textDocument/documentSymbol for fileURI and
// normalizes the hierarchical-or-flat response into a DocumentSymbolResult.
func (c *Client) DocumentSymbols(ctx context.Context, fileURI string) (DocumentSymbolResult, error) {
	params := map[string]any{
		"textDocument": map[string]any{"uri": fileURI},
	}

	var raw rawDocumentSymbolResponse

	if err := c.conn.Call(ctx, "textDocument/documentSymbol", params, &raw); err != nil {
		return DocumentSymbolResult{}, fmt.Errorf("documentSymbol %s: %w", fileURI, err)
	}

	return normalizeDocumentSymbolResponse(raw)
}

// References requests textDocument/references for the symbol at (line,
// character) within fileURI.
func (c *Client) References(ctx context.Context, fileURI string, line, character uint32, includeDeclaration bool) ([]Location, error) {
	params := map[string]any{
		"textDocument": map[string]any{"uri": fileURI},
		"position":     Position{Line: line, Character: character},
		"context":      map[string]any{"includeDeclaration": includeDeclaration},
	}

	var locations []Location

	if err := c.conn.Call(ctx, "textDocument/references", params, &locations); err != nil {
		return nil, fmt.Errorf("references %s:%d:%d: %w", fileURI, line, character, err)
	}

	return locations, nil
}

// Hover requests textDocument/hover and normalizes the response to plain
// text regardless of which hover content shape the server used.
func (c *Client) Hover(ctx context.Context, fileURI string, line, character uint32) (string, error) {
	params := map[string]any{
		"textDocument": map[string]any{"uri": fileURI},
		"position":     Position{Line: line, Character: character},
	}

	var raw rawHoverResponse

	if err := c.conn.Call(ctx, "textDocument/hover", params, &raw); err != nil {
		return "", fmt.Errorf("hover %s:%d:%d: %w", fileURI, line, character, err)
	}

	return normalizeHoverResponse(raw), nil
}

// Shutdown performs the shutdown/exit sequence and closes the connection.
func (c *Client) Shutdown(ctx context.Context) error {
	var result any
	_ = c.conn.Call(ctx, "shutdown", nil, &result)
	_ = c.conn.Notify(ctx, "exit", nil)

	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("close lsp connection: %w", err)
	}

	return nil
}
