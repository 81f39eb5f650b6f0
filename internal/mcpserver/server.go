// Package mcpserver implements a Model Context Protocol server exposing the
// graph's read-only query operations as MCP tools over stdio transport.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jade-codes/mother/internal/graph"
	"github.com/jade-codes/mother/internal/observability"
)

const (
	// serverName is the MCP server implementation name.
	serverName = "mother"
	// serverVersion is the MCP server implementation version.
	serverVersion = "1.0.0"

	// toolCount is the number of registered tools.
	toolCount = 7
)

// ServerDeps holds injectable dependencies for the MCP server.
// Zero-value fields use production defaults.
type ServerDeps struct {
	// Store is the graph query backend. Required.
	Store graph.QueryStore

	// Logger is an optional structured logger. Nil uses slog default.
	Logger *slog.Logger

	// Metrics is an optional RED metrics recorder. Nil disables per-tool metrics.
	Metrics *observability.REDMetrics

	// Tracer is an optional OTel tracer for per-tool-call spans. Nil disables tracing.
	Tracer trace.Tracer
}

// Server wraps the MCP SDK server with graph query tool registrations.
type Server struct {
	inner   *mcpsdk.Server
	store   graph.QueryStore
	mu      sync.RWMutex
	tools   []string
	metrics *observability.REDMetrics
	tracer  trace.Tracer
}

// NewServer creates a new MCP server with all graph query tools registered.
func NewServer(deps ServerDeps) *Server {
	opts := &mcpsdk.ServerOptions{}
	if deps.Logger != nil {
		opts.Logger = deps.Logger
	}

	inner := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		opts,
	)

	srv := &Server{
		inner:   inner,
		store:   deps.Store,
		tools:   make([]string, 0, toolCount),
		metrics: deps.Metrics,
		tracer:  deps.Tracer,
	}

	srv.registerTools()

	return srv
}

// ListToolNames returns the sorted names of all registered tools.
func (s *Server) ListToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.tools))
	copy(names, s.tools)
	sort.Strings(names)

	return names
}

// Run starts the MCP server on stdio transport. It blocks until the context
// is canceled or the connection closes.
func (s *Server) Run(ctx context.Context) error {
	err := s.inner.Run(ctx, &mcpsdk.StdioTransport{})
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// RunWithTransport starts the MCP server on the given transport. It blocks
// until the context is canceled or the connection closes.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	err := s.inner.Run(ctx, transport)
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

func (s *Server) registerTools() {
	s.registerFindSymbolsTool()
	s.registerSymbolsInFileTool()
	s.registerReferencesToTool()
	s.registerReferencesFromTool()
	s.registerListFilesTool()
	s.registerStatsTool()
	s.registerExecuteRawTool()
}

func (s *Server) registerFindSymbolsTool() {
	handler := func(ctx context.Context, req *mcpsdk.CallToolRequest, in FindSymbolsInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
		return handleFindSymbols(ctx, s.store, req, in)
	}

	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameFindSymbols,
		Description: findSymbolsDescription,
	}, withMetrics(s.metrics, ToolNameFindSymbols, withTracing(s.tracer, ToolNameFindSymbols, handler)))

	s.trackTool(ToolNameFindSymbols)
}

func (s *Server) registerSymbolsInFileTool() {
	handler := func(ctx context.Context, req *mcpsdk.CallToolRequest, in SymbolsInFileInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
		return handleSymbolsInFile(ctx, s.store, req, in)
	}

	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameSymbolsInFile,
		Description: symbolsInFileDescription,
	}, withMetrics(s.metrics, ToolNameSymbolsInFile, withTracing(s.tracer, ToolNameSymbolsInFile, handler)))

	s.trackTool(ToolNameSymbolsInFile)
}

func (s *Server) registerReferencesToTool() {
	handler := func(ctx context.Context, req *mcpsdk.CallToolRequest, in ReferencesToInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
		return handleReferencesTo(ctx, s.store, req, in)
	}

	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameReferencesTo,
		Description: referencesToDescription,
	}, withMetrics(s.metrics, ToolNameReferencesTo, withTracing(s.tracer, ToolNameReferencesTo, handler)))

	s.trackTool(ToolNameReferencesTo)
}

func (s *Server) registerReferencesFromTool() {
	handler := func(ctx context.Context, req *mcpsdk.CallToolRequest, in ReferencesFromInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
		return handleReferencesFrom(ctx, s.store, req, in)
	}

	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameReferencesFrom,
		Description: referencesFromDescription,
	}, withMetrics(s.metrics, ToolNameReferencesFrom, withTracing(s.tracer, ToolNameReferencesFrom, handler)))

	s.trackTool(ToolNameReferencesFrom)
}

func (s *Server) registerListFilesTool() {
	handler := func(ctx context.Context, req *mcpsdk.CallToolRequest, in ListFilesInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
		return handleListFiles(ctx, s.store, req, in)
	}

	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameListFiles,
		Description: listFilesDescription,
	}, withMetrics(s.metrics, ToolNameListFiles, withTracing(s.tracer, ToolNameListFiles, handler)))

	s.trackTool(ToolNameListFiles)
}

func (s *Server) registerStatsTool() {
	handler := func(ctx context.Context, req *mcpsdk.CallToolRequest, in StatsInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
		return handleStats(ctx, s.store, req, in)
	}

	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameStats,
		Description: statsDescription,
	}, withMetrics(s.metrics, ToolNameStats, withTracing(s.tracer, ToolNameStats, handler)))

	s.trackTool(ToolNameStats)
}

func (s *Server) registerExecuteRawTool() {
	handler := func(ctx context.Context, req *mcpsdk.CallToolRequest, in ExecuteRawInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
		return handleExecuteRaw(ctx, s.store, req, in)
	}

	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameExecuteRaw,
		Description: executeRawDescription,
	}, withMetrics(s.metrics, ToolNameExecuteRaw, withTracing(s.tracer, ToolNameExecuteRaw, handler)))

	s.trackTool(ToolNameExecuteRaw)
}

// mcpSpanPrefix is the prefix for MCP tool span names.
const mcpSpanPrefix = "mcp."

// traceIDMetaKey is the metadata key for trace_id in MCP tool responses.
const traceIDMetaKey = "trace_id"

// withTracing wraps an MCP tool handler to create an OTel span per invocation
// and include trace_id in the response content when sampled.
func withTracing[Input any](
	tracer trace.Tracer,
	toolName string,
	handler func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error),
) func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if tracer == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		ctx, span := tracer.Start(ctx, mcpSpanPrefix+toolName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("mcp.tool", toolName)),
		)
		defer span.End()

		result, output, err := handler(ctx, req, input)

		sc := span.SpanContext()
		if sc.IsSampled() && result != nil {
			traceContent := &mcpsdk.TextContent{Text: fmt.Sprintf("%s=%s", traceIDMetaKey, sc.TraceID().String())}
			result.Content = append(result.Content, traceContent)
		}

		return result, output, err
	}
}

// withMetrics wraps an MCP tool handler to record RED metrics per invocation.
func withMetrics[Input any](
	metrics *observability.REDMetrics,
	toolName string,
	handler func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error),
) func(context.Context, *mcpsdk.CallToolRequest, Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if metrics == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input Input) (*mcpsdk.CallToolResult, ToolOutput, error) {
		start := time.Now()

		decInflight := metrics.TrackInflight(ctx, "mcp."+toolName)
		defer decInflight()

		result, output, err := handler(ctx, req, input)

		status := "ok"
		if err != nil || (result != nil && result.IsError) {
			status = "error"
		}

		metrics.RecordRequest(ctx, "mcp."+toolName, status, time.Since(start))

		return result, output, err
	}
}

func (s *Server) trackTool(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = append(s.tools, name)
}
