package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/jade-codes/mother/internal/observability"
)

func newTestProvider() (*tracetest.InMemoryExporter, trace.TracerProvider) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	return exporter, tp
}

func TestFilteringProvider_SuppressedTracer(t *testing.T) {
	t.Parallel()

	exporter, base := newTestProvider()
	fp := observability.NewFilteringTracerProvider(base)

	// mother.lspclient is suppressed — spans should not be recorded.
	tracer := fp.Tracer("mother.lspclient")
	_, span := tracer.Start(context.Background(), "lsp.hover")
	span.End()

	assert.Empty(t, exporter.GetSpans(), "suppressed tracer should produce no exported spans")
}

func TestFilteringProvider_SuppressedSpan(t *testing.T) {
	t.Parallel()

	exporter, base := newTestProvider()
	fp := observability.NewFilteringTracerProvider(base)

	tracer := fp.Tracer("mother.orchestrator")

	// Structural span should pass through.
	_, structSpan := tracer.Start(context.Background(), "mother.orchestrator.run")
	structSpan.End()

	// Hot-path per-file span should be suppressed.
	_, hotSpan := tracer.Start(context.Background(), "mother.orchestrator.process_file")
	hotSpan.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1, "only structural span should be exported")
	assert.Equal(t, "mother.orchestrator.run", spans[0].Name)
}

func TestFilteringProvider_PassThrough(t *testing.T) {
	t.Parallel()

	exporter, base := newTestProvider()
	fp := observability.NewFilteringTracerProvider(base)

	// Root "mother" tracer is not suppressed — spans pass through,
	// but span-level filtering still applies (mother.orchestrator.process_file).
	tracer := fp.Tracer("mother")
	_, span := tracer.Start(context.Background(), "mother.scan_run")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "mother.scan_run", spans[0].Name)
}

func TestFilteringProvider_LSPClientSuppressed(t *testing.T) {
	t.Parallel()

	exporter, base := newTestProvider()
	fp := observability.NewFilteringTracerProvider(base)

	tracer := fp.Tracer("mother.lspclient")
	_, span := tracer.Start(context.Background(), "lsp.document_symbol")
	span.End()

	assert.Empty(t, exporter.GetSpans(), "LSP client spans should be suppressed")
}

func TestFilteringProvider_NoopSpanIsValid(t *testing.T) {
	t.Parallel()

	fp := observability.NewFilteringTracerProvider(nooptrace.NewTracerProvider())

	tracer := fp.Tracer("mother.lspclient")
	ctx, span := tracer.Start(context.Background(), "lsp.did_open")

	// Noop span should still be usable without panicking.
	span.SetName("renamed")
	span.End()

	assert.NotNil(t, ctx)
}
