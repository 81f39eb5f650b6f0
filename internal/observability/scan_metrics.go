package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricFilesScannedTotal = "mother.scan.files.total"
	metricSymbolsTotal      = "mother.scan.symbols.total"
	metricReferencesTotal   = "mother.scan.references.total"
	metricLSPErrorsTotal    = "mother.scan.lsp_errors.total"
	metricPhaseDuration     = "mother.scan.phase.duration.seconds"

	attrPhase  = "phase"
	attrReused = "reused"
)

// ScanMetrics holds OTel instruments for the scan pipeline.
type ScanMetrics struct {
	filesTotal      metric.Int64Counter
	symbolsTotal    metric.Int64Counter
	referencesTotal metric.Int64Counter
	lspErrorsTotal  metric.Int64Counter
	phaseDuration   metric.Float64Histogram
}

// ScanStats summarizes a single orchestrator run for export.
type ScanStats struct {
	FilesNew      int
	FilesReused   int
	Symbols       int
	References    int
	LSPErrors     int
	Phase1        time.Duration
	Phase2        time.Duration
	Phase3        time.Duration
}

// NewScanMetrics creates scan pipeline metric instruments from the given meter.
func NewScanMetrics(mt metric.Meter) (*ScanMetrics, error) {
	b := newMetricBuilder(mt)

	sm := &ScanMetrics{
		filesTotal:      b.counter(metricFilesScannedTotal, "Total files processed by the scan pipeline", "{file}"),
		symbolsTotal:    b.counter(metricSymbolsTotal, "Total symbols extracted", "{symbol}"),
		referencesTotal: b.counter(metricReferencesTotal, "Total reference edges created", "{reference}"),
		lspErrorsTotal:  b.counter(metricLSPErrorsTotal, "Total LSP request failures", "{error}"),
		phaseDuration:   b.histogram(metricPhaseDuration, "Per-phase scan duration in seconds", "s", durationBucketBoundaries...),
	}

	if b.err != nil {
		return nil, b.err
	}

	return sm, nil
}

// RecordRun records scan statistics for a completed orchestrator run.
// Safe to call on a nil receiver (no-op), so callers don't need to guard
// every call site when metrics are disabled.
func (sm *ScanMetrics) RecordRun(ctx context.Context, stats ScanStats) {
	if sm == nil {
		return
	}

	sm.filesTotal.Add(ctx, int64(stats.FilesNew), metric.WithAttributes(attribute.Bool(attrReused, false)))
	sm.filesTotal.Add(ctx, int64(stats.FilesReused), metric.WithAttributes(attribute.Bool(attrReused, true)))
	sm.symbolsTotal.Add(ctx, int64(stats.Symbols))
	sm.referencesTotal.Add(ctx, int64(stats.References))
	sm.lspErrorsTotal.Add(ctx, int64(stats.LSPErrors))

	sm.phaseDuration.Record(ctx, stats.Phase1.Seconds(), metric.WithAttributes(attribute.String(attrPhase, "reconcile")))
	sm.phaseDuration.Record(ctx, stats.Phase2.Seconds(), metric.WithAttributes(attribute.String(attrPhase, "symbols")))
	sm.phaseDuration.Record(ctx, stats.Phase3.Seconds(), metric.WithAttributes(attribute.String(attrPhase, "references")))
}

// RecordLSPError records a single LSP request failure, tagged by phase.
func (sm *ScanMetrics) RecordLSPError(ctx context.Context, phase string) {
	if sm == nil {
		return
	}

	sm.lspErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrPhase, phase)))
}
