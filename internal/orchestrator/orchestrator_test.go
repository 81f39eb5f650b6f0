package orchestrator

import (
	"context"
	"io"
	"log/slog"

	"github.com/jade-codes/mother/internal/graph"
	"github.com/jade-codes/mother/internal/lspclient"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is a minimal graph.Store double for exercising orchestrator
// logic without a live Neo4j instance.
type fakeStore struct {
	scanRuns      []graph.ScanRun
	isNewCommit   bool
	files         []graph.FileNode
	newFileHashes map[string]string
	symbolBatches [][]graph.SymbolNode
	edges         []graph.Edge
}

func (s *fakeStore) CreateScanRun(_ context.Context, run graph.ScanRun) (bool, error) {
	s.scanRuns = append(s.scanRuns, run)

	return s.isNewCommit, nil
}

func (s *fakeStore) CreateFileIfNew(_ context.Context, file graph.FileNode, _ string) (string, error) {
	s.files = append(s.files, file)

	if s.newFileHashes == nil {
		return file.ContentHash, nil
	}

	hash, ok := s.newFileHashes[file.Path]
	if !ok {
		return file.ContentHash, nil
	}

	return hash, nil
}

func (s *fakeStore) CreateSymbolsBatch(_ context.Context, symbols []graph.SymbolNode, _ string) error {
	s.symbolBatches = append(s.symbolBatches, symbols)

	return nil
}

func (s *fakeStore) CreateEdge(_ context.Context, edge graph.Edge) error {
	s.edges = append(s.edges, edge)

	return nil
}

func (s *fakeStore) Close(_ context.Context) error {
	return nil
}

type locationFixture struct {
	uri  string
	line uint32
	col  uint32
}

func toLocations(fixtures []locationFixture) []lspclient.Location {
	locations := make([]lspclient.Location, 0, len(fixtures))

	for _, f := range fixtures {
		locations = append(locations, lspclient.Location{
			URI: f.uri,
			Range: lspclient.Range{
				Start: lspclient.Position{Line: f.line, Character: f.col},
				End:   lspclient.Position{Line: f.line, Character: f.col + 1},
			},
		})
	}

	return locations
}
