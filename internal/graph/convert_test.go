package graph

import (
	"testing"

	"github.com/jade-codes/mother/internal/lspclient"
)

func TestConvertSymbolKind(t *testing.T) {
	cases := map[lspclient.SymbolKind]SymbolKind{
		lspclient.SymbolKindFunction: SymbolKindFunction,
		lspclient.SymbolKindClass:    SymbolKindClass,
		lspclient.SymbolKindModule:   SymbolKindModule,
		lspclient.SymbolKindStruct:   SymbolKindStruct,
	}

	for in, want := range cases {
		if got := ConvertSymbolKind(in); got != want {
			t.Errorf("ConvertSymbolKind(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestFlattenSymbolsWithChildren(t *testing.T) {
	child := lspclient.Symbol{
		Name:      "method",
		Kind:      lspclient.SymbolKindMethod,
		Detail:    "fn method()",
		StartLine: 5,
		EndLine:   10,
	}

	parent := lspclient.Symbol{
		Name:      "MyClass",
		Kind:      lspclient.SymbolKindClass,
		StartLine: 0,
		EndLine:   15,
		Children:  []lspclient.Symbol{child},
	}

	nodes := FlattenSymbols(parent, "/test/file.rs", "", false)

	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}

	if nodes[0].Name != "MyClass" || nodes[0].QualifiedName != "MyClass" {
		t.Errorf("unexpected parent node: %+v", nodes[0])
	}

	if nodes[1].Name != "method" || nodes[1].QualifiedName != "MyClass::method" {
		t.Errorf("unexpected child node: %+v", nodes[1])
	}

	// 0-indexed LSP line 0 becomes 1-indexed graph line 1.
	if nodes[0].StartLine != 1 || nodes[0].EndLine != 16 {
		t.Errorf("unexpected 1-indexed lines: %+v", nodes[0])
	}
}

func TestLSPSymbolToNodeUsesContainerNameWhenNoParent(t *testing.T) {
	symbol := lspclient.Symbol{Name: "MyStruct", ContainerName: "my_module", Kind: lspclient.SymbolKindStruct}

	node := LSPSymbolToNode(symbol, "/test/file.rs", "", false)

	if node.QualifiedName != "my_module::MyStruct" {
		t.Fatalf("got %q, want my_module::MyStruct", node.QualifiedName)
	}
}

func TestLSPSymbolToNodeFallsBackToBareName(t *testing.T) {
	symbol := lspclient.Symbol{Name: "lonely", Kind: lspclient.SymbolKindVariable}

	node := LSPSymbolToNode(symbol, "/test/file.rs", "", false)

	if node.QualifiedName != "lonely" {
		t.Fatalf("got %q, want lonely", node.QualifiedName)
	}
}

func TestConvertSymbolsAssignsUniqueIDs(t *testing.T) {
	symbols := []lspclient.Symbol{
		{Name: "a", Kind: lspclient.SymbolKindFunction},
		{Name: "b", Kind: lspclient.SymbolKindFunction},
	}

	nodes := ConvertSymbols(symbols, "/f.go")

	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}

	if nodes[0].ID == "" || nodes[1].ID == "" || nodes[0].ID == nodes[1].ID {
		t.Fatalf("expected distinct non-empty IDs, got %q and %q", nodes[0].ID, nodes[1].ID)
	}
}
