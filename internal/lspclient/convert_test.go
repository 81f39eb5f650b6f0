package lspclient

import "testing"

func TestConvertDocumentSymbolWithChildren(t *testing.T) {
	child := DocumentSymbol{
		Name: "inner",
		Kind: SymbolKindVariable,
		Range: Range{
			Start: Position{Line: 12, Character: 4},
			End:   Position{Line: 12, Character: 20},
		},
	}

	parent := DocumentSymbol{
		Name: "outer",
		Kind: SymbolKindFunction,
		Range: Range{
			Start: Position{Line: 10, Character: 0},
			End:   Position{Line: 20, Character: 1},
		},
		Children: []DocumentSymbol{child},
	}

	result := ToSymbols(DocumentSymbolResult{Hierarchical: []DocumentSymbol{parent}}, "file:///test.rs")

	if len(result) != 1 || result[0].Name != "outer" {
		t.Fatalf("unexpected top-level result: %+v", result)
	}

	if len(result[0].Children) != 1 || result[0].Children[0].Name != "inner" {
		t.Fatalf("expected one child named inner, got %+v", result[0].Children)
	}

	if result[0].Children[0].Kind != SymbolKindVariable {
		t.Fatalf("expected child kind Variable, got %v", result[0].Children[0].Kind)
	}
}

func TestConvertSymbolInformation(t *testing.T) {
	info := SymbolInformation{
		Name:          "MyStruct",
		Kind:          SymbolKindStruct,
		ContainerName: "my_module",
		Location: Location{
			URI: "file:///test/file.rs",
			Range: Range{
				Start: Position{Line: 5, Character: 0},
				End:   Position{Line: 15, Character: 1},
			},
		},
	}

	result := ToSymbols(DocumentSymbolResult{Flat: []SymbolInformation{info}}, "")

	if len(result) != 1 {
		t.Fatalf("expected one symbol, got %d", len(result))
	}

	s := result[0]
	if s.Name != "MyStruct" || s.Kind != SymbolKindStruct || s.ContainerName != "my_module" {
		t.Fatalf("unexpected symbol: %+v", s)
	}

	if s.StartLine != 5 || s.EndLine != 15 {
		t.Fatalf("unexpected line range: %+v", s)
	}
}

func TestFlattenPreOrder(t *testing.T) {
	grandchild := Symbol{Name: "gc"}
	child1 := Symbol{Name: "c1", Children: []Symbol{grandchild}}
	child2 := Symbol{Name: "c2"}
	root := Symbol{Name: "root", Children: []Symbol{child1, child2}}

	flat := Flatten([]Symbol{root})

	names := make([]string, len(flat))
	for i, s := range flat {
		names[i] = s.Name
	}

	want := []string{"root", "c1", "gc", "c2"}

	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}

	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestNormalizeHoverResponsePlainString(t *testing.T) {
	got := normalizeHoverResponse(rawHoverResponse{Contents: []byte(`"plain text"`)})
	if got != "plain text" {
		t.Fatalf("got %q, want %q", got, "plain text")
	}
}

func TestNormalizeHoverResponseLanguageString(t *testing.T) {
	got := normalizeHoverResponse(rawHoverResponse{
		Contents: []byte(`{"language":"rust","value":"fn main() {}"}`),
	})
	if got != "fn main() {}" {
		t.Fatalf("got %q, want %q", got, "fn main() {}")
	}
}

func TestNormalizeHoverResponseMarkup(t *testing.T) {
	got := normalizeHoverResponse(rawHoverResponse{
		Contents: []byte(`{"kind":"markdown","value":"**bold**"}`),
	})
	if got != "**bold**" {
		t.Fatalf("got %q, want %q", got, "**bold**")
	}
}

func TestNormalizeDocumentSymbolResponseDetectsFlatShape(t *testing.T) {
	raw := rawDocumentSymbolResponse{
		[]byte(`{"name":"f","kind":12,"location":{"uri":"file:///a.go","range":{"start":{"line":0,"character":0},"end":{"line":1,"character":0}}}}`),
	}

	result, err := normalizeDocumentSymbolResponse(raw)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Flat) != 1 || len(result.Hierarchical) != 0 {
		t.Fatalf("expected flat shape, got %+v", result)
	}
}

func TestNormalizeDocumentSymbolResponseDetectsHierarchicalShape(t *testing.T) {
	raw := rawDocumentSymbolResponse{
		[]byte(`{"name":"f","kind":12,"range":{"start":{"line":0,"character":0},"end":{"line":1,"character":0}},"selectionRange":{"start":{"line":0,"character":0},"end":{"line":0,"character":1}}}`),
	}

	result, err := normalizeDocumentSymbolResponse(raw)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Hierarchical) != 1 || len(result.Flat) != 0 {
		t.Fatalf("expected hierarchical shape, got %+v", result)
	}
}
