package lspclient

import "encoding/json"

// Symbol is the normalized symbol tree produced from either documentSymbol
// response shape. It always forms a tree: flat SymbolInformation results
// are normalized to single-level Symbols with no children.
type Symbol struct {
	Name          string
	Detail        string
	Kind          SymbolKind
	ContainerName string
	File          string
	StartLine     uint32
	EndLine       uint32
	StartCol      uint32
	EndCol        uint32
	Children      []Symbol
}

// rawDocumentSymbolResponse holds the still-undifferentiated JSON array
// returned by textDocument/documentSymbol; each element is either a
// DocumentSymbol (has "range") or a SymbolInformation (has "location").
type rawDocumentSymbolResponse []json.RawMessage

func (r *rawDocumentSymbolResponse) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = nil
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	*r = items

	return nil
}

// normalizeDocumentSymbolResponse converts the raw, shape-ambiguous
// response into a DocumentSymbolResult with exactly one of Hierarchical or
// Flat populated.
func normalizeDocumentSymbolResponse(raw rawDocumentSymbolResponse) (DocumentSymbolResult, error) {
	if len(raw) == 0 {
		return DocumentSymbolResult{}, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw[0], &probe); err != nil {
		return DocumentSymbolResult{}, err
	}

	if _, hasLocation := probe["location"]; hasLocation {
		flat := make([]SymbolInformation, 0, len(raw))

		for _, item := range raw {
			var s SymbolInformation
			if err := json.Unmarshal(item, &s); err != nil {
				return DocumentSymbolResult{}, err
			}

			flat = append(flat, s)
		}

		return DocumentSymbolResult{Flat: flat}, nil
	}

	hierarchical := make([]DocumentSymbol, 0, len(raw))

	for _, item := range raw {
		var s DocumentSymbol
		if err := json.Unmarshal(item, &s); err != nil {
			return DocumentSymbolResult{}, err
		}

		hierarchical = append(hierarchical, s)
	}

	return DocumentSymbolResult{Hierarchical: hierarchical}, nil
}

// ToSymbols converts a DocumentSymbolResult into the uniform Symbol tree.
// file is stamped onto every symbol since DocumentSymbol's wire shape does
// not carry it (it is implicit in the request), while SymbolInformation's
// location.uri is used to recover it when present and non-empty.
func ToSymbols(result DocumentSymbolResult, file string) []Symbol {
	if len(result.Hierarchical) > 0 {
		symbols := make([]Symbol, 0, len(result.Hierarchical))
		for _, s := range result.Hierarchical {
			symbols = append(symbols, convertDocumentSymbol(s, file))
		}

		return symbols
	}

	symbols := make([]Symbol, 0, len(result.Flat))
	for _, s := range result.Flat {
		symbols = append(symbols, convertSymbolInformation(s, file))
	}

	return symbols
}

func convertDocumentSymbol(s DocumentSymbol, file string) Symbol {
	children := make([]Symbol, 0, len(s.Children))
	for _, c := range s.Children {
		children = append(children, convertDocumentSymbol(c, file))
	}

	return Symbol{
		Name:      s.Name,
		Detail:    s.Detail,
		Kind:      s.Kind,
		File:      file,
		StartLine: s.Range.Start.Line,
		EndLine:   s.Range.End.Line,
		StartCol:  s.Range.Start.Character,
		EndCol:    s.Range.End.Character,
		Children:  children,
	}
}

func convertSymbolInformation(s SymbolInformation, file string) Symbol {
	f := file
	if s.Location.URI != "" {
		f = s.Location.URI
	}

	return Symbol{
		Name:          s.Name,
		Kind:          s.Kind,
		ContainerName: s.ContainerName,
		File:          f,
		StartLine:     s.Location.Range.Start.Line,
		EndLine:       s.Location.Range.End.Line,
		StartCol:      s.Location.Range.Start.Character,
		EndCol:        s.Location.Range.End.Character,
	}
}

// Flatten walks a Symbol forest in pre-order (parent before children,
// siblings in order) and returns it as a flat slice. This order is
// load-bearing: downstream code zips the flattened slice against
// sequentially generated graph node identifiers by index.
func Flatten(symbols []Symbol) []Symbol {
	var out []Symbol

	var walk func(s Symbol)
	walk = func(s Symbol) {
		flat := s
		flat.Children = nil
		out = append(out, flat)

		for _, c := range s.Children {
			walk(c)
		}
	}

	for _, s := range symbols {
		walk(s)
	}

	return out
}

// rawHoverResponse mirrors textDocument/hover's response, which is also a
// tagged union: contents is either a string, a {language,value} object, an
// array of those, or a {kind,value} MarkupContent object.
type rawHoverResponse struct {
	Contents json.RawMessage `json:"contents"`
}

func normalizeHoverResponse(raw rawHoverResponse) string {
	if len(raw.Contents) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(raw.Contents, &asString); err == nil {
		return asString
	}

	var asMarkup MarkupContent
	if err := json.Unmarshal(raw.Contents, &asMarkup); err == nil && asMarkup.Value != "" {
		return asMarkup.Value
	}

	var asMarked markedStringJSON
	if err := json.Unmarshal(raw.Contents, &asMarked); err == nil && asMarked.Value != "" {
		return asMarked.Value
	}

	var asArray []json.RawMessage
	if err := json.Unmarshal(raw.Contents, &asArray); err == nil {
		parts := make([]string, 0, len(asArray))

		for _, item := range asArray {
			parts = append(parts, hoverItemToString(item))
		}

		return joinNonEmpty(parts, "\n\n")
	}

	return ""
}

type markedStringJSON struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

func hoverItemToString(item json.RawMessage) string {
	var asString string
	if err := json.Unmarshal(item, &asString); err == nil {
		return asString
	}

	var asMarked markedStringJSON
	if err := json.Unmarshal(item, &asMarked); err == nil {
		return asMarked.Value
	}

	return ""
}

func joinNonEmpty(parts []string, sep string) string {
	var out string

	for _, p := range parts {
		if p == "" {
			continue
		}

		if out != "" {
			out += sep
		}

		out += p
	}

	return out
}
